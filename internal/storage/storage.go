package storage

import "volumeScope/internal/model"

// Storage defines a sink for aggregate volume reports.
type Storage interface {
	PutReport(report model.AggregateReport) error
}
