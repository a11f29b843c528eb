package engine

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/ethereum/go-ethereum/common"
	"go.uber.org/zap"

	"volumeScope/internal/model"
)

// NoticeNoVolume is surfaced when every chain succeeded or was skipped but
// nothing of identifiable value was found. It is informational, not an error.
const NoticeNoVolume = "no router transactions with identifiable value found for this address on the configured chains"

// SchedulerConfig bounds simultaneous pressure on the shared upstream rate
// limit.
type SchedulerConfig struct {
	Concurrency int
	BatchPause  time.Duration
}

// DefaultSchedulerConfig processes two chains at a time with a one second
// pause between batches.
func DefaultSchedulerConfig() SchedulerConfig {
	return SchedulerConfig{Concurrency: 2, BatchPause: time.Second}
}

// Scheduler runs the chain processor across all configured chains in fixed
// concurrent batches and folds the tagged results into an AggregateReport.
type Scheduler struct {
	cfg       SchedulerConfig
	processor *Processor
	logger    *zap.Logger
}

// NewScheduler builds a Scheduler with its dependencies.
func NewScheduler(cfg SchedulerConfig, processor *Processor, logger *zap.Logger) *Scheduler {
	if cfg.Concurrency <= 0 {
		cfg.Concurrency = 2
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Scheduler{cfg: cfg, processor: processor, logger: logger}
}

// Run aggregates router volume for address across the configured chains.
// Per-chain failures are isolated and logged; only a malformed address or a
// cancelled context fails the whole run. When the total ends up zero, the
// first retained chain error (or the no-volume notice) is carried on the
// report, while a non-zero total from other chains suppresses it.
func (s *Scheduler) Run(ctx context.Context, address string, chains []model.ChainDescriptor, prices model.PriceTable) (model.AggregateReport, error) {
	report := model.AggregateReport{Address: address}

	if !strings.HasPrefix(address, "0x") || !common.IsHexAddress(address) {
		return report, &model.ValidationError{Input: address}
	}
	address = strings.ToLower(address)
	report.Address = address

	results := make([]model.PerChainResult, 0, len(chains))
	for start := 0; start < len(chains); start += s.cfg.Concurrency {
		end := start + s.cfg.Concurrency
		if end > len(chains) {
			end = len(chains)
		}
		batch := chains[start:end]

		batchResults := make([]model.PerChainResult, len(batch))
		var wg sync.WaitGroup
		for i, chain := range batch {
			wg.Add(1)
			go func(i int, chain model.ChainDescriptor) {
				defer wg.Done()
				batchResults[i] = s.processor.Process(ctx, address, chain, prices)
			}(i, chain)
		}
		wg.Wait()
		results = append(results, batchResults...)

		if end < len(chains) && s.cfg.BatchPause > 0 {
			timer := time.NewTimer(s.cfg.BatchPause)
			select {
			case <-ctx.Done():
				timer.Stop()
				return report, ctx.Err()
			case <-timer.C:
			}
		}
	}

	var firstErr error
	for _, res := range results {
		if res.Failed() {
			s.logger.Warn("chain failed", zap.String("chain", res.Chain), zap.Error(res.Err))
			if firstErr == nil {
				firstErr = res.Err
			}
			continue
		}
		if res.VolumeUSD <= 0 {
			continue
		}
		report.TotalUSD += res.VolumeUSD
		report.Distribution = append(report.Distribution, model.ChainVolume{
			Chain:     model.TitleChain(res.Chain),
			VolumeUSD: res.VolumeUSD,
		})
	}

	sort.Slice(report.Distribution, func(i, j int) bool {
		return report.Distribution[i].VolumeUSD > report.Distribution[j].VolumeUSD
	})

	if report.Empty() {
		if firstErr != nil {
			report.Notice = firstErr.Error()
		} else {
			report.Notice = NoticeNoVolume
		}
	}
	report.GeneratedAt = time.Now().UTC().Format(time.RFC3339Nano)

	return report, nil
}
