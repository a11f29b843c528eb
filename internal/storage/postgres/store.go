package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"volumeScope/internal/model"
)

// Store provides Postgres persistence for volume report history.
type Store struct {
	pool *pgxpool.Pool
}

func NewStore(ctx context.Context, dsn string) (*Store, error) {
	if dsn == "" {
		return nil, fmt.Errorf("pg dsn is required")
	}
	pool, err := pgxpool.New(ctx, dsn)
	if err != nil {
		return nil, err
	}
	return &Store{pool: pool}, nil
}

func (s *Store) Close() {
	if s.pool != nil {
		s.pool.Close()
	}
}

// InsertReport stores the report header and its distribution rows in one
// batch.
func (s *Store) InsertReport(ctx context.Context, report model.AggregateReport) error {
	batch := &pgx.Batch{}
	batch.Queue(`
		INSERT INTO volume_reports (address, total_usd, notice, generated_at, created_at)
		VALUES ($1, $2, NULLIF($3, ''), $4, now())
		ON CONFLICT (address, generated_at) DO NOTHING
	`,
		report.Address,
		report.TotalUSD,
		report.Notice,
		report.GeneratedAt,
	)
	for _, row := range report.Distribution {
		batch.Queue(`
			INSERT INTO volume_report_chains (address, generated_at, chain, volume_usd)
			VALUES ($1, $2, $3, $4)
			ON CONFLICT (address, generated_at, chain) DO UPDATE SET
				volume_usd = EXCLUDED.volume_usd
		`,
			report.Address,
			report.GeneratedAt,
			row.Chain,
			row.VolumeUSD,
		)
	}

	br := s.pool.SendBatch(ctx, batch)
	defer br.Close()

	for i := 0; i < len(report.Distribution)+1; i++ {
		if _, err := br.Exec(); err != nil {
			return err
		}
	}
	return nil
}

// LoadState returns the last recorded run timestamp for an address.
func (s *Store) LoadState(ctx context.Context, address string) (string, bool, error) {
	var generatedAt string
	err := s.pool.QueryRow(ctx, `
		SELECT last_run_at FROM volume_run_state WHERE address = $1
	`, address).Scan(&generatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return "", false, nil
		}
		return "", false, err
	}
	return generatedAt, true, nil
}

// SaveState records the last run timestamp for an address.
func (s *Store) SaveState(ctx context.Context, address, generatedAt string) error {
	_, err := s.pool.Exec(ctx, `
		INSERT INTO volume_run_state (address, last_run_at, updated_at)
		VALUES ($1, $2, now())
		ON CONFLICT (address) DO UPDATE SET
			last_run_at = EXCLUDED.last_run_at,
			updated_at = now()
	`, address, generatedAt)
	return err
}
