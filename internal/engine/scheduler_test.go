package engine

import (
	"context"
	"errors"
	"reflect"
	"strings"
	"testing"

	"volumeScope/internal/model"
)

// chainFetcher routes stub data per chain ID so one scheduler run can serve
// multiple chains with different outcomes.
type chainFetcher struct {
	tokens map[uint64][]model.TransactionRecord
	errs   map[uint64]error
}

func (f *chainFetcher) FetchAll(_ context.Context, action, _ string, chainID uint64) ([]model.TransactionRecord, error) {
	if err := f.errs[chainID]; err != nil {
		return nil, err
	}
	if action == actionTokenTx {
		return f.tokens[chainID], nil
	}
	return nil, nil
}

func twoChains() []model.ChainDescriptor {
	return []model.ChainDescriptor{
		{Name: "alpha", ChainID: 1, Routers: []string{testRouter}, NativePriceKey: testNative},
		{Name: "beta", ChainID: 2, Routers: []string{testRouter}, NativePriceKey: testNative},
	}
}

func tokenLeg(hash, rawValue string) model.TransactionRecord {
	return model.TransactionRecord{
		Hash:            hash,
		To:              testRouter,
		Value:           rawValue,
		ContractAddress: testToken,
		TokenDecimal:    "6",
	}
}

func newTestScheduler(fetcher Fetcher) *Scheduler {
	processor := NewProcessor(fetcher, nil)
	return NewScheduler(SchedulerConfig{Concurrency: 2}, processor, nil)
}

func TestRunFoldsAndSortsDistribution(t *testing.T) {
	fetcher := &chainFetcher{
		tokens: map[uint64][]model.TransactionRecord{
			1: {tokenLeg("0xa1", "100000000")}, // $100 on alpha
			2: {tokenLeg("0xb1", "50000000")},  // $50 on beta
		},
	}

	report, err := newTestScheduler(fetcher).Run(context.Background(), testWallet, twoChains(), testPrices())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if !approxEqual(report.TotalUSD, 150) {
		t.Fatalf("total = %v, want 150", report.TotalUSD)
	}

	want := []model.ChainVolume{
		{Chain: "Alpha", VolumeUSD: 100},
		{Chain: "Beta", VolumeUSD: 50},
	}
	if !reflect.DeepEqual(report.Distribution, want) {
		t.Fatalf("distribution mismatch: %+v != %+v", report.Distribution, want)
	}
	if report.Notice != "" {
		t.Fatalf("unexpected notice: %q", report.Notice)
	}
}

func TestRunTotalEqualsDistributionSum(t *testing.T) {
	fetcher := &chainFetcher{
		tokens: map[uint64][]model.TransactionRecord{
			1: {tokenLeg("0xa1", "123456789")},
			2: {tokenLeg("0xb1", "987654321")},
		},
	}

	report, err := newTestScheduler(fetcher).Run(context.Background(), testWallet, twoChains(), testPrices())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	var sum float64
	for _, row := range report.Distribution {
		sum += row.VolumeUSD
	}
	if !approxEqual(report.TotalUSD, sum) {
		t.Fatalf("total %v != distribution sum %v", report.TotalUSD, sum)
	}
}

func TestRunRejectsMalformedAddress(t *testing.T) {
	fetcher := &chainFetcher{}
	_, err := newTestScheduler(fetcher).Run(context.Background(), "not-an-address", twoChains(), testPrices())

	var validationErr *model.ValidationError
	if !errors.As(err, &validationErr) {
		t.Fatalf("want ValidationError, got %v", err)
	}
}

func TestRunIsolatesChainFailures(t *testing.T) {
	fetcher := &chainFetcher{
		tokens: map[uint64][]model.TransactionRecord{
			2: {tokenLeg("0xb1", "50000000")}, // $50 on beta
		},
		errs: map[uint64]error{
			1: &model.NetworkError{Op: "txlist page 1", Err: errors.New("connection reset")},
		},
	}

	report, err := newTestScheduler(fetcher).Run(context.Background(), testWallet, twoChains(), testPrices())
	if err != nil {
		t.Fatalf("one failed chain must not fail the run: %v", err)
	}

	if !approxEqual(report.TotalUSD, 50) {
		t.Fatalf("total = %v, want 50", report.TotalUSD)
	}
	// Partial success suppresses the retained error.
	if report.Notice != "" {
		t.Fatalf("unexpected notice on partial success: %q", report.Notice)
	}
}

func TestRunAllChainsFailed(t *testing.T) {
	fetcher := &chainFetcher{
		errs: map[uint64]error{
			1: &model.NetworkError{Op: "txlist page 1", Err: errors.New("connection reset")},
			2: &model.ProviderBusyError{Message: "max rate limit reached"},
		},
	}

	report, err := newTestScheduler(fetcher).Run(context.Background(), testWallet, twoChains(), testPrices())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if report.TotalUSD != 0 {
		t.Fatalf("total = %v, want 0", report.TotalUSD)
	}
	if len(report.Distribution) != 0 {
		t.Fatalf("distribution should be empty, got %+v", report.Distribution)
	}
	// The first encountered error is retained as the run's representative.
	if !strings.Contains(report.Notice, "connection reset") {
		t.Fatalf("notice should carry the first error, got %q", report.Notice)
	}
}

func TestRunNoVolumeNotice(t *testing.T) {
	fetcher := &chainFetcher{}

	report, err := newTestScheduler(fetcher).Run(context.Background(), testWallet, twoChains(), testPrices())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if report.Notice != NoticeNoVolume {
		t.Fatalf("notice = %q, want %q", report.Notice, NoticeNoVolume)
	}
}

func TestRunSkipsMisconfiguredChains(t *testing.T) {
	chains := twoChains()
	chains[0].Routers = nil // alpha is misconfigured and skipped

	fetcher := &chainFetcher{
		tokens: map[uint64][]model.TransactionRecord{
			2: {tokenLeg("0xb1", "50000000")},
		},
	}

	report, err := newTestScheduler(fetcher).Run(context.Background(), testWallet, chains, testPrices())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !approxEqual(report.TotalUSD, 50) {
		t.Fatalf("total = %v, want 50", report.TotalUSD)
	}
}

func TestRunIdempotent(t *testing.T) {
	fetcher := &chainFetcher{
		tokens: map[uint64][]model.TransactionRecord{
			1: {tokenLeg("0xa1", "100000000")},
			2: {tokenLeg("0xb1", "50000000")},
		},
	}

	scheduler := newTestScheduler(fetcher)
	first, err := scheduler.Run(context.Background(), testWallet, twoChains(), testPrices())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	second, err := scheduler.Run(context.Background(), testWallet, twoChains(), testPrices())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if first.TotalUSD != second.TotalUSD {
		t.Fatalf("totals differ: %v != %v", first.TotalUSD, second.TotalUSD)
	}
	if !reflect.DeepEqual(first.Distribution, second.Distribution) {
		t.Fatalf("distributions differ: %+v != %+v", first.Distribution, second.Distribution)
	}
}
