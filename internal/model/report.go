package model

// ChainVolume is one row of the volume distribution.
type ChainVolume struct {
	Chain     string  `json:"chain"`
	VolumeUSD float64 `json:"volume_usd"`
}

// PerChainResult is the outcome of processing one chain: either a
// non-negative USD volume or an explicit failure. Produced exactly once per
// configured chain per run.
type PerChainResult struct {
	Chain     string
	VolumeUSD float64
	Err       error
}

// Failed reports whether the chain produced an error instead of a volume.
func (r PerChainResult) Failed() bool {
	return r.Err != nil
}

// AggregateReport is the cross-chain volume summary for one address. The
// distribution is filtered to positive volumes and sorted descending, so
// TotalUSD always equals the sum of the distribution rows.
type AggregateReport struct {
	Address      string        `json:"address"`
	TotalUSD     float64       `json:"total_usd"`
	Distribution []ChainVolume `json:"distribution"`
	Notice       string        `json:"notice,omitempty"`
	GeneratedAt  string        `json:"generated_at"`
}

// Empty reports whether no identifiable volume was found.
func (r AggregateReport) Empty() bool {
	return r.TotalUSD == 0
}
