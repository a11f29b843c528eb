package model

import "fmt"

// ValidationError reports a malformed input address. It fails the run before
// any network call is made.
type ValidationError struct {
	Input string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid address: %q", e.Input)
}

// ConfigError reports an incomplete chain configuration. The chain is
// skipped; the run continues with the remaining chains.
type ConfigError struct {
	Chain  string
	Reason string
}

func (e *ConfigError) Error() string {
	return fmt.Sprintf("chain %s misconfigured: %s", e.Chain, e.Reason)
}

// NetworkError reports a fetch that exhausted its retry budget. The chain is
// marked failed; the run continues with the remaining chains.
type NetworkError struct {
	Op  string
	Err error
}

func (e *NetworkError) Error() string {
	return fmt.Sprintf("%s: %v", e.Op, e.Err)
}

func (e *NetworkError) Unwrap() error {
	return e.Err
}

// ProviderBusyError reports an explicit upstream overload signal. It is kept
// distinct from NetworkError so callers can advise retrying later instead of
// masking it as a transient failure.
type ProviderBusyError struct {
	Message string
}

func (e *ProviderBusyError) Error() string {
	if e.Message == "" {
		return "data provider busy, try again in a moment"
	}
	return fmt.Sprintf("data provider busy: %s", e.Message)
}
