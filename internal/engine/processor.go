package engine

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"go.uber.org/zap"

	"volumeScope/internal/model"
)

const (
	actionTxList  = "txlist"
	actionTokenTx = "tokentx"

	// nativeDecimals is the base-asset scale on every EVM chain.
	nativeDecimals = 18
)

// Fetcher retrieves one kind of account history for a chain.
type Fetcher interface {
	FetchAll(ctx context.Context, action, address string, chainID uint64) ([]model.TransactionRecord, error)
}

// Processor computes one chain's router volume: fetch both transfer lists,
// keep router interactions, price each leg, and reduce per transaction hash.
type Processor struct {
	fetcher Fetcher
	logger  *zap.Logger
}

// NewProcessor builds a Processor with its dependencies.
func NewProcessor(fetcher Fetcher, logger *zap.Logger) *Processor {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Processor{fetcher: fetcher, logger: logger}
}

// Process produces the chain's tagged result. Failures are carried inside
// the result and never cross the call boundary as a panic or a lost error.
func (p *Processor) Process(ctx context.Context, address string, chain model.ChainDescriptor, prices model.PriceTable) model.PerChainResult {
	chain = chain.Normalize()
	result := model.PerChainResult{Chain: chain.Name}

	if len(chain.Routers) == 0 {
		result.Err = &model.ConfigError{Chain: chain.Name, Reason: "no router addresses"}
		return result
	}
	if chain.ChainID == 0 {
		result.Err = &model.ConfigError{Chain: chain.Name, Reason: "missing chain id"}
		return result
	}
	if chain.NativePriceKey == "" {
		result.Err = &model.ConfigError{Chain: chain.Name, Reason: "missing native price key"}
		return result
	}

	// The native list completes before the token list starts so the two
	// fetches never compete for the shared rate budget.
	native, err := p.fetcher.FetchAll(ctx, actionTxList, address, chain.ChainID)
	if err != nil {
		result.Err = fmt.Errorf("fetch %s native transfers: %w", chain.Name, err)
		return result
	}
	tokens, err := p.fetcher.FetchAll(ctx, actionTokenTx, address, chain.ChainID)
	if err != nil {
		result.Err = fmt.Errorf("fetch %s token transfers: %w", chain.Name, err)
		return result
	}

	routers := chain.RouterSet()

	nativePrice := prices.Lookup(chain.NativePriceKey)
	if nativePrice == 0 {
		p.logger.Warn("native price unknown, native legs will contribute zero",
			zap.String("chain", chain.Name),
			zap.String("key", chain.NativePriceKey),
		)
	}

	// One hash may appear in both lists when a swap emits a native leg and a
	// token leg; the most valuable observed leg wins, never the sum.
	maxPerHash := make(map[string]float64)

	for _, tx := range native {
		if !IsRouterInteraction(tx, routers) {
			continue
		}
		recordLeg(maxPerHash, tx.Hash, usdValue(ToDecimal(tx.Value, nativeDecimals), nativePrice))
	}

	for _, tx := range tokens {
		if !IsRouterInteraction(tx, routers) {
			continue
		}
		decimals := -1
		if parsed, err := strconv.Atoi(strings.TrimSpace(tx.TokenDecimal)); err == nil {
			decimals = parsed
		}
		price := prices.Lookup(tx.ContractAddress)
		recordLeg(maxPerHash, tx.Hash, usdValue(ToDecimal(tx.Value, decimals), price))
	}

	var volume float64
	for _, usd := range maxPerHash {
		volume += usd
	}
	result.VolumeUSD = volume

	p.logger.Info("chain processed",
		zap.String("chain", chain.Name),
		zap.Int("native_transfers", len(native)),
		zap.Int("token_transfers", len(tokens)),
		zap.Int("valued_txs", len(maxPerHash)),
		zap.Float64("volume_usd", volume),
	)
	return result
}

func recordLeg(maxPerHash map[string]float64, hash string, usd float64) {
	if usd <= 0 {
		return
	}
	if usd > maxPerHash[hash] {
		maxPerHash[hash] = usd
	}
}
