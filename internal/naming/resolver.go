package naming

import (
	"context"
	"fmt"
	"strings"

	"github.com/ethereum/go-ethereum"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/crypto"
	"go.uber.org/zap"

	"volumeScope/internal/chain"
)

// Resolver turns a human-readable name into a raw address. The aggregation
// engine never depends on this; it only ever receives a raw address.
type Resolver interface {
	Resolve(ctx context.Context, name string) (string, error)
}

// registryAddress is the ENS registry, identical across mainnet deployments.
var registryAddress = common.HexToAddress("0x00000000000C2E074eC69A0dFb2997BA6C7d2e1e")

// IsName reports whether input looks like an ENS name rather than a raw
// address.
func IsName(input string) bool {
	return strings.HasSuffix(strings.ToLower(strings.TrimSpace(input)), ".eth")
}

// ENSResolver resolves names against the on-chain ENS registry: one eth_call
// to look up the name's resolver, one to look up the address record.
type ENSResolver struct {
	client *chain.Client
	logger *zap.Logger
}

// NewENSResolver builds an ENSResolver on the given RPC client.
func NewENSResolver(client *chain.Client, logger *zap.Logger) *ENSResolver {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ENSResolver{client: client, logger: logger}
}

// Resolve returns the lower-cased hex address registered for name.
func (r *ENSResolver) Resolve(ctx context.Context, name string) (string, error) {
	if r.client == nil {
		return "", fmt.Errorf("chain client is nil")
	}
	name = strings.TrimSpace(name)
	if name == "" {
		return "", fmt.Errorf("name is empty")
	}

	node := Namehash(name)

	resolverAddr, err := r.lookupResolver(ctx, node)
	if err != nil {
		return "", fmt.Errorf("resolve %s: %w", name, err)
	}

	addr, err := r.lookupAddr(ctx, resolverAddr, node)
	if err != nil {
		return "", fmt.Errorf("resolve %s: %w", name, err)
	}

	resolved := strings.ToLower(addr.Hex())
	r.logger.Info("name resolved", zap.String("name", name), zap.String("address", resolved))
	return resolved, nil
}

func (r *ENSResolver) lookupResolver(ctx context.Context, node [32]byte) (common.Address, error) {
	parsed, err := registryABIInstance()
	if err != nil {
		return common.Address{}, fmt.Errorf("parse registry abi: %w", err)
	}

	data, err := parsed.Pack("resolver", node)
	if err != nil {
		return common.Address{}, fmt.Errorf("pack resolver call: %w", err)
	}

	out, err := r.client.CallContract(ctx, ethereum.CallMsg{To: &registryAddress, Data: data}, nil)
	if err != nil {
		return common.Address{}, fmt.Errorf("registry call: %w", err)
	}

	values, err := parsed.Unpack("resolver", out)
	if err != nil {
		return common.Address{}, fmt.Errorf("unpack resolver result: %w", err)
	}
	if len(values) == 0 {
		return common.Address{}, fmt.Errorf("empty resolver result")
	}
	addr, ok := values[0].(common.Address)
	if !ok {
		return common.Address{}, fmt.Errorf("unexpected resolver result type %T", values[0])
	}
	if addr == (common.Address{}) {
		return common.Address{}, fmt.Errorf("no resolver configured")
	}
	return addr, nil
}

func (r *ENSResolver) lookupAddr(ctx context.Context, resolver common.Address, node [32]byte) (common.Address, error) {
	parsed, err := resolverABIInstance()
	if err != nil {
		return common.Address{}, fmt.Errorf("parse resolver abi: %w", err)
	}

	data, err := parsed.Pack("addr", node)
	if err != nil {
		return common.Address{}, fmt.Errorf("pack addr call: %w", err)
	}

	out, err := r.client.CallContract(ctx, ethereum.CallMsg{To: &resolver, Data: data}, nil)
	if err != nil {
		return common.Address{}, fmt.Errorf("resolver call: %w", err)
	}

	values, err := parsed.Unpack("addr", out)
	if err != nil {
		return common.Address{}, fmt.Errorf("unpack addr result: %w", err)
	}
	if len(values) == 0 {
		return common.Address{}, fmt.Errorf("empty addr result")
	}
	addr, ok := values[0].(common.Address)
	if !ok {
		return common.Address{}, fmt.Errorf("unexpected addr result type %T", values[0])
	}
	if addr == (common.Address{}) {
		return common.Address{}, fmt.Errorf("name does not resolve to an address")
	}
	return addr, nil
}

// Namehash implements the EIP-137 recursive name hash.
func Namehash(name string) [32]byte {
	var node [32]byte
	if name == "" {
		return node
	}

	labels := strings.Split(strings.ToLower(name), ".")
	for i := len(labels) - 1; i >= 0; i-- {
		labelHash := crypto.Keccak256([]byte(labels[i]))
		copy(node[:], crypto.Keccak256(node[:], labelHash))
	}
	return node
}
