package model

import "strings"

// ChainDescriptor is the static per-chain configuration consumed by the
// engine. The engine never mutates it.
type ChainDescriptor struct {
	Name           string   `mapstructure:"name" json:"name"`
	ChainID        uint64   `mapstructure:"chain-id" json:"chain_id"`
	Routers        []string `mapstructure:"routers" json:"routers"`
	NativePriceKey string   `mapstructure:"native-price-key" json:"native_price_key"`
}

// Normalize returns a copy with router addresses and the native price key
// lower-cased and blank router entries dropped.
func (c ChainDescriptor) Normalize() ChainDescriptor {
	routers := make([]string, 0, len(c.Routers))
	for _, router := range c.Routers {
		router = strings.ToLower(strings.TrimSpace(router))
		if router == "" {
			continue
		}
		routers = append(routers, router)
	}
	c.Routers = routers
	c.NativePriceKey = strings.ToLower(strings.TrimSpace(c.NativePriceKey))
	return c
}

// RouterSet returns the lower-cased router addresses as a membership set.
func (c ChainDescriptor) RouterSet() map[string]struct{} {
	set := make(map[string]struct{}, len(c.Routers))
	for _, router := range c.Routers {
		router = strings.ToLower(strings.TrimSpace(router))
		if router == "" {
			continue
		}
		set[router] = struct{}{}
	}
	return set
}

// DisplayName returns the chain name with its first letter upper-cased.
func (c ChainDescriptor) DisplayName() string {
	return TitleChain(c.Name)
}

// TitleChain upper-cases the first letter of a chain name for display.
func TitleChain(name string) string {
	if name == "" {
		return name
	}
	return strings.ToUpper(name[:1]) + name[1:]
}
