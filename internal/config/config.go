package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"volumeScope/internal/model"
)

// Config holds configuration values loaded from flags, env, or config file.
type Config struct {
	APIURL       string
	APIKey       string
	RPCURL       string
	Concurrency  int
	BatchPause   time.Duration
	PageDelay    time.Duration
	MaxAttempts  int
	RetryBackoff time.Duration
	PGDSN        string
	Out          string
	LogLevel     string

	Chains []model.ChainDescriptor
	Prices model.PriceTable
}

// Load merges config file, environment variables, and flags into Config.
// The chain set and price table fall back to the built-in defaults when the
// config file does not supply them.
func Load(cfgFile string, flags *pflag.FlagSet) (Config, error) {
	v := viper.New()
	v.SetEnvPrefix("VOLUMESCOPE")
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()

	v.SetDefault("api-url", "https://api.etherscan.io/v2/api")
	v.SetDefault("concurrency", 2)
	v.SetDefault("batch-pause", time.Second)
	v.SetDefault("page-delay", 2*time.Second)
	v.SetDefault("max-attempts", 3)
	v.SetDefault("retry-backoff", time.Second)
	v.SetDefault("log-level", "info")

	if flags != nil {
		if err := v.BindPFlags(flags); err != nil {
			return Config{}, fmt.Errorf("bind flags: %w", err)
		}
	}

	if cfgFile != "" {
		v.SetConfigFile(cfgFile)
		if err := v.ReadInConfig(); err != nil {
			return Config{}, fmt.Errorf("read config: %w", err)
		}
	} else {
		v.SetConfigName("config")
		v.AddConfigPath(".")
		if err := v.ReadInConfig(); err != nil {
			if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
				return Config{}, fmt.Errorf("read config: %w", err)
			}
		}
	}

	cfg := Config{
		APIURL:       v.GetString("api-url"),
		APIKey:       v.GetString("api-key"),
		RPCURL:       v.GetString("rpc"),
		Concurrency:  v.GetInt("concurrency"),
		BatchPause:   v.GetDuration("batch-pause"),
		PageDelay:    v.GetDuration("page-delay"),
		MaxAttempts:  v.GetInt("max-attempts"),
		RetryBackoff: v.GetDuration("retry-backoff"),
		PGDSN:        v.GetString("pg-dsn"),
		Out:          v.GetString("out"),
		LogLevel:     v.GetString("log-level"),
	}

	chains, err := loadChains(v)
	if err != nil {
		return Config{}, err
	}
	cfg.Chains = chains

	prices, err := loadPrices(v)
	if err != nil {
		return Config{}, err
	}
	cfg.Prices = prices

	return cfg, nil
}

func loadChains(v *viper.Viper) ([]model.ChainDescriptor, error) {
	if !v.IsSet("chains") {
		return DefaultChains(), nil
	}

	var entries []model.ChainDescriptor
	if err := v.UnmarshalKey("chains", &entries); err != nil {
		return nil, fmt.Errorf("parse chains: %w", err)
	}

	chains := make([]model.ChainDescriptor, 0, len(entries))
	for _, entry := range entries {
		if strings.TrimSpace(entry.Name) == "" {
			return nil, fmt.Errorf("chain entry without a name")
		}
		chains = append(chains, entry.Normalize())
	}
	return chains, nil
}

func loadPrices(v *viper.Viper) (model.PriceTable, error) {
	if !v.IsSet("prices") {
		return DefaultPrices(), nil
	}

	var entries map[string]float64
	if err := v.UnmarshalKey("prices", &entries); err != nil {
		return nil, fmt.Errorf("parse prices: %w", err)
	}
	return model.NewPriceTable(entries), nil
}
