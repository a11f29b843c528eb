package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"volumeScope/internal/config"
)

func runChains(cmd *cobra.Command, _ []string) error {
	cfgFile, _ := cmd.Flags().GetString("config")
	cfg, err := config.Load(cfgFile, cmd.Flags())
	if err != nil {
		return err
	}

	for _, chain := range cfg.Chains {
		priced := "unpriced"
		if cfg.Prices.Lookup(chain.NativePriceKey) > 0 {
			priced = fmt.Sprintf("native $%g", cfg.Prices.Lookup(chain.NativePriceKey))
		}
		fmt.Printf("%-12s id=%-6d routers=%s (%s)\n",
			chain.DisplayName(),
			chain.ChainID,
			strings.Join(chain.Routers, ","),
			priced,
		)
	}
	return nil
}
