package config

import "volumeScope/internal/model"

// DefaultChains lists the tracked DEX's router deployments. Native price
// keys point at each chain's wrapped native token in the price table.
func DefaultChains() []model.ChainDescriptor {
	chains := []model.ChainDescriptor{
		{
			Name:    "base",
			ChainID: 8453,
			Routers: []string{
				"0xE66F53C27Ebe29E85D8396563B35BF8915039796",
				"0x164c20A4E11cBE0d8B5e23F5EE35675890BE280d",
			},
			NativePriceKey: "0x4200000000000000000000000000000000000006",
		},
		{
			Name:    "polygon",
			ChainID: 137,
			Routers: []string{
				"0x4B95b9b404BD69D5c9af00B7F43f327A376909F4",
				"0x164c20A4E11cBE0d8B5e23F5EE35675890BE280d",
			},
			NativePriceKey: "0x0d500b1d8e8ef31e21c99d1db9a6444d3adf1270",
		},
		{
			Name:    "arbitrum",
			ChainID: 42161,
			Routers: []string{
				"0xe6BbA380D02BF8a4c8185cA95025206B6f1Cf8C7",
				"0x0AE1B2730066AD46481ab0a5fd2B5893f8aBa323",
			},
			NativePriceKey: "0x82af49447d8a07e3bd95bd0d56f35241523fbab1",
		},
		{
			Name:    "optimism",
			ChainID: 10,
			Routers: []string{
				"0xCF93E045778dE481De87586b91BC7C4F09147502",
				"0xfE0433d0EBf38adD2E6FdC6D5d552eCe699014A7",
			},
			NativePriceKey: "0x4200000000000000000000000000000000000006",
		},
		{
			Name:    "avalanche",
			ChainID: 43114,
			Routers: []string{
				"0x4459d95b396c418B2144943910E2e68548fFE589",
				"0x0AE1B2730066AD46481ab0a5fd2B5893f8aBa323",
			},
			NativePriceKey: "0xb31f66aa3c1e785363f0875a1b74e27b85fd66c7",
		},
	}

	for i := range chains {
		chains[i] = chains[i].Normalize()
	}
	return chains
}

// DefaultPrices is the static USD price snapshot used when the config file
// does not supply one. Tokens absent from the table contribute zero volume.
func DefaultPrices() model.PriceTable {
	const (
		ethPrice   = 3500
		maticPrice = 0.25
		avaxPrice  = 25
		arbPrice   = 0.45
		opPrice    = 0.7
	)

	return model.NewPriceTable(map[string]float64{
		// ETH and wrapped ETH deployments.
		"0x0000000000000000000000000000000000000000": ethPrice,
		"0x4200000000000000000000000000000000000006": ethPrice, // WETH on Base/Optimism
		"0x82af49447d8a07e3bd95bd0d56f35241523fbab1": ethPrice, // WETH on Arbitrum
		"0x7ceb23fd6bc0add59e62ac25578270cff1b9f619": ethPrice, // WETH on Polygon
		"0x49d5c2bdcdb0836572623d11b2446736709841f4": ethPrice, // WETH.e on Avalanche

		// Other native assets.
		"0x0d500b1d8e8ef31e21c99d1db9a6444d3adf1270": maticPrice, // WMATIC
		"0xb31f66aa3c1e785363f0875a1b74e27b85fd66c7": avaxPrice,  // WAVAX
		"0x912ce59144191c1204e64559fe8253a0e49e6548": arbPrice,   // ARB
		"0x4200000000000000000000000000000000000042": opPrice,    // OP

		// Stablecoins pinned at one dollar.
		"0x833589fcd6edb6e08f4c7c32d4f71b54bda02913": 1, // USDC on Base
		"0x2791bca1f2de4661ed88a30c99a7a922ae9dc765": 1, // USDC on Polygon
		"0x7f5c764cbc14f9669b88837ca1490cca17c31607": 1, // USDC on Optimism
		"0xaf88d065e77c8cc2239327c5d4acbce2ee228533": 1, // USDC on Arbitrum
		"0xaf88d065e77c8cc2239327c5edb3a432268e5831": 1, // USDC on Arbitrum (bridged)
		"0xb97ef9ef8734c71904d8002f8b6bc66dd9c48a6e": 1, // USDC.e on Avalanche
		"0x50c5725949a6f0c72e6ce646f6d2a68dff4544dd": 1, // DAI on Base
		"0x8f3cf7ad23cd3cadbd9735aff958023239c6a063": 1, // DAI on Polygon
		"0xda10009cbd5d07dd0cecc66161fc93d7c9000da1": 1, // DAI on Optimism/Arbitrum
		"0x8729438eb3f861076c2cbcc221ae4ed79d4dd268": 1, // DAI.e on Avalanche
		"0xfd086bc7cd5c481dcc9c85ebe478a1c0b69fcbb9": 1, // USDT on Base/Arbitrum
		"0xc2132d05d31c914a87c6611c10748aeb04b58e8f": 1, // USDT on Polygon
		"0x94b008aa00579c1307b0ef2c499ad98a8ce58e58": 1, // USDT on Optimism
		"0xd586c7c8e53578a71c351aa21c9927e0a6176798": 1, // USDT.e on Avalanche
	})
}
