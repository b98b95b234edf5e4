package stress

import "RiskRadar/internal/model"

// Sector tags recognized by the scenario catalog. Holdings carry one of
// these; anything else falls back to a scenario's default shock and is
// flagged in the outcome warnings.
const (
	SectorTechnology = "technology"
	SectorFinance    = "finance"
	SectorEnergy     = "energy"
	SectorHealthcare = "healthcare"
	SectorConsumer   = "consumer"
	SectorUtilities  = "utilities"
	SectorBonds      = "bonds"
	SectorCash       = "cash"
)

// Catalog is the fixed set of stress scenarios. Shocks are fractional
// price moves applied to the current market value of each holding.
var Catalog = []model.StressScenario{
	{
		ID:          "market_crash",
		Name:        "Market Crash",
		Description: "Broad equity selloff of 2008 magnitude",
		Shocks: map[string]float64{
			SectorTechnology: -0.35,
			SectorFinance:    -0.40,
			SectorEnergy:     -0.30,
			SectorHealthcare: -0.20,
			SectorConsumer:   -0.25,
			SectorUtilities:  -0.15,
			SectorBonds:      0.05,
			SectorCash:       0,
		},
		Default: -0.25,
	},
	{
		ID:          "recession",
		Name:        "Recession",
		Description: "Earnings contraction across cyclical sectors",
		Shocks: map[string]float64{
			SectorTechnology: -0.15,
			SectorFinance:    -0.18,
			SectorEnergy:     -0.12,
			SectorHealthcare: -0.05,
			SectorConsumer:   -0.15,
			SectorUtilities:  -0.03,
			SectorBonds:      0.03,
			SectorCash:       0,
		},
		Default: -0.10,
	},
	{
		ID:          "rate_hike",
		Name:        "Rate Hike",
		Description: "Central bank hikes 200bp above expectations",
		Shocks: map[string]float64{
			SectorTechnology: -0.12,
			SectorFinance:    0.04,
			SectorEnergy:     -0.02,
			SectorHealthcare: -0.04,
			SectorConsumer:   -0.06,
			SectorUtilities:  -0.10,
			SectorBonds:      -0.08,
			SectorCash:       0,
		},
		Default: -0.05,
	},
	{
		ID:          "sector_rotation",
		Name:        "Sector Rotation",
		Description: "Growth-to-value rotation out of technology",
		Shocks: map[string]float64{
			SectorTechnology: -0.15,
			SectorFinance:    0.08,
			SectorEnergy:     0.10,
			SectorHealthcare: 0.03,
			SectorConsumer:   0.02,
			SectorUtilities:  0.05,
			SectorBonds:      0,
			SectorCash:       0,
		},
		Default: 0,
	},
	{
		ID:          "liquidity_crisis",
		Name:        "Liquidity Crisis",
		Description: "Funding stress, everything risky sold at once",
		Shocks: map[string]float64{
			SectorTechnology: -0.20,
			SectorFinance:    -0.25,
			SectorEnergy:     -0.18,
			SectorHealthcare: -0.12,
			SectorConsumer:   -0.15,
			SectorUtilities:  -0.10,
			SectorBonds:      -0.05,
			SectorCash:       0,
		},
		Default: -0.15,
	},
	{
		ID:          "inflation_spike",
		Name:        "Inflation Spike",
		Description: "CPI surprise, real assets outperform duration",
		Shocks: map[string]float64{
			SectorTechnology: -0.10,
			SectorFinance:    -0.02,
			SectorEnergy:     0.12,
			SectorHealthcare: -0.03,
			SectorConsumer:   -0.08,
			SectorUtilities:  -0.05,
			SectorBonds:      -0.12,
			SectorCash:       -0.02,
		},
		Default: -0.05,
	},
}
