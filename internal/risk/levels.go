package risk

import "RiskRadar/internal/model"

// Volatility breakpoints for the qualitative risk level: below 10%
// annualized is Low, 10–25% Medium, above 25% High.
var levelBands = []struct {
	MaxVol float64
	Level  model.RiskLevel
}{
	{0.10, model.RiskLow},
	{0.25, model.RiskMedium},
}

// ConcentrationThreshold escalates the level one band when any single
// position exceeds this share of portfolio value.
const ConcentrationThreshold = 0.40

// classifyRisk maps annualized volatility to a risk level, escalated
// when concentration is above threshold.
func classifyRisk(volatility, concentration float64) model.RiskLevel {
	level := model.RiskHigh
	for _, band := range levelBands {
		if volatility < band.MaxVol {
			level = band.Level
			break
		}
	}
	if concentration > ConcentrationThreshold {
		level = escalate(level)
	}
	return level
}

func escalate(level model.RiskLevel) model.RiskLevel {
	switch level {
	case model.RiskLow:
		return model.RiskMedium
	default:
		return model.RiskHigh
	}
}
