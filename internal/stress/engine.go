package stress

import (
	"fmt"

	"RiskRadar/internal/model"
)

// Position is a holding snapshot the engine shocks: current market
// value plus the sector tag used for shock lookup.
type Position struct {
	Ticker string
	Sector string
	Value  float64
}

// RunScenario applies one scenario to the positions. Purely
// deterministic: new_value = Σ value_i · (1 + shock_i), where shock_i
// is looked up by the position's sector. Unknown sectors get the
// scenario's default shock and a warning is recorded.
func RunScenario(positions []Position, scenario model.StressScenario) model.StressOutcome {
	total := 0.0
	newValue := 0.0
	var warnings []string

	for _, p := range positions {
		total += p.Value
		shock, ok := scenario.Shocks[p.Sector]
		if !ok {
			shock = scenario.Default
			warnings = append(warnings, fmt.Sprintf("unknown sector %q for %s, applied default shock %+.0f%%",
				p.Sector, p.Ticker, scenario.Default*100))
		}
		newValue += p.Value * (1 + shock)
	}

	pnl := newValue - total
	pnlPct := 0.0
	if total > 0 {
		pnlPct = pnl / total
	}
	return model.StressOutcome{
		ScenarioID: scenario.ID,
		NewValue:   newValue,
		PnL:        pnl,
		PnLPercent: pnlPct,
		Warnings:   warnings,
	}
}

// RunAll applies every scenario in the set (the fixed catalog when nil)
// and reports per-scenario outcomes with the best and worst cases.
func RunAll(positions []Position, scenarios []model.StressScenario) (*model.StressReport, error) {
	if len(positions) == 0 {
		return nil, &model.InvalidParameterError{Name: "positions", Reason: "no holdings to stress"}
	}
	if scenarios == nil {
		scenarios = Catalog
	}
	if len(scenarios) == 0 {
		return nil, &model.InvalidParameterError{Name: "scenarios", Reason: "empty scenario set"}
	}

	outcomes := make(map[string]model.StressOutcome, len(scenarios))
	worst, best := "", ""
	worstPnL, bestPnL := 0.0, 0.0
	for i, sc := range scenarios {
		out := RunScenario(positions, sc)
		outcomes[sc.ID] = out
		if i == 0 || out.PnL < worstPnL {
			worst, worstPnL = sc.ID, out.PnL
		}
		if i == 0 || out.PnL > bestPnL {
			best, bestPnL = sc.ID, out.PnL
		}
	}

	return &model.StressReport{Outcomes: outcomes, WorstCase: worst, BestCase: best}, nil
}
