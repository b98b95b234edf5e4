package model

// StressScenario defines a named shock map by sector. Shocks are
// fractional price moves, e.g. -0.20 for a 20% drop. The Default shock
// applies to sectors not present in the map.
type StressScenario struct {
	ID          string             `json:"scenario_id"`
	Name        string             `json:"name"`
	Description string             `json:"description"`
	Shocks      map[string]float64 `json:"shocks"`
	Default     float64            `json:"default_shock"`
}

// StressOutcome is the deterministic result of applying one scenario to
// the current holdings.
type StressOutcome struct {
	ScenarioID string   `json:"scenario_id"`
	NewValue   float64  `json:"new_value"`
	PnL        float64  `json:"pnl"`
	PnLPercent float64  `json:"pnl_percent"`
	Warnings   []string `json:"warnings"`
}

// StressReport aggregates all scenario outcomes for one portfolio.
type StressReport struct {
	Outcomes  map[string]StressOutcome `json:"outcomes"`
	WorstCase string                   `json:"worst_case_scenario"`
	BestCase  string                   `json:"best_case_scenario"`
}
