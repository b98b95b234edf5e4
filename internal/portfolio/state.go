package portfolio

import (
	"encoding/json"
	"os"
	"time"

	"RiskRadar/internal/model"
)

// State is the persisted portfolio: the holdings and when they last
// changed.
type State struct {
	Holdings  []model.Holding `json:"holdings"`
	UpdatedAt time.Time       `json:"updated_at"`
}

// LoadState reads portfolio state from a JSON file. Returns an empty
// state if the file doesn't exist.
func LoadState(filePath string) (*State, error) {
	data, err := os.ReadFile(filePath)
	if err != nil {
		if os.IsNotExist(err) {
			return &State{}, nil
		}
		return nil, err
	}
	var state State
	if err := json.Unmarshal(data, &state); err != nil {
		return nil, err
	}
	return &state, nil
}

// SaveState writes portfolio state to a JSON file.
func SaveState(filePath string, state *State) error {
	state.UpdatedAt = time.Now()
	data, err := json.MarshalIndent(state, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(filePath, data, 0644)
}
