package ai

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/Marakke/activity-app/internal/analytics"
)

// ParseMacroEstimate extracts a macro JSON object from model output.
// Models wrap JSON in code fences or prose often enough that we scan for
// the outermost braces instead of unmarshalling the raw text.
func ParseMacroEstimate(text string) (MacroEstimate, error) {
	start := strings.Index(text, "{")
	end := strings.LastIndex(text, "}")
	if start < 0 || end <= start {
		return MacroEstimate{}, fmt.Errorf("no JSON object in macro response")
	}

	var raw struct {
		Calories float64 `json:"calories"`
		Protein  float64 `json:"protein"`
		Carbs    float64 `json:"carbs"`
		Fats     float64 `json:"fats"`
	}
	if err := json.Unmarshal([]byte(text[start:end+1]), &raw); err != nil {
		return MacroEstimate{}, fmt.Errorf("decode macro response: %w", err)
	}

	var (
		est MacroEstimate
		err error
	)
	if est.Calories, err = analytics.ValidateMacro("calories", raw.Calories); err != nil {
		return MacroEstimate{}, err
	}
	if est.Protein, err = analytics.ValidateMacro("protein", raw.Protein); err != nil {
		return MacroEstimate{}, err
	}
	if est.Carbs, err = analytics.ValidateMacro("carbs", raw.Carbs); err != nil {
		return MacroEstimate{}, err
	}
	if est.Fats, err = analytics.ValidateMacro("fats", raw.Fats); err != nil {
		return MacroEstimate{}, err
	}
	return est, nil
}
