package writing

import (
	"errors"
	"fmt"
)

// MaxScore bounds every numeric score in a report; the lower bound is zero.
const MaxScore = 100

// ErrScoreOutOfRange indicates a score outside [0,100].
var ErrScoreOutOfRange = errors.New("writing: score out of range")

// Metrics holds the four sub-scores shared by every evaluation.
type Metrics struct {
	Clarity    float64 `json:"clarity"`
	Structure  float64 `json:"structure"`
	WordChoice float64 `json:"wordChoice"`
	Grammar    float64 `json:"grammar"`
}

// ScoreReport is the structured outcome of evaluating one writing sample.
// Scores arrive as floats from the evaluation model and are only rounded to
// integers at the persistence boundary.
type ScoreReport struct {
	OverallScore       float64  `json:"overallScore"`
	Metrics            Metrics  `json:"metrics"`
	StyleSpecificScore float64  `json:"styleSpecificScore"`
	Strengths          []string `json:"strengths"`
	Weaknesses         []string `json:"weaknesses"`
	StyleSpecificTips  []string `json:"styleSpecificTips"`
}

// ValidateScores rejects any score outside [0,100]. Callers must not clamp.
func (r ScoreReport) ValidateScores() error {
	checks := []struct {
		name  string
		value float64
	}{
		{"overallScore", r.OverallScore},
		{"styleSpecificScore", r.StyleSpecificScore},
		{"clarity", r.Metrics.Clarity},
		{"structure", r.Metrics.Structure},
		{"wordChoice", r.Metrics.WordChoice},
		{"grammar", r.Metrics.Grammar},
	}
	for _, check := range checks {
		if check.value < 0 || check.value > MaxScore {
			return fmt.Errorf("%w: %s=%v", ErrScoreOutOfRange, check.name, check.value)
		}
	}
	return nil
}
