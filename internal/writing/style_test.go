package writing

import (
	"errors"
	"testing"
)

func TestParseStyleAcceptsCanonicalTags(t *testing.T) {
	for _, style := range Styles() {
		parsed, err := ParseStyle(style.String())
		if err != nil {
			t.Fatalf("expected %q to parse, got %v", style, err)
		}
		if parsed != style {
			t.Fatalf("expected %q, got %q", style, parsed)
		}
	}
}

func TestParseStyleNormalizesCase(t *testing.T) {
	parsed, err := ParseStyle("  Professional ")
	if err != nil {
		t.Fatalf("expected normalized input to parse, got %v", err)
	}
	if parsed != StyleProfessional {
		t.Fatalf("expected professional, got %q", parsed)
	}
}

func TestParseStyleRejectsUnknownTags(t *testing.T) {
	for _, raw := range []string{"", "technical", "all", "poetry"} {
		if _, err := ParseStyle(raw); !errors.Is(err, ErrInvalidStyle) {
			t.Fatalf("expected ErrInvalidStyle for %q, got %v", raw, err)
		}
	}
}

func TestValidateScoresAcceptsBounds(t *testing.T) {
	report := ScoreReport{
		OverallScore:       0,
		StyleSpecificScore: 100,
		Metrics:            Metrics{Clarity: 50, Structure: 0, WordChoice: 100, Grammar: 99.4},
	}
	if err := report.ValidateScores(); err != nil {
		t.Fatalf("expected in-range scores to validate, got %v", err)
	}
}

func TestValidateScoresRejectsOutOfRange(t *testing.T) {
	report := ScoreReport{
		OverallScore:       82,
		StyleSpecificScore: 79,
		Metrics:            Metrics{Clarity: 101, Structure: 85, WordChoice: 75, Grammar: 90},
	}
	if err := report.ValidateScores(); !errors.Is(err, ErrScoreOutOfRange) {
		t.Fatalf("expected ErrScoreOutOfRange, got %v", err)
	}

	report.Metrics.Clarity = -1
	if err := report.ValidateScores(); !errors.Is(err, ErrScoreOutOfRange) {
		t.Fatalf("expected ErrScoreOutOfRange for negative score, got %v", err)
	}
}

func TestFallbacksCoverEveryStyle(t *testing.T) {
	for _, style := range Styles() {
		if FallbackPrompt(style) == "" {
			t.Fatalf("missing fallback prompt for %q", style)
		}
		report := FallbackReport(style)
		if err := report.ValidateScores(); err != nil {
			t.Fatalf("fallback report for %q out of range: %v", style, err)
		}
		if len(report.Strengths) != 3 || len(report.Weaknesses) != 2 || len(report.StyleSpecificTips) != 3 {
			t.Fatalf("fallback report for %q has unexpected feedback shape", style)
		}
	}
}
