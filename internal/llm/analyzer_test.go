package llm

import (
	"context"
	"errors"
	"testing"

	"github.com/wordcraft-labs/wordcraft-backend/internal/writing"
)

type stubModel struct {
	reply string
	err   error
	calls int
}

func (m *stubModel) GenerateText(_ context.Context, _ string) (string, error) {
	m.calls++
	if m.err != nil {
		return "", m.err
	}
	return m.reply, nil
}

const analysisReply = `{
  "overallScore": 82,
  "metrics": {"clarity": 80, "structure": 85, "wordChoice": 75, "grammar": 90},
  "styleSpecificScore": 79,
  "strengths": ["clear thesis", "good flow", "strong vocabulary"],
  "weaknesses": ["weak conclusion", "some repetition"],
  "styleSpecificTips": ["cite sources", "vary sentence length", "tighten phrasing"]
}`

func TestEvaluateParsesPlainJSON(t *testing.T) {
	model := &stubModel{reply: analysisReply}
	analyzer, err := NewAnalyzer(model, nil)
	if err != nil {
		t.Fatalf("failed to create analyzer: %v", err)
	}

	report, err := analyzer.Evaluate(context.Background(), writing.StyleAcademic, "Discuss a topic", "My essay text")
	if err != nil {
		t.Fatalf("evaluate failed: %v", err)
	}
	if report.OverallScore != 82 {
		t.Fatalf("expected overall score 82, got %v", report.OverallScore)
	}
	if report.Metrics.WordChoice != 75 {
		t.Fatalf("expected word choice 75, got %v", report.Metrics.WordChoice)
	}
	if len(report.Strengths) != 3 {
		t.Fatalf("expected 3 strengths, got %d", len(report.Strengths))
	}
}

func TestEvaluateStripsCodeFence(t *testing.T) {
	model := &stubModel{reply: "```json\n" + analysisReply + "\n```"}
	analyzer, err := NewAnalyzer(model, nil)
	if err != nil {
		t.Fatalf("failed to create analyzer: %v", err)
	}

	report, err := analyzer.Evaluate(context.Background(), writing.StyleCreative, "Write a scene", "Once upon a time")
	if err != nil {
		t.Fatalf("evaluate failed on fenced reply: %v", err)
	}
	if report.StyleSpecificScore != 79 {
		t.Fatalf("expected style score 79, got %v", report.StyleSpecificScore)
	}
}

func TestEvaluateSurfacesMalformedResponse(t *testing.T) {
	model := &stubModel{reply: "I scored it an 82 out of 100, great job!"}
	analyzer, err := NewAnalyzer(model, nil)
	if err != nil {
		t.Fatalf("failed to create analyzer: %v", err)
	}

	_, err = analyzer.Evaluate(context.Background(), writing.StyleMarketing, "Pitch a product", "Buy this now")
	if !errors.Is(err, ErrMalformedResponse) {
		t.Fatalf("expected ErrMalformedResponse, got %v", err)
	}
}

func TestEvaluateRejectsEmptyResponseWithoutUpstreamCall(t *testing.T) {
	model := &stubModel{reply: analysisReply}
	analyzer, err := NewAnalyzer(model, nil)
	if err != nil {
		t.Fatalf("failed to create analyzer: %v", err)
	}

	_, err = analyzer.Evaluate(context.Background(), writing.StyleProfessional, "Write a memo...", "")
	if !errors.Is(err, ErrEmptyInput) {
		t.Fatalf("expected ErrEmptyInput, got %v", err)
	}
	if model.calls != 0 {
		t.Fatalf("expected no upstream call for invalid input, got %d", model.calls)
	}
}

func TestEvaluateRejectsInvalidStyleWithoutUpstreamCall(t *testing.T) {
	model := &stubModel{reply: analysisReply}
	analyzer, err := NewAnalyzer(model, nil)
	if err != nil {
		t.Fatalf("failed to create analyzer: %v", err)
	}

	_, err = analyzer.Evaluate(context.Background(), writing.Style("technical"), "prompt", "response")
	if !errors.Is(err, writing.ErrInvalidStyle) {
		t.Fatalf("expected ErrInvalidStyle, got %v", err)
	}
	if model.calls != 0 {
		t.Fatalf("expected no upstream call for invalid style, got %d", model.calls)
	}
}

func TestEvaluateOrFallbackDegradesOnUpstreamFailure(t *testing.T) {
	model := &stubModel{err: errors.New("upstream timeout")}
	analyzer, err := NewAnalyzer(model, nil)
	if err != nil {
		t.Fatalf("failed to create analyzer: %v", err)
	}

	report, err := analyzer.EvaluateOrFallback(context.Background(), writing.StyleCreative, "Write a scene", "Once upon a time")
	if err != nil {
		t.Fatalf("expected fallback, got error: %v", err)
	}
	expected := writing.FallbackReport(writing.StyleCreative)
	if report.OverallScore != expected.OverallScore || report.Metrics.Grammar != expected.Metrics.Grammar {
		t.Fatalf("expected static fallback report, got %+v", report)
	}
}

func TestEvaluateOrFallbackStillRejectsBadInput(t *testing.T) {
	model := &stubModel{err: errors.New("upstream timeout")}
	analyzer, err := NewAnalyzer(model, nil)
	if err != nil {
		t.Fatalf("failed to create analyzer: %v", err)
	}

	if _, err := analyzer.EvaluateOrFallback(context.Background(), writing.StyleCreative, "", "text"); !errors.Is(err, ErrEmptyInput) {
		t.Fatalf("expected ErrEmptyInput, got %v", err)
	}
}

func TestStripCodeFenceVariants(t *testing.T) {
	cases := []struct {
		name  string
		input string
		want  string
	}{
		{"plain", `{"a":1}`, `{"a":1}`},
		{"json fence", "```json\n{\"a\":1}\n```", `{"a":1}`},
		{"bare fence", "```\n{\"a\":1}\n```", `{"a":1}`},
		{"padded", "  ```json\n{\"a\":1}\n```  ", `{"a":1}`},
	}
	for _, tc := range cases {
		if got := stripCodeFence(tc.input); got != tc.want {
			t.Fatalf("%s: expected %q, got %q", tc.name, tc.want, got)
		}
	}
}
