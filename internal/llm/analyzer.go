package llm

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/wordcraft-labs/wordcraft-backend/internal/writing"
	"go.uber.org/zap"
)

var (
	// ErrEmptyInput indicates a missing prompt or user response. No upstream
	// call is made for invalid input.
	ErrEmptyInput = errors.New("llm: prompt and response must not be empty")
	// ErrMalformedResponse indicates the model reply could not be parsed into
	// a score report. Partial data is never surfaced.
	ErrMalformedResponse = errors.New("llm: malformed analysis response")
)

const analysisInstructionTemplate = `You are an expert writing instructor and evaluator for WordCraft, an AI-powered writing skills enhancement platform.

About WordCraft & Your Role:
- Users select a writing style and receive a custom prompt
- They write a response (typically 100-300 words) to demonstrate their skills
- You provide detailed, fair, and constructive analysis to help them improve
- Your evaluation directly impacts their learning and motivation

EVALUATION STYLE: %s
Focus Areas: %s
Special Attention: %s

STRICT EVALUATION GUIDELINES:
- Be fair but discerning - not everyone deserves 90+
- Score 0-100 where:
  * 90-100: Exceptional, publication-ready quality
  * 80-89: Strong, skilled writing with minor areas for improvement
  * 70-79: Good attempt, demonstrates competence but needs refinement
  * 60-69: Basic understanding shown, significant improvement needed
  * 50-59: Weak attempt, major deficiencies in multiple areas
  * Below 50: Poor quality, substantial problems throughout

SCORING CRITERIA:
- Clarity: Is the message clear and easy to understand?
- Structure: Is the writing well-organized and logical?
- Word Choice: Are words precise, appropriate, and varied?
- Grammar: Are there errors in grammar, punctuation, spelling?
- Style-Specific: Does it excel in the chosen writing style's requirements?

IMPORTANT RULES:
- Judge against professional standards, not just effort
- Give specific, actionable feedback in strengths/weaknesses
- Style-specific tips should be concrete and practical
- Be honest about deficiencies while remaining encouraging
- Consider the prompt complexity when evaluating response appropriateness

Respond ONLY with valid JSON in this exact format (no other text):

{
  "overallScore": [number from 0-100],
  "metrics": {
    "clarity": [number from 0-100],
    "structure": [number from 0-100],
    "wordChoice": [number from 0-100],
    "grammar": [number from 0-100]
  },
  "styleSpecificScore": [number from 0-100],
  "strengths": [
    "specific strength 1",
    "specific strength 2",
    "specific strength 3"
  ],
  "weaknesses": [
    "specific weakness 1",
    "specific weakness 2"
  ],
  "styleSpecificTips": [
    "actionable tip 1",
    "actionable tip 2",
    "actionable tip 3"
  ]
}

Original Prompt: "%s"

Writer's Response: "%s"

Please analyze this %s writing response and provide detailed, strict, and fair feedback in the specified JSON format.`

// Analyzer scores one writing sample against its prompt and style rubric.
type Analyzer struct {
	model  TextModel
	logger *zap.Logger
}

// NewAnalyzer constructs the analyzer.
func NewAnalyzer(model TextModel, logger *zap.Logger) (*Analyzer, error) {
	if model == nil {
		return nil, errMissingTextModel
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Analyzer{model: model, logger: logger}, nil
}

// Evaluate sends the sample upstream and parses the constrained JSON reply.
// Input validation happens first; an invalid style or empty text never
// reaches the model.
func (a *Analyzer) Evaluate(ctx context.Context, style writing.Style, prompt, userResponse string) (writing.ScoreReport, error) {
	if _, err := writing.ParseStyle(style.String()); err != nil {
		return writing.ScoreReport{}, err
	}
	if strings.TrimSpace(prompt) == "" || strings.TrimSpace(userResponse) == "" {
		return writing.ScoreReport{}, ErrEmptyInput
	}

	instruction := fmt.Sprintf(analysisInstructionTemplate,
		strings.ToUpper(style.String()),
		style.AnalysisCriteria(),
		style.AnalysisFocus(),
		prompt,
		userResponse,
		style.String(),
	)

	text, err := a.model.GenerateText(ctx, instruction)
	if err != nil {
		return writing.ScoreReport{}, err
	}

	report, err := parseReport(text)
	if err != nil {
		a.logger.Warn("analysis response parse failed", zap.Error(err))
		return writing.ScoreReport{}, err
	}
	return report, nil
}

// EvaluateOrFallback degrades to the static report when the upstream fails
// or replies with garbage. Validation errors still surface: a caller bug is
// not an upstream outage.
func (a *Analyzer) EvaluateOrFallback(ctx context.Context, style writing.Style, prompt, userResponse string) (writing.ScoreReport, error) {
	report, err := a.Evaluate(ctx, style, prompt, userResponse)
	if err == nil {
		return report, nil
	}
	if errors.Is(err, writing.ErrInvalidStyle) || errors.Is(err, ErrEmptyInput) {
		return writing.ScoreReport{}, err
	}
	a.logger.Warn("analysis degraded to fallback",
		zap.String("style", style.String()), zap.Error(err))
	return writing.FallbackReport(style), nil
}

// parseReport decodes the model reply, tolerating a code-fenced wrapper.
func parseReport(raw string) (writing.ScoreReport, error) {
	payload := stripCodeFence(raw)

	var report writing.ScoreReport
	if err := json.Unmarshal([]byte(payload), &report); err != nil {
		return writing.ScoreReport{}, fmt.Errorf("%w: %v", ErrMalformedResponse, err)
	}
	return report, nil
}

// stripCodeFence removes a surrounding ```json ... ``` (or bare ```) block.
func stripCodeFence(raw string) string {
	trimmed := strings.TrimSpace(raw)
	if !strings.HasPrefix(trimmed, "```") {
		return trimmed
	}
	trimmed = strings.TrimPrefix(trimmed, "```json")
	trimmed = strings.TrimPrefix(trimmed, "```")
	trimmed = strings.TrimSuffix(strings.TrimSpace(trimmed), "```")
	return strings.TrimSpace(trimmed)
}
