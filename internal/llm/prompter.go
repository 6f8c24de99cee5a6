package llm

import (
	"context"
	"errors"
	"fmt"

	"github.com/wordcraft-labs/wordcraft-backend/internal/writing"
	"go.uber.org/zap"
)

const promptInstructionTemplate = `You are a writing instructor creating prompts for WordCraft, an AI-powered writing skills enhancement platform.

About WordCraft:
- Users select a writing style (Professional, Creative, Marketing, or Academic)
- They receive a custom prompt tailored to that style
- Users write a response to your prompt (typically 100-300 words)
- Their response gets analyzed by AI for clarity, structure, word choice, grammar, and style-specific criteria
- Users receive detailed feedback and scoring to improve their writing skills

Your task: %s

Important guidelines:
- The prompt should encourage a response that can be meaningfully analyzed
- Make it specific enough to guide the writer but open enough for creativity
- Ensure the prompt naturally leads to demonstrating the key skills of the chosen style
- The user will write their response in a text area and submit it for AI evaluation
- Aim for prompts that would result in 100-300 word responses
- Keep the prompt concise (1-2 sentences) but engaging and clear
- Do not include instructions about word count or format - just the creative prompt itself

Return only the prompt itself with no additional commentary or explanation.`

var errMissingTextModel = errors.New("llm: text model is required")

// PromptGenerator asks the model for one writing prompt per style.
type PromptGenerator struct {
	model  TextModel
	logger *zap.Logger
}

// NewPromptGenerator constructs the generator.
func NewPromptGenerator(model TextModel, logger *zap.Logger) (*PromptGenerator, error) {
	if model == nil {
		return nil, errMissingTextModel
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &PromptGenerator{model: model, logger: logger}, nil
}

// Generate returns a freshly generated prompt for the style or an error when
// the upstream call fails or yields nothing.
func (g *PromptGenerator) Generate(ctx context.Context, style writing.Style) (string, error) {
	if _, err := writing.ParseStyle(style.String()); err != nil {
		return "", err
	}

	instruction := fmt.Sprintf(promptInstructionTemplate, style.PromptInstruction())
	text, err := g.model.GenerateText(ctx, instruction)
	if err != nil {
		return "", err
	}
	return text, nil
}

// GenerateOrFallback degrades to the static per-style prompt whenever the
// upstream fails, so the user flow never blocks on prompt generation.
func (g *PromptGenerator) GenerateOrFallback(ctx context.Context, style writing.Style) string {
	text, err := g.Generate(ctx, style)
	if err != nil {
		g.logger.Warn("prompt generation degraded to fallback",
			zap.String("style", style.String()), zap.Error(err))
		return writing.FallbackPrompt(style)
	}
	return text
}
