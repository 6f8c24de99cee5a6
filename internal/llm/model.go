package llm

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"google.golang.org/genai"
)

const (
	defaultModel       = "gemini-2.5-flash"
	defaultCallTimeout = 30 * time.Second
)

var (
	// ErrMissingAPIKey indicates the Gemini client was built without credentials.
	ErrMissingAPIKey = errors.New("llm: api key is required")
	// ErrEmptyResult indicates the model returned no usable text.
	ErrEmptyResult = errors.New("llm: empty model result")
)

// TextModel produces free text for a single instruction payload. The Gemini
// client implements it; tests substitute a stub.
type TextModel interface {
	GenerateText(ctx context.Context, instruction string) (string, error)
}

// GeminiConfig configures the Gemini-backed TextModel.
type GeminiConfig struct {
	APIKey      string
	Model       string
	CallTimeout time.Duration
}

// GeminiModel calls the Gemini API through the official SDK.
type GeminiModel struct {
	client      *genai.Client
	model       string
	callTimeout time.Duration
}

// NewGeminiModel constructs the Gemini text model.
func NewGeminiModel(ctx context.Context, cfg GeminiConfig) (*GeminiModel, error) {
	if strings.TrimSpace(cfg.APIKey) == "" {
		return nil, ErrMissingAPIKey
	}

	model := strings.TrimSpace(cfg.Model)
	if model == "" {
		model = defaultModel
	}

	callTimeout := cfg.CallTimeout
	if callTimeout <= 0 {
		callTimeout = defaultCallTimeout
	}

	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  cfg.APIKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("llm: create gemini client: %w", err)
	}

	return &GeminiModel{
		client:      client,
		model:       model,
		callTimeout: callTimeout,
	}, nil
}

// GenerateText sends one instruction and returns the trimmed reply text.
// Every call carries a bounded deadline so a stalled upstream cannot hang
// the request flow.
func (m *GeminiModel) GenerateText(ctx context.Context, instruction string) (string, error) {
	callCtx, cancel := context.WithTimeout(ctx, m.callTimeout)
	defer cancel()

	result, err := m.client.Models.GenerateContent(callCtx, m.model, genai.Text(instruction), nil)
	if err != nil {
		return "", fmt.Errorf("llm: generate content: %w", err)
	}

	text := strings.TrimSpace(result.Text())
	if text == "" {
		return "", ErrEmptyResult
	}
	return text, nil
}
