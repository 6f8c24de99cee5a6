package server

import (
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/wordcraft-labs/wordcraft-backend/internal/games"
	"github.com/wordcraft-labs/wordcraft-backend/internal/llm"
	"github.com/wordcraft-labs/wordcraft-backend/internal/writing"
	"go.uber.org/zap"
)

type generatePromptRequest struct {
	WritingStyle string `json:"writingStyle"`
}

type generatePromptResponse struct {
	Prompt string `json:"prompt"`
	Style  string `json:"style"`
}

func (h *httpHandler) handleGeneratePrompt(c *gin.Context) {
	var request generatePromptRequest
	if err := c.ShouldBindJSON(&request); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid_request"})
		return
	}

	style, err := writing.ParseStyle(request.WritingStyle)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid_style"})
		return
	}

	prompt, err := h.prompts.Generate(c.Request.Context(), style)
	if err != nil {
		h.logger.Error("prompt generation failed",
			zap.String("style", style.String()), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "prompt_generation_failed"})
		return
	}

	c.JSON(http.StatusOK, generatePromptResponse{
		Prompt: prompt,
		Style:  style.String(),
	})
}

type analyzeWritingRequest struct {
	UserResponse string `json:"userResponse"`
	WritingStyle string `json:"writingStyle"`
	Prompt       string `json:"prompt"`
}

// analyzeWritingResponse merges the score report with the echoed inputs so
// the client can hand the whole payload to save-game unchanged.
type analyzeWritingResponse struct {
	writing.ScoreReport
	WritingStyle string `json:"writingStyle"`
	UserResponse string `json:"userResponse"`
	Prompt       string `json:"prompt"`
}

func (h *httpHandler) handleAnalyzeWriting(c *gin.Context) {
	var request analyzeWritingRequest
	if err := c.ShouldBindJSON(&request); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid_request"})
		return
	}
	if strings.TrimSpace(request.UserResponse) == "" || strings.TrimSpace(request.Prompt) == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "missing_fields"})
		return
	}

	style, err := writing.ParseStyle(request.WritingStyle)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid_style"})
		return
	}

	report, err := h.analyzer.Evaluate(c.Request.Context(), style, request.Prompt, request.UserResponse)
	if err != nil {
		if errors.Is(err, llm.ErrEmptyInput) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "missing_fields"})
			return
		}
		h.logger.Error("writing analysis failed",
			zap.String("style", style.String()), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "analysis_failed"})
		return
	}

	c.JSON(http.StatusOK, analyzeWritingResponse{
		ScoreReport:  report,
		WritingStyle: style.String(),
		UserResponse: request.UserResponse,
		Prompt:       request.Prompt,
	})
}

type saveGameRequest struct {
	Username       string              `json:"username"`
	PromptText     string              `json:"promptText"`
	UserResponse   string              `json:"userResponse"`
	WritingStyle   string              `json:"writingStyle"`
	AnalysisResult *writing.ScoreReport `json:"analysisResult"`
}

type saveGameResponse struct {
	Success bool      `json:"success"`
	GameID  string    `json:"gameId"`
	UserID  string    `json:"userId"`
	SavedAt time.Time `json:"savedAt"`
	Message string    `json:"message"`
}

func (h *httpHandler) handleSaveGame(c *gin.Context) {
	var request saveGameRequest
	if err := c.ShouldBindJSON(&request); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid_request"})
		return
	}
	if strings.TrimSpace(request.PromptText) == "" ||
		strings.TrimSpace(request.UserResponse) == "" ||
		strings.TrimSpace(request.WritingStyle) == "" ||
		request.AnalysisResult == nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "missing_fields"})
		return
	}

	style, err := writing.ParseStyle(request.WritingStyle)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid_style"})
		return
	}

	identity := h.callerIdentity(c)
	userID, err := h.resolver.Resolve(c.Request.Context(), identity, request.Username)
	if err != nil {
		h.logger.Error("user resolution failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "user_resolution_failed"})
		return
	}

	gameID, savedAt, err := h.recorder.Record(
		c.Request.Context(),
		userID,
		request.PromptText,
		request.UserResponse,
		style,
		*request.AnalysisResult,
	)
	if err != nil {
		if errors.Is(err, games.ErrValidation) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid_score_values"})
			return
		}
		h.logger.Error("game save failed",
			zap.String("user_id", userID), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "save_failed"})
		return
	}

	c.JSON(http.StatusOK, saveGameResponse{
		Success: true,
		GameID:  gameID,
		UserID:  userID,
		SavedAt: savedAt,
		Message: "Game result saved successfully",
	})
}
