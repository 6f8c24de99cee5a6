package server

import (
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/wordcraft-labs/wordcraft-backend/internal/leaderboard"
	"github.com/wordcraft-labs/wordcraft-backend/internal/waitlist"
	"github.com/wordcraft-labs/wordcraft-backend/internal/writing"
	"go.uber.org/zap"
)

type leaderboardResponse struct {
	Success bool                `json:"success"`
	Data    []leaderboard.Entry `json:"data"`
	Style   string              `json:"style"`
	Total   int                 `json:"total"`
}

func (h *httpHandler) handleLeaderboardQuery(c *gin.Context) {
	styleFilter := strings.TrimSpace(c.Query("style"))
	if styleFilter == "" {
		styleFilter = writing.StyleFilterAll
	}
	if styleFilter != writing.StyleFilterAll {
		if _, err := writing.ParseStyle(styleFilter); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid_style"})
			return
		}
	}

	limit := leaderboard.DefaultLimit
	if rawLimit := strings.TrimSpace(c.Query("limit")); rawLimit != "" {
		parsed, err := strconv.Atoi(rawLimit)
		if err != nil || parsed <= 0 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid_limit"})
			return
		}
		limit = parsed
	}

	entries, err := h.leaderboard.Query(c.Request.Context(), styleFilter, limit)
	if err != nil {
		if errors.Is(err, leaderboard.ErrInvalidLimit) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid_limit"})
			return
		}
		h.logger.Error("leaderboard query failed",
			zap.String("style", styleFilter), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "leaderboard_query_failed"})
		return
	}

	if provisional, ok := h.provisionalEntry(c); ok {
		entries = leaderboard.Merge(entries, provisional)
	}

	c.JSON(http.StatusOK, leaderboardResponse{
		Success: true,
		Data:    entries,
		Style:   styleFilter,
		Total:   len(entries),
	})
}

// provisionalEntry builds the current-session entry from optional query
// params, letting a guest see where a freshly scored game would rank before
// the save round-trips.
func (h *httpHandler) provisionalEntry(c *gin.Context) (*leaderboard.Entry, bool) {
	name := strings.TrimSpace(c.Query("session_name"))
	rawScore := strings.TrimSpace(c.Query("session_score"))
	if name == "" || rawScore == "" {
		return nil, false
	}
	score, err := strconv.Atoi(rawScore)
	if err != nil || score < 0 || score > writing.MaxScore {
		return nil, false
	}

	style := strings.TrimSpace(c.Query("session_style"))
	if style != "" {
		if _, parseErr := writing.ParseStyle(style); parseErr != nil {
			return nil, false
		}
	}

	return &leaderboard.Entry{
		Username:     name,
		DisplayName:  name,
		WritingStyle: style,
		BestScore:    score,
		TotalGames:   1,
		AvgScore:     float64(score),
		LastPlayed:   h.clock().UTC(),
	}, true
}

func (h *httpHandler) handleLeaderboardRefresh(c *gin.Context) {
	if err := h.leaderboard.Refresh(c.Request.Context()); err != nil {
		h.logger.Error("leaderboard refresh failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "refresh_failed"})
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "Leaderboard refreshed successfully",
	})
}

type waitlistRequest struct {
	Email string `json:"email"`
}

func (h *httpHandler) handleWaitlistJoin(c *gin.Context) {
	var request waitlistRequest
	if err := c.ShouldBindJSON(&request); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid_request"})
		return
	}

	added, err := h.waitlist.Join(c.Request.Context(), request.Email)
	if err != nil {
		if errors.Is(err, waitlist.ErrInvalidEmail) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid_email"})
			return
		}
		h.logger.Error("waitlist signup failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "signup_failed"})
		return
	}

	message := "You're on the waitlist"
	if !added {
		message = "Already on the waitlist"
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "message": message})
}
