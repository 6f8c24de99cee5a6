package server

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/wordcraft-labs/wordcraft-backend/internal/users"
	"go.uber.org/zap"
)

type authRequestPayload struct {
	IDToken string `json:"id_token"`
}

type authResponsePayload struct {
	AccessToken string `json:"access_token"`
	ExpiresIn   int64  `json:"expires_in"`
	TokenType   string `json:"token_type"`
}

func (h *httpHandler) handleGoogleAuth(c *gin.Context) {
	var request authRequestPayload
	if err := c.ShouldBindJSON(&request); err != nil || strings.TrimSpace(request.IDToken) == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid_request"})
		return
	}

	claims, err := h.verifier.Verify(c.Request.Context(), request.IDToken)
	if err != nil {
		h.logger.Warn("google token verification failed", zap.Error(err))
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	token, expiresIn, err := h.tokens.IssueSessionToken(c.Request.Context(), claims)
	if err != nil {
		h.logger.Error("failed to issue session token", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "token_issue_failed"})
		return
	}

	c.JSON(http.StatusOK, authResponsePayload{
		AccessToken: token,
		ExpiresIn:   expiresIn,
		TokenType:   "Bearer",
	})
}

// callerIdentity derives the save-game identity from an optional bearer
// token. A missing or unusable token downgrades to an anonymous identity so
// a stale session never blocks a guest save.
func (h *httpHandler) callerIdentity(c *gin.Context) users.Identity {
	header := c.GetHeader("Authorization")
	if !strings.HasPrefix(header, "Bearer ") {
		return users.AnonymousIdentity()
	}
	token := strings.TrimSpace(strings.TrimPrefix(header, "Bearer "))
	if token == "" {
		return users.AnonymousIdentity()
	}

	claims, err := h.tokens.ValidateToken(token)
	if err != nil {
		h.logger.Warn("session token rejected, treating caller as guest", zap.Error(err))
		return users.AnonymousIdentity()
	}

	identity, err := users.AuthenticatedIdentity(claims.Email, claims.DisplayName)
	if err != nil {
		h.logger.Warn("session claims unusable, treating caller as guest", zap.Error(err))
		return users.AnonymousIdentity()
	}
	return identity
}
