package server

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/wordcraft-labs/wordcraft-backend/internal/auth"
	"github.com/wordcraft-labs/wordcraft-backend/internal/leaderboard"
	"github.com/wordcraft-labs/wordcraft-backend/internal/users"
	"github.com/wordcraft-labs/wordcraft-backend/internal/writing"
	"go.uber.org/zap"
)

var (
	errMissingGoogleVerifier  = errors.New("google verifier dependency required")
	errMissingTokenManager    = errors.New("token manager dependency required")
	errMissingPromptGenerator = errors.New("prompt generator dependency required")
	errMissingAnalyzer        = errors.New("analyzer dependency required")
	errMissingUserResolver    = errors.New("user resolver dependency required")
	errMissingGameRecorder    = errors.New("game recorder dependency required")
	errMissingLeaderboard     = errors.New("leaderboard service dependency required")
	errMissingWaitlist        = errors.New("waitlist service dependency required")
)

type GoogleVerifier interface {
	Verify(ctx context.Context, token string) (auth.GoogleClaims, error)
}

type SessionTokenManager interface {
	IssueSessionToken(ctx context.Context, claims auth.GoogleClaims) (string, int64, error)
	ValidateToken(token string) (auth.SessionClaims, error)
}

type PromptGenerator interface {
	Generate(ctx context.Context, style writing.Style) (string, error)
}

type WritingAnalyzer interface {
	Evaluate(ctx context.Context, style writing.Style, prompt, userResponse string) (writing.ScoreReport, error)
}

type UserResolver interface {
	Resolve(ctx context.Context, identity users.Identity, requestedDisplayName string) (string, error)
}

type GameRecorder interface {
	Record(ctx context.Context, userID, promptText, userResponse string, style writing.Style, report writing.ScoreReport) (string, time.Time, error)
}

type LeaderboardService interface {
	Refresh(ctx context.Context) error
	Query(ctx context.Context, styleFilter string, limit int) ([]leaderboard.Entry, error)
}

type WaitlistService interface {
	Join(ctx context.Context, email string) (bool, error)
}

type Dependencies struct {
	GoogleVerifier GoogleVerifier
	TokenManager   SessionTokenManager
	Prompts        PromptGenerator
	Analyzer       WritingAnalyzer
	UserResolver   UserResolver
	GameRecorder   GameRecorder
	Leaderboard    LeaderboardService
	Waitlist       WaitlistService
	Clock          func() time.Time
	Logger         *zap.Logger
}

// NewHTTPHandler wires the WordCraft API routes onto a gin engine.
func NewHTTPHandler(deps Dependencies) (http.Handler, error) {
	if deps.GoogleVerifier == nil {
		return nil, errMissingGoogleVerifier
	}
	if deps.TokenManager == nil {
		return nil, errMissingTokenManager
	}
	if deps.Prompts == nil {
		return nil, errMissingPromptGenerator
	}
	if deps.Analyzer == nil {
		return nil, errMissingAnalyzer
	}
	if deps.UserResolver == nil {
		return nil, errMissingUserResolver
	}
	if deps.GameRecorder == nil {
		return nil, errMissingGameRecorder
	}
	if deps.Leaderboard == nil {
		return nil, errMissingLeaderboard
	}
	if deps.Waitlist == nil {
		return nil, errMissingWaitlist
	}

	logger := deps.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	clock := deps.Clock
	if clock == nil {
		clock = time.Now
	}

	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(cors.New(cors.Config{
		AllowOrigins: []string{"*"},
		AllowMethods: []string{http.MethodGet, http.MethodPost, http.MethodOptions},
		AllowHeaders: []string{"Authorization", "Content-Type"},
		MaxAge:       12 * time.Hour,
	}))

	handler := &httpHandler{
		verifier:    deps.GoogleVerifier,
		tokens:      deps.TokenManager,
		prompts:     deps.Prompts,
		analyzer:    deps.Analyzer,
		resolver:    deps.UserResolver,
		recorder:    deps.GameRecorder,
		leaderboard: deps.Leaderboard,
		waitlist:    deps.Waitlist,
		clock:       clock,
		logger:      logger,
	}

	router.GET("/healthz", handler.handleHealth)
	router.POST("/auth/google", handler.handleGoogleAuth)
	router.POST("/generate-prompt", handler.handleGeneratePrompt)
	router.POST("/analyze-writing", handler.handleAnalyzeWriting)
	router.POST("/save-game", handler.handleSaveGame)
	router.GET("/leaderboard", handler.handleLeaderboardQuery)
	router.POST("/leaderboard", handler.handleLeaderboardRefresh)
	router.POST("/waitlist", handler.handleWaitlistJoin)

	return router, nil
}

type httpHandler struct {
	verifier    GoogleVerifier
	tokens      SessionTokenManager
	prompts     PromptGenerator
	analyzer    WritingAnalyzer
	resolver    UserResolver
	recorder    GameRecorder
	leaderboard LeaderboardService
	waitlist    WaitlistService
	clock       func() time.Time
	logger      *zap.Logger
}

func (h *httpHandler) handleHealth(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}
