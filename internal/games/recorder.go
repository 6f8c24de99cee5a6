package games

import (
	"context"
	"errors"
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/wordcraft-labs/wordcraft-backend/internal/writing"
	"go.uber.org/zap"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

var (
	errMissingDatabase = errors.New("games: database handle is required")
	// ErrValidation indicates a client-correctable problem with the record
	// request: empty fields, invalid style or out-of-range scores.
	ErrValidation = errors.New("games: invalid game record")
	// ErrPersistence indicates a storage failure while inserting the game.
	ErrPersistence = errors.New("games: game insert failed")
)

const refreshTimeout = 30 * time.Second

// Refresher recomputes the leaderboard read model after a save.
type Refresher interface {
	Refresh(ctx context.Context) error
}

// RecorderConfig describes the dependencies of the game recorder.
type RecorderConfig struct {
	Database  *gorm.DB
	Clock     func() time.Time
	IDProvider func() string
	Refresher Refresher
	Logger    *zap.Logger
}

// Recorder persists scored attempts and kicks the leaderboard refresh.
type Recorder struct {
	db        *gorm.DB
	now       func() time.Time
	newID     func() string
	refresher Refresher
	logger    *zap.Logger
}

// NewRecorder constructs the recorder.
func NewRecorder(cfg RecorderConfig) (*Recorder, error) {
	if cfg.Database == nil {
		return nil, errMissingDatabase
	}
	clock := cfg.Clock
	if clock == nil {
		clock = time.Now
	}
	logger := cfg.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	if cfg.IDProvider == nil {
		return nil, errors.New("games: id provider is required")
	}
	return &Recorder{
		db:        cfg.Database,
		now:       clock,
		newID:     cfg.IDProvider,
		refresher: cfg.Refresher,
		logger:    logger,
	}, nil
}

// Record validates and inserts one immutable game row, returning its id and
// creation time. Scores are rounded to the nearest integer at this boundary;
// out-of-range scores reject the whole record, nothing is clamped.
func (r *Recorder) Record(ctx context.Context, userID, promptText, userResponse string, style writing.Style, report writing.ScoreReport) (string, time.Time, error) {
	if strings.TrimSpace(userID) == "" {
		return "", time.Time{}, fmt.Errorf("%w: missing user id", ErrValidation)
	}
	if strings.TrimSpace(promptText) == "" || strings.TrimSpace(userResponse) == "" {
		return "", time.Time{}, fmt.Errorf("%w: missing prompt or response", ErrValidation)
	}
	if _, err := writing.ParseStyle(style.String()); err != nil {
		return "", time.Time{}, fmt.Errorf("%w: %v", ErrValidation, err)
	}
	if err := report.ValidateScores(); err != nil {
		return "", time.Time{}, fmt.Errorf("%w: %v", ErrValidation, err)
	}

	game := Game{
		ID:                 r.newID(),
		UserID:             userID,
		PromptText:         promptText,
		UserResponse:       userResponse,
		WritingStyle:       style.String(),
		OverallScore:       roundScore(report.OverallScore),
		StyleSpecificScore: roundScore(report.StyleSpecificScore),
		ClarityScore:       roundScore(report.Metrics.Clarity),
		StructureScore:     roundScore(report.Metrics.Structure),
		WordChoiceScore:    roundScore(report.Metrics.WordChoice),
		GrammarScore:       roundScore(report.Metrics.Grammar),
		Strengths:          datatypes.NewJSONSlice(report.Strengths),
		Weaknesses:         datatypes.NewJSONSlice(report.Weaknesses),
		StyleSpecificTips:  datatypes.NewJSONSlice(report.StyleSpecificTips),
		CreatedAt:          r.now().UTC(),
	}

	if err := r.db.WithContext(ctx).Create(&game).Error; err != nil {
		r.logger.Error("game insert failed",
			zap.String("user_id", userID), zap.String("style", style.String()), zap.Error(err))
		return "", time.Time{}, fmt.Errorf("%w: %v", ErrPersistence, err)
	}

	r.triggerRefresh()

	return game.ID, game.CreatedAt, nil
}

// triggerRefresh recomputes the leaderboard on a detached context. Failures
// only affect read-model freshness, so they are logged and never propagate
// to the save response.
func (r *Recorder) triggerRefresh() {
	if r.refresher == nil {
		return
	}
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), refreshTimeout)
		defer cancel()
		if err := r.refresher.Refresh(ctx); err != nil {
			r.logger.Warn("leaderboard refresh after save failed", zap.Error(err))
			return
		}
		r.logger.Debug("leaderboard refreshed after save")
	}()
}

func roundScore(value float64) int {
	return int(math.Round(value))
}
