package leaderboard

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"time"

	"github.com/wordcraft-labs/wordcraft-backend/internal/games"
	"github.com/wordcraft-labs/wordcraft-backend/internal/users"
	"github.com/wordcraft-labs/wordcraft-backend/internal/writing"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// DefaultLimit applies when a query does not specify an entry count.
const DefaultLimit = 50

var (
	errMissingDatabase = errors.New("leaderboard: database handle is required")
	// ErrInvalidLimit indicates a non-positive entry count.
	ErrInvalidLimit = errors.New("leaderboard: limit must be a positive integer")
	// ErrRefreshFailed wraps storage failures during recomputation. It only
	// affects read-model freshness and is never surfaced to end users.
	ErrRefreshFailed = errors.New("leaderboard: refresh failed")
	// ErrQueryFailed wraps storage failures during reads.
	ErrQueryFailed = errors.New("leaderboard: query failed")
)

// ServiceConfig describes the dependencies of the aggregator.
type ServiceConfig struct {
	Database *gorm.DB
	Logger   *zap.Logger
}

// Service owns the leaderboard read model: wholesale recomputation from the
// games table and rank-ordered queries over the materialized rows.
type Service struct {
	db     *gorm.DB
	logger *zap.Logger
}

// NewService constructs the aggregator.
func NewService(cfg ServiceConfig) (*Service, error) {
	if cfg.Database == nil {
		return nil, errMissingDatabase
	}
	logger := cfg.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{db: cfg.Database, logger: logger}, nil
}

// aggregate accumulates per (user, style) figures while scanning games.
type aggregate struct {
	userID         string
	style          string
	bestScore      int
	bestStyleScore int
	totalGames     int
	scoreSum       int
	lastPlayed     time.Time
}

// Refresh recomputes every leaderboard row from the games table inside one
// transaction. The computation is a pure function of the games table, so
// concurrent or redundant calls converge on the same rows.
func (s *Service) Refresh(ctx context.Context) error {
	var allGames []games.Game
	if err := s.db.WithContext(ctx).Order("created_at ASC").Find(&allGames).Error; err != nil {
		return fmt.Errorf("%w: %v", ErrRefreshFailed, err)
	}

	var allUsers []users.User
	if err := s.db.WithContext(ctx).Find(&allUsers).Error; err != nil {
		return fmt.Errorf("%w: %v", ErrRefreshFailed, err)
	}
	usersByID := make(map[string]users.User, len(allUsers))
	for _, user := range allUsers {
		usersByID[user.ID] = user
	}

	aggregates := make(map[string]*aggregate)
	for _, game := range allGames {
		key := game.UserID + "\x00" + game.WritingStyle
		agg, ok := aggregates[key]
		if !ok {
			agg = &aggregate{userID: game.UserID, style: game.WritingStyle}
			aggregates[key] = agg
		}
		if game.OverallScore > agg.bestScore {
			agg.bestScore = game.OverallScore
		}
		if game.StyleSpecificScore > agg.bestStyleScore {
			agg.bestStyleScore = game.StyleSpecificScore
		}
		agg.totalGames++
		agg.scoreSum += game.OverallScore
		if game.CreatedAt.After(agg.lastPlayed) {
			agg.lastPlayed = game.CreatedAt
		}
	}

	entries := make([]Entry, 0, len(aggregates))
	for _, agg := range aggregates {
		user, ok := usersByID[agg.userID]
		if !ok {
			// A game without its user row cannot be attributed; skip it
			// rather than fail the whole refresh.
			s.logger.Warn("game references unknown user", zap.String("user_id", agg.userID))
			continue
		}
		entries = append(entries, Entry{
			Username:       user.Username,
			DisplayName:    user.DisplayName,
			WritingStyle:   agg.style,
			BestScore:      agg.bestScore,
			BestStyleScore: agg.bestStyleScore,
			TotalGames:     agg.totalGames,
			AvgScore:       float64(agg.scoreSum) / float64(agg.totalGames),
			LastPlayed:     agg.lastPlayed,
		})
	}

	assignStyleRanks(entries)

	txErr := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("1 = 1").Delete(&Entry{}).Error; err != nil {
			return err
		}
		if len(entries) == 0 {
			return nil
		}
		return tx.Create(&entries).Error
	})
	if txErr != nil {
		return fmt.Errorf("%w: %v", ErrRefreshFailed, txErr)
	}

	s.logger.Debug("leaderboard refreshed", zap.Int("entries", len(entries)))
	return nil
}

// assignStyleRanks orders entries within each style and writes 1-based ranks.
func assignStyleRanks(entries []Entry) {
	byStyle := make(map[string][]int)
	for index := range entries {
		byStyle[entries[index].WritingStyle] = append(byStyle[entries[index].WritingStyle], index)
	}
	for _, indexes := range byStyle {
		sort.SliceStable(indexes, func(a, b int) bool {
			return entries[indexes[a]].ranksBefore(entries[indexes[b]])
		})
		for position, index := range indexes {
			entries[index].Rank = position + 1
		}
	}
}

// Query returns at most limit entries for the requested view. styleFilter is
// either a concrete style or writing.StyleFilterAll (an empty filter means
// the cross-style view as well).
func (s *Service) Query(ctx context.Context, styleFilter string, limit int) ([]Entry, error) {
	if limit <= 0 {
		return nil, fmt.Errorf("%w: %d", ErrInvalidLimit, limit)
	}

	if styleFilter == "" || styleFilter == writing.StyleFilterAll {
		return s.queryAllStyles(ctx, limit)
	}

	style, err := writing.ParseStyle(styleFilter)
	if err != nil {
		return nil, err
	}
	return s.queryStyle(ctx, style, limit)
}

func (s *Service) queryStyle(ctx context.Context, style writing.Style, limit int) ([]Entry, error) {
	var entries []Entry
	err := s.db.WithContext(ctx).
		Where("writing_style = ?", style.String()).
		Order("best_score DESC").
		Order("last_played ASC").
		Limit(limit).
		Find(&entries).Error
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrQueryFailed, err)
	}
	return entries, nil
}

// queryAllStyles keeps each user's single best row across styles, then
// re-ranks the deduplicated sequence with the shared tie-break.
func (s *Service) queryAllStyles(ctx context.Context, limit int) ([]Entry, error) {
	var entries []Entry
	err := s.db.WithContext(ctx).
		Order("best_score DESC").
		Order("last_played ASC").
		Find(&entries).Error
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrQueryFailed, err)
	}

	bestByUsername := make(map[string]Entry)
	order := make([]string, 0, len(entries))
	for _, entry := range entries {
		existing, seen := bestByUsername[entry.Username]
		if !seen {
			bestByUsername[entry.Username] = entry
			order = append(order, entry.Username)
			continue
		}
		if entry.BestScore > existing.BestScore {
			bestByUsername[entry.Username] = entry
		}
	}

	deduplicated := make([]Entry, 0, len(order))
	for _, username := range order {
		deduplicated = append(deduplicated, bestByUsername[username])
	}
	sort.SliceStable(deduplicated, func(a, b int) bool {
		return deduplicated[a].ranksBefore(deduplicated[b])
	})

	if len(deduplicated) > limit {
		deduplicated = deduplicated[:limit]
	}
	for index := range deduplicated {
		deduplicated[index].Rank = index + 1
	}
	return deduplicated, nil
}
