package users

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

var (
	errMissingDatabase = errors.New("users: database handle is required")
	// ErrUserCreationFailed wraps storage failures during resolution; the
	// request is never silently dropped.
	ErrUserCreationFailed = errors.New("users: user creation failed")
)

const guestUsernamePrefix = "guest_"

// ServiceConfig describes the dependencies required for user resolution.
type ServiceConfig struct {
	Database *gorm.DB
	Clock    func() time.Time
	Logger   *zap.Logger
}

// Service resolves caller identities to application user records, creating
// rows lazily on first save.
type Service struct {
	db     *gorm.DB
	now    func() time.Time
	logger *zap.Logger
}

// NewService constructs the resolver.
func NewService(cfg ServiceConfig) (*Service, error) {
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
	return &Service{db: cfg.Database, now: clock, logger: logger}, nil
}

// Resolve returns the user id for the identity, creating the backing row when
// it does not exist yet. requestedDisplayName is an optional client-supplied
// name used for lazily created rows.
func (s *Service) Resolve(ctx context.Context, identity Identity, requestedDisplayName string) (string, error) {
	if identity.Authenticated() {
		return s.resolveAccount(ctx, identity, requestedDisplayName)
	}
	return s.resolveGuest(ctx, requestedDisplayName)
}

func (s *Service) resolveAccount(ctx context.Context, identity Identity, requestedDisplayName string) (string, error) {
	var existing User
	err := s.db.WithContext(ctx).
		Where("email = ? AND is_guest = ?", identity.Email(), false).
		Take(&existing).Error
	if err == nil {
		return existing.ID, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return "", fmt.Errorf("%w: %v", ErrUserCreationFailed, err)
	}

	name := strings.TrimSpace(requestedDisplayName)
	if name == "" {
		name = identity.DisplayName()
	}
	if name == "" {
		name = identity.Email()
	}

	created := User{
		ID:          uuid.NewString(),
		Username:    name,
		Email:       identity.Email(),
		DisplayName: name,
		IsGuest:     false,
		CreatedAt:   s.now().UTC(),
	}
	if err := s.db.WithContext(ctx).Create(&created).Error; err != nil {
		s.logger.Error("account user creation failed",
			zap.String("email", identity.Email()), zap.Error(err))
		return "", fmt.Errorf("%w: %v", ErrUserCreationFailed, err)
	}

	s.logger.Info("account user created",
		zap.String("user_id", created.ID), zap.String("username", created.Username))
	return created.ID, nil
}

// resolveGuest performs an atomic find-or-create keyed by username. The
// unique index plus ON CONFLICT DO NOTHING inside one transaction guarantees
// that two concurrent saves with the same name converge on a single row.
func (s *Service) resolveGuest(ctx context.Context, requestedDisplayName string) (string, error) {
	username := strings.TrimSpace(requestedDisplayName)
	generated := false
	if username == "" || strings.EqualFold(username, "guest") {
		username = newGuestUsername()
		generated = true
	}

	userID, err := s.findOrCreateGuest(ctx, username)
	if err == nil {
		return userID, nil
	}
	if errors.Is(err, gorm.ErrRecordNotFound) && !generated {
		// The requested name belongs to an account holder; give the guest a
		// generated identity instead of failing the save.
		return s.findOrCreateGuestFresh(ctx)
	}
	return "", fmt.Errorf("%w: %v", ErrUserCreationFailed, err)
}

func (s *Service) findOrCreateGuestFresh(ctx context.Context) (string, error) {
	userID, err := s.findOrCreateGuest(ctx, newGuestUsername())
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrUserCreationFailed, err)
	}
	return userID, nil
}

func (s *Service) findOrCreateGuest(ctx context.Context, username string) (string, error) {
	var resolved User
	txErr := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		candidate := User{
			ID:          uuid.NewString(),
			Username:    username,
			DisplayName: username,
			IsGuest:     true,
			CreatedAt:   s.now().UTC(),
		}
		err := tx.Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "username"}},
			DoNothing: true,
		}).Create(&candidate).Error
		if err != nil {
			return err
		}
		return tx.Where("username = ? AND is_guest = ?", username, true).
			Take(&resolved).Error
	})
	if txErr != nil {
		return "", txErr
	}
	return resolved.ID, nil
}

func newGuestUsername() string {
	suffix := strings.ReplaceAll(uuid.NewString(), "-", "")[:8]
	return guestUsernamePrefix + suffix
}
