package waitlist

import (
	"context"
	"errors"
	"fmt"
	"net/mail"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

var (
	errMissingDatabase = errors.New("waitlist: database handle is required")
	// ErrInvalidEmail indicates an unusable email address.
	ErrInvalidEmail = errors.New("waitlist: invalid email address")
	// ErrSignupFailed wraps storage failures while joining the waitlist.
	ErrSignupFailed = errors.New("waitlist: signup failed")
)

// Signup is one waitlist registration.
type Signup struct {
	ID        string    `gorm:"column:id;primaryKey;size:190;not null"`
	Email     string    `gorm:"column:email;size:320;not null;uniqueIndex:idx_waitlist_email"`
	CreatedAt time.Time `gorm:"column:created_at;autoCreateTime"`
}

// TableName exposes the table backing waitlist signups.
func (Signup) TableName() string {
	return "waitlist_signups"
}

// Mailer delivers the welcome email. Delivery is owned by an external
// provider; failures are best-effort and never fail the signup.
type Mailer interface {
	SendWelcome(ctx context.Context, email string) error
}

// LogMailer stands in for the external email provider and only records the
// send intent.
type LogMailer struct {
	Logger *zap.Logger
}

// SendWelcome logs the welcome email instead of delivering it.
func (m LogMailer) SendWelcome(_ context.Context, email string) error {
	if m.Logger != nil {
		m.Logger.Info("welcome email queued", zap.String("email", email))
	}
	return nil
}

// ServiceConfig describes the dependencies of the waitlist service.
type ServiceConfig struct {
	Database *gorm.DB
	Clock    func() time.Time
	Mailer   Mailer
	Logger   *zap.Logger
}

// Service records waitlist signups.
type Service struct {
	db     *gorm.DB
	now    func() time.Time
	mailer Mailer
	logger *zap.Logger
}

// NewService constructs the waitlist service.
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
	mailer := cfg.Mailer
	if mailer == nil {
		mailer = LogMailer{Logger: logger}
	}
	return &Service{db: cfg.Database, now: clock, mailer: mailer, logger: logger}, nil
}

// Join registers the email, idempotently. Returns true when the email was
// newly added, false when it was already on the list.
func (s *Service) Join(ctx context.Context, email string) (bool, error) {
	normalized := strings.ToLower(strings.TrimSpace(email))
	if normalized == "" {
		return false, ErrInvalidEmail
	}
	if _, err := mail.ParseAddress(normalized); err != nil {
		return false, fmt.Errorf("%w: %v", ErrInvalidEmail, err)
	}

	signup := Signup{
		ID:        uuid.NewString(),
		Email:     normalized,
		CreatedAt: s.now().UTC(),
	}
	result := s.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "email"}},
		DoNothing: true,
	}).Create(&signup)
	if result.Error != nil {
		return false, fmt.Errorf("%w: %v", ErrSignupFailed, result.Error)
	}

	added := result.RowsAffected > 0
	if added {
		if err := s.mailer.SendWelcome(ctx, normalized); err != nil {
			s.logger.Warn("welcome email send failed",
				zap.String("email", normalized), zap.Error(err))
		}
	}
	return added, nil
}
