package waitlist

import (
	"context"
	"errors"
	"path/filepath"
	"testing"

	sqlite "github.com/glebarez/sqlite"
	"gorm.io/gorm"
)

func openTestDatabase(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(filepath.Join(t.TempDir(), "waitlist_test.db")), &gorm.Config{})
	if err != nil {
		t.Fatalf("failed to open sqlite: %v", err)
	}
	if err := db.AutoMigrate(&Signup{}); err != nil {
		t.Fatalf("failed to migrate schema: %v", err)
	}
	return db
}

type recordingMailer struct {
	sent []string
	err  error
}

func (m *recordingMailer) SendWelcome(_ context.Context, email string) error {
	m.sent = append(m.sent, email)
	return m.err
}

func TestJoinAddsAndNormalizesEmail(t *testing.T) {
	db := openTestDatabase(t)
	mailer := &recordingMailer{}
	service, err := NewService(ServiceConfig{Database: db, Mailer: mailer})
	if err != nil {
		t.Fatalf("failed to create service: %v", err)
	}

	added, err := service.Join(context.Background(), "  Writer@Example.COM ")
	if err != nil {
		t.Fatalf("join failed: %v", err)
	}
	if !added {
		t.Fatalf("expected a fresh signup to report added")
	}

	var stored Signup
	if err := db.Take(&stored).Error; err != nil {
		t.Fatalf("lookup failed: %v", err)
	}
	if stored.Email != "writer@example.com" {
		t.Fatalf("expected normalized email, got %q", stored.Email)
	}
	if len(mailer.sent) != 1 || mailer.sent[0] != "writer@example.com" {
		t.Fatalf("expected one welcome email, got %v", mailer.sent)
	}
}

func TestJoinIsIdempotent(t *testing.T) {
	db := openTestDatabase(t)
	mailer := &recordingMailer{}
	service, err := NewService(ServiceConfig{Database: db, Mailer: mailer})
	if err != nil {
		t.Fatalf("failed to create service: %v", err)
	}

	if _, err := service.Join(context.Background(), "writer@example.com"); err != nil {
		t.Fatalf("first join failed: %v", err)
	}
	added, err := service.Join(context.Background(), "WRITER@example.com")
	if err != nil {
		t.Fatalf("second join failed: %v", err)
	}
	if added {
		t.Fatalf("repeated signup must not report added")
	}

	var count int64
	if err := db.Model(&Signup{}).Count(&count).Error; err != nil {
		t.Fatalf("count failed: %v", err)
	}
	if count != 1 {
		t.Fatalf("expected a single row, got %d", count)
	}
	if len(mailer.sent) != 1 {
		t.Fatalf("welcome email must only go to fresh signups, got %v", mailer.sent)
	}
}

func TestJoinRejectsInvalidEmail(t *testing.T) {
	db := openTestDatabase(t)
	service, err := NewService(ServiceConfig{Database: db})
	if err != nil {
		t.Fatalf("failed to create service: %v", err)
	}

	for _, email := range []string{"", "   ", "not-an-email", "missing@"} {
		if _, err := service.Join(context.Background(), email); !errors.Is(err, ErrInvalidEmail) {
			t.Fatalf("%q: expected ErrInvalidEmail, got %v", email, err)
		}
	}
}

func TestJoinSucceedsWhenMailerFails(t *testing.T) {
	db := openTestDatabase(t)
	mailer := &recordingMailer{err: errors.New("provider down")}
	service, err := NewService(ServiceConfig{Database: db, Mailer: mailer})
	if err != nil {
		t.Fatalf("failed to create service: %v", err)
	}

	added, err := service.Join(context.Background(), "writer@example.com")
	if err != nil {
		t.Fatalf("signup must not fail on email delivery: %v", err)
	}
	if !added {
		t.Fatalf("expected signup to be recorded")
	}
}
