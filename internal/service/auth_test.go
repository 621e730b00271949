package service_test

import (
	"context"
	"errors"
	"path/filepath"
	"testing"
	"time"

	"github.com/Shiki0x/nymph/internal/domain"
	"github.com/Shiki0x/nymph/internal/repository/sqlite"
	"github.com/Shiki0x/nymph/internal/service"
)

const testJWTSecret = "test-secret-test-secret-test-secret!"

// Cheap bcrypt keeps the suite fast.
const testBcryptCost = 4

func newTestDB(t *testing.T) *sqlite.DB {
	t.Helper()
	dbPath := filepath.Join(t.TempDir(), "test.db")
	db, err := sqlite.New(dbPath)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	if err := db.Migrate(context.Background()); err != nil {
		t.Fatalf("Migrate: %v", err)
	}
	t.Cleanup(func() { db.Close() })
	return db
}

func newTestAuthService(t *testing.T) (*service.AuthService, *sqlite.DB) {
	t.Helper()
	db := newTestDB(t)
	return service.NewAuthService(db.Users(), testJWTSecret, testBcryptCost), db
}

func seedUserForTest(t *testing.T, db *sqlite.DB, username string) int64 {
	t.Helper()
	user := &domain.User{Username: username, DisplayName: "Test " + username, PasswordHash: "hash"}
	if err := db.Users().Create(context.Background(), user); err != nil {
		t.Fatalf("seed user %s: %v", username, err)
	}
	return user.ID
}

func day(t *testing.T, s string) time.Time {
	t.Helper()
	d, err := time.ParseInLocation(time.DateOnly, s, time.UTC)
	if err != nil {
		t.Fatalf("parse day %s: %v", s, err)
	}
	return d
}

func TestAuthService_RegisterAndLogin(t *testing.T) {
	auth, _ := newTestAuthService(t)
	ctx := context.Background()

	user, err := auth.Register(ctx, "amy", "Amy", "password123", "password123")
	if err != nil {
		t.Fatalf("Register: %v", err)
	}
	if user.ID == 0 {
		t.Fatal("expected user ID to be set")
	}
	if user.PasswordHash == "password123" {
		t.Fatal("password must not be stored in plain text")
	}

	token, err := auth.Login(ctx, "amy", "password123")
	if err != nil {
		t.Fatalf("Login: %v", err)
	}

	userID, err := auth.ValidateToken(token)
	if err != nil {
		t.Fatalf("ValidateToken: %v", err)
	}
	if userID != user.ID {
		t.Fatalf("expected user id %d from token, got %d", user.ID, userID)
	}
}

func TestAuthService_Register_DuplicateUsername(t *testing.T) {
	auth, _ := newTestAuthService(t)
	ctx := context.Background()

	if _, err := auth.Register(ctx, "taken", "First", "password123", "password123"); err != nil {
		t.Fatalf("Register first: %v", err)
	}

	_, err := auth.Register(ctx, "taken", "Second", "password456", "password456")
	if !errors.Is(err, domain.ErrDuplicateUsername) {
		t.Fatalf("expected ErrDuplicateUsername, got %v", err)
	}
}

func TestAuthService_Register_Validation(t *testing.T) {
	auth, _ := newTestAuthService(t)
	ctx := context.Background()

	cases := []struct {
		name                            string
		username, display, pw, confirm string
	}{
		{"empty username", "", "Amy", "password123", "password123"},
		{"short password", "amy", "Amy", "short", "short"},
		{"mismatched confirm", "amy", "Amy", "password123", "password124"},
		{"invalid characters", "amy smith", "Amy", "password123", "password123"},
		{"too short username", "ab", "Amy", "password123", "password123"},
	}

	for _, tc := range cases {
		_, err := auth.Register(ctx, tc.username, tc.display, tc.pw, tc.confirm)
		if !errors.Is(err, domain.ErrInvalidInput) {
			t.Fatalf("%s: expected ErrInvalidInput, got %v", tc.name, err)
		}
	}
}

func TestAuthService_Login_WrongPassword(t *testing.T) {
	auth, _ := newTestAuthService(t)
	ctx := context.Background()

	if _, err := auth.Register(ctx, "amy", "Amy", "password123", "password123"); err != nil {
		t.Fatalf("Register: %v", err)
	}

	if _, err := auth.Login(ctx, "amy", "wrongpassword"); !errors.Is(err, domain.ErrUnauthorized) {
		t.Fatalf("expected ErrUnauthorized, got %v", err)
	}
	if _, err := auth.Login(ctx, "nobody", "password123"); !errors.Is(err, domain.ErrUnauthorized) {
		t.Fatalf("expected ErrUnauthorized for unknown user, got %v", err)
	}
}

func TestAuthService_ValidateToken_Garbage(t *testing.T) {
	auth, _ := newTestAuthService(t)

	if _, err := auth.ValidateToken("not-a-token"); !errors.Is(err, domain.ErrUnauthorized) {
		t.Fatalf("expected ErrUnauthorized, got %v", err)
	}
}
