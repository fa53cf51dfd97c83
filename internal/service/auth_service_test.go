package service

import (
	"errors"
	"testing"

	"github.com/kariakoo/marketplace/internal/config"
	"github.com/kariakoo/marketplace/internal/models"
	"github.com/kariakoo/marketplace/internal/repository"

	"golang.org/x/crypto/bcrypt"
)

func authTestConfig() *config.Config {
	return &config.Config{
		JWT: config.JWTConfig{SecretKey: "auth-service-test-secret", ExpireHours: 1},
	}
}

func createTestAdmin(t *testing.T, repo repository.AdminRepository, username, password string) *models.Admin {
	t.Helper()

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	if err != nil {
		t.Fatalf("hash password failed: %v", err)
	}
	admin := &models.Admin{Username: username, PasswordHash: string(hash)}
	if err := repo.Create(admin); err != nil {
		t.Fatalf("create admin failed: %v", err)
	}
	return admin
}

func TestAuthServiceLogin(t *testing.T) {
	db := setupServiceTestDB(t)
	adminRepo := repository.NewAdminRepository(db)
	svc := NewAuthService(authTestConfig(), adminRepo)

	createTestAdmin(t, adminRepo, "ops", "correct-horse")

	admin, token, expiresAt, err := svc.Login("ops", "correct-horse")
	if err != nil {
		t.Fatalf("Login error: %v", err)
	}
	if token == "" {
		t.Fatalf("expected non-empty token")
	}
	if expiresAt.IsZero() {
		t.Fatalf("expected expiry time")
	}
	if admin.LastLoginAt == nil {
		t.Fatalf("last login time not recorded")
	}

	if _, _, _, err := svc.Login("ops", "wrong"); !errors.Is(err, ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials for bad password, got %v", err)
	}
	if _, _, _, err := svc.Login("ghost", "correct-horse"); !errors.Is(err, ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials for unknown admin, got %v", err)
	}
}

func TestAuthServiceInvalidateTokens(t *testing.T) {
	db := setupServiceTestDB(t)
	adminRepo := repository.NewAdminRepository(db)
	svc := NewAuthService(authTestConfig(), adminRepo)

	admin := createTestAdmin(t, adminRepo, "ops", "correct-horse")

	if err := svc.InvalidateTokens(admin.ID); err != nil {
		t.Fatalf("InvalidateTokens error: %v", err)
	}

	stored, err := adminRepo.GetByID(admin.ID)
	if err != nil {
		t.Fatalf("reload admin failed: %v", err)
	}
	if stored.TokenVersion != admin.TokenVersion+1 {
		t.Fatalf("token version not bumped: %d", stored.TokenVersion)
	}
	if stored.TokenInvalidBefore == nil {
		t.Fatalf("invalid-before timestamp not set")
	}

	if err := svc.InvalidateTokens(99999); !errors.Is(err, ErrUserNotFound) {
		t.Fatalf("expected ErrUserNotFound, got %v", err)
	}
}
