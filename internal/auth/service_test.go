package auth

import (
	"errors"
	"testing"
	"time"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/avaldes/biblioteca/internal/config"
	"github.com/avaldes/biblioteca/internal/entities"
)

func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	if err != nil {
		t.Fatalf("failed to open database: %v", err)
	}
	if err := db.AutoMigrate(&entities.User{}); err != nil {
		t.Fatalf("failed to migrate: %v", err)
	}
	return db
}

func TestService_CreateUser(t *testing.T) {
	db := setupTestDB(t)
	svc := NewService(db, config.Auth{BcryptCost: 4})

	tests := []struct {
		name     string
		email    string
		password string
		fullName string
		wantErr  error
	}{
		{
			name:     "valid user",
			email:    "ana@example.com",
			password: "password12345",
			fullName: "Ana García",
			wantErr:  nil,
		},
		{
			name:     "missing email",
			email:    "",
			password: "password12345",
			wantErr:  ErrEmailRequired,
		},
		{
			name:     "missing password",
			email:    "luis@example.com",
			password: "",
			wantErr:  ErrPasswordRequired,
		},
		{
			name:     "invalid email format",
			email:    "not-an-email",
			password: "password12345",
			wantErr:  ErrEmailInvalid,
		},
		{
			name:     "short password",
			email:    "luis@example.com",
			password: "short",
			wantErr:  ErrPasswordTooShort,
		},
		{
			name:     "duplicate email",
			email:    "ana@example.com",
			password: "password12345",
			wantErr:  ErrUserExists,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			user, err := svc.CreateUser(tt.email, tt.password, tt.fullName, false)
			if !errors.Is(err, tt.wantErr) {
				t.Fatalf("CreateUser() error = %v, want %v", err, tt.wantErr)
			}
			if tt.wantErr != nil {
				return
			}
			if user.ID == "" {
				t.Error("expected generated user ID")
			}
			if user.PasswordHash == tt.password {
				t.Error("password stored in plain text")
			}
			if user.EmailConfirmed {
				t.Error("self-service sign-up must not pre-confirm the email")
			}
		})
	}
}

func TestService_CreateUser_PreConfirmed(t *testing.T) {
	db := setupTestDB(t)
	svc := NewService(db, config.Auth{BcryptCost: 4})

	user, err := svc.CreateUser("admin@example.com", "password12345", "Admin", true)
	if err != nil {
		t.Fatalf("CreateUser() error = %v", err)
	}
	if !user.EmailConfirmed {
		t.Error("privileged create must pre-confirm the email")
	}
}

func TestService_Authenticate(t *testing.T) {
	db := setupTestDB(t)
	svc := NewService(db, config.Auth{BcryptCost: 4, MaxLoginAttempts: 3, LockoutDuration: time.Minute})

	if _, err := svc.CreateUser("ana@example.com", "password12345", "", false); err != nil {
		t.Fatalf("CreateUser() error = %v", err)
	}

	t.Run("valid credentials", func(t *testing.T) {
		user, err := svc.Authenticate("ana@example.com", "password12345")
		if err != nil {
			t.Fatalf("Authenticate() error = %v", err)
		}
		if user.Email != "ana@example.com" {
			t.Errorf("got email %q", user.Email)
		}
	})

	t.Run("unknown user", func(t *testing.T) {
		_, err := svc.Authenticate("nobody@example.com", "password12345")
		if !errors.Is(err, ErrUserNotFound) {
			t.Errorf("got %v, want ErrUserNotFound", err)
		}
	})

	t.Run("wrong password", func(t *testing.T) {
		_, err := svc.Authenticate("ana@example.com", "wrong-password")
		if !errors.Is(err, ErrInvalidPassword) {
			t.Errorf("got %v, want ErrInvalidPassword", err)
		}
	})

	t.Run("lockout after repeated failures", func(t *testing.T) {
		for i := 0; i < 3; i++ {
			_, _ = svc.Authenticate("ana@example.com", "wrong-password")
		}
		_, err := svc.Authenticate("ana@example.com", "password12345")
		if !errors.Is(err, ErrAccountLocked) {
			t.Errorf("got %v, want ErrAccountLocked", err)
		}
	})
}

func TestService_Authenticate_ResetsCounterOnSuccess(t *testing.T) {
	db := setupTestDB(t)
	svc := NewService(db, config.Auth{BcryptCost: 4, MaxLoginAttempts: 3, LockoutDuration: time.Minute})

	if _, err := svc.CreateUser("ana@example.com", "password12345", "", false); err != nil {
		t.Fatalf("CreateUser() error = %v", err)
	}

	_, _ = svc.Authenticate("ana@example.com", "wrong-password")
	_, _ = svc.Authenticate("ana@example.com", "wrong-password")
	if _, err := svc.Authenticate("ana@example.com", "password12345"); err != nil {
		t.Fatalf("Authenticate() error = %v", err)
	}

	var user entities.User
	if err := db.Where("email = ?", "ana@example.com").First(&user).Error; err != nil {
		t.Fatalf("failed to load user: %v", err)
	}
	if user.FailedLoginCount != 0 {
		t.Errorf("failed login count = %d, want 0", user.FailedLoginCount)
	}
	if user.LastLoginAt == nil {
		t.Error("last login timestamp not recorded")
	}
}

func TestService_GetUserByID(t *testing.T) {
	db := setupTestDB(t)
	svc := NewService(db, config.Auth{BcryptCost: 4})

	created, err := svc.CreateUser("ana@example.com", "password12345", "", false)
	if err != nil {
		t.Fatalf("CreateUser() error = %v", err)
	}

	user, err := svc.GetUserByID(created.ID)
	if err != nil {
		t.Fatalf("GetUserByID() error = %v", err)
	}
	if user.Email != "ana@example.com" {
		t.Errorf("got email %q", user.Email)
	}

	if _, err := svc.GetUserByID("no-such-id"); !errors.Is(err, ErrUserNotFound) {
		t.Errorf("got %v, want ErrUserNotFound", err)
	}
}

func TestService_HasUsers(t *testing.T) {
	db := setupTestDB(t)
	svc := NewService(db, config.Auth{BcryptCost: 4})

	has, err := svc.HasUsers()
	if err != nil {
		t.Fatalf("HasUsers() error = %v", err)
	}
	if has {
		t.Error("expected no users in a fresh database")
	}

	if _, err := svc.CreateUser("ana@example.com", "password12345", "", false); err != nil {
		t.Fatalf("CreateUser() error = %v", err)
	}

	has, err = svc.HasUsers()
	if err != nil {
		t.Fatalf("HasUsers() error = %v", err)
	}
	if !has {
		t.Error("expected users after create")
	}
}

func TestService_IsAuthEnabled(t *testing.T) {
	db := setupTestDB(t)

	if NewService(db, config.Auth{Mode: config.AuthModeNone}).IsAuthEnabled() {
		t.Error("auth mode none must report disabled")
	}
	if !NewService(db, config.Auth{Mode: config.AuthModeLocal}).IsAuthEnabled() {
		t.Error("auth mode local must report enabled")
	}
}
