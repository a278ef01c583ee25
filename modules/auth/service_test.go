package auth

import (
	"context"
	"errors"
	"testing"

	domain "github.com/anjaya02/task-based-web-app/domain/user"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// newTestService wires an AuthService against an in-memory SQLite database.
func newTestService(t *testing.T) *AuthService {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("failed to open test database: %v", err)
	}
	if err := db.AutoMigrate(&domain.User{}); err != nil {
		t.Fatalf("failed to migrate test database: %v", err)
	}

	return NewAuthService(NewUserRepository(db), NewPasswordHasher(), NewJWTManager(testJWTConfig()))
}

func TestAuthService_RegisterAndLogin(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	user, tokens, err := svc.Register(ctx, "Alice", "alice@example.com", "Secret123")
	if err != nil {
		t.Fatalf("Register() error = %v", err)
	}
	if user.ID == "" {
		t.Error("Register() returned user with empty ID")
	}
	if user.PasswordHash == "Secret123" {
		t.Error("password stored in plain text")
	}
	if tokens.AccessToken == "" || tokens.TokenType != "Bearer" {
		t.Errorf("Register() tokens = %+v, want bearer access token", tokens)
	}

	loggedIn, _, err := svc.Login(ctx, "alice@example.com", "Secret123")
	if err != nil {
		t.Fatalf("Login() error = %v", err)
	}
	if loggedIn.ID != user.ID {
		t.Errorf("Login() user ID = %v, want %v", loggedIn.ID, user.ID)
	}
}

func TestAuthService_LoginCaseInsensitiveEmail(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	if _, _, err := svc.Register(ctx, "Bob", "Bob@Example.COM", "Secret123"); err != nil {
		t.Fatalf("Register() error = %v", err)
	}

	if _, _, err := svc.Login(ctx, "bob@example.com", "Secret123"); err != nil {
		t.Errorf("Login() with lowercased email error = %v", err)
	}
}

func TestAuthService_RegisterValidation(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	tests := []struct {
		name     string
		userName string
		email    string
		password string
		wantErr  error
	}{
		{name: "name too short", userName: "A", email: "a@example.com", password: "Secret123", wantErr: ErrInvalidName},
		{name: "bad email", userName: "Alice", email: "not-an-email", password: "Secret123", wantErr: ErrInvalidEmail},
		{name: "weak password", userName: "Alice", email: "a@example.com", password: "secret", wantErr: ErrWeakPassword},
		{name: "no digit", userName: "Alice", email: "a@example.com", password: "SecretPw", wantErr: ErrWeakPassword},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, _, err := svc.Register(ctx, tt.userName, tt.email, tt.password)
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("Register() error = %v, want %v", err, tt.wantErr)
			}
		})
	}
}

func TestAuthService_DuplicateEmail(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	if _, _, err := svc.Register(ctx, "Alice", "alice@example.com", "Secret123"); err != nil {
		t.Fatalf("Register() error = %v", err)
	}

	_, _, err := svc.Register(ctx, "Other Alice", "ALICE@example.com", "Secret456")
	if !errors.Is(err, ErrUserExists) {
		t.Errorf("Register() duplicate email error = %v, want ErrUserExists", err)
	}
}

func TestAuthService_InvalidCredentials(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	if _, _, err := svc.Register(ctx, "Alice", "alice@example.com", "Secret123"); err != nil {
		t.Fatalf("Register() error = %v", err)
	}

	if _, _, err := svc.Login(ctx, "alice@example.com", "WrongPass1"); !errors.Is(err, ErrInvalidCredentials) {
		t.Errorf("Login() wrong password error = %v, want ErrInvalidCredentials", err)
	}
	if _, _, err := svc.Login(ctx, "nobody@example.com", "Secret123"); !errors.Is(err, ErrInvalidCredentials) {
		t.Errorf("Login() unknown email error = %v, want ErrInvalidCredentials", err)
	}
}
