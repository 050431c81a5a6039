package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/fivemlab/commute-expense/internal/auth"
	"github.com/fivemlab/commute-expense/internal/domain/entity"
)

func testTokenManager(t *testing.T) *auth.TokenManager {
	t.Helper()
	tm, err := auth.NewTokenManager("test-secret-for-accounts", time.Hour)
	if err != nil {
		t.Fatalf("NewTokenManager() error = %v", err)
	}
	return tm
}

func TestAccountService_SignUp(t *testing.T) {
	var created *entity.User
	users := &mockUserRepo{
		createFunc: func(ctx context.Context, user *entity.User) error {
			created = user
			return nil
		},
	}
	svc := NewAccountService(users, &mockProfileRepo{}, testTokenManager(t), nil, &mockLogger{})

	user, err := svc.SignUp(context.Background(), " Taro@Example.com ", "hunter2hunter2")
	if err != nil {
		t.Fatalf("SignUp() error = %v", err)
	}

	if user.Email != "taro@example.com" {
		t.Errorf("email = %q, want normalized lowercase", user.Email)
	}
	if user.ID == "" {
		t.Error("SignUp() did not assign an ID")
	}
	if user.IsAdmin() {
		t.Error("plain sign-up should not be admin")
	}
	if user.PasswordHash == "" || user.PasswordHash == "hunter2hunter2" {
		t.Error("password must be stored hashed")
	}
	if created == nil {
		t.Fatal("SignUp() did not persist the user")
	}
	if !auth.CheckPassword(created.PasswordHash, "hunter2hunter2") {
		t.Error("stored hash does not verify the original password")
	}
}

func TestAccountService_SignUp_AdminEmail(t *testing.T) {
	svc := NewAccountService(&mockUserRepo{}, &mockProfileRepo{}, testTokenManager(t),
		[]string{" Keiri@Example.com "}, &mockLogger{})

	user, err := svc.SignUp(context.Background(), "keiri@example.com", "hunter2hunter2")
	if err != nil {
		t.Fatalf("SignUp() error = %v", err)
	}
	if !user.IsAdmin() {
		t.Error("configured admin address should receive the admin role")
	}
}

func TestAccountService_SignUp_Rejections(t *testing.T) {
	taken := &mockUserRepo{
		getByEmailFunc: func(ctx context.Context, email string) (*entity.User, error) {
			return &entity.User{ID: "u1", Email: email}, nil
		},
	}

	tests := []struct {
		name     string
		users    *mockUserRepo
		email    string
		password string
		wantErr  error
	}{
		{"missing at sign", &mockUserRepo{}, "not-an-email", "hunter2hunter2", nil},
		{"empty email", &mockUserRepo{}, "   ", "hunter2hunter2", nil},
		{"short password", &mockUserRepo{}, "taro@example.com", "short", nil},
		{"already registered", taken, "taro@example.com", "hunter2hunter2", ErrEmailTaken},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := NewAccountService(tt.users, &mockProfileRepo{}, testTokenManager(t), nil, &mockLogger{})

			_, err := svc.SignUp(context.Background(), tt.email, tt.password)
			if err == nil {
				t.Fatal("SignUp() succeeded, want error")
			}
			if tt.wantErr != nil && !errors.Is(err, tt.wantErr) {
				t.Errorf("SignUp() error = %v, want %v", err, tt.wantErr)
			}
		})
	}
}

func TestAccountService_SignIn(t *testing.T) {
	hash, err := auth.HashPassword("hunter2hunter2")
	if err != nil {
		t.Fatalf("HashPassword() error = %v", err)
	}
	stored := &entity.User{ID: "u1", Email: "taro@example.com", PasswordHash: hash}
	users := &mockUserRepo{
		getByEmailFunc: func(ctx context.Context, email string) (*entity.User, error) {
			if email == stored.Email {
				return stored, nil
			}
			return nil, nil
		},
	}
	tm := testTokenManager(t)
	svc := NewAccountService(users, &mockProfileRepo{}, tm, nil, &mockLogger{})

	token, user, err := svc.SignIn(context.Background(), "Taro@Example.com", "hunter2hunter2")
	if err != nil {
		t.Fatalf("SignIn() error = %v", err)
	}
	if user.ID != "u1" {
		t.Errorf("user ID = %q, want u1", user.ID)
	}

	session, err := tm.Verify(token)
	if err != nil {
		t.Fatalf("Verify() of issued token error = %v", err)
	}
	if session.UserID != "u1" || session.Email != "taro@example.com" {
		t.Errorf("session = %+v", session)
	}
}

func TestAccountService_SignIn_BadCredentials(t *testing.T) {
	hash, err := auth.HashPassword("hunter2hunter2")
	if err != nil {
		t.Fatalf("HashPassword() error = %v", err)
	}
	users := &mockUserRepo{
		getByEmailFunc: func(ctx context.Context, email string) (*entity.User, error) {
			if email == "taro@example.com" {
				return &entity.User{ID: "u1", Email: email, PasswordHash: hash}, nil
			}
			return nil, nil
		},
	}
	svc := NewAccountService(users, &mockProfileRepo{}, testTokenManager(t), nil, &mockLogger{})

	if _, _, err := svc.SignIn(context.Background(), "taro@example.com", "wrong-password"); !errors.Is(err, ErrInvalidCredentials) {
		t.Errorf("wrong password: error = %v, want ErrInvalidCredentials", err)
	}
	if _, _, err := svc.SignIn(context.Background(), "nobody@example.com", "hunter2hunter2"); !errors.Is(err, ErrInvalidCredentials) {
		t.Errorf("unknown account: error = %v, want ErrInvalidCredentials", err)
	}
}

func TestAccountService_GetProfile(t *testing.T) {
	profiles := &mockProfileRepo{
		getByUserIDFunc: func(ctx context.Context, userID string) (*entity.Profile, error) {
			if userID == "u1" {
				return &entity.Profile{UserID: "u1", Email: "taro@example.com", Name: "山田太郎"}, nil
			}
			return nil, nil
		},
	}
	svc := NewAccountService(&mockUserRepo{}, profiles, testTokenManager(t), nil, &mockLogger{})

	got, err := svc.GetProfile(context.Background(), auth.Session{UserID: "u1", Email: "taro@example.com"})
	if err != nil {
		t.Fatalf("GetProfile() error = %v", err)
	}
	if got.Name != "山田太郎" {
		t.Errorf("Name = %q", got.Name)
	}

	// No stored profile yet: an empty one is synthesized from the session.
	got, err = svc.GetProfile(context.Background(), auth.Session{UserID: "u2", Email: "hanako@example.com"})
	if err != nil {
		t.Fatalf("GetProfile() error = %v", err)
	}
	if got.UserID != "u2" || got.Email != "hanako@example.com" || got.Name != "" {
		t.Errorf("synthesized profile = %+v", got)
	}
}

func TestAccountService_SaveName(t *testing.T) {
	var savedUserID, savedName string
	profiles := &mockProfileRepo{
		updateNameFunc: func(ctx context.Context, userID, name string) error {
			savedUserID, savedName = userID, name
			return nil
		},
	}
	svc := NewAccountService(&mockUserRepo{}, profiles, testTokenManager(t), nil, &mockLogger{})
	session := auth.Session{UserID: "u1", Email: "taro@example.com"}

	if err := svc.SaveName(context.Background(), session, "  山田太郎  "); err != nil {
		t.Fatalf("SaveName() error = %v", err)
	}
	if savedUserID != "u1" || savedName != "山田太郎" {
		t.Errorf("saved (%q, %q)", savedUserID, savedName)
	}

	if err := svc.SaveName(context.Background(), session, "   "); err == nil {
		t.Error("SaveName() accepted a blank name")
	}
}
