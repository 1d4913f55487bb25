package service

import (
	"crypto/rand"
	"crypto/rsa"
	"errors"
	"testing"
	"time"

	"cadr/internal/models"

	"github.com/golang-jwt/jwt/v5"
)

const testSigningKey = "test-signing-key"

// mockAuthRepo is a lightweight in-test mock for repository.Authorization.
type mockAuthRepo struct {
	CreateFn        func(username, hash string) (int, error)
	GetByUsernameFn func(username string) (*models.Operator, error)

	createCalls []string
	getCalls    []string
}

func (m *mockAuthRepo) Create(username, hash string) (int, error) {
	m.createCalls = append(m.createCalls, hash)
	return m.CreateFn(username, hash)
}

func (m *mockAuthRepo) GetByUsername(username string) (*models.Operator, error) {
	m.getCalls = append(m.getCalls, username)
	return m.GetByUsernameFn(username)
}

func newTestAuth(repo *mockAuthRepo) *AuthService {
	return NewAuthService(repo, testSigningKey, time.Hour)
}

func signed(t *testing.T, method jwt.SigningMethod, key any, claims *Claims) string {
	t.Helper()
	s, err := jwt.NewWithClaims(method, claims).SignedString(key)
	if err != nil {
		t.Fatalf("SignedString: %v", err)
	}
	return s
}

func TestAuthService_SignUp(t *testing.T) {
	t.Run("hashes password", func(t *testing.T) {
		repo := &mockAuthRepo{CreateFn: func(string, string) (int, error) { return 42, nil }}
		id, err := newTestAuth(repo).SignUp("alice", "s3cr3t")
		if err != nil || id != 42 {
			t.Fatalf("SignUp = %d, %v", id, err)
		}
		if len(repo.createCalls) != 1 {
			t.Fatalf("expected 1 Create call, got %d", len(repo.createCalls))
		}
		if err := verifyPassword(repo.createCalls[0], "s3cr3t"); err != nil {
			t.Fatalf("stored hash does not verify: %v", err)
		}
	})

	t.Run("empty password", func(t *testing.T) {
		repo := &mockAuthRepo{CreateFn: func(string, string) (int, error) {
			t.Fatal("Create should not be called")
			return 0, nil
		}}
		if _, err := newTestAuth(repo).SignUp("bob", "   "); err == nil {
			t.Fatal("expected error for empty password")
		}
	})

	t.Run("repo error", func(t *testing.T) {
		repo := &mockAuthRepo{CreateFn: func(string, string) (int, error) { return 0, errors.New("db down") }}
		if _, err := newTestAuth(repo).SignUp("carl", "pass123"); err == nil {
			t.Fatal("expected repo error")
		}
	})
}

func TestAuthService_GenerateToken(t *testing.T) {
	hash, err := hashPassword("letmein")
	if err != nil {
		t.Fatalf("hashPassword: %v", err)
	}
	diana := &models.Operator{ID: 7, Username: "diana", PasswordHash: hash}

	tests := []struct {
		name     string
		lookup   func(string) (*models.Operator, error)
		password string
		wantErr  error
		anyErr   bool
	}{
		{
			name:     "success",
			lookup:   func(string) (*models.Operator, error) { return diana, nil },
			password: "letmein",
		},
		{
			name:     "unknown operator",
			lookup:   func(string) (*models.Operator, error) { return nil, nil },
			password: "pw",
			wantErr:  ErrUserNotFound,
		},
		{
			name:     "wrong password",
			lookup:   func(string) (*models.Operator, error) { return diana, nil },
			password: "wrong",
			wantErr:  ErrInvalidPassword,
		},
		{
			name:     "repo error",
			lookup:   func(string) (*models.Operator, error) { return nil, errors.New("query failed") },
			password: "pw",
			anyErr:   true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := newTestAuth(&mockAuthRepo{GetByUsernameFn: tt.lookup})
			token, err := svc.GenerateToken("diana", tt.password)
			switch {
			case tt.wantErr != nil:
				if !errors.Is(err, tt.wantErr) {
					t.Fatalf("err = %v, want %v", err, tt.wantErr)
				}
			case tt.anyErr:
				if err == nil {
					t.Fatal("expected error")
				}
			default:
				if err != nil {
					t.Fatalf("GenerateToken: %v", err)
				}
				id, err := svc.ParseToken(token)
				if err != nil || id != 7 {
					t.Fatalf("ParseToken = %d, %v", id, err)
				}
			}
		})
	}
}

func TestAuthService_ParseToken(t *testing.T) {
	svc := newTestAuth(&mockAuthRepo{})
	now := time.Now()
	valid := jwt.RegisteredClaims{
		ExpiresAt: jwt.NewNumericDate(now.Add(time.Hour)),
		IssuedAt:  jwt.NewNumericDate(now),
	}
	expired := jwt.RegisteredClaims{
		ExpiresAt: jwt.NewNumericDate(now.Add(-time.Hour)),
		IssuedAt:  jwt.NewNumericDate(now.Add(-2 * time.Hour)),
	}
	rsaKey, err := rsa.GenerateKey(rand.Reader, 2048)
	if err != nil {
		t.Fatalf("rsa.GenerateKey: %v", err)
	}

	tests := []struct {
		name    string
		token   string
		wantID  int
		wantErr bool
	}{
		{
			name:   "valid",
			token:  signed(t, jwt.SigningMethodHS256, []byte(testSigningKey), &Claims{RegisteredClaims: valid, OperatorID: 99}),
			wantID: 99,
		},
		{name: "malformed", token: "not-a-jwt", wantErr: true},
		{
			name:    "other key",
			token:   signed(t, jwt.SigningMethodHS256, []byte("different-key"), &Claims{RegisteredClaims: valid, OperatorID: 5}),
			wantErr: true,
		},
		{
			name:    "expired",
			token:   signed(t, jwt.SigningMethodHS256, []byte(testSigningKey), &Claims{RegisteredClaims: expired, OperatorID: 11}),
			wantErr: true,
		},
		{
			name:    "rsa signed",
			token:   signed(t, jwt.SigningMethodRS256, rsaKey, &Claims{RegisteredClaims: valid, OperatorID: 12}),
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			id, err := svc.ParseToken(tt.token)
			if tt.wantErr {
				if err == nil {
					t.Fatal("expected error")
				}
				return
			}
			if err != nil || id != tt.wantID {
				t.Fatalf("ParseToken = %d, %v; want %d", id, err, tt.wantID)
			}
		})
	}
}

func TestNewAuthService_DefaultTTL(t *testing.T) {
	svc := NewAuthService(&mockAuthRepo{}, testSigningKey, 0)
	if svc.tokenTTL != defaultTokenTTL {
		t.Fatalf("tokenTTL = %v, want %v", svc.tokenTTL, defaultTokenTTL)
	}
}
