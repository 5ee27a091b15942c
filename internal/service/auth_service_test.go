package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"hospital-medicine-api/internal/models"
	"hospital-medicine-api/internal/repository"
	"hospital-medicine-api/pkg/utils"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func hashed(t *testing.T, password string) string {
	t.Helper()
	h, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	require.NoError(t, err)
	return string(h)
}

func TestAuthenticate(t *testing.T) {
	alice := &models.User{ID: 1, Username: "alice", PasswordHash: hashed(t, "wonderland"), Roles: "USER,ADMIN"}
	users := &MockUserStore{
		FindUserByUsernameFunc: func(ctx context.Context, username string) (*models.User, error) {
			if username == "alice" {
				return alice, nil
			}
			return nil, repository.ErrNotFound
		},
	}
	svc := NewAuthService(users, nil, utils.NewTokenSigner("secret"))
	ctx := context.Background()

	user, err := svc.Authenticate(ctx, "alice", "wonderland")
	require.NoError(t, err)
	assert.Equal(t, []string{"ROLE_USER", "ROLE_ADMIN"}, user.Authorities())

	_, err = svc.Authenticate(ctx, "alice", "nope")
	assert.ErrorIs(t, err, ErrInvalidCredentials)

	_, err = svc.Authenticate(ctx, "mallory", "wonderland")
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestAuthenticateStoreFailure(t *testing.T) {
	boom := errors.New("db down")
	users := &MockUserStore{
		FindUserByUsernameFunc: func(ctx context.Context, username string) (*models.User, error) {
			return nil, boom
		},
	}
	svc := NewAuthService(users, nil, utils.NewTokenSigner("secret"))

	_, err := svc.Authenticate(context.Background(), "alice", "x")
	assert.ErrorIs(t, err, boom)
	assert.False(t, errors.Is(err, ErrInvalidCredentials))
}

func TestIssueTokenClaims(t *testing.T) {
	now := time.Date(2026, 10, 17, 12, 0, 0, 0, time.UTC)
	signer := utils.NewTokenSigner("secret").WithClock(func() time.Time { return now })
	auditor := &recordingAuditor{}
	svc := NewAuthService(&MockUserStore{}, auditor, signer)

	token, err := svc.IssueToken(context.Background(), "alice", []string{"ROLE_USER", "ROLE_ADMIN"})
	require.NoError(t, err)

	claims, err := signer.Verify(token)
	require.NoError(t, err)
	assert.Equal(t, "alice", claims.Subject)
	assert.Equal(t, "ROLE_USER ROLE_ADMIN", claims.Scope)
	assert.Equal(t, "self", claims.Issuer)
	assert.Equal(t, int64(3600), claims.ExpiresAt.Unix()-claims.IssuedAt.Unix())

	require.Len(t, auditor.entries, 1)
	assert.Equal(t, "token_issue", auditor.entries[0].action)
	assert.Equal(t, "alice", auditor.entries[0].actor)
}

func TestEnsureUser(t *testing.T) {
	var created *models.User
	users := &MockUserStore{
		CreateUserFunc: func(ctx context.Context, user *models.User) error {
			created = user
			return nil
		},
	}
	svc := NewAuthService(users, nil, utils.NewTokenSigner("secret"))

	ok, err := svc.EnsureUser(context.Background(), "admin", "changeme", "USER,ADMIN")
	require.NoError(t, err)
	assert.True(t, ok)
	require.NotNil(t, created)
	assert.Equal(t, "admin", created.Username)
	assert.Equal(t, "USER,ADMIN", created.Roles)
	assert.True(t, utils.ComparePassword(created.PasswordHash, "changeme"))
}

func TestEnsureUserKeepsExisting(t *testing.T) {
	users := &MockUserStore{
		FindUserByUsernameFunc: func(ctx context.Context, username string) (*models.User, error) {
			return &models.User{Username: username}, nil
		},
	}
	svc := NewAuthService(users, nil, utils.NewTokenSigner("secret"))

	ok, err := svc.EnsureUser(context.Background(), "admin", "", "USER")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestEnsureUserRequiresPassword(t *testing.T) {
	svc := NewAuthService(&MockUserStore{}, nil, utils.NewTokenSigner("secret"))

	_, err := svc.EnsureUser(context.Background(), "admin", "", "USER")
	assert.Error(t, err)
}

func TestEnsureUserLosesCreateRace(t *testing.T) {
	users := &MockUserStore{
		CreateUserFunc: func(ctx context.Context, user *models.User) error {
			return repository.ErrUserExists
		},
	}
	svc := NewAuthService(users, nil, utils.NewTokenSigner("secret"))

	ok, err := svc.EnsureUser(context.Background(), "admin", "changeme", "USER")
	require.NoError(t, err)
	assert.False(t, ok)
}
