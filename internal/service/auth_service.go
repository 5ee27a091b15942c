package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"hospital-medicine-api/internal/models"
	"hospital-medicine-api/internal/repository"
	"hospital-medicine-api/pkg/utils"

	"github.com/rs/zerolog/log"
)

var ErrInvalidCredentials = errors.New("invalid credentials")

// UserStore is the credential store. *repository.UserRepository implements it.
type UserStore interface {
	FindUserByUsername(ctx context.Context, username string) (*models.User, error)
	CreateUser(ctx context.Context, user *models.User) error
}

type AuthService struct {
	userRepo UserStore
	auditor  Auditor
	signer   *utils.TokenSigner
}

func NewAuthService(userRepo UserStore, auditor Auditor, signer *utils.TokenSigner) *AuthService {
	return &AuthService{
		userRepo: userRepo,
		auditor:  auditor,
		signer:   signer,
	}
}

// Authenticate checks a username/password pair against the user store
func (s *AuthService) Authenticate(ctx context.Context, username, password string) (*models.User, error) {
	user, err := s.userRepo.FindUserByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, fmt.Errorf("failed to look up user: %w", err)
	}

	if !utils.ComparePassword(user.PasswordHash, password) {
		return nil, ErrInvalidCredentials
	}

	return user, nil
}

// IssueToken mints a bearer token for an already authenticated caller
func (s *AuthService) IssueToken(ctx context.Context, subject string, authorities []string) (string, error) {
	token, err := s.signer.Sign(subject, authorities)
	if err != nil {
		return "", fmt.Errorf("failed to sign token: %w", err)
	}

	if s.auditor != nil {
		details := fmt.Sprintf("Issued token for %s (scope: %s)", subject, strings.Join(authorities, " "))
		if err := s.auditor.CreateAuditLog(ctx, subject, "token_issue", details); err != nil {
			log.Ctx(ctx).Warn().Err(err).Msg("failed to write audit log")
		}
	}

	return token, nil
}

// EnsureUser creates the user when it does not exist yet. An existing user
// is left untouched.
func (s *AuthService) EnsureUser(ctx context.Context, username, password, roles string) (bool, error) {
	_, err := s.userRepo.FindUserByUsername(ctx, username)
	if err == nil {
		return false, nil
	}
	if !errors.Is(err, repository.ErrNotFound) {
		return false, fmt.Errorf("failed to look up user: %w", err)
	}
	if password == "" {
		return false, fmt.Errorf("no password configured for user %q", username)
	}

	passwordHash, err := utils.HashPassword(password)
	if err != nil {
		return false, fmt.Errorf("failed to hash password: %w", err)
	}

	user := &models.User{
		Username:     username,
		PasswordHash: passwordHash,
		Roles:        roles,
	}
	if err := s.userRepo.CreateUser(ctx, user); err != nil {
		// another instance created it first
		if errors.Is(err, repository.ErrUserExists) {
			return false, nil
		}
		return false, fmt.Errorf("failed to create user: %w", err)
	}
	return true, nil
}
