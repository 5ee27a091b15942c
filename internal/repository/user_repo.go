package repository

import (
	"context"
	"errors"
	"strings"

	"hospital-medicine-api/internal/models"

	"gorm.io/gorm"
)

// ErrUserExists is returned when the username is already taken
var ErrUserExists = errors.New("user already exists")

// UserRepository is the credential store behind basic authentication
type UserRepository struct {
	db *gorm.DB
}

func NewUserRepo(db *gorm.DB) *UserRepository {
	return &UserRepository{db: db}
}

// FindUserByUsername looks up credentials by exact (trimmed) username
func (r *UserRepository) FindUserByUsername(ctx context.Context, username string) (*models.User, error) {
	username = strings.TrimSpace(username)
	if username == "" {
		return nil, ErrNotFound
	}

	var user models.User
	err := r.db.WithContext(ctx).Where(&models.User{Username: username}).Take(&user).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &user, nil
}

// CreateUser stores new credentials. A concurrent insert of the same
// username surfaces as ErrUserExists.
func (r *UserRepository) CreateUser(ctx context.Context, user *models.User) error {
	user.Username = strings.TrimSpace(user.Username)
	err := r.db.WithContext(ctx).Create(user).Error
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return ErrUserExists
	}
	return err
}
