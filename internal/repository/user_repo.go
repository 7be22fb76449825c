package repository

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"tabbyx/internal/domain"

	"gorm.io/gorm"
)

type UserRepository struct {
	db *gorm.DB
}

func NewUserRepository(db *gorm.DB) *UserRepository {
	return &UserRepository{db: db}
}

type userModel struct {
	ID    int64  `gorm:"column:id;primaryKey;autoIncrement"`
	Name  string `gorm:"column:name;size:255;not null"`
	Email string `gorm:"column:email;size:255;not null;uniqueIndex:idx_users_email"`
}

func (userModel) TableName() string { return "users" }

func toDomainUser(m userModel) *domain.User {
	return &domain.User{
		ID:    m.ID,
		Name:  m.Name,
		Email: m.Email,
	}
}

func toUserModel(u *domain.User) userModel {
	return userModel{
		ID:    u.ID,
		Name:  strings.TrimSpace(u.Name),
		Email: normalizeEmail(u.Email),
	}
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// Create inserts u. When a concurrent request already created a user with
// the same email, that user is loaded into u instead.
func (r *UserRepository) Create(ctx context.Context, u *domain.User) error {
	m := toUserModel(u)
	tx := r.db.WithContext(ctx).Create(&m)
	if tx.Error != nil {
		if dup, _ := uniqueViolation(tx.Error); dup {
			existing, err := r.GetByEmail(ctx, m.Email)
			if err != nil {
				return err
			}
			if existing != nil {
				*u = *existing
				return nil
			}
		}
		return fmt.Errorf("insert user: %w", tx.Error)
	}
	*u = *toDomainUser(m)
	return nil
}

// GetByEmail returns (nil, nil) when no user has that email.
func (r *UserRepository) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	var m userModel
	tx := r.db.WithContext(ctx).
		Where("email = ?", normalizeEmail(email)).
		First(&m)
	if tx.Error != nil {
		if errors.Is(tx.Error, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("get user by email: %w", tx.Error)
	}
	return toDomainUser(m), nil
}
