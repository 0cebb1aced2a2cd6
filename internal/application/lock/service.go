// Package lock keeps the optional password that locks the UI shell. It is a
// convenience lock for a shared desk, not authentication.
package lock

import (
	"context"
	"errors"

	"estate-backend/internal/domain"
	"estate-backend/internal/pkg/apperror"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type Service struct {
	DB *gorm.DB
}

// Set stores a new password. An empty password removes the lock.
func (s *Service) Set(ctx context.Context, password string) error {
	db := s.DB.WithContext(ctx)
	if password == "" {
		return apperror.Storage(db.Where("id = ?", domain.AppLockID).Delete(&domain.AppLock{}).Error)
	}
	if len(password) < 4 {
		return apperror.Validation("Password must be at least 4 characters")
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		if errors.Is(err, bcrypt.ErrPasswordTooLong) {
			return apperror.Validation("Password is too long")
		}
		return apperror.Storage(err)
	}
	row := domain.AppLock{ID: domain.AppLockID, PasswordHash: string(hash)}
	return apperror.Storage(db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "id"}},
		DoUpdates: clause.AssignmentColumns([]string{"password_hash", "updated_at"}),
	}).Create(&row).Error)
}

// Locked reports whether a password is set.
func (s *Service) Locked(ctx context.Context) (bool, error) {
	var n int64
	if err := s.DB.WithContext(ctx).Model(&domain.AppLock{}).Count(&n).Error; err != nil {
		return false, apperror.Storage(err)
	}
	return n > 0, nil
}

// Unlock checks password against the stored hash. With no lock set any password passes.
func (s *Service) Unlock(ctx context.Context, password string) (bool, error) {
	var row domain.AppLock
	err := s.DB.WithContext(ctx).Where("id = ?", domain.AppLockID).First(&row).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return true, nil
	}
	if err != nil {
		return false, apperror.Storage(err)
	}
	return bcrypt.CompareHashAndPassword([]byte(row.PasswordHash), []byte(password)) == nil, nil
}
