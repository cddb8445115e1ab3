package store

import (
	"context"
	"time"

	"github.com/AbhishekPandey12/foodorderingapp/internal/models"
	"gorm.io/gorm"
)

type sessionRepository struct {
	db *gorm.DB
}

func NewSessionRepository(db *gorm.DB) SessionRepository {
	return &sessionRepository{db: db}
}

func (r *sessionRepository) Create(ctx context.Context, auth *models.CustomerAuth) error {
	// The customer row already exists; only the auth record is inserted.
	return translate(r.db.WithContext(ctx).Omit("Customer").Create(auth).Error)
}

// GetByAccessToken returns the session with its customer loaded
func (r *sessionRepository) GetByAccessToken(ctx context.Context, accessToken string) (*models.CustomerAuth, error) {
	var auth models.CustomerAuth
	err := r.db.WithContext(ctx).
		Preload("Customer").
		Where("access_token = ?", accessToken).
		First(&auth).Error
	if err != nil {
		return nil, translate(err)
	}
	return &auth, nil
}

func (r *sessionRepository) MarkLoggedOut(ctx context.Context, accessToken string, at time.Time) (bool, error) {
	result := r.db.WithContext(ctx).
		Model(&models.CustomerAuth{}).
		Where("access_token = ? AND logout_at IS NULL", accessToken).
		Update("logout_at", at)
	if result.Error != nil {
		return false, translate(result.Error)
	}
	return result.RowsAffected == 1, nil
}

func (r *sessionRepository) DeleteExpiredBefore(ctx context.Context, cutoff time.Time) (int64, error) {
	result := r.db.WithContext(ctx).
		Where("expires_at < ?", cutoff).
		Delete(&models.CustomerAuth{})
	return result.RowsAffected, translate(result.Error)
}
