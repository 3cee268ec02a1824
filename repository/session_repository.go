package repository

import (
	"context"

	"github.com/vkayy/ev-cord/models"
)

// SessionRepository, refresh token oturumları için interface.
type SessionRepository interface {
	// Create, yeni bir oturum kaydeder.
	Create(ctx context.Context, session *models.Session) error

	// GetByRefreshToken, oturumu refresh token ile döner.
	GetByRefreshToken(ctx context.Context, token string) (*models.Session, error)

	// Delete, oturumu siler (logout).
	Delete(ctx context.Context, token string) error

	// DeleteByProfile, profilin tüm oturumlarını siler.
	DeleteByProfile(ctx context.Context, profileID string) error

	// DeleteExpired, süresi dolmuş oturumları temizler.
	DeleteExpired(ctx context.Context) (int64, error)
}
