package repository

import (
	"context"

	"github.com/vkayy/ev-cord/models"
)

// ServerRepository, sunucu veritabanı işlemleri için interface.
//
// Update, RotateInviteCode ve Delete sahiplik koşulunu SQL seviyesinde
// taşır: WHERE id = ? AND profile_id = ?. Sahip olmayan bir çağrı sessizce
// sıfır satır eşler ve pkg.ErrNotFound döner — varlık ile yetki ayrımı
// dışarı sızmaz.
type ServerRepository interface {
	// Create, yeni bir sunucu oluşturur.
	Create(ctx context.Context, server *models.Server) error

	// GetByID, sunucuyu ID ile döner.
	GetByID(ctx context.Context, id string) (*models.Server, error)

	// GetByInviteCode, sunucuyu davet kodu ile döner.
	GetByInviteCode(ctx context.Context, code string) (*models.Server, error)

	// ListByProfile, profilin üye olduğu sunucuları döner.
	ListByProfile(ctx context.Context, profileID string) ([]*models.Server, error)

	// Update, sunucu adını ve görselini günceller. Yalnızca sahip.
	Update(ctx context.Context, server *models.Server, ownerProfileID string) error

	// RotateInviteCode, davet kodunu yenisiyle değiştirir. Yalnızca sahip.
	RotateInviteCode(ctx context.Context, serverID, ownerProfileID, newCode string) error

	// Delete, sunucuyu siler. Yalnızca sahip.
	Delete(ctx context.Context, serverID, ownerProfileID string) error
}
