package repository

import (
	"context"

	"github.com/vkayy/ev-cord/models"
)

// MemberRepository, üyelik veritabanı işlemleri için interface.
//
// UpdateRole ve DeleteAsOwner, yetki koşullarını tek bir SQL ifadesinde
// taşır: hedef üye verilen sunucuya ait olmalı, sunucu işlemi yapan
// kişiye ait olmalı ve hedef üyenin profili işlemi yapan kişi OLMAMALI.
// Kendi kendini hedefleyen bir çağrı sessizce sıfır satır eşler.
type MemberRepository interface {
	// Create, sunucuya yeni bir üye ekler.
	// Aynı profil ikinci kez eklenirse pkg.ErrAlreadyExists döner.
	Create(ctx context.Context, member *models.Member) error

	// GetByID, üyeyi profili ile birlikte döner.
	GetByID(ctx context.Context, id string) (*models.MemberWithProfile, error)

	// GetByServerAndProfile, profilin sunucudaki üyeliğini döner.
	GetByServerAndProfile(ctx context.Context, serverID, profileID string) (*models.Member, error)

	// ListByServer, sunucunun üyelerini profilleriyle birlikte döner.
	// Sıralama: rol (admin, moderator, guest), sonra katılım zamanı.
	ListByServer(ctx context.Context, serverID string) ([]*models.MemberWithProfile, error)

	// UpdateRole, üyenin rolünü değiştirir. Sunucu actingProfileID'ye ait
	// olmalı ve hedef üye actingProfileID'nin kendisi olmamalı.
	UpdateRole(ctx context.Context, memberID, serverID, actingProfileID string, role models.MemberRole) error

	// DeleteAsOwner, üyeyi sunucudan çıkarır. UpdateRole ile aynı koşullar.
	DeleteAsOwner(ctx context.Context, memberID, serverID, actingProfileID string) error

	// DeleteByServerAndProfile, profilin kendi üyeliğini siler (ayrılma).
	DeleteByServerAndProfile(ctx context.Context, serverID, profileID string) error
}
