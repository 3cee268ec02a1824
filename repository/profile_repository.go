// Package repository, veritabanı erişim katmanını barındırır.
//
// Her domain tipi için iki dosya vardır: interface (bu dosya gibi) ve
// sqlite_*.go implementasyonu. Service katmanı yalnızca interface'lere
// bağımlıdır — testlerde in-memory fake'ler, transaction'larda tx-bound
// repo'lar bu sayede yerine geçebilir.
package repository

import (
	"context"

	"github.com/vkayy/ev-cord/models"
)

// ProfileRepository, profil veritabanı işlemleri için interface.
type ProfileRepository interface {
	// Create, yeni bir profil oluşturur.
	// Email benzersizliği ihlalinde pkg.ErrAlreadyExists döner.
	Create(ctx context.Context, profile *models.Profile) error

	// GetByID, profili ID ile döner.
	GetByID(ctx context.Context, id string) (*models.Profile, error)

	// GetByEmail, profili email ile döner (login için).
	GetByEmail(ctx context.Context, email string) (*models.Profile, error)

	// Update, isim ve avatar alanlarını günceller.
	Update(ctx context.Context, profile *models.Profile) error
}
