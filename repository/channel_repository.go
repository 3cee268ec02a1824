package repository

import (
	"context"

	"github.com/vkayy/ev-cord/models"
)

// ChannelRepository, kanal veritabanı işlemleri için interface.
type ChannelRepository interface {
	// Create, sunucuya yeni bir kanal ekler.
	Create(ctx context.Context, channel *models.Channel) error

	// GetByID, kanalı ID ile döner.
	GetByID(ctx context.Context, id string) (*models.Channel, error)

	// ListByServer, sunucunun kanallarını oluşturulma sırasıyla döner.
	ListByServer(ctx context.Context, serverID string) ([]*models.Channel, error)

	// Update, kanal adını günceller. "general" kanalı güncellenemez.
	Update(ctx context.Context, channel *models.Channel) error

	// Delete, kanalı siler. "general" kanalı silinemez.
	Delete(ctx context.Context, id string) error
}
