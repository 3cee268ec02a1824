package repository

import (
	"context"

	"github.com/vkayy/ev-cord/models"
)

// MessageRepository, kanal mesajları için interface.
//
// Silme yumuşaktır: satır kalır, deleted bayrağı kalkar ve içerik sabit
// bir tutanak metniyle değiştirilir. Mesajın zaman çizelgesindeki yeri
// korunur.
type MessageRepository interface {
	// Create, kanala yeni bir mesaj ekler.
	Create(ctx context.Context, message *models.Message) error

	// GetByID, mesajı yazarı ile birlikte döner.
	GetByID(ctx context.Context, id string) (*models.Message, error)

	// ListByChannel, mesajları yeniden eskiye doğru sayfalar.
	// cursor boşsa en yeni mesajlardan başlar; doluysa cursor'dan
	// eski mesajları döner.
	ListByChannel(ctx context.Context, channelID, cursor string, limit int) ([]*models.Message, error)

	// Update, mesaj içeriğini değiştirir. Yalnızca yazar; silinmiş
	// mesajlar düzenlenemez.
	Update(ctx context.Context, messageID, memberID, content string) error

	// SoftDelete, mesajı silinmiş olarak işaretler.
	SoftDelete(ctx context.Context, messageID string) error
}
