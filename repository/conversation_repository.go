package repository

import (
	"context"

	"github.com/vkayy/ev-cord/models"
)

// ConversationRepository, birebir konuşmalar ve direkt mesajlar için
// interface.
//
// Bir konuşma, iki üye arasında tektir; Create çağrısından önce üye
// çifti normalize edilmiş (memberOne < memberTwo) olmalıdır. Bu sıralama
// UNIQUE(member_one_id, member_two_id) kısıtının çift yönlü çalışmasını
// sağlar.
type ConversationRepository interface {
	// Create, yeni bir konuşma oluşturur.
	Create(ctx context.Context, conversation *models.Conversation) error

	// GetByID, konuşmayı iki üyesiyle birlikte döner.
	GetByID(ctx context.Context, id string) (*models.Conversation, error)

	// GetByMembers, normalize edilmiş üye çiftinin konuşmasını döner.
	GetByMembers(ctx context.Context, memberOneID, memberTwoID string) (*models.Conversation, error)

	// CreateDirectMessage, konuşmaya yeni bir direkt mesaj ekler.
	CreateDirectMessage(ctx context.Context, dm *models.DirectMessage) error

	// GetDirectMessageByID, direkt mesajı yazarı ile birlikte döner.
	GetDirectMessageByID(ctx context.Context, id string) (*models.DirectMessage, error)

	// ListDirectMessages, direkt mesajları yeniden eskiye sayfalar.
	ListDirectMessages(ctx context.Context, conversationID, cursor string, limit int) ([]*models.DirectMessage, error)

	// UpdateDirectMessage, içerik değiştirir. Yalnızca yazar.
	UpdateDirectMessage(ctx context.Context, dmID, memberID, content string) error

	// SoftDeleteDirectMessage, direkt mesajı silinmiş olarak işaretler.
	SoftDeleteDirectMessage(ctx context.Context, dmID string) error
}
