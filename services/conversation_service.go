package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/vkayy/ev-cord/models"
	"github.com/vkayy/ev-cord/pkg"
	"github.com/vkayy/ev-cord/repository"
	"github.com/vkayy/ev-cord/ws"
)

// ConversationService, birebir konuşma ve direkt mesaj operasyonlarının
// interface'i.
//
// Konuşma get-or-create semantiğiyle açılır: aynı üye çifti için hangi
// taraf başlatırsa başlatsın tek konuşma oluşur. DM event'leri kanal
// mesajlarından farklı olarak herkese değil, yalnızca konuşmanın iki
// tarafına broadcast edilir.
type ConversationService interface {
	// GetOrCreateConversation, acting profil ile hedef üye arasındaki
	// konuşmayı döner; yoksa oluşturur. İki üye aynı sunucuda olmalıdır.
	GetOrCreateConversation(ctx context.Context, profileID, otherMemberID string) (*models.Conversation, error)

	// GetConversation, konuşmayı döner. Yalnızca taraflar erişebilir.
	GetConversation(ctx context.Context, conversationID, profileID string) (*models.Conversation, error)

	SendDirectMessage(ctx context.Context, conversationID, profileID string, req *models.CreateMessageRequest) (*models.DirectMessage, error)
	ListDirectMessages(ctx context.Context, conversationID, profileID, cursor string) (*models.DirectMessagePage, error)
	EditDirectMessage(ctx context.Context, dmID, profileID string, req *models.UpdateMessageRequest) (*models.DirectMessage, error)
	DeleteDirectMessage(ctx context.Context, dmID, profileID string) (*models.DirectMessage, error)
}

// conversationService, ConversationService interface'inin implementasyonu.
type conversationService struct {
	conversationRepo repository.ConversationRepository
	memberRepo       repository.MemberRepository
	hub              ws.EventPublisher
}

// NewConversationService, constructor.
func NewConversationService(
	conversationRepo repository.ConversationRepository,
	memberRepo repository.MemberRepository,
	hub ws.EventPublisher,
) ConversationService {
	return &conversationService{
		conversationRepo: conversationRepo,
		memberRepo:       memberRepo,
		hub:              hub,
	}
}

func (s *conversationService) GetOrCreateConversation(ctx context.Context, profileID, otherMemberID string) (*models.Conversation, error) {
	other, err := s.memberRepo.GetByID(ctx, otherMemberID)
	if err != nil {
		return nil, err
	}

	actor, err := s.memberRepo.GetByServerAndProfile(ctx, other.ServerID, profileID)
	if err != nil {
		return nil, err
	}

	if actor.ID == other.ID {
		return nil, fmt.Errorf("%w: cannot start a conversation with yourself", pkg.ErrBadRequest)
	}

	// Çift, ID sırasına göre normalize edilir — (a,b) ile (b,a) aynı
	// konuşmaya düşer, UNIQUE constraint tek yönde çalışır.
	oneID, twoID := actor.ID, other.ID
	if oneID > twoID {
		oneID, twoID = twoID, oneID
	}

	conversation, err := s.conversationRepo.GetByMembers(ctx, oneID, twoID)
	if err == nil {
		return conversation, nil
	}
	if !errors.Is(err, pkg.ErrNotFound) {
		return nil, err
	}

	conversation = &models.Conversation{MemberOneID: oneID, MemberTwoID: twoID}
	if err := s.conversationRepo.Create(ctx, conversation); err != nil {
		// Yarış: iki taraf aynı anda başlattı — kazananın satırını oku.
		if errors.Is(err, pkg.ErrAlreadyExists) {
			return s.conversationRepo.GetByMembers(ctx, oneID, twoID)
		}
		return nil, err
	}

	full, err := s.conversationRepo.GetByID(ctx, conversation.ID)
	if err != nil {
		return nil, err
	}

	s.broadcastToParticipants(full, ws.Event{Op: ws.OpConversationCreate, Data: full})
	return full, nil
}

func (s *conversationService) GetConversation(ctx context.Context, conversationID, profileID string) (*models.Conversation, error) {
	conversation, err := s.conversationRepo.GetByID(ctx, conversationID)
	if err != nil {
		return nil, err
	}
	if !s.isParticipant(conversation, profileID) {
		return nil, fmt.Errorf("%w: conversation not found", pkg.ErrNotFound)
	}
	return conversation, nil
}

func (s *conversationService) SendDirectMessage(ctx context.Context, conversationID, profileID string, req *models.CreateMessageRequest) (*models.DirectMessage, error) {
	if err := req.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %s", pkg.ErrBadRequest, err.Error())
	}

	conversation, err := s.conversationRepo.GetByID(ctx, conversationID)
	if err != nil {
		return nil, err
	}

	sender := s.participantMember(conversation, profileID)
	if sender == nil {
		return nil, fmt.Errorf("%w: conversation not found", pkg.ErrNotFound)
	}

	dm := &models.DirectMessage{
		ConversationID: conversationID,
		MemberID:       sender.ID,
		Content:        req.Content,
		FileURL:        req.FileURL,
	}

	if err := s.conversationRepo.CreateDirectMessage(ctx, dm); err != nil {
		return nil, err
	}

	full, err := s.conversationRepo.GetDirectMessageByID(ctx, dm.ID)
	if err != nil {
		return nil, err
	}

	s.broadcastToParticipants(conversation, ws.Event{Op: ws.OpDMCreate, Data: full})
	return full, nil
}

func (s *conversationService) ListDirectMessages(ctx context.Context, conversationID, profileID, cursor string) (*models.DirectMessagePage, error) {
	conversation, err := s.conversationRepo.GetByID(ctx, conversationID)
	if err != nil {
		return nil, err
	}
	if !s.isParticipant(conversation, profileID) {
		return nil, fmt.Errorf("%w: conversation not found", pkg.ErrNotFound)
	}

	messages, err := s.conversationRepo.ListDirectMessages(ctx, conversationID, cursor, defaultMessagePageSize+1)
	if err != nil {
		return nil, err
	}

	page := &models.DirectMessagePage{Messages: make([]models.DirectMessage, 0, len(messages))}
	if len(messages) > defaultMessagePageSize {
		messages = messages[:defaultMessagePageSize]
		page.NextCursor = messages[len(messages)-1].ID
	}
	for _, m := range messages {
		page.Messages = append(page.Messages, *m)
	}
	return page, nil
}

func (s *conversationService) EditDirectMessage(ctx context.Context, dmID, profileID string, req *models.UpdateMessageRequest) (*models.DirectMessage, error) {
	if err := req.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %s", pkg.ErrBadRequest, err.Error())
	}

	dm, err := s.conversationRepo.GetDirectMessageByID(ctx, dmID)
	if err != nil {
		return nil, err
	}

	if dm.Deleted {
		return nil, fmt.Errorf("%w: deleted messages cannot be edited", pkg.ErrBadRequest)
	}

	if dm.Author == nil || dm.Author.ProfileID != profileID {
		return nil, fmt.Errorf("%w: only the author can edit a message", pkg.ErrForbidden)
	}

	if err := s.conversationRepo.UpdateDirectMessage(ctx, dmID, dm.MemberID, req.Content); err != nil {
		return nil, err
	}

	updated, err := s.conversationRepo.GetDirectMessageByID(ctx, dmID)
	if err != nil {
		return nil, err
	}

	conversation, err := s.conversationRepo.GetByID(ctx, dm.ConversationID)
	if err != nil {
		return nil, err
	}
	s.broadcastToParticipants(conversation, ws.Event{Op: ws.OpDMUpdate, Data: updated})
	return updated, nil
}

func (s *conversationService) DeleteDirectMessage(ctx context.Context, dmID, profileID string) (*models.DirectMessage, error) {
	dm, err := s.conversationRepo.GetDirectMessageByID(ctx, dmID)
	if err != nil {
		return nil, err
	}

	if dm.Deleted {
		return nil, fmt.Errorf("%w: message already deleted", pkg.ErrBadRequest)
	}

	// DM'de moderatör kavramı yoktur — silme yalnızca yazara açıktır.
	if dm.Author == nil || dm.Author.ProfileID != profileID {
		return nil, fmt.Errorf("%w: only the author can delete a direct message", pkg.ErrForbidden)
	}

	if err := s.conversationRepo.SoftDeleteDirectMessage(ctx, dmID); err != nil {
		return nil, err
	}

	deleted, err := s.conversationRepo.GetDirectMessageByID(ctx, dmID)
	if err != nil {
		return nil, err
	}

	conversation, err := s.conversationRepo.GetByID(ctx, dm.ConversationID)
	if err != nil {
		return nil, err
	}
	s.broadcastToParticipants(conversation, ws.Event{Op: ws.OpDMDelete, Data: deleted})
	return deleted, nil
}

// ─── Private Helpers ───

func (s *conversationService) isParticipant(c *models.Conversation, profileID string) bool {
	return s.participantMember(c, profileID) != nil
}

// participantMember, profil konuşmanın tarafıysa ilgili üye satırını döner.
func (s *conversationService) participantMember(c *models.Conversation, profileID string) *models.MemberWithProfile {
	if c.MemberOne != nil && c.MemberOne.ProfileID == profileID {
		return c.MemberOne
	}
	if c.MemberTwo != nil && c.MemberTwo.ProfileID == profileID {
		return c.MemberTwo
	}
	return nil
}

// broadcastToParticipants, event'i konuşmanın iki tarafına gönderir.
func (s *conversationService) broadcastToParticipants(c *models.Conversation, event ws.Event) {
	if c.MemberOne != nil {
		s.hub.BroadcastToProfile(c.MemberOne.ProfileID, event)
	}
	if c.MemberTwo != nil {
		s.hub.BroadcastToProfile(c.MemberTwo.ProfileID, event)
	}
}
