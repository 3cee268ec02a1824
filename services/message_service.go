package services

import (
	"context"
	"fmt"

	"github.com/vkayy/ev-cord/models"
	"github.com/vkayy/ev-cord/pkg"
	"github.com/vkayy/ev-cord/repository"
	"github.com/vkayy/ev-cord/ws"
)

// defaultMessagePageSize, bir pagination sayfasındaki mesaj sayısı.
const defaultMessagePageSize = 50

// MessageService, kanal mesajı operasyonlarının interface'i.
//
// Yetki modeli:
//   - Gönderme ve okuma: kanalın sunucusuna üyelik yeterli.
//   - Düzenleme: yalnızca yazar.
//   - Silme: yazar veya moderator+ rolü. Silme soft'tur — satır kalır,
//     history'deki konumu korunur.
type MessageService interface {
	SendMessage(ctx context.Context, channelID, profileID string, req *models.CreateMessageRequest) (*models.Message, error)
	ListMessages(ctx context.Context, channelID, profileID, cursor string) (*models.MessagePage, error)
	EditMessage(ctx context.Context, messageID, profileID string, req *models.UpdateMessageRequest) (*models.Message, error)
	DeleteMessage(ctx context.Context, messageID, profileID string) (*models.Message, error)
}

// messageService, MessageService interface'inin implementasyonu.
type messageService struct {
	messageRepo repository.MessageRepository
	channelRepo repository.ChannelRepository
	memberRepo  repository.MemberRepository
	hub         ws.EventPublisher
}

// NewMessageService, constructor.
func NewMessageService(
	messageRepo repository.MessageRepository,
	channelRepo repository.ChannelRepository,
	memberRepo repository.MemberRepository,
	hub ws.EventPublisher,
) MessageService {
	return &messageService{
		messageRepo: messageRepo,
		channelRepo: channelRepo,
		memberRepo:  memberRepo,
		hub:         hub,
	}
}

func (s *messageService) SendMessage(ctx context.Context, channelID, profileID string, req *models.CreateMessageRequest) (*models.Message, error) {
	if err := req.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %s", pkg.ErrBadRequest, err.Error())
	}

	channel, err := s.channelRepo.GetByID(ctx, channelID)
	if err != nil {
		return nil, err
	}

	if channel.Type != models.ChannelTypeText {
		return nil, fmt.Errorf("%w: messages can only be sent to text channels", pkg.ErrBadRequest)
	}

	member, err := s.memberRepo.GetByServerAndProfile(ctx, channel.ServerID, profileID)
	if err != nil {
		return nil, err
	}

	message := &models.Message{
		ChannelID: channelID,
		MemberID:  member.ID,
		Content:   req.Content,
		FileURL:   req.FileURL,
	}

	if err := s.messageRepo.Create(ctx, message); err != nil {
		return nil, err
	}

	// Author'ı JOIN'li halde tekrar oku — broadcast ve response aynı
	// şekli taşısın.
	full, err := s.messageRepo.GetByID(ctx, message.ID)
	if err != nil {
		return nil, err
	}

	s.hub.BroadcastToAll(ws.Event{Op: ws.OpMessageCreate, Data: full})
	return full, nil
}

func (s *messageService) ListMessages(ctx context.Context, channelID, profileID, cursor string) (*models.MessagePage, error) {
	channel, err := s.channelRepo.GetByID(ctx, channelID)
	if err != nil {
		return nil, err
	}

	if _, err := s.memberRepo.GetByServerAndProfile(ctx, channel.ServerID, profileID); err != nil {
		return nil, err
	}

	// limit+1 çekilir: fazladan satır geldiyse daha eski sayfa vardır.
	messages, err := s.messageRepo.ListByChannel(ctx, channelID, cursor, defaultMessagePageSize+1)
	if err != nil {
		return nil, err
	}

	page := &models.MessagePage{Messages: make([]models.Message, 0, len(messages))}
	if len(messages) > defaultMessagePageSize {
		messages = messages[:defaultMessagePageSize]
		page.NextCursor = messages[len(messages)-1].ID
	}
	for _, m := range messages {
		page.Messages = append(page.Messages, *m)
	}
	return page, nil
}

func (s *messageService) EditMessage(ctx context.Context, messageID, profileID string, req *models.UpdateMessageRequest) (*models.Message, error) {
	if err := req.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %s", pkg.ErrBadRequest, err.Error())
	}

	message, err := s.messageRepo.GetByID(ctx, messageID)
	if err != nil {
		return nil, err
	}

	if message.Deleted {
		return nil, fmt.Errorf("%w: deleted messages cannot be edited", pkg.ErrBadRequest)
	}

	// Düzenleme yalnızca yazara açıktır — moderatöre bile kapalı.
	if message.Author == nil || message.Author.ProfileID != profileID {
		return nil, fmt.Errorf("%w: only the author can edit a message", pkg.ErrForbidden)
	}

	if err := s.messageRepo.Update(ctx, messageID, message.MemberID, req.Content); err != nil {
		return nil, err
	}

	updated, err := s.messageRepo.GetByID(ctx, messageID)
	if err != nil {
		return nil, err
	}

	s.hub.BroadcastToAll(ws.Event{Op: ws.OpMessageUpdate, Data: updated})
	return updated, nil
}

func (s *messageService) DeleteMessage(ctx context.Context, messageID, profileID string) (*models.Message, error) {
	message, err := s.messageRepo.GetByID(ctx, messageID)
	if err != nil {
		return nil, err
	}

	if message.Deleted {
		return nil, fmt.Errorf("%w: message already deleted", pkg.ErrBadRequest)
	}

	channel, err := s.channelRepo.GetByID(ctx, message.ChannelID)
	if err != nil {
		return nil, err
	}

	actor, err := s.memberRepo.GetByServerAndProfile(ctx, channel.ServerID, profileID)
	if err != nil {
		return nil, err
	}

	isAuthor := message.Author != nil && message.Author.ProfileID == profileID
	if !isAuthor && !actor.Role.AtLeast(models.MemberRoleModerator) {
		return nil, fmt.Errorf("%w: only the author or a moderator can delete a message", pkg.ErrForbidden)
	}

	if err := s.messageRepo.SoftDelete(ctx, messageID); err != nil {
		return nil, err
	}

	deleted, err := s.messageRepo.GetByID(ctx, messageID)
	if err != nil {
		return nil, err
	}

	s.hub.BroadcastToAll(ws.Event{Op: ws.OpMessageDelete, Data: deleted})
	return deleted, nil
}
