package services

import (
	"context"
	"fmt"
	"log"

	"github.com/vkayy/ev-cord/models"
	"github.com/vkayy/ev-cord/pkg"
	"github.com/vkayy/ev-cord/repository"
	"github.com/vkayy/ev-cord/ws"
)

// ChannelService, kanal operasyonlarının interface'i.
//
// Kanal yönetimi moderator ve üzeri rol ister. "general" kanalı her
// sunucunun sabit giriş noktasıdır — yeniden adlandırılamaz ve silinemez.
type ChannelService interface {
	// CreateChannel, sunucuya yeni kanal ekler.
	CreateChannel(ctx context.Context, serverID, profileID string, req *models.CreateChannelRequest) (*models.Channel, error)

	// GetChannel, kanalı döner. Görüntüleyen sunucunun üyesi olmalı.
	GetChannel(ctx context.Context, channelID, profileID string) (*models.Channel, error)

	// UpdateChannel, kanalı yeniden adlandırır.
	UpdateChannel(ctx context.Context, channelID, profileID string, req *models.UpdateChannelRequest) (*models.Channel, error)

	// DeleteChannel, kanalı ve cascade ile mesajlarını siler.
	DeleteChannel(ctx context.Context, channelID, profileID string) error
}

// channelService, ChannelService interface'inin implementasyonu.
type channelService struct {
	channelRepo repository.ChannelRepository
	memberRepo  repository.MemberRepository
	hub         ws.EventPublisher
}

// NewChannelService, constructor.
func NewChannelService(
	channelRepo repository.ChannelRepository,
	memberRepo repository.MemberRepository,
	hub ws.EventPublisher,
) ChannelService {
	return &channelService{
		channelRepo: channelRepo,
		memberRepo:  memberRepo,
		hub:         hub,
	}
}

func (s *channelService) CreateChannel(ctx context.Context, serverID, profileID string, req *models.CreateChannelRequest) (*models.Channel, error) {
	if err := req.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %s", pkg.ErrBadRequest, err.Error())
	}

	if err := s.requireModerator(ctx, serverID, profileID); err != nil {
		return nil, err
	}

	channel := &models.Channel{
		ServerID:  serverID,
		ProfileID: profileID,
		Name:      req.Name,
		Type:      models.ChannelType(req.Type),
	}

	if err := s.channelRepo.Create(ctx, channel); err != nil {
		return nil, err
	}

	log.Printf("[channel] created: id=%s server=%s name=%q type=%s", channel.ID, serverID, channel.Name, channel.Type)
	s.hub.BroadcastToAll(ws.Event{Op: ws.OpChannelCreate, Data: channel})
	return channel, nil
}

func (s *channelService) GetChannel(ctx context.Context, channelID, profileID string) (*models.Channel, error) {
	channel, err := s.channelRepo.GetByID(ctx, channelID)
	if err != nil {
		return nil, err
	}

	if _, err := s.memberRepo.GetByServerAndProfile(ctx, channel.ServerID, profileID); err != nil {
		return nil, err
	}

	return channel, nil
}

func (s *channelService) UpdateChannel(ctx context.Context, channelID, profileID string, req *models.UpdateChannelRequest) (*models.Channel, error) {
	if err := req.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %s", pkg.ErrBadRequest, err.Error())
	}

	channel, err := s.channelRepo.GetByID(ctx, channelID)
	if err != nil {
		return nil, err
	}

	if channel.Name == models.DefaultChannelName {
		return nil, fmt.Errorf("%w: the %s channel cannot be renamed", pkg.ErrBadRequest, models.DefaultChannelName)
	}

	if err := s.requireModerator(ctx, channel.ServerID, profileID); err != nil {
		return nil, err
	}

	channel.Name = req.Name
	if err := s.channelRepo.Update(ctx, channel); err != nil {
		return nil, err
	}

	s.hub.BroadcastToAll(ws.Event{Op: ws.OpChannelUpdate, Data: channel})
	return channel, nil
}

func (s *channelService) DeleteChannel(ctx context.Context, channelID, profileID string) error {
	channel, err := s.channelRepo.GetByID(ctx, channelID)
	if err != nil {
		return err
	}

	if channel.Name == models.DefaultChannelName {
		return fmt.Errorf("%w: the %s channel cannot be deleted", pkg.ErrBadRequest, models.DefaultChannelName)
	}

	if err := s.requireModerator(ctx, channel.ServerID, profileID); err != nil {
		return err
	}

	if err := s.channelRepo.Delete(ctx, channelID); err != nil {
		return err
	}

	log.Printf("[channel] deleted: id=%s server=%s by=%s", channelID, channel.ServerID, profileID)
	s.hub.BroadcastToAll(ws.Event{
		Op:   ws.OpChannelDelete,
		Data: ws.ChannelDeleteData{ChannelID: channelID, ServerID: channel.ServerID},
	})
	return nil
}

// requireModerator, profilin sunucuda moderator veya üzeri rolde üye
// olduğunu doğrular.
func (s *channelService) requireModerator(ctx context.Context, serverID, profileID string) error {
	member, err := s.memberRepo.GetByServerAndProfile(ctx, serverID, profileID)
	if err != nil {
		return err
	}
	if !member.Role.AtLeast(models.MemberRoleModerator) {
		return fmt.Errorf("%w: moderator role required", pkg.ErrForbidden)
	}
	return nil
}
