// Voice token üretimi.
//
// Ses/görüntü trafiği uygulama sunucusundan geçmez — client, LiveKit
// SFU'suna doğrudan bağlanır. Uygulamanın görevi yalnızca yetkiyi
// doğrulayıp imzalı bir katılım token'ı üretmektir. Token, LiveKit API
// key/secret çiftiyle imzalanır; LiveKit sunucusu grant'lara göre izin verir.
package services

import (
	"context"
	"fmt"
	"time"

	"github.com/livekit/protocol/auth"

	"github.com/vkayy/ev-cord/config"
	"github.com/vkayy/ev-cord/models"
	"github.com/vkayy/ev-cord/pkg"
	"github.com/vkayy/ev-cord/repository"
)

// VoiceService, ses kanalı operasyonlarının interface'i.
type VoiceService interface {
	// GenerateToken, LiveKit katılım token'ı üretir. Kanal audio veya
	// video tipinde olmalı, profil kanalın sunucusuna üye olmalıdır.
	GenerateToken(ctx context.Context, profileID, name, channelID string) (*models.VoiceTokenResponse, error)
}

// voiceService, VoiceService interface'inin implementasyonu.
type voiceService struct {
	channelRepo repository.ChannelRepository
	memberRepo  repository.MemberRepository
	livekitCfg  config.LiveKitConfig
}

// NewVoiceService, constructor.
func NewVoiceService(
	channelRepo repository.ChannelRepository,
	memberRepo repository.MemberRepository,
	livekitCfg config.LiveKitConfig,
) VoiceService {
	return &voiceService{
		channelRepo: channelRepo,
		memberRepo:  memberRepo,
		livekitCfg:  livekitCfg,
	}
}

func (s *voiceService) GenerateToken(ctx context.Context, profileID, name, channelID string) (*models.VoiceTokenResponse, error) {
	channel, err := s.channelRepo.GetByID(ctx, channelID)
	if err != nil {
		return nil, err
	}

	if channel.Type != models.ChannelTypeAudio && channel.Type != models.ChannelTypeVideo {
		return nil, fmt.Errorf("%w: not a voice channel", pkg.ErrBadRequest)
	}

	if _, err := s.memberRepo.GetByServerAndProfile(ctx, channel.ServerID, profileID); err != nil {
		return nil, err
	}

	canPublish := true
	canSubscribe := true
	canPublishData := true

	// Audio kanalında kamera yayını kapalıdır; LiveKit source bazlı izin
	// ayrımı yapmadığı için kamera kısıtı client tarafında uygulanır,
	// token her iki tipte de publish izni taşır.
	at := auth.NewAccessToken(s.livekitCfg.APIKey, s.livekitCfg.APISecret)

	grant := &auth.VideoGrant{
		RoomJoin:       true,
		Room:           channelID, // LiveKit room adı = kanal ID
		CanPublish:     &canPublish,
		CanSubscribe:   &canSubscribe,
		CanPublishData: &canPublishData,
	}

	at.AddGrant(grant).
		SetIdentity(profileID).
		SetName(name).
		SetValidFor(24 * time.Hour) // LiveKit disconnect'i kendisi yönetir

	token, err := at.ToJWT()
	if err != nil {
		return nil, fmt.Errorf("failed to generate livekit token: %w", err)
	}

	return &models.VoiceTokenResponse{
		Token:     token,
		URL:       s.livekitCfg.URL,
		ChannelID: channelID,
	}, nil
}
