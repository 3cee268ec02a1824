// Package main — Service katmanı başlatma.
//
// initServices, tüm service implementasyonlarını oluşturur.
// Her service, ihtiyaç duyduğu repository interface'lerini ve diğer
// dependency'leri constructor injection ile alır.
package main

import (
	"database/sql"
	"log"
	"time"

	"github.com/vkayy/ev-cord/config"
	"github.com/vkayy/ev-cord/pkg/email"
	"github.com/vkayy/ev-cord/pkg/ratelimit"
	"github.com/vkayy/ev-cord/services"
	"github.com/vkayy/ev-cord/ws"
)

// Services, tüm service instance'larını tutan container struct.
type Services struct {
	Auth         services.AuthService
	Server       services.ServerService
	Member       services.MemberService
	Channel      services.ChannelService
	Message      services.MessageService
	Conversation services.ConversationService
	Voice        services.VoiceService
}

// RateLimiters, tüm rate limiter instance'larını tutan container.
type RateLimiters struct {
	Login *ratelimit.LoginRateLimiter
}

// initServices, tüm service'leri ve rate limiter'ları oluşturur.
//
// db parametresi ham *sql.DB'dir — ServerService sunucu oluştururken
// transaction açar (server + #general kanal + admin üye tek atomik adım),
// bu yüzden repository yerine bağlantının kendisine ihtiyaç duyar.
func initServices(db *sql.DB, repos *Repositories, hub ws.EventPublisher, cfg *config.Config) (*Services, *RateLimiters) {
	// Email sender — davet mailleri Resend üzerinden gider.
	// API key yoksa sender nil kalır, ServerService maili atlar.
	var emailSender email.EmailSender
	if cfg.Email.ResendAPIKey != "" {
		emailSender = email.NewResendSender(cfg.Email.ResendAPIKey, cfg.Email.FromAddress, cfg.Server.PublicURL)
		log.Printf("[main] email service enabled (from=%s)", cfg.Email.FromAddress)
	} else {
		log.Println("[main] email service disabled (RESEND_API_KEY not set)")
	}

	authService := services.NewAuthService(
		repos.Profile,
		repos.Session,
		cfg.JWT.Secret,
		cfg.JWT.AccessTokenExpiry,
		cfg.JWT.RefreshTokenExpiry,
	)

	serverService := services.NewServerService(
		db, repos.Server, repos.Channel, repos.Member, hub, emailSender,
	)
	memberService := services.NewMemberService(repos.Server, repos.Member, hub)
	channelService := services.NewChannelService(repos.Channel, repos.Member, hub)
	messageService := services.NewMessageService(repos.Message, repos.Channel, repos.Member, hub)
	conversationService := services.NewConversationService(repos.Conversation, repos.Member, hub)
	voiceService := services.NewVoiceService(repos.Channel, repos.Member, cfg.LiveKit)

	svcs := &Services{
		Auth:         authService,
		Server:       serverService,
		Member:       memberService,
		Channel:      channelService,
		Message:      messageService,
		Conversation: conversationService,
		Voice:        voiceService,
	}

	limiters := &RateLimiters{
		Login: ratelimit.NewLoginRateLimiter(5, 2*time.Minute),
	}

	return svcs, limiters
}
