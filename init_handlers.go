// Package main — Handler katmanı başlatma.
//
// initHandlers, tüm HTTP handler'larını oluşturur.
// Her handler, ihtiyaç duyduğu service interface'lerini constructor'dan alır.
// Handler'lar "thin"dir — sadece HTTP parse + service call + response write.
package main

import (
	"github.com/vkayy/ev-cord/handlers"
	"github.com/vkayy/ev-cord/ws"
)

// Handlers, tüm handler instance'larını tutan container struct.
type Handlers struct {
	Auth         *handlers.AuthHandler
	Server       *handlers.ServerHandler
	Member       *handlers.MemberHandler
	Channel      *handlers.ChannelHandler
	Message      *handlers.MessageHandler
	Conversation *handlers.ConversationHandler
	Voice        *handlers.VoiceHandler
	WS           *ws.Handler
}

// initHandlers, tüm handler'ları service ve rate limiter dependency'leri ile oluşturur.
func initHandlers(svcs *Services, limiters *RateLimiters, hub *ws.Hub) *Handlers {
	return &Handlers{
		Auth:         handlers.NewAuthHandler(svcs.Auth, limiters.Login),
		Server:       handlers.NewServerHandler(svcs.Server),
		Member:       handlers.NewMemberHandler(svcs.Member),
		Channel:      handlers.NewChannelHandler(svcs.Channel),
		Message:      handlers.NewMessageHandler(svcs.Message),
		Conversation: handlers.NewConversationHandler(svcs.Conversation),
		Voice:        handlers.NewVoiceHandler(svcs.Voice),
		WS:           ws.NewHandler(hub, svcs.Auth),
	}
}
