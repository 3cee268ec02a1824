// Package main — HTTP route registration.
//
// initRoutes, tüm API endpoint'lerini mux'a bağlar.
// auth helper'ı JWT token doğrulaması yapan middleware chain'idir.
package main

import (
	"fmt"
	"net/http"

	"github.com/vkayy/ev-cord/middleware"
	"github.com/vkayy/ev-cord/repository"
	"github.com/vkayy/ev-cord/services"
)

// initRoutes, middleware chain'i kurar ve tüm endpoint'leri mux'a bağlar.
//
// Route sıralama kuralı: Literal path'ler parametrik path'lerden ÖNCE tanımlanmalı.
// Örnek: "/api/servers/join" → "/api/servers/{serverId}" öncesinde,
// yoksa Go router "join" kelimesini bir serverId olarak yorumlar.
func initRoutes(
	mux *http.ServeMux,
	h *Handlers,
	authService services.AuthService,
	profileRepo repository.ProfileRepository,
) {
	// ─── Middleware ───
	authMw := middleware.NewAuthMiddleware(authService, profileRepo)

	auth := func(handler http.HandlerFunc) http.Handler {
		return authMw.Require(http.HandlerFunc(handler))
	}

	// Health check
	mux.HandleFunc("GET /api/health", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		fmt.Fprintf(w, `{"status":"ok","service":"ev-cord"}`)
	})

	// Auth — public endpoint'ler (token gerekmez)
	mux.HandleFunc("POST /api/auth/register", h.Auth.Register)
	mux.HandleFunc("POST /api/auth/login", h.Auth.Login)
	mux.HandleFunc("POST /api/auth/refresh", h.Auth.Refresh)
	mux.Handle("POST /api/auth/logout", auth(h.Auth.Logout))

	// Profile
	mux.Handle("GET /api/auth/me", auth(h.Auth.Me))
	mux.Handle("PATCH /api/auth/me", auth(h.Auth.UpdateMe))

	// Servers — literal path'ler önce
	mux.Handle("GET /api/servers", auth(h.Server.List))
	mux.Handle("POST /api/servers", auth(h.Server.Create))
	mux.Handle("POST /api/servers/join", auth(h.Server.Join))

	mux.Handle("GET /api/servers/{serverId}/sidebar", auth(h.Server.Sidebar))
	mux.Handle("PATCH /api/servers/{serverId}", auth(h.Server.Update))
	mux.Handle("DELETE /api/servers/{serverId}", auth(h.Server.Delete))
	mux.Handle("PATCH /api/servers/{serverId}/leave", auth(h.Server.Leave))
	mux.Handle("PATCH /api/servers/{serverId}/invite-code", auth(h.Server.RotateInviteCode))
	mux.Handle("POST /api/servers/{serverId}/invite", auth(h.Server.SendInvite))
	mux.Handle("POST /api/servers/{serverId}/channels", auth(h.Channel.Create))

	// Members — serverId query parameter ile scope edilir
	mux.Handle("PATCH /api/members/{memberId}", auth(h.Member.UpdateRole))
	mux.Handle("DELETE /api/members/{memberId}", auth(h.Member.Remove))

	// Channels
	mux.Handle("GET /api/channels/{channelId}", auth(h.Channel.Get))
	mux.Handle("PATCH /api/channels/{channelId}", auth(h.Channel.Update))
	mux.Handle("DELETE /api/channels/{channelId}", auth(h.Channel.Delete))

	// Messages — cursor pagination query parameter ile
	mux.Handle("POST /api/channels/{channelId}/messages", auth(h.Message.Send))
	mux.Handle("GET /api/channels/{channelId}/messages", auth(h.Message.List))
	mux.Handle("PATCH /api/messages/{messageId}", auth(h.Message.Update))
	mux.Handle("DELETE /api/messages/{messageId}", auth(h.Message.Delete))

	// Conversations — birebir mesajlaşma
	mux.Handle("POST /api/conversations", auth(h.Conversation.GetOrCreate))
	mux.Handle("GET /api/conversations/{conversationId}", auth(h.Conversation.Get))
	mux.Handle("POST /api/conversations/{conversationId}/messages", auth(h.Conversation.SendMessage))
	mux.Handle("GET /api/conversations/{conversationId}/messages", auth(h.Conversation.ListMessages))
	mux.Handle("PATCH /api/direct-messages/{messageId}", auth(h.Conversation.UpdateMessage))
	mux.Handle("DELETE /api/direct-messages/{messageId}", auth(h.Conversation.DeleteMessage))

	// Voice — LiveKit token alma
	mux.Handle("POST /api/voice/token", auth(h.Voice.Token))

	// WebSocket — token query parameter ile authenticate edilir
	//
	// Neden auth middleware kullanmıyoruz?
	// WebSocket upgrade sırasında tarayıcılar custom HTTP header gönderemez.
	// Bu yüzden JWT token URL query parameter olarak gönderilir:
	//   ws://server/ws?token=JWT_TOKEN
	// WS handler kendi içinde token doğrulaması yapar.
	mux.HandleFunc("GET /ws", h.WS.HandleConnection)
}
