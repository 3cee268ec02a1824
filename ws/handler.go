package ws

import (
	"log"
	"net/http"

	"github.com/gorilla/websocket"

	"github.com/vkayy/ev-cord/models"
)

// TokenValidator, WebSocket handler'ın JWT doğrulaması için kullandığı interface.
//
// services.AuthService doğrudan kullanılsaydı ws → services → ws döngüsü
// oluşurdu (service'ler EventPublisher'a bağımlı). Küçük, odaklı bir
// interface tanımlanır; authService bunu implicit olarak karşılar.
type TokenValidator interface {
	ValidateAccessToken(tokenString string) (*models.TokenClaims, error)
}

// upgrader, HTTP bağlantısını WebSocket bağlantısına yükseltir.
var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	// CheckOrigin: Production'da domain kontrolü yapılmalı.
	CheckOrigin: func(r *http.Request) bool {
		return true
	},
}

// Handler, WebSocket bağlantı isteklerini işleyen HTTP handler'ı.
type Handler struct {
	hub            *Hub
	tokenValidator TokenValidator
}

// NewHandler, yeni bir WebSocket handler oluşturur.
func NewHandler(hub *Hub, tokenValidator TokenValidator) *Handler {
	return &Handler{
		hub:            hub,
		tokenValidator: tokenValidator,
	}
}

// HandleConnection, HTTP bağlantısını WebSocket'e yükseltir ve client'ı
// Hub'a kaydeder.
//
// Tarayıcılar WebSocket açılışında özel header gönderemediği için token
// query parameter olarak taşınır:
//
//	ws://server/ws?token=JWT_TOKEN
func (h *Handler) HandleConnection(w http.ResponseWriter, r *http.Request) {
	token := r.URL.Query().Get("token")
	if token == "" {
		http.Error(w, "missing token", http.StatusUnauthorized)
		return
	}

	claims, err := h.tokenValidator.ValidateAccessToken(token)
	if err != nil {
		http.Error(w, "invalid token", http.StatusUnauthorized)
		return
	}

	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Printf("[ws] upgrade failed for profile %s: %v", claims.ProfileID, err)
		return
	}

	client := &Client{
		hub:       h.hub,
		conn:      conn,
		profileID: claims.ProfileID,
		send:      make(chan []byte, sendBufferSize),
	}

	// İsim cache'ini güncelle (typing broadcast için)
	h.hub.SetProfileName(claims.ProfileID, claims.Name)

	h.hub.register <- client

	// İlk event: ready. Kayıttan hemen sonra gönderilir ki client kendi
	// bağlantısını online listesinde görsün.
	client.sendEvent(Event{
		Op: OpReady,
		Data: ReadyData{
			ProfileID:        claims.ProfileID,
			OnlineProfileIDs: h.hub.GetOnlineProfileIDs(),
		},
	})

	// WritePump ayrı goroutine'de; ReadPump bu goroutine'de bloklar.
	// ReadPump dönerse bağlantı kapanmış demektir.
	go client.WritePump()
	client.ReadPump()
}
