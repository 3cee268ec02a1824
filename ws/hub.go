package ws

import (
	"encoding/json"
	"log"
	"sync"
	"sync/atomic"
)

// EventPublisher, service katmanının WebSocket event'leri broadcast etmek için
// kullandığı interface.
//
// Service'ler Hub'ın concrete struct'ına değil bu interface'e bağımlıdır.
// Testlerde fake bir publisher, production'da Hub kullanılır.
type EventPublisher interface {
	BroadcastToAll(event Event)
	BroadcastToAllExcept(excludeProfileID string, event Event)
	BroadcastToProfile(profileID string, event Event)
	GetOnlineProfileIDs() []string
}

// Hub, tüm WebSocket bağlantılarını yöneten merkezi yapıdır (Observer pattern).
//
// Hub.Run() goroutine'i register/unregister channel'larından `select` ile okur:
// - register'dan yeni client gelirse → clients map'e ekle
// - unregister'dan client gelirse → map'ten çıkar ve send channel'ını kapat
type Hub struct {
	// clients: profileID → Client set. Bir kullanıcının birden fazla tab'ı
	// olabilir; Go'da set yoktur, map[*Client]bool kullanılır.
	clients map[string]map[*Client]bool

	// mu, clients map'ini koruyan read-write mutex. Broadcast'ler okuma
	// ağırlıklıdır, RWMutex birden fazla eşzamanlı okuyucuya izin verir.
	mu sync.RWMutex

	register   chan *Client
	unregister chan *Client

	// seq: Her outbound event'e verilen artan sayaç. atomic.Int64,
	// birden fazla goroutine'den yarışsız artırılabilir.
	seq atomic.Int64

	// names: profileID → görünen isim cache'i (typing broadcast için).
	names  map[string]string
	nameMu sync.RWMutex
}

// NewHub, yeni bir Hub oluşturur.
func NewHub() *Hub {
	return &Hub{
		clients:    make(map[string]map[*Client]bool),
		register:   make(chan *Client),
		unregister: make(chan *Client),
		names:      make(map[string]string),
	}
}

// Run, Hub'ın ana event loop'udur. main.go'da `go hub.Run()` ile başlatılır.
func (h *Hub) Run() {
	for {
		select {
		case client := <-h.register:
			h.addClient(client)

		case client := <-h.unregister:
			h.removeClient(client)
		}
	}
}

func (h *Hub) addClient(client *Client) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if _, ok := h.clients[client.profileID]; !ok {
		h.clients[client.profileID] = make(map[*Client]bool)
	}
	h.clients[client.profileID][client] = true

	log.Printf("[ws] client connected: profile=%s (connections: %d)",
		client.profileID, len(h.clients[client.profileID]))
}

func (h *Hub) removeClient(client *Client) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if clients, ok := h.clients[client.profileID]; ok {
		if _, exists := clients[client]; exists {
			delete(clients, client)
			close(client.send)

			if len(clients) == 0 {
				delete(h.clients, client.profileID)
				log.Printf("[ws] profile fully disconnected: %s", client.profileID)
			} else {
				log.Printf("[ws] client disconnected: profile=%s (remaining: %d)",
					client.profileID, len(clients))
			}
		}
	}
}

// BroadcastToAll, tüm bağlı client'lara event gönderir.
func (h *Hub) BroadcastToAll(event Event) {
	event.Seq = h.seq.Add(1)

	data, err := json.Marshal(event)
	if err != nil {
		log.Printf("[ws] failed to marshal broadcast event: %v", err)
		return
	}

	h.mu.RLock()
	defer h.mu.RUnlock()

	for _, clients := range h.clients {
		for client := range clients {
			select {
			case client.send <- data:
			default:
				// Buffer dolu — bu client yavaş, kapat
				go func(c *Client) { h.unregister <- c }(client)
			}
		}
	}
}

// BroadcastToAllExcept, belirtilen profil hariç tüm client'lara event gönderir.
// Typing indicator'da gönderene kendi typing event'i gitmez.
func (h *Hub) BroadcastToAllExcept(excludeProfileID string, event Event) {
	event.Seq = h.seq.Add(1)

	data, err := json.Marshal(event)
	if err != nil {
		log.Printf("[ws] failed to marshal broadcast event: %v", err)
		return
	}

	h.mu.RLock()
	defer h.mu.RUnlock()

	for profileID, clients := range h.clients {
		if profileID == excludeProfileID {
			continue
		}
		for client := range clients {
			select {
			case client.send <- data:
			default:
				go func(c *Client) { h.unregister <- c }(client)
			}
		}
	}
}

// BroadcastToProfile, belirli bir profilin tüm bağlantılarına event gönderir.
// Direkt mesajlar yalnızca konuşmanın iki tarafına iletilir.
func (h *Hub) BroadcastToProfile(profileID string, event Event) {
	event.Seq = h.seq.Add(1)

	data, err := json.Marshal(event)
	if err != nil {
		log.Printf("[ws] failed to marshal profile event: %v", err)
		return
	}

	h.mu.RLock()
	defer h.mu.RUnlock()

	if clients, ok := h.clients[profileID]; ok {
		for client := range clients {
			select {
			case client.send <- data:
			default:
				go func(c *Client) { h.unregister <- c }(client)
			}
		}
	}
}

// GetOnlineProfileIDs, bağlı olan tüm profil ID'lerini döner.
func (h *Hub) GetOnlineProfileIDs() []string {
	h.mu.RLock()
	defer h.mu.RUnlock()

	ids := make([]string, 0, len(h.clients))
	for profileID := range h.clients {
		ids = append(ids, profileID)
	}
	return ids
}

// SetProfileName, kullanıcı bağlandığında isim cache'ini günceller.
func (h *Hub) SetProfileName(profileID, name string) {
	h.nameMu.Lock()
	defer h.nameMu.Unlock()
	h.names[profileID] = name
}

func (h *Hub) getProfileName(profileID string) string {
	h.nameMu.RLock()
	defer h.nameMu.RUnlock()
	return h.names[profileID]
}

// Shutdown, tüm client bağlantılarını kapatır (graceful shutdown).
func (h *Hub) Shutdown() {
	h.mu.Lock()
	defer h.mu.Unlock()

	for _, clients := range h.clients {
		for client := range clients {
			close(client.send)
		}
	}
	h.clients = make(map[string]map[*Client]bool)
	log.Println("[ws] hub shut down, all connections closed")
}
