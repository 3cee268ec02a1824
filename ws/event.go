// Package ws, WebSocket bağlantı yönetimi ve gerçek zamanlı event dağıtımını sağlar.
//
// Mimari:
// - Hub: Tüm bağlantıları yöneten merkezi yapı (Observer pattern)
// - Client: Her WebSocket bağlantısını temsil eder
// - Event: Client-server arası iletilen mesaj formatı
//
// Event akışı:
// 1. Kullanıcı mesaj gönderir → HTTP POST → Service → DB kayıt
// 2. Service, Hub'ın BroadcastToAll metodunu çağırır
// 3. Hub, event'i tüm bağlı client'lara iletir
// 4. Her client'ın WritePump'ı event'i WebSocket'e yazar
package ws

// Event, WebSocket üzerinden iletilen bir mesajı temsil eder.
//
// Op (operation): Event türü — "message_create", "heartbeat" vb.
// Data: Event'e özgü payload — mesaj objesi, üye bilgisi vb.
// Seq (sequence number): Her outbound event'e verilen artan sayı.
//
//	Frontend eksik event tespit etmek için seq'i takip eder.
type Event struct {
	Op   string `json:"op"`
	Data any    `json:"d,omitempty"`
	Seq  int64  `json:"seq,omitempty"`
}

// Client → Server operasyonları
const (
	OpHeartbeat = "heartbeat" // Client periyodik gönderir — "hâlâ bağlıyım" sinyali
	OpTyping    = "typing"    // Kullanıcı bir kanalda yazıyor
)

// Server → Client operasyonları
const (
	OpReady        = "ready"         // Bağlantı kurulduğunda ilk gönderilen
	OpHeartbeatAck = "heartbeat_ack" // Heartbeat'e yanıt

	OpMessageCreate = "message_create" // Yeni kanal mesajı
	OpMessageUpdate = "message_update" // Mesaj düzenlendi
	OpMessageDelete = "message_delete" // Mesaj silindi (soft delete)

	OpChannelCreate = "channel_create" // Yeni kanal oluşturuldu
	OpChannelUpdate = "channel_update" // Kanal yeniden adlandırıldı
	OpChannelDelete = "channel_delete" // Kanal silindi

	OpMemberJoin   = "member_join"   // Sunucuya yeni üye katıldı
	OpMemberLeave  = "member_leave"  // Üye ayrıldı veya çıkarıldı
	OpMemberUpdate = "member_update" // Üye rolü değişti

	OpServerUpdate     = "server_update"      // Sunucu adı/görseli güncellendi
	OpServerDelete     = "server_delete"      // Sunucu silindi
	OpInviteCodeUpdate = "invite_code_update" // Davet kodu yenilendi

	OpConversationCreate = "conversation_create" // Yeni birebir konuşma açıldı
	OpDMCreate           = "dm_create"           // Yeni direkt mesaj
	OpDMUpdate           = "dm_update"           // Direkt mesaj düzenlendi
	OpDMDelete           = "dm_delete"           // Direkt mesaj silindi

	OpTypingStart = "typing_start" // Bir kullanıcı yazıyor (broadcast)
)

// ReadyData, bağlantı kurulduğunda client'a gönderilen ilk event'in payload'ı.
type ReadyData struct {
	ProfileID        string   `json:"profile_id"`
	OnlineProfileIDs []string `json:"online_profile_ids"`
}

// TypingData, typing event'inin payload'ı (Client → Server).
type TypingData struct {
	ChannelID string `json:"channel_id"`
}

// TypingStartData, typing_start event'inin payload'ı (broadcast edilen).
type TypingStartData struct {
	ProfileID string `json:"profile_id"`
	Name      string `json:"name"`
	ChannelID string `json:"channel_id"`
}

// MemberLeaveData, member_leave event'inin payload'ı.
// Üye satırı silindiği için sadece ID'ler taşınır.
type MemberLeaveData struct {
	MemberID string `json:"member_id"`
	ServerID string `json:"server_id"`
}

// ServerDeleteData, server_delete event'inin payload'ı.
type ServerDeleteData struct {
	ServerID string `json:"server_id"`
}

// ChannelDeleteData, channel_delete event'inin payload'ı.
type ChannelDeleteData struct {
	ChannelID string `json:"channel_id"`
	ServerID  string `json:"server_id"`
}
