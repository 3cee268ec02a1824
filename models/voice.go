package models

// VoiceTokenRequest, ses/görüntü kanalına katılım token'ı isteği.
type VoiceTokenRequest struct {
	ChannelID string `json:"channel_id"`
}

// VoiceTokenResponse, LiveKit'e bağlanmak için gereken bilgiler.
// Client, URL'deki LiveKit sunucusuna token ile bağlanır; oda adı
// kanal ID'sidir.
type VoiceTokenResponse struct {
	Token     string `json:"token"`
	URL       string `json:"url"`
	ChannelID string `json:"channel_id"`
}
