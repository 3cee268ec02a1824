package models

import (
	"fmt"
	"strings"
	"time"
	"unicode"
	"unicode/utf8"
)

// ChannelType, kanalın türünü temsil eder.
// Go'da enum yerine typed constant kullanılır.
type ChannelType string

const (
	ChannelTypeText  ChannelType = "text"
	ChannelTypeAudio ChannelType = "audio"
	ChannelTypeVideo ChannelType = "video"
)

// DefaultChannelName, her sunucuyla birlikte oluşturulan ilk text kanalın adı.
// Bu kanal yeniden adlandırılamaz ve silinemez.
const DefaultChannelName = "general"

// IsValid, değerin tanımlı kanal türlerinden biri olup olmadığını döner.
func (t ChannelType) IsValid() bool {
	switch t {
	case ChannelTypeText, ChannelTypeAudio, ChannelTypeVideo:
		return true
	}
	return false
}

// Channel, bir sunucu kanalını temsil eder.
// Görüntüleme sırası created_at ascending'dir.
type Channel struct {
	ID        string      `json:"id"`
	ServerID  string      `json:"server_id"`
	ProfileID string      `json:"profile_id"` // Kanalı oluşturan profil
	Name      string      `json:"name"`
	Type      ChannelType `json:"type"`
	CreatedAt time.Time   `json:"created_at"`
	UpdatedAt time.Time   `json:"updated_at"`
}

// CreateChannelRequest, yeni kanal oluşturma isteği.
type CreateChannelRequest struct {
	Name string `json:"name"`
	Type string `json:"type"` // "text", "audio" veya "video"
}

// Validate, CreateChannelRequest kontrolü.
// "general" rezerve bir isimdir — default kanalla karışmaması için reddedilir.
func (r *CreateChannelRequest) Validate() error {
	r.Name = strings.TrimSpace(r.Name)
	if err := validateChannelName(r.Name); err != nil {
		return err
	}
	if r.Name == DefaultChannelName {
		return fmt.Errorf("channel name cannot be '%s'", DefaultChannelName)
	}
	if !ChannelType(r.Type).IsValid() {
		return fmt.Errorf("channel type must be 'text', 'audio' or 'video'")
	}
	return nil
}

// UpdateChannelRequest, kanal yeniden adlandırma isteği.
type UpdateChannelRequest struct {
	Name string `json:"name"`
}

// Validate, UpdateChannelRequest kontrolü.
func (r *UpdateChannelRequest) Validate() error {
	r.Name = strings.TrimSpace(r.Name)
	if err := validateChannelName(r.Name); err != nil {
		return err
	}
	if r.Name == DefaultChannelName {
		return fmt.Errorf("channel name cannot be '%s'", DefaultChannelName)
	}
	return nil
}

func validateChannelName(name string) error {
	nameLen := utf8.RuneCountInString(name)
	if nameLen < 1 || nameLen > 100 {
		return fmt.Errorf("channel name must be between 1 and 100 characters")
	}
	for _, ch := range name {
		if !isValidChannelNameChar(ch) {
			return fmt.Errorf("channel name contains invalid characters")
		}
	}
	return nil
}

// isValidChannelNameChar, kanal adında izin verilen karakterleri kontrol eder.
// Unicode harf/rakam, boşluk, tire ve alt çizgi kabul edilir.
func isValidChannelNameChar(ch rune) bool {
	return unicode.IsLetter(ch) ||
		unicode.IsDigit(ch) ||
		ch == '-' || ch == '_' || ch == ' '
}
