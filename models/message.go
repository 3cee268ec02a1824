package models

import (
	"fmt"
	"strings"
	"time"
	"unicode/utf8"
)

// DeletedMessageContent, soft-delete edilen mesajın yerine yazılan içerik.
// Mesaj satırı silinmez — history'deki konumu korunur, içerik ve ek temizlenir.
const DeletedMessageContent = "This message has been deleted."

// Message, bir kanal mesajını temsil eder.
//
// Author alanı JOIN ile doldurulur — DB'de ayrı tablolardadır ama API
// response'unda birlikte döner; frontend tek istekle mesaj + yazar alır.
type Message struct {
	ID        string             `json:"id"`
	ChannelID string             `json:"channel_id"`
	MemberID  string             `json:"member_id"`
	Content   string             `json:"content"`
	FileURL   *string            `json:"file_url"`
	Deleted   bool               `json:"deleted"`
	CreatedAt time.Time          `json:"created_at"`
	UpdatedAt time.Time          `json:"updated_at"`
	Author    *MemberWithProfile `json:"author,omitempty"`
}

// MessagePage, cursor-based pagination sonucu.
//
// Offset yerine "bu ID'den önceki N mesaj" semantiği kullanılır —
// yeni mesaj eklendiğinde sayfa kayması olmaz.
// NextCursor boşsa daha eski mesaj yoktur.
type MessagePage struct {
	Messages   []Message `json:"messages"`
	NextCursor string    `json:"next_cursor,omitempty"`
}

// CreateMessageRequest, yeni mesaj gönderme isteği.
// FileURL varsa content boş olabilir — sadece dosya içeren mesajlar geçerlidir.
type CreateMessageRequest struct {
	Content string  `json:"content"`
	FileURL *string `json:"file_url"`
}

// Validate, CreateMessageRequest kontrolü.
func (r *CreateMessageRequest) Validate() error {
	r.Content = strings.TrimSpace(r.Content)
	if r.Content == "" && r.FileURL == nil {
		return fmt.Errorf("message content or file is required")
	}
	if utf8.RuneCountInString(r.Content) > 2000 {
		return fmt.Errorf("message content must be at most 2000 characters")
	}
	return nil
}

// UpdateMessageRequest, mesaj düzenleme isteği.
type UpdateMessageRequest struct {
	Content string `json:"content"`
}

// Validate, UpdateMessageRequest kontrolü.
func (r *UpdateMessageRequest) Validate() error {
	r.Content = strings.TrimSpace(r.Content)
	contentLen := utf8.RuneCountInString(r.Content)
	if contentLen < 1 {
		return fmt.Errorf("message content is required")
	}
	if contentLen > 2000 {
		return fmt.Errorf("message content must be at most 2000 characters")
	}
	return nil
}
