// Package models — Conversation ve DirectMessage domain modelleri.
//
// Conversation, iki üye arasındaki birebir mesajlaşma kanalıdır.
// (member_one, member_two) çifti UNIQUE'tir; get-or-create pattern'i ile
// her çift için tek conversation oluşur. Çift, karşılaştırma sırasından
// bağımsız olsun diye service katmanında ID sırasına göre normalize edilir.
package models

import "time"

// Conversation, iki üye arasındaki DM kanalını temsil eder.
type Conversation struct {
	ID          string    `json:"id"`
	MemberOneID string    `json:"member_one_id"`
	MemberTwoID string    `json:"member_two_id"`
	CreatedAt   time.Time `json:"created_at"`

	// JOIN ile doldurulan taraflar — API response'unda her iki üye de
	// profilleriyle birlikte döner.
	MemberOne *MemberWithProfile `json:"member_one,omitempty"`
	MemberTwo *MemberWithProfile `json:"member_two,omitempty"`
}

// DirectMessage, bir conversation içindeki mesajı temsil eder.
// Kanal mesajıyla aynı yaşam döngüsüne sahiptir (soft delete dahil).
type DirectMessage struct {
	ID             string             `json:"id"`
	ConversationID string             `json:"conversation_id"`
	MemberID       string             `json:"member_id"`
	Content        string             `json:"content"`
	FileURL        *string            `json:"file_url"`
	Deleted        bool               `json:"deleted"`
	CreatedAt      time.Time          `json:"created_at"`
	UpdatedAt      time.Time          `json:"updated_at"`
	Author         *MemberWithProfile `json:"author,omitempty"`
}

// DirectMessagePage, DM cursor pagination sonucu.
type DirectMessagePage struct {
	Messages   []DirectMessage `json:"messages"`
	NextCursor string          `json:"next_cursor,omitempty"`
}

// CreateConversationRequest, get-or-create conversation isteği.
// MemberID: karşı tarafın üye ID'si (aynı sunucuda).
type CreateConversationRequest struct {
	MemberID string `json:"member_id"`
}
