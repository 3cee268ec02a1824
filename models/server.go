// Package models — Server domain modeli.
//
// Server, kanalları ve üyeleri barındıran bir topluluğu temsil eder.
// Her server'ın benzersiz, döndürülebilir (rotatable) bir davet kodu vardır.
// Silme yetkisi yalnızca sahibindedir (profile_id).
package models

import (
	"fmt"
	"strings"
	"time"
	"unicode/utf8"
)

// Server, DB'deki "servers" tablosunun Go karşılığıdır.
type Server struct {
	ID         string    `json:"id"`
	Name       string    `json:"name"`
	ImageURL   *string   `json:"image_url"`
	InviteCode string    `json:"invite_code"`
	ProfileID  string    `json:"profile_id"` // Sahip (owner) profili
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}

// ServerWithMembers, mutation handler'ların döndüğü aggregate:
// server + üyeler (profilleriyle birlikte, rol sırasında). Kanallar dahil
// edilmez — üye yönetimi ekranının ihtiyacı yoktur.
type ServerWithMembers struct {
	Server
	Members []MemberWithProfile `json:"members"`
}

// ServerSidebar, sidebar view model'i: kanallar türlerine göre üç ayrık gruba
// bölünür, üye listesi görüntüleyenin kendi satırını içermez, Role ise
// görüntüleyenin kendi rolüdür (UI aksiyonlarını gate'lemek için — yetki
// kontrolünün kendisi mutation handler'lardadır).
type ServerSidebar struct {
	Server        Server              `json:"server"`
	TextChannels  []Channel           `json:"text_channels"`
	AudioChannels []Channel           `json:"audio_channels"`
	VideoChannels []Channel           `json:"video_channels"`
	Members       []MemberWithProfile `json:"members"`
	Role          MemberRole          `json:"role"`
}

// CreateServerRequest, yeni sunucu oluşturma isteği.
type CreateServerRequest struct {
	Name     string  `json:"name"`
	ImageURL *string `json:"image_url"`
}

// Validate, CreateServerRequest kontrolü.
func (r *CreateServerRequest) Validate() error {
	r.Name = strings.TrimSpace(r.Name)
	nameLen := utf8.RuneCountInString(r.Name)
	if nameLen < 1 || nameLen > 100 {
		return fmt.Errorf("server name must be between 1 and 100 characters")
	}
	return nil
}

// UpdateServerRequest, sunucu güncelleme isteği (partial update).
type UpdateServerRequest struct {
	Name     *string `json:"name"`
	ImageURL *string `json:"image_url"`
}

// Validate, UpdateServerRequest kontrolü.
func (r *UpdateServerRequest) Validate() error {
	if r.Name != nil {
		*r.Name = strings.TrimSpace(*r.Name)
		nameLen := utf8.RuneCountInString(*r.Name)
		if nameLen < 1 || nameLen > 100 {
			return fmt.Errorf("server name must be between 1 and 100 characters")
		}
	}
	return nil
}

// JoinServerRequest, davet koduyla sunucuya katılma isteği.
type JoinServerRequest struct {
	InviteCode string `json:"invite_code"`
}

// Validate, JoinServerRequest kontrolü.
func (r *JoinServerRequest) Validate() error {
	r.InviteCode = strings.TrimSpace(r.InviteCode)
	if r.InviteCode == "" {
		return fmt.Errorf("invite_code is required")
	}
	return nil
}

// InviteEmailRequest, davet linkini email ile gönderme isteği.
type InviteEmailRequest struct {
	Email string `json:"email"`
}

// Validate, InviteEmailRequest kontrolü.
func (r *InviteEmailRequest) Validate() error {
	r.Email = strings.TrimSpace(strings.ToLower(r.Email))
	if !isPlausibleEmail(r.Email) {
		return fmt.Errorf("a valid email address is required")
	}
	return nil
}
