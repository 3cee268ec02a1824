// Package models — Member domain modeli.
//
// Member, Profile ↔ Server arasındaki üyelik köprüsüdür ve rol taşır.
// Uniqueness invariant'ı: bir (profile, server) çifti için en fazla bir üye
// satırı vardır (DB'de UNIQUE constraint).
//
// Bir üye, admin yönetim yolu üzerinden KENDİ satırını silemez veya rolünü
// değiştiremez — mutation predicate'i acting profile'ın satırını dışlar
// (bkz. repository.MemberRepository.UpdateRole / Delete).
package models

import (
	"fmt"
	"time"
)

// MemberRole, üyenin sunucudaki rolünü temsil eder.
type MemberRole string

const (
	MemberRoleGuest     MemberRole = "guest"
	MemberRoleModerator MemberRole = "moderator"
	MemberRoleAdmin     MemberRole = "admin"
)

// IsValid, değerin tanımlı rollerden biri olup olmadığını döner.
// Rol değeri persistence katmanına ulaşmadan burada doğrulanır —
// CHECK constraint'e güvenmek yerine 400 ile erken reddedilir.
func (r MemberRole) IsValid() bool {
	switch r {
	case MemberRoleGuest, MemberRoleModerator, MemberRoleAdmin:
		return true
	}
	return false
}

// Rank, rolün görüntüleme sırasını döner — admin en üstte.
// Üye listeleri bu sıraya göre gruplanır (admin, moderator, guest).
func (r MemberRole) Rank() int {
	switch r {
	case MemberRoleAdmin:
		return 0
	case MemberRoleModerator:
		return 1
	default:
		return 2
	}
}

// AtLeast, rolün verilen rol kadar yetkili olup olmadığını döner.
// Kanal yönetimi gibi "moderator ve üzeri" kontrollerinde kullanılır.
func (r MemberRole) AtLeast(other MemberRole) bool {
	return r.Rank() <= other.Rank()
}

// Member, bir profilin bir sunucuya üyeliğini temsil eder.
type Member struct {
	ID        string     `json:"id"`
	ServerID  string     `json:"server_id"`
	ProfileID string     `json:"profile_id"`
	Role      MemberRole `json:"role"`
	CreatedAt time.Time  `json:"created_at"`
	UpdatedAt time.Time  `json:"updated_at"`
}

// MemberWithProfile, üye satırı + profil bilgisi (JOIN sonucu).
// Üye listelerinde ve mutation handler'ların aggregate response'unda kullanılır.
type MemberWithProfile struct {
	Member
	Profile Profile `json:"profile"`
}

// UpdateMemberRoleRequest, PATCH /api/members/{memberId} body'si.
type UpdateMemberRoleRequest struct {
	Role MemberRole `json:"role"`
}

// Validate, UpdateMemberRoleRequest kontrolü.
func (r *UpdateMemberRoleRequest) Validate() error {
	if !r.Role.IsValid() {
		return fmt.Errorf("role must be 'guest', 'moderator' or 'admin'")
	}
	return nil
}
