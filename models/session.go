package models

import "time"

// Session, bir refresh token oturumunu temsil eder.
//
// Access token kısa ömürlüdür (15dk) ve DB'de tutulmaz; refresh token uzun
// ömürlüdür (7 gün) ve DB'de tutulur. Böylece çalınan token revoke edilebilir
// ve logout sadece ilgili oturumu siler.
type Session struct {
	ID           string    `json:"id"`
	ProfileID    string    `json:"profile_id"`
	RefreshToken string    `json:"-"` // API'ye gönderilmez
	ExpiresAt    time.Time `json:"expires_at"`
	CreatedAt    time.Time `json:"created_at"`
}
