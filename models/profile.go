// Package models, uygulamanın domain modellerini tanımlar.
//
// Model, veritabanındaki bir tablonun Go karşılığıdır; aynı zamanda API'den
// gelen/giden verilerin şeklini belirler. json tag'leri serialize biçimini
// kontrol eder, `json:"-"` ise alanı response'tan tamamen dışlar.
package models

import (
	"fmt"
	"strings"
	"time"
	"unicode/utf8"
)

// Profile, bir kullanıcı hesabını temsil eder.
// İlk login'de oluşturulur, sonrasında ağırlıklı olarak okunur.
type Profile struct {
	ID           string    `json:"id"`
	Name         string    `json:"name"`
	Email        string    `json:"email"`
	AvatarURL    *string   `json:"avatar_url"` // *string = nullable
	PasswordHash string    `json:"-"`          // API response'a ASLA dahil edilmez
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// RegisterRequest, kayıt olurken frontend'den gelen veri.
// PasswordHash yerine Password alınır — hash'leme service katmanında yapılır.
type RegisterRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Validate, RegisterRequest kontrolü.
//   - Name: 1-64 karakter
//   - Email: kabaca geçerli bir adres (tam RFC kontrolü yapılmaz — doğrulama
//     mail'i zaten gerçek testi yapar)
//   - Password: minimum 8 karakter
func (r *RegisterRequest) Validate() error {
	r.Name = strings.TrimSpace(r.Name)
	nameLen := utf8.RuneCountInString(r.Name)
	if nameLen < 1 || nameLen > 64 {
		return fmt.Errorf("name must be between 1 and 64 characters")
	}

	r.Email = strings.TrimSpace(strings.ToLower(r.Email))
	if !isPlausibleEmail(r.Email) {
		return fmt.Errorf("a valid email address is required")
	}

	if utf8.RuneCountInString(r.Password) < 8 {
		return fmt.Errorf("password must be at least 8 characters")
	}

	return nil
}

// LoginRequest, giriş yaparken frontend'den gelen veri.
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Validate, LoginRequest kontrolü.
func (r *LoginRequest) Validate() error {
	r.Email = strings.TrimSpace(strings.ToLower(r.Email))
	if r.Email == "" {
		return fmt.Errorf("email is required")
	}
	if r.Password == "" {
		return fmt.Errorf("password is required")
	}
	return nil
}

// UpdateProfileRequest, kullanıcının kendi profilini güncellemesi için.
// Pointer field'lar partial update pattern'idir: nil = değiştirme.
type UpdateProfileRequest struct {
	Name      *string `json:"name"`
	AvatarURL *string `json:"avatar_url"`
}

// Validate, UpdateProfileRequest kontrolü.
func (r *UpdateProfileRequest) Validate() error {
	if r.Name != nil {
		*r.Name = strings.TrimSpace(*r.Name)
		nameLen := utf8.RuneCountInString(*r.Name)
		if nameLen < 1 || nameLen > 64 {
			return fmt.Errorf("name must be between 1 and 64 characters")
		}
	}
	return nil
}

// isPlausibleEmail, adresin kabaca email biçiminde olduğunu kontrol eder.
func isPlausibleEmail(s string) bool {
	at := strings.Index(s, "@")
	if at < 1 || at == len(s)-1 {
		return false
	}
	domain := s[at+1:]
	return strings.Contains(domain, ".") && !strings.ContainsAny(s, " \t")
}
