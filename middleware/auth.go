// Package middleware, HTTP request pipeline'ına eklenen ara katmanları
// barındırır.
//
// Go'da middleware bir fonksiyondur: func(next http.Handler) http.Handler.
// Middleware kendi işini yapar (ör: token doğrula), sonra next'i çağırır;
// hata varsa next çağrılmaz, request burada durur.
package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/vkayy/ev-cord/handlers"
	"github.com/vkayy/ev-cord/pkg"
	"github.com/vkayy/ev-cord/repository"
	"github.com/vkayy/ev-cord/services"
)

// AuthMiddleware, JWT token doğrulama middleware'ı.
type AuthMiddleware struct {
	authService services.AuthService
	profileRepo repository.ProfileRepository
}

// NewAuthMiddleware, constructor.
func NewAuthMiddleware(authService services.AuthService, profileRepo repository.ProfileRepository) *AuthMiddleware {
	return &AuthMiddleware{
		authService: authService,
		profileRepo: profileRepo,
	}
}

// Require, JWT token zorunlu kılan middleware.
// Token yoksa veya geçersizse 401 Unauthorized döner.
//
// Header formatı: Authorization: Bearer <token>
func (m *AuthMiddleware) Require(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		authHeader := r.Header.Get("Authorization")
		if authHeader == "" {
			pkg.ErrorWithMessage(w, http.StatusUnauthorized, "authorization header required")
			return
		}

		if !strings.HasPrefix(authHeader, "Bearer ") {
			pkg.ErrorWithMessage(w, http.StatusUnauthorized, "invalid authorization format, use: Bearer <token>")
			return
		}
		tokenString := strings.TrimPrefix(authHeader, "Bearer ")

		claims, err := m.authService.ValidateAccessToken(tokenString)
		if err != nil {
			pkg.Error(w, err)
			return
		}

		// Token geçerli olabilir ama profil silinmiş olabilir — DB'den getir.
		profile, err := m.profileRepo.GetByID(r.Context(), claims.ProfileID)
		if err != nil {
			pkg.ErrorWithMessage(w, http.StatusUnauthorized, "profile not found")
			return
		}

		// Hash context'te taşınmamalı.
		profile.PasswordHash = ""

		ctx := context.WithValue(r.Context(), handlers.ProfileContextKey, profile)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}
