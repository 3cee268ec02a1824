package handlers

import (
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/vkayy/ev-cord/models"
	"github.com/vkayy/ev-cord/pkg"
	"github.com/vkayy/ev-cord/pkg/ratelimit"
	"github.com/vkayy/ev-cord/services"
)

// AuthHandler, kimlik doğrulama endpoint'lerini yöneten struct.
type AuthHandler struct {
	authService  services.AuthService
	loginLimiter *ratelimit.LoginRateLimiter
}

// NewAuthHandler, constructor.
func NewAuthHandler(authService services.AuthService, loginLimiter *ratelimit.LoginRateLimiter) *AuthHandler {
	return &AuthHandler{
		authService:  authService,
		loginLimiter: loginLimiter,
	}
}

// Register godoc
// POST /api/auth/register
// Body: { "name": "...", "email": "...", "password": "..." }
func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	var req models.RegisterRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		pkg.ErrorWithMessage(w, http.StatusBadRequest, "invalid request body")
		return
	}

	tokens, err := h.authService.Register(r.Context(), &req)
	if err != nil {
		pkg.Error(w, err)
		return
	}

	pkg.JSON(w, http.StatusCreated, tokens)
}

// Login godoc
// POST /api/auth/login
// Body: { "email": "...", "password": "..." }
//
// IP bazlı rate limit uygulanır — brute-force önlemi. Limit aşılırsa
// 429 + Retry-After header döner.
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	ip := ratelimit.ExtractIP(r)
	if !h.loginLimiter.Allow(ip) {
		w.Header().Set("Retry-After", fmt.Sprintf("%d", h.loginLimiter.RetryAfterSeconds(ip)))
		pkg.ErrorWithMessage(w, http.StatusTooManyRequests, "too many login attempts, try again later")
		return
	}

	var req models.LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		pkg.ErrorWithMessage(w, http.StatusBadRequest, "invalid request body")
		return
	}

	tokens, err := h.authService.Login(r.Context(), &req)
	if err != nil {
		pkg.Error(w, err)
		return
	}

	// Başarılı giriş sayacı temizler — meşru kullanıcı bloke olmasın.
	h.loginLimiter.Reset(ip)

	pkg.JSON(w, http.StatusOK, tokens)
}

// refreshRequest, refresh/logout body'si.
type refreshRequest struct {
	RefreshToken string `json:"refresh_token"`
}

// Refresh godoc
// POST /api/auth/refresh
// Body: { "refresh_token": "..." }
func (h *AuthHandler) Refresh(w http.ResponseWriter, r *http.Request) {
	var req refreshRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.RefreshToken == "" {
		pkg.ErrorWithMessage(w, http.StatusBadRequest, "refresh_token is required")
		return
	}

	tokens, err := h.authService.RefreshToken(r.Context(), req.RefreshToken)
	if err != nil {
		pkg.Error(w, err)
		return
	}

	pkg.JSON(w, http.StatusOK, tokens)
}

// Logout godoc
// POST /api/auth/logout
// Body: { "refresh_token": "..." }
func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	var req refreshRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.RefreshToken == "" {
		pkg.ErrorWithMessage(w, http.StatusBadRequest, "refresh_token is required")
		return
	}

	if err := h.authService.Logout(r.Context(), req.RefreshToken); err != nil {
		pkg.Error(w, err)
		return
	}

	pkg.JSON(w, http.StatusOK, map[string]string{"message": "logged out"})
}

// Me godoc
// GET /api/auth/me
// Context'teki doğrulanmış profili döner.
func (h *AuthHandler) Me(w http.ResponseWriter, r *http.Request) {
	profile, ok := profileFromContext(w, r)
	if !ok {
		return
	}

	pkg.JSON(w, http.StatusOK, profile)
}

// UpdateMe godoc
// PATCH /api/auth/me
// Body: { "name": "...", "avatar_url": "..." } (partial)
func (h *AuthHandler) UpdateMe(w http.ResponseWriter, r *http.Request) {
	profile, ok := profileFromContext(w, r)
	if !ok {
		return
	}

	var req models.UpdateProfileRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		pkg.ErrorWithMessage(w, http.StatusBadRequest, "invalid request body")
		return
	}

	updated, err := h.authService.UpdateProfile(r.Context(), profile.ID, &req)
	if err != nil {
		pkg.Error(w, err)
		return
	}

	pkg.JSON(w, http.StatusOK, updated)
}
