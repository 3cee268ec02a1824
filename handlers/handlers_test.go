package handlers

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/vkayy/ev-cord/models"
	"github.com/vkayy/ev-cord/pkg"
	"github.com/vkayy/ev-cord/pkg/ratelimit"
	"github.com/vkayy/ev-cord/services"
)

// fakeAuthService, yalnızca test senaryosunun tanımladığı fonksiyonları
// çalıştırır; geri kalan çağrılar beklenmiyordur ve panic'ler.
type fakeAuthService struct {
	services.AuthService
	loginFn func(ctx context.Context, req *models.LoginRequest) (*services.AuthTokens, error)
}

func (f *fakeAuthService) Login(ctx context.Context, req *models.LoginRequest) (*services.AuthTokens, error) {
	return f.loginFn(ctx, req)
}

type fakeServerService struct {
	services.ServerService
	getSidebarFn func(ctx context.Context, serverID, profileID string) (*models.ServerSidebar, error)
}

func (f *fakeServerService) GetSidebar(ctx context.Context, serverID, profileID string) (*models.ServerSidebar, error) {
	return f.getSidebarFn(ctx, serverID, profileID)
}

func loginRequest(body string) *http.Request {
	r := httptest.NewRequest(http.MethodPost, "/api/auth/login", strings.NewReader(body))
	r.RemoteAddr = "10.0.0.1:52431"
	return r
}

func TestLoginRateLimited(t *testing.T) {
	limiter := ratelimit.NewLoginRateLimiter(1, time.Minute)
	defer limiter.Stop()

	h := NewAuthHandler(&fakeAuthService{
		loginFn: func(ctx context.Context, req *models.LoginRequest) (*services.AuthTokens, error) {
			return nil, pkg.ErrUnauthorized
		},
	}, limiter)

	// İlk deneme: yanlış şifre, 401.
	w := httptest.NewRecorder()
	h.Login(w, loginRequest(`{"email":"a@b.co","password":"yanlis-sifre"}`))
	if w.Code != http.StatusUnauthorized {
		t.Fatalf("first attempt status = %d, want 401", w.Code)
	}

	// İkinci deneme: limit doldu, 429 + Retry-After.
	w = httptest.NewRecorder()
	h.Login(w, loginRequest(`{"email":"a@b.co","password":"yanlis-sifre"}`))
	if w.Code != http.StatusTooManyRequests {
		t.Fatalf("second attempt status = %d, want 429", w.Code)
	}
	if w.Header().Get("Retry-After") == "" {
		t.Error("429 response should carry Retry-After header")
	}
}

func TestLoginSuccessResetsLimiter(t *testing.T) {
	limiter := ratelimit.NewLoginRateLimiter(1, time.Minute)
	defer limiter.Stop()

	h := NewAuthHandler(&fakeAuthService{
		loginFn: func(ctx context.Context, req *models.LoginRequest) (*services.AuthTokens, error) {
			return &services.AuthTokens{AccessToken: "at", RefreshToken: "rt"}, nil
		},
	}, limiter)

	for i := 1; i <= 3; i++ {
		w := httptest.NewRecorder()
		h.Login(w, loginRequest(`{"email":"a@b.co","password":"gizli-sifre"}`))
		if w.Code != http.StatusOK {
			t.Fatalf("attempt %d status = %d, want 200 (reset should clear the counter)", i, w.Code)
		}
	}
}

func TestSidebarRedirectsWhenHidden(t *testing.T) {
	h := NewServerHandler(&fakeServerService{
		getSidebarFn: func(ctx context.Context, serverID, profileID string) (*models.ServerSidebar, error) {
			return nil, pkg.ErrNotFound
		},
	})

	r := httptest.NewRequest(http.MethodGet, "/api/servers/srv1/sidebar", nil)
	r.SetPathValue("serverId", "srv1")
	r = r.WithContext(context.WithValue(r.Context(), ProfileContextKey, &models.Profile{ID: "p1"}))

	w := httptest.NewRecorder()
	h.Sidebar(w, r)

	if w.Code != http.StatusFound {
		t.Fatalf("status = %d, want 302", w.Code)
	}
	if loc := w.Header().Get("Location"); loc != "/" {
		t.Errorf("redirect location = %s, want /", loc)
	}
}

func TestSidebarRequiresAuthContext(t *testing.T) {
	h := NewServerHandler(&fakeServerService{})

	r := httptest.NewRequest(http.MethodGet, "/api/servers/srv1/sidebar", nil)
	w := httptest.NewRecorder()
	h.Sidebar(w, r)

	if w.Code != http.StatusUnauthorized {
		t.Errorf("status = %d, want 401 without middleware", w.Code)
	}
}
