package middleware

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/vkayy/ev-cord/handlers"
	"github.com/vkayy/ev-cord/models"
	"github.com/vkayy/ev-cord/pkg"
	"github.com/vkayy/ev-cord/services"
)

type fakeTokenValidator struct {
	services.AuthService
	validateFn func(tokenString string) (*models.TokenClaims, error)
}

func (f *fakeTokenValidator) ValidateAccessToken(tokenString string) (*models.TokenClaims, error) {
	return f.validateFn(tokenString)
}

type fakeProfileRepo struct {
	getByIDFn func(ctx context.Context, id string) (*models.Profile, error)
}

func (f *fakeProfileRepo) Create(ctx context.Context, profile *models.Profile) error {
	panic("unexpected Create call")
}

func (f *fakeProfileRepo) GetByID(ctx context.Context, id string) (*models.Profile, error) {
	return f.getByIDFn(ctx, id)
}

func (f *fakeProfileRepo) GetByEmail(ctx context.Context, email string) (*models.Profile, error) {
	panic("unexpected GetByEmail call")
}

func (f *fakeProfileRepo) Update(ctx context.Context, profile *models.Profile) error {
	panic("unexpected Update call")
}

func TestRequireLoadsProfileIntoContext(t *testing.T) {
	mw := NewAuthMiddleware(
		&fakeTokenValidator{
			validateFn: func(tokenString string) (*models.TokenClaims, error) {
				if tokenString != "gecerli-token" {
					t.Errorf("validated token = %s, want gecerli-token", tokenString)
				}
				return &models.TokenClaims{ProfileID: "p1"}, nil
			},
		},
		&fakeProfileRepo{
			getByIDFn: func(ctx context.Context, id string) (*models.Profile, error) {
				return &models.Profile{ID: id, Name: "Ayşe", PasswordHash: "bcrypt-hash"}, nil
			},
		},
	)

	var got *models.Profile
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		got, _ = r.Context().Value(handlers.ProfileContextKey).(*models.Profile)
	})

	r := httptest.NewRequest(http.MethodGet, "/api/servers", nil)
	r.Header.Set("Authorization", "Bearer gecerli-token")
	w := httptest.NewRecorder()
	mw.Require(next).ServeHTTP(w, r)

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", w.Code)
	}
	if got == nil || got.ID != "p1" {
		t.Fatalf("profile in context = %+v, want ID p1", got)
	}
	if got.PasswordHash != "" {
		t.Error("password hash should be stripped before reaching handlers")
	}
}

func TestRequireRejectsBadRequests(t *testing.T) {
	mw := NewAuthMiddleware(
		&fakeTokenValidator{
			validateFn: func(tokenString string) (*models.TokenClaims, error) {
				return nil, fmt.Errorf("%w: invalid token", pkg.ErrUnauthorized)
			},
		},
		&fakeProfileRepo{},
	)

	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Error("next should not run for rejected requests")
	})

	tests := []struct {
		name   string
		header string
	}{
		{"missing header", ""},
		{"wrong scheme", "Basic dXNlcjpwYXNz"},
		{"invalid token", "Bearer sahte-token"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := httptest.NewRequest(http.MethodGet, "/api/servers", nil)
			if tt.header != "" {
				r.Header.Set("Authorization", tt.header)
			}
			w := httptest.NewRecorder()
			mw.Require(next).ServeHTTP(w, r)
			if w.Code != http.StatusUnauthorized {
				t.Errorf("status = %d, want 401", w.Code)
			}
		})
	}
}

func TestRequireRejectsDeletedProfile(t *testing.T) {
	mw := NewAuthMiddleware(
		&fakeTokenValidator{
			validateFn: func(tokenString string) (*models.TokenClaims, error) {
				return &models.TokenClaims{ProfileID: "silinmis"}, nil
			},
		},
		&fakeProfileRepo{
			getByIDFn: func(ctx context.Context, id string) (*models.Profile, error) {
				return nil, fmt.Errorf("%w: profile not found", pkg.ErrNotFound)
			},
		},
	)

	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Error("next should not run when the profile is gone")
	})

	r := httptest.NewRequest(http.MethodGet, "/api/servers", nil)
	r.Header.Set("Authorization", "Bearer gecerli-token")
	w := httptest.NewRecorder()
	mw.Require(next).ServeHTTP(w, r)

	if w.Code != http.StatusUnauthorized {
		t.Errorf("status = %d, want 401", w.Code)
	}
}
