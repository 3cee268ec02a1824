// Package handlers, HTTP endpoint'lerini barındırır.
//
// Thin handler prensibi: Parse → Service → Response. İş mantığı service
// katmanındadır; handler yalnızca isteği çözer, service'i çağırır ve
// sonucu serialize eder.
package handlers

import (
	"net/http"

	"github.com/vkayy/ev-cord/models"
	"github.com/vkayy/ev-cord/pkg"
)

// contextKey, context value çarpışmalarını önlemek için özel tip.
// string yerine ayrı bir tip kullanmak, başka paketlerin aynı key ile
// yazdığı değerlerle karışmayı engeller.
type contextKey string

// ProfileContextKey, AuthMiddleware'ın context'e koyduğu *models.Profile
// değerinin anahtarı.
const ProfileContextKey contextKey = "profile"

// profileFromContext, context'teki doğrulanmış profili döner.
// Middleware atlanmışsa (programlama hatası) 401 yazar ve false döner.
func profileFromContext(w http.ResponseWriter, r *http.Request) (*models.Profile, bool) {
	profile, ok := r.Context().Value(ProfileContextKey).(*models.Profile)
	if !ok {
		pkg.ErrorWithMessage(w, http.StatusUnauthorized, "profile not found in context")
		return nil, false
	}
	return profile, true
}
