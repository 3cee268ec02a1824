package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/vkayy/ev-cord/models"
	"github.com/vkayy/ev-cord/pkg"
	"github.com/vkayy/ev-cord/services"
)

// ServerHandler, sunucu endpoint'lerini yöneten struct.
type ServerHandler struct {
	serverService services.ServerService
}

// NewServerHandler, constructor.
func NewServerHandler(serverService services.ServerService) *ServerHandler {
	return &ServerHandler{serverService: serverService}
}

// Create godoc
// POST /api/servers
// Body: { "name": "...", "image_url": "..." }
func (h *ServerHandler) Create(w http.ResponseWriter, r *http.Request) {
	profile, ok := profileFromContext(w, r)
	if !ok {
		return
	}

	var req models.CreateServerRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		pkg.ErrorWithMessage(w, http.StatusBadRequest, "invalid request body")
		return
	}

	server, err := h.serverService.CreateServer(r.Context(), profile.ID, &req)
	if err != nil {
		pkg.Error(w, err)
		return
	}

	pkg.JSON(w, http.StatusCreated, server)
}

// List godoc
// GET /api/servers
// Profilin üye olduğu sunucuları döner.
func (h *ServerHandler) List(w http.ResponseWriter, r *http.Request) {
	profile, ok := profileFromContext(w, r)
	if !ok {
		return
	}

	servers, err := h.serverService.ListServers(r.Context(), profile.ID)
	if err != nil {
		pkg.Error(w, err)
		return
	}

	pkg.JSON(w, http.StatusOK, servers)
}

// Sidebar godoc
// GET /api/servers/{serverId}/sidebar
//
// Sunucu görünümünün view model'ini döner: kanallar türe göre gruplu,
// üye listesi görüntüleyensiz, görüntüleyenin rolü ayrı alanda.
//
// Bu endpoint bir sayfa açılışını besler; sunucu yoksa veya görüntüleyen
// üye değilse hata sayfası yerine ana sayfaya yönlendirilir (302).
func (h *ServerHandler) Sidebar(w http.ResponseWriter, r *http.Request) {
	profile, ok := profileFromContext(w, r)
	if !ok {
		return
	}

	serverID := r.PathValue("serverId")

	sidebar, err := h.serverService.GetSidebar(r.Context(), serverID, profile.ID)
	if err != nil {
		if errors.Is(err, pkg.ErrNotFound) {
			http.Redirect(w, r, "/", http.StatusFound)
			return
		}
		pkg.Error(w, err)
		return
	}

	pkg.JSON(w, http.StatusOK, sidebar)
}

// Update godoc
// PATCH /api/servers/{serverId}
// Body: { "name": "...", "image_url": "..." } (partial). Yalnızca sahip.
func (h *ServerHandler) Update(w http.ResponseWriter, r *http.Request) {
	profile, ok := profileFromContext(w, r)
	if !ok {
		return
	}

	serverID := r.PathValue("serverId")

	var req models.UpdateServerRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		pkg.ErrorWithMessage(w, http.StatusBadRequest, "invalid request body")
		return
	}

	server, err := h.serverService.UpdateServer(r.Context(), serverID, profile.ID, &req)
	if err != nil {
		pkg.Error(w, err)
		return
	}

	pkg.JSON(w, http.StatusOK, server)
}

// Delete godoc
// DELETE /api/servers/{serverId}
// Yalnızca sahip. Cascade ile kanallar, üyeler ve mesajlar da silinir.
func (h *ServerHandler) Delete(w http.ResponseWriter, r *http.Request) {
	profile, ok := profileFromContext(w, r)
	if !ok {
		return
	}

	serverID := r.PathValue("serverId")

	if err := h.serverService.DeleteServer(r.Context(), serverID, profile.ID); err != nil {
		pkg.Error(w, err)
		return
	}

	pkg.JSON(w, http.StatusOK, map[string]string{"message": "server deleted"})
}

// Join godoc
// POST /api/servers/join
// Body: { "invite_code": "..." }
// Profili davet koduyla sunucuya guest olarak ekler. Idempotent.
func (h *ServerHandler) Join(w http.ResponseWriter, r *http.Request) {
	profile, ok := profileFromContext(w, r)
	if !ok {
		return
	}

	var req models.JoinServerRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		pkg.ErrorWithMessage(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if err := req.Validate(); err != nil {
		pkg.ErrorWithMessage(w, http.StatusBadRequest, err.Error())
		return
	}

	server, err := h.serverService.JoinByInviteCode(r.Context(), profile.ID, req.InviteCode)
	if err != nil {
		pkg.Error(w, err)
		return
	}

	pkg.JSON(w, http.StatusOK, server)
}

// Leave godoc
// PATCH /api/servers/{serverId}/leave
// Profilin kendi üyeliğini sonlandırır. Sahip ayrılamaz.
func (h *ServerHandler) Leave(w http.ResponseWriter, r *http.Request) {
	profile, ok := profileFromContext(w, r)
	if !ok {
		return
	}

	serverID := r.PathValue("serverId")

	if err := h.serverService.LeaveServer(r.Context(), serverID, profile.ID); err != nil {
		pkg.Error(w, err)
		return
	}

	pkg.JSON(w, http.StatusOK, map[string]string{"message": "left server"})
}

// RotateInviteCode godoc
// PATCH /api/servers/{serverId}/invite-code
// Davet kodunu yeni bir UUID ile değiştirir. Yalnızca sahip; eski kod
// anında geçersizleşir.
func (h *ServerHandler) RotateInviteCode(w http.ResponseWriter, r *http.Request) {
	profile, ok := profileFromContext(w, r)
	if !ok {
		return
	}

	serverID := r.PathValue("serverId")

	server, err := h.serverService.RotateInviteCode(r.Context(), serverID, profile.ID)
	if err != nil {
		pkg.Error(w, err)
		return
	}

	pkg.JSON(w, http.StatusOK, server)
}

// SendInvite godoc
// POST /api/servers/{serverId}/invite
// Body: { "email": "..." }
// Aktif davet linkini email ile gönderir.
func (h *ServerHandler) SendInvite(w http.ResponseWriter, r *http.Request) {
	profile, ok := profileFromContext(w, r)
	if !ok {
		return
	}

	serverID := r.PathValue("serverId")

	var req models.InviteEmailRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		pkg.ErrorWithMessage(w, http.StatusBadRequest, "invalid request body")
		return
	}

	if err := h.serverService.SendInviteEmail(r.Context(), serverID, profile.ID, &req); err != nil {
		pkg.Error(w, err)
		return
	}

	pkg.JSON(w, http.StatusOK, map[string]string{"message": "invite sent"})
}
