package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/vkayy/ev-cord/models"
	"github.com/vkayy/ev-cord/pkg"
	"github.com/vkayy/ev-cord/services"
)

// MemberHandler, üye yönetimi endpoint'lerini yöneten struct.
//
// İki endpoint de serverId'yi query parameter olarak ister:
// hedef üyenin hangi sunucu bağlamında yönetildiği URL'den gelir.
// Parametre eksikse istek 400 ile reddedilir — service'e inmeden.
type MemberHandler struct {
	memberService services.MemberService
}

// NewMemberHandler, constructor.
func NewMemberHandler(memberService services.MemberService) *MemberHandler {
	return &MemberHandler{memberService: memberService}
}

// UpdateRole godoc
// PATCH /api/members/{memberId}?serverId=...
// Body: { "role": "guest" | "moderator" | "admin" }
//
// Hedef üyenin rolünü değiştirir ve sunucunun güncel üye listesini döner.
// Yalnızca sunucu sahibi; kendi satırını hedefleyemez.
func (h *MemberHandler) UpdateRole(w http.ResponseWriter, r *http.Request) {
	profile, ok := profileFromContext(w, r)
	if !ok {
		return
	}

	memberID := r.PathValue("memberId")
	serverID := r.URL.Query().Get("serverId")
	if serverID == "" {
		pkg.ErrorWithMessage(w, http.StatusBadRequest, "serverId query parameter is required")
		return
	}

	var req models.UpdateMemberRoleRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		pkg.ErrorWithMessage(w, http.StatusBadRequest, "invalid request body")
		return
	}

	result, err := h.memberService.UpdateRole(r.Context(), memberID, serverID, profile.ID, &req)
	if err != nil {
		pkg.Error(w, err)
		return
	}

	pkg.JSON(w, http.StatusOK, result)
}

// Remove godoc
// DELETE /api/members/{memberId}?serverId=...
//
// Hedef üyeyi sunucudan çıkarır ve sunucunun güncel üye listesini döner.
// Yalnızca sunucu sahibi; kendi satırını hedefleyemez.
func (h *MemberHandler) Remove(w http.ResponseWriter, r *http.Request) {
	profile, ok := profileFromContext(w, r)
	if !ok {
		return
	}

	memberID := r.PathValue("memberId")
	serverID := r.URL.Query().Get("serverId")
	if serverID == "" {
		pkg.ErrorWithMessage(w, http.StatusBadRequest, "serverId query parameter is required")
		return
	}

	result, err := h.memberService.RemoveMember(r.Context(), memberID, serverID, profile.ID)
	if err != nil {
		pkg.Error(w, err)
		return
	}

	pkg.JSON(w, http.StatusOK, result)
}
