package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/vkayy/ev-cord/models"
	"github.com/vkayy/ev-cord/pkg"
	"github.com/vkayy/ev-cord/services"
)

// ChannelHandler, kanal endpoint'lerini yöneten struct.
type ChannelHandler struct {
	channelService services.ChannelService
}

// NewChannelHandler, constructor.
func NewChannelHandler(channelService services.ChannelService) *ChannelHandler {
	return &ChannelHandler{channelService: channelService}
}

// Create godoc
// POST /api/servers/{serverId}/channels
// Body: { "name": "...", "type": "text" | "audio" | "video" }
// Moderator ve üzeri rol gerekir.
func (h *ChannelHandler) Create(w http.ResponseWriter, r *http.Request) {
	profile, ok := profileFromContext(w, r)
	if !ok {
		return
	}

	serverID := r.PathValue("serverId")

	var req models.CreateChannelRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		pkg.ErrorWithMessage(w, http.StatusBadRequest, "invalid request body")
		return
	}

	channel, err := h.channelService.CreateChannel(r.Context(), serverID, profile.ID, &req)
	if err != nil {
		pkg.Error(w, err)
		return
	}

	pkg.JSON(w, http.StatusCreated, channel)
}

// Get godoc
// GET /api/channels/{channelId}
func (h *ChannelHandler) Get(w http.ResponseWriter, r *http.Request) {
	profile, ok := profileFromContext(w, r)
	if !ok {
		return
	}

	channelID := r.PathValue("channelId")

	channel, err := h.channelService.GetChannel(r.Context(), channelID, profile.ID)
	if err != nil {
		pkg.Error(w, err)
		return
	}

	pkg.JSON(w, http.StatusOK, channel)
}

// Update godoc
// PATCH /api/channels/{channelId}
// Body: { "name": "..." }
// Moderator ve üzeri; "general" yeniden adlandırılamaz.
func (h *ChannelHandler) Update(w http.ResponseWriter, r *http.Request) {
	profile, ok := profileFromContext(w, r)
	if !ok {
		return
	}

	channelID := r.PathValue("channelId")

	var req models.UpdateChannelRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		pkg.ErrorWithMessage(w, http.StatusBadRequest, "invalid request body")
		return
	}

	channel, err := h.channelService.UpdateChannel(r.Context(), channelID, profile.ID, &req)
	if err != nil {
		pkg.Error(w, err)
		return
	}

	pkg.JSON(w, http.StatusOK, channel)
}

// Delete godoc
// DELETE /api/channels/{channelId}
// Moderator ve üzeri; "general" silinemez.
func (h *ChannelHandler) Delete(w http.ResponseWriter, r *http.Request) {
	profile, ok := profileFromContext(w, r)
	if !ok {
		return
	}

	channelID := r.PathValue("channelId")

	if err := h.channelService.DeleteChannel(r.Context(), channelID, profile.ID); err != nil {
		pkg.Error(w, err)
		return
	}

	pkg.JSON(w, http.StatusOK, map[string]string{"message": "channel deleted"})
}
