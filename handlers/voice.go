package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/vkayy/ev-cord/models"
	"github.com/vkayy/ev-cord/pkg"
	"github.com/vkayy/ev-cord/services"
)

// VoiceHandler, ses/görüntü kanalı token endpoint'ini yöneten struct.
type VoiceHandler struct {
	voiceService services.VoiceService
}

// NewVoiceHandler, constructor.
func NewVoiceHandler(voiceService services.VoiceService) *VoiceHandler {
	return &VoiceHandler{voiceService: voiceService}
}

// Token godoc
// POST /api/voice/token
// Body: { "channel_id": "..." }
//
// Kanala katılım için LiveKit token'ı döner. Medya trafiği uygulama
// sunucusundan geçmez; client bu token ile LiveKit'e doğrudan bağlanır.
func (h *VoiceHandler) Token(w http.ResponseWriter, r *http.Request) {
	profile, ok := profileFromContext(w, r)
	if !ok {
		return
	}

	var req models.VoiceTokenRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.ChannelID == "" {
		pkg.ErrorWithMessage(w, http.StatusBadRequest, "channel_id is required")
		return
	}

	token, err := h.voiceService.GenerateToken(r.Context(), profile.ID, profile.Name, req.ChannelID)
	if err != nil {
		pkg.Error(w, err)
		return
	}

	pkg.JSON(w, http.StatusOK, token)
}
