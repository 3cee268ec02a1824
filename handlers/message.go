package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/vkayy/ev-cord/models"
	"github.com/vkayy/ev-cord/pkg"
	"github.com/vkayy/ev-cord/services"
)

// MessageHandler, kanal mesajı endpoint'lerini yöneten struct.
type MessageHandler struct {
	messageService services.MessageService
}

// NewMessageHandler, constructor.
func NewMessageHandler(messageService services.MessageService) *MessageHandler {
	return &MessageHandler{messageService: messageService}
}

// Send godoc
// POST /api/channels/{channelId}/messages
// Body: { "content": "...", "file_url": "..." }
func (h *MessageHandler) Send(w http.ResponseWriter, r *http.Request) {
	profile, ok := profileFromContext(w, r)
	if !ok {
		return
	}

	channelID := r.PathValue("channelId")

	var req models.CreateMessageRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		pkg.ErrorWithMessage(w, http.StatusBadRequest, "invalid request body")
		return
	}

	message, err := h.messageService.SendMessage(r.Context(), channelID, profile.ID, &req)
	if err != nil {
		pkg.Error(w, err)
		return
	}

	pkg.JSON(w, http.StatusCreated, message)
}

// List godoc
// GET /api/channels/{channelId}/messages?cursor=...
//
// Mesajları yeniden eskiye doğru sayfalar. cursor boşsa en yeni sayfa
// döner; response'taki next_cursor bir sonraki (daha eski) sayfanın
// anahtarıdır, boşsa daha eski mesaj yoktur.
func (h *MessageHandler) List(w http.ResponseWriter, r *http.Request) {
	profile, ok := profileFromContext(w, r)
	if !ok {
		return
	}

	channelID := r.PathValue("channelId")
	cursor := r.URL.Query().Get("cursor")

	page, err := h.messageService.ListMessages(r.Context(), channelID, profile.ID, cursor)
	if err != nil {
		pkg.Error(w, err)
		return
	}

	pkg.JSON(w, http.StatusOK, page)
}

// Update godoc
// PATCH /api/messages/{messageId}
// Body: { "content": "..." }
// Yalnızca yazar.
func (h *MessageHandler) Update(w http.ResponseWriter, r *http.Request) {
	profile, ok := profileFromContext(w, r)
	if !ok {
		return
	}

	messageID := r.PathValue("messageId")

	var req models.UpdateMessageRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		pkg.ErrorWithMessage(w, http.StatusBadRequest, "invalid request body")
		return
	}

	message, err := h.messageService.EditMessage(r.Context(), messageID, profile.ID, &req)
	if err != nil {
		pkg.Error(w, err)
		return
	}

	pkg.JSON(w, http.StatusOK, message)
}

// Delete godoc
// DELETE /api/messages/{messageId}
// Yazar veya moderator+. Soft delete — mesajın konumu korunur.
func (h *MessageHandler) Delete(w http.ResponseWriter, r *http.Request) {
	profile, ok := profileFromContext(w, r)
	if !ok {
		return
	}

	messageID := r.PathValue("messageId")

	message, err := h.messageService.DeleteMessage(r.Context(), messageID, profile.ID)
	if err != nil {
		pkg.Error(w, err)
		return
	}

	pkg.JSON(w, http.StatusOK, message)
}
