package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/vkayy/ev-cord/models"
	"github.com/vkayy/ev-cord/pkg"
	"github.com/vkayy/ev-cord/services"
)

// ConversationHandler, birebir konuşma ve direkt mesaj endpoint'lerini
// yöneten struct.
type ConversationHandler struct {
	conversationService services.ConversationService
}

// NewConversationHandler, constructor.
func NewConversationHandler(conversationService services.ConversationService) *ConversationHandler {
	return &ConversationHandler{conversationService: conversationService}
}

// GetOrCreate godoc
// POST /api/conversations
// Body: { "member_id": "..." }
// Acting profil ile hedef üye arasındaki konuşmayı döner; yoksa oluşturur.
func (h *ConversationHandler) GetOrCreate(w http.ResponseWriter, r *http.Request) {
	profile, ok := profileFromContext(w, r)
	if !ok {
		return
	}

	var req models.CreateConversationRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.MemberID == "" {
		pkg.ErrorWithMessage(w, http.StatusBadRequest, "member_id is required")
		return
	}

	conversation, err := h.conversationService.GetOrCreateConversation(r.Context(), profile.ID, req.MemberID)
	if err != nil {
		pkg.Error(w, err)
		return
	}

	pkg.JSON(w, http.StatusOK, conversation)
}

// Get godoc
// GET /api/conversations/{conversationId}
func (h *ConversationHandler) Get(w http.ResponseWriter, r *http.Request) {
	profile, ok := profileFromContext(w, r)
	if !ok {
		return
	}

	conversationID := r.PathValue("conversationId")

	conversation, err := h.conversationService.GetConversation(r.Context(), conversationID, profile.ID)
	if err != nil {
		pkg.Error(w, err)
		return
	}

	pkg.JSON(w, http.StatusOK, conversation)
}

// SendMessage godoc
// POST /api/conversations/{conversationId}/messages
// Body: { "content": "...", "file_url": "..." }
func (h *ConversationHandler) SendMessage(w http.ResponseWriter, r *http.Request) {
	profile, ok := profileFromContext(w, r)
	if !ok {
		return
	}

	conversationID := r.PathValue("conversationId")

	var req models.CreateMessageRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		pkg.ErrorWithMessage(w, http.StatusBadRequest, "invalid request body")
		return
	}

	dm, err := h.conversationService.SendDirectMessage(r.Context(), conversationID, profile.ID, &req)
	if err != nil {
		pkg.Error(w, err)
		return
	}

	pkg.JSON(w, http.StatusCreated, dm)
}

// ListMessages godoc
// GET /api/conversations/{conversationId}/messages?cursor=...
func (h *ConversationHandler) ListMessages(w http.ResponseWriter, r *http.Request) {
	profile, ok := profileFromContext(w, r)
	if !ok {
		return
	}

	conversationID := r.PathValue("conversationId")
	cursor := r.URL.Query().Get("cursor")

	page, err := h.conversationService.ListDirectMessages(r.Context(), conversationID, profile.ID, cursor)
	if err != nil {
		pkg.Error(w, err)
		return
	}

	pkg.JSON(w, http.StatusOK, page)
}

// UpdateMessage godoc
// PATCH /api/direct-messages/{messageId}
// Body: { "content": "..." }
// Yalnızca yazar.
func (h *ConversationHandler) UpdateMessage(w http.ResponseWriter, r *http.Request) {
	profile, ok := profileFromContext(w, r)
	if !ok {
		return
	}

	dmID := r.PathValue("messageId")

	var req models.UpdateMessageRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		pkg.ErrorWithMessage(w, http.StatusBadRequest, "invalid request body")
		return
	}

	dm, err := h.conversationService.EditDirectMessage(r.Context(), dmID, profile.ID, &req)
	if err != nil {
		pkg.Error(w, err)
		return
	}

	pkg.JSON(w, http.StatusOK, dm)
}

// DeleteMessage godoc
// DELETE /api/direct-messages/{messageId}
// Yalnızca yazar. Soft delete.
func (h *ConversationHandler) DeleteMessage(w http.ResponseWriter, r *http.Request) {
	profile, ok := profileFromContext(w, r)
	if !ok {
		return
	}

	dmID := r.PathValue("messageId")

	dm, err := h.conversationService.DeleteDirectMessage(r.Context(), dmID, profile.ID)
	if err != nil {
		pkg.Error(w, err)
		return
	}

	pkg.JSON(w, http.StatusOK, dm)
}
