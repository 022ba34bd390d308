package handlers

import (
	"encoding/json"
	"net/http"
	"strconv"

	"poputkaBack/internal/models"
	"poputkaBack/internal/services"
)

// MessageBroadcaster pushes a stored message to connected websocket
// clients. The hub in cmd implements it.
type MessageBroadcaster interface {
	BroadcastMessage(members []int, message models.Message)
}

type ChatHandler struct {
	Service     *services.ChatService
	Broadcaster MessageBroadcaster
}

func (h *ChatHandler) GetTripChat(w http.ResponseWriter, r *http.Request) {
	userID, ok := authenticatedUserID(w, r)
	if !ok {
		return
	}

	tripID, err := strconv.Atoi(r.URL.Query().Get(":id"))
	if err != nil {
		clientError(w, r, http.StatusBadRequest, "invalid trip id")
		return
	}

	chat, err := h.Service.GetTripChat(r.Context(), userID, tripID)
	if err != nil {
		handleServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, chat)
}

func (h *ChatHandler) SendMessage(w http.ResponseWriter, r *http.Request) {
	userID, ok := authenticatedUserID(w, r)
	if !ok {
		return
	}

	tripID, err := strconv.Atoi(r.URL.Query().Get(":id"))
	if err != nil {
		clientError(w, r, http.StatusBadRequest, "invalid trip id")
		return
	}

	var req models.CreateMessageRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.Content == "" {
		clientError(w, r, http.StatusBadRequest, "content is required")
		return
	}

	chat, message, err := h.Service.SendMessage(r.Context(), userID, tripID, req)
	if err != nil {
		handleServiceError(w, r, err)
		return
	}

	if h.Broadcaster != nil {
		h.Broadcaster.BroadcastMessage(chat.MemberIDs(), message)
	}
	writeJSON(w, http.StatusCreated, chat)
}
