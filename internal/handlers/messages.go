package handlers

import (
	"net/http"
	"strconv"

	"packmarket/db"
)

type createMessageInput struct {
	SenderID    int    `json:"senderId" validate:"required"`
	RecipientID int    `json:"recipientId" validate:"required"`
	InquiryID   *int   `json:"inquiryId"`
	Subject     string `json:"subject" validate:"required,max=200"`
	Content     string `json:"content" validate:"required,max=5000"`
}

// CreateMessageHandler обрабатывает POST /api/messages/new
func (h *Handler) CreateMessageHandler(w http.ResponseWriter, r *http.Request) {
	var input createMessageInput
	if err := readJSON(w, r, &input); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	if err := h.validate.Struct(input); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	if _, err := h.Store.GetUser(r.Context(), input.SenderID); err != nil {
		if db.IsNotFound(err) {
			http.Error(w, "sender not found", http.StatusNotFound)
			return
		}
		http.Error(w, "Failed to get sender", http.StatusInternalServerError)
		return
	}
	if _, err := h.Store.GetUser(r.Context(), input.RecipientID); err != nil {
		if db.IsNotFound(err) {
			http.Error(w, "recipient not found", http.StatusNotFound)
			return
		}
		http.Error(w, "Failed to get recipient", http.StatusInternalServerError)
		return
	}
	if input.InquiryID != nil {
		if _, err := h.Store.GetInquiry(r.Context(), *input.InquiryID); err != nil {
			if db.IsNotFound(err) {
				http.Error(w, "inquiry not found", http.StatusNotFound)
				return
			}
			http.Error(w, "Failed to get inquiry", http.StatusInternalServerError)
			return
		}
	}

	message := db.Message{
		SenderID:    input.SenderID,
		RecipientID: input.RecipientID,
		InquiryID:   input.InquiryID,
		Subject:     input.Subject,
		Content:     input.Content,
	}

	if err := h.Store.CreateMessage(r.Context(), &message); err != nil {
		http.Error(w, "Failed to create message", http.StatusInternalServerError)
		return
	}

	writeJSON(w, message)
}

// GetMessagesForUserHandler обрабатывает GET /api/messages/user/{userId}:
// входящие и исходящие вместе, новые сверху
func (h *Handler) GetMessagesForUserHandler(w http.ResponseWriter, r *http.Request) {
	userID, err := urlParamInt(r, "userId")
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	messages, err := h.Store.GetMessagesForUser(r.Context(), userID)
	if err != nil {
		http.Error(w, "Failed to get messages", http.StatusInternalServerError)
		return
	}

	writeJSON(w, messages)
}

// MarkMessageReadHandler обрабатывает PUT /api/messages/{messageId}/read.
// Отметить может только получатель; повторный вызов ничего не меняет
// и возвращает то же время прочтения.
func (h *Handler) MarkMessageReadHandler(w http.ResponseWriter, r *http.Request) {
	messageID, err := urlParamInt(r, "messageId")
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	userID, err := strconv.Atoi(r.URL.Query().Get("userId"))
	if err != nil || userID <= 0 {
		http.Error(w, "invalid userId", http.StatusBadRequest)
		return
	}

	message, err := h.Store.GetMessage(r.Context(), messageID)
	if err != nil {
		if db.IsNotFound(err) {
			http.Error(w, "message not found", http.StatusNotFound)
			return
		}
		http.Error(w, "Failed to get message", http.StatusInternalServerError)
		return
	}

	if message.RecipientID != userID {
		http.Error(w, "only the recipient can mark a message as read", http.StatusForbidden)
		return
	}

	if message.ReadAt != nil {
		writeJSON(w, message)
		return
	}

	message, err = h.Store.MarkMessageRead(r.Context(), messageID)
	if err != nil {
		http.Error(w, "Failed to mark message as read", http.StatusInternalServerError)
		return
	}

	writeJSON(w, message)
}
