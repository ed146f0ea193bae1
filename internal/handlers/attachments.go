package handlers

import (
	"errors"
	"fmt"
	"net/http"
	"strings"

	"packmarket/db"
)

// MaxAttachmentSize — верхняя граница размера файла (10 МБ)
const MaxAttachmentSize = 10 * 1024 * 1024

var allowedMimeTypes = map[string]bool{
	"application/pdf": true,
	"image/png":       true,
	"image/jpeg":      true,
	"image/gif":       true,
	"image/webp":      true,
	"text/plain":      true,
	"text/csv":        true,
	"application/msword": true,
	"application/vnd.openxmlformats-officedocument.wordprocessingml.document": true,
	"application/vnd.ms-excel": true,
	"application/vnd.openxmlformats-officedocument.spreadsheetml.sheet":       true,
}

type uploadAttachmentInput struct {
	InquiryID *int   `json:"inquiryId"`
	MessageID *int   `json:"messageId"`
	FileName  string `json:"fileName"`
	FilePath  string `json:"filePath"`
	FileSize  int64  `json:"fileSize"`
	MimeType  string `json:"mimeType"`
}

// validateAttachmentInput проверяет вход и обрезает пробелы в имени и пути
func validateAttachmentInput(input *uploadAttachmentInput) error {
	if input.InquiryID == nil && input.MessageID == nil {
		return errors.New("either inquiry_id or message_id must be provided")
	}
	input.FileName = strings.TrimSpace(input.FileName)
	if input.FileName == "" {
		return errors.New("file name must not be empty")
	}
	input.FilePath = strings.TrimSpace(input.FilePath)
	if input.FilePath == "" {
		return errors.New("file path must not be empty")
	}
	if input.FileSize <= 0 {
		return errors.New("file size must be positive")
	}
	if input.FileSize > MaxAttachmentSize {
		return errors.New("file size exceeds the 10MB limit")
	}
	if !allowedMimeTypes[input.MimeType] {
		return fmt.Errorf("mime type %q is not allowed", input.MimeType)
	}
	return nil
}

// UploadFileAttachmentHandler обрабатывает POST /api/attachments/new.
// Хранится только метаинформация, файл лежит по локальному пути.
func (h *Handler) UploadFileAttachmentHandler(w http.ResponseWriter, r *http.Request) {
	var input uploadAttachmentInput
	if err := readJSON(w, r, &input); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	if err := validateAttachmentInput(&input); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
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
	if input.MessageID != nil {
		if _, err := h.Store.GetMessage(r.Context(), *input.MessageID); err != nil {
			if db.IsNotFound(err) {
				http.Error(w, "message not found", http.StatusNotFound)
				return
			}
			http.Error(w, "Failed to get message", http.StatusInternalServerError)
			return
		}
	}

	attachment := db.FileAttachment{
		InquiryID: input.InquiryID,
		MessageID: input.MessageID,
		FileName:  input.FileName,
		FilePath:  input.FilePath,
		FileSize:  input.FileSize,
		MimeType:  input.MimeType,
	}

	if err := h.Store.CreateFileAttachment(r.Context(), &attachment); err != nil {
		http.Error(w, "Failed to create file attachment", http.StatusInternalServerError)
		return
	}

	writeJSON(w, attachment)
}
