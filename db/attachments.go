package db

import (
	"context"
	"time"
)

// FileAttachment — метаданные файла, привязанного к запросу и/или сообщению
type FileAttachment struct {
	ID         int       `db:"id" json:"id"`
	InquiryID  *int      `db:"inquiry_id" json:"inquiryId"`
	MessageID  *int      `db:"message_id" json:"messageId"`
	FileName   string    `db:"file_name" json:"fileName"`
	FilePath   string    `db:"file_path" json:"filePath"`
	FileSize   int64     `db:"file_size" json:"fileSize"`
	MimeType   string    `db:"mime_type" json:"mimeType"`
	UploadedAt time.Time `db:"uploaded_at" json:"uploadedAt"`
}

func (s *Storage) CreateFileAttachment(ctx context.Context, a *FileAttachment) error {
	query := `
        INSERT INTO file_attachments (inquiry_id, message_id, file_name, file_path, file_size, mime_type)
        VALUES ($1, $2, $3, $4, $5, $6)
        RETURNING id, uploaded_at`
	return s.db.QueryRowContext(ctx, query,
		a.InquiryID, a.MessageID, a.FileName, a.FilePath, a.FileSize, a.MimeType).
		Scan(&a.ID, &a.UploadedAt)
}
