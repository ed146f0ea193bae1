package db

import (
	"context"
	"time"
)

// Message (Сообщение между пользователями)
type Message struct {
	ID          int        `db:"id" json:"id"`
	SenderID    int        `db:"sender_id" json:"senderId"`
	RecipientID int        `db:"recipient_id" json:"recipientId"`
	InquiryID   *int       `db:"inquiry_id" json:"inquiryId"`
	Subject     string     `db:"subject" json:"subject"`
	Content     string     `db:"content" json:"content"`
	SentAt      time.Time  `db:"sent_at" json:"sentAt"`
	ReadAt      *time.Time `db:"read_at" json:"readAt"`
}

func (s *Storage) CreateMessage(ctx context.Context, m *Message) error {
	query := `
        INSERT INTO messages (sender_id, recipient_id, inquiry_id, subject, content)
        VALUES ($1, $2, $3, $4, $5)
        RETURNING id, sent_at`
	return s.db.QueryRowContext(ctx, query,
		m.SenderID, m.RecipientID, m.InquiryID, m.Subject, m.Content).
		Scan(&m.ID, &m.SentAt)
}

func (s *Storage) GetMessage(ctx context.Context, id int) (*Message, error) {
	m := &Message{}
	query := `SELECT * FROM messages WHERE id=$1`
	err := s.db.GetContext(ctx, m, query, id)
	return m, err
}

func (s *Storage) GetMessagesForUser(ctx context.Context, userID int) ([]Message, error) {
	messages := []Message{}
	query := `
        SELECT * FROM messages
        WHERE sender_id = $1 OR recipient_id = $1
        ORDER BY sent_at DESC`
	err := s.db.SelectContext(ctx, &messages, query, userID)
	return messages, err
}

// MarkMessageRead ставит read_at один раз: условный UPDATE, поэтому
// конкурентные вызовы сходятся к одному и тому же времени прочтения
func (s *Storage) MarkMessageRead(ctx context.Context, id int) (*Message, error) {
	_, err := s.db.ExecContext(ctx,
		`UPDATE messages SET read_at = NOW() WHERE id=$1 AND read_at IS NULL`, id)
	if err != nil {
		return nil, err
	}
	return s.GetMessage(ctx, id)
}
