package db

import (
	"context"
	"time"
)

// Rating (Оценка 1-5 между покупателем и поставщиком)
type Rating struct {
	ID        int       `db:"id" json:"id"`
	RaterID   int       `db:"rater_id" json:"raterId"`
	RatedID   int       `db:"rated_id" json:"ratedId"`
	InquiryID *int      `db:"inquiry_id" json:"inquiryId"`
	Score     int       `db:"score" json:"score"`
	Comment   *string   `db:"comment" json:"comment"`
	CreatedAt time.Time `db:"created_at" json:"createdAt"`
}

// RatingStats — агрегаты по полученным оценкам пользователя
type RatingStats struct {
	Average float64 `db:"average" json:"average"`
	Count   int     `db:"count" json:"count"`
}

func (s *Storage) CreateRating(ctx context.Context, r *Rating) error {
	query := `
        INSERT INTO ratings (rater_id, rated_id, inquiry_id, score, comment)
        VALUES ($1, $2, $3, $4, $5)
        RETURNING id, created_at`
	return s.db.QueryRowContext(ctx, query,
		r.RaterID, r.RatedID, r.InquiryID, r.Score, r.Comment).
		Scan(&r.ID, &r.CreatedAt)
}

func (s *Storage) GetRatingsForUser(ctx context.Context, userID int) ([]Rating, error) {
	ratings := []Rating{}
	query := `
        SELECT * FROM ratings
        WHERE rated_id = $1
        ORDER BY created_at DESC`
	err := s.db.SelectContext(ctx, &ratings, query, userID)
	return ratings, err
}

// HasRatingForInquiry проверяет дубликат тройки (rater, rated, inquiry)
func (s *Storage) HasRatingForInquiry(ctx context.Context, raterID, ratedID, inquiryID int) (bool, error) {
	var count int
	query := `SELECT COUNT(1) FROM ratings WHERE rater_id=$1 AND rated_id=$2 AND inquiry_id=$3`
	err := s.db.GetContext(ctx, &count, query, raterID, ratedID, inquiryID)
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

func (s *Storage) GetRatingStats(ctx context.Context, userID int) (*RatingStats, error) {
	stats := &RatingStats{}
	query := `
        SELECT COALESCE(ROUND(AVG(score)::numeric, 2), 0) AS average, COUNT(*) AS count
        FROM ratings
        WHERE rated_id = $1`
	err := s.db.GetContext(ctx, stats, query, userID)
	return stats, err
}
