package handlers

import (
	"net/http"

	"packmarket/db"
)

type createRatingInput struct {
	RaterID   int     `json:"raterId" validate:"required"`
	RatedID   int     `json:"ratedId" validate:"required"`
	InquiryID *int    `json:"inquiryId"`
	Score     int     `json:"score" validate:"required,min=1,max=5"`
	Comment   *string `json:"comment"`
}

// CreateRatingHandler обрабатывает POST /api/ratings/new.
// Оценка допустима только между пользователями разных ролей; по одному
// запросу пара может оценить друг друга не более одного раза.
func (h *Handler) CreateRatingHandler(w http.ResponseWriter, r *http.Request) {
	var input createRatingInput
	if err := readJSON(w, r, &input); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	if err := h.validate.Struct(input); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	rater, err := h.Store.GetUser(r.Context(), input.RaterID)
	if err != nil {
		if db.IsNotFound(err) {
			http.Error(w, "rater not found", http.StatusNotFound)
			return
		}
		http.Error(w, "Failed to get rater", http.StatusInternalServerError)
		return
	}
	rated, err := h.Store.GetUser(r.Context(), input.RatedID)
	if err != nil {
		if db.IsNotFound(err) {
			http.Error(w, "rated user not found", http.StatusNotFound)
			return
		}
		http.Error(w, "Failed to get rated user", http.StatusInternalServerError)
		return
	}
	if rater.Role == rated.Role {
		http.Error(w, "cannot rate a user with the same role", http.StatusConflict)
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
		exists, err := h.Store.HasRatingForInquiry(r.Context(), input.RaterID, input.RatedID, *input.InquiryID)
		if err != nil {
			http.Error(w, "Failed to check existing ratings", http.StatusInternalServerError)
			return
		}
		if exists {
			http.Error(w, "rating already exists for this inquiry", http.StatusConflict)
			return
		}
	}

	rating := db.Rating{
		RaterID:   input.RaterID,
		RatedID:   input.RatedID,
		InquiryID: input.InquiryID,
		Score:     input.Score,
		Comment:   input.Comment,
	}

	if err := h.Store.CreateRating(r.Context(), &rating); err != nil {
		// Гонка двух одинаковых оценок упирается в частичный уникальный индекс
		if db.IsUniqueViolation(err) {
			http.Error(w, "rating already exists for this inquiry", http.StatusConflict)
			return
		}
		http.Error(w, "Failed to create rating", http.StatusInternalServerError)
		return
	}

	writeJSON(w, rating)
}

// GetRatingsForUserHandler обрабатывает GET /api/ratings/user/{userId}:
// оценки, где пользователь — оцениваемая сторона, новые сверху
func (h *Handler) GetRatingsForUserHandler(w http.ResponseWriter, r *http.Request) {
	userID, err := urlParamInt(r, "userId")
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	ratings, err := h.Store.GetRatingsForUser(r.Context(), userID)
	if err != nil {
		http.Error(w, "Failed to get ratings", http.StatusInternalServerError)
		return
	}

	writeJSON(w, ratings)
}
