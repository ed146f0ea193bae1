package handlers

import (
	"fmt"
	"net/http"

	"golang.org/x/crypto/bcrypt"

	"packmarket/db"
	"packmarket/models"
)

type createUserInput struct {
	Email         string  `json:"email" validate:"required,email"`
	Password      string  `json:"password" validate:"required,min=8"`
	CompanyName   string  `json:"companyName" validate:"required,max=200"`
	ContactPerson string  `json:"contactPerson" validate:"required,max=200"`
	Phone         *string `json:"phone"`
	Role          string  `json:"role" validate:"required"`
	Location      string  `json:"location" validate:"required,max=200"`
	Description   *string `json:"description"`
	Website       *string `json:"website" validate:"omitempty,url"`
}

// CreateUserHandler обрабатывает POST /api/users/new
func (h *Handler) CreateUserHandler(w http.ResponseWriter, r *http.Request) {
	var input createUserInput
	if err := readJSON(w, r, &input); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	if err := h.validate.Struct(input); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	if !models.IsRole(input.Role) {
		http.Error(w, fmt.Sprintf("unknown role %q", input.Role), http.StatusBadRequest)
		return
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcrypt.DefaultCost)
	if err != nil {
		http.Error(w, "Failed to hash password", http.StatusInternalServerError)
		return
	}

	user := db.User{
		Email:         input.Email,
		PasswordHash:  string(hash),
		CompanyName:   input.CompanyName,
		ContactPerson: input.ContactPerson,
		Phone:         input.Phone,
		Role:          input.Role,
		Location:      input.Location,
		Description:   input.Description,
		Website:       input.Website,
	}

	if err := h.Store.CreateUser(r.Context(), &user); err != nil {
		if db.IsUniqueViolation(err) {
			http.Error(w, "email already registered", http.StatusConflict)
			return
		}
		http.Error(w, "Failed to create user", http.StatusInternalServerError)
		return
	}

	writeJSON(w, user)
}

// userProfileResponse: supplierProfile и ratingStats присутствуют только
// когда они есть (omitempty), а не приходят как null
type userProfileResponse struct {
	db.User
	SupplierProfile *db.SupplierProfile `json:"supplierProfile,omitempty"`
	RatingStats     *db.RatingStats     `json:"ratingStats,omitempty"`
}

// GetUserProfileHandler обрабатывает GET /api/users/{userId}/profile
func (h *Handler) GetUserProfileHandler(w http.ResponseWriter, r *http.Request) {
	userID, err := urlParamInt(r, "userId")
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	user, err := h.Store.GetUser(r.Context(), userID)
	if err != nil {
		if db.IsNotFound(err) {
			http.Error(w, "user not found", http.StatusNotFound)
			return
		}
		http.Error(w, "Failed to get user", http.StatusInternalServerError)
		return
	}

	resp := userProfileResponse{User: *user}

	if user.Role == models.RoleSupplier {
		profile, err := h.Store.GetSupplierProfileByUserID(r.Context(), userID)
		if err == nil {
			resp.SupplierProfile = profile
		} else if !db.IsNotFound(err) {
			http.Error(w, "Failed to get supplier profile", http.StatusInternalServerError)
			return
		}
	}

	stats, err := h.Store.GetRatingStats(r.Context(), userID)
	if err != nil {
		http.Error(w, "Failed to get rating stats", http.StatusInternalServerError)
		return
	}
	if stats.Count > 0 {
		resp.RatingStats = stats
	}

	writeJSON(w, resp)
}

type updateUserInput struct {
	CompanyName   *string   `json:"companyName"`
	ContactPerson *string   `json:"contactPerson"`
	Phone         OptString `json:"phone"`
	Location      *string   `json:"location"`
	Description   OptString `json:"description"`
	Website       OptString `json:"website"`
}

// UpdateUserProfileHandler обрабатывает PATCH /api/users/{userId}.
// Частичное обновление: меняются только явно переданные поля,
// null очищает nullable-поле. Роль и email не меняются.
func (h *Handler) UpdateUserProfileHandler(w http.ResponseWriter, r *http.Request) {
	userID, err := urlParamInt(r, "userId")
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	var input updateUserInput
	if err := readJSON(w, r, &input); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	user, err := h.Store.GetUser(r.Context(), userID)
	if err != nil {
		if db.IsNotFound(err) {
			http.Error(w, "user not found", http.StatusNotFound)
			return
		}
		http.Error(w, "Failed to get user", http.StatusInternalServerError)
		return
	}

	if input.CompanyName != nil {
		if *input.CompanyName == "" {
			http.Error(w, "companyName must not be empty", http.StatusBadRequest)
			return
		}
		user.CompanyName = *input.CompanyName
	}
	if input.ContactPerson != nil {
		if *input.ContactPerson == "" {
			http.Error(w, "contactPerson must not be empty", http.StatusBadRequest)
			return
		}
		user.ContactPerson = *input.ContactPerson
	}
	if input.Location != nil {
		if *input.Location == "" {
			http.Error(w, "location must not be empty", http.StatusBadRequest)
			return
		}
		user.Location = *input.Location
	}
	if input.Phone.Set {
		user.Phone = optStringValue(input.Phone)
	}
	if input.Description.Set {
		user.Description = optStringValue(input.Description)
	}
	if input.Website.Set {
		user.Website = optStringValue(input.Website)
	}

	if err := h.Store.UpdateUser(r.Context(), user); err != nil {
		http.Error(w, "Failed to update user", http.StatusInternalServerError)
		return
	}

	writeJSON(w, user)
}

func optStringValue(o OptString) *string {
	if !o.Valid {
		return nil
	}
	v := o.Value
	return &v
}
