package handlers

import (
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"

	"packmarket/db"
	"packmarket/models"
)

type createSupplierProfileInput struct {
	UserID           int              `json:"userId" validate:"required"`
	PackagingTypes   []string         `json:"packagingTypes"`
	Materials        []string         `json:"materials"`
	Certifications   []string         `json:"certifications"`
	MinOrderQuantity int              `json:"minOrderQuantity" validate:"required,gt=0"`
	Personalization  bool             `json:"personalization"`
	PriceRangeMin    *decimal.Decimal `json:"priceRangeMin"`
	PriceRangeMax    *decimal.Decimal `json:"priceRangeMax"`
	DeliveryTimeDays int              `json:"deliveryTimeDays" validate:"required,gt=0"`
}

func validateCatalogValues(values []string, ok func(string) bool, kind string) error {
	for _, v := range values {
		if !ok(v) {
			return fmt.Errorf("unknown %s %q", kind, v)
		}
	}
	return nil
}

// CreateSupplierProfileHandler обрабатывает POST /api/suppliers/profiles/new
func (h *Handler) CreateSupplierProfileHandler(w http.ResponseWriter, r *http.Request) {
	var input createSupplierProfileInput
	if err := readJSON(w, r, &input); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	if err := h.validate.Struct(input); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	if err := validateCatalogValues(input.PackagingTypes, models.IsPackagingType, "packaging type"); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	if err := validateCatalogValues(input.Materials, models.IsMaterialType, "material"); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	if err := validateCatalogValues(input.Certifications, models.IsCertificationType, "certification"); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	if input.PriceRangeMin != nil && input.PriceRangeMax != nil &&
		input.PriceRangeMin.GreaterThan(*input.PriceRangeMax) {
		http.Error(w, "priceRangeMin must not exceed priceRangeMax", http.StatusBadRequest)
		return
	}

	user, err := h.Store.GetUser(r.Context(), input.UserID)
	if err != nil {
		if db.IsNotFound(err) {
			http.Error(w, "user not found", http.StatusNotFound)
			return
		}
		http.Error(w, "Failed to get user", http.StatusInternalServerError)
		return
	}
	if user.Role != models.RoleSupplier {
		http.Error(w, fmt.Sprintf("user %d is not a supplier", user.ID), http.StatusConflict)
		return
	}

	profile := db.SupplierProfile{
		UserID:           input.UserID,
		PackagingTypes:   input.PackagingTypes,
		Materials:        input.Materials,
		Certifications:   input.Certifications,
		MinOrderQuantity: input.MinOrderQuantity,
		Personalization:  input.Personalization,
		PriceRangeMin:    nullDecimal(input.PriceRangeMin),
		PriceRangeMax:    nullDecimal(input.PriceRangeMax),
		DeliveryTimeDays: input.DeliveryTimeDays,
	}

	if err := h.Store.CreateSupplierProfile(r.Context(), &profile); err != nil {
		if db.IsUniqueViolation(err) {
			http.Error(w, fmt.Sprintf("supplier profile already exists for user %d", input.UserID), http.StatusConflict)
			return
		}
		http.Error(w, "Failed to create supplier profile", http.StatusInternalServerError)
		return
	}

	writeJSON(w, profile)
}

type updateSupplierProfileInput struct {
	PackagingTypes   *[]string  `json:"packagingTypes"`
	Materials        *[]string  `json:"materials"`
	Certifications   *[]string  `json:"certifications"`
	MinOrderQuantity *int       `json:"minOrderQuantity"`
	Personalization  *bool      `json:"personalization"`
	PriceRangeMin    OptDecimal `json:"priceRangeMin"`
	PriceRangeMax    OptDecimal `json:"priceRangeMax"`
	DeliveryTimeDays *int       `json:"deliveryTimeDays"`
}

// UpdateSupplierProfileHandler обрабатывает PATCH /api/suppliers/profiles/{profileId}.
// Частичное обновление; null очищает nullable-границы ценового диапазона.
func (h *Handler) UpdateSupplierProfileHandler(w http.ResponseWriter, r *http.Request) {
	profileID, err := urlParamInt(r, "profileId")
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	var input updateSupplierProfileInput
	if err := readJSON(w, r, &input); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	profile, err := h.Store.GetSupplierProfile(r.Context(), profileID)
	if err != nil {
		if db.IsNotFound(err) {
			http.Error(w, "supplier profile not found", http.StatusNotFound)
			return
		}
		http.Error(w, "Failed to get supplier profile", http.StatusInternalServerError)
		return
	}

	if input.PackagingTypes != nil {
		if err := validateCatalogValues(*input.PackagingTypes, models.IsPackagingType, "packaging type"); err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		profile.PackagingTypes = *input.PackagingTypes
	}
	if input.Materials != nil {
		if err := validateCatalogValues(*input.Materials, models.IsMaterialType, "material"); err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		profile.Materials = *input.Materials
	}
	if input.Certifications != nil {
		if err := validateCatalogValues(*input.Certifications, models.IsCertificationType, "certification"); err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		profile.Certifications = *input.Certifications
	}
	if input.MinOrderQuantity != nil {
		if *input.MinOrderQuantity <= 0 {
			http.Error(w, "minOrderQuantity must be positive", http.StatusBadRequest)
			return
		}
		profile.MinOrderQuantity = *input.MinOrderQuantity
	}
	if input.Personalization != nil {
		profile.Personalization = *input.Personalization
	}
	if input.PriceRangeMin.Set {
		profile.PriceRangeMin = optNullDecimal(input.PriceRangeMin)
	}
	if input.PriceRangeMax.Set {
		profile.PriceRangeMax = optNullDecimal(input.PriceRangeMax)
	}
	if input.DeliveryTimeDays != nil {
		if *input.DeliveryTimeDays <= 0 {
			http.Error(w, "deliveryTimeDays must be positive", http.StatusBadRequest)
			return
		}
		profile.DeliveryTimeDays = *input.DeliveryTimeDays
	}
	if profile.PriceRangeMin.Valid && profile.PriceRangeMax.Valid &&
		profile.PriceRangeMin.Decimal.GreaterThan(profile.PriceRangeMax.Decimal) {
		http.Error(w, "priceRangeMin must not exceed priceRangeMax", http.StatusBadRequest)
		return
	}

	if err := h.Store.UpdateSupplierProfile(r.Context(), profile); err != nil {
		http.Error(w, "Failed to update supplier profile", http.StatusInternalServerError)
		return
	}

	writeJSON(w, profile)
}

// SearchSuppliersHandler обрабатывает GET /api/suppliers/search.
// Все переданные фильтры применяются одновременно (AND); значения вне
// каталогов отклоняются с 400, как и некорректные числа.
func (h *Handler) SearchSuppliersHandler(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()

	var filter db.SupplierSearchFilter
	for _, v := range q["packaging_type"] {
		if !models.IsPackagingType(v) {
			http.Error(w, fmt.Sprintf("unknown packaging type %q", v), http.StatusBadRequest)
			return
		}
		filter.PackagingTypes = append(filter.PackagingTypes, v)
	}
	for _, v := range q["material"] {
		if !models.IsMaterialType(v) {
			http.Error(w, fmt.Sprintf("unknown material %q", v), http.StatusBadRequest)
			return
		}
		filter.Materials = append(filter.Materials, v)
	}
	for _, v := range q["certification"] {
		if !models.IsCertificationType(v) {
			http.Error(w, fmt.Sprintf("unknown certification %q", v), http.StatusBadRequest)
			return
		}
		filter.Certifications = append(filter.Certifications, v)
	}
	filter.Location = strings.TrimSpace(q.Get("location"))

	if s := q.Get("max_min_order_qty"); s != "" {
		v, err := strconv.Atoi(s)
		if err != nil || v <= 0 {
			http.Error(w, "invalid max_min_order_qty", http.StatusBadRequest)
			return
		}
		filter.MaxMinOrderQty = &v
	}
	if s := q.Get("personalization"); s != "" {
		v, err := strconv.ParseBool(s)
		if err != nil {
			http.Error(w, "invalid personalization", http.StatusBadRequest)
			return
		}
		filter.Personalization = &v
	}
	if s := q.Get("max_price"); s != "" {
		v, err := decimal.NewFromString(s)
		if err != nil || v.IsNegative() {
			http.Error(w, "invalid max_price", http.StatusBadRequest)
			return
		}
		filter.MaxPrice = &v
	}
	if s := q.Get("max_delivery_days"); s != "" {
		v, err := strconv.Atoi(s)
		if err != nil || v <= 0 {
			http.Error(w, "invalid max_delivery_days", http.StatusBadRequest)
			return
		}
		filter.MaxDeliveryDays = &v
	}

	results, err := h.Store.SearchSuppliers(r.Context(), filter)
	if err != nil {
		http.Error(w, "Failed to search suppliers", http.StatusInternalServerError)
		return
	}

	writeJSON(w, results)
}

func nullDecimal(d *decimal.Decimal) decimal.NullDecimal {
	if d == nil {
		return decimal.NullDecimal{}
	}
	return decimal.NullDecimal{Decimal: *d, Valid: true}
}

func optNullDecimal(o OptDecimal) decimal.NullDecimal {
	if !o.Valid {
		return decimal.NullDecimal{}
	}
	return decimal.NullDecimal{Decimal: o.Value, Valid: true}
}
