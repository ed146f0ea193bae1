package handlers

import (
	"fmt"
	"net/http"

	"github.com/shopspring/decimal"

	"packmarket/db"
	"packmarket/models"
)

type createQuoteInput struct {
	InquiryID        int             `json:"inquiryId" validate:"required"`
	SupplierID       int             `json:"supplierId" validate:"required"`
	PricePerUnit     decimal.Decimal `json:"pricePerUnit"`
	TotalPrice       decimal.Decimal `json:"totalPrice"`
	DeliveryTimeDays int             `json:"deliveryTimeDays" validate:"required,gt=0"`
	Notes            *string         `json:"notes"`
}

// CreateQuoteHandler обрабатывает POST /api/quotes/new.
// Предлагать может только поставщик из рассылки запроса; первое предложение
// переводит запрос pending -> responded, последующие статус не меняют.
func (h *Handler) CreateQuoteHandler(w http.ResponseWriter, r *http.Request) {
	var input createQuoteInput
	if err := readJSON(w, r, &input); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	if err := h.validate.Struct(input); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	if !input.PricePerUnit.IsPositive() {
		http.Error(w, "pricePerUnit must be positive", http.StatusBadRequest)
		return
	}
	if !input.TotalPrice.IsPositive() {
		http.Error(w, "totalPrice must be positive", http.StatusBadRequest)
		return
	}

	supplier, err := h.Store.GetUser(r.Context(), input.SupplierID)
	if err != nil {
		if db.IsNotFound(err) {
			http.Error(w, "supplier not found", http.StatusNotFound)
			return
		}
		http.Error(w, "Failed to get supplier", http.StatusInternalServerError)
		return
	}
	if supplier.Role != models.RoleSupplier {
		http.Error(w, fmt.Sprintf("user %d is not a supplier", supplier.ID), http.StatusConflict)
		return
	}

	if _, err := h.Store.GetInquiry(r.Context(), input.InquiryID); err != nil {
		if db.IsNotFound(err) {
			http.Error(w, "inquiry not found", http.StatusNotFound)
			return
		}
		http.Error(w, "Failed to get inquiry", http.StatusInternalServerError)
		return
	}

	invited, err := h.Store.IsSupplierInvited(r.Context(), input.InquiryID, input.SupplierID)
	if err != nil {
		http.Error(w, "Failed to check inquiry suppliers", http.StatusInternalServerError)
		return
	}
	if !invited {
		http.Error(w, fmt.Sprintf("supplier %d was not sent inquiry %d", input.SupplierID, input.InquiryID), http.StatusConflict)
		return
	}

	quote := db.Quote{
		InquiryID:        input.InquiryID,
		SupplierID:       input.SupplierID,
		PricePerUnit:     input.PricePerUnit,
		TotalPrice:       input.TotalPrice,
		DeliveryTimeDays: input.DeliveryTimeDays,
		Notes:            input.Notes,
	}

	if err := h.Store.CreateQuote(r.Context(), &quote); err != nil {
		http.Error(w, "Failed to create quote", http.StatusInternalServerError)
		return
	}

	writeJSON(w, quote)
}

// GetQuotesForInquiryHandler обрабатывает GET /api/quotes/inquiry/{inquiryId}
func (h *Handler) GetQuotesForInquiryHandler(w http.ResponseWriter, r *http.Request) {
	inquiryID, err := urlParamInt(r, "inquiryId")
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	quotes, err := h.Store.GetQuotesForInquiry(r.Context(), inquiryID)
	if err != nil {
		http.Error(w, "Failed to get quotes", http.StatusInternalServerError)
		return
	}

	writeJSON(w, quotes)
}
