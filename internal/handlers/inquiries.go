package handlers

import (
	"fmt"
	"net/http"
	"time"

	"github.com/shopspring/decimal"

	"packmarket/db"
	"packmarket/models"
)

type createInquiryInput struct {
	BuyerID          int              `json:"buyerId" validate:"required"`
	SupplierIDs      []int            `json:"supplierIds"`
	PackagingType    string           `json:"packagingType" validate:"required"`
	Material         string           `json:"material" validate:"required"`
	Quantity         int              `json:"quantity" validate:"required,gt=0"`
	Personalization  bool             `json:"personalization"`
	Description      string           `json:"description" validate:"required,max=2000"`
	BudgetMin        *decimal.Decimal `json:"budgetMin"`
	BudgetMax        *decimal.Decimal `json:"budgetMax"`
	DeliveryDeadline *time.Time       `json:"deliveryDeadline"`
}

// CreateInquiryHandler обрабатывает POST /api/inquiries/new.
// Все перечисленные поставщики проверяются до каких-либо записей:
// любой отсутствующий или с неверной ролью отменяет операцию целиком.
// Повторы в supplierIds схлопываются, рассылка идёт по уникальным id.
func (h *Handler) CreateInquiryHandler(w http.ResponseWriter, r *http.Request) {
	var input createInquiryInput
	if err := readJSON(w, r, &input); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	if err := h.validate.Struct(input); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	if !models.IsPackagingType(input.PackagingType) {
		http.Error(w, fmt.Sprintf("unknown packaging type %q", input.PackagingType), http.StatusBadRequest)
		return
	}
	if !models.IsMaterialType(input.Material) {
		http.Error(w, fmt.Sprintf("unknown material %q", input.Material), http.StatusBadRequest)
		return
	}
	if input.BudgetMin != nil && input.BudgetMax != nil &&
		input.BudgetMin.GreaterThan(*input.BudgetMax) {
		http.Error(w, "budgetMin must not exceed budgetMax", http.StatusBadRequest)
		return
	}

	buyer, err := h.Store.GetUser(r.Context(), input.BuyerID)
	if err != nil {
		if db.IsNotFound(err) {
			http.Error(w, "buyer not found", http.StatusNotFound)
			return
		}
		http.Error(w, "Failed to get buyer", http.StatusInternalServerError)
		return
	}
	if buyer.Role != models.RoleBuyer {
		http.Error(w, fmt.Sprintf("user %d is not a buyer", buyer.ID), http.StatusConflict)
		return
	}

	seen := make(map[int]bool, len(input.SupplierIDs))
	supplierIDs := make([]int, 0, len(input.SupplierIDs))
	for _, supplierID := range input.SupplierIDs {
		if seen[supplierID] {
			continue
		}
		seen[supplierID] = true

		supplier, err := h.Store.GetUser(r.Context(), supplierID)
		if err != nil {
			if db.IsNotFound(err) {
				http.Error(w, fmt.Sprintf("supplier %d not found", supplierID), http.StatusNotFound)
				return
			}
			http.Error(w, "Failed to get supplier", http.StatusInternalServerError)
			return
		}
		if supplier.Role != models.RoleSupplier {
			http.Error(w, fmt.Sprintf("user %d is not a supplier", supplierID), http.StatusConflict)
			return
		}
		supplierIDs = append(supplierIDs, supplierID)
	}

	inquiry := db.Inquiry{
		BuyerID:          input.BuyerID,
		PackagingType:    input.PackagingType,
		Material:         input.Material,
		Quantity:         input.Quantity,
		Personalization:  input.Personalization,
		Description:      input.Description,
		BudgetMin:        nullDecimal(input.BudgetMin),
		BudgetMax:        nullDecimal(input.BudgetMax),
		DeliveryDeadline: input.DeliveryDeadline,
	}

	if err := h.Store.CreateInquiry(r.Context(), &inquiry, supplierIDs); err != nil {
		http.Error(w, "Failed to create inquiry", http.StatusInternalServerError)
		return
	}

	writeJSON(w, inquiry)
}

// GetInquiriesForBuyerHandler обрабатывает GET /api/inquiries/buyer/{buyerId}
func (h *Handler) GetInquiriesForBuyerHandler(w http.ResponseWriter, r *http.Request) {
	buyerID, err := urlParamInt(r, "buyerId")
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	inquiries, err := h.Store.GetInquiriesForBuyer(r.Context(), buyerID)
	if err != nil {
		http.Error(w, "Failed to get inquiries", http.StatusInternalServerError)
		return
	}

	writeJSON(w, inquiries)
}

// GetInquiriesForSupplierHandler обрабатывает GET /api/inquiries/supplier/{supplierId}
func (h *Handler) GetInquiriesForSupplierHandler(w http.ResponseWriter, r *http.Request) {
	supplierID, err := urlParamInt(r, "supplierId")
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	inquiries, err := h.Store.GetInquiriesForSupplier(r.Context(), supplierID)
	if err != nil {
		http.Error(w, "Failed to get inquiries", http.StatusInternalServerError)
		return
	}

	writeJSON(w, inquiries)
}

// UpdateInquiryStatusHandler обрабатывает PUT /api/inquiries/{inquiryId}/status.
// Статус движется только вперёд по [pending, responded, closed];
// повтор текущего статуса разрешён и лишь обновляет updated_at.
func (h *Handler) UpdateInquiryStatusHandler(w http.ResponseWriter, r *http.Request) {
	inquiryID, err := urlParamInt(r, "inquiryId")
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	status := r.URL.Query().Get("status")
	if !models.IsStatus(status) {
		http.Error(w, "invalid status value", http.StatusBadRequest)
		return
	}

	// Переход проверяется по прочитанному статусу, а запись условна по нему же:
	// если статус успели поменять параллельно, перечитываем и проверяем заново.
	// Статус движется только вперёд, поэтому перечитывание не зацикливается.
	for {
		inquiry, err := h.Store.GetInquiry(r.Context(), inquiryID)
		if err != nil {
			if db.IsNotFound(err) {
				http.Error(w, "inquiry not found", http.StatusNotFound)
				return
			}
			http.Error(w, "Failed to get inquiry", http.StatusInternalServerError)
			return
		}

		if err := db.ValidateStatusTransition(inquiry.Status, status); err != nil {
			http.Error(w, err.Error(), http.StatusConflict)
			return
		}

		err = h.Store.UpdateInquiryStatus(r.Context(), inquiry, status)
		if db.IsNotFound(err) {
			continue
		}
		if err != nil {
			http.Error(w, "Failed to update inquiry status", http.StatusInternalServerError)
			return
		}

		writeJSON(w, inquiry)
		return
	}
}
