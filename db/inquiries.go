package db

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
)

// Inquiry (Запрос на упаковку)
type Inquiry struct {
	ID               int                 `db:"id" json:"id"`
	BuyerID          int                 `db:"buyer_id" json:"buyerId"`
	PackagingType    string              `db:"packaging_type" json:"packagingType"`
	Material         string              `db:"material" json:"material"`
	Quantity         int                 `db:"quantity" json:"quantity"`
	Personalization  bool                `db:"personalization" json:"personalization"`
	Description      string              `db:"description" json:"description"`
	BudgetMin        decimal.NullDecimal `db:"budget_min" json:"budgetMin"`
	BudgetMax        decimal.NullDecimal `db:"budget_max" json:"budgetMax"`
	DeliveryDeadline *time.Time          `db:"delivery_deadline" json:"deliveryDeadline"`
	Status           string              `db:"status" json:"status"`
	CreatedAt        time.Time           `db:"created_at" json:"createdAt"`
	UpdatedAt        time.Time           `db:"updated_at" json:"updatedAt"`
}

// CreateInquiry вставляет запрос и его рассылку поставщикам в одной транзакции:
// при ошибке на любом шаге не остаётся частичного состояния
func (s *Storage) CreateInquiry(ctx context.Context, inq *Inquiry, supplierIDs []int) error {
	inq.BudgetMin = roundNull(inq.BudgetMin)
	inq.BudgetMax = roundNull(inq.BudgetMax)

	tx, err := s.db.BeginTxx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	query := `
        INSERT INTO inquiries
            (buyer_id, packaging_type, material, quantity, personalization,
             description, budget_min, budget_max, delivery_deadline, status)
        VALUES
            ($1, $2, $3, $4, $5, $6, $7, $8, $9, 'pending')
        RETURNING id, status, created_at, updated_at`
	err = tx.QueryRowContext(ctx, query,
		inq.BuyerID, inq.PackagingType, inq.Material, inq.Quantity, inq.Personalization,
		inq.Description, inq.BudgetMin, inq.BudgetMax, inq.DeliveryDeadline).
		Scan(&inq.ID, &inq.Status, &inq.CreatedAt, &inq.UpdatedAt)
	if err != nil {
		return err
	}

	for _, supplierID := range supplierIDs {
		_, err = tx.ExecContext(ctx,
			`INSERT INTO inquiry_suppliers (inquiry_id, supplier_id, sent_at) VALUES ($1, $2, NOW())`,
			inq.ID, supplierID)
		if err != nil {
			return err
		}
	}

	return tx.Commit()
}

func (s *Storage) GetInquiry(ctx context.Context, id int) (*Inquiry, error) {
	inq := &Inquiry{}
	query := `SELECT * FROM inquiries WHERE id=$1`
	err := s.db.GetContext(ctx, inq, query, id)
	return inq, err
}

func (s *Storage) GetInquiriesForBuyer(ctx context.Context, buyerID int) ([]Inquiry, error) {
	inquiries := []Inquiry{}
	query := `
        SELECT * FROM inquiries
        WHERE buyer_id = $1
        ORDER BY created_at DESC`
	err := s.db.SelectContext(ctx, &inquiries, query, buyerID)
	return inquiries, err
}

func (s *Storage) GetInquiriesForSupplier(ctx context.Context, supplierID int) ([]Inquiry, error) {
	inquiries := []Inquiry{}
	query := `
        SELECT i.* FROM inquiries i
        JOIN inquiry_suppliers isup ON isup.inquiry_id = i.id
        WHERE isup.supplier_id = $1
        ORDER BY i.created_at DESC`
	err := s.db.SelectContext(ctx, &inquiries, query, supplierID)
	return inquiries, err
}

// UpdateInquiryStatus ставит новый статус при условии, что текущий статус
// совпадает с прочитанным в inq (проверка перехода делается до вызова).
// Если статус успели поменять параллельно, возвращает sql.ErrNoRows
func (s *Storage) UpdateInquiryStatus(ctx context.Context, inq *Inquiry, status string) error {
	query := `
        UPDATE inquiries
        SET status=$1, updated_at=NOW()
        WHERE id=$2 AND status=$3
        RETURNING status, updated_at`
	return s.db.QueryRowContext(ctx, query, status, inq.ID, inq.Status).
		Scan(&inq.Status, &inq.UpdatedAt)
}

// IsSupplierInvited проверяет, что запрос рассылался этому поставщику
func (s *Storage) IsSupplierInvited(ctx context.Context, inquiryID, supplierID int) (bool, error) {
	var count int
	query := `SELECT COUNT(1) FROM inquiry_suppliers WHERE inquiry_id=$1 AND supplier_id=$2`
	err := s.db.GetContext(ctx, &count, query, inquiryID, supplierID)
	if err != nil {
		return false, err
	}
	return count > 0, nil
}
