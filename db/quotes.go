package db

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
)

// Quote (Коммерческое предложение), неизменяемо после создания
type Quote struct {
	ID               int             `db:"id" json:"id"`
	InquiryID        int             `db:"inquiry_id" json:"inquiryId"`
	SupplierID       int             `db:"supplier_id" json:"supplierId"`
	PricePerUnit     decimal.Decimal `db:"price_per_unit" json:"pricePerUnit"`
	TotalPrice       decimal.Decimal `db:"total_price" json:"totalPrice"`
	DeliveryTimeDays int             `db:"delivery_time_days" json:"deliveryTimeDays"`
	Notes            *string         `db:"notes" json:"notes"`
	CreatedAt        time.Time       `db:"created_at" json:"createdAt"`
}

// QuoteWithSupplier — предложение вместе с реквизитами поставщика
type QuoteWithSupplier struct {
	Quote
	SupplierCompanyName   string  `db:"supplier_company_name" json:"supplierCompanyName"`
	SupplierContactPerson string  `db:"supplier_contact_person" json:"supplierContactPerson"`
	SupplierPhone         *string `db:"supplier_phone" json:"supplierPhone"`
	SupplierLocation      string  `db:"supplier_location" json:"supplierLocation"`
	SupplierWebsite       *string `db:"supplier_website" json:"supplierWebsite"`
}

// CreateQuote вставляет предложение и переводит запрос pending -> responded
// (только из pending, повторные предложения статус не трогают) в одной транзакции
func (s *Storage) CreateQuote(ctx context.Context, q *Quote) error {
	q.PricePerUnit = q.PricePerUnit.Round(2)
	q.TotalPrice = q.TotalPrice.Round(2)

	tx, err := s.db.BeginTxx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	query := `
        INSERT INTO quotes
            (inquiry_id, supplier_id, price_per_unit, total_price, delivery_time_days, notes)
        VALUES
            ($1, $2, $3, $4, $5, $6)
        RETURNING id, created_at`
	err = tx.QueryRowContext(ctx, query,
		q.InquiryID, q.SupplierID, q.PricePerUnit, q.TotalPrice, q.DeliveryTimeDays, q.Notes).
		Scan(&q.ID, &q.CreatedAt)
	if err != nil {
		return err
	}

	_, err = tx.ExecContext(ctx,
		`UPDATE inquiries SET status='responded', updated_at=NOW() WHERE id=$1 AND status='pending'`,
		q.InquiryID)
	if err != nil {
		return err
	}

	return tx.Commit()
}

func (s *Storage) GetQuotesForInquiry(ctx context.Context, inquiryID int) ([]QuoteWithSupplier, error) {
	quotes := []QuoteWithSupplier{}
	query := `
        SELECT q.*,
               u.company_name AS supplier_company_name,
               u.contact_person AS supplier_contact_person,
               u.phone AS supplier_phone,
               u.location AS supplier_location,
               u.website AS supplier_website
        FROM quotes q
        JOIN users u ON u.id = q.supplier_id
        WHERE q.inquiry_id = $1
        ORDER BY q.created_at DESC`
	err := s.db.SelectContext(ctx, &quotes, query, inquiryID)
	return quotes, err
}
