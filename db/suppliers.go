package db

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/lib/pq"
	"github.com/shopspring/decimal"
)

// SupplierProfile (Профиль поставщика), один на пользователя с ролью supplier
type SupplierProfile struct {
	ID               int                 `db:"id" json:"id"`
	UserID           int                 `db:"user_id" json:"userId"`
	PackagingTypes   pq.StringArray      `db:"packaging_types" json:"packagingTypes"`
	Materials        pq.StringArray      `db:"materials" json:"materials"`
	Certifications   pq.StringArray      `db:"certifications" json:"certifications"`
	MinOrderQuantity int                 `db:"min_order_quantity" json:"minOrderQuantity"`
	Personalization  bool                `db:"personalization" json:"personalization"`
	PriceRangeMin    decimal.NullDecimal `db:"price_range_min" json:"priceRangeMin"`
	PriceRangeMax    decimal.NullDecimal `db:"price_range_max" json:"priceRangeMax"`
	DeliveryTimeDays int                 `db:"delivery_time_days" json:"deliveryTimeDays"`
	CreatedAt        time.Time           `db:"created_at" json:"createdAt"`
	UpdatedAt        time.Time           `db:"updated_at" json:"-"`
}

func (s *Storage) CreateSupplierProfile(ctx context.Context, p *SupplierProfile) error {
	p.PriceRangeMin = roundNull(p.PriceRangeMin)
	p.PriceRangeMax = roundNull(p.PriceRangeMax)
	query := `
        INSERT INTO supplier_profiles
            (user_id, packaging_types, materials, certifications, min_order_quantity,
             personalization, price_range_min, price_range_max, delivery_time_days)
        VALUES
            ($1, $2, $3, $4, $5, $6, $7, $8, $9)
        RETURNING id, created_at, updated_at`
	return s.db.QueryRowContext(ctx, query,
		p.UserID, p.PackagingTypes, p.Materials, p.Certifications, p.MinOrderQuantity,
		p.Personalization, p.PriceRangeMin, p.PriceRangeMax, p.DeliveryTimeDays).
		Scan(&p.ID, &p.CreatedAt, &p.UpdatedAt)
}

func (s *Storage) GetSupplierProfile(ctx context.Context, id int) (*SupplierProfile, error) {
	p := &SupplierProfile{}
	query := `SELECT * FROM supplier_profiles WHERE id=$1`
	err := s.db.GetContext(ctx, p, query, id)
	return p, err
}

func (s *Storage) GetSupplierProfileByUserID(ctx context.Context, userID int) (*SupplierProfile, error) {
	p := &SupplierProfile{}
	query := `SELECT * FROM supplier_profiles WHERE user_id=$1`
	err := s.db.GetContext(ctx, p, query, userID)
	return p, err
}

func (s *Storage) UpdateSupplierProfile(ctx context.Context, p *SupplierProfile) error {
	p.PriceRangeMin = roundNull(p.PriceRangeMin)
	p.PriceRangeMax = roundNull(p.PriceRangeMax)
	query := `
        UPDATE supplier_profiles
        SET packaging_types=$1, materials=$2, certifications=$3, min_order_quantity=$4,
            personalization=$5, price_range_min=$6, price_range_max=$7,
            delivery_time_days=$8, updated_at=NOW()
        WHERE id=$9
        RETURNING updated_at`
	return s.db.QueryRowContext(ctx, query,
		p.PackagingTypes, p.Materials, p.Certifications, p.MinOrderQuantity,
		p.Personalization, p.PriceRangeMin, p.PriceRangeMax, p.DeliveryTimeDays, p.ID).
		Scan(&p.UpdatedAt)
}

func roundNull(d decimal.NullDecimal) decimal.NullDecimal {
	if d.Valid {
		d.Decimal = d.Decimal.Round(2)
	}
	return d
}

// SupplierSearchFilter — все условия поиска объединяются через AND
type SupplierSearchFilter struct {
	PackagingTypes  []string
	Materials       []string
	Location        string
	MaxMinOrderQty  *int
	Personalization *bool
	Certifications  []string
	MaxPrice        *decimal.Decimal
	MaxDeliveryDays *int
}

// SupplierSearchResult — поставщик вместе с данными профиля
type SupplierSearchResult struct {
	User
	Profile SupplierProfile `json:"supplierProfile"`
}

// строки результата поиска в плоском виде для sqlx
type supplierSearchRow struct {
	User
	ProfileID        int                 `db:"profile_id"`
	PackagingTypes   pq.StringArray      `db:"packaging_types"`
	Materials        pq.StringArray      `db:"materials"`
	Certifications   pq.StringArray      `db:"certifications"`
	MinOrderQuantity int                 `db:"min_order_quantity"`
	Personalization  bool                `db:"personalization"`
	PriceRangeMin    decimal.NullDecimal `db:"price_range_min"`
	PriceRangeMax    decimal.NullDecimal `db:"price_range_max"`
	DeliveryTimeDays int                 `db:"delivery_time_days"`
	ProfileCreatedAt time.Time           `db:"profile_created_at"`
}

// buildSupplierSearchQuery собирает SELECT с нумерованными placeholder-ами
// по заданным фильтрам: базовый запрос плюс условия через AND
func buildSupplierSearchQuery(f SupplierSearchFilter) (string, []interface{}) {
	base := `
        SELECT u.id, u.email, u.password_hash, u.company_name, u.contact_person, u.phone,
               u.role, u.location, u.description, u.website, u.created_at, u.updated_at,
               p.id AS profile_id, p.packaging_types, p.materials, p.certifications,
               p.min_order_quantity, p.personalization, p.price_range_min, p.price_range_max,
               p.delivery_time_days, p.created_at AS profile_created_at
        FROM users u
        JOIN supplier_profiles p ON p.user_id = u.id`

	conditions := []string{"u.role = 'supplier'"}
	var args []interface{}

	if len(f.PackagingTypes) > 0 {
		args = append(args, pq.StringArray(f.PackagingTypes))
		conditions = append(conditions, fmt.Sprintf("p.packaging_types && $%d", len(args)))
	}
	if len(f.Materials) > 0 {
		args = append(args, pq.StringArray(f.Materials))
		conditions = append(conditions, fmt.Sprintf("p.materials && $%d", len(args)))
	}
	if f.Location != "" {
		args = append(args, "%"+f.Location+"%")
		conditions = append(conditions, fmt.Sprintf("u.location ILIKE $%d", len(args)))
	}
	if f.MaxMinOrderQty != nil {
		args = append(args, *f.MaxMinOrderQty)
		conditions = append(conditions, fmt.Sprintf("p.min_order_quantity <= $%d", len(args)))
	}
	if f.Personalization != nil {
		args = append(args, *f.Personalization)
		conditions = append(conditions, fmt.Sprintf("p.personalization = $%d", len(args)))
	}
	if len(f.Certifications) > 0 {
		args = append(args, pq.StringArray(f.Certifications))
		conditions = append(conditions, fmt.Sprintf("p.certifications @> $%d", len(args)))
	}
	if f.MaxPrice != nil {
		args = append(args, *f.MaxPrice)
		conditions = append(conditions, fmt.Sprintf("(p.price_range_min IS NULL OR p.price_range_min <= $%d)", len(args)))
	}
	if f.MaxDeliveryDays != nil {
		args = append(args, *f.MaxDeliveryDays)
		conditions = append(conditions, fmt.Sprintf("p.delivery_time_days <= $%d", len(args)))
	}

	query := base + "\n        WHERE " + strings.Join(conditions, " AND ") +
		"\n        ORDER BY u.company_name ASC"
	return query, args
}

func (s *Storage) SearchSuppliers(ctx context.Context, f SupplierSearchFilter) ([]SupplierSearchResult, error) {
	query, args := buildSupplierSearchQuery(f)

	rows := []supplierSearchRow{}
	if err := s.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, err
	}

	results := make([]SupplierSearchResult, 0, len(rows))
	for _, r := range rows {
		results = append(results, SupplierSearchResult{
			User: r.User,
			Profile: SupplierProfile{
				ID:               r.ProfileID,
				UserID:           r.User.ID,
				PackagingTypes:   r.PackagingTypes,
				Materials:        r.Materials,
				Certifications:   r.Certifications,
				MinOrderQuantity: r.MinOrderQuantity,
				Personalization:  r.Personalization,
				PriceRangeMin:    r.PriceRangeMin,
				PriceRangeMax:    r.PriceRangeMax,
				DeliveryTimeDays: r.DeliveryTimeDays,
				CreatedAt:        r.ProfileCreatedAt,
			},
		})
	}
	return results, nil
}
