package db

import (
	"context"
	"time"
)

// User (Пользователь)
type User struct {
	ID            int       `db:"id" json:"id"`
	Email         string    `db:"email" json:"email"`
	PasswordHash  string    `db:"password_hash" json:"-"`
	CompanyName   string    `db:"company_name" json:"companyName"`
	ContactPerson string    `db:"contact_person" json:"contactPerson"`
	Phone         *string   `db:"phone" json:"phone"`
	Role          string    `db:"role" json:"role"`
	Location      string    `db:"location" json:"location"`
	Description   *string   `db:"description" json:"description"`
	Website       *string   `db:"website" json:"website"`
	CreatedAt     time.Time `db:"created_at" json:"createdAt"`
	UpdatedAt     time.Time `db:"updated_at" json:"-"`
}

func (s *Storage) CreateUser(ctx context.Context, u *User) error {
	query := `
        INSERT INTO users
            (email, password_hash, company_name, contact_person, phone, role, location, description, website)
        VALUES
            ($1, $2, $3, $4, $5, $6, $7, $8, $9)
        RETURNING id, created_at, updated_at`
	return s.db.QueryRowContext(ctx, query,
		u.Email, u.PasswordHash, u.CompanyName, u.ContactPerson, u.Phone,
		u.Role, u.Location, u.Description, u.Website).
		Scan(&u.ID, &u.CreatedAt, &u.UpdatedAt)
}

func (s *Storage) GetUser(ctx context.Context, id int) (*User, error) {
	u := &User{}
	query := `SELECT * FROM users WHERE id=$1`
	err := s.db.GetContext(ctx, u, query, id)
	return u, err
}

// UpdateUser перезаписывает изменяемые поля (роль и email не меняются)
func (s *Storage) UpdateUser(ctx context.Context, u *User) error {
	query := `
        UPDATE users
        SET company_name=$1, contact_person=$2, phone=$3, location=$4,
            description=$5, website=$6, updated_at=NOW()
        WHERE id=$7
        RETURNING updated_at`
	return s.db.QueryRowContext(ctx, query,
		u.CompanyName, u.ContactPerson, u.Phone, u.Location,
		u.Description, u.Website, u.ID).
		Scan(&u.UpdatedAt)
}
