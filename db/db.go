package db

import (
	"database/sql"
	"errors"
	"fmt"

	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
	"github.com/shopspring/decimal"

	"packmarket/models"
)

type Storage struct {
	db *sqlx.DB
}

func NewStorage(db *sqlx.DB) *Storage {
	return &Storage{db: db}
}

func init() {
	// Денежные поля ходят по проводу числами, в БД лежат строками NUMERIC(12,2)
	decimal.MarshalJSONWithoutQuotes = true
}

// Ранги статусов запроса: переход допустим только на тот же или больший ранг
var statusRank = map[string]int{
	models.StatusPending:   0,
	models.StatusResponded: 1,
	models.StatusClosed:    2,
}

// TransitionError — попытка отката статуса запроса назад
type TransitionError struct {
	From string
	To   string
}

func (e *TransitionError) Error() string {
	return fmt.Sprintf("cannot move inquiry from %s back to %s", e.From, e.To)
}

// ValidateStatusTransition проверяет переход статуса; одинаковый статус — no-op
func ValidateStatusTransition(from, to string) error {
	if statusRank[to] < statusRank[from] {
		return &TransitionError{From: from, To: to}
	}
	return nil
}

// IsNotFound сообщает, что запись не найдена
func IsNotFound(err error) bool {
	return errors.Is(err, sql.ErrNoRows)
}

// IsUniqueViolation сообщает о нарушении уникального ограничения (код 23505)
func IsUniqueViolation(err error) bool {
	var pqErr *pq.Error
	return errors.As(err, &pqErr) && pqErr.Code == "23505"
}
