package handlers

import (
	"encoding/json"

	"github.com/shopspring/decimal"
)

// OptString различает для PATCH три случая: поле не передано (Set=false),
// передан явный null (Set=true, Valid=false) и передано значение
type OptString struct {
	Set   bool
	Valid bool
	Value string
}

func (o *OptString) UnmarshalJSON(data []byte) error {
	o.Set = true
	if string(data) == "null" {
		return nil
	}
	if err := json.Unmarshal(data, &o.Value); err != nil {
		return err
	}
	o.Valid = true
	return nil
}

// OptDecimal — то же самое для денежных полей
type OptDecimal struct {
	Set   bool
	Valid bool
	Value decimal.Decimal
}

func (o *OptDecimal) UnmarshalJSON(data []byte) error {
	o.Set = true
	if string(data) == "null" {
		return nil
	}
	if err := json.Unmarshal(data, &o.Value); err != nil {
		return err
	}
	o.Valid = true
	return nil
}
