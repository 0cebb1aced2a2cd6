// Package catalog manages the reference records the ledger points at: customers,
// partners, partner groups, brokers and partner debts.
package catalog

import (
	"context"
	"errors"
	"fmt"

	"estate-backend/internal/pkg/apperror"

	"gorm.io/gorm"
)

type Service struct {
	DB *gorm.DB
}

// Fields maps accepted JSON keys to their columns.
type Fields map[string]string

var (
	CustomerFields = Fields{
		"name": "name", "phone": "phone", "nationalId": "national_id",
		"address": "address", "status": "status", "notes": "notes",
	}
	PartnerFields     = Fields{"name": "name", "phone": "phone"}
	BrokerFields      = Fields{"name": "name", "phone": "phone", "notes": "notes"}
	PartnerDebtFields = Fields{
		"unitId": "unit_id", "payingPartnerId": "paying_partner_id", "owedPartnerId": "owed_partner_id",
		"amount": "amount", "dueDate": "due_date",
	}
)

// columns keeps the allowed keys of body, renamed to columns. Unknown keys are an error.
func (f Fields) columns(body map[string]interface{}) (map[string]interface{}, error) {
	out := make(map[string]interface{}, len(body))
	for k, v := range body {
		if k == "id" {
			continue
		}
		col, ok := f[k]
		if !ok {
			return nil, apperror.Validation(fmt.Sprintf("Unknown field %q", k))
		}
		out[col] = v
	}
	if len(out) == 0 {
		return nil, apperror.Validation("No fields to update")
	}
	return out, nil
}

func list[T any](ctx context.Context, db *gorm.DB, order string) ([]T, error) {
	var out []T
	if err := db.WithContext(ctx).Order(order).Find(&out).Error; err != nil {
		return nil, apperror.Storage(err)
	}
	return out, nil
}

func get[T any](tx *gorm.DB, id, notFound string) (*T, error) {
	var v T
	if err := tx.Where("id = ?", id).First(&v).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperror.NotFound(notFound)
		}
		return nil, err
	}
	return &v, nil
}

// update applies the allowlisted body to row id and returns the stored row.
func update[T any](ctx context.Context, db *gorm.DB, id string, body map[string]interface{}, fields Fields, notFound string, check func(tx *gorm.DB, row *T) error) (*T, error) {
	cols, err := fields.columns(body)
	if err != nil {
		return nil, err
	}
	var row *T
	err = db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		current, err := get[T](tx, id, notFound)
		if err != nil {
			return err
		}
		if err := tx.Model(current).Updates(cols).Error; err != nil {
			return err
		}
		if row, err = get[T](tx, id, notFound); err != nil {
			return err
		}
		if check != nil {
			return check(tx, row)
		}
		return nil
	})
	if err != nil {
		return nil, apperror.Storage(err)
	}
	return row, nil
}

// remove deletes row id unless guard objects.
func remove[T any](ctx context.Context, db *gorm.DB, id, notFound string, guard func(tx *gorm.DB, row *T) error) error {
	return apperror.Storage(db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		row, err := get[T](tx, id, notFound)
		if err != nil {
			return err
		}
		if guard != nil {
			if err := guard(tx, row); err != nil {
				return err
			}
		}
		return tx.Delete(row).Error
	}))
}

// refused returns a BusinessRule error when the query matches any row.
func refused(q *gorm.DB, msg string) error {
	var n int64
	if err := q.Count(&n).Error; err != nil {
		return err
	}
	if n > 0 {
		return apperror.BusinessRule(msg)
	}
	return nil
}
