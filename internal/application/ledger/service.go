// Package ledger applies the business operations that touch several tables at once:
// units, contracts, installment payments and safe movements. Each operation runs as a
// single transaction; writes are serialized through the service.
package ledger

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"
	"time"

	"estate-backend/internal/application/schedule"
	"estate-backend/internal/domain"
	"estate-backend/internal/pkg/apperror"
	"estate-backend/internal/pkg/money"
	"estate-backend/internal/pkg/validation"

	"gorm.io/datatypes"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// Options tune behavior the business owner has not settled yet.
type Options struct {
	Schedule schedule.Options
	// ReverseOnDelete posts a compensating payment for every receipt of a deleted
	// contract. Off by default: deleting a contract leaves its postings in place.
	ReverseOnDelete bool
}

type Service struct {
	DB      *gorm.DB
	Options Options
	// Now is the clock used for dates the caller does not supply. Defaults to time.Now.
	Now func() time.Time

	mu sync.Mutex
}

func NewService(db *gorm.DB, opts Options) *Service {
	return &Service{DB: db, Options: opts, Now: time.Now}
}

func (s *Service) today() string {
	now := time.Now
	if s.Now != nil {
		now = s.Now
	}
	return now().UTC().Format(validation.DateLayout)
}

// write runs fn in one transaction. Only one write runs at a time.
func (s *Service) write(ctx context.Context, fn func(tx *gorm.DB) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return apperror.Storage(s.DB.WithContext(ctx).Transaction(fn))
}

func forUpdate(tx *gorm.DB) *gorm.DB {
	return tx.Clauses(clause.Locking{Strength: "UPDATE"})
}

// find loads the row with the given id, mapping a miss to a NotFound error.
func find[T any](tx *gorm.DB, id, notFound string) (*T, error) {
	var v T
	if id == "" {
		return nil, apperror.NotFound(notFound)
	}
	if err := tx.Where("id = ?", id).First(&v).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperror.NotFound(notFound)
		}
		return nil, err
	}
	return &v, nil
}

// post appends v and moves its safe's balance by the voucher's signed amount, keeping
// balance == Σ vouchers. With requireFunds a payment may not overdraw the safe.
func post(tx *gorm.DB, v *domain.Voucher, requireFunds bool) error {
	safe, err := find[domain.Safe](forUpdate(tx), v.SafeID, "Safe not found")
	if err != nil {
		return err
	}
	v.Amount = money.Round2(v.Amount)
	if v.Amount <= 0 {
		return apperror.Validation("Voucher amount must be at least 0.01")
	}
	balance := money.Round2(safe.Balance + v.Signed())
	if requireFunds && balance < 0 {
		return apperror.BusinessRule(fmt.Sprintf("Insufficient balance in safe %s", safe.Name))
	}
	if err := tx.Model(safe).Update("balance", balance).Error; err != nil {
		return err
	}
	return tx.Create(v).Error
}

func audit(tx *gorm.DB, description string, details map[string]interface{}) error {
	b, err := json.Marshal(details)
	if err != nil {
		return err
	}
	return tx.Create(&domain.AuditLog{Description: description, Details: datatypes.JSON(b)}).Error
}

func requireDate(field, value string) error {
	if !validation.IsValidDate(value) {
		return apperror.Validation(field + " must be a date in YYYY-MM-DD format")
	}
	return nil
}
