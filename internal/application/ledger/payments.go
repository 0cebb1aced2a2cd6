package ledger

import (
	"context"
	"errors"
	"math"

	"estate-backend/internal/domain"
	"estate-backend/internal/pkg/apperror"
	"estate-backend/internal/pkg/money"

	"github.com/rs/zerolog/log"
	"gorm.io/gorm"
)

type PayInstallmentInput struct {
	Amount float64 `json:"amount"`
	SafeID string  `json:"safeId"`
	Date   string  `json:"date"`
}

type PaymentResult struct {
	InstallmentID string  `json:"installmentId"`
	PaidAmount    float64 `json:"paidAmount"`
	Remaining     float64 `json:"remaining"`
	Status        string  `json:"status"`
	VoucherID     string  `json:"voucherId"`
}

// PayInstallment applies a payment to one installment and books it into a safe.
// Payments above the amount due are capped; the excess is not recorded.
func (s *Service) PayInstallment(ctx context.Context, id string, in PayInstallmentInput) (*PaymentResult, error) {
	if money.Round2(in.Amount) <= 0 || in.SafeID == "" {
		return nil, apperror.Validation("Incomplete payment data: amount and safeId are required")
	}
	if err := requireDate("date", in.Date); err != nil {
		return nil, err
	}

	var result PaymentResult
	err := s.write(ctx, func(tx *gorm.DB) error {
		inst, err := find[domain.Installment](forUpdate(tx), id, "Installment not found")
		if err != nil {
			return err
		}
		if inst.Status == domain.InstallmentPaid {
			return apperror.BusinessRule("Installment is already paid")
		}

		paid := money.Round2(math.Min(in.Amount, inst.Amount))
		remaining := money.Round2(inst.Amount - paid)
		status := domain.InstallmentPartiallyPaid
		if money.Settled(remaining) {
			status = domain.InstallmentPaid
			remaining = 0
		}
		if err := tx.Model(inst).Updates(map[string]interface{}{
			"amount":       remaining,
			"status":       status,
			"payment_date": in.Date,
		}).Error; err != nil {
			return err
		}

		var unitName, payer string
		unit, err := find[domain.Unit](tx, inst.UnitID, "Unit not found")
		switch {
		case err == nil:
			unitName = unit.Name
		case apperror.KindOf(err) != apperror.KindNotFound:
			return err
		}
		var contract domain.Contract
		err = tx.Where("unit_id = ?", inst.UnitID).First(&contract).Error
		switch {
		case err == nil:
			var customer domain.Customer
			if err := tx.Where("id = ?", contract.CustomerID).Limit(1).Find(&customer).Error; err != nil {
				return err
			}
			payer = customer.Name
		case !errors.Is(err, gorm.ErrRecordNotFound):
			return err
		}

		v := domain.Voucher{
			Type:        domain.VoucherReceipt,
			Date:        in.Date,
			Amount:      paid,
			SafeID:      in.SafeID,
			Description: "Installment payment for unit " + unitName,
			Payer:       payer,
			LinkedRef:   inst.ID,
		}
		if err := post(tx, &v, false); err != nil {
			return err
		}

		result = PaymentResult{
			InstallmentID: inst.ID,
			PaidAmount:    paid,
			Remaining:     remaining,
			Status:        status,
			VoucherID:     v.ID,
		}
		return audit(tx, "Installment paid", map[string]interface{}{
			"installmentId": inst.ID,
			"amount":        paid,
			"safeId":        in.SafeID,
			"status":        status,
		})
	})
	if err != nil {
		return nil, err
	}
	log.Info().
		Str("installment_id", id).
		Float64("paid", result.PaidAmount).
		Str("status", result.Status).
		Msg("Installment paid")
	return &result, nil
}
