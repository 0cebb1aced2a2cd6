package ledger

import (
	"context"

	"estate-backend/internal/domain"
	"estate-backend/internal/pkg/apperror"
	"estate-backend/internal/pkg/money"
	"estate-backend/internal/pkg/validation"

	"github.com/rs/zerolog/log"
	"gorm.io/gorm"
)

type CreateSafeInput struct {
	Name           string  `json:"name"`
	OpeningBalance float64 `json:"openingBalance"`
	Date           string  `json:"date"`
}

// CreateSafe opens a cash account. A positive opening balance is booked as a receipt.
func (s *Service) CreateSafe(ctx context.Context, in CreateSafeInput) (*domain.Safe, error) {
	if validation.IsBlank(in.Name) {
		return nil, apperror.Validation("Safe name is required")
	}
	if in.OpeningBalance < 0 {
		return nil, apperror.Validation("openingBalance cannot be negative")
	}
	date := in.Date
	if date == "" {
		date = s.today()
	} else if err := requireDate("date", date); err != nil {
		return nil, err
	}

	safe := domain.Safe{Name: in.Name}
	err := s.write(ctx, func(tx *gorm.DB) error {
		if err := uniqueSafeName(tx, in.Name, ""); err != nil {
			return err
		}
		if err := tx.Create(&safe).Error; err != nil {
			return err
		}
		if money.Round2(in.OpeningBalance) > 0 {
			if err := post(tx, &domain.Voucher{
				Type:        domain.VoucherReceipt,
				Date:        date,
				Amount:      in.OpeningBalance,
				SafeID:      safe.ID,
				Description: "Opening balance",
				LinkedRef:   safe.ID,
			}, false); err != nil {
				return err
			}
		}
		if err := tx.Where("id = ?", safe.ID).First(&safe).Error; err != nil {
			return err
		}
		return audit(tx, "Safe created", map[string]interface{}{"safeId": safe.ID, "openingBalance": safe.Balance})
	})
	if err != nil {
		return nil, err
	}
	log.Info().Str("safe_id", safe.ID).Float64("balance", safe.Balance).Msg("Safe created")
	return &safe, nil
}

func uniqueSafeName(tx *gorm.DB, name, exceptID string) error {
	q := tx.Model(&domain.Safe{}).Where("name = ?", name)
	if exceptID != "" {
		q = q.Where("id <> ?", exceptID)
	}
	var n int64
	if err := q.Count(&n).Error; err != nil {
		return err
	}
	if n > 0 {
		return apperror.BusinessRule("A safe with this name already exists")
	}
	return nil
}

// RenameSafe changes a safe's name. The balance is never writable directly.
func (s *Service) RenameSafe(ctx context.Context, id, name string) (*domain.Safe, error) {
	if validation.IsBlank(name) {
		return nil, apperror.Validation("Safe name is required")
	}
	var safe *domain.Safe
	err := s.write(ctx, func(tx *gorm.DB) error {
		var err error
		if safe, err = find[domain.Safe](forUpdate(tx), id, "Safe not found"); err != nil {
			return err
		}
		if err := uniqueSafeName(tx, name, id); err != nil {
			return err
		}
		safe.Name = name
		if err := tx.Model(safe).Update("name", name).Error; err != nil {
			return err
		}
		return audit(tx, "Safe renamed", map[string]interface{}{"safeId": id, "name": name})
	})
	if err != nil {
		return nil, err
	}
	return safe, nil
}

// DeleteSafe removes a safe that has never been posted to.
func (s *Service) DeleteSafe(ctx context.Context, id string) error {
	return s.write(ctx, func(tx *gorm.DB) error {
		safe, err := find[domain.Safe](forUpdate(tx), id, "Safe not found")
		if err != nil {
			return err
		}
		var n int64
		if err := tx.Model(&domain.Voucher{}).Where("safe_id = ?", id).Count(&n).Error; err != nil {
			return err
		}
		if n > 0 {
			return apperror.BusinessRule("Safe has vouchers and cannot be deleted")
		}
		if err := tx.Delete(safe).Error; err != nil {
			return err
		}
		return audit(tx, "Safe deleted", map[string]interface{}{"safeId": id, "name": safe.Name})
	})
}

type VoucherInput struct {
	Type        string  `json:"type"`
	Amount      float64 `json:"amount"`
	SafeID      string  `json:"safeId"`
	Date        string  `json:"date"`
	Description string  `json:"description"`
	Payer       string  `json:"payer"`
	Beneficiary string  `json:"beneficiary"`
	LinkedRef   string  `json:"linked_ref"`
}

// PostVoucher records a manual receipt or expense against a safe.
func (s *Service) PostVoucher(ctx context.Context, in VoucherInput) (*domain.Voucher, error) {
	if in.Type != domain.VoucherReceipt && in.Type != domain.VoucherPayment {
		return nil, apperror.Validation("type must be receipt or payment")
	}
	if money.Round2(in.Amount) <= 0 || in.SafeID == "" {
		return nil, apperror.Validation("Incomplete voucher data: amount and safeId are required")
	}
	if err := requireDate("date", in.Date); err != nil {
		return nil, err
	}

	v := domain.Voucher{
		Type:        in.Type,
		Date:        in.Date,
		Amount:      in.Amount,
		SafeID:      in.SafeID,
		Description: in.Description,
		Payer:       in.Payer,
		Beneficiary: in.Beneficiary,
		LinkedRef:   in.LinkedRef,
	}
	err := s.write(ctx, func(tx *gorm.DB) error {
		if err := post(tx, &v, v.Type == domain.VoucherPayment); err != nil {
			return err
		}
		return audit(tx, "Voucher posted", map[string]interface{}{
			"voucherId": v.ID, "type": v.Type, "amount": v.Amount, "safeId": v.SafeID,
		})
	})
	if err != nil {
		return nil, err
	}
	log.Info().Str("voucher_id", v.ID).Str("type", v.Type).Float64("amount", v.Amount).Msg("Voucher posted")
	return &v, nil
}

type TransferInput struct {
	FromSafeID string  `json:"fromSafeId"`
	ToSafeID   string  `json:"toSafeId"`
	Amount     float64 `json:"amount"`
	Date       string  `json:"date"`
	Notes      string  `json:"notes"`
}

type TransferResult struct {
	domain.Transfer
	Vouchers []domain.Voucher `json:"vouchers"`
}

// TransferFunds moves cash between two safes as a payment on the source and a receipt on
// the target.
func (s *Service) TransferFunds(ctx context.Context, in TransferInput) (*TransferResult, error) {
	if missing := validation.FirstMissing("fromSafeId", in.FromSafeID, "toSafeId", in.ToSafeID); missing != "" {
		return nil, apperror.Validation("Incomplete transfer data: " + missing + " is required")
	}
	if money.Round2(in.Amount) <= 0 {
		return nil, apperror.Validation("Incomplete transfer data: amount must be a positive number")
	}
	if err := requireDate("date", in.Date); err != nil {
		return nil, err
	}
	if in.FromSafeID == in.ToSafeID {
		return nil, apperror.BusinessRule("Cannot transfer to the same safe")
	}

	var result TransferResult
	err := s.write(ctx, func(tx *gorm.DB) error {
		from, err := find[domain.Safe](tx, in.FromSafeID, "Source safe not found")
		if err != nil {
			return err
		}
		to, err := find[domain.Safe](tx, in.ToSafeID, "Target safe not found")
		if err != nil {
			return err
		}
		result.Transfer = domain.Transfer{
			FromSafeID: from.ID,
			ToSafeID:   to.ID,
			Amount:     in.Amount,
			Date:       in.Date,
			Notes:      in.Notes,
		}
		if err := tx.Create(&result.Transfer).Error; err != nil {
			return err
		}
		payment := domain.Voucher{
			Type:        domain.VoucherPayment,
			Date:        in.Date,
			Amount:      in.Amount,
			SafeID:      from.ID,
			Description: "Transfer to " + to.Name,
			Beneficiary: to.Name,
			LinkedRef:   result.Transfer.ID,
		}
		if err := post(tx, &payment, true); err != nil {
			return err
		}
		receipt := domain.Voucher{
			Type:        domain.VoucherReceipt,
			Date:        in.Date,
			Amount:      in.Amount,
			SafeID:      to.ID,
			Description: "Transfer from " + from.Name,
			Payer:       from.Name,
			LinkedRef:   result.Transfer.ID,
		}
		if err := post(tx, &receipt, false); err != nil {
			return err
		}
		result.Vouchers = []domain.Voucher{payment, receipt}
		return audit(tx, "Funds transferred", map[string]interface{}{
			"transferId": result.Transfer.ID, "from": from.ID, "to": to.ID, "amount": payment.Amount,
		})
	})
	if err != nil {
		return nil, err
	}
	log.Info().Str("transfer_id", result.Transfer.ID).Float64("amount", in.Amount).Msg("Funds transferred")
	return &result, nil
}

type SettleInput struct {
	SafeID string `json:"safeId"`
	Date   string `json:"date"`
}

// PayBrokerDue pays a pending broker commission out of a safe.
func (s *Service) PayBrokerDue(ctx context.Context, id string, in SettleInput) (*domain.BrokerDue, error) {
	if in.SafeID == "" {
		return nil, apperror.Validation("safeId is required")
	}
	if err := requireDate("date", in.Date); err != nil {
		return nil, err
	}

	var due *domain.BrokerDue
	err := s.write(ctx, func(tx *gorm.DB) error {
		var err error
		if due, err = find[domain.BrokerDue](forUpdate(tx), id, "Broker due not found"); err != nil {
			return err
		}
		if due.Status == domain.BrokerDuePaid {
			return apperror.BusinessRule("Broker due is already paid")
		}
		ref := due.ContractID
		if ref == "" {
			ref = due.ID
		}
		if err := post(tx, &domain.Voucher{
			Type:        domain.VoucherPayment,
			Date:        in.Date,
			Amount:      due.Amount,
			SafeID:      in.SafeID,
			Description: "Broker commission",
			Beneficiary: due.BrokerName,
			LinkedRef:   ref,
		}, true); err != nil {
			return err
		}
		due.Status = domain.BrokerDuePaid
		due.PaymentDate = in.Date
		due.PaidFromSafeID = in.SafeID
		if err := tx.Model(due).Updates(map[string]interface{}{
			"status":            due.Status,
			"payment_date":      due.PaymentDate,
			"paid_from_safe_id": due.PaidFromSafeID,
		}).Error; err != nil {
			return err
		}
		return audit(tx, "Broker due paid", map[string]interface{}{"brokerDueId": id, "safeId": in.SafeID, "amount": due.Amount})
	})
	if err != nil {
		return nil, err
	}
	log.Info().Str("broker_due_id", id).Float64("amount", due.Amount).Msg("Broker due paid")
	return due, nil
}

// SettlePartnerDebt marks a debt between partners as paid. No safe is involved.
func (s *Service) SettlePartnerDebt(ctx context.Context, id, date string) (*domain.PartnerDebt, error) {
	if date == "" {
		date = s.today()
	} else if err := requireDate("date", date); err != nil {
		return nil, err
	}

	var debt *domain.PartnerDebt
	err := s.write(ctx, func(tx *gorm.DB) error {
		var err error
		if debt, err = find[domain.PartnerDebt](forUpdate(tx), id, "Partner debt not found"); err != nil {
			return err
		}
		if debt.Status == domain.PartnerDebtPaid {
			return apperror.BusinessRule("Partner debt is already settled")
		}
		debt.Status = domain.PartnerDebtPaid
		debt.PaymentDate = date
		if err := tx.Model(debt).Updates(map[string]interface{}{
			"status":       debt.Status,
			"payment_date": date,
		}).Error; err != nil {
			return err
		}
		return audit(tx, "Partner debt settled", map[string]interface{}{"partnerDebtId": id})
	})
	if err != nil {
		return nil, err
	}
	return debt, nil
}
