package ledger

import (
	"context"
	"fmt"
	"strings"

	"estate-backend/internal/application/schedule"
	"estate-backend/internal/domain"
	"estate-backend/internal/pkg/apperror"
	"estate-backend/internal/pkg/money"
	"estate-backend/internal/pkg/validation"

	"github.com/rs/zerolog/log"
	"gorm.io/gorm"
)

type CreateContractInput struct {
	UnitID             string  `json:"unitId"`
	CustomerID         string  `json:"customerId"`
	TotalPrice         float64 `json:"totalPrice"`
	DownPayment        float64 `json:"downPayment"`
	DiscountAmount     float64 `json:"discountAmount"`
	MaintenanceDeposit float64 `json:"maintenanceDeposit"`
	BrokerName         string  `json:"brokerName"`
	BrokerPercent      float64 `json:"brokerPercent"`
	BrokerAmount       float64 `json:"brokerAmount"`
	CommissionSafeID   string  `json:"commissionSafeId"`
	DownPaymentSafeID  string  `json:"downPaymentSafeId"`
	Type               string  `json:"type"`
	Count              int     `json:"count"`
	ExtraAnnual        int     `json:"extraAnnual"`
	AnnualPaymentValue float64 `json:"annualPaymentValue"`
	Start              string  `json:"start"`
}

// ContractResult is a created contract with everything it produced.
type ContractResult struct {
	domain.Contract
	Installments       []domain.Installment `json:"installments"`
	DownPaymentVoucher *domain.Voucher      `json:"downPaymentVoucher,omitempty"`
	BrokerDue          *domain.BrokerDue    `json:"brokerDue,omitempty"`
}

type DeleteContractResult struct {
	ContractID          string           `json:"contractId"`
	UnitID              string           `json:"unitId"`
	RemovedInstallments int              `json:"removedInstallments"`
	Reversals           []domain.Voucher `json:"reversals"`
}

func (in CreateContractInput) validate() (schedule.Frequency, error) {
	if missing := validation.FirstMissing("unitId", in.UnitID, "customerId", in.CustomerID); missing != "" {
		return "", apperror.Validation("Incomplete contract data: " + missing + " is required")
	}
	if in.TotalPrice <= 0 {
		return "", apperror.Validation("Incomplete contract data: totalPrice must be a positive number")
	}
	for _, f := range []struct {
		name  string
		value float64
	}{
		{"downPayment", in.DownPayment},
		{"discountAmount", in.DiscountAmount},
		{"maintenanceDeposit", in.MaintenanceDeposit},
		{"brokerPercent", in.BrokerPercent},
		{"brokerAmount", in.BrokerAmount},
		{"annualPaymentValue", in.AnnualPaymentValue},
	} {
		if f.value < 0 {
			return "", apperror.Validation(f.name + " cannot be negative")
		}
	}
	if in.Count < 0 || in.ExtraAnnual < 0 {
		return "", apperror.Validation("count and extraAnnual cannot be negative")
	}
	if err := requireDate("start", in.Start); err != nil {
		return "", err
	}
	freq, err := schedule.ParseFrequency(in.Type)
	if err != nil {
		return "", apperror.Validation(err.Error())
	}
	if money.Round2(in.DownPayment) > 0 && in.DownPaymentSafeID == "" && in.CommissionSafeID == "" {
		return "", apperror.Validation("downPaymentSafeId is required when downPayment is set")
	}
	return freq, nil
}

// CreateContract sells an available unit: it marks the unit sold, records the contract,
// books the down payment into a safe, opens the broker due and generates the installments.
func (s *Service) CreateContract(ctx context.Context, in CreateContractInput) (*ContractResult, error) {
	freq, err := in.validate()
	if err != nil {
		return nil, err
	}
	start, _ := validation.ParseDate(in.Start)

	var result ContractResult
	err = s.write(ctx, func(tx *gorm.DB) error {
		unit, err := find[domain.Unit](forUpdate(tx), in.UnitID, "Unit not found")
		if err != nil {
			return err
		}
		if unit.Status != domain.UnitAvailable {
			return apperror.BusinessRule("Unit is not available for sale")
		}
		customer, err := find[domain.Customer](tx, in.CustomerID, "Customer not found")
		if err != nil {
			return err
		}
		if err := tx.Model(unit).Update("status", domain.UnitSold).Error; err != nil {
			return err
		}

		code, err := nextContractCode(tx)
		if err != nil {
			return err
		}
		brokerAmount := in.BrokerAmount
		if brokerAmount == 0 && in.BrokerPercent > 0 {
			brokerAmount = money.Round2(in.TotalPrice * in.BrokerPercent / 100)
		}
		result.Contract = domain.Contract{
			Code:               code,
			UnitID:             unit.ID,
			CustomerID:         customer.ID,
			TotalPrice:         in.TotalPrice,
			DownPayment:        in.DownPayment,
			DiscountAmount:     in.DiscountAmount,
			MaintenanceDeposit: in.MaintenanceDeposit,
			BrokerName:         in.BrokerName,
			BrokerPercent:      in.BrokerPercent,
			BrokerAmount:       brokerAmount,
			CommissionSafeID:   in.CommissionSafeID,
			DownPaymentSafeID:  in.DownPaymentSafeID,
			Type:               string(freq),
			Count:              in.Count,
			ExtraAnnual:        in.ExtraAnnual,
			AnnualPaymentValue: in.AnnualPaymentValue,
			Start:              in.Start,
		}
		if err := tx.Create(&result.Contract).Error; err != nil {
			return err
		}

		if money.Round2(in.DownPayment) > 0 {
			safeID := in.DownPaymentSafeID
			if safeID == "" {
				safeID = in.CommissionSafeID
			}
			v := &domain.Voucher{
				Type:        domain.VoucherReceipt,
				Date:        in.Start,
				Amount:      in.DownPayment,
				SafeID:      safeID,
				Description: "Down payment for unit " + unit.Name,
				Payer:       customer.Name,
				LinkedRef:   result.Contract.ID,
			}
			if err := post(tx, v, false); err != nil {
				return err
			}
			result.DownPaymentVoucher = v
		}

		if money.Round2(brokerAmount) > 0 {
			due := &domain.BrokerDue{
				ContractID: result.Contract.ID,
				BrokerName: in.BrokerName,
				Amount:     money.Round2(brokerAmount),
				DueDate:    in.Start,
			}
			if err := tx.Create(due).Error; err != nil {
				return err
			}
			result.BrokerDue = due
		}

		plan := schedule.Generate(schedule.Terms{
			TotalPrice:         in.TotalPrice,
			MaintenanceDeposit: in.MaintenanceDeposit,
			DiscountAmount:     in.DiscountAmount,
			DownPayment:        in.DownPayment,
			Frequency:          freq,
			Count:              in.Count,
			ExtraAnnual:        in.ExtraAnnual,
			AnnualPaymentValue: in.AnnualPaymentValue,
			Start:              start,
		}, s.Options.Schedule)
		result.Installments = make([]domain.Installment, 0, len(plan.Rows))
		for _, row := range plan.Rows {
			result.Installments = append(result.Installments, domain.Installment{
				UnitID:         unit.ID,
				ContractID:     result.Contract.ID,
				Type:           row.Type,
				Amount:         row.Amount,
				OriginalAmount: row.Amount,
				DueDate:        row.DueDate.Format(validation.DateLayout),
				Status:         domain.InstallmentUnpaid,
			})
		}
		if len(result.Installments) > 0 {
			if err := tx.CreateInBatches(&result.Installments, 100).Error; err != nil {
				return err
			}
		}

		return audit(tx, "Contract created", map[string]interface{}{
			"contractId":   result.Contract.ID,
			"code":         code,
			"unitId":       unit.ID,
			"customerId":   customer.ID,
			"installments": len(result.Installments),
		})
	})
	if err != nil {
		return nil, err
	}
	log.Info().
		Str("contract_id", result.Contract.ID).
		Str("code", result.Contract.Code).
		Int("installments", len(result.Installments)).
		Msg("Contract created")
	return &result, nil
}

// nextContractCode returns CTR-NNNNN, one past the highest code in use.
func nextContractCode(tx *gorm.DB) (string, error) {
	var codes []string
	if err := tx.Model(&domain.Contract{}).Pluck("code", &codes).Error; err != nil {
		return "", err
	}
	highest := 0
	for _, c := range codes {
		var n int
		if _, err := fmt.Sscanf(strings.TrimPrefix(c, "CTR-"), "%d", &n); err == nil && n > highest {
			highest = n
		}
	}
	return fmt.Sprintf("CTR-%05d", highest+1), nil
}

// DeleteContract cancels a sale. The unit becomes available again and its schedule is
// removed. Vouchers stay unless ReverseOnDelete is set.
func (s *Service) DeleteContract(ctx context.Context, id string) (*DeleteContractResult, error) {
	result := DeleteContractResult{ContractID: id, Reversals: []domain.Voucher{}}
	err := s.write(ctx, func(tx *gorm.DB) error {
		contract, err := find[domain.Contract](forUpdate(tx), id, "Contract not found")
		if err != nil {
			return err
		}
		result.UnitID = contract.UnitID

		if err := tx.Model(&domain.Unit{}).Where("id = ?", contract.UnitID).
			Update("status", domain.UnitAvailable).Error; err != nil {
			return err
		}

		var installmentIDs []string
		if err := tx.Model(&domain.Installment{}).Where("unit_id = ?", contract.UnitID).
			Pluck("id", &installmentIDs).Error; err != nil {
			return err
		}

		if s.Options.ReverseOnDelete {
			refs := append([]string{contract.ID}, installmentIDs...)
			var receipts []domain.Voucher
			if err := tx.Where("type = ? AND linked_ref IN ?", domain.VoucherReceipt, refs).
				Order("created_at").Find(&receipts).Error; err != nil {
				return err
			}
			for _, r := range receipts {
				v := domain.Voucher{
					Type:        domain.VoucherPayment,
					Date:        s.today(),
					Amount:      r.Amount,
					SafeID:      r.SafeID,
					Description: fmt.Sprintf("Reversal of %s (contract %s deleted)", r.ID, contract.Code),
					Beneficiary: r.Payer,
					LinkedRef:   r.ID,
				}
				if err := post(tx, &v, false); err != nil {
					return err
				}
				result.Reversals = append(result.Reversals, v)
			}
		}

		del := tx.Where("unit_id = ?", contract.UnitID).Delete(&domain.Installment{})
		if del.Error != nil {
			return del.Error
		}
		result.RemovedInstallments = int(del.RowsAffected)
		if err := tx.Where("contract_id = ? AND status = ?", contract.ID, domain.BrokerDuePending).
			Delete(&domain.BrokerDue{}).Error; err != nil {
			return err
		}
		if err := tx.Delete(contract).Error; err != nil {
			return err
		}

		return audit(tx, "Contract deleted", map[string]interface{}{
			"contractId": contract.ID,
			"code":       contract.Code,
			"unitId":     contract.UnitID,
			"reversals":  len(result.Reversals),
		})
	})
	if err != nil {
		return nil, err
	}
	log.Info().Str("contract_id", id).Int("reversals", len(result.Reversals)).Msg("Contract deleted")
	return &result, nil
}
