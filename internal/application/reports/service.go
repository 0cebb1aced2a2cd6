// Package reports answers read-only questions about the ledger.
package reports

import (
	"context"
	"errors"

	"estate-backend/internal/domain"
	"estate-backend/internal/pkg/apperror"
	"estate-backend/internal/pkg/money"

	"gorm.io/gorm"
)

type Service struct {
	DB *gorm.DB
}

// Balance is what a unit's buyer still owes.
type Balance struct {
	UnitID     string  `json:"unitId"`
	ContractID string  `json:"contractId"`
	Owed       float64 `json:"owed"`
	Paid       float64 `json:"paid"`
	Remaining  float64 `json:"remaining"`
}

// RemainingBalance is totalPrice − discount minus every receipt linked to the unit's
// contract or its installments, floored at zero.
func (s *Service) RemainingBalance(ctx context.Context, unitID string) (*Balance, error) {
	db := s.DB.WithContext(ctx)

	var unit domain.Unit
	if err := db.Where("id = ?", unitID).First(&unit).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperror.NotFound("Unit not found")
		}
		return nil, apperror.Storage(err)
	}
	var contract domain.Contract
	if err := db.Where("unit_id = ?", unitID).First(&contract).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperror.NotFound("Unit has no contract")
		}
		return nil, apperror.Storage(err)
	}

	var paid float64
	installments := db.Model(&domain.Installment{}).Select("id").Where("unit_id = ?", unitID)
	if err := db.Model(&domain.Voucher{}).
		Select("COALESCE(SUM(amount), 0)").
		Where("type = ?", domain.VoucherReceipt).
		Where("linked_ref = ? OR linked_ref IN (?)", contract.ID, installments).
		Scan(&paid).Error; err != nil {
		return nil, apperror.Storage(err)
	}

	owed := money.Round2(contract.TotalPrice - contract.DiscountAmount)
	return &Balance{
		UnitID:     unitID,
		ContractID: contract.ID,
		Owed:       owed,
		Paid:       money.Round2(paid),
		Remaining:  money.Max0(money.Round2(owed - paid)),
	}, nil
}

type SafeCheck struct {
	SafeID     string  `json:"safeId"`
	Name       string  `json:"name"`
	Balance    float64 `json:"balance"`
	Computed   float64 `json:"computed"`
	Difference float64 `json:"difference"`
	OK         bool    `json:"ok"`
}

type SafeReport struct {
	OK    bool        `json:"ok"`
	Safes []SafeCheck `json:"safes"`
}

// VerifySafes recomputes every safe's balance from its vouchers.
func (s *Service) VerifySafes(ctx context.Context) (*SafeReport, error) {
	db := s.DB.WithContext(ctx)

	var safes []domain.Safe
	if err := db.Order("name").Find(&safes).Error; err != nil {
		return nil, apperror.Storage(err)
	}
	var sums []struct {
		SafeID string
		Total  float64
	}
	if err := db.Model(&domain.Voucher{}).
		Select("safe_id, COALESCE(SUM(CASE WHEN type = ? THEN -amount ELSE amount END), 0) AS total", domain.VoucherPayment).
		Group("safe_id").
		Scan(&sums).Error; err != nil {
		return nil, apperror.Storage(err)
	}
	computed := make(map[string]float64, len(sums))
	for _, row := range sums {
		computed[row.SafeID] = row.Total
	}

	report := &SafeReport{OK: true, Safes: make([]SafeCheck, 0, len(safes))}
	for _, safe := range safes {
		c := money.Round2(computed[safe.ID])
		diff := money.Round2(safe.Balance - c)
		check := SafeCheck{
			SafeID:     safe.ID,
			Name:       safe.Name,
			Balance:    safe.Balance,
			Computed:   c,
			Difference: diff,
			OK:         diff <= money.Epsilon && diff >= -money.Epsilon,
		}
		if !check.OK {
			report.OK = false
		}
		report.Safes = append(report.Safes, check)
	}
	return report, nil
}

type KPIs struct {
	TotalSales     float64 `json:"totalSales"`
	TotalReceipts  float64 `json:"totalReceipts"`
	TotalExpenses  float64 `json:"totalExpenses"`
	NetCash        float64 `json:"netCash"`
	TotalDebt      float64 `json:"totalDebt"`
	Contracts      int64   `json:"contracts"`
	UnitsTotal     int64   `json:"unitsTotal"`
	UnitsAvailable int64   `json:"unitsAvailable"`
	UnitsSold      int64   `json:"unitsSold"`
}

// KPIs aggregates the dashboard figures. Receipts and expenses are the plain voucher
// sums, so transfers between safes show up on both sides.
func (s *Service) KPIs(ctx context.Context) (*KPIs, error) {
	db := s.DB.WithContext(ctx)
	var k KPIs

	if err := db.Model(&domain.Contract{}).Select("COALESCE(SUM(total_price), 0)").Scan(&k.TotalSales).Error; err != nil {
		return nil, apperror.Storage(err)
	}
	if err := db.Model(&domain.Contract{}).Count(&k.Contracts).Error; err != nil {
		return nil, apperror.Storage(err)
	}

	var byType []struct {
		Type  string
		Total float64
	}
	if err := db.Model(&domain.Voucher{}).Select("type, COALESCE(SUM(amount), 0) AS total").Group("type").Scan(&byType).Error; err != nil {
		return nil, apperror.Storage(err)
	}
	for _, row := range byType {
		switch row.Type {
		case domain.VoucherReceipt:
			k.TotalReceipts = money.Round2(row.Total)
		case domain.VoucherPayment:
			k.TotalExpenses = money.Round2(row.Total)
		}
	}
	k.NetCash = money.Round2(k.TotalReceipts - k.TotalExpenses)

	var byStatus []struct {
		Status string
		N      int64
	}
	if err := db.Model(&domain.Unit{}).Select("status, COUNT(*) AS n").Group("status").Scan(&byStatus).Error; err != nil {
		return nil, apperror.Storage(err)
	}
	for _, row := range byStatus {
		k.UnitsTotal += row.N
		switch row.Status {
		case domain.UnitAvailable:
			k.UnitsAvailable = row.N
		case domain.UnitSold:
			k.UnitsSold = row.N
		}
	}

	debt, err := totalDebt(db)
	if err != nil {
		return nil, apperror.Storage(err)
	}
	k.TotalDebt = debt
	return &k, nil
}

// totalDebt sums the remaining balance of every contracted unit.
func totalDebt(db *gorm.DB) (float64, error) {
	var contracts []domain.Contract
	if err := db.Select("id", "unit_id", "total_price", "discount_amount").Find(&contracts).Error; err != nil {
		return 0, err
	}
	var installments []domain.Installment
	if err := db.Select("id", "unit_id").Find(&installments).Error; err != nil {
		return 0, err
	}
	var receipts []domain.Voucher
	if err := db.Select("linked_ref", "amount").Where("type = ? AND linked_ref <> ''", domain.VoucherReceipt).
		Find(&receipts).Error; err != nil {
		return 0, err
	}

	// every ref resolves to the unit whose balance it reduces
	unitOf := make(map[string]string, len(contracts)+len(installments))
	for _, c := range contracts {
		unitOf[c.ID] = c.UnitID
	}
	for _, i := range installments {
		unitOf[i.ID] = i.UnitID
	}
	paid := make(map[string][]float64)
	for _, v := range receipts {
		if unit, ok := unitOf[v.LinkedRef]; ok {
			paid[unit] = append(paid[unit], v.Amount)
		}
	}

	remaining := make([]float64, 0, len(contracts))
	for _, c := range contracts {
		owed := money.Round2(c.TotalPrice - c.DiscountAmount)
		remaining = append(remaining, money.Max0(money.Round2(owed-money.Sum(paid[c.UnitID]...))))
	}
	return money.Sum(remaining...), nil
}
