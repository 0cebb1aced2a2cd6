package reports

import (
	"context"
	"testing"

	"estate-backend/internal/application/ledger"
	"estate-backend/internal/domain"
	"estate-backend/internal/infrastructure/database"
	"estate-backend/internal/pkg/apperror"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

type fixture struct {
	db       *gorm.DB
	ledger   *ledger.Service
	reports  *Service
	safeID   string
	unitID   string
	contract *ledger.ContractResult
}

// setupSoldUnit sells one unit for 120,000 with 20,000 down and ten monthly installments.
func setupSoldUnit(t *testing.T) *fixture {
	db, err := database.OpenAndMigrate(":memory:")
	require.NoError(t, err)
	f := &fixture{db: db, ledger: ledger.NewService(db, ledger.Options{}), reports: &Service{DB: db}}
	ctx := context.Background()

	partner := domain.Partner{Name: "Owner"}
	require.NoError(t, db.Create(&partner).Error)
	group := domain.PartnerGroup{Name: "Solo"}
	require.NoError(t, db.Create(&group).Error)
	require.NoError(t, db.Create(&domain.PartnerGroupLink{GroupID: group.ID, PartnerID: partner.ID, Percent: 100}).Error)
	customer := domain.Customer{Name: "Mona Adel"}
	require.NoError(t, db.Create(&customer).Error)

	safe, err := f.ledger.CreateSafe(ctx, ledger.CreateSafeInput{Name: "Main", Date: "2024-01-01"})
	require.NoError(t, err)
	f.safeID = safe.ID
	unit, err := f.ledger.CreateUnit(ctx, ledger.CreateUnitInput{Name: "A1", Floor: "1", Building: "B", TotalPrice: 120000, PartnerGroupID: group.ID})
	require.NoError(t, err)
	f.unitID = unit.ID
	f.contract, err = f.ledger.CreateContract(ctx, ledger.CreateContractInput{
		UnitID: unit.ID, CustomerID: customer.ID, TotalPrice: 120000, DownPayment: 20000,
		DownPaymentSafeID: safe.ID, Type: "monthly", Count: 10, Start: "2024-01-01",
	})
	require.NoError(t, err)
	return f
}

func TestRemainingBalance(t *testing.T) {
	f := setupSoldUnit(t)
	ctx := context.Background()

	b, err := f.reports.RemainingBalance(ctx, f.unitID)
	require.NoError(t, err)
	assert.Equal(t, 120000.0, b.Owed)
	assert.Equal(t, 20000.0, b.Paid)
	assert.Equal(t, 100000.0, b.Remaining)

	_, err = f.ledger.PayInstallment(ctx, f.contract.Installments[0].ID, ledger.PayInstallmentInput{Amount: 4000, SafeID: f.safeID, Date: "2024-02-01"})
	require.NoError(t, err)
	b, err = f.reports.RemainingBalance(ctx, f.unitID)
	require.NoError(t, err)
	assert.Equal(t, 96000.0, b.Remaining)

	// unrelated receipts do not count
	_, err = f.ledger.PostVoucher(ctx, ledger.VoucherInput{Type: "receipt", Amount: 999, SafeID: f.safeID, Date: "2024-02-02"})
	require.NoError(t, err)
	b, err = f.reports.RemainingBalance(ctx, f.unitID)
	require.NoError(t, err)
	assert.Equal(t, 96000.0, b.Remaining)
}

func TestRemainingBalance_DiscountAndFloor(t *testing.T) {
	f := setupSoldUnit(t)
	require.NoError(t, f.db.Model(&domain.Contract{}).Where("id = ?", f.contract.ID).Update("discount_amount", 110000).Error)

	b, err := f.reports.RemainingBalance(context.Background(), f.unitID)
	require.NoError(t, err)
	assert.Equal(t, 10000.0, b.Owed)
	assert.Equal(t, 0.0, b.Remaining)
}

func TestRemainingBalance_NotFound(t *testing.T) {
	f := setupSoldUnit(t)
	_, err := f.reports.RemainingBalance(context.Background(), "U-missing")
	assert.True(t, apperror.Is(err, apperror.KindNotFound))

	_, err = f.ledger.DeleteContract(context.Background(), f.contract.ID)
	require.NoError(t, err)
	_, err = f.reports.RemainingBalance(context.Background(), f.unitID)
	assert.True(t, apperror.Is(err, apperror.KindNotFound))
}

func TestVerifySafes(t *testing.T) {
	f := setupSoldUnit(t)
	ctx := context.Background()

	report, err := f.reports.VerifySafes(ctx)
	require.NoError(t, err)
	assert.True(t, report.OK)
	require.Len(t, report.Safes, 1)
	assert.Equal(t, 20000.0, report.Safes[0].Computed)

	require.NoError(t, f.db.Model(&domain.Safe{}).Where("id = ?", f.safeID).Update("balance", 20001).Error)
	report, err = f.reports.VerifySafes(ctx)
	require.NoError(t, err)
	assert.False(t, report.OK)
	assert.Equal(t, 1.0, report.Safes[0].Difference)
}

func TestKPIs(t *testing.T) {
	f := setupSoldUnit(t)
	ctx := context.Background()
	other, err := f.ledger.CreateSafe(ctx, ledger.CreateSafeInput{Name: "Bank", Date: "2024-01-01"})
	require.NoError(t, err)
	_, err = f.ledger.TransferFunds(ctx, ledger.TransferInput{FromSafeID: f.safeID, ToSafeID: other.ID, Amount: 5000, Date: "2024-01-02"})
	require.NoError(t, err)
	_, err = f.ledger.PayInstallment(ctx, f.contract.Installments[0].ID, ledger.PayInstallmentInput{Amount: 10000, SafeID: f.safeID, Date: "2024-02-01"})
	require.NoError(t, err)

	k, err := f.reports.KPIs(ctx)
	require.NoError(t, err)
	assert.Equal(t, 120000.0, k.TotalSales)
	assert.Equal(t, 35000.0, k.TotalReceipts)
	assert.Equal(t, 5000.0, k.TotalExpenses)
	assert.Equal(t, 30000.0, k.NetCash)
	assert.Equal(t, 90000.0, k.TotalDebt)
	assert.Equal(t, int64(1), k.Contracts)
	assert.Equal(t, int64(1), k.UnitsTotal)
	assert.Equal(t, int64(1), k.UnitsSold)
	assert.Equal(t, int64(0), k.UnitsAvailable)
}

func TestSnapshot(t *testing.T) {
	f := setupSoldUnit(t)

	snap, err := f.reports.Snapshot(context.Background())
	require.NoError(t, err)
	assert.Len(t, snap.Units, 1)
	assert.Len(t, snap.Contracts, 1)
	assert.Len(t, snap.Installments, 10)
	assert.Len(t, snap.Vouchers, 1)
	assert.Empty(t, snap.Transfers)
	require.Len(t, snap.PartnerGroups, 1)
	require.Len(t, snap.PartnerGroups[0].Partners, 1)
	assert.Equal(t, 100.0, snap.PartnerGroups[0].Partners[0].Percent)
	assert.Equal(t, DefaultSettings, snap.Settings)
	assert.False(t, snap.Locked)
	assert.NotEmpty(t, snap.AuditLog)

	require.NoError(t, f.db.Create(&domain.AppLock{ID: domain.AppLockID, PasswordHash: "x"}).Error)
	snap, err = f.reports.Snapshot(context.Background())
	require.NoError(t, err)
	assert.True(t, snap.Locked)
}
