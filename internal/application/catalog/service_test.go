package catalog

import (
	"context"
	"testing"

	"estate-backend/internal/domain"
	"estate-backend/internal/infrastructure/database"
	"estate-backend/internal/pkg/apperror"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func setupCatalogTest(t *testing.T) (*Service, *gorm.DB) {
	db, err := database.OpenAndMigrate(":memory:")
	require.NoError(t, err)
	return &Service{DB: db}, db
}

func TestCustomerCRUD(t *testing.T) {
	svc, db := setupCatalogTest(t)
	ctx := context.Background()

	_, err := svc.CreateCustomer(ctx, domain.Customer{Phone: "0100"})
	assert.True(t, apperror.Is(err, apperror.KindValidation))

	c, err := svc.CreateCustomer(ctx, domain.Customer{ID: "C-client", Name: "Mona", Phone: "0100"})
	require.NoError(t, err)
	assert.NotEqual(t, "C-client", c.ID)
	assert.Equal(t, domain.CustomerStatusActive, c.Status)

	updated, err := svc.UpdateCustomer(ctx, c.ID, map[string]interface{}{"phone": "0111", "nationalId": "2990"})
	require.NoError(t, err)
	assert.Equal(t, "0111", updated.Phone)
	assert.Equal(t, "2990", updated.NationalID)
	assert.Equal(t, "Mona", updated.Name)

	_, err = svc.UpdateCustomer(ctx, c.ID, map[string]interface{}{"balance": 5})
	assert.True(t, apperror.Is(err, apperror.KindValidation))
	_, err = svc.UpdateCustomer(ctx, c.ID, map[string]interface{}{"name": ""})
	assert.True(t, apperror.Is(err, apperror.KindValidation))
	_, err = svc.UpdateCustomer(ctx, "C-missing", map[string]interface{}{"name": "x"})
	assert.True(t, apperror.Is(err, apperror.KindNotFound))

	require.NoError(t, db.Create(&domain.Contract{Code: "CTR-00001", UnitID: "U-1", CustomerID: c.ID, TotalPrice: 1}).Error)
	err = svc.DeleteCustomer(ctx, c.ID)
	assert.True(t, apperror.Is(err, apperror.KindBusinessRule))

	other, err := svc.CreateCustomer(ctx, domain.Customer{Name: "Omar"})
	require.NoError(t, err)
	require.NoError(t, svc.DeleteCustomer(ctx, other.ID))
	list, err := svc.ListCustomers(ctx)
	require.NoError(t, err)
	assert.Len(t, list, 1)
}

func TestPartnerGroupLifecycle(t *testing.T) {
	svc, db := setupCatalogTest(t)
	ctx := context.Background()
	a, err := svc.CreatePartner(ctx, domain.Partner{Name: "A"})
	require.NoError(t, err)
	b, err := svc.CreatePartner(ctx, domain.Partner{Name: "B"})
	require.NoError(t, err)

	_, err = svc.CreatePartnerGroup(ctx, PartnerGroupInput{Name: "G", Partners: []domain.PartnerShare{
		{PartnerID: a.ID, Percent: 50}, {PartnerID: b.ID, Percent: 40},
	}})
	assert.True(t, apperror.Is(err, apperror.KindBusinessRule))
	_, err = svc.CreatePartnerGroup(ctx, PartnerGroupInput{Name: "G", Partners: []domain.PartnerShare{
		{PartnerID: a.ID, Percent: 50}, {PartnerID: "P-missing", Percent: 50},
	}})
	assert.True(t, apperror.Is(err, apperror.KindNotFound))
	_, err = svc.CreatePartnerGroup(ctx, PartnerGroupInput{Name: "G", Partners: []domain.PartnerShare{
		{PartnerID: a.ID, Percent: 50}, {PartnerID: a.ID, Percent: 50},
	}})
	assert.True(t, apperror.Is(err, apperror.KindValidation))

	g, err := svc.CreatePartnerGroup(ctx, PartnerGroupInput{Name: "G", Partners: []domain.PartnerShare{
		{PartnerID: a.ID, Percent: 33.33}, {PartnerID: b.ID, Percent: 66.67},
	}})
	require.NoError(t, err)
	assert.Len(t, g.Partners, 2)

	g, err = svc.UpdatePartnerGroup(ctx, g.ID, PartnerGroupInput{Partners: []domain.PartnerShare{{PartnerID: b.ID, Percent: 100}}})
	require.NoError(t, err)
	assert.Equal(t, "G", g.Name)
	require.Len(t, g.Partners, 1)
	assert.Equal(t, b.ID, g.Partners[0].PartnerID)

	groups, err := svc.ListPartnerGroups(ctx)
	require.NoError(t, err)
	require.Len(t, groups, 1)
	assert.Len(t, groups[0].Partners, 1)

	// a partner still in a group cannot go
	err = svc.DeletePartner(ctx, b.ID)
	assert.True(t, apperror.Is(err, apperror.KindBusinessRule))
	require.NoError(t, svc.DeletePartner(ctx, a.ID))

	require.NoError(t, db.Create(&domain.Unit{Code: "B-1-A", PartnerGroupID: g.ID}).Error)
	err = svc.DeletePartnerGroup(ctx, g.ID)
	assert.True(t, apperror.Is(err, apperror.KindBusinessRule))
	require.NoError(t, db.Where("partner_group_id = ?", g.ID).Delete(&domain.Unit{}).Error)
	require.NoError(t, svc.DeletePartnerGroup(ctx, g.ID))

	var links int64
	require.NoError(t, db.Model(&domain.PartnerGroupLink{}).Count(&links).Error)
	assert.Equal(t, int64(0), links)
}

func TestBrokers(t *testing.T) {
	svc, db := setupCatalogTest(t)
	ctx := context.Background()

	b, err := svc.CreateBroker(ctx, domain.Broker{Name: "Hany"})
	require.NoError(t, err)
	_, err = svc.CreateBroker(ctx, domain.Broker{Name: "Hany"})
	assert.True(t, apperror.Is(err, apperror.KindBusinessRule))

	require.NoError(t, db.Create(&domain.Contract{Code: "CTR-00001", UnitID: "U-1", CustomerID: "C-1", BrokerName: "Hany"}).Error)
	err = svc.DeleteBroker(ctx, b.ID)
	assert.True(t, apperror.Is(err, apperror.KindBusinessRule))

	b, err = svc.UpdateBroker(ctx, b.ID, map[string]interface{}{"phone": "0122"})
	require.NoError(t, err)
	assert.Equal(t, "0122", b.Phone)
}

func TestPartnerDebts(t *testing.T) {
	svc, _ := setupCatalogTest(t)
	ctx := context.Background()
	a, err := svc.CreatePartner(ctx, domain.Partner{Name: "A"})
	require.NoError(t, err)
	b, err := svc.CreatePartner(ctx, domain.Partner{Name: "B"})
	require.NoError(t, err)

	_, err = svc.CreatePartnerDebt(ctx, domain.PartnerDebt{PayingPartnerID: a.ID, OwedPartnerID: a.ID, Amount: 10})
	assert.True(t, apperror.Is(err, apperror.KindValidation))
	_, err = svc.CreatePartnerDebt(ctx, domain.PartnerDebt{PayingPartnerID: a.ID, OwedPartnerID: "P-missing", Amount: 10})
	assert.True(t, apperror.Is(err, apperror.KindNotFound))

	d, err := svc.CreatePartnerDebt(ctx, domain.PartnerDebt{PayingPartnerID: a.ID, OwedPartnerID: b.ID, Amount: 10, Status: domain.PartnerDebtPaid})
	require.NoError(t, err)
	assert.Equal(t, domain.PartnerDebtPending, d.Status)

	d, err = svc.UpdatePartnerDebt(ctx, d.ID, map[string]interface{}{"amount": 25.5, "dueDate": "2024-09-01"})
	require.NoError(t, err)
	assert.Equal(t, 25.5, d.Amount)

	_, err = svc.UpdatePartnerDebt(ctx, d.ID, map[string]interface{}{"status": "paid"})
	assert.True(t, apperror.Is(err, apperror.KindValidation))

	require.NoError(t, svc.DeletePartnerDebt(ctx, d.ID))
	debts, err := svc.ListPartnerDebts(ctx)
	require.NoError(t, err)
	assert.Empty(t, debts)
}
