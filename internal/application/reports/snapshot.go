package reports

import (
	"context"

	"estate-backend/internal/domain"
	"estate-backend/internal/pkg/apperror"

	"gorm.io/gorm"
)

// Settings are the UI shell defaults returned with every snapshot.
type Settings struct {
	Theme string `json:"theme"`
	Font  int    `json:"font"`
}

var DefaultSettings = Settings{Theme: "dark", Font: 16}

// Snapshot is the whole store in one document, as the UI shell loads it at startup.
type Snapshot struct {
	Customers     []domain.Customer     `json:"customers"`
	Units         []domain.Unit         `json:"units"`
	Partners      []domain.Partner      `json:"partners"`
	UnitPartners  []domain.UnitPartner  `json:"unitPartners"`
	Contracts     []domain.Contract     `json:"contracts"`
	Installments  []domain.Installment  `json:"installments"`
	Safes         []domain.Safe         `json:"safes"`
	Vouchers      []domain.Voucher      `json:"vouchers"`
	Transfers     []domain.Transfer     `json:"transfers"`
	Brokers       []domain.Broker       `json:"brokers"`
	BrokerDues    []domain.BrokerDue    `json:"brokerDues"`
	PartnerGroups []domain.PartnerGroup `json:"partnerGroups"`
	PartnerDebts  []domain.PartnerDebt  `json:"partnerDebts"`
	AuditLog      []domain.AuditLog     `json:"auditLog"`
	Settings      Settings              `json:"settings"`
	Locked        bool                  `json:"locked"`
}

// Snapshot reads every table inside one transaction so the document is consistent.
func (s *Service) Snapshot(ctx context.Context) (*Snapshot, error) {
	snap := Snapshot{Settings: DefaultSettings}
	err := s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		for _, q := range []struct {
			dest  interface{}
			order string
		}{
			{&snap.Customers, "created_at"},
			{&snap.Units, "created_at"},
			{&snap.Partners, "created_at"},
			{&snap.UnitPartners, "unit_id"},
			{&snap.Contracts, "code"},
			{&snap.Installments, "due_date"},
			{&snap.Safes, "created_at"},
			{&snap.Vouchers, "created_at"},
			{&snap.Transfers, "created_at"},
			{&snap.Brokers, "created_at"},
			{&snap.BrokerDues, "created_at"},
			{&snap.PartnerGroups, "created_at"},
			{&snap.PartnerDebts, "created_at"},
			{&snap.AuditLog, "timestamp DESC"},
		} {
			if err := tx.Order(q.order).Find(q.dest).Error; err != nil {
				return err
			}
		}
		if err := AttachPartners(tx, snap.PartnerGroups); err != nil {
			return err
		}
		var locks int64
		if err := tx.Model(&domain.AppLock{}).Count(&locks).Error; err != nil {
			return err
		}
		snap.Locked = locks > 0
		return nil
	})
	if err != nil {
		return nil, apperror.Storage(err)
	}
	return &snap, nil
}

// AttachPartners fills each group's Partners from its link rows.
func AttachPartners(db *gorm.DB, groups []domain.PartnerGroup) error {
	if len(groups) == 0 {
		return nil
	}
	ids := make([]string, len(groups))
	for i, g := range groups {
		ids[i] = g.ID
	}
	var links []domain.PartnerGroupLink
	if err := db.Where("group_id IN ?", ids).Order("id").Find(&links).Error; err != nil {
		return err
	}
	byGroup := make(map[string][]domain.PartnerShare, len(groups))
	for _, l := range links {
		byGroup[l.GroupID] = append(byGroup[l.GroupID], domain.PartnerShare{PartnerID: l.PartnerID, Percent: l.Percent})
	}
	for i := range groups {
		groups[i].Partners = byGroup[groups[i].ID]
		if groups[i].Partners == nil {
			groups[i].Partners = []domain.PartnerShare{}
		}
	}
	return nil
}
