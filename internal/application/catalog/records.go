package catalog

import (
	"context"

	"estate-backend/internal/domain"
	"estate-backend/internal/pkg/apperror"
	"estate-backend/internal/pkg/validation"

	"gorm.io/gorm"
)

func (s *Service) ListCustomers(ctx context.Context) ([]domain.Customer, error) {
	return list[domain.Customer](ctx, s.DB, "created_at")
}

func (s *Service) CreateCustomer(ctx context.Context, c domain.Customer) (*domain.Customer, error) {
	if validation.IsBlank(c.Name) {
		return nil, apperror.Validation("Customer name is required")
	}
	c.ID = ""
	if err := s.DB.WithContext(ctx).Create(&c).Error; err != nil {
		return nil, apperror.Storage(err)
	}
	return &c, nil
}

func (s *Service) UpdateCustomer(ctx context.Context, id string, body map[string]interface{}) (*domain.Customer, error) {
	return update(ctx, s.DB, id, body, CustomerFields, "Customer not found", func(_ *gorm.DB, c *domain.Customer) error {
		if validation.IsBlank(c.Name) {
			return apperror.Validation("Customer name is required")
		}
		return nil
	})
}

// DeleteCustomer refuses customers that signed a contract.
func (s *Service) DeleteCustomer(ctx context.Context, id string) error {
	return remove(ctx, s.DB, id, "Customer not found", func(tx *gorm.DB, _ *domain.Customer) error {
		return refused(tx.Model(&domain.Contract{}).Where("customer_id = ?", id),
			"Customer has contracts and cannot be deleted")
	})
}

func (s *Service) ListPartners(ctx context.Context) ([]domain.Partner, error) {
	return list[domain.Partner](ctx, s.DB, "created_at")
}

func (s *Service) CreatePartner(ctx context.Context, p domain.Partner) (*domain.Partner, error) {
	if validation.IsBlank(p.Name) {
		return nil, apperror.Validation("Partner name is required")
	}
	p.ID = ""
	if err := s.DB.WithContext(ctx).Create(&p).Error; err != nil {
		return nil, apperror.Storage(err)
	}
	return &p, nil
}

func (s *Service) UpdatePartner(ctx context.Context, id string, body map[string]interface{}) (*domain.Partner, error) {
	return update(ctx, s.DB, id, body, PartnerFields, "Partner not found", func(_ *gorm.DB, p *domain.Partner) error {
		if validation.IsBlank(p.Name) {
			return apperror.Validation("Partner name is required")
		}
		return nil
	})
}

// DeletePartner refuses partners that appear in a group or own part of a unit.
func (s *Service) DeletePartner(ctx context.Context, id string) error {
	return remove(ctx, s.DB, id, "Partner not found", func(tx *gorm.DB, _ *domain.Partner) error {
		if err := refused(tx.Model(&domain.PartnerGroupLink{}).Where("partner_id = ?", id),
			"Partner belongs to a partner group and cannot be deleted"); err != nil {
			return err
		}
		return refused(tx.Model(&domain.UnitPartner{}).Where("partner_id = ?", id),
			"Partner owns units and cannot be deleted")
	})
}

func (s *Service) ListBrokers(ctx context.Context) ([]domain.Broker, error) {
	return list[domain.Broker](ctx, s.DB, "created_at")
}

func (s *Service) CreateBroker(ctx context.Context, b domain.Broker) (*domain.Broker, error) {
	if validation.IsBlank(b.Name) {
		return nil, apperror.Validation("Broker name is required")
	}
	b.ID = ""
	err := s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := refused(tx.Model(&domain.Broker{}).Where("name = ?", b.Name),
			"A broker with this name already exists"); err != nil {
			return err
		}
		return tx.Create(&b).Error
	})
	if err != nil {
		return nil, apperror.Storage(err)
	}
	return &b, nil
}

func (s *Service) UpdateBroker(ctx context.Context, id string, body map[string]interface{}) (*domain.Broker, error) {
	return update(ctx, s.DB, id, body, BrokerFields, "Broker not found", func(tx *gorm.DB, b *domain.Broker) error {
		if validation.IsBlank(b.Name) {
			return apperror.Validation("Broker name is required")
		}
		return refused(tx.Model(&domain.Broker{}).Where("name = ? AND id <> ?", b.Name, b.ID),
			"A broker with this name already exists")
	})
}

// DeleteBroker refuses brokers named on a contract.
func (s *Service) DeleteBroker(ctx context.Context, id string) error {
	return remove(ctx, s.DB, id, "Broker not found", func(tx *gorm.DB, b *domain.Broker) error {
		return refused(tx.Model(&domain.Contract{}).Where("broker_name = ?", b.Name),
			"Broker is named on a contract and cannot be deleted")
	})
}

func (s *Service) ListPartnerDebts(ctx context.Context) ([]domain.PartnerDebt, error) {
	return list[domain.PartnerDebt](ctx, s.DB, "created_at")
}

func checkDebt(d *domain.PartnerDebt) error {
	if missing := validation.FirstMissing("payingPartnerId", d.PayingPartnerID, "owedPartnerId", d.OwedPartnerID); missing != "" {
		return apperror.Validation("Incomplete partner debt data: " + missing + " is required")
	}
	if d.PayingPartnerID == d.OwedPartnerID {
		return apperror.Validation("A partner cannot owe itself")
	}
	if d.Amount <= 0 {
		return apperror.Validation("Incomplete partner debt data: amount must be a positive number")
	}
	if d.DueDate != "" && !validation.IsValidDate(d.DueDate) {
		return apperror.Validation("dueDate must be a date in YYYY-MM-DD format")
	}
	return nil
}

func (s *Service) CreatePartnerDebt(ctx context.Context, d domain.PartnerDebt) (*domain.PartnerDebt, error) {
	if err := checkDebt(&d); err != nil {
		return nil, err
	}
	d.ID = ""
	d.Status = domain.PartnerDebtPending
	d.PaymentDate = ""
	err := s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		for _, pid := range []string{d.PayingPartnerID, d.OwedPartnerID} {
			if _, err := get[domain.Partner](tx, pid, "Partner not found"); err != nil {
				return err
			}
		}
		return tx.Create(&d).Error
	})
	if err != nil {
		return nil, apperror.Storage(err)
	}
	return &d, nil
}

// UpdatePartnerDebt edits a pending debt. Settling goes through the ledger.
func (s *Service) UpdatePartnerDebt(ctx context.Context, id string, body map[string]interface{}) (*domain.PartnerDebt, error) {
	return update(ctx, s.DB, id, body, PartnerDebtFields, "Partner debt not found", func(_ *gorm.DB, d *domain.PartnerDebt) error {
		if d.Status == domain.PartnerDebtPaid {
			return apperror.BusinessRule("Partner debt is already settled")
		}
		return checkDebt(d)
	})
}

func (s *Service) DeletePartnerDebt(ctx context.Context, id string) error {
	return remove[domain.PartnerDebt](ctx, s.DB, id, "Partner debt not found", nil)
}

func (s *Service) ListUnits(ctx context.Context) ([]domain.Unit, error) {
	return list[domain.Unit](ctx, s.DB, "created_at")
}

func (s *Service) ListContracts(ctx context.Context) ([]domain.Contract, error) {
	return list[domain.Contract](ctx, s.DB, "code")
}

func (s *Service) ListInstallments(ctx context.Context) ([]domain.Installment, error) {
	return list[domain.Installment](ctx, s.DB, "due_date")
}

func (s *Service) ListSafes(ctx context.Context) ([]domain.Safe, error) {
	return list[domain.Safe](ctx, s.DB, "created_at")
}

func (s *Service) ListVouchers(ctx context.Context) ([]domain.Voucher, error) {
	return list[domain.Voucher](ctx, s.DB, "created_at")
}

func (s *Service) ListBrokerDues(ctx context.Context) ([]domain.BrokerDue, error) {
	return list[domain.BrokerDue](ctx, s.DB, "created_at")
}

func (s *Service) ListTransfers(ctx context.Context) ([]domain.Transfer, error) {
	return list[domain.Transfer](ctx, s.DB, "created_at")
}

func (s *Service) ListAuditLog(ctx context.Context) ([]domain.AuditLog, error) {
	return list[domain.AuditLog](ctx, s.DB, "timestamp DESC")
}
