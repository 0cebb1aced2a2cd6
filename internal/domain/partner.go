package domain

import (
	"time"

	"gorm.io/gorm"
)

// Partner owns a share of one or more units.
type Partner struct {
	ID        string    `gorm:"column:id;primaryKey" json:"id"`
	Name      string    `gorm:"column:name;not null" json:"name"`
	Phone     string    `gorm:"column:phone" json:"phone"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

func (Partner) TableName() string {
	return "partners"
}

func (p *Partner) BeforeCreate(tx *gorm.DB) error {
	ensureID(&p.ID, PrefixPartner)
	return nil
}

// PartnerShare is one (partner, percent) pair of a group or unit split.
type PartnerShare struct {
	PartnerID string  `json:"partnerId"`
	Percent   float64 `json:"percent"`
}

// PartnerGroup is a reusable ownership split. Partners is filled from the link rows on read.
type PartnerGroup struct {
	ID        string         `gorm:"column:id;primaryKey" json:"id"`
	Name      string         `gorm:"column:name;not null;uniqueIndex" json:"name"`
	Partners  []PartnerShare `gorm:"-" json:"partners"`
	CreatedAt time.Time      `json:"createdAt"`
	UpdatedAt time.Time      `json:"updatedAt"`
}

func (PartnerGroup) TableName() string {
	return "partner_groups"
}

func (g *PartnerGroup) BeforeCreate(tx *gorm.DB) error {
	ensureID(&g.ID, PrefixPartnerGroup)
	return nil
}

type PartnerGroupLink struct {
	ID        string  `gorm:"column:id;primaryKey" json:"id"`
	GroupID   string  `gorm:"column:group_id;not null;index" json:"groupId"`
	PartnerID string  `gorm:"column:partner_id;not null;index" json:"partnerId"`
	Percent   float64 `gorm:"column:percent;type:decimal(9,4)" json:"percent"`
}

func (PartnerGroupLink) TableName() string {
	return "partner_group_links"
}

func (l *PartnerGroupLink) BeforeCreate(tx *gorm.DB) error {
	ensureID(&l.ID, PrefixPartnerGroupLink)
	return nil
}

// UnitPartner is the split of a unit copied from its group when the unit was created.
type UnitPartner struct {
	ID        string  `gorm:"column:id;primaryKey" json:"id"`
	UnitID    string  `gorm:"column:unit_id;not null;index" json:"unitId"`
	PartnerID string  `gorm:"column:partner_id;not null;index" json:"partnerId"`
	Percent   float64 `gorm:"column:percent;type:decimal(9,4)" json:"percent"`
}

func (UnitPartner) TableName() string {
	return "unit_partners"
}

func (u *UnitPartner) BeforeCreate(tx *gorm.DB) error {
	ensureID(&u.ID, PrefixUnitPartner)
	return nil
}

const (
	PartnerDebtPending = "pending"
	PartnerDebtPaid    = "paid"
)

// PartnerDebt records money one partner owes another for a unit.
type PartnerDebt struct {
	ID              string    `gorm:"column:id;primaryKey" json:"id"`
	UnitID          string    `gorm:"column:unit_id;index" json:"unitId"`
	PayingPartnerID string    `gorm:"column:paying_partner_id" json:"payingPartnerId"`
	OwedPartnerID   string    `gorm:"column:owed_partner_id" json:"owedPartnerId"`
	Amount          float64   `gorm:"column:amount;type:decimal(18,2)" json:"amount"`
	DueDate         string    `gorm:"column:due_date" json:"dueDate"`
	Status          string    `gorm:"column:status;default:pending" json:"status"`
	PaymentDate     string    `gorm:"column:payment_date" json:"paymentDate"`
	CreatedAt       time.Time `json:"createdAt"`
	UpdatedAt       time.Time `json:"updatedAt"`
}

func (PartnerDebt) TableName() string {
	return "partner_debts"
}

func (d *PartnerDebt) BeforeCreate(tx *gorm.DB) error {
	ensureID(&d.ID, PrefixPartnerDebt)
	if d.Status == "" {
		d.Status = PartnerDebtPending
	}
	return nil
}
