package domain

import (
	"time"

	"gorm.io/gorm"
)

const (
	UnitAvailable = "available"
	UnitSold      = "sold"
)

// Unit is a sellable property. Code is building-floor-name with whitespace removed.
type Unit struct {
	ID             string    `gorm:"column:id;primaryKey" json:"id"`
	Code           string    `gorm:"column:code;not null;uniqueIndex" json:"code"`
	Name           string    `gorm:"column:name" json:"name"`
	Status         string    `gorm:"column:status;type:varchar(20);not null;default:available" json:"status"`
	Area           string    `gorm:"column:area" json:"area"`
	Floor          string    `gorm:"column:floor" json:"floor"`
	Building       string    `gorm:"column:building" json:"building"`
	Notes          string    `gorm:"column:notes" json:"notes"`
	TotalPrice     float64   `gorm:"column:total_price;type:decimal(18,2)" json:"totalPrice"`
	UnitType       string    `gorm:"column:unit_type" json:"unitType"`
	PartnerGroupID string    `gorm:"column:partner_group_id;index" json:"partnerGroupId"`
	CreatedAt      time.Time `json:"createdAt"`
	UpdatedAt      time.Time `json:"updatedAt"`
}

func (Unit) TableName() string {
	return "units"
}

func (u *Unit) BeforeCreate(tx *gorm.DB) error {
	ensureID(&u.ID, PrefixUnit)
	if u.Status == "" {
		u.Status = UnitAvailable
	}
	return nil
}
