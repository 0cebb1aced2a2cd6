package domain

import (
	"time"

	"gorm.io/gorm"
)

const CustomerStatusActive = "active"

// Customer is the buyer side of a contract.
type Customer struct {
	ID         string    `gorm:"column:id;primaryKey" json:"id"`
	Name       string    `gorm:"column:name;not null" json:"name"`
	Phone      string    `gorm:"column:phone" json:"phone"`
	NationalID string    `gorm:"column:national_id" json:"nationalId"`
	Address    string    `gorm:"column:address" json:"address"`
	Status     string    `gorm:"column:status;default:active" json:"status"`
	Notes      string    `gorm:"column:notes" json:"notes"`
	CreatedAt  time.Time `json:"createdAt"`
	UpdatedAt  time.Time `json:"updatedAt"`
}

func (Customer) TableName() string {
	return "customers"
}

func (c *Customer) BeforeCreate(tx *gorm.DB) error {
	ensureID(&c.ID, PrefixCustomer)
	if c.Status == "" {
		c.Status = CustomerStatusActive
	}
	return nil
}
