package domain

import (
	"time"

	"gorm.io/gorm"
)

type Broker struct {
	ID        string    `gorm:"column:id;primaryKey" json:"id"`
	Name      string    `gorm:"column:name;not null;uniqueIndex" json:"name"`
	Phone     string    `gorm:"column:phone" json:"phone"`
	Notes     string    `gorm:"column:notes" json:"notes"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

func (Broker) TableName() string {
	return "brokers"
}

func (b *Broker) BeforeCreate(tx *gorm.DB) error {
	ensureID(&b.ID, PrefixBroker)
	return nil
}

const (
	BrokerDuePending = "pending"
	BrokerDuePaid    = "paid"
)

// BrokerDue is a commission owed to a broker for a contract. It is tracked apart from
// the customer ledger and only touches a safe when paid.
type BrokerDue struct {
	ID             string    `gorm:"column:id;primaryKey" json:"id"`
	ContractID     string    `gorm:"column:contract_id;index" json:"contractId"`
	BrokerName     string    `gorm:"column:broker_name" json:"brokerName"`
	Amount         float64   `gorm:"column:amount;type:decimal(18,2)" json:"amount"`
	DueDate        string    `gorm:"column:due_date" json:"dueDate"`
	Status         string    `gorm:"column:status;default:pending" json:"status"`
	PaymentDate    string    `gorm:"column:payment_date" json:"paymentDate"`
	PaidFromSafeID string    `gorm:"column:paid_from_safe_id" json:"paidFromSafeId"`
	CreatedAt      time.Time `json:"createdAt"`
	UpdatedAt      time.Time `json:"updatedAt"`
}

func (BrokerDue) TableName() string {
	return "broker_dues"
}

func (d *BrokerDue) BeforeCreate(tx *gorm.DB) error {
	ensureID(&d.ID, PrefixBrokerDue)
	if d.Status == "" {
		d.Status = BrokerDuePending
	}
	return nil
}
