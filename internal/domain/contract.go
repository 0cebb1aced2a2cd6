package domain

import (
	"time"

	"gorm.io/gorm"
)

// Contract binds a unit to a customer with its payment terms. Type is the installment
// frequency (monthly, quarterly, semiannual, annual).
type Contract struct {
	ID                 string    `gorm:"column:id;primaryKey" json:"id"`
	Code               string    `gorm:"column:code;not null;uniqueIndex" json:"code"`
	UnitID             string    `gorm:"column:unit_id;not null;uniqueIndex" json:"unitId"`
	CustomerID         string    `gorm:"column:customer_id;not null;index" json:"customerId"`
	TotalPrice         float64   `gorm:"column:total_price;type:decimal(18,2)" json:"totalPrice"`
	DownPayment        float64   `gorm:"column:down_payment;type:decimal(18,2)" json:"downPayment"`
	DiscountAmount     float64   `gorm:"column:discount_amount;type:decimal(18,2)" json:"discountAmount"`
	MaintenanceDeposit float64   `gorm:"column:maintenance_deposit;type:decimal(18,2)" json:"maintenanceDeposit"`
	BrokerName         string    `gorm:"column:broker_name" json:"brokerName"`
	BrokerPercent      float64   `gorm:"column:broker_percent;type:decimal(9,4)" json:"brokerPercent"`
	BrokerAmount       float64   `gorm:"column:broker_amount;type:decimal(18,2)" json:"brokerAmount"`
	CommissionSafeID   string    `gorm:"column:commission_safe_id" json:"commissionSafeId"`
	DownPaymentSafeID  string    `gorm:"column:down_payment_safe_id" json:"downPaymentSafeId"`
	Type               string    `gorm:"column:type" json:"type"`
	Count              int       `gorm:"column:count" json:"count"`
	ExtraAnnual        int       `gorm:"column:extra_annual" json:"extraAnnual"`
	AnnualPaymentValue float64   `gorm:"column:annual_payment_value;type:decimal(18,2)" json:"annualPaymentValue"`
	Start              string    `gorm:"column:start" json:"start"`
	CreatedAt          time.Time `json:"createdAt"`
	UpdatedAt          time.Time `json:"updatedAt"`
}

func (Contract) TableName() string {
	return "contracts"
}

func (c *Contract) BeforeCreate(tx *gorm.DB) error {
	ensureID(&c.ID, PrefixContract)
	return nil
}

const (
	InstallmentUnpaid        = "unpaid"
	InstallmentPartiallyPaid = "partially-paid"
	InstallmentPaid          = "paid"
)

// Installment kinds. Regular rows carry the contract frequency as their type.
const (
	InstallmentTypeExtraAnnual = "extra-annual"
	InstallmentTypeMaintenance = "maintenance"
)

// Installment is one scheduled payment of a unit's contract. Amount is what is still
// owed; OriginalAmount never changes.
type Installment struct {
	ID             string    `gorm:"column:id;primaryKey" json:"id"`
	UnitID         string    `gorm:"column:unit_id;not null;index" json:"unitId"`
	ContractID     string    `gorm:"column:contract_id;index" json:"contractId"`
	Type           string    `gorm:"column:type" json:"type"`
	Amount         float64   `gorm:"column:amount;type:decimal(18,2)" json:"amount"`
	OriginalAmount float64   `gorm:"column:original_amount;type:decimal(18,2)" json:"originalAmount"`
	DueDate        string    `gorm:"column:due_date;index" json:"dueDate"`
	PaymentDate    string    `gorm:"column:payment_date" json:"paymentDate"`
	Status         string    `gorm:"column:status;type:varchar(20);not null;default:unpaid" json:"status"`
	CreatedAt      time.Time `json:"createdAt"`
	UpdatedAt      time.Time `json:"updatedAt"`
}

func (Installment) TableName() string {
	return "installments"
}

func (i *Installment) BeforeCreate(tx *gorm.DB) error {
	ensureID(&i.ID, PrefixInstallment)
	if i.Status == "" {
		i.Status = InstallmentUnpaid
	}
	return nil
}
