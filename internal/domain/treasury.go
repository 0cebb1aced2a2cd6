package domain

import (
	"time"

	"gorm.io/gorm"
)

// Safe is a named cash account. Balance only changes together with a voucher.
type Safe struct {
	ID        string    `gorm:"column:id;primaryKey" json:"id"`
	Name      string    `gorm:"column:name;not null;uniqueIndex" json:"name"`
	Balance   float64   `gorm:"column:balance;type:decimal(18,2);not null;default:0" json:"balance"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

func (Safe) TableName() string {
	return "safes"
}

func (s *Safe) BeforeCreate(tx *gorm.DB) error {
	ensureID(&s.ID, PrefixSafe)
	return nil
}

const (
	VoucherReceipt = "receipt"
	VoucherPayment = "payment"
)

// Voucher is an append-only record of money entering (receipt) or leaving (payment) a safe.
// LinkedRef points at the contract, installment, transfer or voucher that caused it.
type Voucher struct {
	ID          string    `gorm:"column:id;primaryKey" json:"id"`
	Type        string    `gorm:"column:type;type:varchar(10);not null;index" json:"type"`
	Date        string    `gorm:"column:date" json:"date"`
	Amount      float64   `gorm:"column:amount;type:decimal(18,2);not null" json:"amount"`
	SafeID      string    `gorm:"column:safe_id;not null;index" json:"safeId"`
	Description string    `gorm:"column:description" json:"description"`
	Payer       string    `gorm:"column:payer" json:"payer"`
	Beneficiary string    `gorm:"column:beneficiary" json:"beneficiary"`
	LinkedRef   string    `gorm:"column:linked_ref;index" json:"linked_ref"`
	CreatedAt   time.Time `json:"createdAt"`
}

func (Voucher) TableName() string {
	return "vouchers"
}

func (v *Voucher) BeforeCreate(tx *gorm.DB) error {
	ensureID(&v.ID, PrefixVoucher)
	return nil
}

// Signed returns the voucher's effect on its safe's balance.
func (v Voucher) Signed() float64 {
	if v.Type == VoucherPayment {
		return -v.Amount
	}
	return v.Amount
}

// Transfer moves cash between two safes; it is backed by one voucher on each side.
type Transfer struct {
	ID         string    `gorm:"column:id;primaryKey" json:"id"`
	FromSafeID string    `gorm:"column:from_safe_id;not null;index" json:"fromSafeId"`
	ToSafeID   string    `gorm:"column:to_safe_id;not null;index" json:"toSafeId"`
	Amount     float64   `gorm:"column:amount;type:decimal(18,2);not null" json:"amount"`
	Date       string    `gorm:"column:date" json:"date"`
	Notes      string    `gorm:"column:notes" json:"notes"`
	CreatedAt  time.Time `json:"createdAt"`
}

func (Transfer) TableName() string {
	return "transfers"
}

func (t *Transfer) BeforeCreate(tx *gorm.DB) error {
	ensureID(&t.ID, PrefixTransfer)
	return nil
}
