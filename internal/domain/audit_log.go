package domain

import (
	"time"

	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// AuditLog is written in the same transaction as the operation it describes.
type AuditLog struct {
	ID          string         `gorm:"column:id;primaryKey" json:"id"`
	Timestamp   time.Time      `gorm:"column:timestamp;index" json:"timestamp"`
	Description string         `gorm:"column:description" json:"description"`
	Details     datatypes.JSON `gorm:"column:details" json:"details"`
}

func (AuditLog) TableName() string {
	return "audit_log"
}

func (a *AuditLog) BeforeCreate(tx *gorm.DB) error {
	ensureID(&a.ID, PrefixAuditLog)
	if a.Timestamp.IsZero() {
		a.Timestamp = time.Now().UTC()
	}
	return nil
}

// AppLockID is the primary key of the single app lock row.
const AppLockID = "app"

// AppLock holds the bcrypt hash of the password that locks the UI shell.
type AppLock struct {
	ID           string    `gorm:"column:id;primaryKey" json:"-"`
	PasswordHash string    `gorm:"column:password_hash;not null" json:"-"`
	UpdatedAt    time.Time `json:"updatedAt"`
}

func (AppLock) TableName() string {
	return "app_lock"
}
