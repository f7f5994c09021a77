package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Sale represents one completed register transaction.
type Sale struct {
	ID         uint            `json:"id" gorm:"primaryKey"`
	ReceiptID  uuid.UUID       `json:"receipt_id" gorm:"type:char(36);uniqueIndex;not null"`
	VendorID   uint            `json:"vendor_id" gorm:"not null;index"`
	LocationID uint            `json:"location_id" gorm:"not null;index"`
	Amount     decimal.Decimal `json:"amount" gorm:"type:decimal(20,2);not null"`
	ItemCount  int             `json:"item_count" gorm:"not null;default:1"`
	SoldAt     time.Time       `json:"sold_at" gorm:"not null;index"`
	CreatedAt  time.Time       `json:"created_at"`

	// Relations
	Vendor   Vendor   `json:"-" gorm:"foreignKey:VendorID"`
	Location Location `json:"-" gorm:"foreignKey:LocationID"`
}

// BeforeCreate sets the receipt UUID before creating the record.
func (s *Sale) BeforeCreate(tx *gorm.DB) error {
	if s.ReceiptID == uuid.Nil {
		s.ReceiptID = uuid.New()
	}
	return nil
}
