package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type Order struct {
	ID         string          `json:"id" gorm:"type:varchar(36);primaryKey"`
	OrderID    string          `json:"order_id" gorm:"type:varchar(100);uniqueIndex;not null"`
	SessionID  string          `json:"session_id" gorm:"type:varchar(64);index;not null"`
	Receiver   string          `json:"receiver" gorm:"type:varchar(255)"`
	City       string          `json:"city" gorm:"type:varchar(255)"`
	ZipCode    string          `json:"zip_code" gorm:"type:varchar(9)"`
	Items      JSONB           `json:"items" gorm:"not null"`
	Delivery   JSONB           `json:"delivery"`
	Total      decimal.Decimal `json:"total" gorm:"type:decimal(10,2);not null"`
	ReceiptKey string          `json:"receipt_key,omitempty" gorm:"type:varchar(255)"`
	PlacedAt   time.Time       `json:"placed_at" gorm:"index;not null"`
	CreatedAt  time.Time       `json:"created_at" gorm:"autoCreateTime"`
	UpdatedAt  time.Time       `json:"updated_at" gorm:"autoUpdateTime"`
}

func (Order) TableName() string {
	return "orders"
}

func (o *Order) BeforeCreate(_ *gorm.DB) error {
	if o.ID == "" {
		o.ID = uuid.NewString()
	}
	return nil
}
