package gorm

import (
	"time"

	"skylane/concourse/internal/constants"
)

type Payment struct {
	ID               int64                   `gorm:"column:id;primaryKey;autoIncrement"`
	BookingReference string                  `gorm:"column:booking_reference;type:uuid;not null;index"`
	Amount           float64                 `gorm:"column:amount;not null"`
	Method           constants.PaymentMethod `gorm:"column:method;type:varchar(20);not null"`
	Status           constants.PaymentStatus `gorm:"column:status;type:varchar(10);not null"`
	TransactionID    string                  `gorm:"column:transaction_id;type:varchar(40);not null;uniqueIndex"`
	CreatedAt        time.Time               `gorm:"column:created_at;autoCreateTime"`
}

// TableName specifies the table name for GORM
func (Payment) TableName() string {
	return "payments"
}
