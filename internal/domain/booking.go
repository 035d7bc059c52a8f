package domain

import "time"

type Environment string

const (
	EnvSandbox    Environment = "sandbox"
	EnvProduction Environment = "production"
)

// Booking is the persisted record of one invoice/payment-link request.
// All fields except PaymentLink are set at creation and never change;
// PaymentLink is attached at most once by a later call.
type Booking struct {
	ID            int64      `json:"id"`
	FullName      string     `json:"full_name" validate:"required"`
	CustomerEmail string     `json:"customer_email" validate:"required,email"`
	Phone         string     `json:"phone" validate:"required"`
	Message       string     `json:"message,omitempty" gorm:"type:text"`
	TotalAmount   float64    `json:"total_amount" validate:"required,gt=0"`
	IsScheduled   bool       `json:"is_scheduled"`
	ScheduledDate *time.Time `json:"scheduled_date,omitempty"`
	PaymentLink   string     `json:"payment_link,omitempty" gorm:"type:text"`
	CreatedAt     time.Time  `json:"created_at"`
	UpdatedAt     time.Time  `json:"updated_at"`
}
