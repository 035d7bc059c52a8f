package invoice

import "encoding/json"

// Input is the shared validation schema for one invoice submission. Both the
// form controller and the HTTP handler consume it, so client-side and
// server-side validation cannot drift.
//
// ScheduleInvoice carries the raw checkbox value; any non-empty value counts
// as checked, matching how browsers submit checkboxes.
type Input struct {
	FullName        string `form:"full_name" json:"full_name" validate:"required"`
	CustomerEmail   string `form:"customer_email" json:"customer_email" validate:"required"`
	Phone           string `form:"phone" json:"phone" validate:"required"`
	Message         string `form:"message" json:"message"`
	Price           string `form:"price" json:"price" validate:"required"`
	ScheduleInvoice string `form:"schedule_invoice" json:"schedule_invoice"`
	ScheduleDate    string `form:"schedule_date" json:"schedule_date"`
}

// Scheduled reports whether the schedule checkbox was submitted.
func (in Input) Scheduled() bool { return in.ScheduleInvoice != "" }

// SaveLinkInput is the contract of the link-persistence endpoint.
type SaveLinkInput struct {
	Paylink   string `form:"paylink" json:"paylink"`
	BookingID string `form:"booking_id" json:"booking_id"`
}

// BookingData is the booking snapshot echoed back to the client. It mirrors
// the created record plus the payment link returned by the gateway, which is
// not yet attached locally at this point.
type BookingData struct {
	FullName      string  `json:"full_name"`
	CustomerEmail string  `json:"customer_email"`
	Phone         string  `json:"phone"`
	Message       string  `json:"message"`
	TotalAmount   float64 `json:"total_amount"`
	IsScheduled   bool    `json:"is_scheduled"`
	ScheduledDate string  `json:"scheduled_date,omitempty"`
	PaymentLink   string  `json:"payment_link"`
}

type CreateResult struct {
	Message     string
	BookingID   int64
	BookingData BookingData
	// RawResponse is the gateway response body, passed through verbatim.
	RawResponse json.RawMessage
	PaymentLink string
}
