package invoice

import (
	"context"

	"squareinvoice/internal/domain"
	"squareinvoice/internal/square"
)

type paymentLinkCreator interface {
	CreatePaymentLink(ctx context.Context, params square.CreatePaymentLinkParams) (*square.PaymentLink, error)
}

type bookingRepo interface {
	Create(ctx context.Context, b *domain.Booking) error
	AttachPaymentLink(ctx context.Context, id int64, url string) error
}

type notifier interface {
	BookingCreated(bookingID int64)
	PaymentLinkAttached(bookingID int64, url string)
}
