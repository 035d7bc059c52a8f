package invoice

import (
	"context"
	"errors"
	"fmt"
	"math"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"squareinvoice/internal/domain"
	"squareinvoice/internal/pkg/sanitize"
	"squareinvoice/internal/pkg/validator"
	"squareinvoice/internal/square"
)

const currencyUSD = "USD"

type Service struct {
	gateway  paymentLinkCreator
	bookings bookingRepo
	notifs   notifier
	loggerf  func(format string, args ...interface{})
}

func NewService(gateway paymentLinkCreator, bookings bookingRepo, notifs notifier, loggerf func(format string, args ...interface{})) *Service {
	if loggerf == nil {
		loggerf = func(string, ...interface{}) {}
	}
	return &Service{
		gateway:  gateway,
		bookings: bookings,
		notifs:   notifs,
		loggerf:  loggerf,
	}
}

// ValidateInput runs the shared schema checks without side effects. The form
// controller calls it for the Step1→Step2 transition; CreatePaymentLink runs
// the same checks again server-side.
func ValidateInput(in Input) error {
	if fields := validator.Validate(in); fields != nil {
		return ErrMissingFields
	}

	price, err := strconv.ParseFloat(strings.TrimSpace(in.Price), 64)
	if err != nil || math.IsNaN(price) || price <= 0 {
		return ErrInvalidPrice
	}

	if in.Scheduled() && strings.TrimSpace(in.ScheduleDate) == "" {
		return ErrScheduleDateMissing
	}
	return nil
}

// CreatePaymentLink validates and sanitizes the submission, requests a hosted
// payment link from the gateway, then persists the booking. The remote call
// happens first; if the local insert fails afterwards the remote link is left
// orphaned and logged for operator reconciliation.
func (s *Service) CreatePaymentLink(ctx context.Context, in Input) (*CreateResult, error) {
	if err := ValidateInput(in); err != nil {
		return nil, err
	}

	price, _ := strconv.ParseFloat(strings.TrimSpace(in.Price), 64)
	price = math.Round(price*100) / 100
	amountCents := int64(math.Round(price * 100))

	fullName := sanitize.Text(in.FullName)
	customerEmail := sanitize.Email(in.CustomerEmail)
	phone := sanitize.Text(in.Phone)
	message := sanitize.Textarea(in.Message)

	scheduled := in.Scheduled()
	var scheduledDate *time.Time
	var scheduledDateRaw string
	if scheduled {
		scheduledDateRaw = sanitize.Text(in.ScheduleDate)
		parsed, ok := sanitize.Date(scheduledDateRaw)
		if !ok {
			return nil, ErrInvalidScheduleDate
		}
		scheduledDate = &parsed
	}

	paymentNote := ""
	if scheduled {
		paymentNote = "This invoice is Scheduled on: " + scheduledDateRaw
	}

	// A fresh key per request: retried submissions intentionally create a new
	// link instead of deduplicating against the previous one.
	link, err := s.gateway.CreatePaymentLink(ctx, square.CreatePaymentLinkParams{
		IdempotencyKey: uuid.NewString(),
		AmountCents:    amountCents,
		Currency:       currencyUSD,
		PayerName:      fullName,
		Description:    message,
		PaymentNote:    paymentNote,
	})
	if err != nil {
		return nil, err
	}

	b := &domain.Booking{
		FullName:      fullName,
		CustomerEmail: customerEmail,
		Phone:         phone,
		Message:       message,
		TotalAmount:   price,
		IsScheduled:   scheduled,
		ScheduledDate: scheduledDate,
	}
	if err := s.bookings.Create(ctx, b); err != nil {
		s.loggerf("level=error msg=orphaned payment link: booking insert failed after gateway success payment_link=%s amount_cents=%d err=%v",
			link.URL, amountCents, err)
		return nil, fmt.Errorf("%w: %v", ErrPersistence, err)
	}

	if s.notifs != nil {
		s.notifs.BookingCreated(b.ID)
	}

	return &CreateResult{
		Message:   "Invoice sent. Payment Link:",
		BookingID: b.ID,
		BookingData: BookingData{
			FullName:      fullName,
			CustomerEmail: customerEmail,
			Phone:         phone,
			Message:       message,
			TotalAmount:   price,
			IsScheduled:   scheduled,
			ScheduledDate: scheduledDateRaw,
			PaymentLink:   link.URL,
		},
		RawResponse: link.Raw,
		PaymentLink: link.URL,
	}, nil
}

// SavePaymentLink attaches the hosted link to an existing booking. Attaching
// the same link twice is a no-op; an unknown booking id is an explicit
// not-found failure.
func (s *Service) SavePaymentLink(ctx context.Context, in SaveLinkInput) error {
	if strings.TrimSpace(in.Paylink) == "" || strings.TrimSpace(in.BookingID) == "" {
		return ErrMissingFields
	}

	link := sanitize.Text(in.Paylink)
	u, err := url.ParseRequestURI(link)
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return ErrInvalidPaymentLink
	}

	bookingID, err := strconv.ParseInt(strings.TrimSpace(in.BookingID), 10, 64)
	if err != nil || bookingID <= 0 {
		return ErrInvalidBookingID
	}

	if err := s.bookings.AttachPaymentLink(ctx, bookingID, link); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrBookingNotFound
		}
		return fmt.Errorf("%w: %v", ErrPersistence, err)
	}

	if s.notifs != nil {
		s.notifs.PaymentLinkAttached(bookingID, link)
	}
	return nil
}
