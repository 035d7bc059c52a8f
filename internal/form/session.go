// Package form implements the multi-step invoice form as a session state
// machine: Collecting → Reviewing → Result. State is ephemeral to one
// session; nothing is persisted on this side.
package form

import (
	"context"
	"errors"
	"math"
	"strconv"
	"strings"

	"squareinvoice/internal/modules/invoice"
)

type Step int

const (
	StepCollecting Step = iota + 1
	StepReviewing
	StepResult
)

var (
	ErrNotCollecting = errors.New("form is not on the collecting step")
	ErrNotReviewing  = errors.New("form is not on the reviewing step")
	ErrBusy          = errors.New("a submission is already in flight")
)

type invoiceCreator interface {
	CreatePaymentLink(ctx context.Context, in invoice.Input) (*invoice.CreateResult, error)
}

type linkSaver interface {
	SavePaymentLink(ctx context.Context, in invoice.SaveLinkInput) error
}

// Summary is what the review step renders, echoing the collected values with
// the price formatted to two decimals.
type Summary struct {
	FullName      string
	CustomerEmail string
	Phone         string
	Message       string
	Price         string
	Scheduled     bool
	ScheduledDate string
}

type Session struct {
	invoices invoiceCreator
	links    linkSaver
	loggerf  func(format string, args ...interface{})

	step        Step
	input       invoice.Input
	submitting  bool
	lastError   string
	bookingID   int64
	paymentLink string
}

func NewSession(invoices invoiceCreator, links linkSaver, loggerf func(format string, args ...interface{})) *Session {
	if loggerf == nil {
		loggerf = func(string, ...interface{}) {}
	}
	return &Session{
		invoices: invoices,
		links:    links,
		loggerf:  loggerf,
		step:     StepCollecting,
	}
}

func (s *Session) Step() Step        { return s.step }
func (s *Session) Submitting() bool  { return s.submitting }
func (s *Session) LastError() string { return s.lastError }

// Input returns the retained Step1 values. After Back the collecting step
// renders from these, so nothing the user typed is lost.
func (s *Session) Input() invoice.Input { return s.input }

func (s *Session) BookingID() int64    { return s.bookingID }
func (s *Session) PaymentLink() string { return s.paymentLink }

// Next validates the collected input against the shared schema and moves to
// the review step. A missing schedule date is a distinct error so the UI can
// raise a blocking prompt instead of the inline message.
func (s *Session) Next(in invoice.Input) error {
	if s.step != StepCollecting {
		return ErrNotCollecting
	}
	if err := invoice.ValidateInput(in); err != nil {
		return err
	}
	s.input = in
	s.step = StepReviewing
	return nil
}

// Back returns to the collecting step. The retained input stays as is.
func (s *Session) Back() error {
	if s.step != StepReviewing {
		return ErrNotReviewing
	}
	s.step = StepCollecting
	return nil
}

func (s *Session) Summary() Summary {
	price, _ := strconv.ParseFloat(strings.TrimSpace(s.input.Price), 64)
	price = math.Round(price*100) / 100

	return Summary{
		FullName:      s.input.FullName,
		CustomerEmail: s.input.CustomerEmail,
		Phone:         s.input.Phone,
		Message:       s.input.Message,
		Price:         strconv.FormatFloat(price, 'f', 2, 64),
		Scheduled:     s.input.Scheduled(),
		ScheduledDate: s.input.ScheduleDate,
	}
}

// GenerateInvoice performs the single submission for this session. On success
// the session reaches the terminal result step and the link-persistence call
// is issued best-effort; its failure is logged and never surfaced, since the
// user already has the payment link. On failure the session stays on the
// review step with the error text retained.
func (s *Session) GenerateInvoice(ctx context.Context) (*invoice.CreateResult, error) {
	if s.step != StepReviewing {
		return nil, ErrNotReviewing
	}
	if s.submitting {
		return nil, ErrBusy
	}

	s.submitting = true
	res, err := s.invoices.CreatePaymentLink(ctx, s.input)
	s.submitting = false

	if err != nil {
		s.lastError = err.Error()
		return nil, err
	}

	s.lastError = ""
	s.step = StepResult
	s.bookingID = res.BookingID
	s.paymentLink = res.PaymentLink

	if s.links != nil {
		save := invoice.SaveLinkInput{
			Paylink:   res.PaymentLink,
			BookingID: strconv.FormatInt(res.BookingID, 10),
		}
		if err := s.links.SavePaymentLink(ctx, save); err != nil {
			s.loggerf("level=warn msg=failed to attach payment link booking_id=%d err=%v", res.BookingID, err)
		}
	}

	return res, nil
}
