package invoice

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"gorm.io/gorm"

	"squareinvoice/internal/domain"
	"squareinvoice/internal/square"
)

type mockGateway struct {
	calls      int
	lastParams square.CreatePaymentLinkParams
	link       *square.PaymentLink
	err        error
}

func (m *mockGateway) CreatePaymentLink(ctx context.Context, params square.CreatePaymentLinkParams) (*square.PaymentLink, error) {
	m.calls++
	m.lastParams = params
	if m.err != nil {
		return nil, m.err
	}
	if m.link != nil {
		return m.link, nil
	}
	return &square.PaymentLink{URL: "https://square.link/u/test", Raw: json.RawMessage(`{"payment_link":{"url":"https://square.link/u/test"}}`)}, nil
}

type mockBookingRepo struct {
	createCalls int
	attachCalls int
	nextID      int64
	createErr   error
	attachErr   error
	created     *domain.Booking
	links       map[int64]string
}

func (m *mockBookingRepo) Create(ctx context.Context, b *domain.Booking) error {
	m.createCalls++
	if m.createErr != nil {
		return m.createErr
	}
	if m.nextID == 0 {
		m.nextID = 1
	}
	b.ID = m.nextID
	copied := *b
	m.created = &copied
	return nil
}

func (m *mockBookingRepo) AttachPaymentLink(ctx context.Context, id int64, url string) error {
	m.attachCalls++
	if m.attachErr != nil {
		return m.attachErr
	}
	if m.links == nil {
		m.links = map[int64]string{}
	}
	m.links[id] = url
	return nil
}

func validInput() Input {
	return Input{
		FullName:      "Jane Doe",
		CustomerEmail: "jane@x.com",
		Phone:         "555-1212",
		Message:       "Deposit for shoot",
		Price:         "150",
	}
}

func TestCreatePaymentLink_RoundsToNearestCent(t *testing.T) {
	gw := &mockGateway{}
	repo := &mockBookingRepo{nextID: 7}
	svc := NewService(gw, repo, nil, nil)

	in := validInput()
	in.Price = "19.999"
	res, err := svc.CreatePaymentLink(context.Background(), in)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if gw.lastParams.AmountCents != 2000 {
		t.Fatalf("expected 2000 cents, got %d", gw.lastParams.AmountCents)
	}
	if res.BookingData.TotalAmount != 20.00 {
		t.Fatalf("expected total 20.00, got %v", res.BookingData.TotalAmount)
	}
}

func TestCreatePaymentLink_MissingPhone(t *testing.T) {
	gw := &mockGateway{}
	repo := &mockBookingRepo{}
	svc := NewService(gw, repo, nil, nil)

	in := validInput()
	in.Phone = ""
	_, err := svc.CreatePaymentLink(context.Background(), in)
	if !errors.Is(err, ErrMissingFields) {
		t.Fatalf("expected ErrMissingFields, got %v", err)
	}
	if gw.calls != 0 {
		t.Fatalf("expected no gateway call, got %d", gw.calls)
	}
	if repo.createCalls != 0 {
		t.Fatalf("expected no booking insert, got %d", repo.createCalls)
	}
}

func TestCreatePaymentLink_InvalidPrice(t *testing.T) {
	svc := NewService(&mockGateway{}, &mockBookingRepo{}, nil, nil)

	for _, price := range []string{"0", "-5", "abc", "NaN", ""} {
		in := validInput()
		in.Price = price
		_, err := svc.CreatePaymentLink(context.Background(), in)
		if price == "" {
			if !errors.Is(err, ErrMissingFields) {
				t.Fatalf("price=%q: expected ErrMissingFields, got %v", price, err)
			}
			continue
		}
		if !errors.Is(err, ErrInvalidPrice) {
			t.Fatalf("price=%q: expected ErrInvalidPrice, got %v", price, err)
		}
	}
}

func TestCreatePaymentLink_ScheduleDateRequired(t *testing.T) {
	gw := &mockGateway{}
	svc := NewService(gw, &mockBookingRepo{}, nil, nil)

	in := validInput()
	in.ScheduleInvoice = "on"
	_, err := svc.CreatePaymentLink(context.Background(), in)
	if !errors.Is(err, ErrScheduleDateMissing) {
		t.Fatalf("expected ErrScheduleDateMissing, got %v", err)
	}
	if gw.calls != 0 {
		t.Fatalf("expected no gateway call, got %d", gw.calls)
	}
}

func TestCreatePaymentLink_ScheduledNote(t *testing.T) {
	gw := &mockGateway{}
	repo := &mockBookingRepo{}
	svc := NewService(gw, repo, nil, nil)

	in := validInput()
	in.ScheduleInvoice = "on"
	in.ScheduleDate = "2026-09-15"
	res, err := svc.CreatePaymentLink(context.Background(), in)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if gw.lastParams.PaymentNote != "This invoice is Scheduled on: 2026-09-15" {
		t.Fatalf("unexpected payment note %q", gw.lastParams.PaymentNote)
	}
	if !res.BookingData.IsScheduled || res.BookingData.ScheduledDate != "2026-09-15" {
		t.Fatalf("unexpected booking data %+v", res.BookingData)
	}
	if repo.created.ScheduledDate == nil {
		t.Fatalf("expected scheduled date persisted")
	}
}

func TestCreatePaymentLink_GatewayFailure(t *testing.T) {
	gw := &mockGateway{err: &square.GatewayError{StatusCode: 401, Message: "unauthorized"}}
	repo := &mockBookingRepo{}
	svc := NewService(gw, repo, nil, nil)

	_, err := svc.CreatePaymentLink(context.Background(), validInput())
	var gatewayErr *square.GatewayError
	if !errors.As(err, &gatewayErr) {
		t.Fatalf("expected GatewayError, got %v", err)
	}
	if repo.createCalls != 0 {
		t.Fatalf("expected no booking after gateway failure, got %d inserts", repo.createCalls)
	}
}

func TestCreatePaymentLink_PersistenceFailure(t *testing.T) {
	gw := &mockGateway{}
	repo := &mockBookingRepo{createErr: errors.New("disk full")}
	var logged bool
	svc := NewService(gw, repo, nil, func(string, ...interface{}) { logged = true })

	_, err := svc.CreatePaymentLink(context.Background(), validInput())
	if !errors.Is(err, ErrPersistence) {
		t.Fatalf("expected ErrPersistence, got %v", err)
	}
	if gw.calls != 1 {
		t.Fatalf("expected one gateway call, got %d", gw.calls)
	}
	if !logged {
		t.Fatalf("expected orphaned link to be logged")
	}
}

func TestCreatePaymentLink_Success(t *testing.T) {
	gw := &mockGateway{}
	repo := &mockBookingRepo{nextID: 42}
	svc := NewService(gw, repo, nil, nil)

	res, err := svc.CreatePaymentLink(context.Background(), validInput())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if res.BookingID != 42 {
		t.Fatalf("expected booking id 42, got %d", res.BookingID)
	}
	if res.PaymentLink != "https://square.link/u/test" {
		t.Fatalf("unexpected payment link %q", res.PaymentLink)
	}
	if repo.created.PaymentLink != "" {
		t.Fatalf("payment link must be absent at creation, got %q", repo.created.PaymentLink)
	}
	if gw.lastParams.IdempotencyKey == "" {
		t.Fatalf("expected a fresh idempotency key")
	}
	if gw.lastParams.Currency != "USD" || gw.lastParams.AmountCents != 15000 {
		t.Fatalf("unexpected gateway params %+v", gw.lastParams)
	}
}

func TestCreatePaymentLink_FreshIdempotencyKeyPerRequest(t *testing.T) {
	gw := &mockGateway{}
	svc := NewService(gw, &mockBookingRepo{}, nil, nil)

	_, err := svc.CreatePaymentLink(context.Background(), validInput())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	first := gw.lastParams.IdempotencyKey
	_, err = svc.CreatePaymentLink(context.Background(), validInput())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if gw.lastParams.IdempotencyKey == first {
		t.Fatalf("expected a different key per submission")
	}
}

func TestCreatePaymentLink_SanitizesInput(t *testing.T) {
	gw := &mockGateway{}
	repo := &mockBookingRepo{}
	svc := NewService(gw, repo, nil, nil)

	in := validInput()
	in.FullName = "  <b>Jane</b> Doe "
	in.CustomerEmail = " JANE@X.COM "
	_, err := svc.CreatePaymentLink(context.Background(), in)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if repo.created.FullName != "Jane Doe" {
		t.Fatalf("expected tags stripped, got %q", repo.created.FullName)
	}
	if repo.created.CustomerEmail != "jane@x.com" {
		t.Fatalf("expected normalized email, got %q", repo.created.CustomerEmail)
	}
}

func TestSavePaymentLink_NotFound(t *testing.T) {
	repo := &mockBookingRepo{attachErr: gorm.ErrRecordNotFound}
	svc := NewService(&mockGateway{}, repo, nil, nil)

	err := svc.SavePaymentLink(context.Background(), SaveLinkInput{Paylink: "https://square.link/u/x", BookingID: "99"})
	if !errors.Is(err, ErrBookingNotFound) {
		t.Fatalf("expected ErrBookingNotFound, got %v", err)
	}
}

func TestSavePaymentLink_Idempotent(t *testing.T) {
	repo := &mockBookingRepo{}
	svc := NewService(&mockGateway{}, repo, nil, nil)

	in := SaveLinkInput{Paylink: "https://square.link/u/x", BookingID: "5"}
	if err := svc.SavePaymentLink(context.Background(), in); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := svc.SavePaymentLink(context.Background(), in); err != nil {
		t.Fatalf("unexpected error on repeat: %v", err)
	}
	if repo.links[5] != "https://square.link/u/x" {
		t.Fatalf("unexpected stored link %q", repo.links[5])
	}
}

func TestSavePaymentLink_Validation(t *testing.T) {
	repo := &mockBookingRepo{}
	svc := NewService(&mockGateway{}, repo, nil, nil)

	cases := []struct {
		in   SaveLinkInput
		want error
	}{
		{SaveLinkInput{Paylink: "", BookingID: "5"}, ErrMissingFields},
		{SaveLinkInput{Paylink: "https://square.link/u/x", BookingID: ""}, ErrMissingFields},
		{SaveLinkInput{Paylink: "not a url", BookingID: "5"}, ErrInvalidPaymentLink},
		{SaveLinkInput{Paylink: "ftp://square.link/u/x", BookingID: "5"}, ErrInvalidPaymentLink},
		{SaveLinkInput{Paylink: "https://square.link/u/x", BookingID: "0"}, ErrInvalidBookingID},
		{SaveLinkInput{Paylink: "https://square.link/u/x", BookingID: "abc"}, ErrInvalidBookingID},
	}
	for _, tc := range cases {
		if err := svc.SavePaymentLink(context.Background(), tc.in); !errors.Is(err, tc.want) {
			t.Fatalf("input %+v: expected %v, got %v", tc.in, tc.want, err)
		}
	}
	if repo.attachCalls != 0 {
		t.Fatalf("expected no attach calls, got %d", repo.attachCalls)
	}
}
