package admin

import (
	"context"
	"errors"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"squareinvoice/internal/domain"
)

const (
	roleAdmin        = "admin"
	defaultPageLimit = 20
	maxPageLimit     = 100
)

type Service struct {
	bookings     bookingReader
	jwt          tokenIssuer
	passwordHash string
}

func NewService(bookings bookingReader, jwt tokenIssuer, passwordHash string) *Service {
	return &Service{
		bookings:     bookings,
		jwt:          jwt,
		passwordHash: passwordHash,
	}
}

// Login exchanges the shared operator password for a bearer token.
func (s *Service) Login(password string) (*LoginResponse, error) {
	if s.passwordHash == "" {
		return nil, ErrNotConfigured
	}
	if err := bcrypt.CompareHashAndPassword([]byte(s.passwordHash), []byte(password)); err != nil {
		return nil, ErrInvalidCredentials
	}

	token, err := s.jwt.GenerateToken(roleAdmin)
	if err != nil {
		return nil, err
	}
	return &LoginResponse{Token: token}, nil
}

func (s *Service) ListBookings(ctx context.Context, limit, offset int) (*ListBookingsResponse, error) {
	if limit <= 0 {
		limit = defaultPageLimit
	}
	if limit > maxPageLimit {
		limit = maxPageLimit
	}
	if offset < 0 {
		offset = 0
	}

	bookings, err := s.bookings.List(ctx, limit, offset)
	if err != nil {
		return nil, err
	}
	total, err := s.bookings.Count(ctx)
	if err != nil {
		return nil, err
	}

	return &ListBookingsResponse{
		Bookings: bookings,
		Total:    total,
		Limit:    limit,
		Offset:   offset,
	}, nil
}

func (s *Service) GetBooking(ctx context.Context, id int64) (*domain.Booking, error) {
	b, err := s.bookings.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return b, nil
}
