package admin

import (
	"context"

	"squareinvoice/internal/domain"
)

type bookingReader interface {
	GetByID(ctx context.Context, id int64) (*domain.Booking, error)
	List(ctx context.Context, limit, offset int) ([]domain.Booking, error)
	Count(ctx context.Context) (int64, error)
}

type tokenIssuer interface {
	GenerateToken(role string) (string, error)
}
