package admin

import "squareinvoice/internal/domain"

type LoginRequest struct {
	Password string `json:"password" binding:"required"`
}

type LoginResponse struct {
	Token string `json:"token"`
}

type ListBookingsResponse struct {
	Bookings []domain.Booking `json:"bookings"`
	Total    int64            `json:"total"`
	Limit    int              `json:"limit"`
	Offset   int              `json:"offset"`
}
