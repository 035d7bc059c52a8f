package repository

import (
	"context"
	"time"

	"squareinvoice/internal/domain"

	"gorm.io/gorm"
)

type BookingRepository struct {
	db *gorm.DB
}

func NewBookingRepository(db *gorm.DB) *BookingRepository {
	return &BookingRepository{db: db}
}

type bookingModel struct {
	ID            int64      `gorm:"column:id;primaryKey"`
	FullName      string     `gorm:"column:full_name"`
	CustomerEmail string     `gorm:"column:customer_email"`
	Phone         string     `gorm:"column:phone"`
	Message       *string    `gorm:"column:message"`
	TotalAmount   float64    `gorm:"column:total_amount"`
	IsScheduled   bool       `gorm:"column:is_scheduled"`
	ScheduledDate *time.Time `gorm:"column:scheduled_date"`
	PaymentLink   *string    `gorm:"column:payment_link"`
	CreatedAt     time.Time  `gorm:"column:created_at"`
	UpdatedAt     time.Time  `gorm:"column:updated_at"`
}

func (bookingModel) TableName() string { return "bookings" }

func toDomainBooking(m bookingModel) *domain.Booking {
	var message, paymentLink string
	if m.Message != nil {
		message = *m.Message
	}
	if m.PaymentLink != nil {
		paymentLink = *m.PaymentLink
	}

	return &domain.Booking{
		ID:            m.ID,
		FullName:      m.FullName,
		CustomerEmail: m.CustomerEmail,
		Phone:         m.Phone,
		Message:       message,
		TotalAmount:   m.TotalAmount,
		IsScheduled:   m.IsScheduled,
		ScheduledDate: m.ScheduledDate,
		PaymentLink:   paymentLink,
		CreatedAt:     m.CreatedAt,
		UpdatedAt:     m.UpdatedAt,
	}
}

func toBookingModel(b *domain.Booking) bookingModel {
	var message, paymentLink *string
	if b.Message != "" {
		v := b.Message
		message = &v
	}
	if b.PaymentLink != "" {
		v := b.PaymentLink
		paymentLink = &v
	}

	return bookingModel{
		ID:            b.ID,
		FullName:      b.FullName,
		CustomerEmail: b.CustomerEmail,
		Phone:         b.Phone,
		Message:       message,
		TotalAmount:   b.TotalAmount,
		IsScheduled:   b.IsScheduled,
		ScheduledDate: b.ScheduledDate,
		PaymentLink:   paymentLink,
		CreatedAt:     b.CreatedAt,
		UpdatedAt:     b.UpdatedAt,
	}
}

func (r *BookingRepository) Create(ctx context.Context, b *domain.Booking) error {
	m := toBookingModel(b)
	tx := r.db.WithContext(ctx).Create(&m)
	if tx.Error != nil {
		return tx.Error
	}
	*b = *toDomainBooking(m)
	return nil
}

func (r *BookingRepository) GetByID(ctx context.Context, id int64) (*domain.Booking, error) {
	var m bookingModel
	tx := r.db.WithContext(ctx).First(&m, id)
	if tx.Error != nil {
		return nil, tx.Error
	}
	return toDomainBooking(m), nil
}

// AttachPaymentLink sets the payment link on an existing booking. Returns
// gorm.ErrRecordNotFound when the id does not resolve to a booking.
func (r *BookingRepository) AttachPaymentLink(ctx context.Context, id int64, url string) error {
	tx := r.db.WithContext(ctx).
		Model(&bookingModel{}).
		Where("id = ?", id).
		Update("payment_link", url)
	if tx.Error != nil {
		return tx.Error
	}
	if tx.RowsAffected == 0 {
		// The update matched no row; distinguish missing booking from the
		// no-op case where the same link is already attached.
		var count int64
		if err := r.db.WithContext(ctx).Model(&bookingModel{}).Where("id = ?", id).Count(&count).Error; err != nil {
			return err
		}
		if count == 0 {
			return gorm.ErrRecordNotFound
		}
	}
	return nil
}

func (r *BookingRepository) List(ctx context.Context, limit, offset int) ([]domain.Booking, error) {
	var models []bookingModel
	tx := r.db.WithContext(ctx).
		Order("created_at DESC").
		Limit(limit).
		Offset(offset).
		Find(&models)
	if tx.Error != nil {
		return nil, tx.Error
	}

	out := make([]domain.Booking, 0, len(models))
	for _, m := range models {
		out = append(out, *toDomainBooking(m))
	}
	return out, nil
}

func (r *BookingRepository) Count(ctx context.Context) (int64, error) {
	var count int64
	tx := r.db.WithContext(ctx).Model(&bookingModel{}).Count(&count)
	return count, tx.Error
}
