package user

import (
	"context"

	"github.com/nekogravitycat/shareit-backend/internal/booking"
)

// BookingLookup exposes users to the booking engine.
type BookingLookup struct {
	service Service
}

func NewBookingLookup(service Service) *BookingLookup {
	return &BookingLookup{service: service}
}

func (l *BookingLookup) Resolve(ctx context.Context, userID string) (booking.UserRef, error) {
	u, err := l.service.GetByID(ctx, userID)
	if err != nil {
		return booking.UserRef{}, err
	}
	return booking.UserRef{ID: u.ID, Name: u.Name}, nil
}
