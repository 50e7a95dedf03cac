package item

import (
	"context"

	"github.com/nekogravitycat/shareit-backend/internal/booking"
)

// BookingLookup exposes items to the booking engine. It reads the repository
// directly because the item service itself depends on the booking engine.
type BookingLookup struct {
	repo Repository
}

func NewBookingLookup(repo Repository) *BookingLookup {
	return &BookingLookup{repo: repo}
}

func (l *BookingLookup) Resolve(ctx context.Context, itemID string) (booking.ItemRef, error) {
	it, err := l.repo.GetByID(ctx, itemID)
	if err != nil {
		return booking.ItemRef{}, err
	}
	return booking.ItemRef{
		ID:        it.ID,
		OwnerID:   it.OwnerID,
		Name:      it.Name,
		Available: it.Available,
	}, nil
}
