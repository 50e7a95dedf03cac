package booking

import (
	"context"
	"errors"
	"time"
)

// ListForBooker returns the requester's own bookings in the given state,
// newest start first.
func (s *Service) ListForBooker(ctx context.Context, bookerID, state string, page Page) ([]*Booking, error) {
	return s.list(ctx, Query{BookerID: bookerID}, state, page)
}

// ListForOwner returns bookings on the requester's items in the given state,
// newest start first.
func (s *Service) ListForOwner(ctx context.Context, ownerID, state string, page Page) ([]*Booking, error) {
	return s.list(ctx, Query{OwnerID: ownerID}, state, page)
}

func (s *Service) list(ctx context.Context, q Query, state string, page Page) ([]*Booking, error) {
	if err := page.Validate(); err != nil {
		return nil, err
	}

	userID := q.BookerID
	if userID == "" {
		userID = q.OwnerID
	}
	if _, err := s.users.Resolve(ctx, userID); err != nil {
		return nil, err
	}

	bucket, err := ParseBucket(state)
	if err != nil {
		return nil, err
	}

	q.Bucket = bucket
	q.Now = s.now()
	q.Offset = page.start()
	q.Limit = page.Limit
	return s.repo.List(ctx, q)
}

// FindLastCompleted returns the booking of the item that ended most recently
// before now, or nil if there is none.
func (s *Service) FindLastCompleted(ctx context.Context, itemID string, now time.Time) (*Booking, error) {
	return optional(s.repo.FindLastCompleted(ctx, itemID, now))
}

// FindNextUpcoming returns the booking of the item that starts soonest after
// now, or nil if there is none.
func (s *Service) FindNextUpcoming(ctx context.Context, itemID string, now time.Time) (*Booking, error) {
	return optional(s.repo.FindNextUpcoming(ctx, itemID, now))
}

// HasCompletedRental reports whether the user holds an approved booking of the
// item that ended before now.
func (s *Service) HasCompletedRental(ctx context.Context, itemID, userID string, now time.Time) (bool, error) {
	return s.repo.HasCompletedRental(ctx, itemID, userID, now)
}

func optional(b *Booking, err error) (*Booking, error) {
	if errors.Is(err, ErrNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return b, nil
}
