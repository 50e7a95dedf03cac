package booking

import (
	"context"
	"time"

	"github.com/rs/zerolog"

	"github.com/nekogravitycat/shareit-backend/internal/pkg/clock"
)

type CreateRequest struct {
	BookerID string
	ItemID   string
	Interval Interval
}

// Service owns the booking lifecycle and the booking queries.
type Service struct {
	repo  Repository
	users UserLookup
	items ItemLookup
	clock clock.Clock
	log   *zerolog.Logger
}

func NewService(repo Repository, users UserLookup, items ItemLookup, clk clock.Clock, logger *zerolog.Logger) *Service {
	if clk == nil {
		clk = clock.System{}
	}
	if logger == nil {
		nop := zerolog.Nop()
		logger = &nop
	}
	return &Service{
		repo:  repo,
		users: users,
		items: items,
		clock: clk,
		log:   logger,
	}
}

// Create stores a new WAITING booking for an item the requester does not own.
func (s *Service) Create(ctx context.Context, req CreateRequest) (*Booking, error) {
	now := s.clock.Now()

	// 1. Validate input
	if req.Interval.Start.IsZero() || req.Interval.End.IsZero() {
		return nil, ErrMissingInterval
	}
	if req.ItemID == "" {
		return nil, ErrMissingItem
	}
	iv := req.Interval.UTC()
	if err := iv.Validate(now); err != nil {
		return nil, err
	}

	// 2. Resolve collaborators
	booker, err := s.users.Resolve(ctx, req.BookerID)
	if err != nil {
		return nil, err
	}
	item, err := s.items.Resolve(ctx, req.ItemID)
	if err != nil {
		return nil, err
	}

	// 3. Eligibility
	if item.OwnerID == booker.ID {
		return nil, ErrOwnItem
	}
	if !item.Available {
		return nil, ErrItemUnavailable
	}

	b := &Booking{
		ItemID:     item.ID,
		ItemName:   item.Name,
		OwnerID:    item.OwnerID,
		BookerID:   booker.ID,
		BookerName: booker.Name,
		Start:      iv.Start,
		End:        iv.End,
		Status:     StatusWaiting,
		CreatedAt:  now,
		UpdatedAt:  now,
	}
	if err := s.repo.Create(ctx, b); err != nil {
		return nil, err
	}

	s.log.Info().
		Str("booking_id", b.ID).
		Str("item_id", b.ItemID).
		Str("booker_id", b.BookerID).
		Msg("booking created")
	return b, nil
}

// Decide approves or rejects a WAITING booking. Only the item owner may decide,
// and a booking can be decided once.
func (s *Service) Decide(ctx context.Context, ownerID, bookingID string, approve bool) (*Booking, error) {
	b, err := s.repo.GetByID(ctx, bookingID)
	if err != nil {
		return nil, err
	}
	if b.OwnerID != ownerID {
		return nil, ErrNotOwner
	}
	if b.Status != StatusWaiting {
		return nil, ErrAlreadyDecided
	}

	to := StatusRejected
	if approve {
		to = StatusApproved
	}
	now := s.clock.Now()
	if err := s.repo.UpdateStatus(ctx, b.ID, StatusWaiting, to, now); err != nil {
		return nil, err
	}
	b.Status = to
	b.UpdatedAt = now

	s.log.Info().
		Str("booking_id", b.ID).
		Str("status", string(to)).
		Msg("booking decided")
	return b, nil
}

// GetByID returns a booking to its booker or its item owner. Anyone else gets
// ErrNotFound, the same as for a booking that does not exist.
func (s *Service) GetByID(ctx context.Context, requesterID, bookingID string) (*Booking, error) {
	b, err := s.repo.GetByID(ctx, bookingID)
	if err != nil {
		return nil, err
	}
	if requesterID != b.BookerID && requesterID != b.OwnerID {
		s.log.Debug().
			Str("booking_id", bookingID).
			Str("requester_id", requesterID).
			Msg("booking hidden from unrelated user")
		return nil, ErrNotFound
	}
	return b, nil
}

func (s *Service) now() time.Time {
	return s.clock.Now()
}
