package item

import (
	"context"
	"strings"
	"time"

	"github.com/nekogravitycat/shareit-backend/internal/booking"
	"github.com/nekogravitycat/shareit-backend/internal/pkg/clock"
)

type CreateRequest struct {
	Name        string
	Description string
	Available   *bool
	RequestID   *string
}

// UpdateRequest holds optional changes; nil fields are left as they are.
type UpdateRequest struct {
	Name        *string
	Description *string
	Available   *bool
}

// BookingHistory is the part of the booking engine the item views read.
type BookingHistory interface {
	FindLastCompleted(ctx context.Context, itemID string, now time.Time) (*booking.Booking, error)
	FindNextUpcoming(ctx context.Context, itemID string, now time.Time) (*booking.Booking, error)
	HasCompletedRental(ctx context.Context, itemID, userID string, now time.Time) (bool, error)
}

type Service interface {
	Create(ctx context.Context, ownerID string, req CreateRequest) (*Item, error)
	Update(ctx context.Context, requesterID, itemID string, req UpdateRequest) (*Item, error)
	GetDetail(ctx context.Context, requesterID, itemID string) (*Detail, error)
	ListByOwner(ctx context.Context, ownerID string) ([]*Detail, error)
	Search(ctx context.Context, text string) ([]*Item, error)
	AddComment(ctx context.Context, authorID, itemID, text string) (*Comment, error)
}

type service struct {
	repo     Repository
	comments CommentRepository
	users    booking.UserLookup
	history  BookingHistory
	clock    clock.Clock
}

func NewService(repo Repository, comments CommentRepository, users booking.UserLookup, history BookingHistory, clk clock.Clock) Service {
	if clk == nil {
		clk = clock.System{}
	}
	return &service{
		repo:     repo,
		comments: comments,
		users:    users,
		history:  history,
		clock:    clk,
	}
}

func (s *service) Create(ctx context.Context, ownerID string, req CreateRequest) (*Item, error) {
	if _, err := s.users.Resolve(ctx, ownerID); err != nil {
		return nil, err
	}

	name := strings.TrimSpace(req.Name)
	if name == "" {
		return nil, ErrNameRequired
	}
	description := strings.TrimSpace(req.Description)
	if description == "" {
		return nil, ErrDescriptionRequired
	}
	if req.Available == nil {
		return nil, ErrAvailableRequired
	}

	it := &Item{
		OwnerID:     ownerID,
		Name:        name,
		Description: description,
		Available:   *req.Available,
		RequestID:   req.RequestID,
		CreatedAt:   s.clock.Now(),
	}
	if err := s.repo.Create(ctx, it); err != nil {
		return nil, err
	}
	return it, nil
}

func (s *service) Update(ctx context.Context, requesterID, itemID string, req UpdateRequest) (*Item, error) {
	it, err := s.repo.GetByID(ctx, itemID)
	if err != nil {
		return nil, err
	}
	if it.OwnerID != requesterID {
		return nil, ErrNotOwner
	}

	if req.Name != nil {
		name := strings.TrimSpace(*req.Name)
		if name == "" {
			return nil, ErrNameRequired
		}
		it.Name = name
	}
	if req.Description != nil {
		description := strings.TrimSpace(*req.Description)
		if description == "" {
			return nil, ErrDescriptionRequired
		}
		it.Description = description
	}
	if req.Available != nil {
		it.Available = *req.Available
	}

	if err := s.repo.Update(ctx, it); err != nil {
		return nil, err
	}
	return it, nil
}

// GetDetail returns the item with its comments. Last and next bookings are
// filled in only when the requester owns the item.
func (s *service) GetDetail(ctx context.Context, requesterID, itemID string) (*Detail, error) {
	it, err := s.repo.GetByID(ctx, itemID)
	if err != nil {
		return nil, err
	}

	comments, err := s.comments.ListByItems(ctx, []string{it.ID})
	if err != nil {
		return nil, err
	}

	d := &Detail{Item: it, Comments: nonNil(comments[it.ID])}
	if it.OwnerID == requesterID {
		if err := s.fillBookings(ctx, d, s.clock.Now()); err != nil {
			return nil, err
		}
	}
	return d, nil
}

func (s *service) ListByOwner(ctx context.Context, ownerID string) ([]*Detail, error) {
	items, err := s.repo.ListByOwner(ctx, ownerID)
	if err != nil {
		return nil, err
	}

	ids := make([]string, len(items))
	for i, it := range items {
		ids[i] = it.ID
	}
	comments, err := s.comments.ListByItems(ctx, ids)
	if err != nil {
		return nil, err
	}

	now := s.clock.Now()
	details := make([]*Detail, len(items))
	for i, it := range items {
		details[i] = &Detail{Item: it, Comments: nonNil(comments[it.ID])}
		if err := s.fillBookings(ctx, details[i], now); err != nil {
			return nil, err
		}
	}
	return details, nil
}

func (s *service) fillBookings(ctx context.Context, d *Detail, now time.Time) error {
	last, err := s.history.FindLastCompleted(ctx, d.Item.ID, now)
	if err != nil {
		return err
	}
	next, err := s.history.FindNextUpcoming(ctx, d.Item.ID, now)
	if err != nil {
		return err
	}
	d.LastBooking = toRef(last)
	d.NextBooking = toRef(next)
	return nil
}

// Search returns available items matching text. Blank text matches nothing.
func (s *service) Search(ctx context.Context, text string) ([]*Item, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return []*Item{}, nil
	}
	return s.repo.Search(ctx, text)
}

// AddComment stores a comment from a user who has completed a rental of the item.
func (s *service) AddComment(ctx context.Context, authorID, itemID, text string) (*Comment, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return nil, ErrCommentTextRequired
	}

	it, err := s.repo.GetByID(ctx, itemID)
	if err != nil {
		return nil, err
	}
	author, err := s.users.Resolve(ctx, authorID)
	if err != nil {
		return nil, err
	}

	now := s.clock.Now()
	rented, err := s.history.HasCompletedRental(ctx, it.ID, author.ID, now)
	if err != nil {
		return nil, err
	}
	if !rented {
		return nil, ErrNoCompletedRental
	}

	c := &Comment{
		ItemID:     it.ID,
		AuthorID:   author.ID,
		AuthorName: author.Name,
		Text:       text,
		CreatedAt:  now,
	}
	if err := s.comments.Create(ctx, c); err != nil {
		return nil, err
	}
	return c, nil
}

func toRef(b *booking.Booking) *BookingRef {
	if b == nil {
		return nil
	}
	return &BookingRef{ID: b.ID, BookerID: b.BookerID}
}

func nonNil(comments []*Comment) []*Comment {
	if comments == nil {
		return []*Comment{}
	}
	return comments
}
