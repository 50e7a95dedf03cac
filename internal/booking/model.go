package booking

import (
	"context"
	"time"

	"github.com/nekogravitycat/shareit-backend/internal/pkg/apperror"
)

var (
	ErrNotFound        = apperror.NotFound("booking not found")
	ErrMissingInterval = apperror.InvalidRequest("start and end are required")
	ErrMissingItem     = apperror.InvalidRequest("item id is required")
	ErrInvalidInterval = apperror.InvalidRequest("end must be after start")
	ErrStartInPast     = apperror.InvalidRequest("start must not be in the past")
	ErrItemUnavailable = apperror.InvalidRequest("item is not available for booking")
	ErrAlreadyDecided  = apperror.InvalidRequest("booking already decided")
	ErrInvalidPage     = apperror.InvalidRequest("from must be >= 0 and size must be > 0")
	ErrNotOwner        = apperror.NotPermitted("only the item owner can approve or reject a booking")
	// Booking one's own item is reported as a missing item so ownership is not revealed.
	ErrOwnItem = apperror.NotFound("item not found")
)

type Status string

const (
	StatusWaiting  Status = "WAITING"
	StatusApproved Status = "APPROVED"
	StatusRejected Status = "REJECTED"
)

type Booking struct {
	ID         string
	ItemID     string
	ItemName   string
	OwnerID    string
	BookerID   string
	BookerName string
	Start      time.Time
	End        time.Time
	Status     Status
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

func (b *Booking) Interval() Interval {
	return Interval{Start: b.Start, End: b.End}
}

// UserRef is the view of a user the booking engine needs.
type UserRef struct {
	ID   string
	Name string
}

// ItemRef is the view of an item the booking engine needs.
type ItemRef struct {
	ID        string
	OwnerID   string
	Name      string
	Available bool
}

// UserLookup resolves users. Resolve fails with a NotFound error if the user is absent.
type UserLookup interface {
	Resolve(ctx context.Context, userID string) (UserRef, error)
}

// ItemLookup resolves items. Resolve fails with a NotFound error if the item is absent.
type ItemLookup interface {
	Resolve(ctx context.Context, itemID string) (ItemRef, error)
}

// Query selects bookings for one booker or one owner.
// Exactly one of BookerID and OwnerID is set.
type Query struct {
	BookerID string
	OwnerID  string
	Bucket   Bucket
	Now      time.Time
	Offset   int
	Limit    int
}
