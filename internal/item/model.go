package item

import (
	"time"

	"github.com/nekogravitycat/shareit-backend/internal/pkg/apperror"
)

var (
	ErrNotFound            = apperror.NotFound("item not found")
	ErrNotOwner            = apperror.NotPermitted("only the owner can edit an item")
	ErrNameRequired        = apperror.InvalidRequest("name must not be empty")
	ErrDescriptionRequired = apperror.InvalidRequest("description must not be empty")
	ErrAvailableRequired   = apperror.InvalidRequest("available must be set")
	ErrCommentTextRequired = apperror.InvalidRequest("comment text must not be empty")
	ErrNoCompletedRental   = apperror.InvalidRequest("user has not completed a rental of this item")
)

// Item is a thing a user lends out.
type Item struct {
	ID          string
	OwnerID     string
	Name        string
	Description string
	Available   bool
	RequestID   *string
	CreatedAt   time.Time
}

// Comment is feedback left by a user who has rented the item.
type Comment struct {
	ID         string
	ItemID     string
	AuthorID   string
	AuthorName string
	Text       string
	CreatedAt  time.Time
}

// BookingRef points at a booking from the item view.
type BookingRef struct {
	ID       string
	BookerID string
}

// Detail is an item with its comments and, for the owner only, the
// neighbouring bookings.
type Detail struct {
	Item        *Item
	LastBooking *BookingRef
	NextBooking *BookingRef
	Comments    []*Comment
}
