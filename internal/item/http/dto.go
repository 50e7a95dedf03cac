package http

import (
	"time"

	"github.com/nekogravitycat/shareit-backend/internal/item"
)

type CreateItemRequest struct {
	Name        string  `json:"name"`
	Description string  `json:"description"`
	Available   *bool   `json:"available"`
	RequestID   *string `json:"request_id" binding:"omitempty,uuid"`
}

// UpdateItemRequest is a partial update; absent fields are left unchanged.
type UpdateItemRequest struct {
	Name        *string `json:"name"`
	Description *string `json:"description"`
	Available   *bool   `json:"available"`
}

type SearchItemsRequest struct {
	Text string `form:"text"`
}

type CreateCommentRequest struct {
	Text string `json:"text"`
}

// ItemTag is a brief representation of an item.
type ItemTag struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

type ItemResponse struct {
	ID          string  `json:"id"`
	OwnerID     string  `json:"owner_id"`
	Name        string  `json:"name"`
	Description string  `json:"description"`
	Available   bool    `json:"available"`
	RequestID   *string `json:"request_id"`
}

type BookingTag struct {
	ID       string `json:"id"`
	BookerID string `json:"booker_id"`
}

type CommentResponse struct {
	ID         string    `json:"id"`
	Text       string    `json:"text"`
	AuthorName string    `json:"author_name"`
	Created    time.Time `json:"created"`
}

// ItemDetailResponse adds comments and, for the owner, the neighbouring bookings.
type ItemDetailResponse struct {
	ItemResponse
	LastBooking *BookingTag       `json:"last_booking"`
	NextBooking *BookingTag       `json:"next_booking"`
	Comments    []CommentResponse `json:"comments"`
}

func NewItemResponse(it *item.Item) ItemResponse {
	return ItemResponse{
		ID:          it.ID,
		OwnerID:     it.OwnerID,
		Name:        it.Name,
		Description: it.Description,
		Available:   it.Available,
		RequestID:   it.RequestID,
	}
}

func NewCommentResponse(c *item.Comment) CommentResponse {
	return CommentResponse{
		ID:         c.ID,
		Text:       c.Text,
		AuthorName: c.AuthorName,
		Created:    c.CreatedAt,
	}
}

func newBookingTag(ref *item.BookingRef) *BookingTag {
	if ref == nil {
		return nil
	}
	return &BookingTag{ID: ref.ID, BookerID: ref.BookerID}
}

func NewItemDetailResponse(d *item.Detail) ItemDetailResponse {
	comments := make([]CommentResponse, len(d.Comments))
	for i, c := range d.Comments {
		comments[i] = NewCommentResponse(c)
	}
	return ItemDetailResponse{
		ItemResponse: NewItemResponse(d.Item),
		LastBooking:  newBookingTag(d.LastBooking),
		NextBooking:  newBookingTag(d.NextBooking),
		Comments:     comments,
	}
}
