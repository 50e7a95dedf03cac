package http

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/nekogravitycat/shareit-backend/internal/booking"
	itemHttp "github.com/nekogravitycat/shareit-backend/internal/item/http"
	"github.com/nekogravitycat/shareit-backend/internal/pkg/request"
	userHttp "github.com/nekogravitycat/shareit-backend/internal/user/http"
)

// CreateBookingRequest is the body of POST /bookings.
// Presence and ordering of start and end are checked by the service.
type CreateBookingRequest struct {
	ItemID string     `json:"item_id" binding:"omitempty,uuid"`
	Start  *time.Time `json:"start"`
	End    *time.Time `json:"end"`
}

// localDateTime is a timestamp without zone, read as UTC.
const localDateTime = "2006-01-02T15:04:05.999999999"

// UnmarshalJSON accepts RFC 3339 timestamps and zone-less local date-times.
func (r *CreateBookingRequest) UnmarshalJSON(data []byte) error {
	var raw struct {
		ItemID string  `json:"item_id"`
		Start  *string `json:"start"`
		End    *string `json:"end"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}

	start, err := parseTimestamp("start", raw.Start)
	if err != nil {
		return err
	}
	end, err := parseTimestamp("end", raw.End)
	if err != nil {
		return err
	}

	r.ItemID = raw.ItemID
	r.Start = start
	r.End = end
	return nil
}

func parseTimestamp(field string, v *string) (*time.Time, error) {
	if v == nil {
		return nil, nil
	}
	if t, err := time.Parse(time.RFC3339Nano, *v); err == nil {
		return &t, nil
	}
	t, err := time.ParseInLocation(localDateTime, *v, time.UTC)
	if err != nil {
		return nil, fmt.Errorf("invalid %s %q: expected RFC 3339 or YYYY-MM-DDTHH:MM:SS", field, *v)
	}
	return &t, nil
}

func (r *CreateBookingRequest) toInterval() booking.Interval {
	var iv booking.Interval
	if r.Start != nil {
		iv.Start = *r.Start
	}
	if r.End != nil {
		iv.End = *r.End
	}
	return iv
}

// DecideBookingRequest holds the approved query parameter of PATCH /bookings/:id.
type DecideBookingRequest struct {
	Approved *bool `form:"approved" binding:"required"`
}

// ListBookingsRequest defines query parameters for listing bookings.
type ListBookingsRequest struct {
	request.PageParams
	State string `form:"state,default=ALL"`
}

func (r *ListBookingsRequest) page() booking.Page {
	return booking.Page{Offset: r.From, Limit: r.Size}
}

type BookingResponse struct {
	ID     string           `json:"id"`
	Start  time.Time        `json:"start"`
	End    time.Time        `json:"end"`
	Status string           `json:"status"`
	Item   itemHttp.ItemTag `json:"item"`
	Booker userHttp.UserTag `json:"booker"`
}

func NewBookingResponse(b *booking.Booking) BookingResponse {
	return BookingResponse{
		ID:     b.ID,
		Start:  b.Start,
		End:    b.End,
		Status: string(b.Status),
		Item:   itemHttp.ItemTag{ID: b.ItemID, Name: b.ItemName},
		Booker: userHttp.UserTag{ID: b.BookerID, Name: b.BookerName},
	}
}

func newBookingResponses(bookings []*booking.Booking) []BookingResponse {
	items := make([]BookingResponse, len(bookings))
	for i, b := range bookings {
		items[i] = NewBookingResponse(b)
	}
	return items
}
