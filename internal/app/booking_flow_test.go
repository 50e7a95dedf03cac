package app

import (
	"fmt"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	bookingHttp "github.com/nekogravitycat/shareit-backend/internal/booking/http"
	itemHttp "github.com/nekogravitycat/shareit-backend/internal/item/http"
	"github.com/nekogravitycat/shareit-backend/internal/pkg/ratelimit"
	"github.com/nekogravitycat/shareit-backend/internal/pkg/response"
	userHttp "github.com/nekogravitycat/shareit-backend/internal/user/http"
)

func ptr[T any](v T) *T { return &v }

func TestBookingLifecycleOverHTTP(t *testing.T) {
	a := newTestApp(t, nil)

	// ==== Setup Users & Item ====
	owner := a.createTestUser(t, "owner")
	booker := a.createTestUser(t, "booker")
	stranger := a.createTestUser(t, "stranger")

	w := a.executeRequest("POST", "/v1/items", itemHttp.CreateItemRequest{
		Name:        "Drill",
		Description: "Cordless drill",
		Available:   ptr(true),
	}, owner.ID)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	item := decode[itemHttp.ItemResponse](t, w)

	var bookingID string

	t.Run("Create Booking: Success", func(t *testing.T) {
		w := a.executeRequest("POST", "/v1/bookings", bookingHttp.CreateBookingRequest{
			ItemID: item.ID,
			Start:  ptr(epoch.Add(time.Hour)),
			End:    ptr(epoch.Add(2 * time.Hour)),
		}, booker.ID)
		require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

		resp := decode[bookingHttp.BookingResponse](t, w)
		assert.NotEmpty(t, resp.ID)
		assert.Equal(t, "WAITING", resp.Status)
		assert.Equal(t, item.ID, resp.Item.ID)
		assert.Equal(t, "Drill", resp.Item.Name)
		assert.Equal(t, booker.ID, resp.Booker.ID)
		bookingID = resp.ID
	})

	t.Run("Create Booking: Own Item Is Not Found", func(t *testing.T) {
		w := a.executeRequest("POST", "/v1/bookings", bookingHttp.CreateBookingRequest{
			ItemID: item.ID,
			Start:  ptr(epoch.Add(time.Hour)),
			End:    ptr(epoch.Add(2 * time.Hour)),
		}, owner.ID)
		assert.Equal(t, http.StatusNotFound, w.Code)
	})

	t.Run("Create Booking: Invalid Intervals", func(t *testing.T) {
		cases := map[string]bookingHttp.CreateBookingRequest{
			"equal":    {ItemID: item.ID, Start: ptr(epoch.Add(time.Hour)), End: ptr(epoch.Add(time.Hour))},
			"inverted": {ItemID: item.ID, Start: ptr(epoch.Add(2 * time.Hour)), End: ptr(epoch.Add(time.Hour))},
			"past":     {ItemID: item.ID, Start: ptr(epoch.Add(-time.Hour)), End: ptr(epoch.Add(time.Hour))},
			"missing":  {ItemID: item.ID},
		}
		for name, body := range cases {
			w := a.executeRequest("POST", "/v1/bookings", body, booker.ID)
			assert.Equal(t, http.StatusBadRequest, w.Code, name)
		}
	})

	t.Run("Create Booking: Missing Header", func(t *testing.T) {
		w := a.executeRequest("POST", "/v1/bookings", bookingHttp.CreateBookingRequest{ItemID: item.ID}, "")
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("Get Booking: Booker And Owner Only", func(t *testing.T) {
		path := fmt.Sprintf("/v1/bookings/%s", bookingID)
		assert.Equal(t, http.StatusOK, a.executeRequest("GET", path, nil, booker.ID).Code)
		assert.Equal(t, http.StatusOK, a.executeRequest("GET", path, nil, owner.ID).Code)
		assert.Equal(t, http.StatusNotFound, a.executeRequest("GET", path, nil, stranger.ID).Code)
	})

	t.Run("Decide Booking: Permissions And Input", func(t *testing.T) {
		path := fmt.Sprintf("/v1/bookings/%s", bookingID)
		assert.Equal(t, http.StatusForbidden, a.executeRequest("PATCH", path+"?approved=true", nil, booker.ID).Code)
		assert.Equal(t, http.StatusBadRequest, a.executeRequest("PATCH", path, nil, owner.ID).Code)
		assert.Equal(t, http.StatusBadRequest, a.executeRequest("PATCH", path+"?approved=maybe", nil, owner.ID).Code)
	})

	t.Run("Decide Booking: Approve Once", func(t *testing.T) {
		path := fmt.Sprintf("/v1/bookings/%s", bookingID)
		w := a.executeRequest("PATCH", path+"?approved=true", nil, owner.ID)
		require.Equal(t, http.StatusOK, w.Code, w.Body.String())
		assert.Equal(t, "APPROVED", decode[bookingHttp.BookingResponse](t, w).Status)

		w = a.executeRequest("PATCH", path+"?approved=false", nil, owner.ID)
		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Contains(t, decode[response.ErrorResponse](t, w).Error, "already decided")
	})

	t.Run("List Bookings: States And Paging", func(t *testing.T) {
		w := a.executeRequest("GET", "/v1/bookings?state=future", nil, booker.ID)
		require.Equal(t, http.StatusOK, w.Code)
		page := decode[response.PageResponse[bookingHttp.BookingResponse]](t, w)
		require.Len(t, page.Items, 1)
		assert.Equal(t, bookingID, page.Items[0].ID)
		assert.Equal(t, 10, page.Size)

		w = a.executeRequest("GET", "/v1/bookings/owner?state=ALL&from=0&size=5", nil, owner.ID)
		require.Equal(t, http.StatusOK, w.Code)
		assert.Len(t, decode[response.PageResponse[bookingHttp.BookingResponse]](t, w).Items, 1)

		w = a.executeRequest("GET", "/v1/bookings?state=current", nil, booker.ID)
		require.Equal(t, http.StatusOK, w.Code)
		assert.Empty(t, decode[response.PageResponse[bookingHttp.BookingResponse]](t, w).Items)

		w = a.executeRequest("GET", "/v1/bookings?state=UNSUPPORTED_STATUS", nil, booker.ID)
		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Equal(t, "Unknown state: UNSUPPORTED_STATUS", decode[response.ErrorResponse](t, w).Error)

		assert.Equal(t, http.StatusBadRequest, a.executeRequest("GET", "/v1/bookings?from=-1", nil, booker.ID).Code)
		assert.Equal(t, http.StatusBadRequest, a.executeRequest("GET", "/v1/bookings?size=0", nil, booker.ID).Code)
	})

	t.Run("List Bookings: Unknown User", func(t *testing.T) {
		w := a.executeRequest("GET", "/v1/bookings", nil, "7d1d6c9a-3c55-4a8e-bb5e-2f1c0c8d9e11")
		assert.Equal(t, http.StatusNotFound, w.Code)
	})

	t.Run("Comment: Gated By Completed Rental", func(t *testing.T) {
		path := fmt.Sprintf("/v1/items/%s/comment", item.ID)

		w := a.executeRequest("POST", path, itemHttp.CreateCommentRequest{Text: "Great drill"}, booker.ID)
		assert.Equal(t, http.StatusBadRequest, w.Code)

		a.clock.Advance(3 * time.Hour)

		w = a.executeRequest("POST", path, itemHttp.CreateCommentRequest{Text: ""}, booker.ID)
		assert.Equal(t, http.StatusBadRequest, w.Code)

		w = a.executeRequest("POST", path, itemHttp.CreateCommentRequest{Text: "Great drill"}, booker.ID)
		require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
		comment := decode[itemHttp.CommentResponse](t, w)
		assert.Equal(t, "booker", comment.AuthorName)

		w = a.executeRequest("POST", path, itemHttp.CreateCommentRequest{Text: "Me too"}, stranger.ID)
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("Item Detail: Bookings Shown To Owner Only", func(t *testing.T) {
		path := fmt.Sprintf("/v1/items/%s", item.ID)

		w := a.executeRequest("GET", path, nil, owner.ID)
		require.Equal(t, http.StatusOK, w.Code)
		detail := decode[itemHttp.ItemDetailResponse](t, w)
		require.NotNil(t, detail.LastBooking)
		assert.Equal(t, bookingID, detail.LastBooking.ID)
		assert.Equal(t, booker.ID, detail.LastBooking.BookerID)
		assert.Nil(t, detail.NextBooking)
		require.Len(t, detail.Comments, 1)

		w = a.executeRequest("GET", path, nil, booker.ID)
		require.Equal(t, http.StatusOK, w.Code)
		detail = decode[itemHttp.ItemDetailResponse](t, w)
		assert.Nil(t, detail.LastBooking)
		assert.Len(t, detail.Comments, 1)

		w = a.executeRequest("GET", "/v1/bookings?state=PAST", nil, booker.ID)
		require.Equal(t, http.StatusOK, w.Code)
		assert.Len(t, decode[response.PageResponse[bookingHttp.BookingResponse]](t, w).Items, 1)
	})
}

func TestCreateBookingWithLocalDateTime(t *testing.T) {
	a := newTestApp(t, nil)
	owner := a.createTestUser(t, "owner")
	booker := a.createTestUser(t, "booker")

	w := a.executeRequest("POST", "/v1/items", itemHttp.CreateItemRequest{Name: "Drill", Description: "Cordless drill", Available: ptr(true)}, owner.ID)
	require.Equal(t, http.StatusCreated, w.Code)
	item := decode[itemHttp.ItemResponse](t, w)

	w = a.executeRequest("POST", "/v1/bookings", map[string]string{
		"item_id": item.ID,
		"start":   "2030-06-01T13:00:00",
		"end":     "2030-06-01T14:00:00",
	}, booker.ID)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	resp := decode[bookingHttp.BookingResponse](t, w)
	assert.True(t, epoch.Add(time.Hour).Equal(resp.Start))
	assert.True(t, epoch.Add(2*time.Hour).Equal(resp.End))

	w = a.executeRequest("POST", "/v1/bookings", map[string]string{
		"item_id": item.ID,
		"start":   "tomorrow",
		"end":     "2030-06-01T14:00:00",
	}, booker.ID)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestItemEndpoints(t *testing.T) {
	a := newTestApp(t, nil)
	owner := a.createTestUser(t, "owner")
	other := a.createTestUser(t, "other")

	w := a.executeRequest("POST", "/v1/items", itemHttp.CreateItemRequest{Name: "Saw", Description: "Hand saw", Available: ptr(true)}, owner.ID)
	require.Equal(t, http.StatusCreated, w.Code)
	saw := decode[itemHttp.ItemResponse](t, w)

	w = a.executeRequest("POST", "/v1/items", itemHttp.CreateItemRequest{Name: "Saw", Description: "Hand saw"}, owner.ID)
	assert.Equal(t, http.StatusBadRequest, w.Code, "available is required")

	w = a.executeRequest("POST", "/v1/items", itemHttp.CreateItemRequest{Name: "Saw", Description: "Hand saw", Available: ptr(true)},
		"7d1d6c9a-3c55-4a8e-bb5e-2f1c0c8d9e11")
	assert.Equal(t, http.StatusNotFound, w.Code)

	path := fmt.Sprintf("/v1/items/%s", saw.ID)
	w = a.executeRequest("PATCH", path, itemHttp.UpdateItemRequest{Name: ptr("My saw")}, other.ID)
	assert.Equal(t, http.StatusForbidden, w.Code)

	w = a.executeRequest("PATCH", path, itemHttp.UpdateItemRequest{Available: ptr(false)}, owner.ID)
	require.Equal(t, http.StatusOK, w.Code)
	assert.False(t, decode[itemHttp.ItemResponse](t, w).Available)

	w = a.executeRequest("GET", "/v1/items/search?text=SAW", nil, other.ID)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Empty(t, decode[[]itemHttp.ItemResponse](t, w), "unavailable items are not found")

	w = a.executeRequest("GET", "/v1/items/search?text=", nil, other.ID)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "[]", w.Body.String())

	w = a.executeRequest("GET", "/v1/items", nil, owner.ID)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Len(t, decode[[]itemHttp.ItemDetailResponse](t, w), 1)

	w = a.executeRequest("GET", "/v1/items/not-a-uuid", nil, owner.ID)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestUserEndpoints(t *testing.T) {
	a := newTestApp(t, nil)
	ann := a.createTestUser(t, "ann")

	w := a.executeRequest("POST", "/v1/users", userHttp.CreateUserRequest{Name: "Ann 2", Email: "ann@share.it"}, "")
	assert.Equal(t, http.StatusConflict, w.Code)

	w = a.executeRequest("POST", "/v1/users", userHttp.CreateUserRequest{Name: "Bad", Email: "not-an-email"}, "")
	assert.Equal(t, http.StatusBadRequest, w.Code)

	path := fmt.Sprintf("/v1/users/%s", ann.ID)
	w = a.executeRequest("PATCH", path, userHttp.UpdateUserRequest{Name: ptr("Annie")}, "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "Annie", decode[userHttp.UserResponse](t, w).Name)

	w = a.executeRequest("GET", "/v1/users", nil, "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Len(t, decode[[]userHttp.UserResponse](t, w), 1)

	assert.Equal(t, http.StatusNoContent, a.executeRequest("DELETE", path, nil, "").Code)
	assert.Equal(t, http.StatusNotFound, a.executeRequest("GET", path, nil, "").Code)
}

func TestOpsEndpointsAndRateLimit(t *testing.T) {
	a := newTestApp(t, ratelimit.NewMemory(2, time.Minute))

	assert.Equal(t, http.StatusOK, a.executeRequest("GET", "/healthz", nil, "").Code)

	w := a.executeRequest("GET", "/metrics", nil, "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "shareit_http_requests_total")

	user := "7d1d6c9a-3c55-4a8e-bb5e-2f1c0c8d9e11"
	assert.NotEqual(t, http.StatusTooManyRequests, a.executeRequest("GET", "/v1/bookings", nil, user).Code)
	assert.NotEqual(t, http.StatusTooManyRequests, a.executeRequest("GET", "/v1/bookings", nil, user).Code)
	assert.Equal(t, http.StatusTooManyRequests, a.executeRequest("GET", "/v1/bookings", nil, user).Code)

	// Other users have their own budget.
	other := "0b9b8f6e-2f0e-4d7c-9d8a-6c5b4a3f2e1d"
	assert.NotEqual(t, http.StatusTooManyRequests, a.executeRequest("GET", "/v1/bookings", nil, other).Code)
}
