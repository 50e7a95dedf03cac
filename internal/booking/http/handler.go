package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/nekogravitycat/shareit-backend/internal/auth"
	"github.com/nekogravitycat/shareit-backend/internal/booking"
	"github.com/nekogravitycat/shareit-backend/internal/metrics"
	"github.com/nekogravitycat/shareit-backend/internal/pkg/request"
	"github.com/nekogravitycat/shareit-backend/internal/pkg/response"
)

type Handler struct {
	service *booking.Service
}

func NewHandler(service *booking.Service) *Handler {
	return &Handler{service: service}
}

func (h *Handler) Create(c *gin.Context) {
	var body CreateBookingRequest
	if err := c.ShouldBindJSON(&body); err != nil {
		response.BadRequest(c, "invalid request body", err)
		return
	}

	b, err := h.service.Create(c.Request.Context(), booking.CreateRequest{
		BookerID: auth.GetUserID(c),
		ItemID:   body.ItemID,
		Interval: body.toInterval(),
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	metrics.IncBookingCreated()
	c.JSON(http.StatusCreated, NewBookingResponse(b))
}

// Decide approves or rejects a booking: PATCH /bookings/:id?approved=true|false
func (h *Handler) Decide(c *gin.Context) {
	var uri request.ByIDRequest
	if err := c.ShouldBindUri(&uri); err != nil {
		response.BadRequest(c, "invalid booking id", err)
		return
	}

	var query DecideBookingRequest
	if err := c.ShouldBindQuery(&query); err != nil {
		response.BadRequest(c, "approved must be true or false", err)
		return
	}

	b, err := h.service.Decide(c.Request.Context(), auth.GetUserID(c), uri.ID, *query.Approved)
	if err != nil {
		response.Error(c, err)
		return
	}

	metrics.IncBookingDecision(*query.Approved)
	c.JSON(http.StatusOK, NewBookingResponse(b))
}

func (h *Handler) Get(c *gin.Context) {
	var uri request.ByIDRequest
	if err := c.ShouldBindUri(&uri); err != nil {
		response.BadRequest(c, "invalid booking id", err)
		return
	}

	b, err := h.service.GetByID(c.Request.Context(), auth.GetUserID(c), uri.ID)
	if err != nil {
		response.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, NewBookingResponse(b))
}

// List returns the acting user's bookings.
func (h *Handler) List(c *gin.Context) {
	var query ListBookingsRequest
	if err := c.ShouldBindQuery(&query); err != nil {
		response.BadRequest(c, "invalid query parameters", err)
		return
	}

	bookings, err := h.service.ListForBooker(c.Request.Context(), auth.GetUserID(c), query.State, query.page())
	if err != nil {
		response.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, response.NewPageResponse(newBookingResponses(bookings), query.From, query.Size))
}

// ListOwner returns bookings made on the acting user's items.
func (h *Handler) ListOwner(c *gin.Context) {
	var query ListBookingsRequest
	if err := c.ShouldBindQuery(&query); err != nil {
		response.BadRequest(c, "invalid query parameters", err)
		return
	}

	bookings, err := h.service.ListForOwner(c.Request.Context(), auth.GetUserID(c), query.State, query.page())
	if err != nil {
		response.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, response.NewPageResponse(newBookingResponses(bookings), query.From, query.Size))
}
