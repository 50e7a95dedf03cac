package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/nekogravitycat/shareit-backend/internal/auth"
	"github.com/nekogravitycat/shareit-backend/internal/item"
	"github.com/nekogravitycat/shareit-backend/internal/pkg/request"
	"github.com/nekogravitycat/shareit-backend/internal/pkg/response"
)

type Handler struct {
	service item.Service
}

func NewHandler(service item.Service) *Handler {
	return &Handler{service: service}
}

func (h *Handler) Create(c *gin.Context) {
	var body CreateItemRequest
	if err := c.ShouldBindJSON(&body); err != nil {
		response.BadRequest(c, "invalid request body", err)
		return
	}

	it, err := h.service.Create(c.Request.Context(), auth.GetUserID(c), item.CreateRequest{
		Name:        body.Name,
		Description: body.Description,
		Available:   body.Available,
		RequestID:   body.RequestID,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	c.JSON(http.StatusCreated, NewItemResponse(it))
}

func (h *Handler) Update(c *gin.Context) {
	var uri request.ByIDRequest
	if err := c.ShouldBindUri(&uri); err != nil {
		response.BadRequest(c, "invalid item id", err)
		return
	}

	var body UpdateItemRequest
	if err := c.ShouldBindJSON(&body); err != nil {
		response.BadRequest(c, "invalid request body", err)
		return
	}

	it, err := h.service.Update(c.Request.Context(), auth.GetUserID(c), uri.ID, item.UpdateRequest{
		Name:        body.Name,
		Description: body.Description,
		Available:   body.Available,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, NewItemResponse(it))
}

func (h *Handler) Get(c *gin.Context) {
	var uri request.ByIDRequest
	if err := c.ShouldBindUri(&uri); err != nil {
		response.BadRequest(c, "invalid item id", err)
		return
	}

	d, err := h.service.GetDetail(c.Request.Context(), auth.GetUserID(c), uri.ID)
	if err != nil {
		response.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, NewItemDetailResponse(d))
}

// List returns the acting user's items.
func (h *Handler) List(c *gin.Context) {
	details, err := h.service.ListByOwner(c.Request.Context(), auth.GetUserID(c))
	if err != nil {
		response.Error(c, err)
		return
	}

	items := make([]ItemDetailResponse, len(details))
	for i, d := range details {
		items[i] = NewItemDetailResponse(d)
	}
	c.JSON(http.StatusOK, items)
}

func (h *Handler) Search(c *gin.Context) {
	var query SearchItemsRequest
	if err := c.ShouldBindQuery(&query); err != nil {
		response.BadRequest(c, "invalid query parameters", err)
		return
	}

	found, err := h.service.Search(c.Request.Context(), query.Text)
	if err != nil {
		response.Error(c, err)
		return
	}

	items := make([]ItemResponse, len(found))
	for i, it := range found {
		items[i] = NewItemResponse(it)
	}
	c.JSON(http.StatusOK, items)
}

func (h *Handler) AddComment(c *gin.Context) {
	var uri request.ByIDRequest
	if err := c.ShouldBindUri(&uri); err != nil {
		response.BadRequest(c, "invalid item id", err)
		return
	}

	var body CreateCommentRequest
	if err := c.ShouldBindJSON(&body); err != nil {
		response.BadRequest(c, "invalid request body", err)
		return
	}

	comment, err := h.service.AddComment(c.Request.Context(), auth.GetUserID(c), uri.ID, body.Text)
	if err != nil {
		response.Error(c, err)
		return
	}

	c.JSON(http.StatusCreated, NewCommentResponse(comment))
}
