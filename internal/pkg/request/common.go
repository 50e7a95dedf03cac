package request

// ByIDRequest is a common struct for endpoints that require an ID path parameter.
type ByIDRequest struct {
	ID string `uri:"id" binding:"required,uuid"`
}

// PageParams holds the offset-based paging query parameters.
// Bounds are enforced by the services so every caller gets the same error kind.
type PageParams struct {
	From int `form:"from,default=0"`
	Size int `form:"size,default=10"`
}
