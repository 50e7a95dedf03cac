package response

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/nekogravitycat/shareit-backend/internal/pkg/apperror"
)

// ErrorResponse defines the JSON structure for error responses.
type ErrorResponse struct {
	Error string `json:"error"`
}

// StatusFor maps an error kind to its HTTP status code.
func StatusFor(kind apperror.Kind) int {
	switch kind {
	case apperror.KindNotFound:
		return http.StatusNotFound
	case apperror.KindInvalidRequest:
		return http.StatusBadRequest
	case apperror.KindNotPermitted:
		return http.StatusForbidden
	case apperror.KindConflict:
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}

// Error sends a JSON error response.
// AppErrors are rendered with their message and mapped status code.
// Anything else is logged and reported as 500 Internal Server Error.
func Error(c *gin.Context, err error) {
	logger := zerolog.Ctx(c.Request.Context())

	var appErr *apperror.AppError
	if errors.As(err, &appErr) && appErr.Kind != apperror.KindInternal {
		logger.Debug().Err(err).Str("kind", appErr.Kind.String()).Msg("request rejected")
		c.JSON(StatusFor(appErr.Kind), ErrorResponse{Error: appErr.Message})
		return
	}

	logger.Error().Err(err).Str("path", c.FullPath()).Msg("internal error")
	c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "internal server error"})
}

// BadRequest sends a 400 response for malformed input caught before the service layer.
func BadRequest(c *gin.Context, message string, err error) {
	body := gin.H{"error": message}
	if err != nil {
		body["details"] = err.Error()
	}
	c.JSON(http.StatusBadRequest, body)
}
