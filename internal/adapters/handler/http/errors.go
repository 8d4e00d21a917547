package http

import (
	"errors"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/comitanigiacomo/studylog-engine/internal/adapters/handler/http/middleware"
	"github.com/comitanigiacomo/studylog-engine/internal/core/domain"
	"github.com/comitanigiacomo/studylog-engine/internal/core/services"
)

type errorResponse struct {
	Error   string `json:"error"`
	Kind    string `json:"kind,omitempty"`
	Input   string `json:"input,omitempty"`
	Message string `json:"message,omitempty"`
}

func handleError(c *gin.Context, err error) {
	var dateErr *domain.DateParseError

	switch {
	case errors.As(err, &dateErr):
		c.JSON(http.StatusUnprocessableEntity, errorResponse{
			Error: dateErr.Err.Error(),
			Kind:  domain.DateErrorKind(dateErr),
			Input: dateErr.Input,
		})

	case errors.Is(err, domain.ErrInvalidEntry):
		c.JSON(http.StatusBadRequest, errorResponse{Error: err.Error()})

	case errors.Is(err, services.ErrInvalidDateRange),
		errors.Is(err, services.ErrUnsupportedFormat):
		c.JSON(http.StatusBadRequest, errorResponse{Error: err.Error()})

	case errors.Is(err, domain.ErrUnauthorized):
		c.JSON(http.StatusForbidden, errorResponse{Error: "unauthorized access"})

	case errors.Is(err, domain.ErrEntryNotFound), errors.Is(err, domain.ErrUserNotFound):
		c.JSON(http.StatusNotFound, errorResponse{Error: "resource not found"})

	case errors.Is(err, domain.ErrEntryConflict):
		c.JSON(http.StatusConflict, errorResponse{
			Error:   "version conflict",
			Message: "entry has been modified elsewhere, reload it",
		})

	default:
		log.Printf("[ERROR] Request %s %s failed: %v", c.Request.Method, c.Request.URL.Path, err)

		c.JSON(http.StatusInternalServerError, errorResponse{Error: "internal server error"})
	}
}

// requireUser reads the authenticated user or answers 401.
func requireUser(c *gin.Context) (string, bool) {
	userID := c.GetString(middleware.ContextUserIDKey)
	if userID == "" {
		c.JSON(http.StatusUnauthorized, errorResponse{Error: "unauthorized"})
		return "", false
	}
	return userID, true
}
