package handlers

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"rental-backoffice/internal/common"
	"rental-backoffice/internal/store"
)

// apiResponse is the JSON envelope every endpoint speaks.
type apiResponse struct {
	Success    bool              `json:"success"`
	Message    string            `json:"message"`
	Data       interface{}       `json:"data,omitempty"`
	Pagination *store.Pagination `json:"pagination,omitempty"`
}

func respondData(c *gin.Context, status int, message string, data interface{}) {
	c.JSON(status, apiResponse{Success: true, Message: message, Data: data})
}

func respondPage(c *gin.Context, message string, data interface{}, p store.Pagination) {
	c.JSON(http.StatusOK, apiResponse{Success: true, Message: message, Data: data, Pagination: &p})
}

func respondMessage(c *gin.Context, status int, message string) {
	c.JSON(status, apiResponse{Success: true, Message: message})
}

func respondBadRequest(c *gin.Context, message string) {
	c.JSON(http.StatusBadRequest, apiResponse{Success: false, Message: message})
}

// respondError maps the error taxonomy onto HTTP statuses. Anything
// unrecognized is an internal error and keeps its detail out of the body.
func respondError(c *gin.Context, err error) {
	status := http.StatusInternalServerError
	message := "Internal server error"

	var appErr *common.AppError
	if errors.As(err, &appErr) {
		switch appErr.Code {
		case common.ErrNotFound:
			status = http.StatusNotFound
			message = appErr.Message
		case common.ErrConflict:
			status = http.StatusConflict
			message = appErr.Message
		case common.ErrInvalidInput:
			status = http.StatusBadRequest
			message = appErr.Message
		case common.ErrUnauthorized, common.ErrInvalidToken, common.ErrInvalidCredentials:
			status = http.StatusUnauthorized
			message = appErr.Message
		case common.ErrForbidden:
			status = http.StatusForbidden
			message = appErr.Message
		}
	}

	c.JSON(status, apiResponse{Success: false, Message: message})
}

const dateLayout = "2006-01-02"

func parseDate(value string) (time.Time, error) {
	return time.Parse(dateLayout, value)
}
