// Package response renders the envelope every endpoint returns:
// {code, status, message, data, error}.
package response

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/fiaz291/ecommerce-korean-backend/internal/apperrors"
)

type Envelope struct {
	Code    int    `json:"code"`
	Status  bool   `json:"status"`
	Message string `json:"message,omitempty"`
	Data    any    `json:"data"`
	Error   string `json:"error,omitempty"`
}

func OK(c *gin.Context, data any) {
	c.JSON(http.StatusOK, Envelope{Code: http.StatusOK, Status: true, Data: data})
}

func Created(c *gin.Context, data any) {
	c.JSON(http.StatusCreated, Envelope{Code: http.StatusCreated, Status: true, Data: data})
}

func Message(c *gin.Context, code int, msg string) {
	c.JSON(code, Envelope{Code: code, Status: true, Message: msg})
}

func MessageData(c *gin.Context, code int, msg string, data any) {
	c.JSON(code, Envelope{Code: code, Status: true, Message: msg, Data: data})
}

func Fail(c *gin.Context, code int, errMsg string) {
	c.JSON(code, Envelope{Code: code, Status: false, Error: errMsg})
}

// Error maps the taxonomy to HTTP status codes. Unknown errors become a
// generic 500 so driver details never leak to clients.
func Error(c *gin.Context, err error) {
	switch {
	case errors.Is(err, apperrors.ErrInvalidInput):
		Fail(c, http.StatusBadRequest, err.Error())
	case errors.Is(err, apperrors.ErrAuth):
		Fail(c, http.StatusUnauthorized, err.Error())
	case errors.Is(err, apperrors.ErrNotFound):
		Fail(c, http.StatusNotFound, err.Error())
	case errors.Is(err, apperrors.ErrConflict):
		Fail(c, http.StatusConflict, err.Error())
	default:
		Fail(c, http.StatusInternalServerError, "Internal Server Error")
	}
}
