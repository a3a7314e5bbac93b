package httperr

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

type HTTPError struct {
	Code    string `json:"error_code"`
	Message string `json:"message"`
}

func Write(c *gin.Context, status int, code, message string) {
	c.JSON(status, HTTPError{
		Code:    code,
		Message: message,
	})
}

func BadRequest(c *gin.Context, code, message string) {
	Write(c, http.StatusBadRequest, code, message)
}

func NotFound(c *gin.Context, code, message string) {
	Write(c, http.StatusNotFound, code, message)
}

func Conflict(c *gin.Context, code, message string) {
	Write(c, http.StatusConflict, code, message)
}

func Internal(c *gin.Context, code, message string) {
	Write(c, http.StatusInternalServerError, code, message)
}

func Unauthorized(c *gin.Context, code, message string) {
	Write(c, http.StatusUnauthorized, code, message)
}

func Forbidden(c *gin.Context, code, message string) {
	Write(c, http.StatusForbidden, code, message)
}

var businessMessages = map[string]string{
	CodeNotFound:     "Appointment not found.",
	CodeTimeConflict: "Time slot conflicts with another appointment.",
	CodeInvalidRange: "Appointment end must be after its start.",
	CodeInvalidState: "Appointment cannot change from its current status.",
	CodeInvalidDelta: "Month navigation accepts only +1 or -1.",
	CodeInvalidDate:  "Invalid date.",
	CodeInvalidStat:  "Invalid appointment status.",
}

// FromError maps a use case error onto the response the client sees.
// Anything that is not a BusinessError becomes a 500.
func FromError(c *gin.Context, err error) {
	code, ok := AsBusiness(err)
	if !ok {
		Internal(c, "internal_error", "Unexpected error.")
		return
	}

	msg := businessMessages[code]
	if msg == "" {
		msg = code
	}

	switch code {
	case CodeNotFound:
		NotFound(c, code, msg)
	case CodeTimeConflict:
		Conflict(c, code, msg)
	default:
		BadRequest(c, code, msg)
	}
}
