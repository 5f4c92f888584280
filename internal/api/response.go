package api

import (
	"github.com/gin-gonic/gin"
)

// Envelope is the single response shape of the API: every handler answers
// with {success, message?, data?}.
type Envelope struct {
	Success bool        `json:"success"`
	Message string      `json:"message,omitempty"`
	Data    interface{} `json:"data,omitempty"`
}

// RespondOK writes a success envelope.
func RespondOK(c *gin.Context, data interface{}) {
	c.JSON(200, Envelope{Success: true, Data: data})
}

// RespondError writes a failure envelope with the given status.
func RespondError(c *gin.Context, status int, err error) {
	msg := "unknown error"
	if err != nil {
		msg = err.Error()
	}
	c.JSON(status, Envelope{Success: false, Message: msg})
}
