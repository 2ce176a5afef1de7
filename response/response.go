package response

import (
	"time"

	"github.com/gin-gonic/gin"
)

// Envelope is the uniform wrapper for every API response. Success is
// derived from the status class: anything below 400 counts as success.
type Envelope struct {
	Success   bool        `json:"success"`
	Message   string      `json:"message"`
	Timestamp time.Time   `json:"timestamp"`
	Data      interface{} `json:"data,omitempty"`
	Error     string      `json:"error,omitempty"`
}

// OK writes a success envelope.
func OK(c *gin.Context, status int, message string, data interface{}) {
	c.JSON(status, Envelope{
		Success:   status < 400,
		Message:   message,
		Timestamp: time.Now().UTC(),
		Data:      data,
	})
}

// Fail writes a failure envelope and aborts the handler chain. Only the
// short error text goes to the caller; full context belongs in the logs.
func Fail(c *gin.Context, status int, message string, err error) {
	envelope := Envelope{
		Success:   status < 400,
		Message:   message,
		Timestamp: time.Now().UTC(),
	}
	if err != nil {
		envelope.Error = err.Error()
	}
	c.AbortWithStatusJSON(status, envelope)
}
