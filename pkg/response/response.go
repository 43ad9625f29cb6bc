package response

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// Envelope is the uniform JSON body for every API response.
type Envelope struct {
	Success bool   `json:"success"`
	Message string `json:"message,omitempty"`
	Data    any    `json:"data,omitempty"`
	Error   any    `json:"error,omitempty"`
}

// OK writes a success envelope.
func OK(c *gin.Context, status int, data any, message string) {
	if status == 0 {
		status = http.StatusOK
	}
	c.JSON(status, Envelope{
		Success: true,
		Message: message,
		Data:    data,
	})
}

// Fail writes an error envelope. The detail field is included only outside
// release mode so internals never leak in production responses.
func Fail(c *gin.Context, status int, message string, detail any) {
	if status == 0 {
		status = http.StatusBadRequest
	}
	env := Envelope{
		Success: false,
		Message: message,
	}
	if gin.Mode() != gin.ReleaseMode {
		env.Error = detail
	}
	c.JSON(status, env)
}

// Abort writes an error envelope and stops the middleware chain.
func Abort(c *gin.Context, status int, message string, detail any) {
	Fail(c, status, message, detail)
	c.Abort()
}
