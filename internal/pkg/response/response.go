package response

import "github.com/gin-gonic/gin"

// RequestIDKey is the gin context key holding the request id echoed in
// error envelopes.
const RequestIDKey = "request_id"

type ErrorBody struct {
	Code      string `json:"code"`
	Message   string `json:"message"`
	Details   any    `json:"details,omitempty"`
	RequestID string `json:"request_id,omitempty"`
}

type Envelope struct {
	Success bool       `json:"success"`
	Data    any        `json:"data,omitempty"`
	Error   *ErrorBody `json:"error,omitempty"`
}

func Success(c *gin.Context, statusCode int, data any) {
	c.JSON(statusCode, Envelope{Success: true, Data: data})
}

func Error(c *gin.Context, statusCode int, code string, message string) {
	ErrorWithDetails(c, statusCode, code, message, nil)
}

func ErrorWithDetails(c *gin.Context, statusCode int, code string, message string, details any) {
	c.JSON(statusCode, Envelope{
		Success: false,
		Error: &ErrorBody{
			Code:      code,
			Message:   message,
			Details:   details,
			RequestID: c.GetString(RequestIDKey),
		},
	})
}
