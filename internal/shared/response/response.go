package response

import (
	"github.com/gin-gonic/gin"

	"quotes-api/internal/shared/apperror"
)

// Body is the single error envelope rendered for every failed request.
type Body struct {
	Error *Error `json:"error"`
}

type Error struct {
	Code    string      `json:"code"`
	Message string      `json:"message"`
	Details interface{} `json:"details,omitempty"`
}

// JSON writes data without HTML or unicode escaping so non-ASCII text
// (Cyrillic, diacritics) reaches the client verbatim.
func JSON(c *gin.Context, statusCode int, data interface{}) {
	c.PureJSON(statusCode, data)
}

// Entity writes {key: entity, "message": message}.
func Entity(c *gin.Context, statusCode int, key string, entity interface{}, message string) {
	c.PureJSON(statusCode, gin.H{
		key:       entity,
		"message": message,
	})
}

// Message writes {"message": message}.
func Message(c *gin.Context, statusCode int, message string) {
	c.PureJSON(statusCode, gin.H{"message": message})
}

// Count writes {"count": n}.
func Count(c *gin.Context, n int64) {
	c.PureJSON(200, gin.H{"count": n})
}

// AppError renders an *apperror.Error in the standard envelope.
func AppError(c *gin.Context, err *apperror.Error) {
	c.PureJSON(err.Status, Body{
		Error: &Error{
			Code:    err.Code,
			Message: err.Message,
			Details: err.Details,
		},
	})
}
