package middleware

import (
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"

	"quotes-api/internal/shared/apperror"
	"quotes-api/internal/shared/response"
)

// ErrorHandler renders the last error attached with c.Error as the standard
// error envelope. Errors that carry no status are logged and reported as 500
// without leaking their text.
func ErrorHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		if len(c.Errors) == 0 || c.Writer.Written() {
			return
		}

		err := c.Errors.Last().Err
		appErr, ok := apperror.From(err)
		if !ok {
			log.Error().
				Str("request_id", c.GetString(RequestIDKey)).
				Err(err).
				Msg("Unhandled error")
			appErr = apperror.ErrInternal
		} else if appErr.Status >= 500 {
			log.Error().
				Str("request_id", c.GetString(RequestIDKey)).
				Err(err).
				Msg("Request failed")
		}

		response.AppError(c, appErr)
	}
}
