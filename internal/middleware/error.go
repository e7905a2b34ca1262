package middleware

import (
	"fmt"
	"net/http"
	"runtime/debug"

	"github.com/gin-gonic/gin"
	"github.com/siba18k/adbeam-rewards-backend/pkg/errors"
	"github.com/siba18k/adbeam-rewards-backend/pkg/logger"
)

// ErrorHandlerMiddleware handles errors and panics
func ErrorHandlerMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		defer func() {
			if r := recover(); r != nil {
				stack := string(debug.Stack())
				logger.Error().
					Str("panic", fmt.Sprintf("%v", r)).
					Str("stack", stack).
					Msg("Panic recovered")

				c.JSON(http.StatusInternalServerError, gin.H{
					"error":   "Internal Server Error",
					"message": "An unexpected error occurred",
				})
				c.Abort()
			}
		}()

		c.Next()

		// Handle errors attached to the context
		if len(c.Errors) > 0 {
			err := c.Errors.Last().Err

			if appErr, ok := err.(*errors.AppError); ok {
				// Business rejections are expected outcomes, not failures;
				// the client branches on the stable reason code.
				if !errors.IsRejection(err) {
					logger.Error().Err(err).Msg("Unhandled request error")
				}
				c.JSON(appErr.Code, gin.H{
					"error":  appErr.Message,
					"reason": appErr.Reason,
				})
				return
			}

			logger.Error().Err(err).Msg("Unhandled request error")

			// Don't expose internal errors to the client
			c.JSON(http.StatusInternalServerError, gin.H{
				"error":  "Internal Server Error",
				"reason": errors.ReasonInternal,
			})
		}
	}
}
