package middleware

import (
	"fmt"
	"net/http"
	"runtime/debug"

	"github.com/getsentry/sentry-go"
	"github.com/gin-gonic/gin"
	"github.com/whittakeragency/agency-api/internal/services"
	"github.com/whittakeragency/agency-api/pkg/logger"
)

// Recovery catches panics, records them to the system log and Sentry,
// and answers with a generic 500 so internals never leak to clients.
func Recovery(systemLogSvc *services.SystemLogService) gin.HandlerFunc {
	return func(c *gin.Context) {
		defer func() {
			if r := recover(); r != nil {
				stack := string(debug.Stack())
				message := fmt.Sprintf("panic recovered: %v", r)
				logger.Error(message, "stack", stack, "path", c.Request.URL.Path)

				sentry.CurrentHub().Recover(r)

				excType := fmt.Sprintf("%T", r)
				excMessage := fmt.Sprintf("%v", r)
				method := c.Request.Method
				path := c.Request.URL.Path
				ip := c.ClientIP()
				requestID := GetRequestID(c)
				var requestIDPtr *string
				if requestID != "" {
					requestIDPtr = &requestID
				}
				if err := systemLogSvc.RecordError(c.Request.Context(), message,
					&excType, &excMessage, &stack, &method, &path, &ip, requestIDPtr,
					GetUserIDPtr(c)); err != nil {
					logger.Error("failed to persist panic record", "error", err)
				}

				c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{
					"error": "Internal server error",
				})
			}
		}()
		c.Next()
	}
}
