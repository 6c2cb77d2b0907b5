package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/Trinity-SYT-SECURITY/NASA-2025-ALL/internal/infrastructure/monitoring/logging"
	"github.com/Trinity-SYT-SECURITY/NASA-2025-ALL/pkg/errors"
	"github.com/Trinity-SYT-SECURITY/NASA-2025-ALL/pkg/types/transit"
)

// Recovery converts panics into a structured 500 response so a handler bug
// never produces an unstructured crash page.
func Recovery(logger logging.Logger) gin.HandlerFunc {
	if logger == nil {
		logger = logging.NewNopLogger()
	}
	log := logger.Named("http")
	return func(c *gin.Context) {
		defer func() {
			if r := recover(); r != nil {
				log.Error("panic recovered",
					logging.Any("panic", r),
					logging.String("path", c.Request.URL.Path),
					logging.String("request_id", RequestIDFromContext(c)),
				)
				c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{
					"error":        "internal server error",
					"code":         string(errors.ErrCodeInternal),
					"match_status": string(transit.MatchStatusError),
				})
			}
		}()
		c.Next()
	}
}
