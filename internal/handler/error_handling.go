package handler

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"story-server/internal/models"
)

// handleServiceError translates service errors to envelope responses.
// Validation and not-found are expected conditions; anything else is an
// internal fault and is logged before being masked as a 500.
func handleServiceError(c *gin.Context, logger *zap.Logger, err error) {
	switch {
	case errors.Is(err, models.ErrValidation):
		c.JSON(http.StatusBadRequest, models.Fail(err.Error()))
	case errors.Is(err, models.ErrNotFound):
		c.JSON(http.StatusNotFound, models.Fail("Story not found"))
	default:
		logger.Error("unhandled service error",
			zap.String("path", c.Request.URL.Path),
			zap.Error(err),
		)
		c.JSON(http.StatusInternalServerError, models.Fail("Something went wrong!"))
	}
}

// Recovery returns a middleware that converts panics into the uniform 500
// envelope. The underlying error detail is attached only outside production.
func Recovery(logger *zap.Logger, environment string) gin.HandlerFunc {
	return gin.CustomRecoveryWithWriter(nil, func(c *gin.Context, recovered interface{}) {
		logger.Error("panic recovered",
			zap.String("path", c.Request.URL.Path),
			zap.Any("panic", recovered),
		)

		resp := models.Fail("Something went wrong!")
		if environment != "production" {
			resp.Error = fmt.Sprint(recovered)
		}
		c.AbortWithStatusJSON(http.StatusInternalServerError, resp)
	})
}
