package middleware

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"userapi/internal/http-api/dto"
)

// Recovery turns a panic into the generic 500 error body.
func Recovery(logger *slog.Logger) gin.HandlerFunc {
	return gin.CustomRecovery(func(c *gin.Context, recovered any) {
		logger.ErrorContext(c.Request.Context(), "panic recovered",
			"request_id", GetRequestID(c),
			"path", c.Request.URL.Path,
			"panic", recovered,
		)
		c.AbortWithStatusJSON(http.StatusInternalServerError, dto.ErrorResponse{Mensaje: "Error interno del servidor"})
	})
}
