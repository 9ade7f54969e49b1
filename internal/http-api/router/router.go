package router

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"userapi/internal/config"
	"userapi/internal/http-api/dto"
	"userapi/internal/http-api/handler"
	"userapi/internal/http-api/middleware"
)

const (
	BasePath        = "/nisum/api"
	pingTimeout     = 2 * time.Second
	MsgNotAvailable = "Servicio no disponible"
)

// Pinger reports whether the backing store is reachable.
type Pinger interface {
	Ping(ctx context.Context) error
}

// New builds the gin engine: middleware chain, health check and user routes.
func New(cfg *config.Config, users *handler.UserHandler, db Pinger, logger *slog.Logger) *gin.Engine {
	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()
	r.Use(
		middleware.RequestID(),
		middleware.RequestLogger(logger),
		middleware.Recovery(logger),
		middleware.SecurityHeaders(cfg.IsDevelopment(), logger),
	)
	if cfg.RateLimitRPS > 0 {
		r.Use(middleware.RateLimit(middleware.NewIPRateLimiter(cfg.RateLimitRPS, cfg.RateLimitBurst)))
	}

	r.GET("/check-conn", checkConn(db))

	api := r.Group(BasePath)
	users.RegisterRoutes(api)

	return r
}

func checkConn(db Pinger) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(c.Request.Context(), pingTimeout)
		defer cancel()

		if err := db.Ping(ctx); err != nil {
			c.JSON(http.StatusServiceUnavailable, dto.ErrorResponse{Mensaje: MsgNotAvailable})
			return
		}
		c.JSON(http.StatusOK, gin.H{"message": "API is alive and database connected"})
	}
}
