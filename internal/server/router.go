package server

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"

	"homekeeper/internal/domain/auth"
	"homekeeper/internal/domain/item"
	"homekeeper/internal/domain/maintenance"
	"homekeeper/internal/domain/notification"
	"homekeeper/internal/domain/stats"
	"homekeeper/internal/domain/webhook"
	"homekeeper/internal/middleware"
)

// NewRouter mounts the public, authenticated and operator routes under the
// configured base path.
func NewRouter(app *App) *gin.Engine {
	binding.EnableDecoderDisallowUnknownFields = true

	r := gin.New()
	r.Use(
		middleware.RequestID(),
		middleware.ErrorLogger(),
		middleware.CORS(app.Config.HTTP.CORSAllowedOrigins),
		app.Metrics.Middleware(),
	)

	base := r.Group(app.Config.HTTP.BasePath)

	// public
	base.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":    "ok",
			"timestamp": time.Now().UTC().Format(time.RFC3339),
		})
	})
	base.GET("/metrics", gin.WrapH(app.Metrics.Handler()))
	auth.NewHandler(app.Auth).RegisterPublicRoutes(base)

	// protected
	protected := base.Group("")
	protected.Use(middleware.Auth(app.Identity))
	{
		item.RegisterRoutes(protected, item.NewHandler(app.Items))
		maintenance.RegisterRoutes(protected, maintenance.NewHandler(app.Maintenance))
		notification.RegisterRoutes(protected,
			notification.NewHandler(app.Notifications),
			notification.NewPreferencesHandler(app.Notifications),
		)
		stats.RegisterRoutes(protected, stats.NewHandler(app.Stats))
	}

	// automation platform and operators
	operator := base.Group("")
	operator.Use(middleware.InboundToken(app.Config.Webhook.InboundToken))

	webhook.RegisterRoutes(protected, operator,
		webhook.NewHandler(app.Webhooks, app.Inbound, app.Relay, app.Hub))

	return r
}
