package handlers

import (
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/ulule/limiter/v3"
	"github.com/ulule/limiter/v3/drivers/store/memory"

	portssvc "github.com/spendtrail/spendtrail_app/internal/core/ports/services"
	"github.com/spendtrail/spendtrail_app/internal/core/services"
	"github.com/spendtrail/spendtrail_app/internal/middleware"
	"github.com/spendtrail/spendtrail_app/pkg/config"
)

// ErrorResponse is a generic error response structure for handlers.
type ErrorResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}

// RegisterRoutes sets up all backend routes, injecting dependencies through
// interfaces.
func RegisterRoutes(
	r *gin.Engine,
	cfg *config.Config,
	userService portssvc.UserSvc,
	backupService portssvc.BackupSvc,
	googleOAuth *services.GoogleOAuthSvc,
) {
	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"*"},
		AllowMethods:     []string{"GET", "POST"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization"},
		ExposeHeaders:    []string{"X-Request-ID"},
		MaxAge:           12 * time.Hour,
		AllowCredentials: false,
	}))

	r.GET("/health", func(c *gin.Context) {
		c.String(200, "OK")
	})

	// Login is rate limited per IP to slow credential stuffing; the same
	// endpoint registers unknown emails.
	rate, _ := limiter.NewRateFromFormatted("5-M")
	ipLimiter := limiter.New(memory.NewStore(), rate)

	authHandler := newAuthHandler(userService, googleOAuth, cfg)
	r.POST("/login", middleware.RateLimit(ipLimiter), authHandler.login)
	r.GET("/auth/google/login", authHandler.googleLogin)
	r.GET("/auth/google/callback", authHandler.googleCallback)

	backupHandler := newBackupHandler(backupService)
	protected := r.Group("/", middleware.AuthMiddleware(cfg.JWTSecret))
	protected.POST("/backup", backupHandler.backup)
	protected.GET("/restore", backupHandler.restore)
}
