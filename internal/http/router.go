// Package httpapi wires the Gin engine: middleware, services, the static
// image mount for the local storage backend, docs and the API routes.
//
// Middleware order:
//  1. OpenTelemetry
//  2. RequestID
//  3. Identity (bearer token, never rejects)
//  4. RedactingLogger, which can now log the caller's uid
//  5. Recovery
//  6. Body size cap
//  7. Metrics (+ /metrics)
//  8. gzip, except /metrics and images
//  9. Idempotency validator, before the limiter so replays bypass it
//  10. Rate limiter, Redis-backed when configured
//  11. CORS and security headers
package httpapi

import (
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-contrib/gzip"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/redis/go-redis/v9"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"
	"gorm.io/gorm"

	_ "github.com/ryunskeee/idolmatch/docs"
	"github.com/ryunskeee/idolmatch/internal/auth"
	"github.com/ryunskeee/idolmatch/internal/config"
	"github.com/ryunskeee/idolmatch/internal/http/handlers"
	"github.com/ryunskeee/idolmatch/internal/http/middleware"
	"github.com/ryunskeee/idolmatch/internal/services"
	"github.com/ryunskeee/idolmatch/internal/storage"
)

// Deps are the process-wide resources the routes need.
type Deps struct {
	DB       *gorm.DB
	Store    storage.Store
	Verifier auth.Verifier
	// Redis selects the shared fixed-window limiter; nil keeps the
	// in-process token bucket.
	Redis redis.UniversalClient
}

// RegisterRoutes attaches middleware and every endpoint to r.
func RegisterRoutes(r *gin.Engine, deps Deps, cfg config.Config) {
	r.HandleMethodNotAllowed = true

	r.Use(otelgin.Middleware(cfg.OTEL.ServiceName))
	r.Use(middleware.RequestID())
	r.Use(middleware.Identity(deps.Verifier))
	r.Use(middleware.RedactingLogger(middleware.RedactOptions{
		MaskHeaders: []string{middleware.HeaderIdempotencyKey},
	}))
	r.Use(middleware.Recovery())
	r.Use(limitBody(cfg.Storage.MaxUploadBytes))

	r.Use(middleware.Metrics())
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))
	r.Use(gzip.Gzip(gzip.DefaultCompression, gzip.WithExcludedPaths([]string{"/metrics"})))

	idem := &services.IdempotencyService{DB: deps.DB, TTL: cfg.IdempotencyTTL}
	r.Use(middleware.IdempotencyValidator(middleware.IdempotencyOptions{MaxLen: 200}, idem.Lookup))
	r.Use(rateLimiter(deps, cfg))

	r.Use(corsMiddleware(cfg.CORS))
	r.Use(middleware.SecurityHeaders(middleware.SecurityOptions{
		EnableHSTS:   cfg.Security.EnableHSTS,
		HSTSMaxAge:   cfg.Security.HSTSMaxAge,
		EnablePolicy: true,
		Expose:       []string{"ETag", handlers.HeaderReplayed},
	}))

	r.NoRoute(func(c *gin.Context) {
		handlers.Fail(c, http.StatusNotFound, handlers.ErrCodeNotFound, "route not found")
	})
	r.NoMethod(func(c *gin.Context) {
		handlers.Fail(c, http.StatusMethodNotAllowed, handlers.ErrCodeMethodNotAllowed, "method not allowed")
	})
	r.GET("/health", func(c *gin.Context) { c.JSON(http.StatusOK, gin.H{"status": "ok"}) })

	if cfg.SwaggerEnabled {
		r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}
	if local, ok := deps.Store.(*storage.Local); ok && local.PublicPrefix != "" {
		r.Static(local.PublicPrefix, local.Dir)
	}

	h := handlers.New(handlers.Services{
		Accounts:  &services.AccountService{DB: deps.DB},
		Rooms:     &services.RoomService{DB: deps.DB},
		Reactions: &services.ReactionService{DB: deps.DB},
		Profiles:  &services.ProfileService{DB: deps.DB, Store: deps.Store},
		Matches:   &services.MatchService{DB: deps.DB, Store: deps.Store, IsAdmin: cfg.IsAdmin},
		Champion:  &services.ChampionService{DB: deps.DB, Store: deps.Store},
		Idem:      idem,
	}, deps.Verifier)
	h.Register(groupWithPrefix(r, cfg.APIBasePath))
}

// rateLimiter picks the Redis fixed window when a client is configured. The
// window allows RateRPS*RateWindow requests, never fewer than RateBurst.
func rateLimiter(deps Deps, cfg config.Config) gin.HandlerFunc {
	if deps.Redis != nil {
		limit := int(cfg.RateRPS * cfg.RateWindow.Seconds())
		if limit < cfg.RateBurst {
			limit = cfg.RateBurst
		}
		window := cfg.RateWindow
		if window <= 0 {
			window = time.Minute
		}
		return middleware.NewRedisRateLimiter(deps.Redis, limit, window, middleware.KeyByUserOrIP()).Handler()
	}
	return middleware.NewRateLimiter(cfg.RateRPS, cfg.RateBurst, middleware.KeyByUserOrIP()).Handler()
}

// corsMiddleware allows every origin when none are configured; credentials
// are never allowed since identity travels in the body or a bearer header.
func corsMiddleware(cc config.CORSConfig) gin.HandlerFunc {
	conf := cors.Config{
		AllowMethods:  []string{"GET", "POST", "DELETE", "OPTIONS"},
		AllowHeaders:  []string{"Origin", "Content-Type", "Accept", "Authorization", middleware.HeaderIdempotencyKey},
		ExposeHeaders: []string{"X-Request-ID", "ETag", handlers.HeaderReplayed},
		MaxAge:        12 * time.Hour,
	}
	if len(cc.AllowedOrigins) == 0 {
		conf.AllowAllOrigins = true
	} else {
		conf.AllowOrigins = cc.AllowedOrigins
	}
	return cors.New(conf)
}

// limitBody caps request bodies at maxBytes; <= 0 disables the cap. Reads
// past the cap fail with *http.MaxBytesError, which handlers map to 413.
func limitBody(maxBytes int64) gin.HandlerFunc {
	return func(c *gin.Context) {
		if maxBytes > 0 {
			c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, maxBytes)
		}
		c.Next()
	}
}

// groupWithPrefix mounts a group at prefix, treating "/" (or empty) as root.
func groupWithPrefix(r *gin.Engine, prefix string) *gin.RouterGroup {
	if prefix == "" || prefix == "/" {
		return r.Group("")
	}
	return r.Group(prefix)
}
