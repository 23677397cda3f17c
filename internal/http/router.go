// Package httpapi wires the HTTP transport (Gin) to application services,
// middleware, and route handlers. It centralizes cross-cutting concerns such
// as tracing, correlation IDs, logging/redaction, error rendering, panic
// recovery, metrics, compression, CORS, security headers and rate limiting.
//
// Design goals:
//   - One place turns failures into responses (middleware.ErrorHandler)
//   - Observability wraps everything so it sees final statuses
//   - Deterministic, minimal router setup; all dependencies injected
package httpapi

import (
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-contrib/gzip"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"

	"github.com/credence/credence-backend/docs"
	"github.com/credence/credence-backend/internal/config"
	"github.com/credence/credence-backend/internal/http/handlers"
	"github.com/credence/credence-backend/internal/http/middleware"
)

// Deps carries the services behind the API handlers.
type Deps struct {
	Trust  handlers.TrustService
	Bond   handlers.BondService
	Bulk   handlers.BulkVerifier
	Health handlers.HealthChecker
}

var (
	corsMethods       = []string{"GET", "POST", "OPTIONS"}
	corsAllowHeaders  = []string{"Origin", "Content-Type", "Accept", "Authorization", "X-Request-ID"}
	corsExposeHeaders = []string{"X-Request-ID", "Content-Length", "Retry-After"}
)

// RegisterRoutes attaches all middleware and HTTP endpoints to the given Gin
// engine and mounts the public API under cfg.APIBasePath.
//
// Middleware order matters:
//  1. OpenTelemetry: trace everything. It precedes RequestID because the
//     span must exist before RequestID can tag it with request_id.
//  2. RequestID: generate/propagate correlation id
//  3. Logger: access log with redaction, sees the final status
//  4. Metrics: request and error counters
//  5. gzip: compresses success and error bodies alike
//  6. ErrorHandler: renders recorded errors as the JSON envelope
//  7. Recovery: panics become recorded errors
//  8. CORS and security headers, so rejections stay readable by browsers
//  9. Body size limiter
//  10. Rate limiter (per IP; health and metrics exempt)
func RegisterRoutes(r *gin.Engine, deps Deps, cfg config.Config) {
	// Opens the span only; RequestID below is the first middleware to act on
	// the request.
	r.Use(otelgin.Middleware(cfg.OTEL.ServiceName))
	r.Use(middleware.RequestID())
	r.Use(middleware.Logger(middleware.RedactOptions{
		MaskHeaders: []string{"X-API-Key"},
	}))
	r.Use(middleware.Metrics())
	r.Use(gzip.Gzip(gzip.DefaultCompression, gzip.WithExcludedPaths([]string{"/metrics", "/swagger"})))
	r.Use(middleware.ErrorHandler())
	r.Use(middleware.Recovery())

	useCORS(r, cfg.CORS)
	r.Use(middleware.SecurityHeaders(middleware.SecurityOptions{
		EnableHSTS:   cfg.Security.EnableHSTS,
		HSTSMaxAge:   cfg.Security.HSTSMaxAge,
		NoStore:      true,
		EnablePolicy: true,
	}))

	r.Use(limitBody(cfg.MaxBodyBytes))

	apiBase := cfg.APIBasePath
	if cfg.RateRPS > 0 {
		rl := middleware.NewRateLimiter(cfg.RateRPS, cfg.RateBurst, middleware.KeyByIP()).
			Exempt("/metrics", joinPath(apiBase, "/health"))
		r.Use(rl.Handler())
	}

	// Unmatched path or method.
	r.NoRoute(handlers.NotFound)

	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	if cfg.SwaggerEnabled {
		docs.SwaggerInfo.BasePath = apiBase
		r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	h := handlers.New(deps.Trust, deps.Bond, deps.Bulk, deps.Health)
	h.Register(groupWithPrefix(r, apiBase))
}

// useCORS installs gin-contrib/cors. With no configured origins every origin
// is allowed and credentials are disabled.
func useCORS(r *gin.Engine, c config.CORSConfig) {
	if len(c.AllowedOrigins) == 0 {
		// Force ACAO: * even for requests without an Origin header.
		r.Use(func(c *gin.Context) {
			c.Writer.Header().Set("Access-Control-Allow-Origin", "*")
			c.Next()
		})
		r.Use(cors.New(cors.Config{
			AllowAllOrigins:  true,
			AllowMethods:     corsMethods,
			AllowHeaders:     corsAllowHeaders,
			ExposeHeaders:    corsExposeHeaders,
			AllowCredentials: false, // must remain false with AllowAllOrigins
			MaxAge:           12 * time.Hour,
		}))
		return
	}

	r.Use(cors.New(cors.Config{
		AllowOrigins:     c.AllowedOrigins,
		AllowMethods:     corsMethods,
		AllowHeaders:     corsAllowHeaders,
		ExposeHeaders:    corsExposeHeaders,
		AllowCredentials: false,
		MaxAge:           12 * time.Hour,
	}))
}

// limitBody returns a Gin middleware that caps the request body size to
// maxBytes using http.MaxBytesReader. A non-positive cap disables it.
func limitBody(maxBytes int64) gin.HandlerFunc {
	return func(c *gin.Context) {
		if maxBytes > 0 && c.Request.Body != nil {
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

// joinPath joins a normalized base path and a route.
func joinPath(base, route string) string {
	if base == "" || base == "/" {
		return route
	}
	return base + route
}
