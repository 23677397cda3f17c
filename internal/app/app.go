// Package app assembles the Credence HTTP application: it builds the
// services, mounts them on a Gin engine and wraps the engine in an
// *http.Server configured from config.Config.
package app

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/credence/credence-backend/internal/config"
	httpapi "github.com/credence/credence-backend/internal/http"
	"github.com/credence/credence-backend/internal/services"
)

// Options customizes New. The zero value is valid.
type Options struct {
	// Probes are registered with the health service.
	Probes []services.Probe
}

// New builds the Gin engine with every middleware and route mounted.
func New(cfg config.Config, opts Options) *gin.Engine {
	gin.SetMode(cfg.GinMode)
	r := gin.New()

	trust := services.NewTrustService()
	httpapi.RegisterRoutes(r, httpapi.Deps{
		Trust:  trust,
		Bond:   services.NewBondService(),
		Bulk:   services.NewBulkService(trust, cfg.BulkMaxAddresses),
		Health: services.NewHealthService(cfg.ServiceName, opts.Probes...),
	}, cfg)

	return r
}

// NewServer wraps handler in an *http.Server using the configured address,
// timeouts and header limit.
func NewServer(cfg config.Config, handler http.Handler) *http.Server {
	return &http.Server{
		Addr:              cfg.Addr(),
		Handler:           handler,
		ReadTimeout:       cfg.ReadTimeout,
		ReadHeaderTimeout: cfg.ReadHeaderTimeout,
		WriteTimeout:      cfg.WriteTimeout,
		IdleTimeout:       cfg.IdleTimeout,
		MaxHeaderBytes:    cfg.MaxHeaderBytes,
	}
}
