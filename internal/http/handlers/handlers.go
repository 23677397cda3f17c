// Package handlers – wiring and service contracts.
//
// Endpoints:
//   - GET  /health              (liveness + dependency probes)
//   - GET  /trust/{address}     (trust summary)
//   - GET  /bond/{address}      (bond state)
//   - POST /bulk/verify         (batch trust lookup)
//
// Handlers are transport-thin: they bind input, call application services,
// and translate service errors into taxonomy errors.
package handlers

import (
	"context"

	"github.com/gin-gonic/gin"

	"github.com/credence/credence-backend/internal/domain"
	"github.com/credence/credence-backend/internal/services"
)

// TrustService resolves trust records. Implementations must honor ctx.
type TrustService interface {
	Get(ctx context.Context, address string) (domain.TrustRecord, error)
}

// BondService resolves bond records. Implementations must honor ctx.
type BondService interface {
	Get(ctx context.Context, address string) (domain.BondRecord, error)
}

// BulkVerifier verifies a batch of addresses.
//
// It returns services.ErrNoAddresses for an empty batch and a
// *services.BatchLimitError when the batch is too large.
type BulkVerifier interface {
	Verify(ctx context.Context, addresses []string) (domain.BulkVerifyResponse, error)
}

// HealthChecker runs dependency probes. A failed probe is reported as
// services.ErrProbeFailed together with the report.
type HealthChecker interface {
	Check(ctx context.Context) (services.HealthReport, error)
}

// Handlers groups the API endpoints.
type Handlers struct {
	trust  TrustService
	bond   BondService
	bulk   BulkVerifier
	health HealthChecker
}

// New constructs a Handlers instance bound to the given services.
func New(trust TrustService, bond BondService, bulk BulkVerifier, health HealthChecker) *Handlers {
	useJSONFieldNames()
	return &Handlers{trust: trust, bond: bond, bulk: bulk, health: health}
}

// Register mounts the API routes on rg.
func (h *Handlers) Register(rg *gin.RouterGroup) {
	rg.GET("/health", h.Health)
	rg.GET("/trust/:address", h.GetTrust)
	rg.GET("/bond/:address", h.GetBond)
	rg.POST("/bulk/verify", h.BulkVerify)
}
