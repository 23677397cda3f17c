package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/credence/credence-backend/internal/apperr"
	"github.com/credence/credence-backend/internal/http/middleware"
	"github.com/credence/credence-backend/internal/services"
)

// CodeServiceUnavailable is returned when a dependency probe fails.
const CodeServiceUnavailable = "SERVICE_UNAVAILABLE"

// HealthResponse is the body of a healthy /health call.
type HealthResponse struct {
	Status  string `json:"status"  example:"ok"`
	Service string `json:"service" example:"credence-backend"`
}

// Health godoc
// @ID          health
// @Summary     Service health
// @Description Reports liveness and the state of registered dependency probes.
// @Tags        Health
// @Produce     json
//
// @Success     200  {object}  handlers.HealthResponse
// @Failure     503  {object}  handlers.ErrorResponse  "A dependency is down; details map probe names to \"down\""
// @Router      /health [get]
func (h *Handlers) Health(c *gin.Context) {
	rep, err := h.health.Check(c.Request.Context())
	switch {
	case errors.Is(err, services.ErrProbeFailed):
		lg := middleware.LoggerFrom(c)
		for name, perr := range rep.Errors {
			lg.Warn().Err(perr).Str("probe", name).Msg("health probe failed")
		}
		fail(c, apperr.New("Service unavailable",
			apperr.WithCode(CodeServiceUnavailable),
			apperr.WithStatus(http.StatusServiceUnavailable),
			apperr.WithDetails(rep.Failed),
			apperr.WithCause(err),
		))
		return
	case err != nil:
		fail(c, err)
		return
	}
	ok(c, http.StatusOK, HealthResponse{Status: rep.Status, Service: rep.Service})
}
