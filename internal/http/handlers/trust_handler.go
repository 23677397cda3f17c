package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// GetTrust godoc
// @ID          getTrust
// @Summary     Trust summary for an address
// @Description Returns the trust score, bonded amount and attestation count of an address.
// @Tags        Trust
// @Produce     json
//
// @Param       address  path  string  true  "Account address"  example(GABC...XYZ)
//
// @Success     200  {object}  domain.TrustRecord
// @Failure     429  {object}  handlers.ErrorResponse  "Rate limited"
// @Failure     500  {object}  handlers.ErrorResponse  "Internal error"
// @Router      /trust/{address} [get]
func (h *Handlers) GetTrust(c *gin.Context) {
	rec, err := h.trust.Get(c.Request.Context(), c.Param("address"))
	if err != nil {
		fail(c, err)
		return
	}
	ok(c, http.StatusOK, rec)
}

// GetBond godoc
// @ID          getBond
// @Summary     Bond state for an address
// @Description Returns the bonded amount, bond start, duration and whether the bond is active.
// @Tags        Bond
// @Produce     json
//
// @Param       address  path  string  true  "Account address"  example(GABC...XYZ)
//
// @Success     200  {object}  domain.BondRecord
// @Failure     429  {object}  handlers.ErrorResponse  "Rate limited"
// @Failure     500  {object}  handlers.ErrorResponse  "Internal error"
// @Router      /bond/{address} [get]
func (h *Handlers) GetBond(c *gin.Context) {
	rec, err := h.bond.Get(c.Request.Context(), c.Param("address"))
	if err != nil {
		fail(c, err)
		return
	}
	ok(c, http.StatusOK, rec)
}
