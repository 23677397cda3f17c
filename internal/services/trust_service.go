// Package services – TrustService and BondService
//
// Both services answer read-only lookups for a single address. Until the
// reputation engine and the bond indexer are connected they return the
// placeholder records defined in the domain package. They still honor the
// caller's context so that a cancelled request never does work.
package services

import (
	"context"

	"github.com/credence/credence-backend/internal/domain"
)

// TrustService resolves the trust summary of an address.
type TrustService struct{}

// NewTrustService constructs a TrustService.
func NewTrustService() *TrustService { return &TrustService{} }

// Get returns the trust record for address.
func (s *TrustService) Get(ctx context.Context, address string) (domain.TrustRecord, error) {
	if err := ctx.Err(); err != nil {
		return domain.TrustRecord{}, err
	}
	return domain.NewTrustRecord(address), nil
}

// BondService resolves the bond state of an address.
type BondService struct{}

// NewBondService constructs a BondService.
func NewBondService() *BondService { return &BondService{} }

// Get returns the bond record for address.
func (s *BondService) Get(ctx context.Context, address string) (domain.BondRecord, error) {
	if err := ctx.Err(); err != nil {
		return domain.BondRecord{}, err
	}
	return domain.NewBondRecord(address), nil
}
