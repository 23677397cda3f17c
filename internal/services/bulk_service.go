// Package services – BulkService
//
// BulkService verifies a batch of addresses by delegating each one to a
// TrustLookup. Input is normalized before any lookup runs: entries are
// trimmed, blanks dropped and duplicates collapsed (first occurrence wins),
// and the batch size is enforced against MaxAddresses.
package services

import (
	"context"
	"strings"

	"github.com/credence/credence-backend/internal/domain"
)

// DefaultBulkMaxAddresses caps a bulk request when no limit is configured.
const DefaultBulkMaxAddresses = 100

// TrustLookup is the single-address lookup used by BulkService.
type TrustLookup interface {
	Get(ctx context.Context, address string) (domain.TrustRecord, error)
}

// BulkService verifies many addresses in one call.
type BulkService struct {
	Trust        TrustLookup
	MaxAddresses int
}

// NewBulkService constructs a BulkService. A non-positive max falls back to
// DefaultBulkMaxAddresses.
func NewBulkService(trust TrustLookup, max int) *BulkService {
	if max <= 0 {
		max = DefaultBulkMaxAddresses
	}
	return &BulkService{Trust: trust, MaxAddresses: max}
}

// Verify returns one trust record per distinct address, in request order.
//
// Errors:
//   - ErrNoAddresses when nothing is left after normalization.
//   - *BatchLimitError (errors.Is ErrTooManyAddresses) when the distinct
//     address count exceeds MaxAddresses.
//   - any error returned by the TrustLookup, unchanged.
func (s *BulkService) Verify(ctx context.Context, addresses []string) (domain.BulkVerifyResponse, error) {
	uniq := dedupe(addresses)
	if len(uniq) == 0 {
		return domain.BulkVerifyResponse{}, ErrNoAddresses
	}
	if len(uniq) > s.MaxAddresses {
		return domain.BulkVerifyResponse{}, &BatchLimitError{Max: s.MaxAddresses, Received: len(uniq)}
	}

	results := make([]domain.TrustRecord, 0, len(uniq))
	for _, addr := range uniq {
		rec, err := s.Trust.Get(ctx, addr)
		if err != nil {
			return domain.BulkVerifyResponse{}, err
		}
		results = append(results, rec)
	}
	return domain.BulkVerifyResponse{Results: results, Count: len(results)}, nil
}

// dedupe trims entries, drops blanks and keeps the first occurrence of each.
func dedupe(in []string) []string {
	seen := make(map[string]struct{}, len(in))
	out := make([]string, 0, len(in))
	for _, a := range in {
		a = strings.TrimSpace(a)
		if a == "" {
			continue
		}
		if _, dup := seen[a]; dup {
			continue
		}
		seen[a] = struct{}{}
		out = append(out, a)
	}
	return out
}
