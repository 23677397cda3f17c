// Package domain defines the read models served by the Credence API: trust
// records, bond records and the bulk verification envelope. Values are
// placeholders until the reputation engine and bond indexer are wired in.
package domain

import "time"

// TrustRecord is the reputation summary for a single address.
//
// Fields:
//   - Address: the queried account address, echoed verbatim.
//   - Score: trust score (placeholder 0).
//   - BondedAmount: total bonded amount as a decimal string to avoid float
//     rounding on large token amounts.
//   - BondStart: start of the active bond; null when no bond exists.
//   - AttestationCount: number of attestations received.
type TrustRecord struct {
	Address          string     `json:"address"          example:"GABC...XYZ"`
	Score            int        `json:"score"            example:"0"`
	BondedAmount     string     `json:"bondedAmount"     example:"0"`
	BondStart        *time.Time `json:"bondStart"`
	AttestationCount int        `json:"attestationCount" example:"0"`
}

// NewTrustRecord returns the placeholder trust record for address.
func NewTrustRecord(address string) TrustRecord {
	return TrustRecord{
		Address:      address,
		BondedAmount: "0",
	}
}

// BondRecord is the bond state for a single address.
//
// BondDuration is expressed in seconds; it and BondStart are null while the
// address has no bond.
type BondRecord struct {
	Address      string     `json:"address"      example:"GABC...XYZ"`
	BondedAmount string     `json:"bondedAmount" example:"0"`
	BondStart    *time.Time `json:"bondStart"`
	BondDuration *int64     `json:"bondDuration"`
	Active       bool       `json:"active"       example:"false"`
}

// NewBondRecord returns the placeholder bond record for address.
func NewBondRecord(address string) BondRecord {
	return BondRecord{
		Address:      address,
		BondedAmount: "0",
	}
}

// BulkVerifyRequest is the payload for verifying many addresses at once.
type BulkVerifyRequest struct {
	Addresses []string `json:"addresses" binding:"required,min=1,dive,required" example:"GABC...XYZ"`
}

// BulkVerifyResponse carries one trust record per distinct requested
// address, in request order.
type BulkVerifyResponse struct {
	Results []TrustRecord `json:"results"`
	Count   int           `json:"count"`
}
