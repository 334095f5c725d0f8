package costing

import (
	"fmt"
	"time"

	"github.com/firf18/red-salud-sub010/internal/domain/shared"
	"github.com/shopspring/decimal"
)

// LayerStatus represents the lifecycle state of a cost layer
type LayerStatus string

const (
	LayerStatusQuarantine LayerStatus = "quarantine"
	LayerStatusAvailable  LayerStatus = "available"
	LayerStatusReserved   LayerStatus = "reserved"
	LayerStatusDepleted   LayerStatus = "depleted"
)

// IsValid checks if the status is a valid LayerStatus
func (s LayerStatus) IsValid() bool {
	switch s {
	case LayerStatusQuarantine, LayerStatusAvailable, LayerStatusReserved, LayerStatusDepleted:
		return true
	}
	return false
}

// String returns the string representation
func (s LayerStatus) String() string {
	return string(s)
}

// CostLayer records one discrete purchase lot for a product with its own
// cost and exchange-rate snapshot. Layers are owned exclusively by the
// Ledger; consumers only ever see copies or consumption records.
type CostLayer struct {
	shared.BaseEntity
	ProductID string `json:"product_id"`

	// Identification
	SequenceNumber  int    `json:"sequence_number"`   // per-product, assigned in creation order
	InternalLotCode string `json:"internal_lot_code"` // YYYYMM-#### derived at creation
	ManufacturerLot string `json:"manufacturer_lot,omitempty"`

	// Cost snapshot at entry
	EntryDate    time.Time       `json:"entry_date"`
	ExchangeRate decimal.Decimal `json:"exchange_rate"`
	CostUSD      decimal.Decimal `json:"cost_usd"`
	CostVES      decimal.Decimal `json:"cost_ves"` // CostUSD * ExchangeRate

	// Supplier
	SupplierID   string `json:"supplier_id"`
	SupplierName string `json:"supplier_name"`

	// Quantities
	OriginalQuantity  decimal.Decimal `json:"original_quantity"`
	RemainingQuantity decimal.Decimal `json:"remaining_quantity"`

	Status LayerStatus `json:"status"`

	// Approval
	RequiresApproval bool       `json:"requires_approval"`
	ApprovedBy       string     `json:"approved_by,omitempty"`
	ApprovedAt       *time.Time `json:"approved_at,omitempty"`
	ApprovalNotes    string     `json:"approval_notes,omitempty"`
}

// newCostLayer builds a layer for the given product with the next sequence
// number. The internal lot code is derived from the current year-month, not
// the entry date, so back-dated entries still land in the receiving month.
func newCostLayer(seq int, in CreateLayerInput) *CostLayer {
	status := LayerStatusAvailable
	if in.RequiresApproval {
		status = LayerStatusQuarantine
	}
	return &CostLayer{
		BaseEntity:        shared.NewBaseEntity(),
		ProductID:         in.ProductID,
		SequenceNumber:    seq,
		InternalLotCode:   fmt.Sprintf("%s-%04d", time.Now().Format("200601"), seq),
		ManufacturerLot:   in.ManufacturerLot,
		EntryDate:         in.EntryDate,
		ExchangeRate:      in.ExchangeRate,
		CostUSD:           in.CostUSD,
		CostVES:           in.CostUSD.Mul(in.ExchangeRate),
		SupplierID:        in.SupplierID,
		SupplierName:      in.SupplierName,
		OriginalQuantity:  in.Quantity,
		RemainingQuantity: in.Quantity,
		Status:            status,
		RequiresApproval:  in.RequiresApproval,
	}
}

// IsConsumable reports whether stock may be drawn from this layer
func (l *CostLayer) IsConsumable() bool {
	return l.Status == LayerStatusAvailable && l.RemainingQuantity.GreaterThan(decimal.Zero)
}

// consume draws up to quantity from the layer and returns the amount
// actually taken. The layer flips to depleted exactly when remaining
// quantity reaches zero.
func (l *CostLayer) consume(quantity decimal.Decimal) decimal.Decimal {
	taken := decimal.Min(quantity, l.RemainingQuantity)
	l.RemainingQuantity = l.RemainingQuantity.Sub(taken)
	if l.RemainingQuantity.IsZero() {
		l.Status = LayerStatusDepleted
	}
	l.UpdatedAt = time.Now()
	return taken
}

// approve flips the layer to available and stamps the approver.
// The transition is unconditional: approving a layer that was never in
// quarantine is accepted, matching the receiving workflow's contract.
func (l *CostLayer) approve(approvedBy, notes string) {
	now := time.Now()
	l.Status = LayerStatusAvailable
	l.ApprovedBy = approvedBy
	l.ApprovedAt = &now
	l.ApprovalNotes = notes
	l.UpdatedAt = now
}
