package receiving

import (
	"time"

	"github.com/firf18/red-salud-sub010/internal/domain/shared"
	"github.com/shopspring/decimal"
)

// SessionStatus represents the state of a blind receiving session.
// in_progress is the only non-terminal state; once completed there is no
// way back.
type SessionStatus string

const (
	SessionStatusInProgress       SessionStatus = "in_progress"
	SessionStatusCompleted        SessionStatus = "completed"
	SessionStatusDiscrepancyFound SessionStatus = "discrepancy_found"
)

// IsTerminal reports whether the session can no longer change
func (s SessionStatus) IsTerminal() bool {
	return s == SessionStatusCompleted || s == SessionStatusDiscrepancyFound
}

// String returns the string representation
func (s SessionStatus) String() string {
	return string(s)
}

// ExpectedItem is one purchase-order line the delivery should contain.
// The expected quantity lives on the record but is never surfaced to the
// counting operator; that is the point of blind receiving. UnitCostUSD is
// carried so a clean completion can open cost layers.
type ExpectedItem struct {
	ProductID        string          `json:"product_id"`
	ProductName      string          `json:"product_name"`
	ExpectedQuantity decimal.Decimal `json:"expected_quantity"`
	UnitCostUSD      decimal.Decimal `json:"unit_cost_usd"`
}

// CountedItem is one physical count recorded by the operator
type CountedItem struct {
	ProductID       string          `json:"product_id"`
	CountedQuantity decimal.Decimal `json:"counted_quantity"`
	LotNumber       string          `json:"lot_number,omitempty"`
	ExpiryDate      *time.Time      `json:"expiry_date,omitempty"`
	CountedAt       time.Time       `json:"counted_at"`
}

// Discrepancy is one expected item whose counted total differs
type Discrepancy struct {
	ProductID   string          `json:"product_id"`
	ProductName string          `json:"product_name"`
	Expected    decimal.Decimal `json:"expected"`
	Counted     decimal.Decimal `json:"counted"`
	Difference  decimal.Decimal `json:"difference"`
}

// Session reconciles a purchase order's expected items against operator
// counts. A session belongs to the operator who started it for its whole
// lifetime; nobody else may append counts.
type Session struct {
	shared.BaseEntity
	PurchaseOrderID string `json:"purchase_order_id"`
	SupplierID      string `json:"supplier_id"`
	OperatorID      string `json:"operator_id"`

	StartedAt   time.Time  `json:"started_at"`
	CompletedAt *time.Time `json:"completed_at,omitempty"`

	ExpectedItems []ExpectedItem `json:"expected_items"`
	CountedItems  []CountedItem  `json:"counted_items"`
	Discrepancies []Discrepancy  `json:"discrepancies"`

	Status SessionStatus `json:"status"`
}

// NewSession opens a receiving session in progress
func NewSession(purchaseOrderID, supplierID, operatorID string, expectedItems []ExpectedItem) (*Session, error) {
	if purchaseOrderID == "" {
		return nil, shared.NewDomainError("INVALID_PURCHASE_ORDER", "Purchase order ID cannot be empty")
	}
	if operatorID == "" {
		return nil, shared.NewDomainError("INVALID_OPERATOR", "Operator ID cannot be empty")
	}
	return &Session{
		BaseEntity:      shared.NewBaseEntity(),
		PurchaseOrderID: purchaseOrderID,
		SupplierID:      supplierID,
		OperatorID:      operatorID,
		StartedAt:       time.Now(),
		ExpectedItems:   expectedItems,
		CountedItems:    make([]CountedItem, 0),
		Discrepancies:   make([]Discrepancy, 0),
		Status:          SessionStatusInProgress,
	}, nil
}

// RecordCount appends a physical count. Duplicate counts for the same
// product are kept as separate records; reconciliation at completion
// consults only the first one (first-write-wins). Counts from anyone but
// the owning operator are rejected.
func (s *Session) RecordCount(operatorID, productID string, quantity decimal.Decimal, lotNumber string, expiryDate *time.Time) error {
	if s.Status != SessionStatusInProgress {
		return shared.ErrInvalidState
	}
	if operatorID != s.OperatorID {
		return shared.ErrForbidden
	}

	s.CountedItems = append(s.CountedItems, CountedItem{
		ProductID:       productID,
		CountedQuantity: quantity,
		LotNumber:       lotNumber,
		ExpiryDate:      expiryDate,
		CountedAt:       time.Now(),
	})
	s.UpdatedAt = time.Now()
	return nil
}

// Complete reconciles counts against expected quantities and moves the
// session to its terminal state: discrepancy_found if any expected item's
// counted quantity (zero when never counted) differs, completed otherwise.
func (s *Session) Complete() ([]Discrepancy, error) {
	if s.Status != SessionStatusInProgress {
		return nil, shared.ErrInvalidState
	}

	discrepancies := make([]Discrepancy, 0)
	for _, expected := range s.ExpectedItems {
		counted := s.firstCountFor(expected.ProductID)
		difference := counted.Sub(expected.ExpectedQuantity)
		if !difference.IsZero() {
			discrepancies = append(discrepancies, Discrepancy{
				ProductID:   expected.ProductID,
				ProductName: expected.ProductName,
				Expected:    expected.ExpectedQuantity,
				Counted:     counted,
				Difference:  difference,
			})
		}
	}

	now := time.Now()
	s.CompletedAt = &now
	s.UpdatedAt = now
	if len(discrepancies) > 0 {
		s.Status = SessionStatusDiscrepancyFound
		s.Discrepancies = discrepancies
	} else {
		s.Status = SessionStatusCompleted
	}
	return discrepancies, nil
}

// firstCountFor returns the quantity of the first count recorded for the
// product, zero when the product was never counted
func (s *Session) firstCountFor(productID string) decimal.Decimal {
	for _, c := range s.CountedItems {
		if c.ProductID == productID {
			return c.CountedQuantity
		}
	}
	return decimal.Zero
}

// FirstCountDetails returns the first count record for the product, nil
// when the product was never counted. Used after a clean completion to
// carry lot and expiry into layer creation.
func (s *Session) FirstCountDetails(productID string) *CountedItem {
	for i := range s.CountedItems {
		if s.CountedItems[i].ProductID == productID {
			return &s.CountedItems[i]
		}
	}
	return nil
}
