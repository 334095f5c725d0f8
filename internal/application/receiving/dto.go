package receiving

import (
	"time"

	"github.com/firf18/red-salud-sub010/internal/domain/costing"
	"github.com/firf18/red-salud-sub010/internal/domain/receiving"
	"github.com/shopspring/decimal"
)

// StartSessionRequest opens a blind receiving session for a purchase order.
// Expected quantities are captured here and hidden from the counting
// operator until completion.
type StartSessionRequest struct {
	PurchaseOrderID string                `json:"purchase_order_id" binding:"required"`
	SupplierID      string                `json:"supplier_id"`
	OperatorID      string                `json:"operator_id" binding:"required"`
	ExpectedItems   []ExpectedItemRequest `json:"expected_items" binding:"required,dive"`
}

// ExpectedItemRequest is one purchase-order line
type ExpectedItemRequest struct {
	ProductID        string          `json:"product_id" binding:"required"`
	ProductName      string          `json:"product_name"`
	ExpectedQuantity decimal.Decimal `json:"expected_quantity" binding:"required"`
	UnitCostUSD      decimal.Decimal `json:"unit_cost_usd"`
}

// CountItemRequest records one physical count
type CountItemRequest struct {
	OperatorID string          `json:"operator_id" binding:"required"`
	ProductID  string          `json:"product_id" binding:"required"`
	Quantity   decimal.Decimal `json:"quantity" binding:"required"`
	LotNumber  string          `json:"lot_number"`
	ExpiryDate *time.Time      `json:"expiry_date"`
}

// CountItemResponse echoes the session state plus the shelf-life check for
// the counted lot when an expiry date was given
type CountItemResponse struct {
	Session   *receiving.Session    `json:"session"`
	ShelfLife *receiving.FEFOResult `json:"shelf_life,omitempty"`
}

// CompleteSessionRequest reconciles and closes a session. The exchange rate
// is needed because a clean completion opens cost layers for the received
// stock.
type CompleteSessionRequest struct {
	ExchangeRate decimal.Decimal `json:"exchange_rate" binding:"required"`
}

// CompleteSessionResponse reports the reconciliation outcome and any layers
// opened for the received stock
type CompleteSessionResponse struct {
	Session       *receiving.Session      `json:"session"`
	Discrepancies []receiving.Discrepancy `json:"discrepancies"`
	CreatedLayers []costing.CostLayer     `json:"created_layers"`
}
