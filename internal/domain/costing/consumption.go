package costing

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// LayerConsumption is an immutable record of quantity drawn from one layer
// for one sale invoice, carrying the layer's cost snapshot at consumption
// time. Cost is never blended across layers: each unit keeps the cost of
// the purchase lot it came from.
type LayerConsumption struct {
	ID        uuid.UUID `json:"id"`
	LayerID   uuid.UUID `json:"layer_id"`
	InvoiceID string    `json:"invoice_id"`

	Quantity     decimal.Decimal `json:"quantity"`
	UnitCostUSD  decimal.Decimal `json:"unit_cost_usd"`
	UnitCostVES  decimal.Decimal `json:"unit_cost_ves"`
	TotalCostUSD decimal.Decimal `json:"total_cost_usd"`
	TotalCostVES decimal.Decimal `json:"total_cost_ves"`

	TransactionDate time.Time `json:"transaction_date"`
	CreatedAt       time.Time `json:"created_at"`
}

func newLayerConsumption(layer *CostLayer, invoiceID string, quantity decimal.Decimal) *LayerConsumption {
	now := time.Now()
	return &LayerConsumption{
		ID:              uuid.New(),
		LayerID:         layer.ID,
		InvoiceID:       invoiceID,
		Quantity:        quantity,
		UnitCostUSD:     layer.CostUSD,
		UnitCostVES:     layer.CostVES,
		TotalCostUSD:    layer.CostUSD.Mul(quantity),
		TotalCostVES:    layer.CostVES.Mul(quantity),
		TransactionDate: now,
		CreatedAt:       now,
	}
}

// ConsumedLayer is one slice of a consumption request, with the cost
// snapshot of the layer it was taken from
type ConsumedLayer struct {
	LayerID        uuid.UUID       `json:"layer_id"`
	SequenceNumber int             `json:"sequence_number"`
	Quantity       decimal.Decimal `json:"quantity"`
	CostUSD        decimal.Decimal `json:"cost_usd"`
	CostVES        decimal.Decimal `json:"cost_ves"`
}

// ConsumptionResult is the outcome of a FIFO consumption request.
// Remaining carries any unsatisfied quantity; whether that is a stock-out
// error is the caller's decision.
type ConsumptionResult struct {
	Consumed  []ConsumedLayer `json:"consumed"`
	Remaining decimal.Decimal `json:"remaining"`
}

// TotalConsumed returns the quantity actually drawn across all layers
func (r *ConsumptionResult) TotalConsumed() decimal.Decimal {
	total := decimal.Zero
	for _, c := range r.Consumed {
		total = total.Add(c.Quantity)
	}
	return total
}

// CostOfGoods returns the exact summed acquisition cost of the consumed
// units in both currencies
func (r *ConsumptionResult) CostOfGoods() (usd, ves decimal.Decimal) {
	usd, ves = decimal.Zero, decimal.Zero
	for _, c := range r.Consumed {
		usd = usd.Add(c.CostUSD.Mul(c.Quantity))
		ves = ves.Add(c.CostVES.Mul(c.Quantity))
	}
	return usd, ves
}
