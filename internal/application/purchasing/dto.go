package purchasing

import (
	"github.com/firf18/red-salud-sub010/internal/domain/purchasing"
	"github.com/shopspring/decimal"
)

// ComparePricesRequest evaluates supplier quotes for one product
type ComparePricesRequest struct {
	ProductID    string                `json:"product_id" binding:"required"`
	ProductName  string                `json:"product_name"`
	ExchangeRate decimal.Decimal       `json:"exchange_rate" binding:"required"`
	Suppliers    []purchasing.Supplier `json:"suppliers" binding:"required,dive"`
	Quotes       []QuoteRequest        `json:"quotes" binding:"required,dive"`

	// When set, savings are reported for switching from this supplier to
	// the best offer over Quantity units
	CurrentSupplierID string          `json:"current_supplier_id"`
	Quantity          decimal.Decimal `json:"quantity"`
}

// QuoteRequest is one supplier's offer
type QuoteRequest struct {
	SupplierID       string          `json:"supplier_id" binding:"required"`
	PriceUSD         decimal.Decimal `json:"price_usd" binding:"required"`
	PriceVES         decimal.Decimal `json:"price_ves"`
	FreightUSD       decimal.Decimal `json:"freight_usd"`
	DiscountRate     decimal.Decimal `json:"discount_rate"`
	PaymentTermsDays int             `json:"payment_terms_days"`
}

// ComparePricesResponse lists the landed-cost breakdowns best first
type ComparePricesResponse struct {
	Comparisons []purchasing.Comparison `json:"comparisons"`
	BestOffer   *purchasing.Comparison  `json:"best_offer,omitempty"`
	Savings     *purchasing.Savings     `json:"savings,omitempty"`
}

// RecommendationsRequest asks for reorder suggestions over a product set.
// Sales history is derived from the ledger's consumption records; stock
// levels come from the ledger's layers.
type RecommendationsRequest struct {
	Products        []ProductThresholds        `json:"products" binding:"required,dive"`
	LeadTimes       map[string]int             `json:"lead_times"`
	SeasonalFactors map[string]decimal.Decimal `json:"seasonal_factors"`
}

// ProductThresholds carries the replenishment thresholds for one product
type ProductThresholds struct {
	ProductID    string          `json:"product_id" binding:"required"`
	ProductName  string          `json:"product_name"`
	MinStock     decimal.Decimal `json:"min_stock"`
	MaxStock     decimal.Decimal `json:"max_stock"`
	ReorderPoint decimal.Decimal `json:"reorder_point"`
}
