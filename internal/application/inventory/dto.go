package inventory

import (
	"time"

	"github.com/firf18/red-salud-sub010/internal/domain/costing"
	"github.com/shopspring/decimal"
)

// RecordPurchaseRequest registers a received purchase invoice: it opens a
// cost layer and appends a purchase book entry in one operation
type RecordPurchaseRequest struct {
	ProductID        string          `json:"product_id" binding:"required"`
	SupplierID       string          `json:"supplier_id" binding:"required"`
	SupplierName     string          `json:"supplier_name"`
	SupplierRIF      string          `json:"supplier_rif" binding:"omitempty,rif"`
	InvoiceNumber    string          `json:"invoice_number" binding:"required"`
	InvoiceDate      time.Time       `json:"invoice_date" binding:"required"`
	ManufacturerLot  string          `json:"manufacturer_lot"`
	Quantity         decimal.Decimal `json:"quantity" binding:"required"`
	UnitCostUSD      decimal.Decimal `json:"unit_cost_usd" binding:"required"`
	ExchangeRate     decimal.Decimal `json:"exchange_rate" binding:"required"`
	IVARate          decimal.Decimal `json:"iva_rate"`
	Category         string          `json:"category"`
	RequiresApproval bool            `json:"requires_approval"`
}

// RecordPurchaseResponse returns the layer and book entry created
type RecordPurchaseResponse struct {
	Layer         costing.CostLayer `json:"layer"`
	FiscalEntryID string            `json:"fiscal_entry_id"`
}

// RecordSaleRequest registers a sale invoice: it consumes stock FIFO and
// appends a sales book entry
type RecordSaleRequest struct {
	ProductID     string          `json:"product_id" binding:"required"`
	InvoiceNumber string          `json:"invoice_number" binding:"required"`
	InvoiceDate   time.Time       `json:"invoice_date" binding:"required"`
	CustomerRIF   string          `json:"customer_rif" binding:"omitempty,rif"`
	CustomerName  string          `json:"customer_name"`
	Quantity      decimal.Decimal `json:"quantity" binding:"required"`
	UnitPriceUSD  decimal.Decimal `json:"unit_price_usd" binding:"required"`
	ExchangeRate  decimal.Decimal `json:"exchange_rate" binding:"required"`
	IVARate       decimal.Decimal `json:"iva_rate"`
	Category      string          `json:"category"`

	IVARetainedUSD         decimal.Decimal `json:"iva_retained_usd"`
	RetentionVoucherNumber string          `json:"retention_voucher_number"`
	IGTFAmountUSD          decimal.Decimal `json:"igtf_amount_usd"`
}

// RecordSaleResponse returns the consumption breakdown with exact COGS
type RecordSaleResponse struct {
	Consumed      []costing.ConsumedLayer `json:"consumed"`
	TotalConsumed decimal.Decimal         `json:"total_consumed"`
	Shortfall     decimal.Decimal         `json:"shortfall"`
	COGSUSD       decimal.Decimal         `json:"cogs_usd"`
	COGSVES       decimal.Decimal         `json:"cogs_ves"`
	FiscalEntryID string                  `json:"fiscal_entry_id"`
}

// ApproveLayerRequest releases a quarantined layer for sale
type ApproveLayerRequest struct {
	ApprovedBy string `json:"approved_by" binding:"required"`
	Notes      string `json:"notes"`
}

// PricingResponse is a forward-looking price quote for a product
type PricingResponse struct {
	ProductID       string                  `json:"product_id"`
	ReplacementCost costing.ReplacementCost `json:"replacement_cost"`
	SellingPrice    costing.SellingPrice    `json:"selling_price"`
}
