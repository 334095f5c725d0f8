package inventory

import (
	"context"

	"github.com/firf18/red-salud-sub010/internal/domain/costing"
	"github.com/firf18/red-salud-sub010/internal/domain/fiscal"
	"github.com/firf18/red-salud-sub010/internal/infrastructure/metrics"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// InventoryService coordinates the cost layer ledger and the fiscal books
// so a purchase or a sale lands in both in one call
type InventoryService struct {
	ledger  *costing.Ledger
	book    *fiscal.Book
	metrics *metrics.Metrics
	margin  decimal.Decimal
}

// NewInventoryService creates a new InventoryService. margin is the default
// markup over replacement cost used for price quotes.
func NewInventoryService(ledger *costing.Ledger, book *fiscal.Book, m *metrics.Metrics, margin decimal.Decimal) *InventoryService {
	if margin.LessThanOrEqual(decimal.Zero) {
		margin = costing.DefaultProfitMargin
	}
	return &InventoryService{
		ledger:  ledger,
		book:    book,
		metrics: m,
		margin:  margin,
	}
}

// RecordPurchase opens a cost layer for the received stock and appends the
// invoice to the purchase book. The layer is created first; if the book
// append then fails the layer stays, since stock physically arrived either
// way.
func (s *InventoryService) RecordPurchase(ctx context.Context, req RecordPurchaseRequest) (*RecordPurchaseResponse, error) {
	layer, err := s.ledger.CreateLayer(ctx, costing.CreateLayerInput{
		ProductID:        req.ProductID,
		ManufacturerLot:  req.ManufacturerLot,
		EntryDate:        req.InvoiceDate,
		ExchangeRate:     req.ExchangeRate,
		CostUSD:          req.UnitCostUSD,
		SupplierID:       req.SupplierID,
		SupplierName:     req.SupplierName,
		Quantity:         req.Quantity,
		RequiresApproval: req.RequiresApproval,
	})
	if err != nil {
		return nil, err
	}
	s.metrics.LayersCreated.Inc()

	baseUSD := req.UnitCostUSD.Mul(req.Quantity)
	ivaUSD := baseUSD.Mul(req.IVARate)
	totalUSD := baseUSD.Add(ivaUSD)

	entry, err := s.book.CreatePurchaseEntry(ctx, fiscal.PurchaseEntryInput{
		InvoiceNumber:  req.InvoiceNumber,
		InvoiceDate:    req.InvoiceDate,
		SupplierRIF:    req.SupplierRIF,
		SupplierName:   req.SupplierName,
		BaseAmountUSD:  baseUSD,
		BaseAmountVES:  baseUSD.Mul(req.ExchangeRate),
		IVAAmountUSD:   ivaUSD,
		IVAAmountVES:   ivaUSD.Mul(req.ExchangeRate),
		TotalAmountUSD: totalUSD,
		TotalAmountVES: totalUSD.Mul(req.ExchangeRate),
		IVARate:        req.IVARate,
		Category:       req.Category,
		ExchangeRate:   req.ExchangeRate,
	})
	if err != nil {
		return nil, err
	}
	s.metrics.FiscalEntriesCreated.WithLabelValues("purchases").Inc()

	return &RecordPurchaseResponse{
		Layer:         *layer,
		FiscalEntryID: entry.ID.String(),
	}, nil
}

// RecordSale consumes stock from the oldest layers and appends the invoice
// to the sales book. Selling more than is in stock is not an error: the
// shortfall is reported and the book entry still records the full invoice.
func (s *InventoryService) RecordSale(ctx context.Context, req RecordSaleRequest) (*RecordSaleResponse, error) {
	result, err := s.ledger.ConsumeFromLayers(ctx, req.ProductID, req.Quantity, req.InvoiceNumber)
	if err != nil {
		return nil, err
	}
	s.metrics.ConsumptionsRecorded.Inc()
	if !result.Remaining.IsZero() {
		shortfall, _ := result.Remaining.Float64()
		s.metrics.ShortfallQuantity.Add(shortfall)
	}

	baseUSD := req.UnitPriceUSD.Mul(req.Quantity)
	ivaUSD := baseUSD.Mul(req.IVARate)
	totalUSD := baseUSD.Add(ivaUSD)

	entry, err := s.book.CreateSalesEntry(ctx, fiscal.SalesEntryInput{
		InvoiceNumber:          req.InvoiceNumber,
		InvoiceDate:            req.InvoiceDate,
		CustomerRIF:            req.CustomerRIF,
		CustomerName:           req.CustomerName,
		BaseAmountUSD:          baseUSD,
		BaseAmountVES:          baseUSD.Mul(req.ExchangeRate),
		IVAAmountUSD:           ivaUSD,
		IVAAmountVES:           ivaUSD.Mul(req.ExchangeRate),
		TotalAmountUSD:         totalUSD,
		TotalAmountVES:         totalUSD.Mul(req.ExchangeRate),
		IVARate:                req.IVARate,
		Category:               req.Category,
		IVARetainedUSD:         req.IVARetainedUSD,
		IVARetainedVES:         req.IVARetainedUSD.Mul(req.ExchangeRate),
		RetentionVoucherNumber: req.RetentionVoucherNumber,
		IGTFAmountUSD:          req.IGTFAmountUSD,
		IGTFAmountVES:          req.IGTFAmountUSD.Mul(req.ExchangeRate),
		ExchangeRate:           req.ExchangeRate,
	})
	if err != nil {
		return nil, err
	}
	s.metrics.FiscalEntriesCreated.WithLabelValues("sales").Inc()

	cogsUSD, cogsVES := result.CostOfGoods()
	return &RecordSaleResponse{
		Consumed:      result.Consumed,
		TotalConsumed: result.TotalConsumed(),
		Shortfall:     result.Remaining,
		COGSUSD:       cogsUSD,
		COGSVES:       cogsVES,
		FiscalEntryID: entry.ID.String(),
	}, nil
}

// ApproveLayer releases a quarantined layer for sale
func (s *InventoryService) ApproveLayer(ctx context.Context, layerID uuid.UUID, req ApproveLayerRequest) error {
	if err := s.ledger.ApproveLayer(ctx, layerID, req.ApprovedBy, req.Notes); err != nil {
		return err
	}
	s.metrics.LayersApproved.Inc()
	return nil
}

// GetPricing quotes replacement cost and selling price at the service's
// default margin
func (s *InventoryService) GetPricing(productID string, currentExchangeRate decimal.Decimal) *PricingResponse {
	return s.GetPricingWithMargin(productID, currentExchangeRate, s.margin)
}

// GetPricingWithMargin quotes replacement cost and selling price at an
// explicit margin
func (s *InventoryService) GetPricingWithMargin(productID string, currentExchangeRate, margin decimal.Decimal) *PricingResponse {
	return &PricingResponse{
		ProductID:       productID,
		ReplacementCost: s.ledger.ReplacementCost(productID, currentExchangeRate),
		SellingPrice:    s.ledger.SellingPriceWithMargin(productID, currentExchangeRate, margin),
	}
}

// GetStatistics summarizes a product's layer set
func (s *InventoryService) GetStatistics(productID string) costing.LayerStatistics {
	return s.ledger.Statistics(productID)
}

// ListLayers returns all layers recorded for a product
func (s *InventoryService) ListLayers(productID string) []costing.CostLayer {
	return s.ledger.ProductLayers(productID)
}

// ListConsumptions returns all consumption transactions recorded so far
func (s *InventoryService) ListConsumptions() []costing.LayerConsumption {
	return s.ledger.Consumptions()
}
