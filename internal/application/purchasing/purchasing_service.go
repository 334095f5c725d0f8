package purchasing

import (
	"github.com/firf18/red-salud-sub010/internal/domain/costing"
	"github.com/firf18/red-salud-sub010/internal/domain/purchasing"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// PurchasingService answers the two buying questions: which supplier to
// buy from, and what to reorder. Both answers are ephemeral; nothing here
// is persisted.
type PurchasingService struct {
	ledger        *costing.Ledger
	log           *zap.Logger
	vmdWindowDays int
}

// NewPurchasingService creates a new PurchasingService
func NewPurchasingService(ledger *costing.Ledger, log *zap.Logger, vmdWindowDays int) *PurchasingService {
	if vmdWindowDays <= 0 {
		vmdWindowDays = purchasing.DefaultVMDWindowDays
	}
	return &PurchasingService{
		ledger:        ledger,
		log:           log,
		vmdWindowDays: vmdWindowDays,
	}
}

// ComparePrices ranks supplier quotes by landed cost. When a current
// supplier is named and present in the comparison, the response also
// quantifies the savings of switching to the best offer.
func (s *PurchasingService) ComparePrices(req ComparePricesRequest) (*ComparePricesResponse, error) {
	quotes := make([]purchasing.Quote, 0, len(req.Quotes))
	for _, q := range req.Quotes {
		priceVES := q.PriceVES
		if priceVES.IsZero() {
			priceVES = q.PriceUSD.Mul(req.ExchangeRate)
		}
		quotes = append(quotes, purchasing.Quote{
			SupplierID:       q.SupplierID,
			PriceUSD:         q.PriceUSD,
			PriceVES:         priceVES,
			FreightUSD:       q.FreightUSD,
			DiscountRate:     q.DiscountRate,
			PaymentTermsDays: q.PaymentTermsDays,
		})
	}

	comparisons, err := purchasing.ComparePrices(req.ProductID, req.ProductName, req.Suppliers, quotes, req.ExchangeRate)
	if err != nil {
		return nil, err
	}

	resp := &ComparePricesResponse{
		Comparisons: comparisons,
		BestOffer:   purchasing.BestOffer(comparisons),
	}
	if req.CurrentSupplierID != "" && resp.BestOffer != nil {
		for i := range comparisons {
			if comparisons[i].SupplierID == req.CurrentSupplierID {
				savings := purchasing.CalculateSavings(comparisons[i], *resp.BestOffer, req.Quantity)
				resp.Savings = &savings
				break
			}
		}
	}
	return resp, nil
}

// Recommendations builds prioritized reorder suggestions. Current stock is
// the sum of remaining quantities in the product's available layers, and
// sales history is reconstructed from the ledger's consumption records.
func (s *PurchasingService) Recommendations(req RecommendationsRequest) []purchasing.Recommendation {
	products := make([]purchasing.ProductStock, 0, len(req.Products))
	salesHistory := make(map[string][]purchasing.SaleRecord, len(req.Products))
	consumptions := s.ledger.Consumptions()

	for _, p := range req.Products {
		stats := s.ledger.Statistics(p.ProductID)
		products = append(products, purchasing.ProductStock{
			ProductID:    p.ProductID,
			ProductName:  p.ProductName,
			CurrentStock: stats.AvailableQuantity,
			MinStock:     p.MinStock,
			MaxStock:     p.MaxStock,
			ReorderPoint: p.ReorderPoint,
		})
		salesHistory[p.ProductID] = s.salesFor(p.ProductID, consumptions)
	}

	recommendations := purchasing.GenerateRecommendations(products, salesHistory, req.LeadTimes, req.SeasonalFactors)
	s.log.Debug("reorder recommendations generated",
		zap.Int("products_evaluated", len(products)),
		zap.Int("recommendations", len(recommendations)),
	)
	return recommendations
}

// salesFor maps the product's layer ids over the consumption log to
// reconstruct its sale history
func (s *PurchasingService) salesFor(productID string, consumptions []costing.LayerConsumption) []purchasing.SaleRecord {
	layerIDs := make(map[uuid.UUID]struct{})
	for _, layer := range s.ledger.ProductLayers(productID) {
		layerIDs[layer.ID] = struct{}{}
	}

	sales := make([]purchasing.SaleRecord, 0)
	for _, c := range consumptions {
		if _, ok := layerIDs[c.LayerID]; !ok {
			continue
		}
		sales = append(sales, purchasing.SaleRecord{
			Date:     c.TransactionDate,
			Quantity: c.Quantity,
		})
	}
	return sales
}
