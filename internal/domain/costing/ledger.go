package costing

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/firf18/red-salud-sub010/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

// DefaultProfitMargin is the margin applied to replacement cost when the
// caller does not supply one
var DefaultProfitMargin = decimal.NewFromFloat(0.30)

// CostSource identifies where a replacement cost quote came from
type CostSource string

const (
	CostSourceLatestLayer CostSource = "latest_layer"
	CostSourceCurrentRate CostSource = "current_rate"
)

// CreateLayerInput carries the fields needed to open a new cost layer
type CreateLayerInput struct {
	ProductID        string
	ManufacturerLot  string
	EntryDate        time.Time
	ExchangeRate     decimal.Decimal
	CostUSD          decimal.Decimal
	SupplierID       string
	SupplierName     string
	Quantity         decimal.Decimal
	RequiresApproval bool
}

// ReplacementCost is the cost the business would pay to restock one unit
// today: the most recent purchase layer when one exists, otherwise a
// zero-cost fallback tagged with the caller-supplied rate.
type ReplacementCost struct {
	CostUSD      decimal.Decimal `json:"cost_usd"`
	CostVES      decimal.Decimal `json:"cost_ves"`
	ExchangeRate decimal.Decimal `json:"exchange_rate"`
	Source       CostSource      `json:"source"`
}

// SellingPrice is a forward-looking price quote built on replacement cost
type SellingPrice struct {
	PriceUSD           decimal.Decimal `json:"price_usd"`
	PriceVES           decimal.Decimal `json:"price_ves"`
	ReplacementCostUSD decimal.Decimal `json:"replacement_cost_usd"`
	ReplacementCostVES decimal.Decimal `json:"replacement_cost_ves"`
	MarginUSD          decimal.Decimal `json:"margin_usd"`
	MarginVES          decimal.Decimal `json:"margin_ves"`
}

// LayerStatistics summarizes a product's layer set
type LayerStatistics struct {
	TotalLayers       int             `json:"total_layers"`
	AvailableQuantity decimal.Decimal `json:"available_quantity"`
	AverageCostUSD    decimal.Decimal `json:"average_cost_usd"`
	AverageCostVES    decimal.Decimal `json:"average_cost_ves"`
	OldestEntryDate   *time.Time      `json:"oldest_entry_date"`
	NewestEntryDate   *time.Time      `json:"newest_entry_date"`
}

// Ledger owns the per-product cost layer collections. It is constructed
// once per process and serializes all mutations through a single lock, so
// sequence numbers stay unique even under concurrent callers. The whole
// collection is persisted through the LayerStore after every mutation; a
// failed write propagates to the caller and the in-memory state is NOT
// rolled back; recovery is the caller's responsibility.
type Ledger struct {
	mu           sync.Mutex
	store        LayerStore
	log          *zap.Logger
	layers       map[string][]*CostLayer
	consumptions []*LayerConsumption
}

// NewLedger creates an empty ledger backed by the given store
func NewLedger(store LayerStore, log *zap.Logger) *Ledger {
	return &Ledger{
		store:  store,
		log:    log,
		layers: make(map[string][]*CostLayer),
	}
}

// Load rehydrates the layer collections from the store. Intended to run
// once at startup before the ledger is handed to callers.
func (l *Ledger) Load(ctx context.Context) error {
	loaded, err := l.store.LoadLayers(ctx)
	if err != nil {
		return fmt.Errorf("loading cost layers: %w", err)
	}
	l.mu.Lock()
	defer l.mu.Unlock()
	if loaded == nil {
		loaded = make(map[string][]*CostLayer)
	}
	l.layers = loaded
	l.log.Info("cost layers loaded", zap.Int("products", len(loaded)))
	return nil
}

// CreateLayer opens a new cost layer for a product. The sequence number is
// the current layer count plus one, assigned under the ledger lock.
func (l *Ledger) CreateLayer(ctx context.Context, in CreateLayerInput) (*CostLayer, error) {
	if in.ProductID == "" {
		return nil, shared.NewDomainError("INVALID_PRODUCT", "Product ID cannot be empty")
	}
	if in.Quantity.LessThanOrEqual(decimal.Zero) {
		return nil, shared.NewDomainError("INVALID_QUANTITY", "Layer quantity must be positive")
	}
	if in.ExchangeRate.LessThanOrEqual(decimal.Zero) {
		return nil, shared.NewDomainError("INVALID_RATE", "Exchange rate must be positive")
	}
	if in.CostUSD.IsNegative() {
		return nil, shared.NewDomainError("INVALID_COST", "Unit cost cannot be negative")
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	existing := l.layers[in.ProductID]
	layer := newCostLayer(len(existing)+1, in)
	l.layers[in.ProductID] = append(existing, layer)

	if err := l.persist(ctx); err != nil {
		return nil, err
	}

	l.log.Info("cost layer created",
		zap.String("product_id", layer.ProductID),
		zap.Int("sequence", layer.SequenceNumber),
		zap.String("lot", layer.InternalLotCode),
		zap.String("status", layer.Status.String()),
	)
	return layer, nil
}

// ApproveLayer releases a layer from quarantine. The id is searched across
// all products; ErrNotFound when it does not exist anywhere.
func (l *Ledger) ApproveLayer(ctx context.Context, layerID uuid.UUID, approvedBy, notes string) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	for _, layers := range l.layers {
		for _, layer := range layers {
			if layer.ID == layerID {
				layer.approve(approvedBy, notes)
				if err := l.persist(ctx); err != nil {
					return err
				}
				l.log.Info("cost layer approved",
					zap.String("layer_id", layerID.String()),
					zap.String("approved_by", approvedBy),
				)
				return nil
			}
		}
	}
	return shared.ErrNotFound
}

// ConsumeFromLayers draws the requested quantity from the product's
// available layers in ascending sequence order (oldest purchase first).
// Each slice keeps the cost of the layer it came from. Any quantity that
// could not be satisfied is returned in Remaining; stock-out is not an
// error here.
func (l *Ledger) ConsumeFromLayers(ctx context.Context, productID string, quantity decimal.Decimal, invoiceID string) (*ConsumptionResult, error) {
	if quantity.LessThanOrEqual(decimal.Zero) {
		return nil, shared.NewDomainError("INVALID_QUANTITY", "Requested quantity must be positive")
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	consumable := make([]*CostLayer, 0)
	for _, layer := range l.layers[productID] {
		if layer.IsConsumable() {
			consumable = append(consumable, layer)
		}
	}
	sort.Slice(consumable, func(i, j int) bool {
		return consumable[i].SequenceNumber < consumable[j].SequenceNumber
	})

	result := &ConsumptionResult{
		Consumed:  make([]ConsumedLayer, 0, len(consumable)),
		Remaining: quantity,
	}

	for _, layer := range consumable {
		if result.Remaining.IsZero() {
			break
		}
		taken := layer.consume(result.Remaining)
		l.consumptions = append(l.consumptions, newLayerConsumption(layer, invoiceID, taken))
		result.Consumed = append(result.Consumed, ConsumedLayer{
			LayerID:        layer.ID,
			SequenceNumber: layer.SequenceNumber,
			Quantity:       taken,
			CostUSD:        layer.CostUSD,
			CostVES:        layer.CostVES,
		})
		result.Remaining = result.Remaining.Sub(taken)
	}

	if err := l.persist(ctx); err != nil {
		return nil, err
	}

	l.log.Debug("layers consumed",
		zap.String("product_id", productID),
		zap.String("invoice_id", invoiceID),
		zap.Int("layers_touched", len(result.Consumed)),
		zap.String("unsatisfied", result.Remaining.String()),
	)
	return result, nil
}

// ReplacementCost quotes the cost of restocking one unit today: the layer
// with the highest sequence number among available and quarantine layers.
// This deliberately diverges from consumption order: COGS follows FIFO,
// pricing follows the most recent purchase, so margin survives devaluation.
func (l *Ledger) ReplacementCost(productID string, currentExchangeRate decimal.Decimal) ReplacementCost {
	l.mu.Lock()
	defer l.mu.Unlock()

	var latest *CostLayer
	for _, layer := range l.layers[productID] {
		if layer.Status != LayerStatusAvailable && layer.Status != LayerStatusQuarantine {
			continue
		}
		if latest == nil || layer.SequenceNumber > latest.SequenceNumber {
			latest = layer
		}
	}

	if latest != nil {
		return ReplacementCost{
			CostUSD:      latest.CostUSD,
			CostVES:      latest.CostVES,
			ExchangeRate: latest.ExchangeRate,
			Source:       CostSourceLatestLayer,
		}
	}
	return ReplacementCost{
		CostUSD:      decimal.Zero,
		CostVES:      decimal.Zero,
		ExchangeRate: currentExchangeRate,
		Source:       CostSourceCurrentRate,
	}
}

// SellingPrice quotes a price at the default profit margin
func (l *Ledger) SellingPrice(productID string, currentExchangeRate decimal.Decimal) SellingPrice {
	return l.SellingPriceWithMargin(productID, currentExchangeRate, DefaultProfitMargin)
}

// SellingPriceWithMargin quotes a price as replacement cost times one plus
// margin. The VES price is the USD price at the current rate, while the
// VES margin subtracts the layer's own VES cost, so the two margins are
// not cross-converted and may round apart.
func (l *Ledger) SellingPriceWithMargin(productID string, currentExchangeRate, margin decimal.Decimal) SellingPrice {
	rc := l.ReplacementCost(productID, currentExchangeRate)

	priceUSD := rc.CostUSD.Mul(decimal.NewFromInt(1).Add(margin))
	priceVES := priceUSD.Mul(currentExchangeRate)

	return SellingPrice{
		PriceUSD:           priceUSD,
		PriceVES:           priceVES,
		ReplacementCostUSD: rc.CostUSD,
		ReplacementCostVES: rc.CostVES,
		MarginUSD:          priceUSD.Sub(rc.CostUSD),
		MarginVES:          priceVES.Sub(rc.CostVES),
	}
}

// Statistics summarizes a product's layers: remaining quantity and average
// cost over available layers only, entry date range over all layers.
func (l *Ledger) Statistics(productID string) LayerStatistics {
	l.mu.Lock()
	defer l.mu.Unlock()

	layers := l.layers[productID]
	stats := LayerStatistics{
		AvailableQuantity: decimal.Zero,
		AverageCostUSD:    decimal.Zero,
		AverageCostVES:    decimal.Zero,
	}
	if len(layers) == 0 {
		return stats
	}
	stats.TotalLayers = len(layers)

	availableCount := 0
	sumUSD, sumVES := decimal.Zero, decimal.Zero
	for _, layer := range layers {
		if layer.Status == LayerStatusAvailable {
			availableCount++
			stats.AvailableQuantity = stats.AvailableQuantity.Add(layer.RemainingQuantity)
			sumUSD = sumUSD.Add(layer.CostUSD)
			sumVES = sumVES.Add(layer.CostVES)
		}
		entry := layer.EntryDate
		if stats.OldestEntryDate == nil || entry.Before(*stats.OldestEntryDate) {
			d := entry
			stats.OldestEntryDate = &d
		}
		if stats.NewestEntryDate == nil || entry.After(*stats.NewestEntryDate) {
			d := entry
			stats.NewestEntryDate = &d
		}
	}
	if availableCount > 0 {
		n := decimal.NewFromInt(int64(availableCount))
		stats.AverageCostUSD = sumUSD.Div(n)
		stats.AverageCostVES = sumVES.Div(n)
	}
	return stats
}

// ProductLayers returns a copy of the product's layer slice. The layer
// values themselves are copies too; mutating them does not touch the
// ledger.
func (l *Ledger) ProductLayers(productID string) []CostLayer {
	l.mu.Lock()
	defer l.mu.Unlock()

	layers := l.layers[productID]
	out := make([]CostLayer, len(layers))
	for i, layer := range layers {
		out[i] = *layer
	}
	return out
}

// Consumptions returns the consumption transactions recorded so far
func (l *Ledger) Consumptions() []LayerConsumption {
	l.mu.Lock()
	defer l.mu.Unlock()

	out := make([]LayerConsumption, len(l.consumptions))
	for i, c := range l.consumptions {
		out[i] = *c
	}
	return out
}

// persist writes the whole collection; callers must hold the lock
func (l *Ledger) persist(ctx context.Context) error {
	if err := l.store.SaveLayers(ctx, l.layers); err != nil {
		l.log.Error("persisting cost layers failed", zap.Error(err))
		return fmt.Errorf("persisting cost layers: %w", err)
	}
	return nil
}
