package purchasing

import (
	"sort"
	"time"

	"github.com/firf18/red-salud-sub010/internal/domain/shared"
	"github.com/shopspring/decimal"
)

// Supplier identifies a wholesale drug supplier
type Supplier struct {
	ID   string `json:"id"`
	Name string `json:"name"`
	RIF  string `json:"rif,omitempty"`
}

// Quote is one supplier's offer for a product. Freight is quoted in USD;
// the VES leg is derived at the comparison exchange rate.
type Quote struct {
	SupplierID       string
	PriceUSD         decimal.Decimal
	PriceVES         decimal.Decimal
	FreightUSD       decimal.Decimal
	DiscountRate     decimal.Decimal // fraction of price, e.g. 0.05
	PaymentTermsDays int
}

// Comparison is the landed-cost breakdown of one quote. Ephemeral: it is
// computed on demand and never persisted.
type Comparison struct {
	ProductID    string `json:"product_id"`
	ProductName  string `json:"product_name"`
	SupplierID   string `json:"supplier_id"`
	SupplierName string `json:"supplier_name"`

	PriceUSD decimal.Decimal `json:"price_usd"`
	PriceVES decimal.Decimal `json:"price_ves"`

	FreightUSD decimal.Decimal `json:"freight_usd"`
	FreightVES decimal.Decimal `json:"freight_ves"`

	DiscountRate      decimal.Decimal `json:"discount_rate"`
	DiscountAmountUSD decimal.Decimal `json:"discount_amount_usd"`
	DiscountAmountVES decimal.Decimal `json:"discount_amount_ves"`

	PaymentTermsDays int `json:"payment_terms_days"`

	// Landed cost: price minus discount plus freight
	RealCostUSD decimal.Decimal `json:"real_cost_usd"`
	RealCostVES decimal.Decimal `json:"real_cost_ves"`

	ExchangeRate decimal.Decimal `json:"exchange_rate"`
	CreatedAt    time.Time       `json:"created_at"`
}

// Savings quantifies the gain from switching suppliers for a quantity
type Savings struct {
	USD        decimal.Decimal `json:"usd"`
	VES        decimal.Decimal `json:"ves"`
	Percentage decimal.Decimal `json:"percentage"`
}

// ComparePrices computes the landed cost of each quote and returns the
// comparisons sorted ascending by USD real cost, best offer first. Fails
// if a quote references a supplier not in the list.
func ComparePrices(productID, productName string, suppliers []Supplier, quotes []Quote, exchangeRate decimal.Decimal) ([]Comparison, error) {
	supplierByID := make(map[string]Supplier, len(suppliers))
	for _, s := range suppliers {
		supplierByID[s.ID] = s
	}

	comparisons := make([]Comparison, 0, len(quotes))
	for _, q := range quotes {
		supplier, ok := supplierByID[q.SupplierID]
		if !ok {
			return nil, shared.NewDomainError("SUPPLIER_NOT_FOUND", "Supplier "+q.SupplierID+" not found")
		}

		freightVES := q.FreightUSD.Mul(exchangeRate)
		discountUSD := q.PriceUSD.Mul(q.DiscountRate)
		discountVES := q.PriceVES.Mul(q.DiscountRate)

		comparisons = append(comparisons, Comparison{
			ProductID:         productID,
			ProductName:       productName,
			SupplierID:        supplier.ID,
			SupplierName:      supplier.Name,
			PriceUSD:          q.PriceUSD,
			PriceVES:          q.PriceVES,
			FreightUSD:        q.FreightUSD,
			FreightVES:        freightVES,
			DiscountRate:      q.DiscountRate,
			DiscountAmountUSD: discountUSD,
			DiscountAmountVES: discountVES,
			PaymentTermsDays:  q.PaymentTermsDays,
			RealCostUSD:       q.PriceUSD.Sub(discountUSD).Add(q.FreightUSD),
			RealCostVES:       q.PriceVES.Sub(discountVES).Add(freightVES),
			ExchangeRate:      exchangeRate,
			CreatedAt:         time.Now(),
		})
	}

	sort.SliceStable(comparisons, func(i, j int) bool {
		return comparisons[i].RealCostUSD.LessThan(comparisons[j].RealCostUSD)
	})
	return comparisons, nil
}

// BestOffer returns the cheapest comparison, or nil for an empty list.
// The input must already be sorted by ComparePrices.
func BestOffer(comparisons []Comparison) *Comparison {
	if len(comparisons) == 0 {
		return nil
	}
	return &comparisons[0]
}

// CalculateSavings quantifies what switching from the current supplier to
// the best offer saves over the given quantity. The percentage is relative
// to the current total cost; when that cost is zero the percentage is
// reported as zero and must not be taken as meaningful.
func CalculateSavings(current, best Comparison, quantity decimal.Decimal) Savings {
	currentTotalUSD := current.RealCostUSD.Mul(quantity)
	bestTotalUSD := best.RealCostUSD.Mul(quantity)

	savingUSD := currentTotalUSD.Sub(bestTotalUSD)
	savingVES := savingUSD.Mul(best.ExchangeRate)

	percentage := decimal.Zero
	if !currentTotalUSD.IsZero() {
		percentage = savingUSD.Div(currentTotalUSD).Mul(decimal.NewFromInt(100))
	}

	return Savings{USD: savingUSD, VES: savingVES, Percentage: percentage}
}
