package purchasing

import (
	"sort"
	"time"

	"github.com/shopspring/decimal"
)

const (
	// DefaultVMDWindowDays is the trailing window over which average daily
	// sales are computed
	DefaultVMDWindowDays = 30

	// ReorderBufferDays is added to supplier lead time when sizing a
	// reorder, covering delivery slack
	ReorderBufferDays = 7

	// DefaultLeadTimeDays is assumed when a product has no recorded
	// supplier lead time
	DefaultLeadTimeDays = 7
)

// Priority ranks how urgently a product needs restocking
type Priority string

const (
	PriorityLow      Priority = "low"
	PriorityMedium   Priority = "medium"
	PriorityHigh     Priority = "high"
	PriorityCritical Priority = "critical"
)

var prioritySeverity = map[Priority]int{
	PriorityCritical: 0,
	PriorityHigh:     1,
	PriorityMedium:   2,
	PriorityLow:      3,
}

// ABCCategory classifies a product by revenue contribution
type ABCCategory string

const (
	ABCCategoryA ABCCategory = "A"
	ABCCategoryB ABCCategory = "B"
	ABCCategoryC ABCCategory = "C"
	ABCCategoryD ABCCategory = "D"
)

// SaleRecord is one historical sale observation for a product
type SaleRecord struct {
	Date     time.Time
	Quantity decimal.Decimal
}

// ProductStock carries the stock thresholds the recommender evaluates.
// CurrentStock is read from the cost-layer ledger by the caller; the
// recommender itself never mutates inventory.
type ProductStock struct {
	ProductID    string
	ProductName  string
	CurrentStock decimal.Decimal
	MinStock     decimal.Decimal
	MaxStock     decimal.Decimal
	ReorderPoint decimal.Decimal
}

// Recommendation is an ephemeral reorder suggestion; acting on it is the
// purchasing workflow's job, not this module's
type Recommendation struct {
	ProductID   string `json:"product_id"`
	ProductName string `json:"product_name"`

	CurrentStock decimal.Decimal `json:"current_stock"`
	MinStock     decimal.Decimal `json:"min_stock"`
	MaxStock     decimal.Decimal `json:"max_stock"`

	VMD          decimal.Decimal `json:"vmd"`
	LeadTimeDays int             `json:"lead_time_days"`

	RecommendedQuantity decimal.Decimal `json:"recommended_quantity"`

	Priority Priority `json:"priority"`

	ABCCategory        ABCCategory     `json:"abc_category"`
	ProfitabilityScore decimal.Decimal `json:"profitability_score"`

	SeasonalFactor *decimal.Decimal `json:"seasonal_factor,omitempty"`

	CreatedAt time.Time `json:"created_at"`
}

// CalculateVMD returns the smoothed average daily sales quantity over the
// trailing window: the window-filtered quantity sum divided by windowDays,
// not by the number of days that actually had sales.
func CalculateVMD(sales []SaleRecord, windowDays int) decimal.Decimal {
	if windowDays <= 0 {
		windowDays = DefaultVMDWindowDays
	}
	cutoff := time.Now().AddDate(0, 0, -windowDays)

	total := decimal.Zero
	for _, s := range sales {
		if s.Date.Before(cutoff) {
			continue
		}
		total = total.Add(s.Quantity)
	}
	return total.Div(decimal.NewFromInt(int64(windowDays)))
}

// CalculateABCCategory buckets a product by its share of total revenue
func CalculateABCCategory(productRevenue, totalRevenue decimal.Decimal) ABCCategory {
	if totalRevenue.IsZero() {
		return ABCCategoryD
	}
	percentage := productRevenue.Div(totalRevenue).Mul(decimal.NewFromInt(100))
	switch {
	case percentage.GreaterThanOrEqual(decimal.NewFromInt(80)):
		return ABCCategoryA
	case percentage.GreaterThanOrEqual(decimal.NewFromInt(60)):
		return ABCCategoryB
	case percentage.GreaterThanOrEqual(decimal.NewFromInt(40)):
		return ABCCategoryC
	default:
		return ABCCategoryD
	}
}

// CalculateProfitabilityScore weights margin against turnover
func CalculateProfitabilityScore(margin, turnover decimal.Decimal) decimal.Decimal {
	return margin.Mul(decimal.NewFromFloat(0.6)).Add(turnover.Mul(decimal.NewFromFloat(0.4)))
}

// GenerateRecommendations builds prioritized reorder suggestions. For each
// product: quantity = ceil(VMD x (lead time + buffer)), optionally scaled
// by a seasonal factor and capped at max stock minus current stock;
// priority escalates as stock falls through the reorder point, the minimum,
// and zero. Products with a non-positive suggested quantity are dropped.
// Ordering is by priority severity; ties keep input order.
func GenerateRecommendations(
	products []ProductStock,
	salesHistory map[string][]SaleRecord,
	leadTimes map[string]int,
	seasonalFactors map[string]decimal.Decimal,
) []Recommendation {
	recommendations := make([]Recommendation, 0, len(products))

	for _, product := range products {
		vmd := CalculateVMD(salesHistory[product.ProductID], DefaultVMDWindowDays)

		leadTimeDays, ok := leadTimes[product.ProductID]
		if !ok {
			leadTimeDays = DefaultLeadTimeDays
		}

		daysOfStockNeeded := decimal.NewFromInt(int64(leadTimeDays + ReorderBufferDays))
		quantity := vmd.Mul(daysOfStockNeeded).Ceil()

		var seasonal *decimal.Decimal
		if factor, ok := seasonalFactors[product.ProductID]; ok {
			f := factor
			seasonal = &f
			quantity = quantity.Mul(factor).Ceil()
		}

		quantity = decimal.Min(quantity, product.MaxStock.Sub(product.CurrentStock))
		if quantity.LessThanOrEqual(decimal.Zero) {
			continue
		}

		var priority Priority
		switch {
		case product.CurrentStock.LessThanOrEqual(decimal.Zero):
			priority = PriorityCritical
		case product.CurrentStock.LessThanOrEqual(product.MinStock):
			priority = PriorityHigh
		case product.CurrentStock.LessThanOrEqual(product.ReorderPoint):
			priority = PriorityMedium
		default:
			priority = PriorityLow
		}

		recommendations = append(recommendations, Recommendation{
			ProductID:           product.ProductID,
			ProductName:         product.ProductName,
			CurrentStock:        product.CurrentStock,
			MinStock:            product.MinStock,
			MaxStock:            product.MaxStock,
			VMD:                 vmd,
			LeadTimeDays:        leadTimeDays,
			RecommendedQuantity: quantity,
			Priority:            priority,
			ABCCategory:         ABCCategoryB,
			ProfitabilityScore:  decimal.NewFromFloat(0.75),
			SeasonalFactor:      seasonal,
			CreatedAt:           time.Now(),
		})
	}

	sort.SliceStable(recommendations, func(i, j int) bool {
		return prioritySeverity[recommendations[i].Priority] < prioritySeverity[recommendations[j].Priority]
	})
	return recommendations
}
