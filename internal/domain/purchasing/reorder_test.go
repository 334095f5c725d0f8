package purchasing

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func salesAt(daysAgo int, qty float64) SaleRecord {
	return SaleRecord{
		Date:     time.Now().AddDate(0, 0, -daysAgo),
		Quantity: decimal.NewFromFloat(qty),
	}
}

func TestCalculateVMD(t *testing.T) {
	t.Run("divides window sales by window days", func(t *testing.T) {
		sales := []SaleRecord{
			salesAt(1, 30),
			salesAt(10, 30),
		}
		vmd := CalculateVMD(sales, 30)
		assert.True(t, decimal.NewFromInt(2).Equal(vmd))
	})

	t.Run("excludes sales older than the window", func(t *testing.T) {
		sales := []SaleRecord{
			salesAt(5, 30),
			salesAt(45, 900),
		}
		vmd := CalculateVMD(sales, 30)
		assert.True(t, decimal.NewFromInt(1).Equal(vmd))
	})

	t.Run("empty history yields zero", func(t *testing.T) {
		assert.True(t, CalculateVMD(nil, 30).IsZero())
	})
}

func TestCalculateABCCategory(t *testing.T) {
	tests := []struct {
		name    string
		revenue int64
		total   int64
		want    ABCCategory
	}{
		{"eighty percent or more is A", 80, 100, ABCCategoryA},
		{"sixty percent is B", 60, 100, ABCCategoryB},
		{"forty percent is C", 40, 100, ABCCategoryC},
		{"below forty percent is D", 10, 100, ABCCategoryD},
		{"zero total revenue is D", 10, 0, ABCCategoryD},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := CalculateABCCategory(decimal.NewFromInt(tt.revenue), decimal.NewFromInt(tt.total))
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestGenerateRecommendations(t *testing.T) {
	product := func(current, min, reorder, max float64) ProductStock {
		return ProductStock{
			ProductID:    "PROD-1",
			ProductName:  "Ibuprofeno",
			CurrentStock: decimal.NewFromFloat(current),
			MinStock:     decimal.NewFromFloat(min),
			MaxStock:     decimal.NewFromFloat(max),
			ReorderPoint: decimal.NewFromFloat(reorder),
		}
	}
	history := map[string][]SaleRecord{
		// 60 units over the trailing 30 days: VMD = 2
		"PROD-1": {salesAt(1, 30), salesAt(15, 30)},
	}

	t.Run("sizes quantity as VMD times lead plus buffer days", func(t *testing.T) {
		recs := GenerateRecommendations(
			[]ProductStock{product(5, 10, 20, 200)},
			history,
			map[string]int{"PROD-1": 3},
			nil,
		)
		require.Len(t, recs, 1)
		// ceil(2 * (3 + 7)) = 20
		assert.True(t, decimal.NewFromInt(20).Equal(recs[0].RecommendedQuantity))
		assert.Equal(t, 3, recs[0].LeadTimeDays)
	})

	t.Run("falls back to default lead time", func(t *testing.T) {
		recs := GenerateRecommendations(
			[]ProductStock{product(5, 10, 20, 200)},
			history,
			nil,
			nil,
		)
		require.Len(t, recs, 1)
		assert.Equal(t, DefaultLeadTimeDays, recs[0].LeadTimeDays)
		// ceil(2 * (7 + 7)) = 28
		assert.True(t, decimal.NewFromInt(28).Equal(recs[0].RecommendedQuantity))
	})

	t.Run("applies seasonal factor after base quantity", func(t *testing.T) {
		recs := GenerateRecommendations(
			[]ProductStock{product(5, 10, 20, 200)},
			history,
			map[string]int{"PROD-1": 3},
			map[string]decimal.Decimal{"PROD-1": decimal.NewFromFloat(1.5)},
		)
		require.Len(t, recs, 1)
		// ceil(20 * 1.5) = 30
		assert.True(t, decimal.NewFromInt(30).Equal(recs[0].RecommendedQuantity))
		require.NotNil(t, recs[0].SeasonalFactor)
	})

	t.Run("caps quantity at max stock minus current stock", func(t *testing.T) {
		recs := GenerateRecommendations(
			[]ProductStock{product(5, 10, 20, 15)},
			history,
			nil,
			nil,
		)
		require.Len(t, recs, 1)
		assert.True(t, decimal.NewFromInt(10).Equal(recs[0].RecommendedQuantity))
	})

	t.Run("drops products already at or above max", func(t *testing.T) {
		recs := GenerateRecommendations(
			[]ProductStock{product(200, 10, 20, 200)},
			history,
			nil,
			nil,
		)
		assert.Empty(t, recs)
	})

	t.Run("escalates priority as stock falls", func(t *testing.T) {
		tests := []struct {
			name    string
			current float64
			want    Priority
		}{
			{"zero stock is critical", 0, PriorityCritical},
			{"at or below minimum is high", 10, PriorityHigh},
			{"at or below reorder point is medium", 20, PriorityMedium},
			{"above reorder point is low", 50, PriorityLow},
		}
		for _, tt := range tests {
			t.Run(tt.name, func(t *testing.T) {
				recs := GenerateRecommendations(
					[]ProductStock{product(tt.current, 10, 20, 500)},
					history,
					nil,
					nil,
				)
				require.Len(t, recs, 1)
				assert.Equal(t, tt.want, recs[0].Priority)
			})
		}
	})

	t.Run("orders recommendations most urgent first", func(t *testing.T) {
		low := product(50, 10, 20, 500)
		critical := product(0, 10, 20, 500)
		critical.ProductID = "PROD-2"
		history["PROD-2"] = history["PROD-1"]
		defer delete(history, "PROD-2")

		recs := GenerateRecommendations(
			[]ProductStock{low, critical},
			history,
			nil,
			nil,
		)
		require.Len(t, recs, 2)
		assert.Equal(t, PriorityCritical, recs[0].Priority)
		assert.Equal(t, PriorityLow, recs[1].Priority)
	})
}
