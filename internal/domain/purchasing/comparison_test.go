package purchasing

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testSuppliers() []Supplier {
	return []Supplier{
		{ID: "SUP-A", Name: "Droguería A"},
		{ID: "SUP-B", Name: "Droguería B"},
	}
}

func TestComparePrices(t *testing.T) {
	rate := decimal.NewFromFloat(36.0)

	t.Run("computes landed cost as price minus discount plus freight", func(t *testing.T) {
		quotes := []Quote{
			{
				SupplierID:   "SUP-A",
				PriceUSD:     decimal.NewFromInt(100),
				PriceVES:     decimal.NewFromInt(3600),
				FreightUSD:   decimal.NewFromInt(10),
				DiscountRate: decimal.NewFromFloat(0.05),
			},
		}

		comparisons, err := ComparePrices("PROD-1", "Acetaminofén", testSuppliers(), quotes, rate)
		require.NoError(t, err)
		require.Len(t, comparisons, 1)

		c := comparisons[0]
		// 100 - 5 + 10 = 105
		assert.True(t, decimal.NewFromInt(105).Equal(c.RealCostUSD))
		assert.True(t, decimal.NewFromInt(360).Equal(c.FreightVES), "freight converted at comparison rate")
		assert.True(t, decimal.NewFromInt(5).Equal(c.DiscountAmountUSD))
		assert.Equal(t, "Droguería A", c.SupplierName)
	})

	t.Run("sorts comparisons best offer first", func(t *testing.T) {
		quotes := []Quote{
			{SupplierID: "SUP-A", PriceUSD: decimal.NewFromInt(120)},
			{SupplierID: "SUP-B", PriceUSD: decimal.NewFromInt(110)},
		}

		comparisons, err := ComparePrices("PROD-1", "", testSuppliers(), quotes, rate)
		require.NoError(t, err)
		require.Len(t, comparisons, 2)
		assert.Equal(t, "SUP-B", comparisons[0].SupplierID)

		best := BestOffer(comparisons)
		require.NotNil(t, best)
		assert.Equal(t, "SUP-B", best.SupplierID)
	})

	t.Run("fails when a quote references an unknown supplier", func(t *testing.T) {
		quotes := []Quote{
			{SupplierID: "SUP-X", PriceUSD: decimal.NewFromInt(100)},
		}

		_, err := ComparePrices("PROD-1", "", testSuppliers(), quotes, rate)
		assert.Error(t, err)
	})

	t.Run("best offer of empty list is nil", func(t *testing.T) {
		assert.Nil(t, BestOffer(nil))
	})
}

func TestCalculateSavings(t *testing.T) {
	t.Run("quantifies switching gain over quantity", func(t *testing.T) {
		current := Comparison{RealCostUSD: decimal.NewFromInt(10), ExchangeRate: decimal.NewFromFloat(36.0)}
		best := Comparison{RealCostUSD: decimal.NewFromInt(8), ExchangeRate: decimal.NewFromFloat(36.0)}

		savings := CalculateSavings(current, best, decimal.NewFromInt(100))
		assert.True(t, decimal.NewFromInt(200).Equal(savings.USD))
		assert.True(t, decimal.NewFromInt(7200).Equal(savings.VES))
		assert.True(t, decimal.NewFromInt(20).Equal(savings.Percentage))
	})

	t.Run("reports zero percentage when current cost is zero", func(t *testing.T) {
		current := Comparison{RealCostUSD: decimal.Zero}
		best := Comparison{RealCostUSD: decimal.Zero}

		savings := CalculateSavings(current, best, decimal.NewFromInt(100))
		assert.True(t, savings.Percentage.IsZero())
	})
}
