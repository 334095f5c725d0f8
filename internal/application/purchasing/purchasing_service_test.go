package purchasing

import (
	"context"
	"testing"
	"time"

	"github.com/firf18/red-salud-sub010/internal/domain/costing"
	"github.com/firf18/red-salud-sub010/internal/domain/purchasing"
	"github.com/firf18/red-salud-sub010/internal/infrastructure/persistence"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func newTestService(t *testing.T) (*PurchasingService, *costing.Ledger) {
	t.Helper()
	log := zap.NewNop()
	ledger := costing.NewLedger(persistence.NewLayerStore(persistence.NewMemoryStore()), log)
	return NewPurchasingService(ledger, log, 30), ledger
}

func TestComparePricesService(t *testing.T) {
	t.Run("derives VES price when quote omits it and reports savings", func(t *testing.T) {
		svc, _ := newTestService(t)

		resp, err := svc.ComparePrices(ComparePricesRequest{
			ProductID:    "PROD-1",
			ExchangeRate: decimal.NewFromFloat(36.0),
			Suppliers: []purchasing.Supplier{
				{ID: "SUP-A", Name: "Droguería A"},
				{ID: "SUP-B", Name: "Droguería B"},
			},
			Quotes: []QuoteRequest{
				{SupplierID: "SUP-A", PriceUSD: decimal.NewFromInt(10)},
				{SupplierID: "SUP-B", PriceUSD: decimal.NewFromInt(8)},
			},
			CurrentSupplierID: "SUP-A",
			Quantity:          decimal.NewFromInt(100),
		})
		require.NoError(t, err)

		require.NotNil(t, resp.BestOffer)
		assert.Equal(t, "SUP-B", resp.BestOffer.SupplierID)
		assert.True(t, decimal.NewFromInt(360).Equal(resp.Comparisons[1].PriceVES), "derived at the comparison rate")

		require.NotNil(t, resp.Savings)
		assert.True(t, decimal.NewFromInt(200).Equal(resp.Savings.USD))
	})

	t.Run("no savings without a current supplier", func(t *testing.T) {
		svc, _ := newTestService(t)

		resp, err := svc.ComparePrices(ComparePricesRequest{
			ProductID:    "PROD-1",
			ExchangeRate: decimal.NewFromFloat(36.0),
			Suppliers:    []purchasing.Supplier{{ID: "SUP-A", Name: "A"}},
			Quotes:       []QuoteRequest{{SupplierID: "SUP-A", PriceUSD: decimal.NewFromInt(10)}},
		})
		require.NoError(t, err)
		assert.Nil(t, resp.Savings)
	})
}

func TestRecommendationsService(t *testing.T) {
	ctx := context.Background()

	t.Run("reads stock and sales history from the ledger", func(t *testing.T) {
		svc, ledger := newTestService(t)

		_, err := ledger.CreateLayer(ctx, costing.CreateLayerInput{
			ProductID:    "PROD-1",
			EntryDate:    time.Now(),
			ExchangeRate: decimal.NewFromFloat(36.0),
			CostUSD:      decimal.NewFromFloat(2.0),
			Quantity:     decimal.NewFromInt(100),
		})
		require.NoError(t, err)
		// 60 units sold recently: VMD = 2/day over the 30-day window
		_, err = ledger.ConsumeFromLayers(ctx, "PROD-1", decimal.NewFromInt(60), "F-001")
		require.NoError(t, err)

		recs := svc.Recommendations(RecommendationsRequest{
			Products: []ProductThresholds{{
				ProductID:    "PROD-1",
				ProductName:  "Ibuprofeno",
				MinStock:     decimal.NewFromInt(50),
				MaxStock:     decimal.NewFromInt(500),
				ReorderPoint: decimal.NewFromInt(80),
			}},
			LeadTimes: map[string]int{"PROD-1": 3},
		})

		require.Len(t, recs, 1)
		assert.True(t, decimal.NewFromInt(40).Equal(recs[0].CurrentStock), "100 purchased minus 60 sold")
		assert.Equal(t, purchasing.PriorityHigh, recs[0].Priority, "below minimum stock")
		// ceil(2 * (3 + 7)) = 20
		assert.True(t, decimal.NewFromInt(20).Equal(recs[0].RecommendedQuantity))
	})

	t.Run("product with no history still evaluated", func(t *testing.T) {
		svc, _ := newTestService(t)

		recs := svc.Recommendations(RecommendationsRequest{
			Products: []ProductThresholds{{
				ProductID: "PROD-X",
				MaxStock:  decimal.NewFromInt(100),
			}},
		})
		assert.Empty(t, recs, "zero VMD yields no positive quantity")
	})
}
