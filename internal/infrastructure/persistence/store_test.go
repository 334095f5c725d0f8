package persistence

import (
	"context"
	"testing"
	"time"

	"github.com/firf18/red-salud-sub010/internal/domain/costing"
	"github.com/firf18/red-salud-sub010/internal/domain/fiscal"
	"github.com/firf18/red-salud-sub010/internal/domain/shared"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryStore(t *testing.T) {
	ctx := context.Background()

	t.Run("round trips values", func(t *testing.T) {
		store := NewMemoryStore()

		require.NoError(t, store.Save(ctx, "k", []byte("v")))
		got, err := store.Load(ctx, "k")
		require.NoError(t, err)
		assert.Equal(t, []byte("v"), got)
	})

	t.Run("missing key loads as nil without error", func(t *testing.T) {
		store := NewMemoryStore()

		got, err := store.Load(ctx, "absent")
		require.NoError(t, err)
		assert.Nil(t, got)
	})

	t.Run("returned slices are copies", func(t *testing.T) {
		store := NewMemoryStore()

		require.NoError(t, store.Save(ctx, "k", []byte("abc")))
		got, _ := store.Load(ctx, "k")
		got[0] = 'x'

		again, _ := store.Load(ctx, "k")
		assert.Equal(t, []byte("abc"), again)
	})
}

func TestLayerStore(t *testing.T) {
	ctx := context.Background()

	t.Run("empty store loads an empty map", func(t *testing.T) {
		store := NewLayerStore(NewMemoryStore())

		layers, err := store.LoadLayers(ctx)
		require.NoError(t, err)
		assert.NotNil(t, layers)
		assert.Empty(t, layers)
	})

	t.Run("round trips layers with dates and decimals intact", func(t *testing.T) {
		store := NewLayerStore(NewMemoryStore())

		entryDate := time.Date(2026, 8, 15, 10, 30, 0, 0, time.UTC)
		layer := &costing.CostLayer{
			BaseEntity:        shared.NewBaseEntity(),
			ProductID:         "PROD-1",
			SequenceNumber:    1,
			InternalLotCode:   "202608-0001",
			EntryDate:         entryDate,
			ExchangeRate:      decimal.NewFromFloat(36.5),
			CostUSD:           decimal.NewFromFloat(2.75),
			CostVES:           decimal.NewFromFloat(100.375),
			OriginalQuantity:  decimal.NewFromInt(100),
			RemainingQuantity: decimal.NewFromInt(60),
			Status:            costing.LayerStatusAvailable,
		}
		require.NoError(t, store.SaveLayers(ctx, map[string][]*costing.CostLayer{
			"PROD-1": {layer},
		}))

		loaded, err := store.LoadLayers(ctx)
		require.NoError(t, err)
		require.Len(t, loaded["PROD-1"], 1)

		got := loaded["PROD-1"][0]
		assert.Equal(t, layer.ID, got.ID)
		assert.True(t, entryDate.Equal(got.EntryDate))
		assert.True(t, decimal.NewFromFloat(2.75).Equal(got.CostUSD))
		assert.True(t, decimal.NewFromInt(60).Equal(got.RemainingQuantity))
		assert.Equal(t, costing.LayerStatusAvailable, got.Status)
	})
}

func TestFiscalStore(t *testing.T) {
	ctx := context.Background()

	t.Run("empty books load as empty slices", func(t *testing.T) {
		store := NewFiscalStore(NewMemoryStore())

		sales, err := store.LoadSalesEntries(ctx)
		require.NoError(t, err)
		assert.Empty(t, sales)

		purchases, err := store.LoadPurchaseEntries(ctx)
		require.NoError(t, err)
		assert.Empty(t, purchases)
	})

	t.Run("keeps sales and purchases under separate keys", func(t *testing.T) {
		kv := NewMemoryStore()
		store := NewFiscalStore(kv)

		sale := &fiscal.Entry{
			EntryType:     fiscal.EntryTypeSale,
			InvoiceNumber: "F-001",
			InvoiceDate:   time.Date(2026, 8, 10, 0, 0, 0, 0, time.UTC),
			BaseAmountUSD: decimal.NewFromInt(100),
			IVARate:       decimal.NewFromFloat(0.16),
		}
		require.NoError(t, store.SaveSalesEntries(ctx, []*fiscal.Entry{sale}))

		sales, err := store.LoadSalesEntries(ctx)
		require.NoError(t, err)
		require.Len(t, sales, 1)
		assert.Equal(t, "F-001", sales[0].InvoiceNumber)
		assert.True(t, sale.InvoiceDate.Equal(sales[0].InvoiceDate))

		purchases, err := store.LoadPurchaseEntries(ctx)
		require.NoError(t, err)
		assert.Empty(t, purchases)
	})
}
