package handler

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	inventoryapp "github.com/firf18/red-salud-sub010/internal/application/inventory"
	"github.com/firf18/red-salud-sub010/internal/domain/costing"
	"github.com/firf18/red-salud-sub010/internal/domain/fiscal"
	"github.com/firf18/red-salud-sub010/internal/infrastructure/metrics"
	"github.com/firf18/red-salud-sub010/internal/infrastructure/persistence"
	"github.com/firf18/red-salud-sub010/internal/interfaces/http/dto"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func newTestRouter(t *testing.T) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)
	require.NoError(t, dto.RegisterValidations())

	log := zap.NewNop()
	kv := persistence.NewMemoryStore()
	ledger := costing.NewLedger(persistence.NewLayerStore(kv), log)
	book := fiscal.NewBook(persistence.NewFiscalStore(kv), log)
	m := metrics.New(prometheus.NewRegistry())
	service := inventoryapp.NewInventoryService(ledger, book, m, decimal.NewFromFloat(0.30))
	h := NewInventoryHandler(service)

	engine := gin.New()
	engine.POST("/inventory/purchases", h.RecordPurchase)
	engine.POST("/inventory/sales", h.RecordSale)
	engine.GET("/inventory/products/:productId/pricing", h.GetPricing)
	engine.GET("/inventory/products/:productId/layers", h.ListLayers)
	return engine
}

func postJSON(t *testing.T, engine *gin.Engine, path string, body map[string]any) *httptest.ResponseRecorder {
	t.Helper()
	data, err := json.Marshal(body)
	require.NoError(t, err)
	req := httptest.NewRequest(http.MethodPost, path, bytes.NewReader(data))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	engine.ServeHTTP(w, req)
	return w
}

func purchaseBody() map[string]any {
	return map[string]any{
		"product_id":     "PROD-1",
		"supplier_id":    "SUP-1",
		"supplier_rif":   "J-12345678-9",
		"invoice_number": "C-001",
		"invoice_date":   "2026-08-10T00:00:00Z",
		"quantity":       "100",
		"unit_cost_usd":  "2.00",
		"exchange_rate":  "36.0",
		"iva_rate":       "0.16",
	}
}

func TestRecordPurchaseEndpoint(t *testing.T) {
	t.Run("creates layer from valid request", func(t *testing.T) {
		engine := newTestRouter(t)

		w := postJSON(t, engine, "/inventory/purchases", purchaseBody())
		require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

		var resp struct {
			Success bool `json:"success"`
			Data    struct {
				Layer struct {
					SequenceNumber  int    `json:"sequence_number"`
					InternalLotCode string `json:"internal_lot_code"`
				} `json:"layer"`
			} `json:"data"`
		}
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		assert.True(t, resp.Success)
		assert.Equal(t, 1, resp.Data.Layer.SequenceNumber)
		assert.NotEmpty(t, resp.Data.Layer.InternalLotCode)
	})

	t.Run("rejects malformed RIF", func(t *testing.T) {
		engine := newTestRouter(t)

		body := purchaseBody()
		body["supplier_rif"] = "ZZ-123"
		w := postJSON(t, engine, "/inventory/purchases", body)
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("rejects missing required fields", func(t *testing.T) {
		engine := newTestRouter(t)

		w := postJSON(t, engine, "/inventory/purchases", map[string]any{"product_id": "PROD-1"})
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})
}

func TestGetPricingEndpoint(t *testing.T) {
	t.Run("quotes selling price over replacement cost", func(t *testing.T) {
		engine := newTestRouter(t)

		w := postJSON(t, engine, "/inventory/purchases", purchaseBody())
		require.Equal(t, http.StatusCreated, w.Code)

		req := httptest.NewRequest(http.MethodGet, "/inventory/products/PROD-1/pricing?exchange_rate=40.0", nil)
		rec := httptest.NewRecorder()
		engine.ServeHTTP(rec, req)
		require.Equal(t, http.StatusOK, rec.Code)

		var resp struct {
			Data struct {
				SellingPrice struct {
					PriceUSD string `json:"price_usd"`
				} `json:"selling_price"`
			} `json:"data"`
		}
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
		assert.Equal(t, "2.6", resp.Data.SellingPrice.PriceUSD)
	})

	t.Run("requires a positive exchange rate", func(t *testing.T) {
		engine := newTestRouter(t)

		req := httptest.NewRequest(http.MethodGet, "/inventory/products/PROD-1/pricing", nil)
		rec := httptest.NewRecorder()
		engine.ServeHTTP(rec, req)
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})
}
