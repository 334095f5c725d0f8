package receiving

import (
	"testing"
	"time"

	"github.com/firf18/red-salud-sub010/internal/domain/shared"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func expectedItems() []ExpectedItem {
	return []ExpectedItem{
		{ProductID: "PROD-1", ProductName: "Acetaminofén", ExpectedQuantity: decimal.NewFromInt(100), UnitCostUSD: decimal.NewFromFloat(2.0)},
		{ProductID: "PROD-2", ProductName: "Ibuprofeno", ExpectedQuantity: decimal.NewFromInt(50), UnitCostUSD: decimal.NewFromFloat(3.5)},
	}
}

func TestNewSession(t *testing.T) {
	t.Run("opens in progress", func(t *testing.T) {
		session, err := NewSession("PO-001", "SUP-1", "op-1", expectedItems())
		require.NoError(t, err)
		assert.Equal(t, SessionStatusInProgress, session.Status)
		assert.False(t, session.Status.IsTerminal())
		assert.Empty(t, session.CountedItems)
	})

	t.Run("requires purchase order and operator", func(t *testing.T) {
		_, err := NewSession("", "SUP-1", "op-1", nil)
		assert.Error(t, err)

		_, err = NewSession("PO-001", "SUP-1", "", nil)
		assert.Error(t, err)
	})
}

func TestRecordCount(t *testing.T) {
	t.Run("appends counts including duplicates", func(t *testing.T) {
		session, err := NewSession("PO-001", "SUP-1", "op-1", expectedItems())
		require.NoError(t, err)

		require.NoError(t, session.RecordCount("op-1", "PROD-1", decimal.NewFromInt(60), "L-1", nil))
		require.NoError(t, session.RecordCount("op-1", "PROD-1", decimal.NewFromInt(40), "L-2", nil))
		assert.Len(t, session.CountedItems, 2)
	})

	t.Run("rejects counts from another operator", func(t *testing.T) {
		session, err := NewSession("PO-001", "SUP-1", "op-1", expectedItems())
		require.NoError(t, err)

		err = session.RecordCount("op-2", "PROD-1", decimal.NewFromInt(60), "", nil)
		assert.ErrorIs(t, err, shared.ErrForbidden)
	})

	t.Run("rejects counts on a terminated session", func(t *testing.T) {
		session, err := NewSession("PO-001", "SUP-1", "op-1", nil)
		require.NoError(t, err)
		_, err = session.Complete()
		require.NoError(t, err)

		err = session.RecordCount("op-1", "PROD-1", decimal.NewFromInt(60), "", nil)
		assert.ErrorIs(t, err, shared.ErrInvalidState)
	})
}

func TestComplete(t *testing.T) {
	t.Run("completes clean when first counts match expectations", func(t *testing.T) {
		session, err := NewSession("PO-001", "SUP-1", "op-1", expectedItems())
		require.NoError(t, err)

		require.NoError(t, session.RecordCount("op-1", "PROD-1", decimal.NewFromInt(100), "L-1", nil))
		require.NoError(t, session.RecordCount("op-1", "PROD-2", decimal.NewFromInt(50), "L-2", nil))

		discrepancies, err := session.Complete()
		require.NoError(t, err)
		assert.Empty(t, discrepancies)
		assert.Equal(t, SessionStatusCompleted, session.Status)
		assert.NotNil(t, session.CompletedAt)
	})

	t.Run("flags discrepancy when counted differs from expected", func(t *testing.T) {
		session, err := NewSession("PO-001", "SUP-1", "op-1", expectedItems())
		require.NoError(t, err)

		require.NoError(t, session.RecordCount("op-1", "PROD-1", decimal.NewFromInt(90), "L-1", nil))
		require.NoError(t, session.RecordCount("op-1", "PROD-2", decimal.NewFromInt(50), "L-2", nil))

		discrepancies, err := session.Complete()
		require.NoError(t, err)
		require.Len(t, discrepancies, 1)
		assert.Equal(t, "PROD-1", discrepancies[0].ProductID)
		assert.True(t, decimal.NewFromInt(-10).Equal(discrepancies[0].Difference))
		assert.Equal(t, SessionStatusDiscrepancyFound, session.Status)
	})

	t.Run("treats an uncounted item as zero", func(t *testing.T) {
		session, err := NewSession("PO-001", "SUP-1", "op-1", expectedItems())
		require.NoError(t, err)

		require.NoError(t, session.RecordCount("op-1", "PROD-1", decimal.NewFromInt(100), "L-1", nil))

		discrepancies, err := session.Complete()
		require.NoError(t, err)
		require.Len(t, discrepancies, 1)
		assert.Equal(t, "PROD-2", discrepancies[0].ProductID)
		assert.True(t, discrepancies[0].Counted.IsZero())
	})

	t.Run("reconciles against the first count only", func(t *testing.T) {
		session, err := NewSession("PO-001", "SUP-1", "op-1", expectedItems()[:1])
		require.NoError(t, err)

		require.NoError(t, session.RecordCount("op-1", "PROD-1", decimal.NewFromInt(100), "L-1", nil))
		// A later recount does not override the first
		require.NoError(t, session.RecordCount("op-1", "PROD-1", decimal.NewFromInt(42), "L-1", nil))

		discrepancies, err := session.Complete()
		require.NoError(t, err)
		assert.Empty(t, discrepancies)
		assert.Equal(t, SessionStatusCompleted, session.Status)
	})

	t.Run("cannot complete twice", func(t *testing.T) {
		session, err := NewSession("PO-001", "SUP-1", "op-1", nil)
		require.NoError(t, err)

		_, err = session.Complete()
		require.NoError(t, err)
		_, err = session.Complete()
		assert.ErrorIs(t, err, shared.ErrInvalidState)
	})
}

func TestFirstCountDetails(t *testing.T) {
	session, err := NewSession("PO-001", "SUP-1", "op-1", expectedItems())
	require.NoError(t, err)

	expiry := time.Now().AddDate(1, 0, 0)
	require.NoError(t, session.RecordCount("op-1", "PROD-1", decimal.NewFromInt(100), "L-1", &expiry))
	require.NoError(t, session.RecordCount("op-1", "PROD-1", decimal.NewFromInt(5), "L-9", nil))

	first := session.FirstCountDetails("PROD-1")
	require.NotNil(t, first)
	assert.Equal(t, "L-1", first.LotNumber)
	assert.Nil(t, session.FirstCountDetails("PROD-X"))
}
