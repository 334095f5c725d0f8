package receiving

import (
	"testing"

	"github.com/firf18/red-salud-sub010/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestManager(t *testing.T) {
	t.Run("tracks sessions through their lifecycle", func(t *testing.T) {
		m := NewManager(zap.NewNop())

		session, err := m.StartSession("PO-001", "SUP-1", "op-1", expectedItems())
		require.NoError(t, err)
		assert.Len(t, m.ActiveSessions(), 1)

		_, err = m.CountItem(session.ID, "op-1", "PROD-1", decimal.NewFromInt(100), "L-1", nil)
		require.NoError(t, err)
		_, err = m.CountItem(session.ID, "op-1", "PROD-2", decimal.NewFromInt(50), "L-2", nil)
		require.NoError(t, err)

		completed, discrepancies, err := m.CompleteSession(session.ID)
		require.NoError(t, err)
		assert.Empty(t, discrepancies)
		assert.Equal(t, SessionStatusCompleted, completed.Status)
		assert.Empty(t, m.ActiveSessions())
	})

	t.Run("unknown session id is not found", func(t *testing.T) {
		m := NewManager(zap.NewNop())

		_, err := m.GetSession(uuid.New())
		assert.ErrorIs(t, err, shared.ErrNotFound)

		_, err = m.CountItem(uuid.New(), "op-1", "PROD-1", decimal.NewFromInt(1), "", nil)
		assert.ErrorIs(t, err, shared.ErrNotFound)

		_, _, err = m.CompleteSession(uuid.New())
		assert.ErrorIs(t, err, shared.ErrNotFound)
	})
}
