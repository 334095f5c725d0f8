package receiving

import (
	"sync"
	"time"

	"github.com/firf18/red-salud-sub010/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

// Manager registers receiving sessions for their short lifetime. Sessions
// live in memory only: a delivery is counted and completed within one
// process run, and a crashed session is simply restarted.
type Manager struct {
	mu       sync.Mutex
	log      *zap.Logger
	sessions map[uuid.UUID]*Session
}

// NewManager creates an empty session registry
func NewManager(log *zap.Logger) *Manager {
	return &Manager{
		log:      log,
		sessions: make(map[uuid.UUID]*Session),
	}
}

// StartSession opens a blind receiving session for a purchase order
func (m *Manager) StartSession(purchaseOrderID, supplierID, operatorID string, expectedItems []ExpectedItem) (*Session, error) {
	session, err := NewSession(purchaseOrderID, supplierID, operatorID, expectedItems)
	if err != nil {
		return nil, err
	}

	m.mu.Lock()
	m.sessions[session.ID] = session
	m.mu.Unlock()

	m.log.Info("receiving session started",
		zap.String("session_id", session.ID.String()),
		zap.String("purchase_order_id", purchaseOrderID),
		zap.String("operator_id", operatorID),
		zap.Int("expected_items", len(expectedItems)),
	)
	return session, nil
}

// CountItem appends a count to a session
func (m *Manager) CountItem(sessionID uuid.UUID, operatorID, productID string, quantity decimal.Decimal, lotNumber string, expiryDate *time.Time) (*Session, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	session, ok := m.sessions[sessionID]
	if !ok {
		return nil, shared.ErrNotFound
	}
	if err := session.RecordCount(operatorID, productID, quantity, lotNumber, expiryDate); err != nil {
		return nil, err
	}
	return session, nil
}

// CompleteSession reconciles and terminates a session
func (m *Manager) CompleteSession(sessionID uuid.UUID) (*Session, []Discrepancy, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	session, ok := m.sessions[sessionID]
	if !ok {
		return nil, nil, shared.ErrNotFound
	}
	discrepancies, err := session.Complete()
	if err != nil {
		return nil, nil, err
	}

	m.log.Info("receiving session completed",
		zap.String("session_id", sessionID.String()),
		zap.String("status", session.Status.String()),
		zap.Int("discrepancies", len(discrepancies)),
	)
	return session, discrepancies, nil
}

// GetSession returns a session by id
func (m *Manager) GetSession(sessionID uuid.UUID) (*Session, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	session, ok := m.sessions[sessionID]
	if !ok {
		return nil, shared.ErrNotFound
	}
	return session, nil
}

// ActiveSessions returns all sessions still in progress
func (m *Manager) ActiveSessions() []*Session {
	m.mu.Lock()
	defer m.mu.Unlock()

	active := make([]*Session, 0)
	for _, s := range m.sessions {
		if s.Status == SessionStatusInProgress {
			active = append(active, s)
		}
	}
	return active
}
