package receiving

import (
	"context"

	"github.com/firf18/red-salud-sub010/internal/domain/costing"
	"github.com/firf18/red-salud-sub010/internal/domain/receiving"
	"github.com/firf18/red-salud-sub010/internal/infrastructure/metrics"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// ReceivingService runs the blind receiving workflow end to end: counting
// against a hidden purchase order, reconciling, and opening quarantined
// cost layers for cleanly received stock
type ReceivingService struct {
	manager          *receiving.Manager
	ledger           *costing.Ledger
	metrics          *metrics.Metrics
	log              *zap.Logger
	fefoPolicyMonths int
}

// NewReceivingService creates a new ReceivingService
func NewReceivingService(manager *receiving.Manager, ledger *costing.Ledger, m *metrics.Metrics, log *zap.Logger, fefoPolicyMonths int) *ReceivingService {
	if fefoPolicyMonths <= 0 {
		fefoPolicyMonths = receiving.DefaultFEFOPolicyMonths
	}
	return &ReceivingService{
		manager:          manager,
		ledger:           ledger,
		metrics:          m,
		log:              log,
		fefoPolicyMonths: fefoPolicyMonths,
	}
}

// StartSession opens a blind receiving session
func (s *ReceivingService) StartSession(req StartSessionRequest) (*receiving.Session, error) {
	expected := make([]receiving.ExpectedItem, 0, len(req.ExpectedItems))
	for _, item := range req.ExpectedItems {
		expected = append(expected, receiving.ExpectedItem{
			ProductID:        item.ProductID,
			ProductName:      item.ProductName,
			ExpectedQuantity: item.ExpectedQuantity,
			UnitCostUSD:      item.UnitCostUSD,
		})
	}
	return s.manager.StartSession(req.PurchaseOrderID, req.SupplierID, req.OperatorID, expected)
}

// CountItem records a physical count. When the count carries an expiry
// date it is checked against the shelf-life policy; a failing check is
// reported but does not block the count, since the discrepancy workflow
// decides what to do with short-dated stock.
func (s *ReceivingService) CountItem(sessionID uuid.UUID, req CountItemRequest) (*CountItemResponse, error) {
	session, err := s.manager.CountItem(sessionID, req.OperatorID, req.ProductID, req.Quantity, req.LotNumber, req.ExpiryDate)
	if err != nil {
		return nil, err
	}

	resp := &CountItemResponse{Session: session}
	if req.ExpiryDate != nil {
		result := receiving.ValidateFEFO(*req.ExpiryDate, s.fefoPolicyMonths)
		resp.ShelfLife = &result
		if !result.Valid {
			s.log.Warn("counted lot fails shelf-life policy",
				zap.String("session_id", sessionID.String()),
				zap.String("product_id", req.ProductID),
				zap.String("lot", req.LotNumber),
				zap.Int("days_remaining", result.DaysRemaining),
			)
		}
	}
	return resp, nil
}

// CompleteSession reconciles the session. On a clean completion one
// quarantined cost layer is opened per expected item, carrying the lot and
// entry details from the operator's first count; a session with
// discrepancies opens no layers and waits for manual resolution.
func (s *ReceivingService) CompleteSession(ctx context.Context, sessionID uuid.UUID, req CompleteSessionRequest) (*CompleteSessionResponse, error) {
	session, discrepancies, err := s.manager.CompleteSession(sessionID)
	if err != nil {
		return nil, err
	}
	s.metrics.SessionsCompleted.WithLabelValues(session.Status.String()).Inc()

	resp := &CompleteSessionResponse{
		Session:       session,
		Discrepancies: discrepancies,
		CreatedLayers: make([]costing.CostLayer, 0),
	}
	if session.Status != receiving.SessionStatusCompleted {
		return resp, nil
	}

	for _, expected := range session.ExpectedItems {
		count := session.FirstCountDetails(expected.ProductID)
		if count == nil {
			continue
		}
		layer, err := s.ledger.CreateLayer(ctx, costing.CreateLayerInput{
			ProductID:        expected.ProductID,
			ManufacturerLot:  count.LotNumber,
			EntryDate:        count.CountedAt,
			ExchangeRate:     req.ExchangeRate,
			CostUSD:          expected.UnitCostUSD,
			SupplierID:       session.SupplierID,
			Quantity:         count.CountedQuantity,
			RequiresApproval: true,
		})
		if err != nil {
			s.log.Error("failed to open layer for received item",
				zap.String("session_id", sessionID.String()),
				zap.String("product_id", expected.ProductID),
				zap.Error(err),
			)
			return nil, err
		}
		s.metrics.LayersCreated.Inc()
		resp.CreatedLayers = append(resp.CreatedLayers, *layer)
	}
	return resp, nil
}

// GetSession returns a session by id
func (s *ReceivingService) GetSession(sessionID uuid.UUID) (*receiving.Session, error) {
	return s.manager.GetSession(sessionID)
}

// ActiveSessions returns all sessions still in progress
func (s *ReceivingService) ActiveSessions() []*receiving.Session {
	return s.manager.ActiveSessions()
}
