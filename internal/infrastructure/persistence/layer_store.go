package persistence

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/firf18/red-salud-sub010/internal/domain/costing"
)

// LayerStore persists the cost layer ledger as a single JSON document
// keyed by KeyInventoryLayers
type LayerStore struct {
	kv KVStore
}

// NewLayerStore creates a layer store over the given backend
func NewLayerStore(kv KVStore) *LayerStore {
	return &LayerStore{kv: kv}
}

// SaveLayers serializes the complete layer map
func (s *LayerStore) SaveLayers(ctx context.Context, layers map[string][]*costing.CostLayer) error {
	data, err := json.Marshal(layers)
	if err != nil {
		return fmt.Errorf("failed to marshal layers: %w", err)
	}
	return s.kv.Save(ctx, KeyInventoryLayers, data)
}

// LoadLayers deserializes the complete layer map, returning an empty map
// when nothing has been persisted yet
func (s *LayerStore) LoadLayers(ctx context.Context) (map[string][]*costing.CostLayer, error) {
	data, err := s.kv.Load(ctx, KeyInventoryLayers)
	if err != nil {
		return nil, err
	}
	if data == nil {
		return make(map[string][]*costing.CostLayer), nil
	}

	var layers map[string][]*costing.CostLayer
	if err := json.Unmarshal(data, &layers); err != nil {
		return nil, fmt.Errorf("failed to unmarshal layers: %w", err)
	}
	return layers, nil
}
