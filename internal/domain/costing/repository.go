package costing

import "context"

// LayerStore persists the full per-product layer collection as a whole on
// every mutation. There are no incremental writes: the externally
// observable contract is "load everything, get a consistent whole state".
type LayerStore interface {
	// SaveLayers persists the entire layer collection for all products
	SaveLayers(ctx context.Context, layers map[string][]*CostLayer) error

	// LoadLayers loads the entire layer collection; an empty (nil) map is
	// returned when nothing has been persisted yet
	LoadLayers(ctx context.Context) (map[string][]*CostLayer, error)
}
