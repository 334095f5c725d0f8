package persistence

import "context"

// Storage keys for the whole-collection snapshots each domain store
// serializes. One key per collection keeps the layout trivially portable
// across backends.
const (
	KeyInventoryLayers    = "inventory_layers"
	KeyFiscalBookSales    = "fiscal_book_sales"
	KeyFiscalBookPurchase = "fiscal_book_purchases"
)

// KVStore is the minimal persistence contract the domain stores are built
// on. Load returns (nil, nil) when the key has never been written.
type KVStore interface {
	Save(ctx context.Context, key string, value []byte) error
	Load(ctx context.Context, key string) ([]byte, error)
}
