package fiscal

import "context"

// EntryStore persists each book as a whole collection on every mutation,
// under separate keys for sales and purchases
type EntryStore interface {
	SaveSalesEntries(ctx context.Context, entries []*Entry) error
	LoadSalesEntries(ctx context.Context) ([]*Entry, error)

	SavePurchaseEntries(ctx context.Context, entries []*Entry) error
	LoadPurchaseEntries(ctx context.Context) ([]*Entry, error)
}
