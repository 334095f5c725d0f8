package persistence

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/firf18/red-salud-sub010/internal/domain/fiscal"
)

// FiscalStore persists the sales and purchases books as two JSON
// documents, one per book
type FiscalStore struct {
	kv KVStore
}

// NewFiscalStore creates a fiscal store over the given backend
func NewFiscalStore(kv KVStore) *FiscalStore {
	return &FiscalStore{kv: kv}
}

// SaveSalesEntries serializes the complete sales book
func (s *FiscalStore) SaveSalesEntries(ctx context.Context, entries []*fiscal.Entry) error {
	return s.saveEntries(ctx, KeyFiscalBookSales, entries)
}

// LoadSalesEntries deserializes the sales book
func (s *FiscalStore) LoadSalesEntries(ctx context.Context) ([]*fiscal.Entry, error) {
	return s.loadEntries(ctx, KeyFiscalBookSales)
}

// SavePurchaseEntries serializes the complete purchases book
func (s *FiscalStore) SavePurchaseEntries(ctx context.Context, entries []*fiscal.Entry) error {
	return s.saveEntries(ctx, KeyFiscalBookPurchase, entries)
}

// LoadPurchaseEntries deserializes the purchases book
func (s *FiscalStore) LoadPurchaseEntries(ctx context.Context) ([]*fiscal.Entry, error) {
	return s.loadEntries(ctx, KeyFiscalBookPurchase)
}

func (s *FiscalStore) saveEntries(ctx context.Context, key string, entries []*fiscal.Entry) error {
	data, err := json.Marshal(entries)
	if err != nil {
		return fmt.Errorf("failed to marshal entries: %w", err)
	}
	return s.kv.Save(ctx, key, data)
}

func (s *FiscalStore) loadEntries(ctx context.Context, key string) ([]*fiscal.Entry, error) {
	data, err := s.kv.Load(ctx, key)
	if err != nil {
		return nil, err
	}
	if data == nil {
		return make([]*fiscal.Entry, 0), nil
	}

	var entries []*fiscal.Entry
	if err := json.Unmarshal(data, &entries); err != nil {
		return nil, fmt.Errorf("failed to unmarshal entries: %w", err)
	}
	return entries, nil
}
