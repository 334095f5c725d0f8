package fiscal

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

// SalesEntryInput carries the invoice fields for a sales book entry.
// Amounts are recorded as given; the book does not recompute tax from base.
type SalesEntryInput struct {
	InvoiceNumber string
	InvoiceDate   time.Time
	CustomerRIF   string
	CustomerName  string

	BaseAmountUSD  decimal.Decimal
	BaseAmountVES  decimal.Decimal
	IVAAmountUSD   decimal.Decimal
	IVAAmountVES   decimal.Decimal
	TotalAmountUSD decimal.Decimal
	TotalAmountVES decimal.Decimal

	IVARate  decimal.Decimal
	Category string

	IVARetainedUSD         decimal.Decimal
	IVARetainedVES         decimal.Decimal
	RetentionVoucherNumber string
	IGTFAmountUSD          decimal.Decimal
	IGTFAmountVES          decimal.Decimal

	ExchangeRate decimal.Decimal
}

// PurchaseEntryInput carries the invoice fields for a purchase book entry
type PurchaseEntryInput struct {
	InvoiceNumber string
	InvoiceDate   time.Time
	SupplierRIF   string
	SupplierName  string

	BaseAmountUSD  decimal.Decimal
	BaseAmountVES  decimal.Decimal
	IVAAmountUSD   decimal.Decimal
	IVAAmountVES   decimal.Decimal
	TotalAmountUSD decimal.Decimal
	TotalAmountVES decimal.Decimal

	IVARate  decimal.Decimal
	Category string

	ExchangeRate decimal.Decimal
}

// Book holds the append-only sales and purchase fiscal books. Each book
// is persisted whole through the EntryStore after every append; a failed
// write propagates and the in-memory append is not rolled back.
type Book struct {
	mu        sync.Mutex
	store     EntryStore
	log       *zap.Logger
	sales     []*Entry
	purchases []*Entry
}

// NewBook creates an empty fiscal book backed by the given store
func NewBook(store EntryStore, log *zap.Logger) *Book {
	return &Book{
		store:     store,
		log:       log,
		sales:     make([]*Entry, 0),
		purchases: make([]*Entry, 0),
	}
}

// Load rehydrates both books from the store
func (b *Book) Load(ctx context.Context) error {
	sales, err := b.store.LoadSalesEntries(ctx)
	if err != nil {
		return fmt.Errorf("loading sales book: %w", err)
	}
	purchases, err := b.store.LoadPurchaseEntries(ctx)
	if err != nil {
		return fmt.Errorf("loading purchase book: %w", err)
	}

	b.mu.Lock()
	defer b.mu.Unlock()
	if sales != nil {
		b.sales = sales
	}
	if purchases != nil {
		b.purchases = purchases
	}
	b.log.Info("fiscal books loaded",
		zap.Int("sales_entries", len(b.sales)),
		zap.Int("purchase_entries", len(b.purchases)),
	)
	return nil
}

// CreateSalesEntry classifies and appends a sales book entry
func (b *Book) CreateSalesEntry(ctx context.Context, in SalesEntryInput) (*Entry, error) {
	entry := &Entry{
		ID:                     uuid.New(),
		EntryType:              EntryTypeSale,
		InvoiceNumber:          in.InvoiceNumber,
		InvoiceDate:            in.InvoiceDate,
		CounterpartyRIF:        in.CustomerRIF,
		CounterpartyName:       in.CustomerName,
		BaseAmountUSD:          in.BaseAmountUSD,
		BaseAmountVES:          in.BaseAmountVES,
		IVAAmountUSD:           in.IVAAmountUSD,
		IVAAmountVES:           in.IVAAmountVES,
		TotalAmountUSD:         in.TotalAmountUSD,
		TotalAmountVES:         in.TotalAmountVES,
		IVARate:                in.IVARate,
		IVARateType:            DetermineRateType(in.IVARate),
		Classification:         DetermineClassification(in.IVARate, in.Category),
		IVARetainedUSD:         in.IVARetainedUSD,
		IVARetainedVES:         in.IVARetainedVES,
		RetentionVoucherNumber: in.RetentionVoucherNumber,
		IGTFAmountUSD:          in.IGTFAmountUSD,
		IGTFAmountVES:          in.IGTFAmountVES,
		ExchangeRate:           in.ExchangeRate,
		CreatedAt:              time.Now(),
	}

	b.mu.Lock()
	defer b.mu.Unlock()
	b.sales = append(b.sales, entry)
	if err := b.store.SaveSalesEntries(ctx, b.sales); err != nil {
		return nil, fmt.Errorf("persisting sales book: %w", err)
	}
	b.log.Debug("sales book entry recorded",
		zap.String("invoice", entry.InvoiceNumber),
		zap.String("classification", string(entry.Classification)),
	)
	return entry, nil
}

// CreatePurchaseEntry classifies and appends a purchase book entry
func (b *Book) CreatePurchaseEntry(ctx context.Context, in PurchaseEntryInput) (*Entry, error) {
	entry := &Entry{
		ID:               uuid.New(),
		EntryType:        EntryTypePurchase,
		InvoiceNumber:    in.InvoiceNumber,
		InvoiceDate:      in.InvoiceDate,
		CounterpartyRIF:  in.SupplierRIF,
		CounterpartyName: in.SupplierName,
		BaseAmountUSD:    in.BaseAmountUSD,
		BaseAmountVES:    in.BaseAmountVES,
		IVAAmountUSD:     in.IVAAmountUSD,
		IVAAmountVES:     in.IVAAmountVES,
		TotalAmountUSD:   in.TotalAmountUSD,
		TotalAmountVES:   in.TotalAmountVES,
		IVARate:          in.IVARate,
		IVARateType:      DetermineRateType(in.IVARate),
		Classification:   DetermineClassification(in.IVARate, in.Category),
		ExchangeRate:     in.ExchangeRate,
		CreatedAt:        time.Now(),
	}

	b.mu.Lock()
	defer b.mu.Unlock()
	b.purchases = append(b.purchases, entry)
	if err := b.store.SavePurchaseEntries(ctx, b.purchases); err != nil {
		return nil, fmt.Errorf("persisting purchase book: %w", err)
	}
	b.log.Debug("purchase book entry recorded",
		zap.String("invoice", entry.InvoiceNumber),
		zap.String("classification", string(entry.Classification)),
	)
	return entry, nil
}

// SalesSummary aggregates the sales book over a period
func (b *Book) SalesSummary(periodStart, periodEnd time.Time) *Summary {
	b.mu.Lock()
	entries := append([]*Entry(nil), b.sales...)
	b.mu.Unlock()
	return Summarize(entries, periodStart, periodEnd)
}

// PurchaseSummary aggregates the purchase book over a period
func (b *Book) PurchaseSummary(periodStart, periodEnd time.Time) *Summary {
	b.mu.Lock()
	entries := append([]*Entry(nil), b.purchases...)
	b.mu.Unlock()
	return Summarize(entries, periodStart, periodEnd)
}

// SalesEntriesInRange returns sales entries for the period sorted by
// invoice date ascending
func (b *Book) SalesEntriesInRange(periodStart, periodEnd time.Time) []*Entry {
	b.mu.Lock()
	defer b.mu.Unlock()
	return entriesInRange(b.sales, periodStart, periodEnd)
}

// PurchaseEntriesInRange returns purchase entries for the period sorted
// by invoice date ascending
func (b *Book) PurchaseEntriesInRange(periodStart, periodEnd time.Time) []*Entry {
	b.mu.Lock()
	defer b.mu.Unlock()
	return entriesInRange(b.purchases, periodStart, periodEnd)
}

func entriesInRange(entries []*Entry, start, end time.Time) []*Entry {
	out := make([]*Entry, 0)
	for _, e := range entries {
		if e.InvoiceDate.Before(start) || e.InvoiceDate.After(end) {
			continue
		}
		out = append(out, e)
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].InvoiceDate.Before(out[j].InvoiceDate)
	})
	return out
}
