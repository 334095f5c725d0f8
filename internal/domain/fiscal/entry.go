package fiscal

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// EntryType partitions the fiscal books into sales and purchases
type EntryType string

const (
	EntryTypeSale     EntryType = "sale"
	EntryTypePurchase EntryType = "purchase"
)

// RateType buckets an IVA rate the way the filing forms do
type RateType string

const (
	RateTypeExempt  RateType = "exempt"  // 0%
	RateTypeReduced RateType = "reduced" // 8%
	RateTypeGeneral RateType = "general" // 16%
	RateTypeLuxury  RateType = "luxury"  // above general
)

// Classification is the statutory category of a taxed transaction
type Classification string

const (
	ClassificationExempt           Classification = "exempt"
	ClassificationGravadaGeneral   Classification = "gravada_general"
	ClassificationGravadaReducida  Classification = "gravada_reducida"
	ClassificationGravadaSuntuaria Classification = "gravada_suntuaria"
)

// Named IVA rates under the current regime
var (
	RateExempt  = decimal.Zero
	RateReduced = decimal.NewFromFloat(0.08)
	RateGeneral = decimal.NewFromFloat(0.16)
)

// DetermineRateType buckets a rate by exact match against the named
// rates; anything else is treated as a luxury rate.
func DetermineRateType(ivaRate decimal.Decimal) RateType {
	switch {
	case ivaRate.IsZero():
		return RateTypeExempt
	case ivaRate.Equal(RateReduced):
		return RateTypeReduced
	case ivaRate.Equal(RateGeneral):
		return RateTypeGeneral
	default:
		return RateTypeLuxury
	}
}

// DetermineClassification derives the statutory category from the rate.
// The category argument is accepted but does not currently alter the
// result: under the present rules the rate alone determines the bucket.
func DetermineClassification(ivaRate decimal.Decimal, category string) Classification {
	_ = category
	switch {
	case ivaRate.IsZero():
		return ClassificationExempt
	case ivaRate.Equal(RateReduced):
		return ClassificationGravadaReducida
	case ivaRate.GreaterThan(RateGeneral):
		return ClassificationGravadaSuntuaria
	default:
		return ClassificationGravadaGeneral
	}
}

// Entry is one classified, rate-tagged record of a sale or purchase
// invoice. Entries are append-only: classification and rate type are
// derived once at creation and never recomputed. Amounts are stored as
// given by the caller; the book is a reporting aggregator, not a
// transaction validator.
type Entry struct {
	ID        uuid.UUID `json:"id"`
	EntryType EntryType `json:"entry_type"`

	InvoiceNumber string    `json:"invoice_number"`
	InvoiceDate   time.Time `json:"invoice_date"`

	CounterpartyRIF  string `json:"counterparty_rif"`
	CounterpartyName string `json:"counterparty_name"`

	BaseAmountUSD  decimal.Decimal `json:"base_amount_usd"`
	BaseAmountVES  decimal.Decimal `json:"base_amount_ves"`
	IVAAmountUSD   decimal.Decimal `json:"iva_amount_usd"`
	IVAAmountVES   decimal.Decimal `json:"iva_amount_ves"`
	TotalAmountUSD decimal.Decimal `json:"total_amount_usd"`
	TotalAmountVES decimal.Decimal `json:"total_amount_ves"`

	IVARate        decimal.Decimal `json:"iva_rate"`
	IVARateType    RateType        `json:"iva_rate_type"`
	Classification Classification  `json:"classification"`

	// Sales only
	IVARetainedUSD         decimal.Decimal `json:"iva_retained_usd"`
	IVARetainedVES         decimal.Decimal `json:"iva_retained_ves"`
	RetentionVoucherNumber string          `json:"retention_voucher_number,omitempty"`
	IGTFAmountUSD          decimal.Decimal `json:"igtf_amount_usd"`
	IGTFAmountVES          decimal.Decimal `json:"igtf_amount_ves"`

	ExchangeRate decimal.Decimal `json:"exchange_rate"`
	CreatedAt    time.Time       `json:"created_at"`
}
