package fiscal

import (
	"time"

	"github.com/shopspring/decimal"
)

// ClassificationTotals accumulates base amounts and entry count for one
// statutory classification
type ClassificationTotals struct {
	BaseUSD decimal.Decimal `json:"base_usd"`
	BaseVES decimal.Decimal `json:"base_ves"`
	Count   int             `json:"count"`
}

// RateTotals accumulates base and tax amounts for one fixed rate bucket
type RateTotals struct {
	BaseUSD decimal.Decimal `json:"base_usd"`
	BaseVES decimal.Decimal `json:"base_ves"`
	IVAUSD  decimal.Decimal `json:"iva_usd"`
	IVAVES  decimal.Decimal `json:"iva_ves"`
}

// Summary is a period aggregation of one fiscal book, ready for the
// statutory filing forms
type Summary struct {
	PeriodStart time.Time `json:"period_start"`
	PeriodEnd   time.Time `json:"period_end"`

	TotalTransactions   int             `json:"total_transactions"`
	TotalBaseUSD        decimal.Decimal `json:"total_base_usd"`
	TotalBaseVES        decimal.Decimal `json:"total_base_ves"`
	TotalIVAUSD         decimal.Decimal `json:"total_iva_usd"`
	TotalIVAVES         decimal.Decimal `json:"total_iva_ves"`
	TotalIGTFUSD        decimal.Decimal `json:"total_igtf_usd"`
	TotalIGTFVES        decimal.Decimal `json:"total_igtf_ves"`
	TotalIVARetainedUSD decimal.Decimal `json:"total_iva_retained_usd"`
	TotalIVARetainedVES decimal.Decimal `json:"total_iva_retained_ves"`

	ByClassification map[Classification]*ClassificationTotals `json:"by_classification"`

	// Keyed by the named rates only (0%, 8%, 16%). Entries at any other
	// rate are counted in the overall totals but excluded here.
	Rate0  *RateTotals `json:"rate_0"`
	Rate8  *RateTotals `json:"rate_8"`
	Rate16 *RateTotals `json:"rate_16"`

	GeneratedAt time.Time `json:"generated_at"`
}

func newSummary(start, end time.Time) *Summary {
	s := &Summary{
		PeriodStart:         start,
		PeriodEnd:           end,
		TotalBaseUSD:        decimal.Zero,
		TotalBaseVES:        decimal.Zero,
		TotalIVAUSD:         decimal.Zero,
		TotalIVAVES:         decimal.Zero,
		TotalIGTFUSD:        decimal.Zero,
		TotalIGTFVES:        decimal.Zero,
		TotalIVARetainedUSD: decimal.Zero,
		TotalIVARetainedVES: decimal.Zero,
		ByClassification:    make(map[Classification]*ClassificationTotals, 4),
		Rate0:               zeroRateTotals(),
		Rate8:               zeroRateTotals(),
		Rate16:              zeroRateTotals(),
		GeneratedAt:         time.Now(),
	}
	for _, c := range []Classification{
		ClassificationExempt,
		ClassificationGravadaGeneral,
		ClassificationGravadaReducida,
		ClassificationGravadaSuntuaria,
	} {
		s.ByClassification[c] = &ClassificationTotals{BaseUSD: decimal.Zero, BaseVES: decimal.Zero}
	}
	return s
}

func zeroRateTotals() *RateTotals {
	return &RateTotals{
		BaseUSD: decimal.Zero,
		BaseVES: decimal.Zero,
		IVAUSD:  decimal.Zero,
		IVAVES:  decimal.Zero,
	}
}

// Summarize filters entries whose invoice date falls within the period
// (inclusive on both ends) and accumulates totals in a single pass. No
// validation is performed on entry amounts.
func Summarize(entries []*Entry, periodStart, periodEnd time.Time) *Summary {
	summary := newSummary(periodStart, periodEnd)

	for _, entry := range entries {
		if entry.InvoiceDate.Before(periodStart) || entry.InvoiceDate.After(periodEnd) {
			continue
		}
		summary.TotalTransactions++
		summary.TotalBaseUSD = summary.TotalBaseUSD.Add(entry.BaseAmountUSD)
		summary.TotalBaseVES = summary.TotalBaseVES.Add(entry.BaseAmountVES)
		summary.TotalIVAUSD = summary.TotalIVAUSD.Add(entry.IVAAmountUSD)
		summary.TotalIVAVES = summary.TotalIVAVES.Add(entry.IVAAmountVES)
		summary.TotalIGTFUSD = summary.TotalIGTFUSD.Add(entry.IGTFAmountUSD)
		summary.TotalIGTFVES = summary.TotalIGTFVES.Add(entry.IGTFAmountVES)
		summary.TotalIVARetainedUSD = summary.TotalIVARetainedUSD.Add(entry.IVARetainedUSD)
		summary.TotalIVARetainedVES = summary.TotalIVARetainedVES.Add(entry.IVARetainedVES)

		if ct, ok := summary.ByClassification[entry.Classification]; ok {
			ct.BaseUSD = ct.BaseUSD.Add(entry.BaseAmountUSD)
			ct.BaseVES = ct.BaseVES.Add(entry.BaseAmountVES)
			ct.Count++
		}

		var bucket *RateTotals
		switch {
		case entry.IVARate.IsZero():
			bucket = summary.Rate0
		case entry.IVARate.Equal(RateReduced):
			bucket = summary.Rate8
		case entry.IVARate.Equal(RateGeneral):
			bucket = summary.Rate16
		default:
			// Off-schedule rates stay out of the by-rate breakdown
			continue
		}
		bucket.BaseUSD = bucket.BaseUSD.Add(entry.BaseAmountUSD)
		bucket.BaseVES = bucket.BaseVES.Add(entry.BaseAmountVES)
		bucket.IVAUSD = bucket.IVAUSD.Add(entry.IVAAmountUSD)
		bucket.IVAVES = bucket.IVAVES.Add(entry.IVAAmountVES)
	}

	return summary
}
