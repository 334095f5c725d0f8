package report

import (
	"context"
	"time"

	"github.com/firf18/red-salud-sub010/internal/domain/fiscal"
	"github.com/firf18/red-salud-sub010/internal/domain/shared"
	"go.uber.org/zap"
)

// Submitter hands a finished book report to the tax authority. The
// transmission channel (SENIAT portal, intermediary, manual upload) is
// decided at wiring time; this service only builds the report.
type Submitter interface {
	Submit(ctx context.Context, report *BookReport) error
}

// BookReport is a period view of one fiscal book: the filing summary plus
// the entries behind it, sorted by invoice date
type BookReport struct {
	Book    string          `json:"book"`
	Summary *fiscal.Summary `json:"summary"`
	Entries []*fiscal.Entry `json:"entries"`
}

// ReportService produces the period reports the accountant files from:
// sales and purchase book summaries, entry listings, and spreadsheet
// exports
type ReportService struct {
	book      *fiscal.Book
	submitter Submitter
	log       *zap.Logger
}

// NewReportService creates a new ReportService
func NewReportService(book *fiscal.Book, log *zap.Logger) *ReportService {
	return &ReportService{book: book, log: log}
}

// SetSubmitter installs the tax-authority transmission channel
func (s *ReportService) SetSubmitter(sub Submitter) {
	s.submitter = sub
}

// SalesBookReport aggregates the sales book over a period
func (s *ReportService) SalesBookReport(periodStart, periodEnd time.Time) *BookReport {
	return &BookReport{
		Book:    "sales",
		Summary: s.book.SalesSummary(periodStart, periodEnd),
		Entries: s.book.SalesEntriesInRange(periodStart, periodEnd),
	}
}

// PurchaseBookReport aggregates the purchase book over a period
func (s *ReportService) PurchaseBookReport(periodStart, periodEnd time.Time) *BookReport {
	return &BookReport{
		Book:    "purchases",
		Summary: s.book.PurchaseSummary(periodStart, periodEnd),
		Entries: s.book.PurchaseEntriesInRange(periodStart, periodEnd),
	}
}

// SubmitSalesBook builds the sales book report for the period and hands
// it to the installed submitter
func (s *ReportService) SubmitSalesBook(ctx context.Context, periodStart, periodEnd time.Time) error {
	if s.submitter == nil {
		return shared.NewDomainError("NO_SUBMITTER", "No tax authority submission channel is configured")
	}
	report := s.SalesBookReport(periodStart, periodEnd)
	if err := s.submitter.Submit(ctx, report); err != nil {
		return err
	}
	s.log.Info("sales book submitted",
		zap.Time("period_start", periodStart),
		zap.Time("period_end", periodEnd),
		zap.Int("entries", len(report.Entries)),
	)
	return nil
}

// ExportSalesBook renders the sales book for the period as an xlsx
// workbook
func (s *ReportService) ExportSalesBook(periodStart, periodEnd time.Time) ([]byte, error) {
	report := s.SalesBookReport(periodStart, periodEnd)
	data, err := renderBookXLSX(report)
	if err != nil {
		return nil, err
	}
	s.log.Info("sales book exported",
		zap.Time("period_start", periodStart),
		zap.Time("period_end", periodEnd),
		zap.Int("entries", len(report.Entries)),
	)
	return data, nil
}

// ExportPurchaseBook renders the purchase book for the period as an xlsx
// workbook
func (s *ReportService) ExportPurchaseBook(periodStart, periodEnd time.Time) ([]byte, error) {
	report := s.PurchaseBookReport(periodStart, periodEnd)
	data, err := renderBookXLSX(report)
	if err != nil {
		return nil, err
	}
	s.log.Info("purchase book exported",
		zap.Time("period_start", periodStart),
		zap.Time("period_end", periodEnd),
		zap.Int("entries", len(report.Entries)),
	)
	return data, nil
}
