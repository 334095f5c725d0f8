package report

import (
	"fmt"

	"github.com/firf18/red-salud-sub010/internal/domain/fiscal"
	"github.com/xuri/excelize/v2"
)

const dateLayout = "2006-01-02"

// renderBookXLSX lays out a fiscal book report as a two-sheet workbook:
// one sheet of entries, one sheet with the filing summary
func renderBookXLSX(report *BookReport) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	entriesSheet := "Entries"
	if err := f.SetSheetName("Sheet1", entriesSheet); err != nil {
		return nil, err
	}
	if err := writeEntriesSheet(f, entriesSheet, report.Entries); err != nil {
		return nil, err
	}

	summarySheet := "Summary"
	if _, err := f.NewSheet(summarySheet); err != nil {
		return nil, err
	}
	if err := writeSummarySheet(f, summarySheet, report); err != nil {
		return nil, err
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("failed to render workbook: %w", err)
	}
	return buf.Bytes(), nil
}

func writeEntriesSheet(f *excelize.File, sheet string, entries []*fiscal.Entry) error {
	headers := []interface{}{
		"Invoice", "Date", "RIF", "Name", "Classification",
		"Base USD", "Base VES", "IVA Rate", "IVA USD", "IVA VES",
		"Total USD", "Total VES", "IVA Retained VES", "IGTF VES", "Exchange Rate",
	}
	if err := f.SetSheetRow(sheet, "A1", &headers); err != nil {
		return err
	}

	for i, e := range entries {
		row := []interface{}{
			e.InvoiceNumber,
			e.InvoiceDate.Format(dateLayout),
			e.CounterpartyRIF,
			e.CounterpartyName,
			string(e.Classification),
			e.BaseAmountUSD.String(),
			e.BaseAmountVES.String(),
			e.IVARate.String(),
			e.IVAAmountUSD.String(),
			e.IVAAmountVES.String(),
			e.TotalAmountUSD.String(),
			e.TotalAmountVES.String(),
			e.IVARetainedVES.String(),
			e.IGTFAmountVES.String(),
			e.ExchangeRate.String(),
		}
		cell := fmt.Sprintf("A%d", i+2)
		if err := f.SetSheetRow(sheet, cell, &row); err != nil {
			return err
		}
	}
	return nil
}

func writeSummarySheet(f *excelize.File, sheet string, report *BookReport) error {
	s := report.Summary
	rows := [][]interface{}{
		{"Book", report.Book},
		{"Period Start", s.PeriodStart.Format(dateLayout)},
		{"Period End", s.PeriodEnd.Format(dateLayout)},
		{"Transactions", s.TotalTransactions},
		{},
		{"", "USD", "VES"},
		{"Total Base", s.TotalBaseUSD.String(), s.TotalBaseVES.String()},
		{"Total IVA", s.TotalIVAUSD.String(), s.TotalIVAVES.String()},
		{"Total IGTF", s.TotalIGTFUSD.String(), s.TotalIGTFVES.String()},
		{"Total IVA Retained", s.TotalIVARetainedUSD.String(), s.TotalIVARetainedVES.String()},
		{},
		{"Rate", "Base USD", "Base VES", "IVA USD", "IVA VES"},
		{"0%", s.Rate0.BaseUSD.String(), s.Rate0.BaseVES.String(), s.Rate0.IVAUSD.String(), s.Rate0.IVAVES.String()},
		{"8%", s.Rate8.BaseUSD.String(), s.Rate8.BaseVES.String(), s.Rate8.IVAUSD.String(), s.Rate8.IVAVES.String()},
		{"16%", s.Rate16.BaseUSD.String(), s.Rate16.BaseVES.String(), s.Rate16.IVAUSD.String(), s.Rate16.IVAVES.String()},
		{},
		{"Classification", "Base USD", "Base VES", "Count"},
	}
	for _, c := range []fiscal.Classification{
		fiscal.ClassificationExempt,
		fiscal.ClassificationGravadaGeneral,
		fiscal.ClassificationGravadaReducida,
		fiscal.ClassificationGravadaSuntuaria,
	} {
		ct := s.ByClassification[c]
		if ct == nil {
			continue
		}
		rows = append(rows, []interface{}{string(c), ct.BaseUSD.String(), ct.BaseVES.String(), ct.Count})
	}

	for i := range rows {
		cell := fmt.Sprintf("A%d", i+1)
		if err := f.SetSheetRow(sheet, cell, &rows[i]); err != nil {
			return err
		}
	}
	return nil
}
