// Package export renders reconciliation statements as spreadsheet files for
// download and mailing.
package export

import (
	"fmt"
	"io"

	"github.com/cnkcrm/crm_backend/internal/core/domain"
	"github.com/cnkcrm/crm_backend/internal/utils"
	"github.com/xuri/excelize/v2"
)

const statementSheet = "Mutabakat"

// ReconciliationStatement writes an xlsx statement for one case: a summary
// block followed by the ledger invoices the amount was aggregated from.
func ReconciliationStatement(w io.Writer, rec *domain.Reconciliation, customer *domain.Customer, invoices []domain.Invoice) error {
	f := excelize.NewFile()
	defer f.Close()

	index, err := f.NewSheet(statementSheet)
	if err != nil {
		return fmt.Errorf("failed to create statement sheet: %w", err)
	}
	f.SetActiveSheet(index)
	f.DeleteSheet("Sheet1") //nolint:errcheck

	// Summary block
	f.SetCellValue(statementSheet, "A1", "Müşteri")
	f.SetCellValue(statementSheet, "B1", customer.Name)
	f.SetCellValue(statementSheet, "A2", "Cari Kodu")
	f.SetCellValue(statementSheet, "B2", customer.CurrentCode)
	f.SetCellValue(statementSheet, "A3", "Dönem")
	f.SetCellValue(statementSheet, "B3", rec.Period)
	f.SetCellValue(statementSheet, "A4", "Mutabakat Tutarı")
	f.SetCellValue(statementSheet, "B4", utils.FormatLira(rec.Amount))
	f.SetCellValue(statementSheet, "A5", "Durum")
	f.SetCellValue(statementSheet, "B5", string(rec.Status))

	// Invoice table
	const headerRow = 7
	f.SetCellValue(statementSheet, fmt.Sprintf("A%d", headerRow), "Fatura No")
	f.SetCellValue(statementSheet, fmt.Sprintf("B%d", headerRow), "Fatura Tarihi")
	f.SetCellValue(statementSheet, fmt.Sprintf("C%d", headerRow), "Açıklama")
	f.SetCellValue(statementSheet, fmt.Sprintf("D%d", headerRow), "Genel Toplam")

	for i, inv := range invoices {
		row := headerRow + 1 + i
		f.SetCellValue(statementSheet, fmt.Sprintf("A%d", row), inv.InvoiceID)
		f.SetCellValue(statementSheet, fmt.Sprintf("B%d", row), inv.Date.Format("02.01.2006"))
		f.SetCellValue(statementSheet, fmt.Sprintf("C%d", row), inv.Description)
		f.SetCellValue(statementSheet, fmt.Sprintf("D%d", row), utils.FormatLira(inv.TotalAmount))
	}

	if err := f.Write(w); err != nil {
		return fmt.Errorf("failed to write statement file: %w", err)
	}
	return nil
}
