// Package export renders transaction lists to CSV and XLSX for the share /
// download surfaces. Amounts come out as display values in the transaction's
// own currency.
package export

import (
	"encoding/csv"
	"fmt"
	"io"
	"time"

	"github.com/xuri/excelize/v2"

	"github.com/xiehuijie/my-track-expenses/internal/currency"
	"github.com/xiehuijie/my-track-expenses/internal/models"
)

var header = []string{"Date", "Type", "Status", "Amount", "Currency", "Description", "Notes"}

func row(t *models.Transaction) ([]string, error) {
	amount, err := currency.FormatStorageAmount(t.Amount, t.CurrencyCode)
	if err != nil {
		return nil, err
	}
	return []string{
		t.Date.Format("2006-01-02"),
		string(t.Type),
		string(t.Status),
		amount,
		t.CurrencyCode,
		t.Description,
		t.Notes,
	}, nil
}

// WriteCSV writes the transactions as UTF-8 CSV. A BOM is prepended so Excel
// detects the encoding.
func WriteCSV(w io.Writer, txns []models.Transaction) error {
	if _, err := w.Write([]byte{0xEF, 0xBB, 0xBF}); err != nil {
		return err
	}

	cw := csv.NewWriter(w)
	if err := cw.Write(header); err != nil {
		return err
	}
	for i := range txns {
		r, err := row(&txns[i])
		if err != nil {
			return err
		}
		if err := cw.Write(r); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

// WriteXLSX writes the transactions as a single-sheet workbook.
func WriteXLSX(w io.Writer, txns []models.Transaction) error {
	f := excelize.NewFile()
	defer f.Close()

	const sheet = "Transactions"
	index, err := f.NewSheet(sheet)
	if err != nil {
		return err
	}
	f.SetActiveSheet(index)
	f.DeleteSheet("Sheet1")

	for i, h := range header {
		cell := fmt.Sprintf("%c1", 'A'+i)
		if err := f.SetCellValue(sheet, cell, h); err != nil {
			return err
		}
	}

	for idx := range txns {
		r, err := row(&txns[idx])
		if err != nil {
			return err
		}
		n := idx + 2
		for col, v := range r {
			cell := fmt.Sprintf("%c%d", 'A'+col, n)
			if err := f.SetCellValue(sheet, cell, v); err != nil {
				return err
			}
		}
	}

	f.SetColWidth(sheet, "A", "A", 12)
	f.SetColWidth(sheet, "B", "C", 12)
	f.SetColWidth(sheet, "D", "E", 12)
	f.SetColWidth(sheet, "F", "G", 30)

	return f.Write(w)
}

// FileName builds the dated export file name, e.g. transactions_20260826.csv.
func FileName(ext string, now time.Time) string {
	return fmt.Sprintf("transactions_%s.%s", now.Format("20060102"), ext)
}
