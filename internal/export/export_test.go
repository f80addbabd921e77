package export

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"github.com/xuri/excelize/v2"

	"github.com/xiehuijie/my-track-expenses/internal/models"
)

func sampleTransactions() []models.Transaction {
	return []models.Transaction{
		{
			Type: models.TransactionExpense, Status: models.StatusCompleted,
			Amount: 13678, CurrencyCode: "CNY",
			Date: time.Date(2026, 8, 26, 0, 0, 0, 0, time.UTC), Description: "dinner",
		},
		{
			Type: models.TransactionIncome, Status: models.StatusCompleted,
			Amount: 1000, CurrencyCode: "KRW",
			Date: time.Date(2026, 8, 25, 0, 0, 0, 0, time.UTC), Description: "refund, partial",
		},
	}
}

func TestWriteCSV(t *testing.T) {
	var buf bytes.Buffer
	if err := WriteCSV(&buf, sampleTransactions()); err != nil {
		t.Fatalf("write csv: %v", err)
	}

	out := buf.Bytes()
	if !bytes.HasPrefix(out, []byte{0xEF, 0xBB, 0xBF}) {
		t.Error("missing UTF-8 BOM")
	}

	text := string(out)
	if !strings.Contains(text, "Date,Type,Status,Amount,Currency") {
		t.Errorf("missing header: %q", text)
	}
	if !strings.Contains(text, "2026-08-26,expense,completed,136.78,CNY,dinner") {
		t.Errorf("missing expense row: %q", text)
	}
	// zero-decimal currency renders without a decimal point
	if !strings.Contains(text, "1000,KRW") {
		t.Errorf("missing KRW row: %q", text)
	}
	// the comma in the description must be quoted
	if !strings.Contains(text, `"refund, partial"`) {
		t.Errorf("description not quoted: %q", text)
	}
}

func TestWriteCSVUnknownCurrency(t *testing.T) {
	txns := []models.Transaction{{
		Type: models.TransactionExpense, Status: models.StatusCompleted,
		Amount: 1, CurrencyCode: "XXX", Date: time.Now(),
	}}
	if err := WriteCSV(&bytes.Buffer{}, txns); err == nil {
		t.Error("unknown currency should fail the export")
	}
}

func TestWriteXLSX(t *testing.T) {
	var buf bytes.Buffer
	if err := WriteXLSX(&buf, sampleTransactions()); err != nil {
		t.Fatalf("write xlsx: %v", err)
	}

	f, err := excelize.OpenReader(&buf)
	if err != nil {
		t.Fatalf("reopen workbook: %v", err)
	}
	defer f.Close()

	got, err := f.GetCellValue("Transactions", "D2")
	if err != nil {
		t.Fatalf("read cell: %v", err)
	}
	if got != "136.78" {
		t.Errorf("D2 = %q, want 136.78", got)
	}
}

func TestFileName(t *testing.T) {
	now := time.Date(2026, 8, 26, 10, 0, 0, 0, time.UTC)
	if got := FileName("csv", now); got != "transactions_20260826.csv" {
		t.Errorf("FileName = %q", got)
	}
}
