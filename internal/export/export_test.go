package export

import (
	"bytes"
	"errors"
	"reflect"
	"strings"
	"testing"

	"github.com/xuri/excelize/v2"
)

func sampleReport() Report {
	return Report{
		Title:   "Expense Report",
		Sheet:   "Expenses",
		Headers: []string{"Title", "Category", "Amount", "Date"},
		Rows: [][]string{
			{"Lunch", "Food", "12.50", "2024-01-15"},
			{"Bus, monthly", "Transport", "40", "2024-01-16"},
		},
		Summary: []Metric{
			{Name: "Total", Value: "LKR 52.50"},
			{Name: "Highest Month", Value: "January (LKR 52.50)"},
		},
	}
}

// TestParseFormat проверяет разбор формата выгрузки.
func TestParseFormat(t *testing.T) {
	tests := []struct {
		value string
		want  Format
	}{
		{value: "", want: FormatCSV},
		{value: "csv", want: FormatCSV},
		{value: " XLSX ", want: FormatXLSX},
		{value: "excel", want: FormatXLSX},
		{value: "pdf", want: FormatPDF},
	}

	for _, tt := range tests {
		got, err := ParseFormat(tt.value)
		if err != nil {
			t.Fatalf("%q: expected no error, got %v", tt.value, err)
		}
		if got != tt.want {
			t.Fatalf("%q: expected %s, got %s", tt.value, tt.want, got)
		}
	}

	if _, err := ParseFormat("docx"); !errors.Is(err, ErrUnknownFormat) {
		t.Fatalf("expected ErrUnknownFormat, got %v", err)
	}
}

// TestWriteCSV проверяет заголовок и экранирование строк.
func TestWriteCSV(t *testing.T) {
	var buf bytes.Buffer
	if err := WriteCSV(&buf, sampleReport()); err != nil {
		t.Fatalf("expected no error, got %v", err)
	}

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	if len(lines) != 3 {
		t.Fatalf("expected 3 lines, got %d: %q", len(lines), buf.String())
	}
	if lines[0] != "Title,Category,Amount,Date" {
		t.Fatalf("unexpected header: %q", lines[0])
	}
	if lines[2] != `"Bus, monthly",Transport,40,2024-01-16` {
		t.Fatalf("unexpected quoted row: %q", lines[2])
	}
}

// TestWriteXLSX проверяет, что книга читается обратно с обоими листами.
func TestWriteXLSX(t *testing.T) {
	var buf bytes.Buffer
	if err := WriteXLSX(&buf, sampleReport()); err != nil {
		t.Fatalf("expected no error, got %v", err)
	}

	f, err := excelize.OpenReader(&buf)
	if err != nil {
		t.Fatalf("open workbook: %v", err)
	}
	defer func() {
		_ = f.Close()
	}()

	rows, err := f.GetRows("Expenses")
	if err != nil {
		t.Fatalf("read rows: %v", err)
	}
	if len(rows) != 3 {
		t.Fatalf("expected 3 rows, got %d", len(rows))
	}
	if !reflect.DeepEqual(rows[1], []string{"Lunch", "Food", "12.50", "2024-01-15"}) {
		t.Fatalf("unexpected row: %v", rows[1])
	}

	summaryRows, err := f.GetRows(summarySheet)
	if err != nil {
		t.Fatalf("read summary: %v", err)
	}
	if len(summaryRows) != 3 || summaryRows[1][1] != "LKR 52.50" {
		t.Fatalf("unexpected summary rows: %v", summaryRows)
	}
}

// TestWritePDF проверяет сигнатуру PDF.
func TestWritePDF(t *testing.T) {
	var buf bytes.Buffer
	if err := WritePDF(&buf, sampleReport()); err != nil {
		t.Fatalf("expected no error, got %v", err)
	}

	if !bytes.HasPrefix(buf.Bytes(), []byte("%PDF")) {
		t.Fatal("expected PDF header")
	}
}

// TestWriteUnknownFormat проверяет ошибку для неизвестного формата.
func TestWriteUnknownFormat(t *testing.T) {
	var buf bytes.Buffer
	if err := Write(&buf, Format("docx"), sampleReport()); !errors.Is(err, ErrUnknownFormat) {
		t.Fatalf("expected ErrUnknownFormat, got %v", err)
	}
}
