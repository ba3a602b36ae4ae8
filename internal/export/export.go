// Package export выгружает записи и сводку в CSV, XLSX и PDF.
package export

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/go-pdf/fpdf"
	"github.com/xuri/excelize/v2"
)

type Format string

const (
	FormatCSV  Format = "csv"
	FormatXLSX Format = "xlsx"
	FormatPDF  Format = "pdf"
)

const summarySheet = "Summary"

var ErrUnknownFormat = errors.New("unknown export format")

// Metric строка листа сводки.
type Metric struct {
	Name  string
	Value string
}

// Report описывает выгружаемую таблицу.
type Report struct {
	Title   string
	Sheet   string
	Headers []string
	Rows    [][]string
	Summary []Metric
}

// ParseFormat разбирает формат из строки запроса, по умолчанию CSV.
func ParseFormat(value string) (Format, error) {
	switch Format(strings.ToLower(strings.TrimSpace(value))) {
	case "", FormatCSV:
		return FormatCSV, nil
	case FormatXLSX, "excel":
		return FormatXLSX, nil
	case FormatPDF:
		return FormatPDF, nil
	default:
		return "", fmt.Errorf("%w: %s", ErrUnknownFormat, value)
	}
}

func (f Format) ContentType() string {
	switch f {
	case FormatXLSX:
		return "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
	case FormatPDF:
		return "application/pdf"
	default:
		return "text/csv; charset=utf-8"
	}
}

func (f Format) Extension() string {
	return string(f)
}

// Write пишет отчет в нужном формате.
func Write(w io.Writer, format Format, report Report) error {
	switch format {
	case FormatCSV:
		return WriteCSV(w, report)
	case FormatXLSX:
		return WriteXLSX(w, report)
	case FormatPDF:
		return WritePDF(w, report)
	default:
		return fmt.Errorf("%w: %s", ErrUnknownFormat, format)
	}
}

// WriteCSV пишет только строки записей, без сводки.
func WriteCSV(w io.Writer, report Report) error {
	writer := csv.NewWriter(w)

	if err := writer.Write(report.Headers); err != nil {
		return err
	}

	for _, row := range report.Rows {
		if err := writer.Write(row); err != nil {
			return err
		}
	}

	writer.Flush()
	return writer.Error()
}

// WriteXLSX пишет лист с записями и лист сводки.
func WriteXLSX(w io.Writer, report Report) error {
	f := excelize.NewFile()
	defer func() {
		_ = f.Close()
	}()

	sheet := report.Sheet
	if sheet == "" {
		sheet = "Records"
	}

	if err := f.SetSheetName("Sheet1", sheet); err != nil {
		return fmt.Errorf("rename sheet: %w", err)
	}

	if err := writeSheet(f, sheet, report.Headers, report.Rows); err != nil {
		return err
	}

	if len(report.Summary) > 0 {
		if _, err := f.NewSheet(summarySheet); err != nil {
			return fmt.Errorf("create summary sheet: %w", err)
		}

		rows := make([][]string, 0, len(report.Summary))
		for _, metric := range report.Summary {
			rows = append(rows, []string{metric.Name, metric.Value})
		}

		if err := writeSheet(f, summarySheet, []string{"Metric", "Value"}, rows); err != nil {
			return err
		}
	}

	if _, err := f.WriteTo(w); err != nil {
		return fmt.Errorf("write workbook: %w", err)
	}

	return nil
}

func writeSheet(f *excelize.File, sheet string, headers []string, rows [][]string) error {
	all := append([][]string{headers}, rows...)

	for i, row := range all {
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		if err != nil {
			return err
		}

		values := make([]interface{}, 0, len(row))
		for _, value := range row {
			values = append(values, value)
		}

		if err := f.SetSheetRow(sheet, cell, &values); err != nil {
			return fmt.Errorf("write row %d of %s: %w", i+1, sheet, err)
		}
	}

	return nil
}

// WritePDF пишет заголовок и таблицу записей.
func WritePDF(w io.Writer, report Report) error {
	pdf := fpdf.New("P", "mm", "A4", "")
	tr := pdf.UnicodeTranslatorFromDescriptor("")

	pdf.SetTitle(report.Title, true)
	pdf.SetMargins(14, 16, 14)
	pdf.AddPage()

	pdf.SetFont("Helvetica", "B", 16)
	pdf.CellFormat(0, 10, tr(report.Title), "", 1, "L", false, 0, "")
	pdf.Ln(2)

	if len(report.Headers) > 0 {
		pageWidth, _ := pdf.GetPageSize()
		left, _, right, _ := pdf.GetMargins()
		width := (pageWidth - left - right) / float64(len(report.Headers))

		pdf.SetFont("Helvetica", "B", 10)
		pdf.SetFillColor(41, 128, 185)
		pdf.SetTextColor(255, 255, 255)
		for _, header := range report.Headers {
			pdf.CellFormat(width, 8, tr(header), "1", 0, "L", true, 0, "")
		}
		pdf.Ln(-1)

		pdf.SetFont("Helvetica", "", 10)
		pdf.SetTextColor(0, 0, 0)
		for _, row := range report.Rows {
			for _, value := range row {
				pdf.CellFormat(width, 7, tr(value), "1", 0, "L", false, 0, "")
			}
			pdf.Ln(-1)
		}
	}

	if len(report.Summary) > 0 {
		pdf.Ln(4)
		pdf.SetFont("Helvetica", "B", 11)
		pdf.CellFormat(0, 8, summarySheet, "", 1, "L", false, 0, "")
		pdf.SetFont("Helvetica", "", 10)
		for _, metric := range report.Summary {
			pdf.CellFormat(0, 6, tr(metric.Name+": "+metric.Value), "", 1, "L", false, 0, "")
		}
	}

	if err := pdf.Output(w); err != nil {
		return fmt.Errorf("write pdf: %w", err)
	}

	return nil
}
