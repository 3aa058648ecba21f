package reports

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"strconv"
	"time"

	"github.com/jung-kurt/gofpdf"
	"github.com/xuri/excelize/v2"

	"github.com/sharath018/potluck-rsvp-backend/internal/quota"
)

const dateLayout = "02.01.2006"

// Exporter renders signup rows in one of the supported formats.
type Exporter interface {
	Export(format string, rows []quota.SignupRow, generatedAt time.Time) (*ExportFile, error)
}

type exporter struct {
	loc *time.Location
}

// NewExporter formats dates in loc, the event's timezone.
func NewExporter(loc *time.Location) Exporter {
	if loc == nil {
		loc = time.UTC
	}
	return &exporter{loc: loc}
}

func (e *exporter) Export(format string, rows []quota.SignupRow, generatedAt time.Time) (*ExportFile, error) {
	stamp := generatedAt.In(e.loc).Format("2006-01-02")

	var (
		data        []byte
		err         error
		ext         string
		contentType string
	)
	switch format {
	case FormatCSV, "":
		data, err = e.exportCSV(rows)
		ext, contentType = "csv", "text/csv; charset=utf-8"
	case FormatExcel:
		data, err = e.exportExcel(rows)
		ext, contentType = "xlsx", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
	case FormatPDF:
		data, err = e.exportPDF(rows, generatedAt)
		ext, contentType = "pdf", "application/pdf"
	default:
		return nil, fmt.Errorf("unsupported export format: %s", format)
	}
	if err != nil {
		return nil, err
	}

	return &ExportFile{
		Data:        data,
		Filename:    fmt.Sprintf("anmeldungen-%s.%s", stamp, ext),
		ContentType: contentType,
		Rows:        len(rows),
	}, nil
}

// record is one export line in header order.
func (e *exporter) record(r quota.SignupRow) []string {
	category := ""
	if r.ItemID != nil {
		category = r.CategoryName
	}
	coming := "Nein"
	if r.Coming {
		coming = "Ja"
	}
	return []string{
		r.GuestName,
		r.Contact,
		r.ItemTitle,
		category,
		strconv.Itoa(r.AttendeesCount),
		coming,
		r.CreatedAt.In(e.loc).Format(dateLayout),
	}
}

func (e *exporter) exportCSV(rows []quota.SignupRow) ([]byte, error) {
	var buf bytes.Buffer
	writer := csv.NewWriter(&buf)
	writer.Comma = ';'

	if err := writer.Write(exportHeaders); err != nil {
		return nil, err
	}
	for _, r := range rows {
		if err := writer.Write(e.record(r)); err != nil {
			return nil, err
		}
	}

	writer.Flush()
	if err := writer.Error(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func (e *exporter) exportExcel(rows []quota.SignupRow) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	sheetName := "Anmeldungen"
	if err := f.SetSheetName("Sheet1", sheetName); err != nil {
		return nil, err
	}

	bold, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		return nil, err
	}

	for i, header := range exportHeaders {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		f.SetCellValue(sheetName, cell, header)
	}
	lastHeader, _ := excelize.CoordinatesToCellName(len(exportHeaders), 1)
	f.SetCellStyle(sheetName, "A1", lastHeader, bold)

	for i, r := range rows {
		rec := e.record(r)
		for col, value := range rec {
			cell, _ := excelize.CoordinatesToCellName(col+1, i+2)
			if col == 4 {
				f.SetCellValue(sheetName, cell, r.AttendeesCount)
				continue
			}
			f.SetCellValue(sheetName, cell, value)
		}
	}

	f.SetColWidth(sheetName, "A", "D", 24)
	f.SetColWidth(sheetName, "E", "G", 16)

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func (e *exporter) exportPDF(rows []quota.SignupRow, generatedAt time.Time) ([]byte, error) {
	pdf := gofpdf.New("L", "mm", "A4", "")
	// core fonts are cp1252, umlauts need translating
	tr := pdf.UnicodeTranslatorFromDescriptor("")

	pdf.AddPage()
	pdf.SetFont("Arial", "B", 16)
	pdf.Cell(0, 10, tr("Anmeldungen"))
	pdf.Ln(8)
	pdf.SetFont("Arial", "", 9)
	pdf.Cell(0, 8, tr("Stand: "+generatedAt.In(e.loc).Format(dateLayout+" 15:04")))
	pdf.Ln(12)

	widths := []float64{45, 55, 55, 40, 28, 16, 30}
	pdf.SetFont("Arial", "B", 9)
	for i, header := range exportHeaders {
		pdf.CellFormat(widths[i], 7, tr(header), "1", 0, "C", false, 0, "")
	}
	pdf.Ln(-1)

	pdf.SetFont("Arial", "", 8)
	for _, r := range rows {
		for i, value := range e.record(r) {
			align := "L"
			if i >= 4 {
				align = "C"
			}
			pdf.CellFormat(widths[i], 6, tr(value), "1", 0, align, false, 0, "")
		}
		pdf.Ln(-1)
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
