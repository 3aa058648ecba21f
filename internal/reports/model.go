package reports

import (
	"context"

	"github.com/sharath018/potluck-rsvp-backend/internal/quota"
)

// Date ranges, matched against the guest's sign-up time.
const (
	DateRangeAll     = "all"
	DateRangeDaily   = "daily"
	DateRangeWeekly  = "weekly"
	DateRangeMonthly = "monthly"
	DateRangeCustom  = "custom"
)

const (
	FormatCSV   = "csv"
	FormatExcel = "excel"
	FormatPDF   = "pdf"
)

// ValidFormat reports whether format names a supported export. Empty means CSV.
func ValidFormat(format string) bool {
	switch format {
	case "", FormatCSV, FormatExcel, FormatPDF:
		return true
	}
	return false
}

// RowSource yields the guest x item rows, newest guest first.
type RowSource interface {
	SignupRows(ctx context.Context) ([]quota.SignupRow, error)
}

// ExportRequest selects the format and the sign-up window.
type ExportRequest struct {
	Format    string
	DateRange string
	StartDate string
	EndDate   string
}

// ExportFile is a rendered export ready to be sent as an attachment.
type ExportFile struct {
	Data        []byte
	Filename    string
	ContentType string
	Rows        int
}

var exportHeaders = []string{"Name", "Kontakt", "Mitbringsel", "Kategorie", "Anzahl Personen", "Kommt", "Anmeldedatum"}
