package xlsx

import (
	"fmt"
	"io"
	"regexp"
	"strconv"
	"strings"

	"stock-audit/internal/models"

	"github.com/shopspring/decimal"
	"github.com/xuri/excelize/v2"
)

// RequiredHeaders is the fixed contract of the count sheet; row 1 of the
// first sheet must carry every one of these labels.
var RequiredHeaders = []string{
	"Item",
	"Description",
	"Pref. Vendor",
	"On Hand",
	"Physical Count",
	"Count Variance",
	"Bin Numbers",
	"Serial/Lot Numbers",
	"Asset ID",
	"Notes",
	"Current On Hand Value",
	"Current Value Variance",
}

// MissingHeadersError is returned when the uploaded sheet does not carry the
// full header contract; handlers map it to a 400.
type MissingHeadersError struct {
	Missing []string
}

func (e *MissingHeadersError) Error() string {
	return fmt.Sprintf("Missing required headers: %s", strings.Join(e.Missing, ", "))
}

// ImportedRow is one parsed data row plus the distinct serial tokens split
// out of its serial cell.
type ImportedRow struct {
	Item    models.AuditItem
	Serials []string
}

var serialSplitRe = regexp.MustCompile(`[\s,.;]+`)

func toFloatOrNil(s string) *float64 {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}
	n, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return nil
	}
	return &n
}

func toDecimalOrNull(s string) decimal.NullDecimal {
	s = strings.TrimSpace(s)
	if s == "" {
		return decimal.NullDecimal{}
	}
	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.NullDecimal{}
	}
	return decimal.NullDecimal{Decimal: d, Valid: true}
}

// SplitSerials splits a serial cell like
// "8216200227E6CB. 8216200227E6C6, 8216200227E6C4" into distinct tokens.
func SplitSerials(raw string) []string {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil
	}

	seen := map[string]bool{}
	var out []string
	for _, t := range serialSplitRe.Split(raw, -1) {
		t = strings.TrimSpace(t)
		if t == "" || seen[t] {
			continue
		}
		seen[t] = true
		out = append(out, t)
	}
	return out
}

// ParseWorkbook reads the first sheet of an uploaded workbook and converts
// each data row into an AuditItem. Numeric cells parse leniently (empty or
// non-numeric comes out null) and the count variance is always recomputed
// from On Hand and Physical Count, never trusted from the file.
func ParseWorkbook(r io.Reader) ([]ImportedRow, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, &MissingHeadersError{Missing: RequiredHeaders}
	}

	rows, err := f.GetRows(sheets[0])
	if err != nil {
		return nil, err
	}

	var header []string
	if len(rows) > 0 {
		header = rows[0]
	}

	colIdx := map[string]int{}
	for i, h := range header {
		colIdx[strings.TrimSpace(h)] = i
	}

	var missing []string
	for _, h := range RequiredHeaders {
		if _, ok := colIdx[h]; !ok {
			missing = append(missing, h)
		}
	}
	if len(missing) > 0 {
		return nil, &MissingHeadersError{Missing: missing}
	}

	cell := func(row []string, h string) string {
		i := colIdx[h]
		if i >= len(row) {
			return ""
		}
		return strings.TrimSpace(row[i])
	}

	blankRow := func(row []string) bool {
		for _, h := range RequiredHeaders {
			if cell(row, h) != "" {
				return false
			}
		}
		return true
	}

	var out []ImportedRow
	for _, row := range rows[1:] {
		if blankRow(row) {
			continue
		}

		onHand := toFloatOrNil(cell(row, "On Hand"))
		physical := toFloatOrNil(cell(row, "Physical Count"))

		item := models.AuditItem{
			Item:        cell(row, "Item"),
			Description: cell(row, "Description"),
			PrefVendor:  cell(row, "Pref. Vendor"),

			OnHand:        onHand,
			PhysicalCount: physical,
			CountVariance: models.ComputeCountVariance(onHand, physical),

			ExpectedBin: cell(row, "Bin Numbers"),
			SerialsRaw:  cell(row, "Serial/Lot Numbers"),
			AssetID:     cell(row, "Asset ID"),
			Notes:       cell(row, "Notes"),

			CurrentOnHandValue:   toDecimalOrNull(cell(row, "Current On Hand Value")),
			CurrentValueVariance: toDecimalOrNull(cell(row, "Current Value Variance")),
		}

		out = append(out, ImportedRow{
			Item:    item,
			Serials: SplitSerials(cell(row, "Serial/Lot Numbers")),
		})
	}

	return out, nil
}
