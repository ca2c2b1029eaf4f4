package xlsx

import (
	"regexp"
	"strconv"
	"strings"

	"stock-audit/internal/models"

	"github.com/shopspring/decimal"
	"github.com/xuri/excelize/v2"
)

const exportSheet = "Audit Items"

// The 12 count sheet headers plus the derived/display columns, so an export
// can be re-imported as-is.
var exportHeaders = append(append([]string{}, RequiredHeaders...),
	"Found Status",
	"Found",
	"Found Bin",
	"Needs Review",
	"Review Reason",
)

func yesNo(b bool) string {
	if b {
		return "YES"
	}
	return "NO"
}

// BuildWorkbook renders one row per audit item under the export header set.
// Null numeric fields stay empty cells rather than zeroes.
func BuildWorkbook(items []models.AuditItem) (*excelize.File, error) {
	f := excelize.NewFile()
	if err := f.SetSheetName("Sheet1", exportSheet); err != nil {
		return nil, err
	}

	for col, h := range exportHeaders {
		cellName, err := excelize.CoordinatesToCellName(col+1, 1)
		if err != nil {
			return nil, err
		}
		if err := f.SetCellValue(exportSheet, cellName, h); err != nil {
			return nil, err
		}
	}

	for rowNo, it := range items {
		values := []interface{}{
			it.Item,
			it.Description,
			it.PrefVendor,
			floatCell(it.OnHand),
			floatCell(it.PhysicalCount),
			floatCell(it.CountVariance),
			it.ExpectedBin,
			it.SerialsRaw,
			it.AssetID,
			it.Notes,
			decimalCell(it.CurrentOnHandValue),
			decimalCell(it.CurrentValueVariance),
			string(it.FoundStatus),
			yesNo(it.Found),
			it.FoundBin,
			yesNo(it.ReviewFlag),
			it.ReviewReason,
		}

		for col, v := range values {
			if v == nil {
				continue
			}
			cellName, err := excelize.CoordinatesToCellName(col+1, rowNo+2)
			if err != nil {
				return nil, err
			}
			switch cell := v.(type) {
			case numericString:
				// exact decimal written as a numeric cell, no float64 detour
				err = f.SetCellDefault(exportSheet, cellName, string(cell))
			default:
				err = f.SetCellValue(exportSheet, cellName, v)
			}
			if err != nil {
				return nil, err
			}
		}
	}

	return f, nil
}

func floatCell(v *float64) interface{} {
	if v == nil {
		return nil
	}
	return *v
}

// numericString marks a cell value that must be written in its exact string
// form; decimal(20,4) values can exceed float64 precision.
type numericString string

func decimalCell(v decimal.NullDecimal) interface{} {
	if !v.Valid {
		return nil
	}
	return numericString(v.Decimal.String())
}

var unsafeFileChars = regexp.MustCompile(`[^a-zA-Z0-9\-_\s]`)
var fileSpaceRuns = regexp.MustCompile(`\s+`)

// ExportFileName derives the download name from the audit's name: strip
// anything outside [a-z0-9-_ ], collapse spaces to underscores, cap at 80
// characters, then suffix the audit id.
func ExportFileName(auditName string, auditID uint) string {
	name := unsafeFileChars.ReplaceAllString(auditName, "")
	name = fileSpaceRuns.ReplaceAllString(strings.TrimSpace(name), "_")
	if len(name) > 80 {
		name = name[:80]
	}
	if name == "" {
		name = "audit"
	}
	return name + "_" + strconv.FormatUint(uint64(auditID), 10) + ".xlsx"
}
