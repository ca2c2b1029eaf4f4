package xlsx

import (
	"bytes"
	"errors"
	"reflect"
	"strings"
	"testing"

	"github.com/xuri/excelize/v2"
)

func buildSheet(t *testing.T, headers []string, rows [][]interface{}) *bytes.Reader {
	t.Helper()

	f := excelize.NewFile()
	for col, h := range headers {
		cell, err := excelize.CoordinatesToCellName(col+1, 1)
		if err != nil {
			t.Fatalf("cell name: %v", err)
		}
		if err := f.SetCellValue("Sheet1", cell, h); err != nil {
			t.Fatalf("set header: %v", err)
		}
	}
	for rowNo, row := range rows {
		for col, v := range row {
			cell, err := excelize.CoordinatesToCellName(col+1, rowNo+2)
			if err != nil {
				t.Fatalf("cell name: %v", err)
			}
			if err := f.SetCellValue("Sheet1", cell, v); err != nil {
				t.Fatalf("set cell: %v", err)
			}
		}
	}

	var buf bytes.Buffer
	if err := f.Write(&buf); err != nil {
		t.Fatalf("write workbook: %v", err)
	}
	return bytes.NewReader(buf.Bytes())
}

func withoutHeader(h string) []string {
	var out []string
	for _, x := range RequiredHeaders {
		if x != h {
			out = append(out, x)
		}
	}
	return out
}

func TestParseWorkbookMissingHeader(t *testing.T) {
	r := buildSheet(t, withoutHeader("Asset ID"), [][]interface{}{
		{"WIDGET", "A widget", "Acme", 5, 5, 0, "A1", "SN1", "x", 10, 10},
	})

	rows, err := ParseWorkbook(r)
	if err == nil {
		t.Fatal("expected missing-header error")
	}

	var missing *MissingHeadersError
	if !errors.As(err, &missing) {
		t.Fatalf("error type: %T", err)
	}
	if !reflect.DeepEqual(missing.Missing, []string{"Asset ID"}) {
		t.Fatalf("missing headers: %v", missing.Missing)
	}
	if !strings.Contains(err.Error(), "Asset ID") {
		t.Fatalf("error does not name the header: %q", err.Error())
	}
	if len(rows) != 0 {
		t.Fatalf("rows created despite rejection: %d", len(rows))
	}
}

func TestParseWorkbookLenientNumbersAndVariance(t *testing.T) {
	r := buildSheet(t, RequiredHeaders, [][]interface{}{
		// Count Variance column carries a wrong value on purpose; it must
		// be recomputed, not trusted.
		{"WIDGET", "A widget", "Acme", 10, 7, 999, "A1", "SN1 SN2", "170403", "note", 12.5, "abc"},
		{"GADGET", "", "", "not-a-number", "", "", "", "", "", "", "", ""},
	})

	rows, err := ParseWorkbook(r)
	if err != nil {
		t.Fatalf("ParseWorkbook: %v", err)
	}
	if len(rows) != 2 {
		t.Fatalf("got %d rows, want 2", len(rows))
	}

	first := rows[0].Item
	if first.OnHand == nil || *first.OnHand != 10 {
		t.Fatalf("onHand = %v", first.OnHand)
	}
	if first.CountVariance == nil || *first.CountVariance != 3 {
		t.Fatalf("countVariance = %v, want 3 (recomputed)", first.CountVariance)
	}
	if !first.CurrentOnHandValue.Valid || !first.CurrentOnHandValue.Decimal.Equal(decimalFromString(t, "12.5")) {
		t.Fatalf("currentOnHandValue = %+v", first.CurrentOnHandValue)
	}
	if first.CurrentValueVariance.Valid {
		t.Fatalf("non-numeric currency cell should be null: %+v", first.CurrentValueVariance)
	}
	if !reflect.DeepEqual(rows[0].Serials, []string{"SN1", "SN2"}) {
		t.Fatalf("serials = %v", rows[0].Serials)
	}

	second := rows[1].Item
	if second.OnHand != nil || second.PhysicalCount != nil || second.CountVariance != nil {
		t.Fatalf("lenient parse failed: %+v", second)
	}
	if len(rows[1].Serials) != 0 {
		t.Fatalf("serials from empty cell: %v", rows[1].Serials)
	}
}

func TestParseWorkbookSkipsBlankRows(t *testing.T) {
	blank := make([]interface{}, len(RequiredHeaders))
	for i := range blank {
		blank[i] = ""
	}

	r := buildSheet(t, RequiredHeaders, [][]interface{}{
		{"WIDGET", "", "", "", "", "", "", "", "", "", "", ""},
		blank,
		{"GADGET", "", "", "", "", "", "", "", "", "", "", ""},
	})

	rows, err := ParseWorkbook(r)
	if err != nil {
		t.Fatalf("ParseWorkbook: %v", err)
	}
	if len(rows) != 2 {
		t.Fatalf("got %d rows, want 2 (blank row must be skipped)", len(rows))
	}
	if rows[0].Item.Item != "WIDGET" || rows[1].Item.Item != "GADGET" {
		t.Fatalf("wrong rows survived: %q, %q", rows[0].Item.Item, rows[1].Item.Item)
	}
}

func TestSplitSerials(t *testing.T) {
	got := SplitSerials("8216200227E6CB. 8216200227E6C6, 8216200227E6C4")
	want := []string{"8216200227E6CB", "8216200227E6C6", "8216200227E6C4"}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("got %v, want %v", got, want)
	}

	if got := SplitSerials("SN1 SN1; SN1"); !reflect.DeepEqual(got, []string{"SN1"}) {
		t.Fatalf("duplicates not collapsed: %v", got)
	}

	if got := SplitSerials("  "); got != nil {
		t.Fatalf("blank cell: %v", got)
	}
}
