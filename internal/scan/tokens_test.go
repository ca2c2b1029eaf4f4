package scan

import (
	"reflect"
	"testing"
)

func TestExtractTokens(t *testing.T) {
	cases := []struct {
		name     string
		input    string
		assetIDs []string
		serials  []string
	}{
		{
			name:     "empty input",
			input:    "",
			assetIDs: []string{},
			serials:  []string{},
		},
		{
			name:     "whitespace only",
			input:    "   \n\t ",
			assetIDs: []string{},
			serials:  []string{},
		},
		{
			name:     "bare asset id",
			input:    "170403",
			assetIDs: []string{"170403"},
			serials:  []string{},
		},
		{
			name:     "label url with AssetID param",
			input:    "https://x/y?AssetID=170403",
			assetIDs: []string{"170403"},
			serials:  []string{},
		},
		{
			// the dots split the URL; "example" survives as an alphanumeric
			// token while the URL-prefixed and slashed pieces are dropped
			name:     "url ending with digits",
			input:    "https://assets.example.com/tag/991234",
			assetIDs: []string{"991234"},
			serials:  []string{"example"},
		},
		{
			name:     "serial list with mixed delimiters",
			input:    "8216200227E6CB. 8216200227E6C6, 8216200227E6C4",
			assetIDs: []string{},
			serials:  []string{"8216200227E6CB", "8216200227E6C6", "8216200227E6C4"},
		},
		{
			name:     "pipe delimited",
			input:    "SN1|SN2|170403",
			assetIDs: []string{"170403"},
			serials:  []string{"SN1", "SN2"},
		},
		{
			name:     "short digit run classifies as serial",
			input:    "123",
			assetIDs: []string{},
			serials:  []string{"123"},
		},
		{
			name:     "duplicates collapse",
			input:    "170403 170403 ABC1 ABC1",
			assetIDs: []string{"170403"},
			serials:  []string{"ABC1"},
		},
		{
			name:     "AssetID param plus trailing token",
			input:    "AssetID=555 extra",
			assetIDs: []string{"555"},
			serials:  []string{"extra"},
		},
		{
			name:     "non-alphanumeric token dropped",
			input:    "AB-12 OK99",
			assetIDs: []string{},
			serials:  []string{"OK99"},
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := ExtractTokens(tc.input)
			if !reflect.DeepEqual(got.AssetIDs, tc.assetIDs) {
				t.Fatalf("asset ids: got %v, want %v", got.AssetIDs, tc.assetIDs)
			}
			if !reflect.DeepEqual(got.Serials, tc.serials) {
				t.Fatalf("serials: got %v, want %v", got.Serials, tc.serials)
			}
		})
	}
}

func TestExtractTokensIdempotent(t *testing.T) {
	first := ExtractTokens("170403")
	second := ExtractTokens(first.AssetIDs[0])
	if !reflect.DeepEqual(first, second) {
		t.Fatalf("re-extracting normalized output changed it: %v vs %v", first, second)
	}
}
