package scan

import (
	"regexp"
	"strings"
)

// Tokens holds the candidate identifiers pulled out of one scanner input,
// deduplicated, in first-occurrence order.
type Tokens struct {
	AssetIDs []string `json:"assetIds"`
	Serials  []string `json:"serials"`
}

var (
	assetIDParamRe   = regexp.MustCompile(`(?i)AssetID=(\d+)`)
	trailingDigitsRe = regexp.MustCompile(`(\d+)\s*$`)
	delimiterRe      = regexp.MustCompile(`[\s,.;|]+`)
	digitRunRe       = regexp.MustCompile(`^\d{4,}$`)
	alnumRe          = regexp.MustCompile(`^[A-Za-z0-9]+$`)
)

func isURL(s string) bool {
	return strings.HasPrefix(s, "http://") || strings.HasPrefix(s, "https://")
}

// ExtractTokens parses free-form scanner input (typed, scanned or pasted,
// possibly a label URL or a whole line of delimited codes) into asset-ID and
// serial candidates. Pure; empty or unparseable input yields two empty sets.
func ExtractTokens(input string) Tokens {
	out := Tokens{AssetIDs: []string{}, Serials: []string{}}

	raw := strings.TrimSpace(input)
	if raw == "" {
		return out
	}

	seenAssets := map[string]bool{}
	seenSerials := map[string]bool{}

	addAsset := func(tok string) {
		if !seenAssets[tok] {
			seenAssets[tok] = true
			out.AssetIDs = append(out.AssetIDs, tok)
		}
	}
	addSerial := func(tok string) {
		if !seenSerials[tok] {
			seenSerials[tok] = true
			out.Serials = append(out.Serials, tok)
		}
	}

	// AssetID=12345 inside label URLs
	for _, m := range assetIDParamRe.FindAllStringSubmatch(raw, -1) {
		addAsset(m[1])
	}

	// URL that ends with digits
	if isURL(raw) {
		if m := trailingDigitsRe.FindStringSubmatch(raw); m != nil {
			addAsset(m[1])
		}
	}

	for _, p := range delimiterRe.Split(raw, -1) {
		p = strings.TrimSpace(p)
		if p == "" || isURL(p) {
			continue
		}

		if digitRunRe.MatchString(p) {
			addAsset(p)
			continue
		}

		if alnumRe.MatchString(p) {
			addSerial(p)
		}
	}

	return out
}
