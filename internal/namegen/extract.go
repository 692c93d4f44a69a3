package namegen

import (
	"encoding/json"
	"fmt"
	"regexp"
	"strings"

	"github.com/hanlabs/namegen-proxy/internal/errors"
)

var (
	arraySpanRe     = regexp.MustCompile(`\[[\s\S]*\]`)
	trailingCommaRe = regexp.MustCompile(`,\s*([\]}])`)
	controlCharRe   = regexp.MustCompile("[\x00-\x08\x0B\x0C\x0E-\x1F]")

	smartQuotes = strings.NewReplacer(
		"“", `"`,
		"”", `"`,
		"‘", "'",
		"’", "'",
	)
)

// ExtractJSONArray recovers a JSON array from noisy model output: markdown
// fences, leading prose, smart quotes and trailing commas are all tolerated.
// The bracket span is taken greedily from first '[' to last ']', which can
// over-capture when several arrays appear; accepted limitation.
func ExtractJSONArray(text string) string {
	s := strings.TrimSpace(text)

	if strings.HasPrefix(s, "```") {
		i1 := strings.Index(s, "[")
		i2 := strings.LastIndex(s, "]")
		if i1 != -1 && i2 > i1 {
			s = s[i1 : i2+1]
		}
	}

	if !(strings.HasPrefix(s, "[") && strings.HasSuffix(s, "]")) {
		if m := arraySpanRe.FindString(s); m != "" {
			s = m
		}
	}

	s = smartQuotes.Replace(s)
	s = trailingCommaRe.ReplaceAllString(s, "$1")
	return s
}

// DecodeRecords extracts and parses a record array from raw model text.
// A second pass strips invalid control characters before giving up.
func DecodeRecords(text string) ([]NameRecord, error) {
	payload := ExtractJSONArray(text)

	var records []NameRecord
	if err := json.Unmarshal([]byte(payload), &records); err != nil {
		cleaned := controlCharRe.ReplaceAllString(payload, "")
		if err2 := json.Unmarshal([]byte(cleaned), &records); err2 != nil {
			return nil, fmt.Errorf("%w: %v", errors.ErrMalformedUpstreamOutput, err2)
		}
	}
	return records, nil
}
