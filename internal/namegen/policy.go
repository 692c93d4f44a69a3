package namegen

import (
	"strings"

	"github.com/hanlabs/namegen-proxy/internal/metrics"
)

// bannedNames lists historical and political figures a generated name must
// never exactly match. Same-surname names are fine; only a full-name match
// is dropped.
var bannedNames = map[string]struct{}{
	"李白":  {},
	"王羲之": {},
	"张仲景": {},
	"刘备":  {},
	"林则徐": {},
	"孔子":  {},
	"孟子":  {},
	"屈原":  {},
	"杜甫":  {},
	"苏轼":  {},
	"陶渊明": {},
	"白居易": {},
}

// compoundSurnames are the known two-character surnames, checked before
// falling back to the first character.
var compoundSurnames = []string{
	"欧阳", "司马", "上官", "诸葛", "东方", "夏侯",
	"尉迟", "独孤", "令狐", "长孙", "宇文", "赫连", "拓跋",
}

// Surname extracts the surname component of a full name: a known
// two-character compound when the name starts with one, else the first
// character.
func Surname(name string) string {
	if name == "" {
		return ""
	}
	for _, s := range compoundSurnames {
		if strings.HasPrefix(name, s) {
			return s
		}
	}
	return string([]rune(name)[0])
}

// FilterRecords applies the denylist and the surname diversity cap, in that
// order, preserving record order. The cap is floor(0.2 × batch size) computed
// once from the pre-filter count, with a floor of one so small batches are
// not wiped out entirely.
func FilterRecords(records []NameRecord) []NameRecord {
	maxPerSurname := len(records) / 5
	if maxPerSurname < 1 {
		maxPerSurname = 1
	}
	counts := make(map[string]int)
	out := make([]NameRecord, 0, len(records))

	for _, rec := range records {
		if _, banned := bannedNames[rec.Name]; banned {
			metrics.RecordsFiltered.WithLabelValues("denylist").Inc()
			continue
		}
		surname := Surname(rec.Name)
		if counts[surname] >= maxPerSurname {
			metrics.RecordsFiltered.WithLabelValues("diversity_cap").Inc()
			continue
		}
		counts[surname]++
		out = append(out, rec)
	}
	return out
}
