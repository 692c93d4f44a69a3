package namegen

import "encoding/json"

// Preferences is the client-supplied generation request. Only these fields
// are ever forwarded upstream; anything else in the request body is dropped
// so client input cannot smuggle extra instructions into the prompt.
type Preferences struct {
	OwnerName string   `json:"yourName"`
	Genders   []string `json:"genders"`
	Styles    []string `json:"styles"`
	Count     int      `json:"count"`
	Lang      string   `json:"lang"`
}

// ApplyDefaults fills the defaults the API contract promises.
func (p *Preferences) ApplyDefaults() {
	if p.Count <= 0 {
		p.Count = 2
	}
	if p.Lang == "" {
		p.Lang = "en"
	}
}

// NameRecord is one generated name candidate. Records are decoded from
// untrusted upstream JSON; the schema has no pronunciation-hint field, so a
// pronounce_hint key in the raw output is dropped on decode and can never
// reach a response.
type NameRecord struct {
	Name        string      `json:"name"`
	Pinyin      string      `json:"pinyin"`
	Style       string      `json:"style"`
	Meaning     string      `json:"meaning"`
	NameInsight string      `json:"nameInsight"`
	SurnameInfo SurnameInfo `json:"surnameInfo"`
}

// SurnameInfo carries the cultural background of the record's surname.
// Figures is kept opaque: models return it as strings or objects and the
// pipeline never inspects it, only passes it through.
type SurnameInfo struct {
	Origin  string          `json:"origin"`
	Meaning string          `json:"meaning"`
	Story   string          `json:"story"`
	Figures json.RawMessage `json:"figures,omitempty"`
}
