package namegen

import (
	"context"
	"encoding/json"
	"log/slog"
)

const (
	translationMaxTokens   = 1800
	translationTemperature = 0.2
)

// translate re-renders every textual field of the records into targetLang,
// leaving name and pinyin verbatim. Translation is best-effort: any call or
// parse failure returns the untranslated records. Translated output is not
// re-validated against the policy filter.
func (p *Pipeline) translate(ctx context.Context, records []NameRecord, targetLang string) []NameRecord {
	if len(records) == 0 {
		return records
	}

	log := p.logger.WithContext(ctx)

	payload, err := json.Marshal(records)
	if err != nil {
		log.Warn("marshal records for translation", slog.String("error", err.Error()))
		return records
	}

	messages := []ChatMessage{
		{Role: "system", Content: translationSystemPrompt},
		{Role: "user", Content: translationPrompt(targetLang, payload)},
	}

	content, err := p.client.ChatCompletion(ctx, messages, translationMaxTokens, translationTemperature)
	if err != nil {
		log.Warn("translation call failed, returning source-language records",
			slog.String("lang", targetLang),
			slog.String("error", err.Error()))
		return records
	}

	translated, err := DecodeRecords(content)
	if err != nil || len(translated) != len(records) {
		log.Warn("translation output unusable, returning source-language records",
			slog.String("lang", targetLang),
			slog.Int("got", len(translated)),
			slog.Int("want", len(records)))
		return records
	}

	// name and pinyin must survive translation byte-for-byte.
	for i := range translated {
		translated[i].Name = records[i].Name
		translated[i].Pinyin = records[i].Pinyin
	}
	return translated
}
