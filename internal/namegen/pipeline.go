package namegen

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"

	"github.com/hanlabs/namegen-proxy/internal/diagnostics"
	"github.com/hanlabs/namegen-proxy/internal/logger"
	"github.com/hanlabs/namegen-proxy/internal/metrics"
)

const (
	primaryMaxTokens = 2048
	safeMaxTokens    = 800
	genTemperature   = 0.6
)

// Pipeline turns raw model output into a normalized, policy-compliant,
// optionally translated record array. Generation runs a two-tier degrade
// ladder: full prompt, then a reduced safe prompt, then an empty result.
type Pipeline struct {
	client *Client
	diag   *diagnostics.Recorder
	logger *logger.Logger
}

func NewPipeline(client *Client, diag *diagnostics.Recorder, logger *logger.Logger) *Pipeline {
	return &Pipeline{
		client: client,
		diag:   diag,
		logger: logger.WithComponent("namegen_pipeline"),
	}
}

// Generate runs the full pipeline: upstream call with fallback, parse,
// normalize, policy filter, optional translation. Total upstream failure
// degrades to an empty slice, never an error; the only errors returned are
// internal ones the caller should surface as a gateway failure.
func (p *Pipeline) Generate(ctx context.Context, prefs Preferences) ([]NameRecord, error) {
	prefsJSON, err := json.Marshal(prefs)
	if err != nil {
		return nil, fmt.Errorf("marshal preferences: %w", err)
	}

	records, tier := p.generateWithFallback(ctx, prefs.Lang, prefsJSON)
	metrics.PipelineTier.WithLabelValues(tier).Inc()

	records = Normalize(records, p.logger)
	records = FilterRecords(records)

	if prefs.Lang != "zh" {
		records = p.translate(ctx, records, prefs.Lang)
	}

	return records, nil
}

// generateWithFallback walks the Primary -> SafeRetry -> Failed ladder.
// Each tier counts both call errors and parse errors as failure; the error
// snippets land in the diagnostics recorder for /debug/status.
func (p *Pipeline) generateWithFallback(ctx context.Context, lang string, prefsJSON []byte) ([]NameRecord, string) {
	log := p.logger.WithContext(ctx)

	primary := []ChatMessage{
		{Role: "system", Content: namingSystemPrompt},
		{Role: "user", Content: primaryPrompt(lang, prefsJSON)},
	}
	content, err := p.client.ChatCompletion(ctx, primary, primaryMaxTokens, genTemperature)
	if err == nil {
		records, derr := DecodeRecords(content)
		if derr == nil {
			return records, "primary"
		}
		err = derr
	}
	p.diag.RecordError(err)
	log.Warn("primary generation failed, retrying with safe prompt", slog.String("error", err.Error()))

	safe := []ChatMessage{
		{Role: "system", Content: namingSystemPrompt},
		{Role: "user", Content: safePrompt(prefsJSON)},
	}
	content, err = p.client.ChatCompletion(ctx, safe, safeMaxTokens, genTemperature)
	if err == nil {
		records, derr := DecodeRecords(content)
		if derr == nil {
			return records, "safe_retry"
		}
		err = derr
	}
	p.diag.RecordFallbackError(err)
	log.Error("safe retry failed, degrading to empty result", slog.String("error", err.Error()))

	return []NameRecord{}, "failed"
}
