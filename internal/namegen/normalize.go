package namegen

import (
	"fmt"
	"log/slog"
	"strings"

	"github.com/hanlabs/namegen-proxy/internal/logger"
)

// maxStoryRunes caps surnameInfo.story length in code points. Hard limit,
// not configurable.
const maxStoryRunes = 150

// genericStory fills in when the surname has no entry in the fallback table.
const genericStory = "该姓人物故事暂缺"

// storyFallbacks backfills a missing surname story for a handful of common
// surnames, each referencing the figure's signature achievement.
var storyFallbacks = map[string]string{
	"李": "李白：仗剑天涯，夜宿山寺写诗成绝唱，豪放飘逸，诗名传千古",
	"王": "王羲之：兰亭集会挥毫成序，书法千古流芳，世称书圣",
	"张": "张仲景：撰《伤寒论》体系医理，救济百姓，医道传承不绝",
	"刘": "刘备：三顾茅庐礼贤下士，兴复汉室，仁义立身",
	"林": "林则徐：虎门销烟严禁鸦片，开眼看世界，近代维新先声",
}

// Normalize backfills required sub-fields and truncates oversized text,
// record by record. A record that cannot be normalized is skipped rather
// than failing the whole batch.
func Normalize(records []NameRecord, log *logger.Logger) []NameRecord {
	out := make([]NameRecord, 0, len(records))
	for i, rec := range records {
		normalized, err := normalizeRecord(rec)
		if err != nil {
			log.Warn("skipping record that failed normalization",
				slog.Int("index", i),
				slog.String("error", err.Error()))
			continue
		}
		out = append(out, normalized)
	}
	return out
}

func normalizeRecord(rec NameRecord) (NameRecord, error) {
	if strings.TrimSpace(rec.Name) == "" {
		return rec, fmt.Errorf("record has no name")
	}

	if rec.SurnameInfo.Story == "" {
		surname := string([]rune(rec.Name)[0])
		if story, ok := storyFallbacks[surname]; ok {
			rec.SurnameInfo.Story = story
		} else {
			rec.SurnameInfo.Story = genericStory
		}
	}
	rec.SurnameInfo.Story = truncateRunes(rec.SurnameInfo.Story, maxStoryRunes)

	if rec.NameInsight == "" {
		rec.NameInsight = fmt.Sprintf("该名由姓与名组成，整体风格偏%s。寓意：%s。", rec.Style, rec.Meaning)
	}

	return rec, nil
}

func truncateRunes(s string, n int) string {
	runes := []rune(s)
	if len(runes) > n {
		return string(runes[:n])
	}
	return s
}
