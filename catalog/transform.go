package catalog

import (
	"fmt"
	"math"
	"regexp"
	"strings"

	"github.com/scentify/scentkit/core"
	"github.com/scentify/scentkit/pkg/conv"
)

var sizePattern = regexp.MustCompile(`(\d+)\s*ml`)

// transformAPIPerfume 把外部 API 的原始响应归一化成 core.Perfume。
//
// 归一化规则：
//   - 季节/场合评分 clamp 到 [0,5]，缺失时全部填 3
//   - 场合按关键词归并为 Day/Night 两桶，多个分数取均值
//   - 性别归一为 Female/Male/Unisex
//   - 香型由第一个主香调映射，未命中默认 Fresh
func transformAPIPerfume(raw map[string]any) *core.Perfume {
	name := stringField(raw, "Name")
	if name == "" {
		name = "Unknown"
	}
	brand := stringField(raw, "Brand")
	if brand == "" {
		brand = "Unknown"
	}

	accords := stringSlice(raw["Main Accords"])
	if len(accords) == 0 {
		accords = []string{"Fresh", "Floral"}
	}

	p := &core.Perfume{
		ID:          core.PerfumeID(name),
		Name:        name,
		Brand:       brand,
		Gender:      parseGender(stringField(raw, "Gender")),
		ScentType:   scentTypeFromAccord(accords[0]),
		MainAccords: accords,
		Seasonality: parseSeasonality(raw),
		Occasion:    parseOccasion(raw),
		Longevity:   defaultString(stringField(raw, "Longevity"), "Moderate"),
		Sillage:     defaultString(stringField(raw, "Sillage"), "Moderate"),
	}

	oilType := stringField(raw, "OilType")
	p.PerfumeType = parsePerfumeType(oilType)
	p.Size = parseSize(oilType)
	p.Price = parsePrice(raw)
	if rating, ok := conv.ToFloat64(raw["rating"]); ok {
		p.Rating = rating
	}
	p.Description = fmt.Sprintf("A %s fragrance with %s projection.",
		strings.ToLower(p.Longevity), strings.ToLower(p.Sillage))
	p.ImageURL = stringField(raw, "Image URL")

	notes, _ := raw["Notes"].(map[string]any)
	p.TopNotes = parseNotes(notes["Top"], []core.Note{{Name: "Bergamot"}, {Name: "Lemon"}})
	p.HeartNotes = parseNotes(notes["Middle"], []core.Note{{Name: "Jasmine"}, {Name: "Rose"}})
	p.BaseNotes = parseNotes(notes["Base"], []core.Note{{Name: "Musk"}, {Name: "Vanilla"}})

	return p
}

func parseSeasonality(raw map[string]any) map[core.Season]float64 {
	seasonality := make(map[core.Season]float64)
	for _, entry := range rankingEntries(raw, "Season Ranking", "SeasonRanking", "season_ranking") {
		name := strings.ToLower(rankingName(entry, "season"))
		score, ok := rankingScore(entry)
		if !ok {
			continue
		}
		score = clamp05(score)
		switch {
		case strings.Contains(name, "winter"):
			seasonality[core.SeasonWinter] = round1(score)
		case strings.Contains(name, "fall"), strings.Contains(name, "autumn"):
			seasonality[core.SeasonFall] = round1(score)
		case strings.Contains(name, "spring"):
			seasonality[core.SeasonSpring] = round1(score)
		case strings.Contains(name, "summer"):
			seasonality[core.SeasonSummer] = round1(score)
		}
	}
	if len(seasonality) == 0 {
		return map[core.Season]float64{
			core.SeasonWinter: 3, core.SeasonFall: 3,
			core.SeasonSpring: 3, core.SeasonSummer: 3,
		}
	}
	return seasonality
}

var (
	dayWords   = []string{"professional", "casual", "daily", "day", "office", "sport", "work", "business"}
	nightWords = []string{"night", "evening", "date", "romantic", "party", "formal", "special"}
)

func parseOccasion(raw map[string]any) map[core.Occasion]float64 {
	var day, night []float64
	for _, entry := range rankingEntries(raw, "Occasion Ranking", "OccasionRanking", "occasion_ranking") {
		name := strings.ToLower(rankingName(entry, "occasion"))
		score, ok := rankingScore(entry)
		if !ok {
			continue
		}
		switch {
		case containsAny(name, dayWords):
			day = append(day, score)
		case containsAny(name, nightWords):
			night = append(night, score)
		}
	}

	occasion := make(map[core.Occasion]float64)
	if len(day) > 0 {
		occasion[core.OccasionDay] = round1(clamp05(mean(day)))
	}
	if len(night) > 0 {
		occasion[core.OccasionNight] = round1(clamp05(mean(night)))
	}
	if len(occasion) == 0 {
		return map[core.Occasion]float64{core.OccasionDay: 3, core.OccasionNight: 3}
	}
	return occasion
}

func parseGender(raw string) core.Gender {
	lower := strings.ToLower(raw)
	switch {
	case strings.Contains(lower, "women"):
		return core.GenderFemale
	case strings.Contains(lower, "men"):
		return core.GenderMale
	default:
		return core.GenderUnisex
	}
}

func scentTypeFromAccord(accord string) string {
	lower := strings.ToLower(accord)
	switch {
	case strings.Contains(lower, "floral"):
		return "Floral"
	case strings.Contains(lower, "wood"):
		return "Woody"
	case strings.Contains(lower, "citrus"):
		return "Citrus"
	case strings.Contains(lower, "oriental"), strings.Contains(lower, "spicy"):
		return "Oriental"
	case strings.Contains(lower, "sweet"), strings.Contains(lower, "gourmand"):
		return "Gourmand"
	case strings.Contains(lower, "green"), strings.Contains(lower, "herbal"):
		return "Green"
	case strings.Contains(lower, "leather"):
		return "Leather"
	default:
		return "Fresh"
	}
}

func parsePerfumeType(oilType string) string {
	if oilType == "" {
		return "Eau de Parfum"
	}
	lower := strings.ToLower(oilType)
	switch {
	case strings.Contains(lower, "eau de parfum"), strings.Contains(lower, "edp"):
		return "Eau de Parfum"
	case strings.Contains(lower, "eau de toilette"), strings.Contains(lower, "edt"):
		return "Eau de Toilette"
	case strings.Contains(lower, "eau de cologne"), strings.Contains(lower, "edc"):
		return "Eau de Cologne"
	case strings.Contains(lower, "parfum"), strings.Contains(lower, "extrait"):
		return "Parfum"
	default:
		return oilType
	}
}

func parseSize(oilType string) string {
	if m := sizePattern.FindStringSubmatch(strings.ToLower(oilType)); m != nil {
		return m[1] + "ml"
	}
	return "50ml"
}

func parsePrice(raw map[string]any) int {
	for _, key := range []string{"price", "Price"} {
		if v, ok := raw[key]; ok {
			if f, ok := conv.ToFloat64(v); ok {
				return int(f)
			}
		}
	}
	return 75
}

func parseNotes(raw any, fallback []core.Note) []core.Note {
	entries, ok := raw.([]any)
	if !ok {
		return fallback
	}
	var notes []core.Note
	for _, e := range entries {
		m, ok := e.(map[string]any)
		if !ok {
			continue
		}
		name, _ := m["name"].(string)
		if name == "" {
			continue
		}
		image, _ := m["imageUrl"].(string)
		notes = append(notes, core.Note{Name: name, ImageURL: image})
	}
	if len(notes) == 0 {
		return fallback
	}
	return notes
}

func rankingEntries(raw map[string]any, keys ...string) []map[string]any {
	for _, key := range keys {
		list, ok := raw[key].([]any)
		if !ok {
			continue
		}
		var entries []map[string]any
		for _, e := range list {
			if m, ok := e.(map[string]any); ok {
				entries = append(entries, m)
			}
		}
		return entries
	}
	return nil
}

func rankingName(entry map[string]any, altKey string) string {
	if name, ok := entry["name"].(string); ok && name != "" {
		return name
	}
	name, _ := entry[altKey].(string)
	return name
}

func rankingScore(entry map[string]any) (float64, bool) {
	for _, key := range []string{"score", "value"} {
		if v, ok := entry[key]; ok && v != nil {
			if f, ok := conv.ToFloat64(v); ok {
				return f, true
			}
		}
	}
	return 0, false
}

func stringField(raw map[string]any, key string) string {
	s, _ := raw[key].(string)
	return s
}

func defaultString(s, fallback string) string {
	if s == "" {
		return fallback
	}
	return s
}

func stringSlice(raw any) []string {
	list, ok := raw.([]any)
	if !ok {
		return nil
	}
	var out []string
	for _, e := range list {
		if s, ok := e.(string); ok && s != "" {
			out = append(out, s)
		}
	}
	return out
}

func containsAny(s string, words []string) bool {
	for _, w := range words {
		if strings.Contains(s, w) {
			return true
		}
	}
	return false
}

func mean(xs []float64) float64 {
	sum := 0.0
	for _, x := range xs {
		sum += x
	}
	return sum / float64(len(xs))
}

func clamp05(x float64) float64 {
	return math.Max(0, math.Min(5, x))
}

func round1(x float64) float64 {
	return math.Round(x*10) / 10
}
