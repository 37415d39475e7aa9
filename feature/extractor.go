// Package feature 实现香水的定长特征抽取与标准化。
//
// 特征空间是手工设计的有界空间（38 维）：30 个 accord 指示位 + 4 个季节
// + 2 个场合 + 留香 + 扩散 + 性别。可解释、数值稳定，两条正样本即可训练。
package feature

import (
	"fmt"
	"hash/fnv"
	"strings"

	"github.com/scentify/scentkit/core"
)

// accordVocabulary 是固定的 accord 词表（顺序即特征位顺序，不可变动：
// 改动即新的特征版本，会使已持久化的模型失效）。
var accordVocabulary = []string{
	"floral", "fresh", "woody", "citrus", "oriental", "spicy",
	"sweet", "gourmand", "fruity", "aromatic", "green", "aquatic",
	"leather", "powdery", "herbal", "amber", "musk", "vanilla",
	"rose", "jasmine", "lavender", "bergamot", "sandalwood", "patchouli",
	"oud", "vetiver", "tobacco", "animalic", "earthy", "smoky",
}

// longevityLexicon 把留香文本映射到序数分值。
var longevityLexicon = map[string]float64{
	"very weak":         0.1,
	"weak":              0.3,
	"moderate":          0.5,
	"long lasting":      0.7,
	"long-lasting":      0.7,
	"eternal":           0.9,
	"very long lasting": 0.9,
}

// sillageLexicon 把扩散文本映射到序数分值。
var sillageLexicon = map[string]float64{
	"intimate": 0.2,
	"weak":     0.3,
	"moderate": 0.5,
	"strong":   0.7,
	"enormous": 0.9,
}

const (
	// defaultSeasonScore 季节/场合缺失时的原始默认分（归一化前）。
	defaultSeasonScore = 3.0
	// defaultOrdinal 留香/扩散文本无法识别时的默认值。
	defaultOrdinal = 0.5
	// defaultGender 性别缺失/未知时的默认值（视作 Unisex）。
	defaultGender = 0.5
)

// PerfumeExtractor 把香水记录映射为定长特征向量。
// Extract 是纯函数：确定、全函数（字段缺失用文档化默认值，绝不失败）。
type PerfumeExtractor struct{}

// NewPerfumeExtractor 创建特征抽取器。
func NewPerfumeExtractor() *PerfumeExtractor {
	return &PerfumeExtractor{}
}

// Dim 返回特征维数（|词表| + 8）。
func (e *PerfumeExtractor) Dim() int {
	return len(accordVocabulary) + 8
}

// Names 返回各维度名称，与 Extract 的输出顺序一致。
func (e *PerfumeExtractor) Names() []string {
	names := make([]string, 0, e.Dim())
	for _, accord := range accordVocabulary {
		names = append(names, "accord_"+accord)
	}
	names = append(names,
		"seasonality_winter", "seasonality_fall", "seasonality_spring", "seasonality_summer",
		"occasion_day", "occasion_night",
		"longevity", "sillage", "gender",
	)
	return names
}

// Signature 返回特征版本签名：维度布局变化时签名变化。
// 模型 bundle 持久化时写入签名，加载时不匹配按"缺失"处理，避免
// 用旧 scaler 的统计量去变换新版特征。
func (e *PerfumeExtractor) Signature() string {
	h := fnv.New64a()
	for _, name := range e.Names() {
		h.Write([]byte(name))
		h.Write([]byte{0})
	}
	return fmt.Sprintf("v1-%016x", h.Sum64())
}

// Extract 抽取特征向量。p 为 nil 时返回全默认值向量。
//
// 布局（定长、定序）：
//  1. accord 指示位：词表项是任一 main accord（小写）的子串则为 1
//  2. 季节分 Winter/Fall/Spring/Summer，除以 5 归一，缺失按 3
//  3. 场合分 Day/Night，同上
//  4. 留香序数值，未识别 0.5
//  5. 扩散序数值，未识别 0.5
//  6. 性别 Male=0 / Unisex=0.5 / Female=1，未知 0.5
func (e *PerfumeExtractor) Extract(p *core.Perfume) []float64 {
	features := make([]float64, 0, e.Dim())

	var accordsLower []string
	if p != nil {
		accordsLower = make([]string, 0, len(p.MainAccords))
		for _, accord := range p.MainAccords {
			accordsLower = append(accordsLower, strings.ToLower(accord))
		}
	}
	for _, vocab := range accordVocabulary {
		has := 0.0
		for _, accord := range accordsLower {
			if strings.Contains(accord, vocab) {
				has = 1.0
				break
			}
		}
		features = append(features, has)
	}

	for _, season := range []core.Season{core.SeasonWinter, core.SeasonFall, core.SeasonSpring, core.SeasonSummer} {
		score := defaultSeasonScore
		if p != nil {
			if v, ok := p.Seasonality[season]; ok {
				score = v
			}
		}
		features = append(features, score/5.0)
	}

	for _, occasion := range []core.Occasion{core.OccasionDay, core.OccasionNight} {
		score := defaultSeasonScore
		if p != nil {
			if v, ok := p.Occasion[occasion]; ok {
				score = v
			}
		}
		features = append(features, score/5.0)
	}

	longevity := defaultOrdinal
	if p != nil {
		if v, ok := longevityLexicon[strings.ToLower(p.Longevity)]; ok {
			longevity = v
		}
	}
	features = append(features, longevity)

	sillage := defaultOrdinal
	if p != nil {
		if v, ok := sillageLexicon[strings.ToLower(p.Sillage)]; ok {
			sillage = v
		}
	}
	features = append(features, sillage)

	gender := defaultGender
	if p != nil {
		switch p.Gender {
		case core.GenderMale:
			gender = 0.0
		case core.GenderUnisex:
			gender = 0.5
		case core.GenderFemale:
			gender = 1.0
		}
	}
	features = append(features, gender)

	return features
}

// FeatureMap 把向量展开成 name -> value 的 map（用于 Item.Features 与 DSL）。
func (e *PerfumeExtractor) FeatureMap(vec []float64) map[string]float64 {
	names := e.Names()
	m := make(map[string]float64, len(names))
	for i, name := range names {
		if i < len(vec) {
			m[name] = vec[i]
		}
	}
	return m
}

// Vocabulary 返回 accord 词表的副本。
func Vocabulary() []string {
	out := make([]string, len(accordVocabulary))
	copy(out, accordVocabulary)
	return out
}
