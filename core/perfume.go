package core

import "strings"

// Gender 是香水的目标性别。
type Gender string

const (
	GenderMale   Gender = "Male"
	GenderFemale Gender = "Female"
	GenderUnisex Gender = "Unisex"
)

// Season 是季节性评分的 key（0-5 分）。
type Season string

const (
	SeasonWinter Season = "Winter"
	SeasonFall   Season = "Fall"
	SeasonSpring Season = "Spring"
	SeasonSummer Season = "Summer"
)

// Occasion 是场合评分的 key（0-5 分）。
type Occasion string

const (
	OccasionDay   Occasion = "Day"
	OccasionNight Occasion = "Night"
)

// Note 是香调金字塔中的单个香料（仅展示用，不参与打分）。
type Note struct {
	Name     string `json:"name"`
	ImageURL string `json:"imageUrl"`
}

// Perfume 是目录中的香水记录：抓取后不可变，推荐引擎只读。
// 参与打分的字段：MainAccords / Seasonality / Occasion / Longevity / Sillage / Gender；
// 其余字段（图片、香调金字塔、描述、价格等）仅供展示层使用。
type Perfume struct {
	ID          string   `json:"id"`
	Name        string   `json:"name"`
	Brand       string   `json:"brand"`
	Gender      Gender   `json:"gender"`
	ScentType   string   `json:"scent_type"`
	MainAccords []string `json:"main_accords"`

	// Seasonality / Occasion 的值域是 [0,5]，缺失按 3 处理（见 feature 包）。
	Seasonality map[Season]float64   `json:"seasonality"`
	Occasion    map[Occasion]float64 `json:"occasion"`

	// Longevity / Sillage 是自由文本，按序数词表映射（见 feature 包）。
	Longevity string `json:"longevity"`
	Sillage   string `json:"sillage"`

	// 展示字段
	PerfumeType string  `json:"perfume_type"`
	Price       int     `json:"price"`
	Size        string  `json:"size"`
	Rating      float64 `json:"rating"`
	Description string  `json:"description"`
	ImageURL    string  `json:"image_url"`
	TopNotes    []Note  `json:"top_notes"`
	HeartNotes  []Note  `json:"heart_notes"`
	BaseNotes   []Note  `json:"base_notes"`
}

// PerfumeID 由名称派生稳定 ID：小写、空格转下划线、加 api_ 前缀。
// 同名香水视为同一条记录。
func PerfumeID(name string) string {
	return "api_" + strings.ToLower(strings.ReplaceAll(name, " ", "_"))
}

// OwnedIDSet 把库存集合转成 id 集合，用于去重/排除。
func OwnedIDSet(inventory []*Perfume) map[string]struct{} {
	owned := make(map[string]struct{}, len(inventory))
	for _, p := range inventory {
		if p == nil {
			continue
		}
		owned[p.ID] = struct{}{}
	}
	return owned
}
