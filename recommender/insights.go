package recommender

import (
	"context"

	"github.com/scentify/scentkit/core"
)

// Preference 是用户库存中某个 accord 的偏好强度。
type Preference struct {
	Name  string `json:"name"`
	Count int    `json:"count"`
}

// Insights 是库存的画像摘要，供展示层使用。
type Insights struct {
	InventorySize  int          `json:"inventory_size"`
	CanTrainModel  bool         `json:"can_train_model"`
	ModelType      string       `json:"model_type"`
	TopPreferences []Preference `json:"top_preferences"`
	DiversityScore float64      `json:"diversity_score"`
}

// Insights 汇总库存画像：规模、是否达到训练门槛、
// 偏好 top5 accord（首字母大写）、香型多样性。
func (e *Engine) Insights(_ context.Context, inventory []*core.Perfume) *Insights {
	profile := core.BuildTasteProfile(inventory)

	top := profile.TopAccords(5)
	prefs := make([]Preference, 0, len(top))
	for _, accord := range top {
		prefs = append(prefs, Preference{
			Name:  titleCase(accord),
			Count: profile.AccordCounts[accord],
		})
	}

	return &Insights{
		InventorySize:  len(inventory),
		CanTrainModel:  len(inventory) >= e.Config.MinInventorySize,
		ModelType:      string(e.Config.ModelType),
		TopPreferences: prefs,
		DiversityScore: profile.DiversityScore(),
	}
}

// titleCase 只大写首字母，保留其余部分（accord 都是小写单词/短语）。
func titleCase(s string) string {
	if s == "" {
		return s
	}
	r := []rune(s)
	if r[0] >= 'a' && r[0] <= 'z' {
		r[0] = r[0] - 'a' + 'A'
	}
	return string(r)
}
