package core

import "github.com/scentify/scentkit/pkg/utils"

// Item 是推荐链路中的统一承载结构：香水记录、特征、分数、标签。
// Score 是分类器输出的"喜欢"概率（[0,1]）；Labels 用于解释与观测。
type Item struct {
	ID       string
	Perfume  *Perfume
	Score    float64
	Features map[string]float64
	Meta     map[string]any
	Labels   map[string]utils.Label
}

// NewItem 从香水记录创建链路 Item。
func NewItem(p *Perfume) *Item {
	it := &Item{
		Perfume:  p,
		Score:    0,
		Features: make(map[string]float64),
		Meta:     make(map[string]any),
		Labels:   make(map[string]utils.Label),
	}
	if p != nil {
		it.ID = p.ID
	}
	return it
}

// PutLabel 写入 Label；若已存在同名 key，则按默认 Merge 规则累积。
func (it *Item) PutLabel(key string, lbl utils.Label) {
	if it.Labels == nil {
		it.Labels = make(map[string]utils.Label)
	}
	if old, ok := it.Labels[key]; ok {
		it.Labels[key] = utils.MergeLabel(old, lbl)
		return
	}
	it.Labels[key] = lbl
}

// Explanation 返回解释文案（由 rerank.Explain 写入 Meta）。
func (it *Item) Explanation() string {
	if it.Meta == nil {
		return ""
	}
	if s, ok := it.Meta["explanation"].(string); ok {
		return s
	}
	return ""
}
