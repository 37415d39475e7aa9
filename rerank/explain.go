package rerank

import (
	"context"
	"fmt"
	"strings"

	"github.com/scentify/scentkit/core"
	"github.com/scentify/scentkit/pipeline"
	"github.com/scentify/scentkit/pkg/utils"
)

// Explain 后处理节点，为每条推荐生成一句可读的解释。
//
// 解释由三部分拼成：置信度档位（按分数分档）、推荐理由
// （候选主香调与用户偏好前三香调的交集，最多列两个；无交集时
// 说明它是收藏的补充）、匹配百分比。写入 Meta["explanation"]。
type Explain struct{}

func (n *Explain) Name() string        { return "postprocess.explain" }
func (n *Explain) Kind() pipeline.Kind { return pipeline.KindPostProcess }

func (n *Explain) Process(
	_ context.Context,
	rctx *core.RecommendContext,
	items []*core.Item,
) ([]*core.Item, error) {
	var top []string
	if rctx != nil {
		profile := core.BuildTasteProfile(rctx.Inventory)
		top = profile.TopAccords(3)
	}

	for _, it := range items {
		if it == nil {
			continue
		}
		text := explanation(it, top)
		if it.Meta == nil {
			it.Meta = make(map[string]any)
		}
		it.Meta["explanation"] = text
		it.PutLabel("explained", utils.Label{Value: "1", Source: "postprocess"})
	}
	return items, nil
}

func explanation(it *core.Item, topAccords []string) string {
	confidence := "Good match"
	switch {
	case it.Score >= 0.8:
		confidence = "Highly recommended"
	case it.Score >= 0.7:
		confidence = "Strong match"
	}

	var matched []string
	if it.Perfume != nil {
		for _, accord := range it.Perfume.MainAccords {
			for _, pref := range topAccords {
				if strings.EqualFold(accord, pref) {
					matched = append(matched, accord)
					break
				}
			}
			if len(matched) >= 2 {
				break
			}
		}
	}

	var reason string
	if len(matched) > 0 {
		reason = fmt.Sprintf("Matches your preference for %s scents", strings.Join(matched, ", "))
	} else {
		note := "unique"
		if it.Perfume != nil && len(it.Perfume.MainAccords) > 0 {
			note = it.Perfume.MainAccords[0]
		}
		reason = fmt.Sprintf("Complements your collection with %s notes", note)
	}

	// 百分比截断取整（0.876 → 87%）
	pct := int(it.Score * 100)
	return fmt.Sprintf("%s - %s (%d%% match)", confidence, reason, pct)
}
