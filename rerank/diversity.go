package rerank

import (
	"context"

	"github.com/scentify/scentkit/core"
	"github.com/scentify/scentkit/pipeline"
	"github.com/scentify/scentkit/pkg/utils"
)

// Diversity 按香型限流的重排节点。
//
// 候选已按分数降序。单次扫描：某香型已有 max(2, TopN/5) 条时跳过，
// 但在已选数量不足 TopN/2 之前照收（泄压阀，防止候选过于集中时选不满）；
// 扫描后仍有空位时，按原排名回填未入选的候选。
// 候选总数不超过 TopN 时不做任何处理。
type Diversity struct {
	TopN int
}

func (n *Diversity) Name() string        { return "rerank.diversity" }
func (n *Diversity) Kind() pipeline.Kind { return pipeline.KindReRank }

func (n *Diversity) Process(
	_ context.Context,
	_ *core.RecommendContext,
	items []*core.Item,
) ([]*core.Item, error) {
	topN := n.TopN
	if topN <= 0 {
		topN = 10
	}
	if len(items) <= topN {
		return items, nil
	}

	maxPerType := topN / 5
	if maxPerType < 2 {
		maxPerType = 2
	}

	typeOf := func(it *core.Item) string {
		if it.Perfume != nil && it.Perfume.ScentType != "" {
			return it.Perfume.ScentType
		}
		return "Fresh"
	}

	typeCount := make(map[string]int)
	selected := make([]*core.Item, 0, topN)
	picked := make(map[*core.Item]bool, topN)
	for _, it := range items {
		if len(selected) >= topN {
			break
		}
		st := typeOf(it)
		if typeCount[st] < maxPerType || len(selected) < topN/2 {
			typeCount[st]++
			it.PutLabel("diversity", utils.Label{Value: st, Source: "rerank"})
			selected = append(selected, it)
			picked[it] = true
		}
	}

	for _, it := range items {
		if len(selected) >= topN {
			break
		}
		if picked[it] {
			continue
		}
		it.PutLabel("diversity", utils.Label{Value: "backfill", Source: "rerank"})
		selected = append(selected, it)
	}
	return selected, nil
}
