package rank

import (
	"context"
	"sort"

	"github.com/scentify/scentkit/core"
	"github.com/scentify/scentkit/feature"
	"github.com/scentify/scentkit/model"
	"github.com/scentify/scentkit/pipeline"
	"github.com/scentify/scentkit/pkg/utils"
)

// ModelNode 用训练好的 Bundle 给候选打分并按分数降序排序。
//
// 单条候选流程：抽取特征 → 用 bundle 的 scaler 标准化 → 分类器输出概率。
// 单条候选失败只跳过该候选（打 scoring_skipped 标签），不中断整批。
// 排序使用稳定排序：分数相同的候选保持目录原序。
type ModelNode struct {
	Bundle    *model.Bundle
	Extractor *feature.PerfumeExtractor
}

func (n *ModelNode) Name() string        { return "rank.model" }
func (n *ModelNode) Kind() pipeline.Kind { return pipeline.KindRank }

func (n *ModelNode) Process(
	_ context.Context,
	_ *core.RecommendContext,
	items []*core.Item,
) ([]*core.Item, error) {
	if n.Bundle == nil || len(items) == 0 {
		return items, nil
	}
	extractor := n.Extractor
	if extractor == nil {
		extractor = feature.NewPerfumeExtractor()
	}

	out := make([]*core.Item, 0, len(items))
	for _, it := range items {
		if it == nil || it.Perfume == nil {
			continue
		}
		vec := extractor.Extract(it.Perfume)
		score, err := n.Bundle.Score(vec)
		if err != nil {
			it.PutLabel("scoring_skipped", utils.Label{Value: err.Error(), Source: "rank"})
			continue
		}
		it.Score = score
		it.Features = extractor.FeatureMap(vec)
		it.PutLabel("rank_model", utils.Label{Value: n.Bundle.Classifier.Name(), Source: "rank"})
		out = append(out, it)
	}

	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Score > out[j].Score
	})
	return out, nil
}
