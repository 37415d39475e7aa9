package filter

import (
	"context"

	"github.com/scentify/scentkit/core"
)

// ThresholdFilter 剔除分数低于概率下限的候选。
// 放在 Rank 之后使用：只有"喜欢概率 ≥ MinScore"的候选才进入结果。
type ThresholdFilter struct {
	MinScore float64
}

func (f *ThresholdFilter) Name() string {
	return "filter.threshold"
}

func (f *ThresholdFilter) ShouldFilter(
	_ context.Context,
	_ *core.RecommendContext,
	item *core.Item,
) (bool, error) {
	if item == nil {
		return true, nil
	}
	return item.Score < f.MinScore, nil
}
