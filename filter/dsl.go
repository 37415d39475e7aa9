package filter

import (
	"context"

	"github.com/scentify/scentkit/core"
	"github.com/scentify/scentkit/pkg/dsl"
)

// DSLFilter 按 CEL 表达式过滤候选，表达式为 false 的被剔除。
// 用于配置驱动的业务规则，例如：
//   - `item.gender != "Male"` 只推女香/中性香
//   - `label.recall_source != "hot" || item.score > 0.7` 热门召回提高门槛
type DSLFilter struct {
	Expr string
}

func (f *DSLFilter) Name() string {
	return "filter.dsl"
}

func (f *DSLFilter) ShouldFilter(
	_ context.Context,
	rctx *core.RecommendContext,
	item *core.Item,
) (bool, error) {
	if item == nil {
		return true, nil
	}
	if f.Expr == "" {
		return false, nil
	}
	keep, err := dsl.NewEval(item, rctx).Evaluate(f.Expr)
	if err != nil {
		return false, err
	}
	return !keep, nil
}
