package pipeline

import (
	"context"

	"github.com/scentify/scentkit/core"
)

// Pipeline 是核心抽象：把推荐逻辑拆成可组合的 Node 链。
// 推荐引擎的默认链路是 Recall → Filter → Rank → Filter → PostProcess → ReRank。
type Pipeline struct {
	Nodes []Node
}

func (p *Pipeline) Run(
	ctx context.Context,
	rctx *core.RecommendContext,
	items []*core.Item,
) ([]*core.Item, error) {
	cur := items
	for _, node := range p.Nodes {
		next, err := node.Process(ctx, rctx, cur)
		if err != nil {
			return nil, err
		}
		cur = next
	}
	return cur, nil
}
