package rerank

import (
	"context"

	"github.com/scentify/scentkit/core"
	"github.com/scentify/scentkit/pipeline"
)

// TopN 截断节点，保留前 N 条。N<=0 时默认 10。
type TopN struct {
	N int
}

func (n *TopN) Name() string        { return "rerank.topn" }
func (n *TopN) Kind() pipeline.Kind { return pipeline.KindReRank }

func (n *TopN) Process(
	_ context.Context,
	_ *core.RecommendContext,
	items []*core.Item,
) ([]*core.Item, error) {
	limit := n.N
	if limit <= 0 {
		limit = 10
	}
	if len(items) > limit {
		items = items[:limit]
	}
	return items, nil
}
