package recall

import (
	"context"

	"github.com/scentify/scentkit/core"
	"github.com/scentify/scentkit/pipeline"
)

// Catalog 是全量目录召回源：把目录快照整体作为候选集。
// 目录量级在几百条，模型对每条候选同步打分，不需要近似检索。
// Catalog 同时实现了 Source 和 Node 接口，可以直接在 Pipeline 中使用。
type Catalog struct {
	Store core.CatalogStore
}

func (r *Catalog) Name() string        { return "recall.catalog" }
func (r *Catalog) Kind() pipeline.Kind { return pipeline.KindRecall }

// Process 实现 Node 接口，直接调用 Recall。
func (r *Catalog) Process(
	ctx context.Context,
	rctx *core.RecommendContext,
	_ []*core.Item,
) ([]*core.Item, error) {
	return r.Recall(ctx, rctx)
}

// Recall 实现 Source 接口。目录为空时返回空候选，不报错。
func (r *Catalog) Recall(
	ctx context.Context,
	_ *core.RecommendContext,
) ([]*core.Item, error) {
	if r.Store == nil {
		return nil, nil
	}
	perfumes, err := r.Store.AllItems(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]*core.Item, 0, len(perfumes))
	for _, p := range perfumes {
		if p == nil {
			continue
		}
		out = append(out, core.NewItem(p))
	}
	return out, nil
}
