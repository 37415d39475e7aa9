// Package recommender 把特征抽取、训练、打分、过滤、重排组装成完整引擎。
//
// 引擎是无状态的编排层：每次 Recommend 调用现算，模型持久化交给
// model.BundleStore，库存与目录由调用方传入。任何环节失败都退化为
// 空结果，绝不 panic。
package recommender

import (
	"context"

	"github.com/scentify/scentkit/core"
	"github.com/scentify/scentkit/feature"
	"github.com/scentify/scentkit/filter"
	"github.com/scentify/scentkit/ml"
	"github.com/scentify/scentkit/model"
	"github.com/scentify/scentkit/pipeline"
	"github.com/scentify/scentkit/rank"
	"github.com/scentify/scentkit/rerank"
)

// Engine 香水推荐引擎。
type Engine struct {
	Extractor *feature.PerfumeExtractor
	Trainer   *ml.Trainer
	Bundles   *model.BundleStore
	Catalog   core.CatalogStore
	Config    core.MLConfig
}

// New 创建引擎。store 为 nil 时模型不落盘（纯内存，进程退出即失效）。
func New(catalog core.CatalogStore, store core.Store, cfg core.MLConfig) *Engine {
	extractor := feature.NewPerfumeExtractor()
	var bundles *model.BundleStore
	if store != nil {
		bundles = model.NewBundleStore(store, "")
	}
	return &Engine{
		Extractor: extractor,
		Trainer:   ml.NewTrainer(extractor, bundles, cfg),
		Bundles:   bundles,
		Catalog:   catalog,
		Config:    cfg,
	}
}

// RecommendOptions 控制单次推荐的输出形态。
type RecommendOptions struct {
	// TopN 结果条数上限，<=0 时默认 10。
	TopN int

	// Diversify 是否启用香型多样性重排。
	Diversify bool
}

// DefaultRecommendOptions 默认：前 10 条，启用多样性重排。
func DefaultRecommendOptions() RecommendOptions {
	return RecommendOptions{TopN: 10, Diversify: true}
}

// Recommend 为给定库存生成推荐。
//
// 流程：训练（或回退到已持久化的模型）→ 全目录候选 → 排除已拥有 →
// 模型打分排序 → 概率阈值过滤 → 解释文案 → 多样性重排/截断。
// 库存不足门槛、目录为空、没有可用模型时返回空结果（nil, nil）。
func (e *Engine) Recommend(ctx context.Context, inventory []*core.Perfume, opts RecommendOptions) ([]*core.Item, error) {
	if opts.TopN <= 0 {
		opts.TopN = 10
	}
	if len(inventory) < e.Config.MinInventorySize {
		return nil, nil
	}

	perfumes, err := e.Catalog.AllItems(ctx)
	if err != nil {
		return nil, err
	}
	if len(perfumes) == 0 {
		return nil, nil
	}

	bundle, err := e.resolveBundle(ctx, inventory, perfumes)
	if err != nil {
		return nil, err
	}
	if bundle == nil {
		return nil, nil
	}

	rctx := &core.RecommendContext{Inventory: inventory}
	items := make([]*core.Item, 0, len(perfumes))
	for _, p := range perfumes {
		if p == nil {
			continue
		}
		items = append(items, core.NewItem(p))
	}

	nodes := []pipeline.Node{
		&filter.FilterNode{Filters: []filter.Filter{
			filter.NewOwnedFilter(inventory),
		}},
		&rank.ModelNode{Bundle: bundle, Extractor: e.Extractor},
		&filter.FilterNode{Filters: []filter.Filter{
			&filter.ThresholdFilter{MinScore: e.Config.MinRecommendationProbability},
		}},
		&rerank.Explain{},
	}
	if opts.Diversify {
		nodes = append(nodes, &rerank.Diversity{TopN: opts.TopN})
	}
	nodes = append(nodes, &rerank.TopN{N: opts.TopN})

	p := &pipeline.Pipeline{Nodes: nodes}
	out, err := p.Run(ctx, rctx, items)
	if err != nil {
		return nil, err
	}
	return out, nil
}

// Train 显式触发一次训练。门槛不足或训练失败返回领域错误。
func (e *Engine) Train(ctx context.Context, inventory []*core.Perfume) (*ml.TrainResult, error) {
	perfumes, err := e.Catalog.AllItems(ctx)
	if err != nil {
		return nil, err
	}
	return e.Trainer.Train(ctx, inventory, perfumes)
}

// resolveBundle 先尝试现训，失败时回退到已持久化且特征版本匹配的模型。
// 两者都不可用时返回 (nil, nil)，上层输出空结果。
func (e *Engine) resolveBundle(ctx context.Context, inventory, perfumes []*core.Perfume) (*model.Bundle, error) {
	result, err := e.Trainer.Train(ctx, inventory, perfumes)
	if err == nil {
		return result.Bundle, nil
	}
	if !core.IsDomainError(err) {
		return nil, err
	}
	if e.Bundles == nil {
		return nil, nil
	}
	return e.Bundles.Load(ctx, e.Extractor.Signature())
}
