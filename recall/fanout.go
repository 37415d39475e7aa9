package recall

import (
	"context"
	"strconv"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/scentify/scentkit/core"
	"github.com/scentify/scentkit/pipeline"
	"github.com/scentify/scentkit/pkg/utils"
)

// MergeStrategy 决定多路召回结果如何合并。
type MergeStrategy interface {
	Merge(all []*core.Item, dedup bool) []*core.Item
}

// Fanout 是一个 Recall Node：并发执行多个召回源，并合并结果。
// 支持超时、限流、优先级合并策略。
// 典型用法：目录全量 + 热门召回并行，按 first 策略去重。
type Fanout struct {
	Sources       []Source
	Dedup         bool
	Timeout       time.Duration // 每个召回源的超时时间
	MaxConcurrent int           // 最大并发数（0 表示无限制）
	MergeStrategy MergeStrategy // 默认 FirstMergeStrategy
}

func (n *Fanout) Name() string        { return "recall.fanout" }
func (n *Fanout) Kind() pipeline.Kind { return pipeline.KindRecall }

func (n *Fanout) Process(
	ctx context.Context,
	rctx *core.RecommendContext,
	_ []*core.Item,
) ([]*core.Item, error) {
	if len(n.Sources) == 0 {
		return nil, nil
	}

	var (
		mu    sync.Mutex
		all   []*core.Item
		eg, _ = errgroup.WithContext(ctx)
	)

	if n.MaxConcurrent > 0 {
		eg.SetLimit(n.MaxConcurrent)
	}

	for i, src := range n.Sources {
		s := src
		priority := i // 优先级（索引越小优先级越高）

		eg.Go(func() error {
			recallCtx := ctx
			if n.Timeout > 0 {
				var cancel context.CancelFunc
				recallCtx, cancel = context.WithTimeout(ctx, n.Timeout)
				defer cancel()
			}

			items, err := s.Recall(recallCtx, rctx)
			if err != nil {
				// 超时或错误时返回空结果，不中断其他召回源
				return nil
			}

			// 记录召回来源 label，方便 explain / 观测
			for _, it := range items {
				it.PutLabel("recall_source", utils.Label{Value: s.Name(), Source: "recall"})
				it.PutLabel("recall_priority", utils.Label{Value: strconv.Itoa(priority), Source: "recall"})
			}

			mu.Lock()
			all = append(all, items...)
			mu.Unlock()
			return nil
		})
	}

	if err := eg.Wait(); err != nil {
		return nil, err
	}

	strategy := n.MergeStrategy
	if strategy == nil {
		strategy = &FirstMergeStrategy{}
	}
	return strategy.Merge(all, n.Dedup), nil
}

// FirstMergeStrategy 按 ID 去重，保留第一个出现的（默认策略）。
type FirstMergeStrategy struct{}

func (FirstMergeStrategy) Merge(all []*core.Item, dedup bool) []*core.Item {
	if !dedup {
		return all
	}
	seen := make(map[string]*core.Item, len(all))
	out := make([]*core.Item, 0, len(all))
	for _, it := range all {
		if it == nil {
			continue
		}
		if old, ok := seen[it.ID]; ok {
			for k, v := range it.Labels {
				old.PutLabel(k, v)
			}
			continue
		}
		seen[it.ID] = it
		out = append(out, it)
	}
	return out
}

// UnionMergeStrategy 合并所有结果，不去重（用于需要保留所有来源的场景）。
type UnionMergeStrategy struct{}

func (UnionMergeStrategy) Merge(all []*core.Item, _ bool) []*core.Item {
	return all
}

// PriorityMergeStrategy 按优先级合并：相同 ID 时保留优先级更高的（索引更小）。
type PriorityMergeStrategy struct{}

func (PriorityMergeStrategy) Merge(all []*core.Item, dedup bool) []*core.Item {
	if !dedup {
		return all
	}
	seen := make(map[string]*core.Item, len(all))
	order := make([]string, 0, len(all))
	for _, it := range all {
		if it == nil {
			continue
		}
		old, exists := seen[it.ID]
		if !exists {
			seen[it.ID] = it
			order = append(order, it.ID)
			continue
		}
		if labelPriority(it) < labelPriority(old) {
			seen[it.ID] = it
		} else {
			for k, v := range it.Labels {
				old.PutLabel(k, v)
			}
		}
	}
	out := make([]*core.Item, 0, len(seen))
	for _, id := range order {
		out = append(out, seen[id])
	}
	return out
}

func labelPriority(it *core.Item) int {
	lbl, ok := it.Labels["recall_priority"]
	if !ok {
		return 999
	}
	p, err := strconv.Atoi(lbl.Value)
	if err != nil {
		return 999
	}
	return p
}
