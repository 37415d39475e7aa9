package recall

import (
	"context"
	"encoding/json"
	"sort"

	"github.com/scentify/scentkit/core"
	"github.com/scentify/scentkit/pipeline"
	"github.com/scentify/scentkit/pkg/utils"
)

// Hot 是热门召回源：按点击热度取 TopN 香水 id，再经目录补全记录。
// - 如果 Store 实现了 KeyValueStore，优先使用 ZRange（有序集合，按点击数排序）
// - 否则从普通 key 读取 JSON 计数 map，内存排序
// - 目录中查不到的 id 跳过（热度数据可能比目录快照旧）
// Hot 同时实现了 Source 和 Node 接口，可以直接在 Pipeline 中使用。
type Hot struct {
	Store   core.Store
	Catalog core.CatalogStore
	Key     string // 热度数据 key，例如 "perfume:rankings"
	Limit   int    // 取前多少名，默认 100
}

func (r *Hot) Name() string        { return "recall.hot" }
func (r *Hot) Kind() pipeline.Kind { return pipeline.KindRecall }

// Process 实现 Node 接口，直接调用 Recall。
func (r *Hot) Process(
	ctx context.Context,
	rctx *core.RecommendContext,
	_ []*core.Item,
) ([]*core.Item, error) {
	return r.Recall(ctx, rctx)
}

// Recall 实现 Source 接口。
func (r *Hot) Recall(
	ctx context.Context,
	_ *core.RecommendContext,
) ([]*core.Item, error) {
	if r.Store == nil || r.Key == "" || r.Catalog == nil {
		return nil, nil
	}

	limit := r.Limit
	if limit <= 0 {
		limit = 100
	}

	var ids []string
	if kvStore, ok := r.Store.(core.KeyValueStore); ok {
		members, err := kvStore.ZRange(ctx, r.Key, 0, int64(limit-1))
		if err == nil {
			ids = members
		}
	} else {
		data, err := r.Store.Get(ctx, r.Key)
		if err == nil {
			var counts map[string]int64
			if json.Unmarshal(data, &counts) == nil {
				ids = topByCount(counts, limit)
			}
		}
	}
	if len(ids) == 0 {
		return nil, nil
	}

	perfumes, err := r.Catalog.AllItems(ctx)
	if err != nil {
		return nil, err
	}
	byID := make(map[string]*core.Perfume, len(perfumes))
	for _, p := range perfumes {
		if p != nil {
			byID[p.ID] = p
		}
	}

	out := make([]*core.Item, 0, len(ids))
	for _, id := range ids {
		p, ok := byID[id]
		if !ok {
			continue
		}
		it := core.NewItem(p)
		it.PutLabel("recall_source", utils.Label{Value: r.Name(), Source: "recall"})
		out = append(out, it)
	}
	return out, nil
}

// topByCount 按计数降序取前 n 个 id，计数相同按 id 定序保证稳定。
func topByCount(counts map[string]int64, n int) []string {
	ids := make([]string, 0, len(counts))
	for id := range counts {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool {
		if counts[ids[i]] == counts[ids[j]] {
			return ids[i] < ids[j]
		}
		return counts[ids[i]] > counts[ids[j]]
	})
	if n < len(ids) {
		ids = ids[:n]
	}
	return ids
}
