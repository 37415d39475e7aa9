// Package ranking 维护点击热度计数，并提供按热度排序的能力。
//
// 后端为 KeyValueStore 时走有序集合（ZIncrBy/ZScore），
// 否则把整张计数表序列化成 JSON 存单个 key（文件持久化场景）。
package ranking

import (
	"context"
	"encoding/json"
	"sort"

	"github.com/scentify/scentkit/core"
)

// DefaultClickKey 点击计数的默认存储 key。
const DefaultClickKey = "ranking:clicks"

// ClickStore 记录并查询香水的点击热度。
type ClickStore struct {
	Store core.Store
	Key   string
}

// NewClickStore 创建点击热度存储，key 为空时使用 DefaultClickKey。
func NewClickStore(s core.Store, key string) *ClickStore {
	if key == "" {
		key = DefaultClickKey
	}
	return &ClickStore{Store: s, Key: key}
}

// RecordClick 给指定香水的点击计数 +1，返回新计数。
func (c *ClickStore) RecordClick(ctx context.Context, perfumeID string) (int64, error) {
	if kv, ok := c.Store.(core.KeyValueStore); ok {
		score, err := kv.ZIncrBy(ctx, c.Key, 1, perfumeID)
		if err != nil && !core.IsStoreNotSupported(err) {
			return 0, err
		}
		if err == nil {
			return int64(score), nil
		}
	}

	counts, err := c.loadCounts(ctx)
	if err != nil {
		return 0, err
	}
	counts[perfumeID]++
	if err := c.saveCounts(ctx, counts); err != nil {
		return 0, err
	}
	return counts[perfumeID], nil
}

// Count 查询单个香水的点击计数，未记录过返回 0。
func (c *ClickStore) Count(ctx context.Context, perfumeID string) (int64, error) {
	if kv, ok := c.Store.(core.KeyValueStore); ok {
		score, err := kv.ZScore(ctx, c.Key, perfumeID)
		if err == nil {
			return int64(score), nil
		}
		if core.IsStoreNotFound(err) {
			return 0, nil
		}
		if !core.IsStoreNotSupported(err) {
			return 0, err
		}
	}

	counts, err := c.loadCounts(ctx)
	if err != nil {
		return 0, err
	}
	return counts[perfumeID], nil
}

// Rankings 返回完整的点击计数表。
func (c *ClickStore) Rankings(ctx context.Context) (map[string]int64, error) {
	if kv, ok := c.Store.(core.KeyValueStore); ok {
		members, err := kv.ZRange(ctx, c.Key, 0, -1)
		if err == nil {
			counts := make(map[string]int64, len(members))
			for _, m := range members {
				score, err := kv.ZScore(ctx, c.Key, m)
				if err != nil {
					continue
				}
				counts[m] = int64(score)
			}
			return counts, nil
		}
		if !core.IsStoreNotSupported(err) && !core.IsStoreNotFound(err) {
			return nil, err
		}
	}
	return c.loadCounts(ctx)
}

// SortByPopularity 按点击数降序排序香水列表，同计数保持输入原序。
// 不修改入参，返回新切片。
func (c *ClickStore) SortByPopularity(ctx context.Context, perfumes []*core.Perfume) ([]*core.Perfume, error) {
	counts, err := c.Rankings(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]*core.Perfume, len(perfumes))
	copy(out, perfumes)
	sort.SliceStable(out, func(i, j int) bool {
		return counts[out[i].ID] > counts[out[j].ID]
	})
	return out, nil
}

func (c *ClickStore) loadCounts(ctx context.Context) (map[string]int64, error) {
	raw, err := c.Store.Get(ctx, c.Key)
	if core.IsStoreNotFound(err) {
		return make(map[string]int64), nil
	}
	if err != nil {
		return nil, err
	}
	counts := make(map[string]int64)
	if err := json.Unmarshal(raw, &counts); err != nil {
		// 计数文件损坏时从零开始，不让热度影响主流程
		return make(map[string]int64), nil
	}
	return counts, nil
}

func (c *ClickStore) saveCounts(ctx context.Context, counts map[string]int64) error {
	raw, err := json.Marshal(counts)
	if err != nil {
		return err
	}
	return c.Store.Set(ctx, c.Key, raw)
}
