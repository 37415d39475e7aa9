package filter

import (
	"context"
	"sync"

	"github.com/bits-and-blooms/bloom/v3"

	"github.com/scentify/scentkit/core"
)

// SeenFilter 用布隆过滤器剔除用户近期点开过的香水，避免反复推同一批。
// 可选节点，默认链路不启用（已看过 ≠ 不喜欢）。
//
// 布隆过滤器存在误判：返回 true 只代表"可能看过"，会把少量
// 没看过的候选一并滤掉；返回 false 则一定没看过。对推荐场景
// 这种偏保守的误判是可接受的。
type SeenFilter struct {
	mu    sync.RWMutex
	bloom *bloom.BloomFilter
}

// NewSeenFilter 创建曝光过滤器。
// capacity 是预期元素数量，fpRate 是期望误判率（如 0.01）。
func NewSeenFilter(capacity uint, fpRate float64) *SeenFilter {
	return &SeenFilter{
		bloom: bloom.NewWithEstimates(capacity, fpRate),
	}
}

// Add 记录一次曝光。
func (f *SeenFilter) Add(perfumeID string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.bloom.AddString(perfumeID)
}

func (f *SeenFilter) Name() string {
	return "filter.seen"
}

func (f *SeenFilter) ShouldFilter(
	_ context.Context,
	_ *core.RecommendContext,
	item *core.Item,
) (bool, error) {
	if item == nil {
		return true, nil
	}
	f.mu.RLock()
	defer f.mu.RUnlock()
	return f.bloom.TestString(item.ID), nil
}
