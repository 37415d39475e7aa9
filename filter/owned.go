package filter

import (
	"context"

	"github.com/scentify/scentkit/core"
)

// OwnedFilter 剔除用户已拥有的香水：推荐结果绝不包含库存内的 id。
// IDs 非空时用它；否则每次从 rctx.Inventory 现算（目录快照量级下开销可忽略）。
type OwnedFilter struct {
	// IDs 是预先物化的库存 id 集合（可选）。
	IDs map[string]struct{}
}

// NewOwnedFilter 从库存构建过滤器。
func NewOwnedFilter(inventory []*core.Perfume) *OwnedFilter {
	return &OwnedFilter{IDs: core.OwnedIDSet(inventory)}
}

func (f *OwnedFilter) Name() string {
	return "filter.owned"
}

func (f *OwnedFilter) ShouldFilter(
	_ context.Context,
	rctx *core.RecommendContext,
	item *core.Item,
) (bool, error) {
	if item == nil {
		return true, nil
	}

	ids := f.IDs
	if ids == nil && rctx != nil {
		ids = rctx.OwnedIDs()
	}
	if ids == nil {
		return false, nil
	}

	_, owned := ids[item.ID]
	return owned, nil
}
