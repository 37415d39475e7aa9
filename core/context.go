package core

import "github.com/scentify/scentkit/pkg/utils"

// RecommendContext 承载单次推荐请求的全部输入，贯穿整个 Pipeline 透传。
// 引擎不读任何全局状态：库存、配置、请求参数都从这里进来。
type RecommendContext struct {
	UserID string

	// Inventory 是用户当前拥有的香水集合（正样本来源）。
	// 引擎只读，不会修改；增删由外部的 inventory.Store 负责。
	Inventory []*Perfume

	// Labels 是请求级标签，可驱动 Pipeline 行为。
	Labels map[string]utils.Label

	// Params 请求级上下文参数（query、filters 等）。
	Params map[string]any
}

// OwnedIDs 返回库存的 id 集合，用于候选排除。
func (rctx *RecommendContext) OwnedIDs() map[string]struct{} {
	if rctx == nil {
		return nil
	}
	return OwnedIDSet(rctx.Inventory)
}

// PutLabel 写入请求级 Label。
func (rctx *RecommendContext) PutLabel(key string, lbl utils.Label) {
	if rctx.Labels == nil {
		rctx.Labels = make(map[string]utils.Label)
	}
	if old, ok := rctx.Labels[key]; ok {
		rctx.Labels[key] = utils.MergeLabel(old, lbl)
		return
	}
	rctx.Labels[key] = lbl
}

// GetLabel 获取请求级 Label。
func (rctx *RecommendContext) GetLabel(key string) (utils.Label, bool) {
	if rctx.Labels == nil {
		return utils.Label{}, false
	}
	lbl, ok := rctx.Labels[key]
	return lbl, ok
}
