// Package builders 注册全部内置 Node 的配置构建器。
// 仅需要副作用时按惯例空白导入本包。
package builders

import (
	"fmt"

	"github.com/scentify/scentkit/config"
	"github.com/scentify/scentkit/filter"
	"github.com/scentify/scentkit/pipeline"
	"github.com/scentify/scentkit/pkg/conv"
	"github.com/scentify/scentkit/rerank"
)

func init() {
	config.Register("filter", BuildFilterNode)
	config.Register("rerank.diversity", BuildDiversityNode)
	config.Register("rerank.topn", BuildTopNNode)
	config.Register("postprocess.explain", BuildExplainNode)
	config.Register("recall.hot", BuildHotNode)
	config.Register("rank.model", BuildModelNode)
}

// BuildFilterNode 构建过滤节点。支持的 filters 子类型：
// threshold（min_score）、dsl（expr）。owned 过滤依赖请求上下文的库存，
// 不需要配置，引擎直接构造。
func BuildFilterNode(cfg map[string]interface{}) (pipeline.Node, error) {
	filtersConfig, ok := cfg["filters"].([]interface{})
	if !ok {
		return nil, fmt.Errorf("filters not found or invalid")
	}
	filters := make([]filter.Filter, 0, len(filtersConfig))
	for _, fc := range filtersConfig {
		filterMap, ok := fc.(map[string]interface{})
		if !ok {
			continue
		}
		switch filterType := conv.ConfigGet(filterMap, "type", ""); filterType {
		case "threshold":
			filters = append(filters, &filter.ThresholdFilter{
				MinScore: conv.ConfigGetFloat64(filterMap, "min_score", 0),
			})
		case "dsl":
			expr := conv.ConfigGet(filterMap, "expr", "")
			if expr == "" {
				return nil, fmt.Errorf("dsl filter requires expr")
			}
			filters = append(filters, &filter.DSLFilter{Expr: expr})
		case "owned":
			filters = append(filters, &filter.OwnedFilter{})
		default:
			return nil, fmt.Errorf("unknown filter type: %s", filterType)
		}
	}
	return &filter.FilterNode{Filters: filters}, nil
}

func BuildDiversityNode(cfg map[string]interface{}) (pipeline.Node, error) {
	return &rerank.Diversity{
		TopN: int(conv.ConfigGetInt64(cfg, "top_n", 10)),
	}, nil
}

func BuildTopNNode(cfg map[string]interface{}) (pipeline.Node, error) {
	return &rerank.TopN{
		N: int(conv.ConfigGetInt64(cfg, "n", 10)),
	}, nil
}

func BuildExplainNode(_ map[string]interface{}) (pipeline.Node, error) {
	return &rerank.Explain{}, nil
}

func BuildHotNode(_ map[string]interface{}) (pipeline.Node, error) {
	return nil, fmt.Errorf("hot node requires store and catalog wiring, construct recall.Hot directly (supported: %v)", config.SupportedTypes())
}

func BuildModelNode(_ map[string]interface{}) (pipeline.Node, error) {
	return nil, fmt.Errorf("model node requires a trained bundle, construct rank.ModelNode directly (supported: %v)", config.SupportedTypes())
}
