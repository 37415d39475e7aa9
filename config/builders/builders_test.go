package builders

import (
	"testing"

	"github.com/scentify/scentkit/config"
	"github.com/scentify/scentkit/filter"
	"github.com/scentify/scentkit/pipeline"
	"github.com/scentify/scentkit/rerank"
)

func TestRegisteredTypes(t *testing.T) {
	supported := config.SupportedTypes()
	want := []string{"filter", "postprocess.explain", "rerank.diversity", "rerank.topn"}
	for _, typ := range want {
		found := false
		for _, s := range supported {
			if s == typ {
				found = true
				break
			}
		}
		if !found {
			t.Errorf("类型 %s 未注册，已注册: %v", typ, supported)
		}
	}
}

func TestBuildFilterNode(t *testing.T) {
	node, err := BuildFilterNode(map[string]interface{}{
		"filters": []interface{}{
			map[string]interface{}{"type": "threshold", "min_score": 0.5},
			map[string]interface{}{"type": "owned"},
			map[string]interface{}{"type": "dsl", "expr": `item.gender != "Male"`},
		},
	})
	if err != nil {
		t.Fatalf("构建失败: %v", err)
	}
	fn, ok := node.(*filter.FilterNode)
	if !ok {
		t.Fatalf("类型错误: %T", node)
	}
	if len(fn.Filters) != 3 {
		t.Fatalf("期望 3 个过滤器，实际 %d", len(fn.Filters))
	}
	threshold, ok := fn.Filters[0].(*filter.ThresholdFilter)
	if !ok || threshold.MinScore != 0.5 {
		t.Errorf("threshold 配置错误: %+v", fn.Filters[0])
	}
}

func TestBuildFilterNode_Errors(t *testing.T) {
	if _, err := BuildFilterNode(map[string]interface{}{}); err == nil {
		t.Error("缺少 filters 应返回错误")
	}
	_, err := BuildFilterNode(map[string]interface{}{
		"filters": []interface{}{
			map[string]interface{}{"type": "unknown"},
		},
	})
	if err == nil {
		t.Error("未知过滤器类型应返回错误")
	}
}

func TestBuildDiversityNode(t *testing.T) {
	node, err := BuildDiversityNode(map[string]interface{}{"top_n": 20})
	if err != nil {
		t.Fatal(err)
	}
	d, ok := node.(*rerank.Diversity)
	if !ok || d.TopN != 20 {
		t.Errorf("diversity 配置错误: %+v", node)
	}
}

func TestBuildPipelineFromConfig(t *testing.T) {
	cfg := &pipeline.Config{}
	cfg.Pipeline.Nodes = []pipeline.NodeConfig{
		{Type: "rerank.diversity", Config: map[string]interface{}{"top_n": 10}},
		{Type: "postprocess.explain"},
		{Type: "rerank.topn", Config: map[string]interface{}{"n": 10}},
	}

	if err := config.ValidatePipelineConfig(cfg); err != nil {
		t.Fatalf("校验失败: %v", err)
	}
	p, err := cfg.BuildPipeline(config.DefaultFactory())
	if err != nil {
		t.Fatalf("构建失败: %v", err)
	}
	if len(p.Nodes) != 3 {
		t.Fatalf("期望 3 个节点，实际 %d", len(p.Nodes))
	}
}

// 需要外部依赖的节点在配置驱动下明确报错而不是静默降级。
func TestBuildServiceNodes(t *testing.T) {
	if _, err := BuildHotNode(nil); err == nil {
		t.Error("recall.hot 应提示需要直接构造")
	}
	if _, err := BuildModelNode(nil); err == nil {
		t.Error("rank.model 应提示需要直接构造")
	}
}
