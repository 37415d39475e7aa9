package rank

import (
	"context"
	"testing"

	"github.com/scentify/scentkit/core"
	"github.com/scentify/scentkit/feature"
	"github.com/scentify/scentkit/ml"
	"github.com/scentify/scentkit/model"
)

func trainedBundle(t *testing.T) *model.Bundle {
	t.Helper()
	extractor := feature.NewPerfumeExtractor()
	inventory := []*core.Perfume{
		{ID: "api_own1", MainAccords: []string{"woody", "sandalwood"}},
		{ID: "api_own2", MainAccords: []string{"woody", "earthy"}},
	}
	catalog := []*core.Perfume{
		{ID: "api_c1", MainAccords: []string{"floral"}},
		{ID: "api_c2", MainAccords: []string{"citrus"}},
		{ID: "api_c3", MainAccords: []string{"sweet"}},
		{ID: "api_c4", MainAccords: []string{"aquatic"}},
	}

	cfg := core.DefaultMLConfig()
	cfg.RandomState = 42
	trainer := ml.NewTrainer(extractor, nil, cfg)
	result, err := trainer.Train(context.Background(), inventory, catalog)
	if err != nil {
		t.Fatalf("训练失败: %v", err)
	}
	return result.Bundle
}

func TestModelNode_Process(t *testing.T) {
	bundle := trainedBundle(t)
	node := &ModelNode{Bundle: bundle}

	items := []*core.Item{
		core.NewItem(&core.Perfume{ID: "api_w", MainAccords: []string{"woody"}}),
		core.NewItem(&core.Perfume{ID: "api_f", MainAccords: []string{"floral"}}),
	}
	out, err := node.Process(context.Background(), nil, items)
	if err != nil {
		t.Fatal(err)
	}
	if len(out) != 2 {
		t.Fatalf("期望 2 条，实际 %d", len(out))
	}

	// 按分数降序
	if out[0].Score < out[1].Score {
		t.Errorf("应按分数降序: %v < %v", out[0].Score, out[1].Score)
	}
	// 木质调更接近正样本
	for _, it := range out {
		if it.ID == "api_w" && it.Score <= 0.5 {
			t.Errorf("木质候选分数应偏高，实际 %v", it.Score)
		}
		if len(it.Features) == 0 {
			t.Errorf("%s 应带特征 map", it.ID)
		}
		if _, ok := it.Labels["rank_model"]; !ok {
			t.Errorf("%s 缺少 rank_model 标签", it.ID)
		}
	}
}

// 没有模型时原样透传。
func TestModelNode_NoBundle(t *testing.T) {
	node := &ModelNode{}
	items := []*core.Item{core.NewItem(&core.Perfume{ID: "api_x"})}
	out, err := node.Process(context.Background(), nil, items)
	if err != nil {
		t.Fatal(err)
	}
	if len(out) != 1 {
		t.Fatalf("应原样透传，实际 %d 条", len(out))
	}
}
