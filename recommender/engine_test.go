package recommender

import (
	"context"
	"fmt"
	"testing"

	"github.com/scentify/scentkit/catalog"
	"github.com/scentify/scentkit/core"
	"github.com/scentify/scentkit/store"
)

func enginePerfume(name, scentType string, accords ...string) *core.Perfume {
	return &core.Perfume{
		ID:          core.PerfumeID(name),
		Name:        name,
		Gender:      core.GenderUnisex,
		ScentType:   scentType,
		MainAccords: accords,
		Longevity:   "Moderate",
		Sillage:     "Moderate",
	}
}

func engineCatalog() []*core.Perfume {
	return []*core.Perfume{
		enginePerfume("Cedar Trail", "Woody", "woody", "aromatic"),
		enginePerfume("Oud Royale", "Woody", "oud", "woody"),
		enginePerfume("Rose Garden", "Floral", "rose", "floral"),
		enginePerfume("Citrus Morning", "Citrus", "citrus", "fresh"),
		enginePerfume("Vanilla Sky", "Gourmand", "vanilla", "sweet"),
		enginePerfume("Sea Breeze", "Fresh", "aquatic", "fresh"),
		enginePerfume("Amber Dusk", "Oriental", "amber", "warm spicy"),
		enginePerfume("Forest Walk", "Green", "green", "herbal"),
	}
}

func woodyInventory() []*core.Perfume {
	return []*core.Perfume{
		enginePerfume("Own Sandalwood", "Woody", "woody", "sandalwood"),
		enginePerfume("Own Vetiver", "Woody", "woody", "vetiver", "earthy"),
	}
}

func newTestEngine(t *testing.T) (*Engine, *store.MemoryStore) {
	t.Helper()
	memStore := store.NewMemoryStore()
	t.Cleanup(func() { memStore.Close() })

	cfg := core.DefaultMLConfig()
	cfg.RandomState = 42
	cfg.MinRecommendationProbability = 0 // 阈值行为由 filter 包单独覆盖
	return New(catalog.NewStatic(engineCatalog()), memStore, cfg), memStore
}

// 端到端：训练 + 推荐。已拥有的香水绝不出现，结果按分数降序且带解释。
func TestEngine_Recommend(t *testing.T) {
	engine, _ := newTestEngine(t)
	ctx := context.Background()
	inventory := woodyInventory()

	items, err := engine.Recommend(ctx, inventory, DefaultRecommendOptions())
	if err != nil {
		t.Fatalf("推荐失败: %v", err)
	}
	if len(items) == 0 {
		t.Fatal("应有推荐结果")
	}

	owned := core.OwnedIDSet(inventory)
	for i, it := range items {
		if _, ok := owned[it.ID]; ok {
			t.Errorf("已拥有的 %s 不应出现在结果中", it.ID)
		}
		if it.Score < 0 || it.Score > 1 {
			t.Errorf("%s 分数 %v 超出 [0,1]", it.ID, it.Score)
		}
		if it.Explanation() == "" {
			t.Errorf("%s 缺少解释文案", it.ID)
		}
		if i > 0 && items[i].Score > items[i-1].Score {
			// 多样性重排可能调整次序，但截断前的排序与回填都保持分数优先；
			// 候选不超过 TopN 时重排是 no-op，这里应严格降序
			t.Errorf("位置 %d 分数 %v 高于前一位 %v", i, items[i].Score, items[i-1].Score)
		}
	}
}

// 库存低于门槛时返回空结果，而不是错误。
func TestEngine_Gate(t *testing.T) {
	engine, _ := newTestEngine(t)
	items, err := engine.Recommend(context.Background(),
		[]*core.Perfume{enginePerfume("Solo", "Woody", "woody")}, DefaultRecommendOptions())
	if err != nil {
		t.Fatalf("门槛不足不应报错: %v", err)
	}
	if items != nil {
		t.Fatalf("门槛不足应返回空结果，实际 %d 条", len(items))
	}
}

// 目录为空时返回空结果。
func TestEngine_EmptyCatalog(t *testing.T) {
	memStore := store.NewMemoryStore()
	defer memStore.Close()
	cfg := core.DefaultMLConfig()
	cfg.RandomState = 42
	engine := New(catalog.NewStatic(nil), memStore, cfg)

	items, err := engine.Recommend(context.Background(), woodyInventory(), DefaultRecommendOptions())
	if err != nil {
		t.Fatalf("空目录不应报错: %v", err)
	}
	if items != nil {
		t.Fatal("空目录应返回空结果")
	}
}

// 固定种子时两次推荐结果完全一致。
func TestEngine_Deterministic(t *testing.T) {
	run := func() []string {
		engine, _ := newTestEngine(t)
		items, err := engine.Recommend(context.Background(), woodyInventory(), DefaultRecommendOptions())
		if err != nil {
			t.Fatalf("推荐失败: %v", err)
		}
		ids := make([]string, 0, len(items))
		for _, it := range items {
			ids = append(ids, fmt.Sprintf("%s:%.6f", it.ID, it.Score))
		}
		return ids
	}

	a, b := run(), run()
	if len(a) != len(b) {
		t.Fatalf("两次结果条数不同: %d != %d", len(a), len(b))
	}
	for i := range a {
		if a[i] != b[i] {
			t.Errorf("位置 %d 不一致: %s != %s", i, a[i], b[i])
		}
	}
}

// TopN 限制结果条数。
func TestEngine_TopN(t *testing.T) {
	engine, _ := newTestEngine(t)
	items, err := engine.Recommend(context.Background(), woodyInventory(),
		RecommendOptions{TopN: 3, Diversify: true})
	if err != nil {
		t.Fatal(err)
	}
	if len(items) > 3 {
		t.Fatalf("期望最多 3 条，实际 %d", len(items))
	}
}

// 显式训练后模型落盘，Train 返回训练统计。
func TestEngine_Train(t *testing.T) {
	engine, _ := newTestEngine(t)
	result, err := engine.Train(context.Background(), woodyInventory())
	if err != nil {
		t.Fatalf("训练失败: %v", err)
	}
	if result.Positives != 2 || result.Negatives != 4 {
		t.Errorf("样本量错误: %d 正 / %d 负", result.Positives, result.Negatives)
	}

	loaded, err := engine.Bundles.Load(context.Background(), engine.Extractor.Signature())
	if err != nil {
		t.Fatal(err)
	}
	if loaded == nil {
		t.Fatal("训练后应能加载到持久化模型")
	}
}

func TestEngine_Insights(t *testing.T) {
	engine, _ := newTestEngine(t)
	insights := engine.Insights(context.Background(), woodyInventory())

	if insights.InventorySize != 2 {
		t.Errorf("库存规模期望 2，实际 %d", insights.InventorySize)
	}
	if !insights.CanTrainModel {
		t.Error("2 瓶库存应达到训练门槛")
	}
	if len(insights.TopPreferences) == 0 {
		t.Fatal("应有偏好统计")
	}
	if insights.TopPreferences[0].Name != "Woody" {
		t.Errorf("最高偏好应为 Woody（首字母大写），实际 %s", insights.TopPreferences[0].Name)
	}
	if insights.TopPreferences[0].Count != 2 {
		t.Errorf("woody 计数期望 2，实际 %d", insights.TopPreferences[0].Count)
	}
}
