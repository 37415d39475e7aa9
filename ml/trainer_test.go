package ml

import (
	"context"
	"testing"

	"github.com/scentify/scentkit/core"
	"github.com/scentify/scentkit/feature"
	"github.com/scentify/scentkit/model"
	"github.com/scentify/scentkit/store"
)

func trainPerfume(name string, accords ...string) *core.Perfume {
	return &core.Perfume{
		ID:          core.PerfumeID(name),
		Name:        name,
		MainAccords: accords,
		Longevity:   "Moderate",
		Sillage:     "Moderate",
	}
}

func testCatalog() []*core.Perfume {
	return []*core.Perfume{
		trainPerfume("C1", "citrus", "fresh"),
		trainPerfume("C2", "floral", "sweet"),
		trainPerfume("C3", "amber", "vanilla"),
		trainPerfume("C4", "green", "herbal"),
		trainPerfume("C5", "leather", "smoky"),
		trainPerfume("C6", "aquatic", "fresh"),
	}
}

// 库存低于门槛时不训练，返回 INSUFFICIENT_DATA。
func TestTrainer_Gate(t *testing.T) {
	cfg := core.DefaultMLConfig()
	trainer := NewTrainer(feature.NewPerfumeExtractor(), nil, cfg)

	_, err := trainer.Train(context.Background(),
		[]*core.Perfume{trainPerfume("Only One", "woody")}, testCatalog())
	if !core.IsInsufficientData(err) {
		t.Fatalf("期望 INSUFFICIENT_DATA，实际 %v", err)
	}
}

func TestTrainer_Train(t *testing.T) {
	memStore := store.NewMemoryStore()
	defer memStore.Close()

	extractor := feature.NewPerfumeExtractor()
	bundles := model.NewBundleStore(memStore, "")
	cfg := core.DefaultMLConfig()
	cfg.RandomState = 42
	trainer := NewTrainer(extractor, bundles, cfg)

	inventory := []*core.Perfume{
		trainPerfume("Own A", "woody", "aromatic"),
		trainPerfume("Own B", "woody", "earthy"),
	}
	result, err := trainer.Train(context.Background(), inventory, testCatalog())
	if err != nil {
		t.Fatalf("训练失败: %v", err)
	}
	if result.Positives != 2 {
		t.Errorf("期望 2 个正样本，实际 %d", result.Positives)
	}
	if result.Negatives != 4 {
		t.Errorf("期望 4 个负样本，实际 %d", result.Negatives)
	}
	if len(result.Importance) != extractor.Dim() {
		t.Errorf("重要性长度 %d != 特征维数 %d", len(result.Importance), extractor.Dim())
	}

	// 训练产物已落盘且可按签名加载
	loaded, err := bundles.Load(context.Background(), extractor.Signature())
	if err != nil {
		t.Fatalf("加载 bundle 失败: %v", err)
	}
	if loaded == nil {
		t.Fatal("训练后应能加载到 bundle")
	}
	if loaded.Classifier.Name() != "logistic_regression" {
		t.Errorf("期望 logistic_regression，实际 %s", loaded.Classifier.Name())
	}
}

// 正样本打分应不低于随机负样本（模型学到了库存偏好）。
func TestTrainer_ModelPrefersInventory(t *testing.T) {
	extractor := feature.NewPerfumeExtractor()
	cfg := core.DefaultMLConfig()
	cfg.RandomState = 42
	trainer := NewTrainer(extractor, nil, cfg)

	inventory := []*core.Perfume{
		trainPerfume("Own A", "woody", "aromatic", "sandalwood"),
		trainPerfume("Own B", "woody", "earthy", "vetiver"),
		trainPerfume("Own C", "woody", "smoky", "oud"),
	}
	result, err := trainer.Train(context.Background(), inventory, testCatalog())
	if err != nil {
		t.Fatalf("训练失败: %v", err)
	}

	woody, err := result.Bundle.Score(extractor.Extract(trainPerfume("New Woody", "woody", "earthy")))
	if err != nil {
		t.Fatalf("打分失败: %v", err)
	}
	floral, err := result.Bundle.Score(extractor.Extract(trainPerfume("New Floral", "floral", "sweet")))
	if err != nil {
		t.Fatalf("打分失败: %v", err)
	}
	if woody <= floral {
		t.Errorf("木质调应得分更高: woody=%v floral=%v", woody, floral)
	}
}

func TestTrainer_DecisionTree(t *testing.T) {
	cfg := core.DefaultMLConfig()
	cfg.ModelType = core.ModelDecisionTree
	cfg.RandomState = 7
	trainer := NewTrainer(feature.NewPerfumeExtractor(), nil, cfg)

	inventory := []*core.Perfume{
		trainPerfume("Own A", "woody"),
		trainPerfume("Own B", "woody", "earthy"),
	}
	result, err := trainer.Train(context.Background(), inventory, testCatalog())
	if err != nil {
		t.Fatalf("训练失败: %v", err)
	}
	if result.Bundle.Classifier.Name() != "decision_tree" {
		t.Errorf("期望 decision_tree，实际 %s", result.Bundle.Classifier.Name())
	}
}
