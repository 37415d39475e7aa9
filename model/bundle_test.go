package model

import (
	"context"
	"testing"
	"time"

	"github.com/scentify/scentkit/core"
	"github.com/scentify/scentkit/feature"
	"github.com/scentify/scentkit/store"
)

func fittedBundle(t *testing.T) *Bundle {
	t.Helper()
	X := [][]float64{{1, 0}, {0, 1}, {1, 1}, {0, 0}}
	y := []int{1, 0, 1, 0}

	scaler := &feature.StandardScaler{}
	scaled, err := scaler.FitTransform(X)
	if err != nil {
		t.Fatalf("标准化失败: %v", err)
	}
	clf := NewLogisticModel()
	if err := clf.Fit(scaled, y); err != nil {
		t.Fatalf("拟合失败: %v", err)
	}
	return &Bundle{
		ModelType:        core.ModelLogisticRegression,
		FeatureSignature: "v1-test",
		FeatureNames:     []string{"a", "b"},
		Scaler:           scaler,
		Classifier:       clf,
		TrainedAt:        time.Now(),
	}
}

// scaler 与分类器成对持久化，加载后打分结果与保存前一致。
func TestBundleStore_Roundtrip(t *testing.T) {
	memStore := store.NewMemoryStore()
	defer memStore.Close()
	ctx := context.Background()

	bundle := fittedBundle(t)
	bundles := NewBundleStore(memStore, "")
	if err := bundles.Save(ctx, bundle); err != nil {
		t.Fatalf("保存失败: %v", err)
	}

	loaded, err := bundles.Load(ctx, "v1-test")
	if err != nil {
		t.Fatalf("加载失败: %v", err)
	}
	if loaded == nil {
		t.Fatal("应加载到 bundle")
	}

	x := []float64{1, 0}
	want, err := bundle.Score(x)
	if err != nil {
		t.Fatal(err)
	}
	got, err := loaded.Score(x)
	if err != nil {
		t.Fatal(err)
	}
	if want != got {
		t.Errorf("加载后打分不一致: %v != %v", want, got)
	}
}

// 缺失按 (nil, nil) 处理，不是错误。
func TestBundleStore_Absent(t *testing.T) {
	memStore := store.NewMemoryStore()
	defer memStore.Close()

	bundles := NewBundleStore(memStore, "")
	loaded, err := bundles.Load(context.Background(), "")
	if err != nil {
		t.Fatalf("缺失不应报错: %v", err)
	}
	if loaded != nil {
		t.Fatal("缺失应返回 nil")
	}
}

// 特征版本签名不匹配视为缺失，避免旧统计量变换新特征。
func TestBundleStore_SignatureMismatch(t *testing.T) {
	memStore := store.NewMemoryStore()
	defer memStore.Close()
	ctx := context.Background()

	bundles := NewBundleStore(memStore, "")
	if err := bundles.Save(ctx, fittedBundle(t)); err != nil {
		t.Fatal(err)
	}

	loaded, err := bundles.Load(ctx, "v2-other")
	if err != nil {
		t.Fatalf("签名不匹配不应报错: %v", err)
	}
	if loaded != nil {
		t.Fatal("签名不匹配应返回 nil")
	}
}

// 损坏的持久化按缺失处理，调用方重新训练即可。
func TestBundleStore_Corrupt(t *testing.T) {
	memStore := store.NewMemoryStore()
	defer memStore.Close()
	ctx := context.Background()

	if err := memStore.Set(ctx, DefaultBundleKey, []byte("{not json")); err != nil {
		t.Fatal(err)
	}
	bundles := NewBundleStore(memStore, "")
	loaded, err := bundles.Load(ctx, "")
	if err != nil {
		t.Fatalf("损坏数据不应报错: %v", err)
	}
	if loaded != nil {
		t.Fatal("损坏数据应返回 nil")
	}
}

func TestBundleStore_SaveValidation(t *testing.T) {
	memStore := store.NewMemoryStore()
	defer memStore.Close()

	bundles := NewBundleStore(memStore, "")
	if err := bundles.Save(context.Background(), &Bundle{}); err == nil {
		t.Fatal("缺少分类器/标准化器应返回错误")
	}
}
