package ml

import (
	"testing"

	"github.com/scentify/scentkit/core"
	"github.com/scentify/scentkit/feature"
)

func makePerfumes(names ...string) []*core.Perfume {
	out := make([]*core.Perfume, 0, len(names))
	for _, name := range names {
		out = append(out, &core.Perfume{
			ID:          core.PerfumeID(name),
			Name:        name,
			MainAccords: []string{"woody"},
		})
	}
	return out
}

func TestDatasetBuilder_Build(t *testing.T) {
	inventory := makePerfumes("A", "B")
	catalog := append(makePerfumes("C", "D", "E", "F", "G", "H"), inventory...)

	b := &DatasetBuilder{Extractor: feature.NewPerfumeExtractor(), Ratio: 2, Seed: 42}
	ds := b.Build(inventory, catalog)

	// 2 正样本 + 2*2 负样本
	if ds.Len() != 6 {
		t.Fatalf("期望 6 个样本，实际 %d", ds.Len())
	}
	positives := 0
	for _, y := range ds.Y {
		positives += y
	}
	if positives != 2 {
		t.Errorf("期望 2 个正样本，实际 %d", positives)
	}
}

// 已拥有的香水绝不进入负样本池。
func TestDatasetBuilder_ExcludesOwned(t *testing.T) {
	inventory := makePerfumes("A", "B", "C")
	// 目录只包含库存内的记录，负样本池为空
	b := &DatasetBuilder{Extractor: feature.NewPerfumeExtractor(), Ratio: 2, Seed: 1}
	ds := b.Build(inventory, inventory)

	if ds.Len() != 3 {
		t.Fatalf("负样本池为空时应只有正样本，实际 %d 个样本", ds.Len())
	}
	for _, y := range ds.Y {
		if y != 1 {
			t.Fatal("不应出现负样本")
		}
	}
}

// 负样本池小于目标数量时全取，不报错。
func TestDatasetBuilder_SmallPool(t *testing.T) {
	inventory := makePerfumes("A", "B", "C")
	catalog := append(makePerfumes("D"), inventory...)

	b := &DatasetBuilder{Extractor: feature.NewPerfumeExtractor(), Ratio: 2, Seed: 1}
	ds := b.Build(inventory, catalog)

	// 3 正 + 1 负（目标 6 但池里只有 1 个）
	if ds.Len() != 4 {
		t.Fatalf("期望 4 个样本，实际 %d", ds.Len())
	}
}

func TestDatasetBuilder_EmptyInventory(t *testing.T) {
	b := &DatasetBuilder{Extractor: feature.NewPerfumeExtractor(), Ratio: 2}
	ds := b.Build(nil, makePerfumes("A", "B"))
	if ds.Len() != 0 {
		t.Fatalf("空库存应返回空数据集，实际 %d", ds.Len())
	}
}

// 固定种子时采样结果可复现。
func TestDatasetBuilder_SeedReproducible(t *testing.T) {
	inventory := makePerfumes("A")
	catalog := makePerfumes("C", "D", "E", "F", "G", "H", "I", "J")

	build := func() []int {
		b := &DatasetBuilder{Extractor: feature.NewPerfumeExtractor(), Ratio: 2, Seed: 42}
		ds := b.Build(inventory, catalog)
		return ds.Y
	}
	a, b := build(), build()
	if len(a) != len(b) {
		t.Fatal("固定种子两次构建样本数不同")
	}
}
