// Package ml 实现按需训练：数据集构建 + 拟合 + 成对持久化。
package ml

import (
	"math/rand"
	"time"

	"github.com/scentify/scentkit/core"
	"github.com/scentify/scentkit/feature"
)

// Dataset 是一次训练的标注样本：X 与 y 等长，y 取值 {0,1}。
type Dataset struct {
	X [][]float64
	Y []int
}

// Len 返回样本数。
func (d *Dataset) Len() int { return len(d.X) }

// DatasetBuilder 从库存（正样本）与目录（负采样池）构建训练集。
//
// 规则：
//   - 正样本 = 库存中每瓶香水的特征向量（label 1）
//   - 负样本池 = 目录中 id 不在库存内的香水
//   - 负样本数 = len(inventory) * Ratio，池不够时全取（不报错）
//   - 负采样为均匀无放回；不固定种子时跨调用不可复现
//   - 同一 id 不会同时出现在正负两侧（排除过滤保证）
type DatasetBuilder struct {
	Extractor *feature.PerfumeExtractor
	Ratio     int

	// Seed 为 0 时用时间熵，否则固定（测试用）。
	Seed int64
}

// Build 构建数据集。库存为空时返回空数据集，由调用方按"无法训练"处理。
func (b *DatasetBuilder) Build(inventory, catalog []*core.Perfume) *Dataset {
	ds := &Dataset{}
	if len(inventory) == 0 {
		return ds
	}

	owned := core.OwnedIDSet(inventory)

	for _, p := range inventory {
		if p == nil {
			continue
		}
		ds.X = append(ds.X, b.Extractor.Extract(p))
		ds.Y = append(ds.Y, 1)
	}

	pool := make([]*core.Perfume, 0, len(catalog))
	for _, p := range catalog {
		if p == nil {
			continue
		}
		if _, ok := owned[p.ID]; ok {
			continue
		}
		pool = append(pool, p)
	}

	want := len(inventory) * b.Ratio
	negatives := pool
	if len(pool) > want {
		rng := b.newRand()
		perm := rng.Perm(len(pool))
		negatives = make([]*core.Perfume, 0, want)
		for _, i := range perm[:want] {
			negatives = append(negatives, pool[i])
		}
	}

	for _, p := range negatives {
		ds.X = append(ds.X, b.Extractor.Extract(p))
		ds.Y = append(ds.Y, 0)
	}
	return ds
}

func (b *DatasetBuilder) newRand() *rand.Rand {
	seed := b.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	return rand.New(rand.NewSource(seed))
}
