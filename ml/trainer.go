package ml

import (
	"context"
	"fmt"
	"time"

	"github.com/scentify/scentkit/core"
	"github.com/scentify/scentkit/feature"
	"github.com/scentify/scentkit/model"
)

// Trainer 实现 train-or-skip：
//   - 库存低于门槛 → 不训练（INSUFFICIENT_DATA）
//   - 数据集为空 → 不训练
//   - 构建/标准化/拟合任一环节失败 → TRAINING_FAILED，调用方回退旧模型
//   - 成功 → scaler + 分类器成对落盘，返回训练产物
type Trainer struct {
	Extractor *feature.PerfumeExtractor
	Bundles   *model.BundleStore
	Config    core.MLConfig
}

// NewTrainer 创建训练器。
func NewTrainer(extractor *feature.PerfumeExtractor, bundles *model.BundleStore, cfg core.MLConfig) *Trainer {
	return &Trainer{
		Extractor: extractor,
		Bundles:   bundles,
		Config:    cfg,
	}
}

// TrainResult 是一次成功训练的产物与元信息。
type TrainResult struct {
	Bundle *model.Bundle

	// Importance 按特征序返回重要性（线性模型 |weight|，树模型 gini）。
	Importance []float64

	// Positives / Negatives 是本次训练的样本量。
	Positives int
	Negatives int
}

// Train 按需训练并持久化。
// 返回 INSUFFICIENT_DATA / TRAINING_FAILED 的领域错误时均表示"本次没有产出模型"，
// 调用方（recommender.Engine）负责回退到先前持久化的模型。
func (t *Trainer) Train(ctx context.Context, inventory, catalog []*core.Perfume) (*TrainResult, error) {
	if len(inventory) < t.Config.MinInventorySize {
		return nil, core.NewDomainError(core.ModuleTrainer, core.ErrorCodeInsufficientData,
			fmt.Sprintf("trainer: inventory size %d below gate %d", len(inventory), t.Config.MinInventorySize))
	}

	builder := &DatasetBuilder{
		Extractor: t.Extractor,
		Ratio:     t.Config.NegativeSamplesRatio,
		Seed:      t.Config.RandomState,
	}
	ds := builder.Build(inventory, catalog)
	if ds.Len() == 0 {
		return nil, core.NewDomainError(core.ModuleTrainer, core.ErrorCodeInsufficientData, "trainer: empty training dataset")
	}

	scaler := &feature.StandardScaler{}
	scaled, err := scaler.FitTransform(ds.X)
	if err != nil {
		return nil, trainingFailed(err)
	}

	clf := t.newClassifier()
	if err := clf.Fit(scaled, ds.Y); err != nil {
		return nil, trainingFailed(err)
	}

	bundle := &model.Bundle{
		ModelType:        t.Config.ModelType,
		FeatureSignature: t.Extractor.Signature(),
		FeatureNames:     t.Extractor.Names(),
		Scaler:           scaler,
		Classifier:       clf,
		TrainedAt:        time.Now(),
	}
	if t.Bundles != nil {
		if err := t.Bundles.Save(ctx, bundle); err != nil {
			// 落盘失败视作训练失败：绝不让内存模型与磁盘状态分叉
			return nil, trainingFailed(err)
		}
	}

	positives := 0
	for _, label := range ds.Y {
		positives += label
	}
	return &TrainResult{
		Bundle:     bundle,
		Importance: clf.FeatureImportance(),
		Positives:  positives,
		Negatives:  ds.Len() - positives,
	}, nil
}

func (t *Trainer) newClassifier() model.Classifier {
	switch t.Config.ModelType {
	case core.ModelDecisionTree:
		return model.NewTreeModel()
	default:
		return model.NewLogisticModel()
	}
}

func trainingFailed(cause error) error {
	return core.NewDomainError(core.ModuleTrainer, core.ErrorCodeTrainingFailed,
		fmt.Sprintf("trainer: %v", cause))
}
