package model

import (
	"context"
	"encoding/json"
	"time"

	"github.com/scentify/scentkit/core"
	"github.com/scentify/scentkit/feature"
)

// DefaultBundleKey 是模型 bundle 在 Store 中的默认 key。
const DefaultBundleKey = "ml:model_bundle"

// Bundle 是成对持久化的训练产物：分类器 + 标准化器 + 特征版本签名。
// 约束是"scaler 绝不与非它训练出的分类器搭配使用"，
// 因此二者作为同一份带版本的 JSON 工件一起存取，天然 both-or-neither。
type Bundle struct {
	ModelType        core.ModelType         `json:"model_type"`
	FeatureSignature string                 `json:"feature_signature"`
	FeatureNames     []string               `json:"feature_names"`
	Scaler           *feature.StandardScaler `json:"scaler"`
	TrainedAt        time.Time              `json:"trained_at"`

	Classifier Classifier `json:"-"`

	// RawClassifier 是分类器的序列化形态，按 ModelType 还原。
	RawClassifier json.RawMessage `json:"classifier"`
}

// Score 对已标准化前的原始特征向量打分：先 scale 再 predict。
func (b *Bundle) Score(x []float64) (float64, error) {
	scaled, err := b.Scaler.Transform(x)
	if err != nil {
		return 0, err
	}
	return b.Classifier.PredictProba(scaled)
}

// BundleStore 通过 core.Store 存取 Bundle。
// 缺失/损坏/特征版本不匹配都报告为"不存在"（nil, nil），不是错误。
type BundleStore struct {
	Store core.Store
	Key   string
}

// NewBundleStore 创建 bundle 存取器，key 为空时用默认 key。
func NewBundleStore(s core.Store, key string) *BundleStore {
	if key == "" {
		key = DefaultBundleKey
	}
	return &BundleStore{Store: s, Key: key}
}

// Save 序列化并写入整个 bundle。
func (s *BundleStore) Save(ctx context.Context, b *Bundle) error {
	if b == nil || b.Classifier == nil || b.Scaler == nil {
		return core.NewDomainError(core.ModuleModel, core.ErrorCodeInvalidInput, "bundle: classifier and scaler are required")
	}
	raw, err := json.Marshal(b.Classifier)
	if err != nil {
		return err
	}
	b.RawClassifier = raw
	data, err := json.Marshal(b)
	if err != nil {
		return err
	}
	return s.Store.Set(ctx, s.Key, data)
}

// Load 读取 bundle。signature 非空时校验特征版本，不匹配视为缺失。
// 返回 (nil, nil) 表示缺失；只有底层存储的非 NotFound 错误才透传。
func (s *BundleStore) Load(ctx context.Context, signature string) (*Bundle, error) {
	data, err := s.Store.Get(ctx, s.Key)
	if err != nil {
		if core.IsStoreNotFound(err) {
			return nil, nil
		}
		return nil, err
	}

	var b Bundle
	if err := json.Unmarshal(data, &b); err != nil {
		// 损坏的持久化按缺失处理，调用方重新训练即可
		return nil, nil
	}
	if signature != "" && b.FeatureSignature != signature {
		return nil, nil
	}
	if b.Scaler == nil || len(b.RawClassifier) == 0 {
		return nil, nil
	}

	switch b.ModelType {
	case core.ModelDecisionTree:
		var tree TreeModel
		if err := json.Unmarshal(b.RawClassifier, &tree); err != nil {
			return nil, nil
		}
		b.Classifier = &tree
	default:
		var lr LogisticModel
		if err := json.Unmarshal(b.RawClassifier, &lr); err != nil {
			return nil, nil
		}
		b.Classifier = &lr
	}
	return &b, nil
}
