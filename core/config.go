package core

// ModelType 选择分类器实现。
type ModelType string

const (
	// ModelLogisticRegression 线性概率分类器（默认）。
	ModelLogisticRegression ModelType = "logistic_regression"
	// ModelDecisionTree 浅层决策树（深度上限 5）。
	ModelDecisionTree ModelType = "decision_tree"
)

// MLConfig 是推荐引擎的全部可调参数。
// 零值不可直接使用，从 DefaultMLConfig 出发按需覆盖。
type MLConfig struct {
	// NegativeSamplesRatio 负采样倍率：负样本数 = len(inventory) * ratio。
	NegativeSamplesRatio int `yaml:"negative_samples_ratio" json:"negative_samples_ratio"`

	// MinInventorySize 训练门槛：库存小于该值时不训练、不推荐。
	MinInventorySize int `yaml:"min_inventory_size" json:"min_inventory_size"`

	// ModelType 分类器类型。
	ModelType ModelType `yaml:"model_type" json:"model_type"`

	// RandomState 随机种子，同时作用于负采样与分类器。
	// 0 表示不固定（每次调用结果可不同）；测试需要确定性时显式传入。
	RandomState int64 `yaml:"random_state" json:"random_state"`

	// MinRecommendationProbability 概率下限，低于该值的候选不出现在结果中。
	MinRecommendationProbability float64 `yaml:"min_recommendation_probability" json:"min_recommendation_probability"`

	// DiversityThreshold 预留配置项，当前不参与计算。
	DiversityThreshold float64 `yaml:"diversity_threshold" json:"diversity_threshold"`
}

// DefaultMLConfig 返回默认配置。
func DefaultMLConfig() MLConfig {
	return MLConfig{
		NegativeSamplesRatio:         2,
		MinInventorySize:             2,
		ModelType:                    ModelLogisticRegression,
		RandomState:                  42,
		MinRecommendationProbability: 0.5,
		DiversityThreshold:           0.3,
	}
}
