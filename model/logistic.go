package model

import (
	"math"

	"github.com/scentify/scentkit/core"
)

// LogisticModel 实现逻辑回归 (Logistic Regression)，默认分类器。
//
// 预测原理：
// 1. 线性加权求和: z = Bias + sum(Weight_i * Feature_i)
// 2. Sigmoid 变换: P = 1 / (1 + exp(-z))
//
// 训练采用全量梯度下降（样本量 ≤ 数百、38 维，固定轮数内收敛），
// 带轻微 L2 正则防止小样本下权重发散。
type LogisticModel struct {
	Weights []float64 `json:"weights"`
	Bias    float64   `json:"bias"`

	// 训练超参数；零值时 Fit 使用默认值。
	LearningRate float64 `json:"learning_rate,omitempty"`
	Epochs       int     `json:"epochs,omitempty"`
	L2           float64 `json:"l2,omitempty"`
}

// NewLogisticModel 创建带默认超参数的逻辑回归。
func NewLogisticModel() *LogisticModel {
	return &LogisticModel{
		LearningRate: 0.1,
		Epochs:       1000,
		L2:           1e-4,
	}
}

func (m *LogisticModel) Name() string { return "logistic_regression" }

// Fit 全量梯度下降拟合。权重从零初始化，结果对同一数据集确定。
func (m *LogisticModel) Fit(X [][]float64, y []int) error {
	if len(X) == 0 || len(X) != len(y) {
		return core.NewDomainError(core.ModuleModel, core.ErrorCodeInvalidInput, "logistic: empty or mismatched training data")
	}
	dim := len(X[0])
	for _, row := range X {
		if len(row) != dim {
			return core.NewDomainError(core.ModuleModel, core.ErrorCodeInvalidInput, "logistic: ragged feature matrix")
		}
	}

	lr := m.LearningRate
	if lr <= 0 {
		lr = 0.1
	}
	epochs := m.Epochs
	if epochs <= 0 {
		epochs = 1000
	}

	m.Weights = make([]float64, dim)
	m.Bias = 0
	n := float64(len(X))

	gradW := make([]float64, dim)
	for epoch := 0; epoch < epochs; epoch++ {
		for j := range gradW {
			gradW[j] = 0
		}
		gradB := 0.0
		for i, row := range X {
			p := sigmoid(m.decision(row))
			err := p - float64(y[i])
			for j, v := range row {
				gradW[j] += err * v
			}
			gradB += err
		}
		for j := range m.Weights {
			m.Weights[j] -= lr * (gradW[j]/n + m.L2*m.Weights[j])
		}
		m.Bias -= lr * gradB / n
	}
	return nil
}

// PredictProba 返回正类概率。
func (m *LogisticModel) PredictProba(x []float64) (float64, error) {
	if len(m.Weights) == 0 {
		return 0, core.NewDomainError(core.ModuleModel, core.ErrorCodeInvalidInput, "logistic: model not fitted")
	}
	if len(x) != len(m.Weights) {
		return 0, core.NewDomainError(core.ModuleModel, core.ErrorCodeInvalidInput, "logistic: dimension mismatch")
	}
	return sigmoid(m.decision(x)), nil
}

// FeatureImportance 线性模型的重要性即 |weight|。
func (m *LogisticModel) FeatureImportance() []float64 {
	if len(m.Weights) == 0 {
		return nil
	}
	out := make([]float64, len(m.Weights))
	for i, w := range m.Weights {
		out[i] = math.Abs(w)
	}
	return out
}

func (m *LogisticModel) decision(x []float64) float64 {
	z := m.Bias
	for j, v := range x {
		z += m.Weights[j] * v
	}
	return z
}

func sigmoid(z float64) float64 {
	return 1 / (1 + math.Exp(-z))
}
