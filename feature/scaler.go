package feature

import (
	"math"

	"github.com/scentify/scentkit/core"
)

// StandardScaler 按维度做零均值、单位方差标准化。
// 拟合出的统计量只对同版本抽取器产生的向量有意义，
// 因此它始终和分类器成对持久化（见 model.Bundle）。
type StandardScaler struct {
	Mean  []float64 `json:"mean"`
	Scale []float64 `json:"scale"`
}

// Fit 在特征矩阵上拟合每维均值与标准差。
// 方差为 0 的维度 Scale 记为 1（变换后恒为 0，不产生 NaN）。
func (s *StandardScaler) Fit(X [][]float64) error {
	if len(X) == 0 || len(X[0]) == 0 {
		return core.NewDomainError(core.ModuleFeature, core.ErrorCodeInvalidInput, "scaler: empty feature matrix")
	}
	dim := len(X[0])
	for _, row := range X {
		if len(row) != dim {
			return core.NewDomainError(core.ModuleFeature, core.ErrorCodeInvalidInput, "scaler: ragged feature matrix")
		}
	}

	n := float64(len(X))
	s.Mean = make([]float64, dim)
	s.Scale = make([]float64, dim)

	for j := 0; j < dim; j++ {
		sum := 0.0
		for _, row := range X {
			sum += row[j]
		}
		s.Mean[j] = sum / n
	}
	for j := 0; j < dim; j++ {
		variance := 0.0
		for _, row := range X {
			d := row[j] - s.Mean[j]
			variance += d * d
		}
		std := math.Sqrt(variance / n)
		if std == 0 {
			std = 1
		}
		s.Scale[j] = std
	}
	return nil
}

// Transform 标准化单个向量。维度不符返回错误（特征版本错配的兜底检查）。
func (s *StandardScaler) Transform(x []float64) ([]float64, error) {
	if len(x) != len(s.Mean) {
		return nil, core.NewDomainError(core.ModuleFeature, core.ErrorCodeInvalidInput, "scaler: dimension mismatch")
	}
	out := make([]float64, len(x))
	for j, v := range x {
		out[j] = (v - s.Mean[j]) / s.Scale[j]
	}
	return out, nil
}

// FitTransform 拟合并变换整个矩阵。
func (s *StandardScaler) FitTransform(X [][]float64) ([][]float64, error) {
	if err := s.Fit(X); err != nil {
		return nil, err
	}
	out := make([][]float64, len(X))
	for i, row := range X {
		scaled, err := s.Transform(row)
		if err != nil {
			return nil, err
		}
		out[i] = scaled
	}
	return out, nil
}
