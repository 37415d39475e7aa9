// Package model 提供本地可训练的二分类器与成对持久化。
//
// 这里的模型都是"单用户、小样本、低维"量级：几十到几百条样本、38 维特征，
// 训练同步完成（亚秒级），不引入外部 serving。
package model

// Classifier 是排序阶段的最小抽象：拟合 "拥有 vs 未拥有"，
// 输出正类（"像用户会喜欢的"）的概率。
type Classifier interface {
	Name() string

	// Fit 在标准化后的特征矩阵上训练。y 取值 {0,1}。
	Fit(X [][]float64, y []int) error

	// PredictProba 返回正类概率，范围 [0,1]。
	PredictProba(x []float64) (float64, error)

	// FeatureImportance 返回各维度重要性（与特征同序）。未训练时为 nil。
	FeatureImportance() []float64
}
