package model

import (
	"sort"

	"github.com/scentify/scentkit/core"
)

// TreeModel 实现浅层 CART 决策树（gini 不纯度，深度上限默认 5）。
// 叶子记录正类占比，PredictProba 直接返回叶子概率。
// 相比逻辑回归更能表达 accord 组合的非线性，但小样本下更易过拟合，
// 因此作为可配置的备选而非默认。
type TreeModel struct {
	MaxDepth        int `json:"max_depth"`
	MinSamplesSplit int `json:"min_samples_split"`
	MinSamplesLeaf  int `json:"min_samples_leaf"`

	Root       *treeNode `json:"root"`
	NumFeature int       `json:"num_features"`

	// Importances 为训练时累积的 gini 重要性（归一化）。
	Importances []float64 `json:"importances"`
}

type treeNode struct {
	Leaf      bool      `json:"leaf"`
	Proba     float64   `json:"proba"` // 叶子的正类占比
	Feature   int       `json:"feature"`
	Threshold float64   `json:"threshold"`
	Left      *treeNode `json:"left,omitempty"`
	Right     *treeNode `json:"right,omitempty"`
}

// NewTreeModel 创建带默认约束的浅层决策树。
func NewTreeModel() *TreeModel {
	return &TreeModel{
		MaxDepth:        5,
		MinSamplesSplit: 2,
		MinSamplesLeaf:  1,
	}
}

func (m *TreeModel) Name() string { return "decision_tree" }

// Fit 构建决策树。
func (m *TreeModel) Fit(X [][]float64, y []int) error {
	if len(X) == 0 || len(X) != len(y) {
		return core.NewDomainError(core.ModuleModel, core.ErrorCodeInvalidInput, "tree: empty or mismatched training data")
	}
	dim := len(X[0])
	for _, row := range X {
		if len(row) != dim {
			return core.NewDomainError(core.ModuleModel, core.ErrorCodeInvalidInput, "tree: ragged feature matrix")
		}
	}
	if m.MaxDepth <= 0 {
		m.MaxDepth = 5
	}
	if m.MinSamplesSplit < 2 {
		m.MinSamplesSplit = 2
	}
	if m.MinSamplesLeaf < 1 {
		m.MinSamplesLeaf = 1
	}

	m.NumFeature = dim
	m.Importances = make([]float64, dim)

	idx := make([]int, len(X))
	for i := range idx {
		idx[i] = i
	}
	m.Root = m.build(X, y, idx, 0)
	m.normalizeImportances()
	return nil
}

// PredictProba 沿树下行到叶子，返回叶子的正类占比。
func (m *TreeModel) PredictProba(x []float64) (float64, error) {
	if m.Root == nil {
		return 0, core.NewDomainError(core.ModuleModel, core.ErrorCodeInvalidInput, "tree: model not fitted")
	}
	if len(x) != m.NumFeature {
		return 0, core.NewDomainError(core.ModuleModel, core.ErrorCodeInvalidInput, "tree: dimension mismatch")
	}
	node := m.Root
	for !node.Leaf {
		if x[node.Feature] <= node.Threshold {
			node = node.Left
		} else {
			node = node.Right
		}
	}
	return node.Proba, nil
}

// FeatureImportance 返回归一化的 gini 重要性。
func (m *TreeModel) FeatureImportance() []float64 {
	return m.Importances
}

func (m *TreeModel) build(X [][]float64, y []int, idx []int, depth int) *treeNode {
	pos := 0
	for _, i := range idx {
		pos += y[i]
	}
	proba := float64(pos) / float64(len(idx))

	// 停机条件：纯节点、样本不足、达到深度上限
	if pos == 0 || pos == len(idx) || len(idx) < m.MinSamplesSplit || depth >= m.MaxDepth {
		return &treeNode{Leaf: true, Proba: proba}
	}

	bestFeature, bestThreshold, bestGain := -1, 0.0, 0.0
	parentGini := giniImpurity(pos, len(idx))

	for j := 0; j < m.NumFeature; j++ {
		values := make([]float64, 0, len(idx))
		for _, i := range idx {
			values = append(values, X[i][j])
		}
		sort.Float64s(values)

		for k := 1; k < len(values); k++ {
			if values[k] == values[k-1] {
				continue
			}
			threshold := (values[k] + values[k-1]) / 2

			leftN, leftPos, rightN, rightPos := 0, 0, 0, 0
			for _, i := range idx {
				if X[i][j] <= threshold {
					leftN++
					leftPos += y[i]
				} else {
					rightN++
					rightPos += y[i]
				}
			}
			if leftN < m.MinSamplesLeaf || rightN < m.MinSamplesLeaf {
				continue
			}

			n := float64(len(idx))
			childGini := (float64(leftN)/n)*giniImpurity(leftPos, leftN) +
				(float64(rightN)/n)*giniImpurity(rightPos, rightN)
			gain := parentGini - childGini
			if gain > bestGain {
				bestGain = gain
				bestFeature = j
				bestThreshold = threshold
			}
		}
	}

	if bestFeature < 0 {
		return &treeNode{Leaf: true, Proba: proba}
	}

	m.Importances[bestFeature] += float64(len(idx)) * bestGain

	var leftIdx, rightIdx []int
	for _, i := range idx {
		if X[i][bestFeature] <= bestThreshold {
			leftIdx = append(leftIdx, i)
		} else {
			rightIdx = append(rightIdx, i)
		}
	}

	return &treeNode{
		Feature:   bestFeature,
		Threshold: bestThreshold,
		Left:      m.build(X, y, leftIdx, depth+1),
		Right:     m.build(X, y, rightIdx, depth+1),
	}
}

func (m *TreeModel) normalizeImportances() {
	total := 0.0
	for _, v := range m.Importances {
		total += v
	}
	if total == 0 {
		return
	}
	for i := range m.Importances {
		m.Importances[i] /= total
	}
}

func giniImpurity(pos, n int) float64 {
	if n == 0 {
		return 0
	}
	p := float64(pos) / float64(n)
	return 2 * p * (1 - p)
}
