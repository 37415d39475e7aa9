// Package scentkit 是一个香水发现推荐工具包（Scent Kit）。
//
// 设计要点：
// - Pipeline-first: 推荐逻辑通过 Node 串联（Recall → Filter → Rank → ReRank → PostProcess）
// - Inventory-driven: 用户库存既是正样本来源也是口味画像来源，引擎按需现训
// - Node 可扩展: 自定义 Node 即可插拔扩展（召回源、过滤规则、打分模型均可）
package scentkit

import "github.com/scentify/scentkit/pipeline"

// 轻量 facade：便于用户直接 import "scentkit" 使用核心抽象。
type Pipeline = pipeline.Pipeline
type Node = pipeline.Node
type Kind = pipeline.Kind

const (
	KindRecall      = pipeline.KindRecall
	KindFilter      = pipeline.KindFilter
	KindRank        = pipeline.KindRank
	KindReRank      = pipeline.KindReRank
	KindPostProcess = pipeline.KindPostProcess
)
