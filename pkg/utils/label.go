package utils

// Label 是推荐链路中的一等公民：可解释、可追踪、可透传。
// 推荐结果的"为什么推荐它"（召回来源、模型、置信档位）都通过 Label 携带。
type Label struct {
	Value  string `json:"value"`
	Source string `json:"source"` // recall / rank / filter / rerank / postprocess ...
}

// MergeLabel 用于合并同名 Label，遵循"保留历史、可追踪"的默认策略。
// - Value: 以 '|' 累积
// - Source: 以 ',' 累积
//
// 需要更复杂的优先级/覆盖规则时，在上层封装自己的 merge 策略。
func MergeLabel(existing Label, incoming Label) Label {
	if existing.Value == "" {
		return incoming
	}
	if incoming.Value == "" {
		return existing
	}

	merged := existing
	merged.Value = existing.Value + "|" + incoming.Value
	switch {
	case existing.Source == "":
		merged.Source = incoming.Source
	case incoming.Source == "":
		merged.Source = existing.Source
	default:
		merged.Source = existing.Source + "," + incoming.Source
	}
	return merged
}
