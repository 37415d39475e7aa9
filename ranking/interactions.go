package ranking

import (
	"context"
	"encoding/json"
	"time"

	"github.com/scentify/scentkit/core"
)

// 交互类型
const (
	InteractionClick          = "click"
	InteractionView           = "view"
	InteractionAddToInventory = "add_to_inventory"
)

// DefaultInteractionKey 交互日志的默认存储 key。
const DefaultInteractionKey = "ranking:interactions"

// Interaction 一条用户交互记录。
type Interaction struct {
	PerfumeID string    `json:"perfume_id"`
	Type      string    `json:"type"`
	Timestamp time.Time `json:"timestamp"`
}

// InteractionLog 追加式的交互日志，整体序列化成 JSON 存单个 key。
// 点击类交互会同步累加到 ClickStore（如果配置了）。
type InteractionLog struct {
	Store  core.Store
	Key    string
	Clicks *ClickStore
}

// NewInteractionLog 创建交互日志，key 为空时使用 DefaultInteractionKey。
func NewInteractionLog(s core.Store, key string, clicks *ClickStore) *InteractionLog {
	if key == "" {
		key = DefaultInteractionKey
	}
	return &InteractionLog{Store: s, Key: key, Clicks: clicks}
}

// Record 追加一条交互。交互类型为空视为非法输入。
func (l *InteractionLog) Record(ctx context.Context, perfumeID, kind string) error {
	if perfumeID == "" || kind == "" {
		return core.NewDomainError(core.ModuleRanking, core.ErrorCodeInvalidInput, "ranking: perfume id and type required")
	}
	entries, err := l.All(ctx)
	if err != nil {
		return err
	}
	entries = append(entries, Interaction{
		PerfumeID: perfumeID,
		Type:      kind,
		Timestamp: time.Now().UTC(),
	})
	raw, err := json.Marshal(entries)
	if err != nil {
		return err
	}
	if err := l.Store.Set(ctx, l.Key, raw); err != nil {
		return err
	}
	if kind == InteractionClick && l.Clicks != nil {
		if _, err := l.Clicks.RecordClick(ctx, perfumeID); err != nil {
			return err
		}
	}
	return nil
}

// All 返回全部交互记录，按写入顺序。
func (l *InteractionLog) All(ctx context.Context) ([]Interaction, error) {
	raw, err := l.Store.Get(ctx, l.Key)
	if core.IsStoreNotFound(err) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	var entries []Interaction
	if err := json.Unmarshal(raw, &entries); err != nil {
		return nil, nil
	}
	return entries, nil
}

// ClickCounts 从交互日志聚合每个香水的点击数。
func (l *InteractionLog) ClickCounts(ctx context.Context) (map[string]int64, error) {
	entries, err := l.All(ctx)
	if err != nil {
		return nil, err
	}
	counts := make(map[string]int64)
	for _, e := range entries {
		if e.Type == InteractionClick {
			counts[e.PerfumeID]++
		}
	}
	return counts, nil
}
