// Package inventory 维护用户拥有的香水列表，整体 JSON 持久化到 core.Store。
package inventory

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/scentify/scentkit/core"
	"github.com/scentify/scentkit/ranking"
)

// DefaultKey 库存的默认存储 key。
const DefaultKey = "inventory:perfumes"

// Store 用户库存存储。
// Interactions 配置后，Add 会同步记录一条 add_to_inventory 交互。
type Store struct {
	Backend      core.Store
	Key          string
	Interactions *ranking.InteractionLog
}

// New 创建库存存储，key 为空时使用 DefaultKey。
func New(backend core.Store, key string) *Store {
	if key == "" {
		key = DefaultKey
	}
	return &Store{Backend: backend, Key: key}
}

// List 返回当前库存，按加入顺序。空库存返回 nil。
func (s *Store) List(ctx context.Context) ([]*core.Perfume, error) {
	raw, err := s.Backend.Get(ctx, s.Key)
	if core.IsStoreNotFound(err) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	var perfumes []*core.Perfume
	if err := json.Unmarshal(raw, &perfumes); err != nil {
		return nil, nil
	}
	return perfumes, nil
}

// Add 把香水加入库存。ID 为空时按名称派生；重复 ID 返回 INVALID_INPUT。
func (s *Store) Add(ctx context.Context, p *core.Perfume) error {
	if p == nil || (p.ID == "" && p.Name == "") {
		return core.NewDomainError(core.ModuleInventory, core.ErrorCodeInvalidInput, "inventory: perfume requires id or name")
	}
	if p.ID == "" {
		p.ID = core.PerfumeID(p.Name)
	}

	perfumes, err := s.List(ctx)
	if err != nil {
		return err
	}
	for _, owned := range perfumes {
		if owned.ID == p.ID {
			return core.NewDomainError(core.ModuleInventory, core.ErrorCodeInvalidInput,
				fmt.Sprintf("inventory: perfume %q already owned", p.ID))
		}
	}
	perfumes = append(perfumes, p)
	if err := s.save(ctx, perfumes); err != nil {
		return err
	}

	if s.Interactions != nil {
		if err := s.Interactions.Record(ctx, p.ID, ranking.InteractionAddToInventory); err != nil {
			return err
		}
	}
	return nil
}

// Remove 从库存删除香水，ID 不存在返回 NOT_FOUND。
func (s *Store) Remove(ctx context.Context, perfumeID string) error {
	perfumes, err := s.List(ctx)
	if err != nil {
		return err
	}
	kept := perfumes[:0]
	found := false
	for _, p := range perfumes {
		if p.ID == perfumeID {
			found = true
			continue
		}
		kept = append(kept, p)
	}
	if !found {
		return core.NewDomainError(core.ModuleInventory, core.ErrorCodeNotFound,
			fmt.Sprintf("inventory: perfume %q not found", perfumeID))
	}
	return s.save(ctx, kept)
}

func (s *Store) save(ctx context.Context, perfumes []*core.Perfume) error {
	raw, err := json.Marshal(perfumes)
	if err != nil {
		return err
	}
	return s.Backend.Set(ctx, s.Key, raw)
}
