package catalog

import (
	"context"
	"encoding/json"

	"github.com/scentify/scentkit/core"
)

// Static 是内存目录，实现 core.CatalogStore。
// 用于测试和已经把目录抓到本地的场景。
type Static struct {
	Perfumes []*core.Perfume
}

// NewStatic 创建内存目录。
func NewStatic(perfumes []*core.Perfume) *Static {
	return &Static{Perfumes: perfumes}
}

func (s *Static) AllItems(_ context.Context) ([]*core.Perfume, error) {
	return s.Perfumes, nil
}

// StoreCatalog 把持久化在 core.Store 里的目录暴露成 core.CatalogStore。
// 目录整体 JSON 存单个 key；key 缺失视为空目录。
type StoreCatalog struct {
	Store core.Store
	Key   string
}

// DefaultCatalogKey 目录持久化的默认 key。
const DefaultCatalogKey = "catalog:perfumes"

// NewStoreCatalog 创建持久化目录，key 为空时使用 DefaultCatalogKey。
func NewStoreCatalog(store core.Store, key string) *StoreCatalog {
	if key == "" {
		key = DefaultCatalogKey
	}
	return &StoreCatalog{Store: store, Key: key}
}

func (s *StoreCatalog) AllItems(ctx context.Context) ([]*core.Perfume, error) {
	raw, err := s.Store.Get(ctx, s.Key)
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

// Save 覆盖写入整个目录。
func (s *StoreCatalog) Save(ctx context.Context, perfumes []*core.Perfume) error {
	raw, err := json.Marshal(perfumes)
	if err != nil {
		return err
	}
	return s.Store.Set(ctx, s.Key, raw)
}
