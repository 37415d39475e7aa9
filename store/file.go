package store

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/scentify/scentkit/core"
)

// FileStore 把每个 key 存成目录下的一个 JSON 文件，面向单用户桌面部署。
// 语义与外部 KV 约定一致：
//   - 首次写入时自动创建目录
//   - 文件缺失或不可读一律报告 ErrStoreNotFound，绝不向上抛崩溃
//   - 进程内用读写锁串行化；跨进程并发是已知限制，不加文件锁
//
// 不支持 TTL（参数被忽略）。
type FileStore struct {
	dir string
	mu  sync.RWMutex
}

// NewFileStore 创建文件存储，dir 例如 "data"。
func NewFileStore(dir string) *FileStore {
	return &FileStore{dir: dir}
}

func (f *FileStore) Name() string { return "file" }

func (f *FileStore) Get(ctx context.Context, key string) ([]byte, error) {
	f.mu.RLock()
	defer f.mu.RUnlock()

	data, err := os.ReadFile(f.path(key))
	if err != nil {
		return nil, core.ErrStoreNotFound
	}
	return data, nil
}

func (f *FileStore) Set(ctx context.Context, key string, value []byte, _ ...int) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	if err := os.MkdirAll(f.dir, 0o755); err != nil {
		return err
	}
	return os.WriteFile(f.path(key), value, 0o644)
}

func (f *FileStore) Delete(ctx context.Context, key string) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	err := os.Remove(f.path(key))
	if err != nil && !os.IsNotExist(err) {
		return err
	}
	return nil
}

func (f *FileStore) BatchGet(ctx context.Context, keys []string) (map[string][]byte, error) {
	result := make(map[string][]byte, len(keys))
	for _, k := range keys {
		data, err := f.Get(ctx, k)
		if err != nil {
			continue
		}
		result[k] = data
	}
	return result, nil
}

func (f *FileStore) BatchSet(ctx context.Context, kvs map[string][]byte, ttl ...int) error {
	for k, v := range kvs {
		if err := f.Set(ctx, k, v, ttl...); err != nil {
			return err
		}
	}
	return nil
}

func (f *FileStore) Close() error { return nil }

// path 把 key 清洗成文件名：':' 与 '/' 换成 '_'，加 .json 后缀。
func (f *FileStore) path(key string) string {
	name := strings.NewReplacer(":", "_", "/", "_").Replace(key)
	return filepath.Join(f.dir, name+".json")
}
