package store

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/scentify/scentkit/core"
)

func TestFileStore_GetSet(t *testing.T) {
	dir := t.TempDir()
	f := NewFileStore(dir)
	defer f.Close()
	ctx := context.Background()

	if _, err := f.Get(ctx, "missing"); !core.IsStoreNotFound(err) {
		t.Fatalf("缺失 key 应返回 ErrStoreNotFound，实际 %v", err)
	}

	if err := f.Set(ctx, "inventory:perfumes", []byte(`[]`)); err != nil {
		t.Fatal(err)
	}
	got, err := f.Get(ctx, "inventory:perfumes")
	if err != nil {
		t.Fatal(err)
	}
	if string(got) != "[]" {
		t.Errorf("期望 []，实际 %s", got)
	}

	// key 中的 ':' 被替换，落盘文件名不含分隔符
	if _, err := os.Stat(filepath.Join(dir, "inventory_perfumes.json")); err != nil {
		t.Errorf("落盘文件名错误: %v", err)
	}
}

// 删除不存在的 key 不报错。
func TestFileStore_DeleteMissing(t *testing.T) {
	f := NewFileStore(t.TempDir())
	defer f.Close()

	if err := f.Delete(context.Background(), "ghost"); err != nil {
		t.Fatalf("删除不存在的 key 不应报错: %v", err)
	}
}

// 数据跨实例保留（模拟进程重启）。
func TestFileStore_Persistence(t *testing.T) {
	dir := t.TempDir()
	ctx := context.Background()

	a := NewFileStore(dir)
	if err := a.Set(ctx, "k", []byte("v")); err != nil {
		t.Fatal(err)
	}
	a.Close()

	b := NewFileStore(dir)
	defer b.Close()
	got, err := b.Get(ctx, "k")
	if err != nil {
		t.Fatal(err)
	}
	if string(got) != "v" {
		t.Errorf("重启后期望 v，实际 %s", got)
	}
}

func TestFileStore_Batch(t *testing.T) {
	f := NewFileStore(t.TempDir())
	defer f.Close()
	ctx := context.Background()

	if err := f.BatchSet(ctx, map[string][]byte{
		"a": []byte("1"),
		"b": []byte("2"),
	}); err != nil {
		t.Fatal(err)
	}
	got, err := f.BatchGet(ctx, []string{"a", "b", "missing"})
	if err != nil {
		t.Fatal(err)
	}
	if len(got) != 2 {
		t.Errorf("期望 2 个命中，实际 %d", len(got))
	}
}
