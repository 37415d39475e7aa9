package recall

import (
	"context"
	"errors"
	"testing"

	"github.com/scentify/scentkit/core"
)

type staticSource struct {
	name string
	ids  []string
	err  error
}

func (s *staticSource) Name() string { return s.name }

func (s *staticSource) Recall(_ context.Context, _ *core.RecommendContext) ([]*core.Item, error) {
	if s.err != nil {
		return nil, s.err
	}
	out := make([]*core.Item, 0, len(s.ids))
	for _, id := range s.ids {
		out = append(out, core.NewItem(&core.Perfume{ID: id}))
	}
	return out, nil
}

func TestFanout_FirstMerge(t *testing.T) {
	fanout := &Fanout{
		Sources: []Source{
			&staticSource{name: "hot", ids: []string{"api_a", "api_b"}},
			&staticSource{name: "catalog", ids: []string{"api_b", "api_c"}},
		},
		Dedup:         true,
		MaxConcurrent: 1, // 串行保证合并顺序可断言
	}
	items, err := fanout.Process(context.Background(), nil, nil)
	if err != nil {
		t.Fatal(err)
	}
	if len(items) != 3 {
		t.Fatalf("去重后期望 3 条，实际 %d", len(items))
	}
	seen := map[string]bool{}
	for _, it := range items {
		if seen[it.ID] {
			t.Errorf("重复 id: %s", it.ID)
		}
		seen[it.ID] = true
		if _, ok := it.Labels["recall_source"]; !ok {
			t.Errorf("%s 缺少 recall_source 标签", it.ID)
		}
	}
}

// 单个召回源失败只丢该路结果，不中断整体。
func TestFanout_SourceFailure(t *testing.T) {
	fanout := &Fanout{
		Sources: []Source{
			&staticSource{name: "broken", err: errors.New("boom")},
			&staticSource{name: "ok", ids: []string{"api_a"}},
		},
		Dedup: true,
	}
	items, err := fanout.Process(context.Background(), nil, nil)
	if err != nil {
		t.Fatal(err)
	}
	if len(items) != 1 || items[0].ID != "api_a" {
		t.Fatalf("应只剩正常源的结果: %+v", items)
	}
}

func TestFanout_NoSources(t *testing.T) {
	fanout := &Fanout{}
	items, err := fanout.Process(context.Background(), nil, nil)
	if err != nil {
		t.Fatal(err)
	}
	if items != nil {
		t.Fatal("无召回源应返回空")
	}
}
