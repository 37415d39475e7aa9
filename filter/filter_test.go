package filter

import (
	"context"
	"testing"

	"github.com/scentify/scentkit/core"
)

func catalogItem(name string, score float64) *core.Item {
	it := core.NewItem(&core.Perfume{
		ID:   core.PerfumeID(name),
		Name: name,
	})
	it.Score = score
	return it
}

func TestOwnedFilter(t *testing.T) {
	inventory := []*core.Perfume{
		{ID: "api_owned", Name: "Owned"},
	}
	f := NewOwnedFilter(inventory)
	ctx := context.Background()

	ok, err := f.ShouldFilter(ctx, nil, catalogItem("Owned", 0.9))
	if err != nil {
		t.Fatal(err)
	}
	if !ok {
		t.Error("已拥有的应被过滤")
	}

	ok, err = f.ShouldFilter(ctx, nil, catalogItem("Other", 0.9))
	if err != nil {
		t.Fatal(err)
	}
	if ok {
		t.Error("未拥有的不应被过滤")
	}
}

// IDs 未物化时回退到 rctx 的库存。
func TestOwnedFilter_ContextFallback(t *testing.T) {
	f := &OwnedFilter{}
	rctx := &core.RecommendContext{
		Inventory: []*core.Perfume{{ID: "api_owned"}},
	}
	ok, err := f.ShouldFilter(context.Background(), rctx, catalogItem("Owned", 0.9))
	if err != nil {
		t.Fatal(err)
	}
	if !ok {
		t.Error("应从 rctx 库存判定过滤")
	}
}

func TestThresholdFilter(t *testing.T) {
	f := &ThresholdFilter{MinScore: 0.5}
	ctx := context.Background()

	tests := []struct {
		score float64
		want  bool
	}{
		{0.49, true},
		{0.5, false}, // 阈值本身保留
		{0.9, false},
	}
	for _, tt := range tests {
		ok, err := f.ShouldFilter(ctx, nil, catalogItem("X", tt.score))
		if err != nil {
			t.Fatal(err)
		}
		if ok != tt.want {
			t.Errorf("分数 %v: 期望过滤=%v，实际 %v", tt.score, tt.want, ok)
		}
	}
}

func TestFilterNode(t *testing.T) {
	node := &FilterNode{Filters: []Filter{
		&ThresholdFilter{MinScore: 0.5},
	}}
	items := []*core.Item{
		catalogItem("High", 0.8),
		catalogItem("Low", 0.2),
	}
	out, err := node.Process(context.Background(), nil, items)
	if err != nil {
		t.Fatal(err)
	}
	if len(out) != 1 || out[0].ID != "api_high" {
		t.Fatalf("应只剩 High: %+v", out)
	}
}

func TestDSLFilter(t *testing.T) {
	f := &DSLFilter{Expr: `item.gender != "Male"`}
	ctx := context.Background()

	male := core.NewItem(&core.Perfume{ID: "api_m", Gender: core.GenderMale})
	ok, err := f.ShouldFilter(ctx, nil, male)
	if err != nil {
		t.Fatal(err)
	}
	if !ok {
		t.Error("表达式为 false 的应被过滤")
	}

	female := core.NewItem(&core.Perfume{ID: "api_f", Gender: core.GenderFemale})
	ok, err = f.ShouldFilter(ctx, nil, female)
	if err != nil {
		t.Fatal(err)
	}
	if ok {
		t.Error("表达式为 true 的应保留")
	}
}

func TestSeenFilter(t *testing.T) {
	f := NewSeenFilter(100, 0.01)
	f.Add("api_seen")
	ctx := context.Background()

	ok, err := f.ShouldFilter(ctx, nil, catalogItem("Seen", 0.9))
	if err != nil {
		t.Fatal(err)
	}
	if !ok {
		t.Error("曝光过的应被过滤")
	}

	ok, err = f.ShouldFilter(ctx, nil, catalogItem("Fresh One", 0.9))
	if err != nil {
		t.Fatal(err)
	}
	if ok {
		t.Error("未曝光的不应被过滤（布隆过滤器无假阴性）")
	}
}
