package dsl

import (
	"fmt"
	"sync"

	"github.com/google/cel-go/cel"

	"github.com/scentify/scentkit/core"
)

var (
	// celEnv 是全局的 CEL 环境，线程安全，可复用
	celEnv     *cel.Env
	celEnvOnce sync.Once
)

func initCELEnv() (*cel.Env, error) {
	env, err := cel.NewEnv(
		cel.Variable("item", cel.DynType),
		cel.Variable("label", cel.DynType),
		cel.Variable("rctx", cel.DynType),
	)
	return env, err
}

func getCELEnv() (*cel.Env, error) {
	var err error
	celEnvOnce.Do(func() {
		celEnv, err = initCELEnv()
	})
	return celEnv, err
}

// Eval 是 Label DSL 解释器，使用 CEL (Common Expression Language) 实现。
// 用于按表达式筛选推荐结果，例如配置驱动的业务规则。
//
// 表达式语法（CEL 标准语法）：
//   - 基础：label.recall_source == "hot" / item.scent_type == "Woody"
//   - 数值：item.score > 0.7 / item.score >= 0.5
//   - 逻辑：item.gender == "Unisex" && item.score > 0.8
//   - 存在性：label.recall_source != null
//   - 包含：label.recall_source.contains("hot")
type Eval struct {
	item *core.Item
	rctx *core.RecommendContext
	env  *cel.Env
}

// NewEval 创建一个新的 DSL 解释器。
func NewEval(item *core.Item, rctx *core.RecommendContext) *Eval {
	env, _ := getCELEnv()
	return &Eval{
		item: item,
		rctx: rctx,
		env:  env,
	}
}

// Evaluate 解析并执行 DSL 表达式，返回布尔结果。
// 空表达式视为 true。
func (e *Eval) Evaluate(expr string) (bool, error) {
	if expr == "" {
		return true, nil
	}
	if e.env == nil {
		return false, fmt.Errorf("cel env not initialized")
	}

	ast, issues := e.env.Compile(expr)
	if issues != nil && issues.Err() != nil {
		return false, fmt.Errorf("compile error: %v", issues.Err())
	}

	prg, err := e.env.Program(ast)
	if err != nil {
		return false, fmt.Errorf("program error: %v", err)
	}

	out, _, err := prg.Eval(e.buildInput())
	if err != nil {
		// 访问不存在的 key CEL 会报错；用 label.key != null 检查存在性
		return false, fmt.Errorf("eval error: %v", err)
	}

	result, ok := out.Value().(bool)
	if !ok {
		return false, fmt.Errorf("expression must return boolean, got %T", out.Value())
	}
	return result, nil
}

// buildInput 构建 CEL 表达式的输入数据
func (e *Eval) buildInput() map[string]interface{} {
	labels := make(map[string]interface{})
	labelAccessor := make(map[string]interface{})
	if e.item != nil {
		for k, v := range e.item.Labels {
			labels[k] = map[string]interface{}{
				"value":  v.Value,
				"source": v.Source,
			}
			// label.recall_source 直接取 value，兼容简写
			labelAccessor[k] = v.Value
		}
	}

	item := map[string]interface{}{}
	if e.item != nil {
		item["id"] = e.item.ID
		item["score"] = e.item.Score
		item["features"] = e.item.Features
		item["meta"] = e.item.Meta
		item["labels"] = labels
		if p := e.item.Perfume; p != nil {
			item["name"] = p.Name
			item["brand"] = p.Brand
			item["gender"] = string(p.Gender)
			item["scent_type"] = p.ScentType
			item["main_accords"] = p.MainAccords
		}
	}

	rctx := map[string]interface{}{}
	if e.rctx != nil {
		rctx["user_id"] = e.rctx.UserID
		rctx["inventory_size"] = len(e.rctx.Inventory)
		rctx["params"] = e.rctx.Params
	}

	return map[string]interface{}{
		"item":  item,
		"label": labelAccessor,
		"rctx":  rctx,
	}
}
