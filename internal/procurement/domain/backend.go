package domain

import (
	"context"
	"time"

	"github.com/nextmv-io/sdk/mip"
)

// Outcome 一次求解的结果。Value 只在 Feasible 为 true 时可用。
type Outcome struct {
	// Status 求解器返回的状态串："optimal"、"suboptimal"，或失败原因。
	Status string
	// Feasible 是否拿到整数可行解（最优或次优）。
	Feasible bool
	// Value 读取变量取值。
	Value func(v mip.Var) float64
	// Runtime 求解耗时。
	Runtime time.Duration
}

// Backend MILP 求解后端的窄接口。模型构建代码不依赖具体求解器，
// 替换后端（开源或商业）不需要改动建模逻辑。
type Backend interface {
	Solve(ctx context.Context, model mip.Model) (Outcome, error)
}

// HighsBackend 基于 HiGHS 的默认求解后端。
type HighsBackend struct {
	// MaxDuration 求解墙钟时间上限。
	MaxDuration time.Duration
	// GapRelative 相对最优间隙容差。
	GapRelative float64
}

// NewHighsBackend 创建默认参数的 HiGHS 后端：30 秒时限，0.1% 相对间隙。
func NewHighsBackend() *HighsBackend {
	return &HighsBackend{
		MaxDuration: 30 * time.Second,
		GapRelative: 0.001,
	}
}

// Solve 同步阻塞求解。ctx 带截止时间时会收紧求解时限，调用方放弃请求
// 不会把求解进程泄漏到跑满固定时限。
func (b *HighsBackend) Solve(ctx context.Context, model mip.Model) (Outcome, error) {
	solver, err := mip.NewSolver("highs", model)
	if err != nil {
		return Outcome{}, err
	}

	opts := mip.NewSolveOptions()
	limit := b.MaxDuration
	if deadline, ok := ctx.Deadline(); ok {
		if remain := time.Until(deadline); remain < limit {
			limit = remain
		}
	}
	if err := opts.SetMaximumDuration(limit); err != nil {
		return Outcome{}, err
	}
	// 老版本求解器可能不支持相对间隙参数，降级为仅时限。
	_ = opts.SetMIPGapRelative(b.GapRelative)
	opts.SetVerbosity(mip.Off)

	solution, err := solver.Solve(opts)
	if err != nil {
		return Outcome{}, err
	}

	out := Outcome{Status: "infeasible"}
	if solution != nil {
		out.Runtime = solution.RunTime()
		if solution.HasValues() {
			out.Feasible = true
			if solution.IsOptimal() {
				out.Status = "optimal"
			} else {
				out.Status = "suboptimal"
			}
			out.Value = solution.Value
		}
	}
	return out, nil
}
