package domain

import (
	"context"
	"math"
	"sort"

	"github.com/nextmv-io/sdk/mip"
)

// surplusPenalty 过剩产出的目标函数罚系数。足够小不会压过真实成本差，
// 足够大使等价方案向浪费更少的一侧倾斜。
const surplusPenalty = 1e-6

// Optimizer 分层采购优化器。每次调用都是输入的纯函数，调用之间不共享状态，
// 并发调用各自持有独立的求解器实例。
type Optimizer struct {
	backend Backend
}

// NewOptimizer 创建优化器。backend 为 nil 时使用默认 HiGHS 后端。
func NewOptimizer(backend Backend) *Optimizer {
	if backend == nil {
		backend = NewHighsBackend()
	}
	return &Optimizer{backend: backend}
}

// tierVar 一个 (矿石, 档位) 的整数采购变量及其静态系数。
type tierVar struct {
	v          mip.Int
	orderID    int64
	price      float64
	maxBatches int64
}

// builtModel 构建完成的 MILP 及解码所需的变量索引。
type builtModel struct {
	model     mip.Model
	demand    Demand
	ores      []Ore // 实际进入模型的矿石，保持输入顺序
	selects   map[int64]mip.Bool
	tierVars  map[int64][]tierVar
	surplus   map[string]mip.Float
	materials []string // 有覆盖约束的材料，升序
	// uncovered 任何入模矿石都无法产出的材料及其需求量。
	// 不为它们建约束（否则模型必然不可行），在结果里按全额缺口报告。
	uncovered map[string]float64
}

// Optimize 求解最小成本采购计划。
// demand、ores、book 均为调用方一次性提供，book 中各矿石档位按价格升序。
// maxOreTypes > 0 时限制计划中使用的矿石种类数。
func (o *Optimizer) Optimize(ctx context.Context, demand Demand, ores []Ore, book OrderBook, maxOreTypes int) Plan {
	book = ReduceOrderBook(book, demand.TotalUnits())

	bm := buildModel(demand, ores, book, maxOreTypes)

	// 退化输入：没有任何采购变量（无矿石、无需求或订单簿为空），
	// 直接给出零成本平凡计划，不调求解器。
	if len(bm.ores) == 0 {
		return trivialPlan(demand)
	}

	outcome, err := o.backend.Solve(ctx, bm.model)
	if err != nil {
		return Plan{Status: PlanFailed, Reason: err.Error()}
	}
	if !outcome.Feasible {
		return Plan{Status: PlanFailed, Reason: outcome.Status}
	}
	return decode(bm, outcome)
}

// buildModel 构建 MILP：
//   - select[o] ∈ {0,1}：矿石是否被启用；
//   - batches[o,t] ∈ [0, floor(剩余量/批大小)] 的整数：各档位采购批数；
//   - surplus[m] ≥ 0：材料过剩松弛，保证模型始终可行；
// 约束：batches ≤ cap×select（联动）、每材料 Σ batches×批产出 − surplus ≥ 需求、
// 可选 Σ select ≤ maxOreTypes。目标：Σ batches×批大小×单价 + ε×Σ surplus。
func buildModel(demand Demand, ores []Ore, book OrderBook, maxOreTypes int) *builtModel {
	m := mip.NewModel()
	m.Objective().SetMinimize()

	bm := &builtModel{
		model:     m,
		demand:    demand,
		selects:   make(map[int64]mip.Bool),
		tierVars:  make(map[int64][]tierVar),
		surplus:   make(map[string]mip.Float),
		uncovered: make(map[string]float64),
	}

	for _, ore := range ores {
		// 不产出任何需求材料的矿石整体排除，不产生变量。
		if !ore.YieldsAny(demand) {
			continue
		}

		tiers := book[ore.ID]
		vars := make([]tierVar, 0, len(tiers))
		for _, t := range tiers {
			maxBatches := t.MaxBatches(ore.BatchSize)
			if maxBatches <= 0 {
				continue
			}
			vars = append(vars, tierVar{
				v:          m.NewInt(0, maxBatches),
				orderID:    t.OrderID,
				price:      t.Price,
				maxBatches: maxBatches,
			})
		}
		if len(vars) == 0 {
			continue
		}

		sel := m.NewBool()
		for _, tv := range vars {
			// z − cap·y ≤ 0
			link := m.NewConstraint(mip.LessThanOrEqual, 0)
			link.NewTerm(1, tv.v)
			link.NewTerm(-float64(tv.maxBatches), sel)

			m.Objective().NewTerm(float64(ore.BatchSize)*tv.price, tv.v)
		}

		bm.ores = append(bm.ores, ore)
		bm.selects[ore.ID] = sel
		bm.tierVars[ore.ID] = vars
	}

	materials := make([]string, 0, len(demand))
	for name := range demand {
		materials = append(materials, name)
	}
	sort.Strings(materials)

	for _, mat := range materials {
		covered := false
		for _, ore := range bm.ores {
			if ore.BatchYields[mat] > 0 {
				covered = true
				break
			}
		}
		if !covered {
			bm.uncovered[mat] = demand[mat]
			continue
		}

		s := m.NewFloat(0, math.MaxFloat64)
		bm.surplus[mat] = s
		bm.materials = append(bm.materials, mat)
		m.Objective().NewTerm(surplusPenalty, s)

		balance := m.NewConstraint(mip.GreaterThanOrEqual, demand[mat])
		for _, ore := range bm.ores {
			yield := ore.BatchYields[mat]
			if yield == 0 {
				continue
			}
			for _, tv := range bm.tierVars[ore.ID] {
				balance.NewTerm(yield, tv.v)
			}
		}
		balance.NewTerm(-1, s)
	}

	if maxOreTypes > 0 {
		limit := m.NewConstraint(mip.LessThanOrEqual, float64(maxOreTypes))
		for _, ore := range bm.ores {
			limit.NewTerm(1, bm.selects[ore.ID])
		}
	}

	return bm
}

// decode 把可行解还原成采购计划。只有实际买了批次的矿石进入结果。
func decode(bm *builtModel, outcome Outcome) Plan {
	plan := Plan{
		Status:      PlanOK,
		Allocations: make([]OreAllocation, 0, len(bm.ores)),
		Surplus:     make(map[string]float64, len(bm.materials)+len(bm.uncovered)),
		SolveTime:   outcome.Runtime.Seconds(),
	}

	yielded := make(map[string]float64, len(bm.materials))

	for _, ore := range bm.ores {
		var (
			batchesTotal int64
			unitsTotal   int64
			costTotal    float64
		)
		fills := make([]TierFill, 0, len(bm.tierVars[ore.ID]))

		for _, tv := range bm.tierVars[ore.ID] {
			batches := int64(math.Round(outcome.Value(tv.v)))
			if batches <= 0 {
				continue
			}
			units := batches * ore.BatchSize
			cost := float64(units) * tv.price
			batchesTotal += batches
			unitsTotal += units
			costTotal += cost
			fills = append(fills, TierFill{
				OrderID:   tv.orderID,
				Batches:   batches,
				Units:     units,
				UnitPrice: tv.price,
				Cost:      cost,
			})
		}
		if batchesTotal == 0 {
			continue
		}
		for mat, y := range ore.BatchYields {
			yielded[mat] += float64(batchesTotal) * y
		}

		alloc := OreAllocation{
			OreID:     ore.ID,
			OreName:   ore.Name,
			BatchSize: ore.BatchSize,
			Batches:   batchesTotal,
			Units:     unitsTotal,
			Cost:      costTotal,
			Tiers:     fills,
			Selected:  int(math.Round(outcome.Value(bm.selects[ore.ID]))),
		}
		if unitsTotal > 0 {
			avg := costTotal / float64(unitsTotal)
			alloc.AvgUnitPrice = &avg
		}
		plan.Allocations = append(plan.Allocations, alloc)
		plan.TotalCost += costTotal
	}

	// 平衡约束是 ≥ 且松弛被罚向 0，松弛值不反映真实过剩；
	// 过剩按解出的实际产出减需求计算。
	for _, mat := range bm.materials {
		over := yielded[mat] - bm.demand[mat]
		if over < 0 {
			over = 0
		}
		plan.Surplus[mat] = over
	}
	for mat, qty := range bm.uncovered {
		plan.Surplus[mat] = qty
	}
	return plan
}

// trivialPlan 零成本空计划，缺口以松弛形式全额记入 Surplus。
func trivialPlan(demand Demand) Plan {
	surplus := make(map[string]float64, len(demand))
	for mat, qty := range demand {
		surplus[mat] = qty
	}
	return Plan{
		Status:      PlanOK,
		Allocations: []OreAllocation{},
		Surplus:     surplus,
	}
}
