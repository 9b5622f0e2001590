// Package domain 提供分层采购优化（Tiered Procurement Optimization）核心逻辑。
// 给定一组材料需求与各矿石（Ore）的卖单订单簿，求解最小成本的整批采购组合，
// 支持限制使用的矿石种类数量。
package domain

// Demand 材料需求，材料名 -> 所需数量。
type Demand map[string]float64

// Ore 候选矿石。BatchYields 为精炼一批（BatchSize 个单位）产出的材料数量，
// 由静态数据上下文根据角色技能与设施加成预先算好，这里视作不透明输入。
type Ore struct {
	ID          int64
	Name        string
	BatchSize   int64
	BatchYields map[string]float64
}

// YieldsAny 判断矿石是否能产出任一需求材料。
// 完全不产出需求材料的矿石不进入模型，也不产生任何决策变量。
func (o *Ore) YieldsAny(demand Demand) bool {
	for m, qty := range o.BatchYields {
		if qty > 0 {
			if _, ok := demand[m]; ok {
				return true
			}
		}
	}
	return false
}

// OrderTier 订单簿中的一个价格档位：一张限量卖单。
// 同一矿石的档位由调用方保证按价格升序给出，核心不做重排序。
type OrderTier struct {
	OrderID      int64
	Price        float64
	VolumeRemain int64
}

// MaxBatches 该档位剩余量可凑出的最大整批数。
func (t *OrderTier) MaxBatches(batchSize int64) int64 {
	if batchSize <= 0 {
		return 0
	}
	return t.VolumeRemain / batchSize
}

// OrderBook 矿石 ID -> 升序档位列表。
type OrderBook map[int64][]OrderTier

// PlanStatus 求解结果状态。
type PlanStatus string

const (
	PlanOK     PlanStatus = "ok"
	PlanFailed PlanStatus = "failed"
)

// TierFill 单个档位的成交明细。
type TierFill struct {
	OrderID   int64   `json:"order_id"`
	Batches   int64   `json:"batches"`
	Units     int64   `json:"units"`
	UnitPrice float64 `json:"unit_price"`
	Cost      float64 `json:"cost"`
}

// OreAllocation 单个矿石的采购汇总。
type OreAllocation struct {
	OreID        int64      `json:"ore_id"`
	OreName      string     `json:"ore_name"`
	BatchSize    int64      `json:"batch_size"`
	Batches      int64      `json:"batches"`
	Units        int64      `json:"units"`
	Cost         float64    `json:"cost"`
	AvgUnitPrice *float64   `json:"avg_unit_price"`
	Tiers        []TierFill `json:"tiers"`
	Selected     int        `json:"selected"`
}

// Plan 采购计划。失败时只有 Status 与 Reason 有意义，不产生部分计划。
// 所有失败以数据形式返回而非 error，由调用方决定如何呈现。
type Plan struct {
	Status      PlanStatus         `json:"status"`
	Reason      string             `json:"reason,omitempty"`
	TotalCost   float64            `json:"total_cost"`
	Allocations []OreAllocation    `json:"solution"`
	Surplus     map[string]float64 `json:"surplus"`
	SolveTime   float64            `json:"solve_time_seconds"`
}

// TotalUnits 需求总量，作为订单簿裁剪的粗粒度规模信号。
func (d Demand) TotalUnits() float64 {
	total := 0.0
	for _, qty := range d {
		total += qty
	}
	return total
}
