package application

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sort"

	characterapp "github.com/wyfcoding/industrytracker/internal/character/application"
	marketdomain "github.com/wyfcoding/industrytracker/internal/marketdata/domain"
	"github.com/wyfcoding/industrytracker/internal/procurement/domain"
	staticdomain "github.com/wyfcoding/industrytracker/internal/staticdata/domain"
)

// ErrValidation 请求参数不合法。HTTP 层据此映射 400。
var ErrValidation = errors.New("invalid optimize request")

// SkillProvider 精炼技能来源的窄契约。
type SkillProvider interface {
	ReprocessingSkills(ctx context.Context, characterID int64) (map[string]int, error)
}

// YieldProvider 批产出来源的窄契约。产出已含技能/设施/植入体加成。
type YieldProvider interface {
	ComputeOreYields(ctx context.Context, skills map[string]int, facilityID int64, implantBonus float64, onlyCompressed bool) ([]staticdomain.OreYield, error)
	ListMaterials(ctx context.Context) ([]staticdomain.Material, error)
}

// PriceProvider 订单簿来源的窄契约。卖单按价格升序。
type PriceProvider interface {
	SellOrderBook(ctx context.Context, typeIDs []int64) (map[int64][]marketdomain.SellOrder, error)
}

// Planner 分配求解的窄契约，默认实现为 domain.Optimizer。
type Planner interface {
	Optimize(ctx context.Context, demand domain.Demand, ores []domain.Ore, book domain.OrderBook, maxOreTypes int) domain.Plan
}

// 编译期保证默认实现满足窄契约。
var (
	_ SkillProvider = (*characterapp.CharacterService)(nil)
	_ Planner       = (*domain.Optimizer)(nil)
)

// OptimizeCommand 采购优化命令
type OptimizeCommand struct {
	Demands        map[string]float64 `json:"demands"`
	CharacterID    int64              `json:"character_id"`
	FacilityID     int64              `json:"facility_id"`
	ImplantPct     float64            `json:"implant_pct"`
	OnlyCompressed bool               `json:"only_compressed"`
	MaxOreTypes    int                `json:"max_ore_types"`
}

// OptimizeResult 采购优化结果。
// DirectTotalCost 是跳过精炼、按各材料最优卖价直接购买的对照成本；
// Uncovered 列出没有任何候选矿石能产出的需求材料（计划里以全额缺口出现）。
type OptimizeResult struct {
	domain.Plan
	DirectTotalCost float64                 `json:"direct_total_cost"`
	Uncovered       []string                `json:"uncovered,omitempty"`
	OreYields       []staticdomain.OreYield `json:"ore_yields"`
}

// OptimizerService 采购优化应用服务
type OptimizerService struct {
	skills  SkillProvider
	yields  YieldProvider
	prices  PriceProvider
	planner Planner
	logger  *slog.Logger
}

func NewOptimizerService(skills SkillProvider, yields YieldProvider, prices PriceProvider, planner Planner, logger *slog.Logger) *OptimizerService {
	return &OptimizerService{
		skills:  skills,
		yields:  yields,
		prices:  prices,
		planner: planner,
		logger:  logger,
	}
}

// Optimize 执行一次采购优化：技能 → 批产出 → 候选矿石 → 订单簿 → MILP。
func (s *OptimizerService) Optimize(ctx context.Context, cmd OptimizeCommand) (*OptimizeResult, error) {
	if err := validate(cmd); err != nil {
		return nil, err
	}

	skills, err := s.skills.ReprocessingSkills(ctx, cmd.CharacterID)
	if err != nil {
		return nil, err
	}

	yields, err := s.yields.ComputeOreYields(ctx, skills, cmd.FacilityID, cmd.ImplantPct/100, cmd.OnlyCompressed)
	if err != nil {
		return nil, err
	}

	viable := viableOres(yields, cmd.Demands)

	typeIDs := make([]int64, 0, len(viable))
	for _, y := range viable {
		typeIDs = append(typeIDs, y.ID)
	}
	rawBook, err := s.prices.SellOrderBook(ctx, typeIDs)
	if err != nil {
		return nil, err
	}

	directCost, err := s.directPurchaseCost(ctx, cmd.Demands)
	if err != nil {
		// 对照价拿不到不阻塞优化本身。
		s.logger.Warn("direct purchase cost unavailable", "error", err)
		directCost = 0
	}

	maxOreTypes := cmd.MaxOreTypes
	if maxOreTypes <= 0 {
		maxOreTypes = len(cmd.Demands)
	}

	ores := make([]domain.Ore, 0, len(viable))
	for _, y := range viable {
		ores = append(ores, domain.Ore{
			ID:          y.ID,
			Name:        y.Name,
			BatchSize:   y.BatchSize,
			BatchYields: y.BatchYields,
		})
	}
	book := make(domain.OrderBook, len(rawBook))
	for typeID, orders := range rawBook {
		tiers := make([]domain.OrderTier, 0, len(orders))
		for _, o := range orders {
			tiers = append(tiers, domain.OrderTier{
				OrderID:      o.OrderID,
				Price:        o.Price.InexactFloat64(),
				VolumeRemain: o.VolumeRemain,
			})
		}
		book[typeID] = tiers
	}

	plan := s.planner.Optimize(ctx, cmd.Demands, ores, book, maxOreTypes)

	result := &OptimizeResult{
		Plan:            plan,
		DirectTotalCost: directCost,
		Uncovered:       uncoveredMaterials(cmd.Demands, viable),
		OreYields:       viable,
	}

	s.logger.Info("procurement optimization finished",
		"status", plan.Status,
		"total_cost", plan.TotalCost,
		"solve_time_seconds", plan.SolveTime,
		"ores_considered", len(viable),
		"ores_selected", len(plan.Allocations),
	)
	return result, nil
}

func validate(cmd OptimizeCommand) error {
	if len(cmd.Demands) == 0 {
		return fmt.Errorf("%w: demands is required", ErrValidation)
	}
	for name, qty := range cmd.Demands {
		if qty < 0 {
			return fmt.Errorf("%w: negative demand for %s", ErrValidation, name)
		}
	}
	if cmd.CharacterID == 0 {
		return fmt.Errorf("%w: character_id is required", ErrValidation)
	}
	if cmd.FacilityID == 0 {
		return fmt.Errorf("%w: facility_id is required", ErrValidation)
	}
	return nil
}

// viableOres 保留产出集非空且完全落在需求材料内的矿石，
// 避免为凑一种材料连带买进一堆需求外产出。
func viableOres(yields []staticdomain.OreYield, demands map[string]float64) []staticdomain.OreYield {
	viable := make([]staticdomain.OreYield, 0, len(yields))
	for _, y := range yields {
		if len(y.BatchYields) == 0 {
			continue
		}
		subset := true
		for mat := range y.BatchYields {
			if _, ok := demands[mat]; !ok {
				subset = false
				break
			}
		}
		if subset {
			viable = append(viable, y)
		}
	}
	return viable
}

// directPurchaseCost 按各材料当前最优卖价直接购买的总成本，用作对照。
func (s *OptimizerService) directPurchaseCost(ctx context.Context, demands map[string]float64) (float64, error) {
	materials, err := s.yields.ListMaterials(ctx)
	if err != nil {
		return 0, err
	}

	idByName := make(map[string]int64, len(materials))
	ids := make([]int64, 0, len(materials))
	for _, m := range materials {
		if _, ok := demands[m.Name]; ok {
			idByName[m.Name] = m.ID
			ids = append(ids, m.ID)
		}
	}
	if len(ids) == 0 {
		return 0, nil
	}

	book, err := s.prices.SellOrderBook(ctx, ids)
	if err != nil {
		return 0, err
	}

	total := 0.0
	for name, qty := range demands {
		id, ok := idByName[name]
		if !ok {
			continue
		}
		orders := book[id]
		if len(orders) == 0 {
			continue
		}
		total += qty * orders[0].Price.InexactFloat64()
	}
	return total, nil
}

// uncoveredMaterials 列出没有任何候选矿石能产出的需求材料。
func uncoveredMaterials(demands map[string]float64, viable []staticdomain.OreYield) []string {
	var uncovered []string
	for mat, qty := range demands {
		if qty <= 0 {
			continue
		}
		covered := false
		for _, y := range viable {
			if y.BatchYields[mat] > 0 {
				covered = true
				break
			}
		}
		if !covered {
			uncovered = append(uncovered, mat)
		}
	}
	sort.Strings(uncovered)
	return uncovered
}
