package domain

import (
	"context"
	"log/slog"
)

// 精炼通用技能名。每级 2% 加成，与矿石专精技能同样计。
const (
	SkillRefining               = "Refining"
	SkillReprocessingEfficiency = "Reprocessing Efficiency"
)

// OreYield 一个矿石在给定技能与设施下的实际批产出。
type OreYield struct {
	ID           int64              `json:"id"`
	Name         string             `json:"name"`
	BatchSize    int64              `json:"batch_size"`
	BatchVolume  float64            `json:"batch_volume"`
	BatchYields  map[string]float64 `json:"batch_yields"`
	YieldPercent float64            `json:"batch_yield_percent"`
	Compressed   bool               `json:"compressed"`
}

// ComputeYields 计算每个矿石的批产出。
// 乘数 = 设施基础收率 × (1+0.02×Refining) × (1+0.02×ReprocessingEfficiency)
// × (1+0.02×矿石专精) × (1+插件加成+改装加成+植入体加成)。
// 基础产出按份（portion）给出，乘数直接作用于每份数量，不按 portionSize 摊薄。
// 缺少专精技能映射的矿石跳过并告警。
func ComputeYields(ctx context.Context, ores []OreType, skills map[string]int, facility *Facility, implantBonus float64) []OreYield {
	refining := skills[SkillRefining]
	reEff := skills[SkillReprocessingEfficiency]

	results := make([]OreYield, 0, len(ores))
	for _, ore := range ores {
		if ore.ProcessingSkill == "" {
			slog.WarnContext(ctx, "no processing skill mapping for ore, skipping", "ore", ore.Name)
			continue
		}
		oreSkill := skills[ore.ProcessingSkill]

		mult := facility.BaseYield
		mult *= 1 + 0.02*float64(refining)
		mult *= 1 + 0.02*float64(reEff)
		mult *= 1 + 0.02*float64(oreSkill)
		mult *= 1 + facility.RigBonus + facility.StructureBonus + implantBonus

		portion := ore.PortionSize
		if portion <= 0 {
			portion = 100
		}

		yields := make(map[string]float64, len(ore.Materials))
		for _, mat := range ore.Materials {
			yields[mat.MaterialName] = mat.Quantity * mult
		}

		results = append(results, OreYield{
			ID:           ore.ID,
			Name:         ore.Name,
			BatchSize:    portion,
			BatchVolume:  ore.Volume * float64(portion),
			BatchYields:  yields,
			YieldPercent: mult * 100,
			Compressed:   ore.Compressed,
		})
	}
	return results
}
