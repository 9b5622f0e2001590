package domain

import (
	"context"
	"math"
	"testing"
)

func veldspar() OreType {
	return OreType{
		ID:              1230,
		Name:            "Veldspar",
		PortionSize:     100,
		Volume:          0.1,
		ProcessingSkill: "Veldspar Processing",
		Materials:       []OreMaterial{{MaterialName: "Tritanium", Quantity: 400}},
	}
}

func almostEqual(a, b float64) bool {
	return math.Abs(a-b) < 1e-9
}

// 1. 全技能 5 级 + 设施加成的乘数链
func TestComputeYields_Multiplier(t *testing.T) {
	skills := map[string]int{
		SkillRefining:               5,
		SkillReprocessingEfficiency: 5,
		"Veldspar Processing":       5,
	}
	facility := &Facility{BaseYield: 0.5, RigBonus: 0.02, StructureBonus: 0.0}

	yields := ComputeYields(context.Background(), []OreType{veldspar()}, skills, facility, 0.04)

	if len(yields) != 1 {
		t.Fatalf("expected 1 yield entry, got %d", len(yields))
	}
	// 0.5 × 1.1 × 1.1 × 1.1 × 1.06
	mult := 0.5 * 1.1 * 1.1 * 1.1 * 1.06
	if got := yields[0].BatchYields["Tritanium"]; !almostEqual(got, 400*mult) {
		t.Errorf("Tritanium per batch = %v, want %v", got, 400*mult)
	}
	if !almostEqual(yields[0].YieldPercent, mult*100) {
		t.Errorf("yield percent = %v, want %v", yields[0].YieldPercent, mult*100)
	}
	if yields[0].BatchSize != 100 {
		t.Errorf("batch size = %d, want portion size 100", yields[0].BatchSize)
	}
	if !almostEqual(yields[0].BatchVolume, 10) {
		t.Errorf("batch volume = %v, want 10", yields[0].BatchVolume)
	}
}

// 2. 零技能时只有设施基础收率起作用
func TestComputeYields_NoSkills(t *testing.T) {
	facility := &Facility{BaseYield: 0.5}

	yields := ComputeYields(context.Background(), []OreType{veldspar()}, nil, facility, 0)

	if got := yields[0].BatchYields["Tritanium"]; !almostEqual(got, 200) {
		t.Errorf("Tritanium per batch = %v, want 200", got)
	}
}

// 3. 缺少专精技能映射的矿石被跳过
func TestComputeYields_MissingSkillMapping(t *testing.T) {
	unmapped := veldspar()
	unmapped.ProcessingSkill = ""

	yields := ComputeYields(context.Background(), []OreType{unmapped, veldspar()}, nil, &Facility{BaseYield: 0.5}, 0)

	if len(yields) != 1 {
		t.Fatalf("expected unmapped ore skipped, got %d entries", len(yields))
	}
}

// 4. portionSize 缺失时回退到 100
func TestComputeYields_DefaultPortion(t *testing.T) {
	ore := veldspar()
	ore.PortionSize = 0

	yields := ComputeYields(context.Background(), []OreType{ore}, nil, &Facility{BaseYield: 0.5}, 0)

	if yields[0].BatchSize != 100 {
		t.Errorf("batch size = %d, want default 100", yields[0].BatchSize)
	}
}
