// Package domain 提供行业静态数据：矿石类型、材料、精炼设施，
// 以及基于角色技能与设施加成的批产出计算。
package domain

import "context"

// OreMaterial 矿石每份（portion）精炼的基础产出。
type OreMaterial struct {
	MaterialName string
	Quantity     float64
}

// OreType 矿石类型静态数据。PortionSize 为一份精炼消耗的矿石单位数，
// 也是市场上按批交易的批大小。
type OreType struct {
	ID              int64
	Name            string
	PortionSize     int64
	Volume          float64
	Compressed      bool
	ProcessingSkill string
	Materials       []OreMaterial
}

// Material 可精炼出的材料。
type Material struct {
	ID   int64
	Name string
}

// Facility 精炼设施及其加成。
type Facility struct {
	ID             int64
	Name           string
	BaseYield      float64
	RigBonus       float64
	StructureBonus float64
}

// Repository 静态数据仓储。
type Repository interface {
	ListOres(ctx context.Context) ([]OreType, error)
	ListMaterials(ctx context.Context) ([]Material, error)
	ListFacilities(ctx context.Context) ([]Facility, error)
	GetFacility(ctx context.Context, id int64) (*Facility, error)
}
