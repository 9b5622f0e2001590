package mysql

import (
	"github.com/wyfcoding/industrytracker/internal/staticdata/domain"
)

// OreTypeModel 矿石类型持久化对象
type OreTypeModel struct {
	ID              int64  `gorm:"primaryKey"`
	Name            string `gorm:"size:128;uniqueIndex"`
	PortionSize     int64
	Volume          float64
	Compressed      bool
	ProcessingSkill string             `gorm:"size:128"`
	Materials       []OreMaterialModel `gorm:"foreignKey:OreTypeID"`
}

func (OreTypeModel) TableName() string { return "ore_types" }

// OreMaterialModel 矿石每份基础产出持久化对象
type OreMaterialModel struct {
	ID           int64  `gorm:"primaryKey;autoIncrement"`
	OreTypeID    int64  `gorm:"index"`
	MaterialName string `gorm:"size:128"`
	Quantity     float64
}

func (OreMaterialModel) TableName() string { return "ore_materials" }

// MaterialModel 材料持久化对象
type MaterialModel struct {
	ID   int64  `gorm:"primaryKey"`
	Name string `gorm:"size:128;uniqueIndex"`
}

func (MaterialModel) TableName() string { return "materials" }

// FacilityModel 精炼设施持久化对象
type FacilityModel struct {
	ID             int64  `gorm:"primaryKey"`
	Name           string `gorm:"size:128"`
	BaseYield      float64
	RigBonus       float64
	StructureBonus float64
}

func (FacilityModel) TableName() string { return "facilities" }

func toOreType(m *OreTypeModel) domain.OreType {
	materials := make([]domain.OreMaterial, 0, len(m.Materials))
	for _, mat := range m.Materials {
		materials = append(materials, domain.OreMaterial{
			MaterialName: mat.MaterialName,
			Quantity:     mat.Quantity,
		})
	}
	return domain.OreType{
		ID:              m.ID,
		Name:            m.Name,
		PortionSize:     m.PortionSize,
		Volume:          m.Volume,
		Compressed:      m.Compressed,
		ProcessingSkill: m.ProcessingSkill,
		Materials:       materials,
	}
}

func toFacility(m *FacilityModel) domain.Facility {
	return domain.Facility{
		ID:             m.ID,
		Name:           m.Name,
		BaseYield:      m.BaseYield,
		RigBonus:       m.RigBonus,
		StructureBonus: m.StructureBonus,
	}
}
