package mysql

import (
	"context"

	"gorm.io/gorm"
)

// Seed 在空库时写入一套基础静态数据，便于本地起服即用。
// 正式部署应从 SDE 导入覆盖。事务边界由调用方控制。
func Seed(ctx context.Context, db *gorm.DB) error {
	var count int64
	if err := db.WithContext(ctx).Model(&OreTypeModel{}).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return nil
	}

	materials := []MaterialModel{
		{ID: 34, Name: "Tritanium"},
		{ID: 35, Name: "Pyerite"},
		{ID: 36, Name: "Mexallon"},
		{ID: 37, Name: "Isogen"},
		{ID: 38, Name: "Nocxium"},
		{ID: 39, Name: "Zydrine"},
		{ID: 40, Name: "Megacyte"},
	}

	ores := []OreTypeModel{
		{
			ID: 1230, Name: "Veldspar", PortionSize: 100, Volume: 0.1,
			ProcessingSkill: "Veldspar Processing",
			Materials:       []OreMaterialModel{{MaterialName: "Tritanium", Quantity: 400}},
		},
		{
			ID: 62516, Name: "Compressed Veldspar", PortionSize: 1, Volume: 0.15, Compressed: true,
			ProcessingSkill: "Veldspar Processing",
			Materials:       []OreMaterialModel{{MaterialName: "Tritanium", Quantity: 400}},
		},
		{
			ID: 1228, Name: "Scordite", PortionSize: 100, Volume: 0.15,
			ProcessingSkill: "Scordite Processing",
			Materials: []OreMaterialModel{
				{MaterialName: "Tritanium", Quantity: 150},
				{MaterialName: "Pyerite", Quantity: 90},
			},
		},
		{
			ID: 62520, Name: "Compressed Scordite", PortionSize: 1, Volume: 0.19, Compressed: true,
			ProcessingSkill: "Scordite Processing",
			Materials: []OreMaterialModel{
				{MaterialName: "Tritanium", Quantity: 150},
				{MaterialName: "Pyerite", Quantity: 90},
			},
		},
		{
			ID: 18, Name: "Plagioclase", PortionSize: 100, Volume: 0.35,
			ProcessingSkill: "Plagioclase Processing",
			Materials: []OreMaterialModel{
				{MaterialName: "Pyerite", Quantity: 175},
				{MaterialName: "Mexallon", Quantity: 70},
			},
		},
		{
			ID: 1224, Name: "Pyroxeres", PortionSize: 100, Volume: 0.3,
			ProcessingSkill: "Pyroxeres Processing",
			Materials: []OreMaterialModel{
				{MaterialName: "Pyerite", Quantity: 90},
				{MaterialName: "Mexallon", Quantity: 30},
			},
		},
		{
			ID: 20, Name: "Kernite", PortionSize: 100, Volume: 1.2,
			ProcessingSkill: "Kernite Processing",
			Materials: []OreMaterialModel{
				{MaterialName: "Mexallon", Quantity: 60},
				{MaterialName: "Isogen", Quantity: 120},
			},
		},
	}

	facilities := []FacilityModel{
		{ID: 1, Name: "NPC Station", BaseYield: 0.5},
		{ID: 2, Name: "Athanor", BaseYield: 0.52, RigBonus: 0.02},
		{ID: 3, Name: "Tatara", BaseYield: 0.55, RigBonus: 0.04},
	}

	if err := db.WithContext(ctx).Create(&materials).Error; err != nil {
		return err
	}
	if err := db.WithContext(ctx).Create(&ores).Error; err != nil {
		return err
	}
	return db.WithContext(ctx).Create(&facilities).Error
}
