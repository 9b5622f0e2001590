package mysql

import (
	"context"

	"gorm.io/gorm"
)

// Seed 在空库时写入一个演示角色，技能全满，便于本地联调。
func Seed(ctx context.Context, db *gorm.DB) error {
	var count int64
	if err := db.WithContext(ctx).Model(&CharacterModel{}).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return nil
	}

	demo := CharacterModel{
		ID:   1,
		Name: "Demo Pilot",
		Skills: []SkillLevelModel{
			{SkillName: "Refining", Level: 5},
			{SkillName: "Reprocessing Efficiency", Level: 5},
			{SkillName: "Veldspar Processing", Level: 5},
			{SkillName: "Scordite Processing", Level: 5},
			{SkillName: "Plagioclase Processing", Level: 5},
			{SkillName: "Pyroxeres Processing", Level: 5},
			{SkillName: "Kernite Processing", Level: 5},
		},
	}
	return db.WithContext(ctx).Create(&demo).Error
}
