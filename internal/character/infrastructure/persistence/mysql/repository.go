package mysql

import (
	"context"
	"errors"

	"github.com/wyfcoding/industrytracker/internal/character/domain"
	"gorm.io/gorm"
)

// CharacterModel 角色持久化对象
type CharacterModel struct {
	ID     int64             `gorm:"primaryKey"`
	Name   string            `gorm:"size:128"`
	Skills []SkillLevelModel `gorm:"foreignKey:CharacterID"`
}

func (CharacterModel) TableName() string { return "characters" }

// SkillLevelModel 技能等级持久化对象
type SkillLevelModel struct {
	ID          int64  `gorm:"primaryKey;autoIncrement"`
	CharacterID int64  `gorm:"uniqueIndex:idx_char_skill"`
	SkillName   string `gorm:"size:128;uniqueIndex:idx_char_skill"`
	Level       int
}

func (SkillLevelModel) TableName() string { return "character_skills" }

type characterRepository struct {
	db *gorm.DB
}

// NewCharacterRepository 创建角色仓储实例
func NewCharacterRepository(db *gorm.DB) domain.Repository {
	return &characterRepository{db: db}
}

func (r *characterRepository) GetCharacter(ctx context.Context, id int64) (*domain.Character, error) {
	var model CharacterModel
	err := r.db.WithContext(ctx).Preload("Skills").Where("id = ?", id).First(&model).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	skills := make(map[string]int, len(model.Skills))
	for _, s := range model.Skills {
		skills[s.SkillName] = s.Level
	}
	return &domain.Character{ID: model.ID, Name: model.Name, Skills: skills}, nil
}
