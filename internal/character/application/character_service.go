package application

import (
	"context"
	"fmt"

	"github.com/wyfcoding/industrytracker/internal/character/domain"
)

// CharacterService 角色应用服务
type CharacterService struct {
	repo domain.Repository
}

func NewCharacterService(repo domain.Repository) *CharacterService {
	return &CharacterService{repo: repo}
}

// ReprocessingSkills 返回角色的精炼技能等级。
func (s *CharacterService) ReprocessingSkills(ctx context.Context, characterID int64) (map[string]int, error) {
	character, err := s.repo.GetCharacter(ctx, characterID)
	if err != nil {
		return nil, err
	}
	if character == nil {
		return nil, fmt.Errorf("character %d not found", characterID)
	}
	return character.ReprocessingSkills(), nil
}
