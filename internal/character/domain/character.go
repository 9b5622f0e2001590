// Package domain 提供角色与精炼技能的领域模型。
// 技能等级来自账号同步流程，这里只做只读查询。
package domain

import "context"

// Character 游戏角色
type Character struct {
	ID     int64
	Name   string
	Skills map[string]int // 技能名 -> 等级 (0-5)
}

// ReprocessingSkills 过滤出精炼相关技能：通用两项加所有 "* Processing" 专精。
func (c *Character) ReprocessingSkills() map[string]int {
	skills := make(map[string]int)
	for name, level := range c.Skills {
		if name == "Refining" || name == "Reprocessing Efficiency" || hasProcessingSuffix(name) {
			skills[name] = level
		}
	}
	return skills
}

func hasProcessingSuffix(name string) bool {
	const suffix = " Processing"
	return len(name) > len(suffix) && name[len(name)-len(suffix):] == suffix
}

// Repository 角色仓储。未找到返回 (nil, nil)。
type Repository interface {
	GetCharacter(ctx context.Context, id int64) (*Character, error)
}
