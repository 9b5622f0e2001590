package application

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/wyfcoding/industrytracker/internal/staticdata/domain"
)

// StaticDataService 静态数据应用服务
type StaticDataService struct {
	repo   domain.Repository
	logger *slog.Logger
}

func NewStaticDataService(repo domain.Repository, logger *slog.Logger) *StaticDataService {
	return &StaticDataService{repo: repo, logger: logger}
}

func (s *StaticDataService) ListOres(ctx context.Context) ([]domain.OreType, error) {
	return s.repo.ListOres(ctx)
}

func (s *StaticDataService) ListMaterials(ctx context.Context) ([]domain.Material, error) {
	return s.repo.ListMaterials(ctx)
}

func (s *StaticDataService) ListFacilities(ctx context.Context) ([]domain.Facility, error) {
	return s.repo.ListFacilities(ctx)
}

// ComputeOreYields 计算全部矿石在给定技能、设施与植入体加成下的批产出。
// onlyCompressed 为 true 时只保留压缩矿。
func (s *StaticDataService) ComputeOreYields(ctx context.Context, skills map[string]int, facilityID int64, implantBonus float64, onlyCompressed bool) ([]domain.OreYield, error) {
	facility, err := s.repo.GetFacility(ctx, facilityID)
	if err != nil {
		return nil, err
	}
	if facility == nil {
		return nil, fmt.Errorf("facility %d not found", facilityID)
	}

	ores, err := s.repo.ListOres(ctx)
	if err != nil {
		return nil, err
	}

	yields := domain.ComputeYields(ctx, ores, skills, facility, implantBonus)
	if !onlyCompressed {
		return yields, nil
	}

	filtered := make([]domain.OreYield, 0, len(yields))
	for _, y := range yields {
		if y.Compressed {
			filtered = append(filtered, y)
		}
	}
	return filtered, nil
}
