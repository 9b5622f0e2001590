package mysql

import (
	"context"
	"errors"

	"github.com/wyfcoding/industrytracker/internal/staticdata/domain"
	"gorm.io/gorm"
)

type staticDataRepository struct {
	db *gorm.DB
}

// NewStaticDataRepository 创建静态数据仓储实例
func NewStaticDataRepository(db *gorm.DB) domain.Repository {
	return &staticDataRepository{db: db}
}

func (r *staticDataRepository) ListOres(ctx context.Context) ([]domain.OreType, error) {
	var models []OreTypeModel
	err := r.db.WithContext(ctx).
		Preload("Materials").
		Order("id").
		Find(&models).Error
	if err != nil {
		return nil, err
	}

	ores := make([]domain.OreType, 0, len(models))
	for i := range models {
		ores = append(ores, toOreType(&models[i]))
	}
	return ores, nil
}

func (r *staticDataRepository) ListMaterials(ctx context.Context) ([]domain.Material, error) {
	var models []MaterialModel
	if err := r.db.WithContext(ctx).Order("id").Find(&models).Error; err != nil {
		return nil, err
	}

	materials := make([]domain.Material, 0, len(models))
	for _, m := range models {
		materials = append(materials, domain.Material{ID: m.ID, Name: m.Name})
	}
	return materials, nil
}

func (r *staticDataRepository) ListFacilities(ctx context.Context) ([]domain.Facility, error) {
	var models []FacilityModel
	if err := r.db.WithContext(ctx).Order("id").Find(&models).Error; err != nil {
		return nil, err
	}

	facilities := make([]domain.Facility, 0, len(models))
	for i := range models {
		facilities = append(facilities, toFacility(&models[i]))
	}
	return facilities, nil
}

func (r *staticDataRepository) GetFacility(ctx context.Context, id int64) (*domain.Facility, error) {
	var model FacilityModel
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&model).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	facility := toFacility(&model)
	return &facility, nil
}
