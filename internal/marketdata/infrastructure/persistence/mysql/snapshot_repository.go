package mysql

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/wyfcoding/industrytracker/internal/marketdata/domain"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// SnapshotModel 卖单快照持久化对象。订单列表整体按 JSON 存储，
// 读路径只需要整个快照，不需要按单查询。
type SnapshotModel struct {
	ID        int64  `gorm:"primaryKey;autoIncrement"`
	RegionID  int64  `gorm:"uniqueIndex:idx_region_type"`
	TypeID    int64  `gorm:"uniqueIndex:idx_region_type"`
	Orders    []byte `gorm:"type:json"`
	FetchedAt time.Time
}

func (SnapshotModel) TableName() string { return "market_order_snapshots" }

type snapshotRepository struct {
	db *gorm.DB
}

// NewSnapshotRepository 创建快照仓储实例
func NewSnapshotRepository(db *gorm.DB) domain.Repository {
	return &snapshotRepository{db: db}
}

func (r *snapshotRepository) GetSnapshot(ctx context.Context, regionID, typeID int64) (*domain.Snapshot, error) {
	var model SnapshotModel
	err := r.db.WithContext(ctx).
		Where("region_id = ? AND type_id = ?", regionID, typeID).
		First(&model).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	var orders []domain.SellOrder
	if err := json.Unmarshal(model.Orders, &orders); err != nil {
		return nil, err
	}
	return &domain.Snapshot{
		RegionID:  model.RegionID,
		TypeID:    model.TypeID,
		Orders:    orders,
		FetchedAt: model.FetchedAt,
	}, nil
}

func (r *snapshotRepository) SaveSnapshot(ctx context.Context, snapshot *domain.Snapshot) error {
	payload, err := json.Marshal(snapshot.Orders)
	if err != nil {
		return err
	}
	model := SnapshotModel{
		RegionID:  snapshot.RegionID,
		TypeID:    snapshot.TypeID,
		Orders:    payload,
		FetchedAt: snapshot.FetchedAt,
	}
	return r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "region_id"}, {Name: "type_id"}},
		DoUpdates: clause.AssignmentColumns([]string{"orders", "fetched_at"}),
	}).Create(&model).Error
}
