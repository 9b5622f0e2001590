// Package domain 提供市场卖单订单簿的领域模型。
// 价格来源是外部市场 API，核心只依赖本包的窄接口。
package domain

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
)

// SellOrder 一张卖单。Price 为单位价格，VolumeRemain 为剩余单位数。
type SellOrder struct {
	OrderID      int64           `json:"order_id"`
	TypeID       int64           `json:"type_id"`
	Price        decimal.Decimal `json:"price"`
	VolumeRemain int64           `json:"volume_remain"`
	MinVolume    int64           `json:"min_volume"`
}

// Snapshot 某个商品在某区域的卖单快照，价格升序。
type Snapshot struct {
	RegionID  int64
	TypeID    int64
	Orders    []SellOrder
	FetchedAt time.Time
}

// Expired 快照是否超过给定存活期。
func (s *Snapshot) Expired(ttl time.Duration, now time.Time) bool {
	return now.Sub(s.FetchedAt) >= ttl
}

// Fetcher 市场 API 抓取器。返回的卖单已按价格升序。
type Fetcher interface {
	FetchSellOrders(ctx context.Context, regionID, typeID int64) ([]SellOrder, error)
}

// Repository 快照缓存仓储。未命中返回 (nil, nil)。
type Repository interface {
	GetSnapshot(ctx context.Context, regionID, typeID int64) (*Snapshot, error)
	SaveSnapshot(ctx context.Context, snapshot *Snapshot) error
}

// RefreshPublisher 快照刷新事件发布器。
type RefreshPublisher interface {
	PublishRefreshed(ctx context.Context, snapshot *Snapshot) error
}
