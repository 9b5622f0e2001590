package application

import (
	"context"
	"log/slog"
	"time"

	"github.com/wyfcoding/industrytracker/internal/marketdata/domain"
)

// MarketDataService 市场数据应用服务。
// 对外提供按商品聚合的卖单订单簿，缓存未命中或过期时回源市场 API，
// 刷新成功后发布事件。
type MarketDataService struct {
	fetcher   domain.Fetcher
	repo      domain.Repository
	publisher domain.RefreshPublisher // 可为 nil，表示不发事件
	regionID  int64
	ttl       time.Duration
	logger    *slog.Logger
	now       func() time.Time
}

func NewMarketDataService(fetcher domain.Fetcher, repo domain.Repository, publisher domain.RefreshPublisher, regionID int64, ttl time.Duration, logger *slog.Logger) *MarketDataService {
	return &MarketDataService{
		fetcher:   fetcher,
		repo:      repo,
		publisher: publisher,
		regionID:  regionID,
		ttl:       ttl,
		logger:    logger,
		now:       time.Now,
	}
}

// SellOrderBook 返回每个商品的卖单列表（价格升序）。
// 没有卖单的商品映射到空列表而不是缺失的键。
func (s *MarketDataService) SellOrderBook(ctx context.Context, typeIDs []int64) (map[int64][]domain.SellOrder, error) {
	book := make(map[int64][]domain.SellOrder, len(typeIDs))
	for _, typeID := range typeIDs {
		snapshot, err := s.snapshot(ctx, typeID)
		if err != nil {
			return nil, err
		}
		book[typeID] = snapshot.Orders
	}
	return book, nil
}

// snapshot 取一个商品的快照，优先走缓存。
func (s *MarketDataService) snapshot(ctx context.Context, typeID int64) (*domain.Snapshot, error) {
	cached, err := s.repo.GetSnapshot(ctx, s.regionID, typeID)
	if err != nil {
		return nil, err
	}
	if cached != nil && !cached.Expired(s.ttl, s.now()) {
		return cached, nil
	}

	orders, err := s.fetcher.FetchSellOrders(ctx, s.regionID, typeID)
	if err != nil {
		// 回源失败但有过期缓存时降级使用，只记告警。
		if cached != nil {
			s.logger.Warn("market fetch failed, serving stale snapshot",
				"type_id", typeID, "fetched_at", cached.FetchedAt, "error", err)
			return cached, nil
		}
		return nil, err
	}

	snapshot := &domain.Snapshot{
		RegionID:  s.regionID,
		TypeID:    typeID,
		Orders:    orders,
		FetchedAt: s.now(),
	}
	if err := s.repo.SaveSnapshot(ctx, snapshot); err != nil {
		return nil, err
	}

	if s.publisher != nil {
		if err := s.publisher.PublishRefreshed(ctx, snapshot); err != nil {
			// 事件丢失不影响本次请求。
			s.logger.Warn("failed to publish refresh event", "type_id", typeID, "error", err)
		}
	}

	s.logger.Info("market snapshot refreshed", "type_id", typeID, "orders", len(orders))
	return snapshot, nil
}
