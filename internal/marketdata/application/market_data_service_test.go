package application

import (
	"context"
	"errors"
	"log/slog"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/wyfcoding/industrytracker/internal/marketdata/domain"
)

// fakeFetcher 记录调用次数的抓取器
type fakeFetcher struct {
	orders map[int64][]domain.SellOrder
	err    error
	calls  int
}

func (f *fakeFetcher) FetchSellOrders(ctx context.Context, regionID, typeID int64) ([]domain.SellOrder, error) {
	f.calls++
	if f.err != nil {
		return nil, f.err
	}
	return f.orders[typeID], nil
}

// memoryRepo 内存快照仓储
type memoryRepo struct {
	snapshots map[int64]*domain.Snapshot
}

func newMemoryRepo() *memoryRepo {
	return &memoryRepo{snapshots: make(map[int64]*domain.Snapshot)}
}

func (r *memoryRepo) GetSnapshot(ctx context.Context, regionID, typeID int64) (*domain.Snapshot, error) {
	return r.snapshots[typeID], nil
}

func (r *memoryRepo) SaveSnapshot(ctx context.Context, snapshot *domain.Snapshot) error {
	r.snapshots[snapshot.TypeID] = snapshot
	return nil
}

// fakePublisher 记录发布事件的发布器
type fakePublisher struct {
	published []int64
}

func (p *fakePublisher) PublishRefreshed(ctx context.Context, snapshot *domain.Snapshot) error {
	p.published = append(p.published, snapshot.TypeID)
	return nil
}

func sellOrder(id int64, price float64, volume int64) domain.SellOrder {
	return domain.SellOrder{OrderID: id, Price: decimal.NewFromFloat(price), VolumeRemain: volume, MinVolume: 1}
}

func newService(fetcher *fakeFetcher, repo *memoryRepo, pub domain.RefreshPublisher) *MarketDataService {
	return NewMarketDataService(fetcher, repo, pub, 10000002, 5*time.Minute, slog.Default())
}

// 1. 缓存未命中：回源、落库、发事件
func TestSellOrderBook_CacheMiss(t *testing.T) {
	fetcher := &fakeFetcher{orders: map[int64][]domain.SellOrder{
		1230: {sellOrder(101, 4.2, 500)},
	}}
	repo := newMemoryRepo()
	pub := &fakePublisher{}
	svc := newService(fetcher, repo, pub)

	book, err := svc.SellOrderBook(context.Background(), []int64{1230})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(book[1230]) != 1 || book[1230][0].OrderID != 101 {
		t.Errorf("book = %+v", book)
	}
	if fetcher.calls != 1 {
		t.Errorf("fetcher calls = %d, want 1", fetcher.calls)
	}
	if repo.snapshots[1230] == nil {
		t.Errorf("snapshot not persisted")
	}
	if len(pub.published) != 1 || pub.published[0] != 1230 {
		t.Errorf("published = %v, want [1230]", pub.published)
	}
}

// 2. 新鲜缓存命中时不回源
func TestSellOrderBook_CacheHit(t *testing.T) {
	fetcher := &fakeFetcher{}
	repo := newMemoryRepo()
	repo.snapshots[1230] = &domain.Snapshot{
		RegionID:  10000002,
		TypeID:    1230,
		Orders:    []domain.SellOrder{sellOrder(101, 4.2, 500)},
		FetchedAt: time.Now(),
	}
	svc := newService(fetcher, repo, nil)

	book, err := svc.SellOrderBook(context.Background(), []int64{1230})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if fetcher.calls != 0 {
		t.Errorf("fetcher must not be called on fresh cache, calls = %d", fetcher.calls)
	}
	if len(book[1230]) != 1 {
		t.Errorf("book = %+v", book)
	}
}

// 3. 过期缓存触发回源
func TestSellOrderBook_ExpiredCache(t *testing.T) {
	fetcher := &fakeFetcher{orders: map[int64][]domain.SellOrder{
		1230: {sellOrder(102, 5.0, 300)},
	}}
	repo := newMemoryRepo()
	repo.snapshots[1230] = &domain.Snapshot{
		RegionID:  10000002,
		TypeID:    1230,
		Orders:    []domain.SellOrder{sellOrder(101, 4.2, 500)},
		FetchedAt: time.Now().Add(-time.Hour),
	}
	svc := newService(fetcher, repo, nil)

	book, _ := svc.SellOrderBook(context.Background(), []int64{1230})
	if fetcher.calls != 1 {
		t.Errorf("fetcher calls = %d, want 1", fetcher.calls)
	}
	if book[1230][0].OrderID != 102 {
		t.Errorf("expected refreshed orders, got %+v", book[1230])
	}
}

// 4. 回源失败且有过期缓存时降级返回旧数据
func TestSellOrderBook_StaleFallback(t *testing.T) {
	fetcher := &fakeFetcher{err: errors.New("esi down")}
	repo := newMemoryRepo()
	repo.snapshots[1230] = &domain.Snapshot{
		RegionID:  10000002,
		TypeID:    1230,
		Orders:    []domain.SellOrder{sellOrder(101, 4.2, 500)},
		FetchedAt: time.Now().Add(-time.Hour),
	}
	svc := newService(fetcher, repo, nil)

	book, err := svc.SellOrderBook(context.Background(), []int64{1230})
	if err != nil {
		t.Fatalf("stale fallback should not error: %v", err)
	}
	if book[1230][0].OrderID != 101 {
		t.Errorf("expected stale orders, got %+v", book[1230])
	}
}

// 5. 回源失败且无缓存时向上报错
func TestSellOrderBook_FetchError(t *testing.T) {
	fetcher := &fakeFetcher{err: errors.New("esi down")}
	svc := newService(fetcher, newMemoryRepo(), nil)

	if _, err := svc.SellOrderBook(context.Background(), []int64{1230}); err == nil {
		t.Fatalf("expected error when fetch fails with no cache")
	}
}
