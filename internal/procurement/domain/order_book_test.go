package domain

import (
	"testing"
)

// 1. 相邻同价档位合并
func TestReduceOrderBook_MergeAdjacentEqualPrice(t *testing.T) {
	book := OrderBook{
		1: {
			{OrderID: 11, Price: 5.0, VolumeRemain: 50},
			{OrderID: 12, Price: 5.0, VolumeRemain: 70},
			{OrderID: 13, Price: 6.0, VolumeRemain: 100},
		},
	}

	reduced := ReduceOrderBook(book, 1e9)

	tiers := reduced[1]
	if len(tiers) != 2 {
		t.Fatalf("expected 2 tiers after merge, got %d", len(tiers))
	}
	if tiers[0].Price != 5.0 || tiers[0].VolumeRemain != 120 {
		t.Errorf("merged tier = %+v, want price 5.0 volume 120", tiers[0])
	}
	if tiers[1].Price != 6.0 {
		t.Errorf("second tier price = %v, want 6.0", tiers[1].Price)
	}
}

// 2. 同价档位被其他价格隔开时保持独立
func TestReduceOrderBook_EqualPriceSeparatedStaysSplit(t *testing.T) {
	book := OrderBook{
		1: {
			{OrderID: 11, Price: 5.0, VolumeRemain: 50},
			{OrderID: 12, Price: 6.0, VolumeRemain: 30},
			{OrderID: 13, Price: 5.0, VolumeRemain: 70},
		},
	}

	reduced := ReduceOrderBook(book, 1e9)

	tiers := reduced[1]
	if len(tiers) != 3 {
		t.Fatalf("expected 3 tiers, got %d", len(tiers))
	}
	if tiers[2].Price != 5.0 || tiers[2].VolumeRemain != 70 {
		t.Errorf("third tier = %+v, want untouched 5.0/70", tiers[2])
	}
}

// 3. 累计量达到 需求×1.05 后截断，跨过阈值的档位保留
func TestReduceOrderBook_PruneAtThreshold(t *testing.T) {
	book := OrderBook{
		1: {
			{OrderID: 11, Price: 5.0, VolumeRemain: 600},
			{OrderID: 12, Price: 6.0, VolumeRemain: 600},
			{OrderID: 13, Price: 7.0, VolumeRemain: 600},
		},
	}

	// 阈值 = 1000 × 1.05 = 1050，前两档累计 1200 已越过
	reduced := ReduceOrderBook(book, 1000)

	tiers := reduced[1]
	if len(tiers) != 2 {
		t.Fatalf("expected 2 tiers kept, got %d", len(tiers))
	}
	if tiers[0].OrderID != 11 || tiers[1].OrderID != 12 {
		t.Errorf("kept wrong tiers: %+v", tiers)
	}
}

// 4. 阈值未达到时全部保留，顺序不变
func TestReduceOrderBook_ThresholdNeverReached(t *testing.T) {
	book := OrderBook{
		1: {
			{OrderID: 11, Price: 5.0, VolumeRemain: 10},
			{OrderID: 12, Price: 6.0, VolumeRemain: 10},
		},
	}

	reduced := ReduceOrderBook(book, 1e6)

	if len(reduced[1]) != 2 {
		t.Fatalf("expected all tiers kept, got %d", len(reduced[1]))
	}
}

// 5. 空档位列表的矿石不出现在结果里
func TestReduceOrderBook_EmptyTiers(t *testing.T) {
	book := OrderBook{
		1: {},
	}

	reduced := ReduceOrderBook(book, 100)

	if _, ok := reduced[1]; ok {
		t.Errorf("ore with no tiers should be dropped, got %+v", reduced[1])
	}
}

// 6. 纯函数：输入不被修改
func TestReduceOrderBook_InputUntouched(t *testing.T) {
	book := OrderBook{
		1: {
			{OrderID: 11, Price: 5.0, VolumeRemain: 50},
			{OrderID: 12, Price: 5.0, VolumeRemain: 70},
		},
	}

	_ = ReduceOrderBook(book, 1e9)

	if book[1][0].VolumeRemain != 50 || book[1][1].VolumeRemain != 70 {
		t.Errorf("input order book was mutated: %+v", book[1])
	}
}
