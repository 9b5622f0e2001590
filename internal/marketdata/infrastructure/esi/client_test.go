package esi

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strconv"
	"testing"
	"time"
)

// 1. 翻页抓取、买单过滤与升序排序
func TestFetchSellOrders(t *testing.T) {
	pages := map[string][]map[string]any{
		"1": {
			{"order_id": 101, "type_id": 1230, "price": 6.5, "volume_remain": 1000, "min_volume": 1, "is_buy_order": false},
			{"order_id": 102, "type_id": 1230, "price": 4.2, "volume_remain": 500, "min_volume": 1, "is_buy_order": false},
		},
		"2": {
			{"order_id": 103, "type_id": 1230, "price": 5.0, "volume_remain": 300, "min_volume": 1, "is_buy_order": false},
			{"order_id": 104, "type_id": 1230, "price": 1.0, "volume_remain": 9999, "min_volume": 1, "is_buy_order": true},
		},
	}

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/markets/10000002/orders" {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		if got := r.URL.Query().Get("order_type"); got != "sell" {
			t.Errorf("order_type = %q, want sell", got)
		}
		page := r.URL.Query().Get("page")
		w.Header().Set("X-Pages", strconv.Itoa(len(pages)))
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(pages[page])
	}))
	defer server.Close()

	client := NewClient(server.URL, 5*time.Second)
	orders, err := client.FetchSellOrders(context.Background(), 10000002, 1230)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	// 买单 104 被过滤，剩余三张按价格升序
	if len(orders) != 3 {
		t.Fatalf("expected 3 sell orders, got %d", len(orders))
	}
	wantIDs := []int64{102, 103, 101}
	for i, want := range wantIDs {
		if orders[i].OrderID != want {
			t.Errorf("orders[%d].OrderID = %d, want %d", i, orders[i].OrderID, want)
		}
	}
	if !orders[0].Price.Equal(orders[0].Price.Truncate(1)) {
		// 价格精度由 decimal 保证，4.2 不会变成 4.19999...
		t.Errorf("price lost precision: %s", orders[0].Price)
	}
}

// 2. 服务端错误码不产生部分结果
func TestFetchSellOrders_ServerError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer server.Close()

	client := NewClient(server.URL, 5*time.Second)
	if _, err := client.FetchSellOrders(context.Background(), 10000002, 1230); err == nil {
		t.Fatalf("expected error on 502 response")
	}
}
