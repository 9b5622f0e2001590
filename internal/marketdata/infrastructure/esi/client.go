// Package esi 封装 EVE ESI 市场接口。
package esi

import (
	"context"
	"fmt"
	"sort"
	"strconv"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/shopspring/decimal"
	"github.com/wyfcoding/industrytracker/internal/marketdata/domain"
)

// DefaultBaseURL ESI 正式环境地址。
const DefaultBaseURL = "https://esi.evetech.net/latest"

// esiOrder /markets/{region_id}/orders 的原始响应条目
type esiOrder struct {
	OrderID      int64   `json:"order_id"`
	TypeID       int64   `json:"type_id"`
	Price        float64 `json:"price"`
	VolumeRemain int64   `json:"volume_remain"`
	MinVolume    int64   `json:"min_volume"`
	IsBuyOrder   bool    `json:"is_buy_order"`
}

// Client ESI 市场客户端
type Client struct {
	http *resty.Client
}

// NewClient 创建客户端。baseURL 为空时使用正式环境。
func NewClient(baseURL string, timeout time.Duration) *Client {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	http := resty.New().
		SetBaseURL(baseURL).
		SetTimeout(timeout).
		SetRetryCount(2).
		SetHeader("Accept", "application/json")
	return &Client{http: http}
}

// FetchSellOrders 拉取一个商品在区域内的全部卖单，按 X-Pages 翻页，
// 防御性过滤 is_buy_order，按价格升序返回。
func (c *Client) FetchSellOrders(ctx context.Context, regionID, typeID int64) ([]domain.SellOrder, error) {
	var all []domain.SellOrder

	page := 1
	for {
		var orders []esiOrder
		resp, err := c.http.R().
			SetContext(ctx).
			SetQueryParams(map[string]string{
				"order_type": "sell",
				"type_id":    strconv.FormatInt(typeID, 10),
				"page":       strconv.Itoa(page),
			}).
			SetResult(&orders).
			Get(fmt.Sprintf("/markets/%d/orders", regionID))
		if err != nil {
			return nil, fmt.Errorf("esi request failed (type_id=%d, page=%d): %w", typeID, page, err)
		}
		if resp.IsError() {
			return nil, fmt.Errorf("esi returned %d (type_id=%d, page=%d)", resp.StatusCode(), typeID, page)
		}

		for _, o := range orders {
			if o.IsBuyOrder {
				continue
			}
			all = append(all, domain.SellOrder{
				OrderID:      o.OrderID,
				TypeID:       o.TypeID,
				Price:        decimal.NewFromFloat(o.Price),
				VolumeRemain: o.VolumeRemain,
				MinVolume:    o.MinVolume,
			})
		}

		pages, err := strconv.Atoi(resp.Header().Get("X-Pages"))
		if err != nil || page >= pages {
			break
		}
		page++
	}

	sort.SliceStable(all, func(i, j int) bool {
		return all[i].Price.LessThan(all[j].Price)
	})
	return all, nil
}
