package http

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/wyfcoding/industrytracker/internal/marketdata/application"
	"github.com/wyfcoding/pkg/logging"
	"github.com/wyfcoding/pkg/response"
)

// MarketDataHandler 市场数据 HTTP 处理器
type MarketDataHandler struct {
	app *application.MarketDataService
}

// NewMarketDataHandler 创建 HTTP 处理器实例
func NewMarketDataHandler(app *application.MarketDataService) *MarketDataHandler {
	return &MarketDataHandler{app: app}
}

// RegisterRoutes 注册路由
func (h *MarketDataHandler) RegisterRoutes(router *gin.Engine) {
	api := router.Group("/api/v1/market")
	{
		api.GET("/orders/:typeID", h.GetSellOrders)
	}
}

// GetSellOrders 获取一个商品的卖单订单簿
func (h *MarketDataHandler) GetSellOrders(c *gin.Context) {
	typeID, err := strconv.ParseInt(c.Param("typeID"), 10, 64)
	if err != nil {
		response.ErrorWithStatus(c, http.StatusBadRequest, "invalid type id", "")
		return
	}

	book, err := h.app.SellOrderBook(c.Request.Context(), []int64{typeID})
	if err != nil {
		logging.Error(c.Request.Context(), "Failed to get sell orders", "type_id", typeID, "error", err)
		response.ErrorWithStatus(c, http.StatusInternalServerError, err.Error(), "")
		return
	}
	response.Success(c, book[typeID])
}
