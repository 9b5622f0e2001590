package http

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/wyfcoding/industrytracker/internal/staticdata/application"
	"github.com/wyfcoding/pkg/logging"
	"github.com/wyfcoding/pkg/response"
)

// StaticDataHandler 静态数据 HTTP 处理器
type StaticDataHandler struct {
	app *application.StaticDataService
}

// NewStaticDataHandler 创建 HTTP 处理器实例
func NewStaticDataHandler(app *application.StaticDataService) *StaticDataHandler {
	return &StaticDataHandler{app: app}
}

// RegisterRoutes 注册路由
func (h *StaticDataHandler) RegisterRoutes(router *gin.Engine) {
	api := router.Group("/api/v1/static")
	{
		api.GET("/ores", h.ListOres)
		api.GET("/materials", h.ListMaterials)
		api.GET("/facilities", h.ListFacilities)
	}
}

// ListOres 列出矿石类型
func (h *StaticDataHandler) ListOres(c *gin.Context) {
	ores, err := h.app.ListOres(c.Request.Context())
	if err != nil {
		logging.Error(c.Request.Context(), "Failed to list ores", "error", err)
		response.ErrorWithStatus(c, http.StatusInternalServerError, err.Error(), "")
		return
	}
	response.Success(c, ores)
}

// ListMaterials 列出材料
func (h *StaticDataHandler) ListMaterials(c *gin.Context) {
	materials, err := h.app.ListMaterials(c.Request.Context())
	if err != nil {
		logging.Error(c.Request.Context(), "Failed to list materials", "error", err)
		response.ErrorWithStatus(c, http.StatusInternalServerError, err.Error(), "")
		return
	}
	response.Success(c, materials)
}

// ListFacilities 列出精炼设施
func (h *StaticDataHandler) ListFacilities(c *gin.Context) {
	facilities, err := h.app.ListFacilities(c.Request.Context())
	if err != nil {
		logging.Error(c.Request.Context(), "Failed to list facilities", "error", err)
		response.ErrorWithStatus(c, http.StatusInternalServerError, err.Error(), "")
		return
	}
	response.Success(c, facilities)
}
