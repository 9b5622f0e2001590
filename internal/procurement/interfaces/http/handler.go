package http

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/wyfcoding/industrytracker/internal/procurement/application"
	"github.com/wyfcoding/pkg/logging"
	"github.com/wyfcoding/pkg/response"
)

// OptimizerHandler 采购优化 HTTP 处理器
type OptimizerHandler struct {
	app *application.OptimizerService
}

// NewOptimizerHandler 创建 HTTP 处理器实例
func NewOptimizerHandler(app *application.OptimizerService) *OptimizerHandler {
	return &OptimizerHandler{app: app}
}

// RegisterRoutes 注册路由
func (h *OptimizerHandler) RegisterRoutes(router *gin.Engine) {
	api := router.Group("/api/v1/industry")
	{
		api.POST("/optimize", h.Optimize)
	}
}

// Optimize 求解采购计划
func (h *OptimizerHandler) Optimize(c *gin.Context) {
	var cmd application.OptimizeCommand
	if err := c.ShouldBindJSON(&cmd); err != nil {
		response.ErrorWithStatus(c, http.StatusBadRequest, err.Error(), "")
		return
	}

	result, err := h.app.Optimize(c.Request.Context(), cmd)
	if err != nil {
		if errors.Is(err, application.ErrValidation) {
			response.ErrorWithStatus(c, http.StatusBadRequest, err.Error(), "")
			return
		}
		logging.Error(c.Request.Context(), "Failed to optimize procurement", "error", err)
		response.ErrorWithStatus(c, http.StatusInternalServerError, err.Error(), "")
		return
	}
	response.Success(c, result)
}
