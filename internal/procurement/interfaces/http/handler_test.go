package http

import (
	"context"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"

	marketdomain "github.com/wyfcoding/industrytracker/internal/marketdata/domain"
	"github.com/wyfcoding/industrytracker/internal/procurement/application"
	"github.com/wyfcoding/industrytracker/internal/procurement/domain"
	staticdomain "github.com/wyfcoding/industrytracker/internal/staticdata/domain"
)

type stubSkills struct{}

func (stubSkills) ReprocessingSkills(ctx context.Context, characterID int64) (map[string]int, error) {
	return map[string]int{}, nil
}

type stubYields struct{}

func (stubYields) ComputeOreYields(ctx context.Context, skills map[string]int, facilityID int64, implantBonus float64, onlyCompressed bool) ([]staticdomain.OreYield, error) {
	return nil, nil
}

func (stubYields) ListMaterials(ctx context.Context) ([]staticdomain.Material, error) {
	return nil, nil
}

type stubPrices struct{}

func (stubPrices) SellOrderBook(ctx context.Context, typeIDs []int64) (map[int64][]marketdomain.SellOrder, error) {
	return map[int64][]marketdomain.SellOrder{}, nil
}

type stubPlanner struct{}

func (stubPlanner) Optimize(ctx context.Context, demand domain.Demand, ores []domain.Ore, book domain.OrderBook, maxOreTypes int) domain.Plan {
	return domain.Plan{Status: domain.PlanOK}
}

func newTestRouter() *gin.Engine {
	gin.SetMode(gin.TestMode)
	svc := application.NewOptimizerService(stubSkills{}, stubYields{}, stubPrices{}, stubPlanner{}, slog.Default())
	router := gin.New()
	NewOptimizerHandler(svc).RegisterRoutes(router)
	return router
}

func TestOptimizeEndpoint(t *testing.T) {
	// 1. 合法请求返回 200
	router := newTestRouter()
	body := `{"demands":{"Tritanium":1000},"character_id":1,"facility_id":2}`
	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/v1/industry/optimize", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("期望 200，实际 %d: %s", rec.Code, rec.Body.String())
	}
	if !strings.Contains(rec.Body.String(), "direct_total_cost") {
		t.Errorf("响应缺少 direct_total_cost: %s", rec.Body.String())
	}
}

func TestOptimizeEndpointBadJSON(t *testing.T) {
	// 2. 非法 JSON 返回 400
	router := newTestRouter()
	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/v1/industry/optimize", strings.NewReader("{not json"))
	req.Header.Set("Content-Type", "application/json")
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Errorf("期望 400，实际 %d", rec.Code)
	}
}

func TestOptimizeEndpointMissingFields(t *testing.T) {
	// 3. 缺少必填字段返回 400
	router := newTestRouter()
	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/v1/industry/optimize", strings.NewReader(`{"demands":{"Tritanium":1000}}`))
	req.Header.Set("Content-Type", "application/json")
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Errorf("期望 400，实际 %d", rec.Code)
	}
}
