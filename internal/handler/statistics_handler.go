package handler

import (
	"net/http"

	"tradeboard/internal/service"
	"tradeboard/pkg/pagination"
	"tradeboard/pkg/response"

	"github.com/gin-gonic/gin"
)

type StatisticsHandler struct {
	analyticsService service.AnalyticsService
}

func NewStatisticsHandler(analyticsService service.AnalyticsService) *StatisticsHandler {
	return &StatisticsHandler{analyticsService: analyticsService}
}

func (h *StatisticsHandler) RegisterRoutes(router *gin.RouterGroup) {
	statsGroup := router.Group("/api/stats")
	{
		statsGroup.GET("", h.GetStatistics)
		statsGroup.GET("/companies", h.GetCompanyStats)
		statsGroup.GET("/commodities", h.GetTopCommodities)
		statsGroup.GET("/monthly", h.GetMonthlyVolume)
	}
}

// @Summary      Get Dashboard Statistics
// @Description  Distinct company counts, top commodities by raw tonnes and the recent monthly volume in kg
// @Tags         Statistics
// @Security     BearerAuth
// @Produce      json
// @Param        topLimit  query     int  false  "Number of commodities (default: 5)"
// @Param        months    query     int  false  "Number of months (default: 6)"
// @Success      200       {object}  response.Response{data=model.StatsResponse}
// @Failure      503       {object}  response.Response
// @Router       /api/stats [get]
func (h *StatisticsHandler) GetStatistics(c *gin.Context) {
	topLimit := pagination.QueryInt(c, "topLimit", service.DefaultTopCommodities)
	months := pagination.QueryInt(c, "months", service.DefaultMonths)

	stats, err := h.analyticsService.GetStats(c.Request.Context(), topLimit, months)
	if err != nil {
		respondError(c, err, "Failed to load stats")
		return
	}

	c.JSON(http.StatusOK, response.Success(http.StatusOK, stats))
}

// @Summary      Get company counts
// @Tags         Statistics
// @Security     BearerAuth
// @Produce      json
// @Success      200  {object}  response.Response{data=model.CompanyStats}
// @Failure      503  {object}  response.Response
// @Router       /api/stats/companies [get]
func (h *StatisticsHandler) GetCompanyStats(c *gin.Context) {
	stats, err := h.analyticsService.GetCompanyStats(c.Request.Context())
	if err != nil {
		respondError(c, err, "Failed to load company stats")
		return
	}

	c.JSON(http.StatusOK, response.Success(http.StatusOK, stats))
}

// @Summary      Get top commodities
// @Tags         Statistics
// @Security     BearerAuth
// @Produce      json
// @Param        limit  query     int  false  "Number of commodities (default: 5)"
// @Success      200    {object}  response.Response{data=[]model.TopCommodity}
// @Failure      503    {object}  response.Response
// @Router       /api/stats/commodities [get]
func (h *StatisticsHandler) GetTopCommodities(c *gin.Context) {
	limit := pagination.QueryInt(c, "limit", service.DefaultTopCommodities)

	top, err := h.analyticsService.GetTopCommodities(c.Request.Context(), limit)
	if err != nil {
		respondError(c, err, "Failed to load top commodities")
		return
	}

	c.JSON(http.StatusOK, response.Success(http.StatusOK, top))
}

// @Summary      Get monthly volume
// @Tags         Statistics
// @Security     BearerAuth
// @Produce      json
// @Param        months  query     int  false  "Number of months (default: 6)"
// @Success      200     {object}  response.Response{data=[]model.MonthlyVolume}
// @Failure      503     {object}  response.Response
// @Router       /api/stats/monthly [get]
func (h *StatisticsHandler) GetMonthlyVolume(c *gin.Context) {
	months := pagination.QueryInt(c, "months", service.DefaultMonths)

	volumes, err := h.analyticsService.GetMonthlyVolume(c.Request.Context(), months)
	if err != nil {
		respondError(c, err, "Failed to load monthly volume")
		return
	}

	c.JSON(http.StatusOK, response.Success(http.StatusOK, volumes))
}
