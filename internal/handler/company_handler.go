package handler

import (
	"net/http"

	"tradeboard/internal/service"
	"tradeboard/pkg/response"

	"github.com/gin-gonic/gin"
)

type CompanyHandler struct {
	analyticsService service.AnalyticsService
}

func NewCompanyHandler(analyticsService service.AnalyticsService) *CompanyHandler {
	return &CompanyHandler{analyticsService: analyticsService}
}

func (h *CompanyHandler) RegisterRoutes(router *gin.RouterGroup) {
	companies := router.Group("/api/companies")
	{
		companies.GET("", h.ListCompanies)
		companies.GET("/:name", h.GetCompany)
	}
}

// ListCompanies returns every importer rollup, heaviest first
// @Summary      List companies
// @Tags         companies
// @Security     BearerAuth
// @Produce      json
// @Success      200  {object}  response.Response{data=[]model.Company}
// @Failure      503  {object}  response.Response
// @Router       /api/companies [get]
func (h *CompanyHandler) ListCompanies(c *gin.Context) {
	companies, err := h.analyticsService.ListCompanies(c.Request.Context())
	if err != nil {
		respondError(c, err, "Failed to load companies")
		return
	}

	c.JSON(http.StatusOK, response.Success(http.StatusOK, companies))
}

// GetCompany returns a company rollup with its top partners and commodities
// @Summary      Get company detail
// @Description  Exact, case-sensitive match on importer name. Encode "/" as %2F.
// @Tags         companies
// @Security     BearerAuth
// @Produce      json
// @Param        name  path      string  true  "Importer name"
// @Success      200   {object}  response.Response{data=model.Company}
// @Failure      404   {object}  response.Response
// @Failure      503   {object}  response.Response
// @Router       /api/companies/{name} [get]
func (h *CompanyHandler) GetCompany(c *gin.Context) {
	name := c.Param("name")

	company, found, err := h.analyticsService.GetCompanyDetail(c.Request.Context(), name)
	if err != nil {
		respondError(c, err, "Failed to load company")
		return
	}
	if !found {
		c.JSON(http.StatusNotFound, response.Error(http.StatusNotFound, "Company not found"))
		return
	}

	c.JSON(http.StatusOK, response.Success(http.StatusOK, company))
}
