package handler

import (
	"net/http"

	"tradeboard/internal/service"
	"tradeboard/pkg/pagination"
	"tradeboard/pkg/response"

	"github.com/gin-gonic/gin"
)

type ShipmentHandler struct {
	shipmentService service.ShipmentService
}

func NewShipmentHandler(shipmentService service.ShipmentService) *ShipmentHandler {
	return &ShipmentHandler{shipmentService: shipmentService}
}

func (h *ShipmentHandler) RegisterRoutes(router *gin.RouterGroup) {
	router.GET("/api/shipments", h.ListShipments)
}

// ListShipments returns one page of shipments, newest first
// @Summary      List shipments
// @Description  Pages through every shipment ordered by shipment date descending. Advance offset by pagination.returned.
// @Tags         shipments
// @Security     BearerAuth
// @Produce      json
// @Param        limit   query     int  false  "Page size (default: 100)"
// @Param        offset  query     int  false  "Records to skip (default: 0)"
// @Success      200     {object}  response.Response{data=[]model.ShipmentRecord}
// @Failure      503     {object}  response.Response
// @Router       /api/shipments [get]
func (h *ShipmentHandler) ListShipments(c *gin.Context) {
	params := pagination.Parse(c)

	page, err := h.shipmentService.GetShipments(c.Request.Context(), params.Limit, params.Offset)
	if err != nil {
		respondError(c, err, "Failed to load shipments")
		return
	}

	c.JSON(http.StatusOK, response.SuccessWithPagination(http.StatusOK, page.Data, page.Limit, page.Offset, len(page.Data), page.Total))
}
