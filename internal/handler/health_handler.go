package handler

import (
	"context"
	"net/http"

	"tradeboard/pkg/response"

	"github.com/gin-gonic/gin"
)

// DatasetStatus is the part of the dataset store the readiness probe needs
type DatasetStatus interface {
	Ensure(ctx context.Context) error
	Len() int
}

type HealthHandler struct {
	dataset DatasetStatus
}

func NewHealthHandler(dataset DatasetStatus) *HealthHandler {
	return &HealthHandler{dataset: dataset}
}

func (h *HealthHandler) RegisterRoutes(router *gin.RouterGroup) {
	router.GET("/health", h.Health)
	router.GET("/ready", h.Ready)
}

// Health reports that the process is serving
// @Summary      Liveness probe
// @Tags         health
// @Produce      json
// @Success      200  {object}  map[string]string
// @Router       /health [get]
func (h *HealthHandler) Health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "OK"})
}

// Ready loads the dataset if needed and reports whether queries can succeed
// @Summary      Readiness probe
// @Tags         health
// @Produce      json
// @Success      200  {object}  response.Response
// @Failure      503  {object}  response.Response
// @Router       /ready [get]
func (h *HealthHandler) Ready(c *gin.Context) {
	if err := h.dataset.Ensure(c.Request.Context()); err != nil {
		respondError(c, err, "Dataset failed to load")
		return
	}

	c.JSON(http.StatusOK, response.Success(http.StatusOK, gin.H{
		"status":  "ready",
		"records": h.dataset.Len(),
	}))
}
