package handler

import (
	"errors"
	"net/http"

	"tradeboard/internal/dataset"
	"tradeboard/internal/logger"
	"tradeboard/pkg/response"

	"github.com/gin-gonic/gin"
)

// respondError maps service errors to HTTP statuses. A dataset that failed to
// load is reported as 503 on every request until restart.
func respondError(c *gin.Context, err error, msg string) {
	status := http.StatusInternalServerError
	if errors.Is(err, dataset.ErrDataUnavailable) {
		status = http.StatusServiceUnavailable
		msg = "Shipment data is unavailable"
	}

	log := logger.FromContext(c.Request.Context())
	log.Error().Err(err).Int("status", status).Msg(msg)
	c.JSON(status, response.Error(status, msg))
}
