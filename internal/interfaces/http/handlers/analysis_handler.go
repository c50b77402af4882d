package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/turtacn/Jyotish-Intelligence/internal/application/analysis"
	"github.com/turtacn/Jyotish-Intelligence/internal/infrastructure/monitoring/logging"
	"github.com/turtacn/Jyotish-Intelligence/pkg/errors"
	"github.com/turtacn/Jyotish-Intelligence/pkg/types/chart"
)

// AnalysisHandler exposes the analysis service over HTTP.
type AnalysisHandler struct {
	svc    analysis.Service
	logger logging.Logger
}

// NewAnalysisHandler creates an AnalysisHandler.
func NewAnalysisHandler(svc analysis.Service, logger logging.Logger) *AnalysisHandler {
	if logger == nil {
		logger = logging.NewNopLogger()
	}
	return &AnalysisHandler{svc: svc, logger: logger.Named("http")}
}

// Analyze handles POST /api/v1/analysis.
func (h *AnalysisHandler) Analyze(c *gin.Context) {
	var req chart.AnalysisRequest
	if err := bindPayload(c, &req); err != nil {
		writeError(c, h.logger, err)
		return
	}
	report, err := h.svc.Analyze(c.Request.Context(), &req)
	if err != nil {
		writeError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, report)
}

// Houses handles POST /api/v1/houses.
func (h *AnalysisHandler) Houses(c *gin.Context) {
	var req chart.HousesRequest
	if err := bindPayload(c, &req); err != nil {
		writeError(c, h.logger, err)
		return
	}
	report, err := h.svc.Houses(c.Request.Context(), &req)
	if err != nil {
		writeError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, report)
}

// ActiveDasha handles POST /api/v1/dasha/active.
func (h *AnalysisHandler) ActiveDasha(c *gin.Context) {
	var req chart.DashaRequest
	if err := bindPayload(c, &req); err != nil {
		writeError(c, h.logger, err)
		return
	}
	report, err := h.svc.ActiveDasha(c.Request.Context(), &req)
	if err != nil {
		writeError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, report)
}

// HouseOf handles GET /api/v1/houses/:sign?ascendant=Leo.
func (h *AnalysisHandler) HouseOf(c *gin.Context) {
	ascendant := c.Query("ascendant")
	if ascendant == "" {
		writeError(c, h.logger, errors.InvalidParam("ascendant query parameter is required"))
		return
	}
	info, err := h.svc.HouseOf(c.Request.Context(), c.Param("sign"), ascendant)
	if err != nil {
		writeError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, info)
}

//Personal.AI order the ending
