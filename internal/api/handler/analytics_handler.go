package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/esgview/admin-gateway/internal/api/metrics"
	"github.com/esgview/admin-gateway/internal/core/ports"
)

// AnalyticsHandler exposes the AI inference capabilities over HTTP.
type AnalyticsHandler struct {
	analytics ports.AnalyticsService
	panels    ports.PanelSource
}

func NewAnalyticsHandler(analytics ports.AnalyticsService, panels ports.PanelSource) *AnalyticsHandler {
	return &AnalyticsHandler{analytics: analytics, panels: panels}
}

// Predictions runs the ESG score prediction capability.
//
// @Summary      Predict ESG scores
// @Tags         analytics
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      predictionRequest  true  "Prediction parameters"
// @Success      200   {object}  domain.ESGPrediction
// @Failure      401   {object}  errorResponse
// @Failure      422   {object}  errorResponse
// @Router       /analytics/predictions [post]
func (h *AnalyticsHandler) Predictions(c echo.Context) error {
	var req predictionRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusUnprocessableEntity, err.Error())
	}

	result, err := h.analytics.PredictScores(c.Request().Context(), ports.PredictionInput{
		ClientID:    req.ClientID,
		TimeHorizon: req.TimeHorizon,
	})
	if err != nil {
		return err
	}
	if result.Fallback {
		metrics.AnalyticsFallbacksTotal.WithLabelValues("predictions").Inc()
	}
	return c.JSON(http.StatusOK, result)
}

// Risks runs the portfolio risk assessment capability.
//
// @Summary      Assess portfolio risks
// @Tags         analytics
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      riskRequest  true  "Risk assessment parameters"
// @Success      200   {object}  domain.RiskAssessment
// @Failure      401   {object}  errorResponse
// @Failure      422   {object}  errorResponse
// @Router       /analytics/risks [post]
func (h *AnalyticsHandler) Risks(c echo.Context) error {
	var req riskRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusUnprocessableEntity, err.Error())
	}

	result, err := h.analytics.AssessRisks(c.Request().Context(), ports.RiskInput{
		PortfolioID: req.PortfolioID,
		RiskTypes:   req.RiskTypes,
	})
	if err != nil {
		return err
	}
	if result.Fallback {
		metrics.AnalyticsFallbacksTotal.WithLabelValues("risks").Inc()
	}
	return c.JSON(http.StatusOK, result)
}

// Carbon runs the carbon footprint forecast capability.
//
// @Summary      Forecast carbon footprint
// @Tags         analytics
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      carbonRequest  true  "Forecast parameters"
// @Success      200   {object}  domain.CarbonForecast
// @Failure      401   {object}  errorResponse
// @Failure      422   {object}  errorResponse
// @Router       /analytics/carbon [post]
func (h *AnalyticsHandler) Carbon(c echo.Context) error {
	var req carbonRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusUnprocessableEntity, err.Error())
	}

	result, err := h.analytics.ForecastCarbon(c.Request().Context(), ports.CarbonInput{
		ClientID:       req.ClientID,
		ForecastPeriod: req.ForecastPeriod,
	})
	if err != nil {
		return err
	}
	if result.Fallback {
		metrics.AnalyticsFallbacksTotal.WithLabelValues("carbon").Inc()
	}
	return c.JSON(http.StatusOK, result)
}

// Recommendations runs the improvement recommendation capability.
//
// @Summary      Generate recommendations
// @Tags         analytics
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      recommendationRequest  true  "Recommendation parameters"
// @Success      200   {object}  domain.RecommendationSet
// @Failure      401   {object}  errorResponse
// @Failure      422   {object}  errorResponse
// @Router       /analytics/recommendations [post]
func (h *AnalyticsHandler) Recommendations(c echo.Context) error {
	var req recommendationRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusUnprocessableEntity, err.Error())
	}

	result, err := h.analytics.Recommendations(c.Request().Context(), ports.RecommendationInput{
		ClientID:   req.ClientID,
		FocusAreas: req.FocusAreas,
	})
	if err != nil {
		return err
	}
	if result.Fallback {
		metrics.AnalyticsFallbacksTotal.WithLabelValues("recommendations").Inc()
	}
	return c.JSON(http.StatusOK, result)
}

// Document analyzes an uploaded sustainability document.
//
// @Summary      Analyze a document
// @Tags         analytics
// @Accept       multipart/form-data
// @Produce      json
// @Security     BearerAuth
// @Param        document       formData  file    true   "Document to analyze"
// @Param        analysis_type  formData  string  false  "Analysis type"
// @Success      200  {object}  domain.DocumentAnalysis
// @Failure      400  {object}  errorResponse
// @Failure      401  {object}  errorResponse
// @Router       /analytics/document [post]
func (h *AnalyticsHandler) Document(c echo.Context) error {
	fh, err := c.FormFile("document")
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "document file is required")
	}

	file, err := fh.Open()
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "document file is unreadable")
	}
	defer file.Close()

	result, err := h.analytics.AnalyzeDocument(c.Request().Context(), ports.DocumentInput{
		Filename:     fh.Filename,
		Content:      file,
		AnalysisType: c.FormValue("analysis_type"),
	})
	if err != nil {
		return err
	}
	if result.Fallback {
		metrics.AnalyticsFallbacksTotal.WithLabelValues("document").Inc()
	}
	return c.JSON(http.StatusOK, result)
}

// Report generates a full AI sustainability report.
//
// @Summary      Generate an AI report
// @Tags         analytics
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      reportRequest  true  "Report parameters"
// @Success      200   {object}  domain.AIReport
// @Failure      401   {object}  errorResponse
// @Failure      422   {object}  errorResponse
// @Router       /analytics/report [post]
func (h *AnalyticsHandler) Report(c echo.Context) error {
	var req reportRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusUnprocessableEntity, err.Error())
	}

	result, err := h.analytics.GenerateReport(c.Request().Context(), ports.ReportInput{
		ClientID:   req.ClientID,
		ReportType: req.ReportType,
		TimeRange:  req.TimeRange,
	})
	if err != nil {
		return err
	}
	if result.Fallback {
		metrics.AnalyticsFallbacksTotal.WithLabelValues("report").Inc()
	}
	return c.JSON(http.StatusOK, result)
}

// Panels serves the cached dashboard bundle for a client, kicking off a
// refresh when the cache is cold.
//
// @Summary      Dashboard panel bundle
// @Tags         analytics
// @Produce      json
// @Security     BearerAuth
// @Param        client_id  path  string  true  "Client identifier"
// @Success      200  {object}  domain.PanelBundle
// @Success      202  {object}  messageResponse
// @Failure      401  {object}  errorResponse
// @Router       /analytics/panels/{client_id} [get]
func (h *AnalyticsHandler) Panels(c echo.Context) error {
	clientID := c.Param("client_id")
	if clientID == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "client_id is required")
	}

	if bundle, ok := h.panels.Panels(clientID); ok {
		return c.JSON(http.StatusOK, bundle)
	}

	h.panels.RequestRefresh(clientID)
	return c.JSON(http.StatusAccepted, messageResponse{Message: "panel refresh queued"})
}
