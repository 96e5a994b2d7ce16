package upstream

import (
	"context"

	"github.com/esgview/admin-gateway/internal/core/domain"
	"github.com/esgview/admin-gateway/internal/core/ports"
)

// Model tags sent with each inference request.
const (
	modelPredictor      = "gemini-pro"
	modelRiskAssessor   = "gemini-pro"
	modelForecaster     = "gemini-pro"
	modelRecommender    = "gemini-pro"
	modelNLPProcessor   = "gemini-pro"
	modelReportWriter   = "gemini-pro"
	defaultHorizon      = "12months"
	defaultAnalysisType = "comprehensive"
	defaultReportType   = "comprehensive"
)

var (
	defaultRiskTypes  = []string{"environmental", "social", "governance"}
	defaultFocusAreas = []string{"energy", "emissions", "water"}
)

// AnalyticsClient implements ports.AnalyticsAPI against the platform's
// inference endpoints. It performs transport only; the fallback policy
// lives in the analytics service.
type AnalyticsClient struct {
	client *Client
}

func NewAnalyticsClient(client *Client) *AnalyticsClient {
	return &AnalyticsClient{client: client}
}

func (c *AnalyticsClient) PredictScores(ctx context.Context, token string, input ports.PredictionInput) (*domain.ESGPrediction, error) {
	horizon := input.TimeHorizon
	if horizon == "" {
		horizon = defaultHorizon
	}
	payload := map[string]any{
		"clientId":    input.ClientID,
		"timeHorizon": horizon,
		"model":       modelPredictor,
	}

	var out domain.ESGPrediction
	if err := c.client.postJSON(ctx, token, "/api/gemini/predict-esg-scores", payload, &out, c.client.requestTimeout); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *AnalyticsClient) AssessRisks(ctx context.Context, token string, input ports.RiskInput) (*domain.RiskAssessment, error) {
	riskTypes := input.RiskTypes
	if len(riskTypes) == 0 {
		riskTypes = defaultRiskTypes
	}
	payload := map[string]any{
		"portfolioId": input.PortfolioID,
		"riskTypes":   riskTypes,
		"model":       modelRiskAssessor,
	}

	var out domain.RiskAssessment
	if err := c.client.postJSON(ctx, token, "/api/gemini/assess-risks", payload, &out, c.client.requestTimeout); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *AnalyticsClient) ForecastCarbon(ctx context.Context, token string, input ports.CarbonInput) (*domain.CarbonForecast, error) {
	period := input.ForecastPeriod
	if period == "" {
		period = defaultHorizon
	}
	payload := map[string]any{
		"clientId":       input.ClientID,
		"forecastPeriod": period,
		"model":          modelForecaster,
	}

	var out domain.CarbonForecast
	if err := c.client.postJSON(ctx, token, "/api/gemini/forecast-carbon", payload, &out, c.client.requestTimeout); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *AnalyticsClient) Recommendations(ctx context.Context, token string, input ports.RecommendationInput) (*domain.RecommendationSet, error) {
	focusAreas := input.FocusAreas
	if len(focusAreas) == 0 {
		focusAreas = defaultFocusAreas
	}
	payload := map[string]any{
		"clientId":   input.ClientID,
		"focusAreas": focusAreas,
		"model":      modelRecommender,
	}

	var out domain.RecommendationSet
	if err := c.client.postJSON(ctx, token, "/api/gemini/recommendations", payload, &out, c.client.requestTimeout); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *AnalyticsClient) AnalyzeDocument(ctx context.Context, token string, input ports.DocumentInput) (*domain.DocumentAnalysis, error) {
	analysisType := input.AnalysisType
	if analysisType == "" {
		analysisType = defaultAnalysisType
	}
	fields := map[string]string{
		"analysisType": analysisType,
		"model":        modelNLPProcessor,
	}

	var out domain.DocumentAnalysis
	if err := c.client.postMultipart(ctx, token, "/api/gemini/analyze-document", fields, "document", input.Filename, input.Content, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// GenerateReport uses the upload timeout: full report assembly is the
// slowest inference call the platform serves.
func (c *AnalyticsClient) GenerateReport(ctx context.Context, token string, input ports.ReportInput) (*domain.AIReport, error) {
	reportType := input.ReportType
	if reportType == "" {
		reportType = defaultReportType
	}
	timeRange := input.TimeRange
	if timeRange == "" {
		timeRange = defaultHorizon
	}
	payload := map[string]any{
		"clientId":               input.ClientID,
		"reportType":             reportType,
		"timeRange":              timeRange,
		"includePredictions":     true,
		"includeRecommendations": true,
		"includeRiskAnalysis":    true,
	}

	var out domain.AIReport
	if err := c.client.postJSON(ctx, token, "/api/gemini/generate-report", payload, &out, c.client.uploadTimeout); err != nil {
		return nil, err
	}
	return &out, nil
}
