package ports

import (
	"context"
	"io"

	"github.com/esgview/admin-gateway/internal/core/domain"
)

// Parameter records for the inference capabilities. Zero values take the
// capability's documented default (12-month horizon, the three ESG pillars,
// comprehensive analysis).

type PredictionInput struct {
	ClientID    string
	TimeHorizon string
}

type RiskInput struct {
	PortfolioID string
	RiskTypes   []string
}

type CarbonInput struct {
	ClientID       string
	ForecastPeriod string
}

type RecommendationInput struct {
	ClientID   string
	FocusAreas []string
}

type DocumentInput struct {
	Filename     string
	Content      io.Reader
	AnalysisType string
}

type ReportInput struct {
	ClientID   string
	ReportType string
	TimeRange  string
}

// AnalyticsAPI is the raw upstream inference surface. Implementations
// perform transport only; the fallback/normalization policy lives in the
// analytics service.
type AnalyticsAPI interface {
	PredictScores(ctx context.Context, token string, input PredictionInput) (*domain.ESGPrediction, error)
	AssessRisks(ctx context.Context, token string, input RiskInput) (*domain.RiskAssessment, error)
	ForecastCarbon(ctx context.Context, token string, input CarbonInput) (*domain.CarbonForecast, error)
	Recommendations(ctx context.Context, token string, input RecommendationInput) (*domain.RecommendationSet, error)
	AnalyzeDocument(ctx context.Context, token string, input DocumentInput) (*domain.DocumentAnalysis, error)
	GenerateReport(ctx context.Context, token string, input ReportInput) (*domain.AIReport, error)
}
