package ports

import (
	"context"

	"github.com/esgview/admin-gateway/internal/core/domain"
)

// AnalyticsService is the capability surface consumed by handlers and the
// refresh dispatcher. Results are always fully populated: transient upstream
// failures yield the placeholder payload with its Fallback marker set, while
// authentication errors propagate unchanged.
type AnalyticsService interface {
	PredictScores(ctx context.Context, input PredictionInput) (*domain.ESGPrediction, error)
	AssessRisks(ctx context.Context, input RiskInput) (*domain.RiskAssessment, error)
	ForecastCarbon(ctx context.Context, input CarbonInput) (*domain.CarbonForecast, error)
	Recommendations(ctx context.Context, input RecommendationInput) (*domain.RecommendationSet, error)
	AnalyzeDocument(ctx context.Context, input DocumentInput) (*domain.DocumentAnalysis, error)
	GenerateReport(ctx context.Context, input ReportInput) (*domain.AIReport, error)
}

// PanelSource serves cached dashboard panel bundles and accepts refresh
// requests for them.
type PanelSource interface {
	Panels(clientID string) (*domain.PanelBundle, bool)
	RequestRefresh(clientID string)
}
