package service

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/esgview/admin-gateway/internal/core/domain"
	"github.com/esgview/admin-gateway/internal/core/ports"
)

// AnalyticsService applies the gateway's result policy on top of the raw
// inference API: authentication errors propagate unchanged, transient
// failures are replaced with the capability's placeholder payload, and
// successful responses are normalized so every documented field is
// populated.
type AnalyticsService struct {
	api    ports.AnalyticsAPI
	tokens ports.TokenSource
	logger zerolog.Logger
}

func NewAnalyticsService(api ports.AnalyticsAPI, tokens ports.TokenSource, logger zerolog.Logger) *AnalyticsService {
	return &AnalyticsService{api: api, tokens: tokens, logger: logger}
}

// fallbackAllowed classifies an upstream failure. Auth errors and
// unexpected rejections must reach the caller; only transient failures may
// be papered over with a placeholder.
func (s *AnalyticsService) fallbackAllowed(err error, capability string) bool {
	if domain.IsAuthError(err) {
		s.logger.Info().Err(err).Str("capability", capability).Msg("inference call rejected")
		return false
	}
	if domain.IsTransient(err) {
		s.logger.Warn().Err(err).Str("capability", capability).Msg("inference unavailable, serving fallback")
		return true
	}
	s.logger.Error().Err(err).Str("capability", capability).Msg("inference call failed")
	return false
}

func (s *AnalyticsService) PredictScores(ctx context.Context, input ports.PredictionInput) (*domain.ESGPrediction, error) {
	res, err := s.api.PredictScores(ctx, s.tokens.Token(), input)
	if err != nil {
		if s.fallbackAllowed(err, "predictions") {
			return domain.FallbackPrediction(), nil
		}
		return nil, err
	}
	res.ApplyDefaults()
	return res, nil
}

func (s *AnalyticsService) AssessRisks(ctx context.Context, input ports.RiskInput) (*domain.RiskAssessment, error) {
	res, err := s.api.AssessRisks(ctx, s.tokens.Token(), input)
	if err != nil {
		if s.fallbackAllowed(err, "risks") {
			return domain.FallbackRiskAssessment(), nil
		}
		return nil, err
	}
	res.ApplyDefaults()
	return res, nil
}

func (s *AnalyticsService) ForecastCarbon(ctx context.Context, input ports.CarbonInput) (*domain.CarbonForecast, error) {
	res, err := s.api.ForecastCarbon(ctx, s.tokens.Token(), input)
	if err != nil {
		if s.fallbackAllowed(err, "carbon") {
			return domain.FallbackCarbonForecast(), nil
		}
		return nil, err
	}
	res.ApplyDefaults()
	return res, nil
}

func (s *AnalyticsService) Recommendations(ctx context.Context, input ports.RecommendationInput) (*domain.RecommendationSet, error) {
	res, err := s.api.Recommendations(ctx, s.tokens.Token(), input)
	if err != nil {
		if s.fallbackAllowed(err, "recommendations") {
			return domain.FallbackRecommendations(), nil
		}
		return nil, err
	}
	res.ApplyDefaults()
	return res, nil
}

func (s *AnalyticsService) AnalyzeDocument(ctx context.Context, input ports.DocumentInput) (*domain.DocumentAnalysis, error) {
	res, err := s.api.AnalyzeDocument(ctx, s.tokens.Token(), input)
	if err != nil {
		if s.fallbackAllowed(err, "document") {
			return domain.FallbackDocumentAnalysis(), nil
		}
		return nil, err
	}
	res.ApplyDefaults()
	return res, nil
}

func (s *AnalyticsService) GenerateReport(ctx context.Context, input ports.ReportInput) (*domain.AIReport, error) {
	res, err := s.api.GenerateReport(ctx, s.tokens.Token(), input)
	if err != nil {
		if s.fallbackAllowed(err, "report") {
			return domain.FallbackReport(), nil
		}
		return nil, err
	}
	res.ApplyDefaults()
	return res, nil
}
