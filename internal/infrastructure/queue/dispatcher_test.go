package queue

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"github.com/esgview/admin-gateway/internal/core/domain"
	"github.com/esgview/admin-gateway/internal/core/ports"
)

// fallbackAnalytics serves placeholder bundles, the way the analytics
// service behaves with an unreachable upstream.
type fallbackAnalytics struct {
	err error
}

func (s *fallbackAnalytics) PredictScores(_ context.Context, _ ports.PredictionInput) (*domain.ESGPrediction, error) {
	if s.err != nil {
		return nil, s.err
	}
	return domain.FallbackPrediction(), nil
}

func (s *fallbackAnalytics) AssessRisks(_ context.Context, _ ports.RiskInput) (*domain.RiskAssessment, error) {
	if s.err != nil {
		return nil, s.err
	}
	return domain.FallbackRiskAssessment(), nil
}

func (s *fallbackAnalytics) ForecastCarbon(_ context.Context, _ ports.CarbonInput) (*domain.CarbonForecast, error) {
	if s.err != nil {
		return nil, s.err
	}
	return domain.FallbackCarbonForecast(), nil
}

func (s *fallbackAnalytics) Recommendations(_ context.Context, _ ports.RecommendationInput) (*domain.RecommendationSet, error) {
	if s.err != nil {
		return nil, s.err
	}
	return domain.FallbackRecommendations(), nil
}

func (s *fallbackAnalytics) AnalyzeDocument(_ context.Context, _ ports.DocumentInput) (*domain.DocumentAnalysis, error) {
	return domain.FallbackDocumentAnalysis(), nil
}

func (s *fallbackAnalytics) GenerateReport(_ context.Context, _ ports.ReportInput) (*domain.AIReport, error) {
	return domain.FallbackReport(), nil
}

func waitForBundle(t *testing.T, d *Dispatcher, clientID string) *domain.PanelBundle {
	t.Helper()
	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		if bundle, ok := d.Panels(clientID); ok {
			return bundle
		}
		time.Sleep(10 * time.Millisecond)
	}
	t.Fatalf("no bundle cached for %s", clientID)
	return nil
}

func TestDispatcher_RefreshFillsCache(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	d := NewDispatcher(2, &fallbackAnalytics{}, zerolog.Nop())
	d.Start(ctx)

	d.RequestRefresh("dube-trade-port")
	bundle := waitForBundle(t, d, "dube-trade-port")

	if bundle.Prediction == nil || bundle.Risks == nil || bundle.Carbon == nil || bundle.Recommendations == nil {
		t.Fatalf("expected complete bundle, got %+v", bundle)
	}
	if bundle.RefreshedAt.IsZero() {
		t.Fatalf("expected refresh timestamp")
	}
}

func TestDispatcher_DistinctClientsCached(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	d := NewDispatcher(2, &fallbackAnalytics{}, zerolog.Nop())
	d.Start(ctx)

	d.RequestRefresh("dube-trade-port")
	d.RequestRefresh("bertha-house")

	if waitForBundle(t, d, "dube-trade-port").ClientID != "dube-trade-port" {
		t.Fatalf("wrong bundle for dube-trade-port")
	}
	if waitForBundle(t, d, "bertha-house").ClientID != "bertha-house" {
		t.Fatalf("wrong bundle for bertha-house")
	}
}

func TestDispatcher_AllCapabilitiesFailing_NothingCached(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	d := NewDispatcher(1, &fallbackAnalytics{err: errors.New("rejected")}, zerolog.Nop())
	d.Start(ctx)

	d.RequestRefresh("dube-trade-port")
	time.Sleep(100 * time.Millisecond)

	if _, ok := d.Panels("dube-trade-port"); ok {
		t.Fatalf("expected no bundle when every capability fails")
	}
}

func TestDispatcher_ShardIsStable(t *testing.T) {
	d := NewDispatcher(4, &fallbackAnalytics{}, zerolog.Nop())
	first := d.shardIndex("dube-trade-port")
	for i := 0; i < 10; i++ {
		if d.shardIndex("dube-trade-port") != first {
			t.Fatalf("shard index must be deterministic")
		}
	}
}
