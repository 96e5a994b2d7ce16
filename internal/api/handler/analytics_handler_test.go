package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus/testutil"

	"github.com/esgview/admin-gateway/internal/api/metrics"
	"github.com/esgview/admin-gateway/internal/core/domain"
	"github.com/esgview/admin-gateway/internal/core/ports"
)

type stubAnalyticsService struct {
	predictFn  func(ctx context.Context, input ports.PredictionInput) (*domain.ESGPrediction, error)
	documentFn func(ctx context.Context, input ports.DocumentInput) (*domain.DocumentAnalysis, error)
	reportFn   func(ctx context.Context, input ports.ReportInput) (*domain.AIReport, error)
}

func (s *stubAnalyticsService) PredictScores(ctx context.Context, input ports.PredictionInput) (*domain.ESGPrediction, error) {
	return s.predictFn(ctx, input)
}

func (s *stubAnalyticsService) AssessRisks(_ context.Context, _ ports.RiskInput) (*domain.RiskAssessment, error) {
	return domain.FallbackRiskAssessment(), nil
}

func (s *stubAnalyticsService) ForecastCarbon(_ context.Context, _ ports.CarbonInput) (*domain.CarbonForecast, error) {
	return domain.FallbackCarbonForecast(), nil
}

func (s *stubAnalyticsService) Recommendations(_ context.Context, _ ports.RecommendationInput) (*domain.RecommendationSet, error) {
	return domain.FallbackRecommendations(), nil
}

func (s *stubAnalyticsService) AnalyzeDocument(ctx context.Context, input ports.DocumentInput) (*domain.DocumentAnalysis, error) {
	return s.documentFn(ctx, input)
}

func (s *stubAnalyticsService) GenerateReport(ctx context.Context, input ports.ReportInput) (*domain.AIReport, error) {
	return s.reportFn(ctx, input)
}

type stubPanelSource struct {
	bundles   map[string]*domain.PanelBundle
	requested []string
}

func (s *stubPanelSource) Panels(clientID string) (*domain.PanelBundle, bool) {
	b, ok := s.bundles[clientID]
	return b, ok
}

func (s *stubPanelSource) RequestRefresh(clientID string) {
	s.requested = append(s.requested, clientID)
}

func TestAnalyticsHandler_Predictions_DefaultsForwarded(t *testing.T) {
	stub := &stubAnalyticsService{
		predictFn: func(_ context.Context, input ports.PredictionInput) (*domain.ESGPrediction, error) {
			if input.ClientID != "dube-trade-port" || input.TimeHorizon != "6months" {
				t.Fatalf("unexpected input: %+v", input)
			}
			p := &domain.ESGPrediction{CurrentScore: 81.2}
			p.ApplyDefaults()
			return p, nil
		},
	}
	h := NewAnalyticsHandler(stub, &stubPanelSource{})

	c, rec := newTestContext(t, http.MethodPost, "/analytics/predictions",
		`{"client_id":"dube-trade-port","time_horizon":"6months"}`)
	if err := h.Predictions(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}

	var resp domain.ESGPrediction
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if resp.CurrentScore != 81.2 || resp.Fallback {
		t.Fatalf("unexpected payload: %+v", resp)
	}
}

func TestAnalyticsHandler_Predictions_MissingClient(t *testing.T) {
	h := NewAnalyticsHandler(&stubAnalyticsService{}, &stubPanelSource{})

	c, _ := newTestContext(t, http.MethodPost, "/analytics/predictions", `{"time_horizon":"6months"}`)
	err := h.Predictions(c)
	he, ok := err.(*echo.HTTPError)
	if !ok || he.Code != http.StatusUnprocessableEntity {
		t.Fatalf("expected 422, got %v", err)
	}
}

func TestAnalyticsHandler_Predictions_BadHorizon(t *testing.T) {
	h := NewAnalyticsHandler(&stubAnalyticsService{}, &stubPanelSource{})

	c, _ := newTestContext(t, http.MethodPost, "/analytics/predictions",
		`{"client_id":"dube-trade-port","time_horizon":"90days"}`)
	err := h.Predictions(c)
	he, ok := err.(*echo.HTTPError)
	if !ok || he.Code != http.StatusUnprocessableEntity {
		t.Fatalf("expected 422, got %v", err)
	}
}

func TestAnalyticsHandler_Predictions_FallbackMarkerSurvives(t *testing.T) {
	stub := &stubAnalyticsService{
		predictFn: func(_ context.Context, _ ports.PredictionInput) (*domain.ESGPrediction, error) {
			return domain.FallbackPrediction(), nil
		},
	}
	h := NewAnalyticsHandler(stub, &stubPanelSource{})

	c, rec := newTestContext(t, http.MethodPost, "/analytics/predictions",
		`{"client_id":"bertha-house"}`)
	if err := h.Predictions(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}

	var resp map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if resp["isFallback"] != true {
		t.Fatalf("expected isFallback marker, got %+v", resp)
	}
}

func TestAnalyticsHandler_FallbackCounterUsesRouteName(t *testing.T) {
	stub := &stubAnalyticsService{
		predictFn: func(_ context.Context, _ ports.PredictionInput) (*domain.ESGPrediction, error) {
			return domain.FallbackPrediction(), nil
		},
	}
	h := NewAnalyticsHandler(stub, &stubPanelSource{})

	before := testutil.ToFloat64(metrics.AnalyticsFallbacksTotal.WithLabelValues("predictions"))

	c, _ := newTestContext(t, http.MethodPost, "/analytics/predictions",
		`{"client_id":"dube-trade-port"}`)
	if err := h.Predictions(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}

	after := testutil.ToFloat64(metrics.AnalyticsFallbacksTotal.WithLabelValues("predictions"))
	if after != before+1 {
		t.Fatalf("expected predictions fallback counter to advance by 1, got %v -> %v", before, after)
	}
}

func TestAnalyticsHandler_Predictions_AuthErrorPropagates(t *testing.T) {
	stub := &stubAnalyticsService{
		predictFn: func(_ context.Context, _ ports.PredictionInput) (*domain.ESGPrediction, error) {
			return nil, &domain.UpstreamError{Status: 401, Message: "token expired"}
		},
	}
	h := NewAnalyticsHandler(stub, &stubPanelSource{})

	c, _ := newTestContext(t, http.MethodPost, "/analytics/predictions",
		`{"client_id":"dube-trade-port"}`)
	err := h.Predictions(c)
	if !domain.IsAuthError(err) {
		t.Fatalf("expected auth error, got %v", err)
	}
}

func TestAnalyticsHandler_Document_Uploads(t *testing.T) {
	stub := &stubAnalyticsService{
		documentFn: func(_ context.Context, input ports.DocumentInput) (*domain.DocumentAnalysis, error) {
			if input.Filename != "report.pdf" || input.AnalysisType != "compliance" {
				t.Fatalf("unexpected input: %s %s", input.Filename, input.AnalysisType)
			}
			content, err := io.ReadAll(input.Content)
			if err != nil || string(content) != "pdf-bytes" {
				t.Fatalf("unexpected content: %q %v", content, err)
			}
			a := &domain.DocumentAnalysis{Summary: "looks compliant"}
			a.ApplyDefaults()
			return a, nil
		},
	}
	h := NewAnalyticsHandler(stub, &stubPanelSource{})

	var body bytes.Buffer
	mw := multipart.NewWriter(&body)
	part, err := mw.CreateFormFile("document", "report.pdf")
	if err != nil {
		t.Fatalf("create form file: %v", err)
	}
	if _, err := part.Write([]byte("pdf-bytes")); err != nil {
		t.Fatalf("write part: %v", err)
	}
	if err := mw.WriteField("analysis_type", "compliance"); err != nil {
		t.Fatalf("write field: %v", err)
	}
	mw.Close()

	e := echo.New()
	e.Validator = NewValidator()
	req := httptest.NewRequest(http.MethodPost, "/analytics/document", &body)
	req.Header.Set(echo.HeaderContentType, mw.FormDataContentType())
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	if err := h.Document(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
}

func TestAnalyticsHandler_Document_MissingFile(t *testing.T) {
	h := NewAnalyticsHandler(&stubAnalyticsService{}, &stubPanelSource{})

	c, _ := newTestContext(t, http.MethodPost, "/analytics/document", "")
	err := h.Document(c)
	he, ok := err.(*echo.HTTPError)
	if !ok || he.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %v", err)
	}
}

func TestAnalyticsHandler_Report_Generated(t *testing.T) {
	stub := &stubAnalyticsService{
		reportFn: func(_ context.Context, input ports.ReportInput) (*domain.AIReport, error) {
			if input.ClientID != "dube-trade-port" || input.ReportType != "summary" {
				t.Fatalf("unexpected input: %+v", input)
			}
			return domain.FallbackReport(), nil
		},
	}
	h := NewAnalyticsHandler(stub, &stubPanelSource{})

	c, rec := newTestContext(t, http.MethodPost, "/analytics/report",
		`{"client_id":"dube-trade-port","report_type":"summary"}`)
	if err := h.Report(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
}

func TestAnalyticsHandler_Panels_CacheHit(t *testing.T) {
	panels := &stubPanelSource{bundles: map[string]*domain.PanelBundle{
		"dube-trade-port": {ClientID: "dube-trade-port", Prediction: domain.FallbackPrediction()},
	}}
	h := NewAnalyticsHandler(&stubAnalyticsService{}, panels)

	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/analytics/panels/dube-trade-port", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.SetPath("/analytics/panels/:client_id")
	c.SetParamNames("client_id")
	c.SetParamValues("dube-trade-port")

	if err := h.Panels(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if len(panels.requested) != 0 {
		t.Fatalf("cache hit must not queue a refresh, got %v", panels.requested)
	}
}

func TestAnalyticsHandler_Panels_ColdCacheQueuesRefresh(t *testing.T) {
	panels := &stubPanelSource{bundles: map[string]*domain.PanelBundle{}}
	h := NewAnalyticsHandler(&stubAnalyticsService{}, panels)

	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/analytics/panels/bertha-house", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.SetPath("/analytics/panels/:client_id")
	c.SetParamNames("client_id")
	c.SetParamValues("bertha-house")

	if err := h.Panels(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusAccepted {
		t.Fatalf("expected 202, got %d", rec.Code)
	}
	if len(panels.requested) != 1 || panels.requested[0] != "bertha-house" {
		t.Fatalf("expected one queued refresh, got %v", panels.requested)
	}
}
