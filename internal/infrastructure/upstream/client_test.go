package upstream

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"github.com/esgview/admin-gateway/internal/core/domain"
	"github.com/esgview/admin-gateway/internal/core/ports"
)

func newTestClient(t *testing.T, handler http.Handler) (*Client, *httptest.Server) {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	client := NewClient(Config{BaseURL: srv.URL, RequestTimeout: 2 * time.Second, UploadTimeout: 2 * time.Second}, zerolog.Nop())
	return client, srv
}

func TestAuthClient_Login_FormEncoded(t *testing.T) {
	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/auth/login" {
			t.Fatalf("unexpected path: %s", r.URL.Path)
		}
		if ct := r.Header.Get("Content-Type"); ct != "application/x-www-form-urlencoded" {
			t.Fatalf("expected form encoding, got %s", ct)
		}
		if err := r.ParseForm(); err != nil {
			t.Fatalf("parse form: %v", err)
		}
		if r.PostForm.Get("username") != "admin" || r.PostForm.Get("password") != "pw" {
			t.Fatalf("unexpected form values: %v", r.PostForm)
		}
		_ = json.NewEncoder(w).Encode(map[string]any{
			"access_token": "tok-1", "token_type": "bearer", "user_id": "u1", "role": "admin",
		})
	}))

	creds, err := NewAuthClient(client).Login(context.Background(), "admin", "pw")
	if err != nil {
		t.Fatalf("login failed: %v", err)
	}
	if creds.Token != "tok-1" || creds.Role != "admin" || creds.UserID != "u1" {
		t.Fatalf("unexpected credentials: %+v", creds)
	}
}

func TestAuthClient_Login_RejectionCarriesDetail(t *testing.T) {
	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		_, _ = w.Write([]byte(`{"detail":"Incorrect username or password"}`))
	}))

	_, err := NewAuthClient(client).Login(context.Background(), "ghost", "bad")
	if !domain.IsAuthError(err) {
		t.Fatalf("expected auth error, got %v", err)
	}
	if msg := domain.ErrorMessage(err); msg != "Incorrect username or password" {
		t.Fatalf("expected upstream detail surfaced, got %q", msg)
	}
}

func TestAuthClient_Signup_ForcesClientRole(t *testing.T) {
	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var payload map[string]any
		if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
			t.Fatalf("decode payload: %v", err)
		}
		if payload["role"] != "client" {
			t.Fatalf("expected forced client role, got %v", payload["role"])
		}
		access, ok := payload["portfolio_access"].([]any)
		if !ok || len(access) != 0 {
			t.Fatalf("expected empty portfolio access, got %v", payload["portfolio_access"])
		}
		_ = json.NewEncoder(w).Encode(map[string]any{
			"access_token": "tok-2", "user_id": "u2", "role": "client", "message": "check your email",
		})
	}))

	creds, err := NewAuthClient(client).Signup(context.Background(), ports.SignupInput{Username: "newco", Password: "pw"})
	if err != nil {
		t.Fatalf("signup failed: %v", err)
	}
	if creds.Message != "check your email" {
		t.Fatalf("expected upstream message, got %q", creds.Message)
	}
}

func TestAuthClient_Profile_AttachesBearer(t *testing.T) {
	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if got := r.Header.Get("Authorization"); got != "Bearer tok-3" {
			t.Fatalf("expected bearer header, got %q", got)
		}
		_ = json.NewEncoder(w).Encode(map[string]any{
			"id": "u1", "username": "dube-user", "role": "client",
			"portfolio_access": []string{"dube-trade-port"},
		})
	}))

	profile, err := NewAuthClient(client).Profile(context.Background(), "tok-3")
	if err != nil {
		t.Fatalf("profile fetch failed: %v", err)
	}
	if profile.Username != "dube-user" || len(profile.PortfolioAccess) != 1 {
		t.Fatalf("unexpected profile: %+v", profile)
	}
}

func TestClient_ServerErrorIsTransient(t *testing.T) {
	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))

	_, err := NewAuthClient(client).Profile(context.Background(), "tok")
	if !domain.IsTransient(err) {
		t.Fatalf("expected transient classification for 5xx, got %v", err)
	}
}

func TestClient_TimeoutIsTransient(t *testing.T) {
	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		time.Sleep(200 * time.Millisecond)
	}))
	client.requestTimeout = 20 * time.Millisecond

	_, err := NewAuthClient(client).Profile(context.Background(), "tok")
	if !domain.IsTransient(err) {
		t.Fatalf("expected transient classification for timeout, got %v", err)
	}
}

func TestClient_UnreachableHostIsTransient(t *testing.T) {
	client := NewClient(Config{BaseURL: "http://127.0.0.1:1", RequestTimeout: 500 * time.Millisecond}, zerolog.Nop())

	_, err := NewAuthClient(client).Profile(context.Background(), "tok")
	if !domain.IsTransient(err) {
		t.Fatalf("expected transient classification for unreachable host, got %v", err)
	}
}

func TestAnalyticsClient_PredictScores_DefaultsApplied(t *testing.T) {
	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/gemini/predict-esg-scores" {
			t.Fatalf("unexpected path: %s", r.URL.Path)
		}
		var payload map[string]any
		if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
			t.Fatalf("decode payload: %v", err)
		}
		if payload["timeHorizon"] != "12months" || payload["model"] != "gemini-pro" {
			t.Fatalf("expected wire defaults, got %v", payload)
		}
		_ = json.NewEncoder(w).Encode(map[string]any{"currentScore": 80, "trend": "stable"})
	}))

	out, err := NewAnalyticsClient(client).PredictScores(context.Background(), "tok", ports.PredictionInput{ClientID: "dube-trade-port"})
	if err != nil {
		t.Fatalf("predict failed: %v", err)
	}
	if out.CurrentScore != 80 || out.Trend != "stable" {
		t.Fatalf("unexpected result: %+v", out)
	}
}

func TestAnalyticsClient_AnalyzeDocument_Multipart(t *testing.T) {
	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if err := r.ParseMultipartForm(1 << 20); err != nil {
			t.Fatalf("parse multipart: %v", err)
		}
		if r.FormValue("analysisType") != "comprehensive" {
			t.Fatalf("expected default analysis type, got %q", r.FormValue("analysisType"))
		}
		file, header, err := r.FormFile("document")
		if err != nil {
			t.Fatalf("missing document part: %v", err)
		}
		defer file.Close()
		if header.Filename != "sustainability.pdf" {
			t.Fatalf("unexpected filename: %s", header.Filename)
		}
		_ = json.NewEncoder(w).Encode(map[string]any{"summary": "looks good"})
	}))

	out, err := NewAnalyticsClient(client).AnalyzeDocument(context.Background(), "tok", ports.DocumentInput{
		Filename: "sustainability.pdf",
		Content:  strings.NewReader("%PDF-1.4 test"),
	})
	if err != nil {
		t.Fatalf("analyze failed: %v", err)
	}
	if out.Summary != "looks good" {
		t.Fatalf("unexpected result: %+v", out)
	}
}

func TestAnalyticsClient_GenerateReport_IncludesSections(t *testing.T) {
	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var payload map[string]any
		if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
			t.Fatalf("decode payload: %v", err)
		}
		for _, key := range []string{"includePredictions", "includeRecommendations", "includeRiskAnalysis"} {
			if payload[key] != true {
				t.Fatalf("expected %s to be requested, got %v", key, payload[key])
			}
		}
		_ = json.NewEncoder(w).Encode(map[string]any{"reportId": "R-1"})
	}))

	out, err := NewAnalyticsClient(client).GenerateReport(context.Background(), "tok", ports.ReportInput{ClientID: "bertha-house"})
	if err != nil {
		t.Fatalf("report failed: %v", err)
	}
	if out.ReportID != "R-1" {
		t.Fatalf("unexpected result: %+v", out)
	}
}
