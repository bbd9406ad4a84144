package repo

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"testing"
	"time"

	"github.com/rapidstack/rapid-insight/internal/models"
)

func sampleRequest() models.EvaluateRequest {
	return models.EvaluateRequest{
		SchemaVersion: "1.0",
		AssetID:       "P-101",
		TimestampUTC:  "2026-08-20T10:00:00Z",
		Signal: models.SignalInput{
			SignalType:     "velocity",
			Direction:      "H",
			Unit:           "mm/s",
			SamplingRateHz: 6400,
			Values:         []float64{1.2, 1.3, 1.1, 1.4},
		},
		Component:        "afb",
		Criticality:      0.6,
		FailureThreshold: 8.0,
	}
}

func engineResponse(t *testing.T, result models.AnalysisResult) *http.Response {
	t.Helper()
	data, err := json.Marshal(result)
	if err != nil {
		t.Fatalf("marshal result: %v", err)
	}
	return &http.Response{
		StatusCode: http.StatusOK,
		Body:       io.NopCloser(bytes.NewReader(data)),
		Header:     make(http.Header),
	}
}

func TestEvaluatePostsToEngine(t *testing.T) {
	hits := 0
	client := NewEngineClient("https://engine.example.com", "/rapid-ai/evaluate", "/health", time.Second, nil, 0)
	client.httpClient = newTestClient(roundTripFunc(func(req *http.Request) (*http.Response, error) {
		hits++
		if req.URL.Path != "/rapid-ai/evaluate" {
			t.Fatalf("unexpected path: %s", req.URL.Path)
		}
		if ct := req.Header.Get("Content-Type"); ct != "application/json" {
			t.Fatalf("unexpected content type: %s", ct)
		}
		var body models.EvaluateRequest
		if err := json.NewDecoder(req.Body).Decode(&body); err != nil {
			t.Fatalf("decode request: %v", err)
		}
		if body.AssetID != "P-101" {
			t.Fatalf("unexpected asset: %s", body.AssetID)
		}
		return engineResponse(t, models.AnalysisResult{
			AssetID:            "P-101",
			FinalSeverityLevel: models.SeverityWatch,
			HealthStage:        models.StageDegrading,
		}), nil
	}))

	result, err := client.Evaluate(context.Background(), sampleRequest())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if result.HealthStage != models.StageDegrading {
		t.Fatalf("unexpected stage: %s", result.HealthStage)
	}
	if hits != 1 {
		t.Fatalf("expected one upstream request, got %d", hits)
	}
}

func TestEvaluateCachesIdenticalRequests(t *testing.T) {
	hits := 0
	client := NewEngineClient("https://engine.example.com", "/rapid-ai/evaluate", "/health", time.Second, newStubCache(), time.Minute)
	client.httpClient = newTestClient(roundTripFunc(func(req *http.Request) (*http.Response, error) {
		hits++
		return engineResponse(t, models.AnalysisResult{AssetID: "P-101", HealthStage: models.StageHealthy}), nil
	}))

	ctx := context.Background()
	if _, err := client.Evaluate(ctx, sampleRequest()); err != nil {
		t.Fatalf("first evaluate: %v", err)
	}
	if _, err := client.Evaluate(ctx, sampleRequest()); err != nil {
		t.Fatalf("second evaluate: %v", err)
	}
	if hits != 1 {
		t.Fatalf("cache should absorb the second request; hits=%d", hits)
	}

	// A different trace ID must not defeat the cache.
	req := sampleRequest()
	req.TraceID = "different-trace"
	if _, err := client.Evaluate(ctx, req); err != nil {
		t.Fatalf("third evaluate: %v", err)
	}
	if hits != 1 {
		t.Fatalf("trace id should be excluded from the cache key; hits=%d", hits)
	}

	// A different signal must miss.
	req = sampleRequest()
	req.Signal.Values = []float64{9, 9, 9}
	if _, err := client.Evaluate(ctx, req); err != nil {
		t.Fatalf("fourth evaluate: %v", err)
	}
	if hits != 2 {
		t.Fatalf("changed signal should bypass cache; hits=%d", hits)
	}
}

func TestEvaluateValidatesInput(t *testing.T) {
	client := NewEngineClient("https://engine.example.com", "/rapid-ai/evaluate", "/health", time.Second, nil, 0)

	req := sampleRequest()
	req.AssetID = ""
	if _, err := client.Evaluate(context.Background(), req); err == nil {
		t.Fatalf("expected error for missing asset id")
	}

	req = sampleRequest()
	req.Signal.Values = nil
	if _, err := client.Evaluate(context.Background(), req); err == nil {
		t.Fatalf("expected error for empty signal")
	}
}

func TestEvaluateSurfacesEngineErrors(t *testing.T) {
	client := NewEngineClient("https://engine.example.com", "/rapid-ai/evaluate", "/health", time.Second, nil, 0)
	client.httpClient = newTestClient(roundTripFunc(func(req *http.Request) (*http.Response, error) {
		return &http.Response{
			StatusCode: http.StatusBadGateway,
			Status:     "502 Bad Gateway",
			Body:       io.NopCloser(bytes.NewReader(nil)),
			Header:     make(http.Header),
		}, nil
	}))
	if _, err := client.Evaluate(context.Background(), sampleRequest()); err == nil {
		t.Fatalf("expected error for upstream failure")
	}
}
