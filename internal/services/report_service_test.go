package services

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"

	"github.com/rapidstack/rapid-insight/internal/models"
	"github.com/rapidstack/rapid-insight/internal/policy"
)

type engineStub struct {
	mu      sync.Mutex
	calls   int
	results []models.AnalysisResult
	err     error
}

func (e *engineStub) Evaluate(ctx context.Context, req models.EvaluateRequest) (models.AnalysisResult, error) {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.err != nil {
		return models.AnalysisResult{}, e.err
	}
	result := e.results[e.calls%len(e.results)]
	e.calls++
	result.AssetID = req.AssetID
	return result, nil
}

func (e *engineStub) Health(ctx context.Context) error { return e.err }

type historyStub struct {
	mu      sync.Mutex
	stored  []models.EvaluationRecord
	listErr error
}

func (h *historyStub) StoreEvaluation(ctx context.Context, rec models.EvaluationRecord) error {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.stored = append(h.stored, rec)
	return nil
}

func (h *historyStub) ListEvaluations(ctx context.Context, assetID string, limit int) ([]models.EvaluationRecord, error) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.listErr != nil {
		return nil, h.listErr
	}
	return h.stored, nil
}

func degradingResult() models.AnalysisResult {
	return models.AnalysisResult{
		SchemaVersion:      "1.0",
		FinalSeverityLevel: models.SeverityWarning,
		FinalSeverityScore: 0.6,
		Confidence:         0.8,
		HealthStage:        models.StageDegrading,
		RiskIndex:          42,
		RecommendedAction:  "Schedule bearing inspection",
		ModuleTrace: models.ModuleTrace{
			Initiators: &models.InitiatorResult{
				Module:     "initiator_detection",
				Component:  "afb",
				NumMatches: 1,
				MatchedRules: []models.MatchedRule{
					{RuleID: "B-07", Initiator: "BPFO", Diagnosis: "Outer race defect", Score: 0.82},
				},
				Confidence: 0.8,
			},
			Plan: &models.PlanResult{
				PlanItems: []models.PlanItem{
					{Rank: 1, PriorityScore: 0.9, ActionTitle: "Replace bearing", Window: "7d"},
					{Rank: 2, PriorityScore: 0.7, ActionTitle: "Collect spectrum", Window: "14d"},
					{Rank: 3, PriorityScore: 0.5, ActionTitle: "Check lubrication", Window: "30d"},
				},
				TotalActions: 3,
			},
		},
	}
}

func evalRequest(asset string) models.EvaluateRequest {
	return models.EvaluateRequest{
		SchemaVersion: "1.0",
		AssetID:       asset,
		Signal:        models.SignalInput{Values: []float64{1, 2, 3}},
	}
}

func TestEvaluatePublishesResultAndReport(t *testing.T) {
	engine := &engineStub{results: []models.AnalysisResult{degradingResult()}}
	history := &historyStub{}
	svc := NewReportService(nil, engine, history, nil)

	result, err := svc.Evaluate(context.Background(), evalRequest("P-101"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if result.TraceID == "" {
		t.Fatalf("expected a generated trace id")
	}

	latest, ok := svc.LatestResult("P-101")
	if !ok {
		t.Fatalf("expected a published result")
	}
	if latest.TraceID != result.TraceID {
		t.Fatalf("latest result does not match evaluation")
	}

	report, ok := svc.Report("P-101", policy.ConfigFor(policy.RoleEngineer))
	if !ok {
		t.Fatalf("expected a published report")
	}
	if report.ExecutiveSummary.Headline == "" {
		t.Fatalf("expected a composed headline")
	}
	if len(report.Actions) != 3 {
		t.Fatalf("engineer role should see all actions, got %d", len(report.Actions))
	}

	if len(history.stored) != 1 {
		t.Fatalf("expected one history row, got %d", len(history.stored))
	}
	if history.stored[0].Diagnosis != "Outer race defect" {
		t.Fatalf("history row missing diagnosis: %+v", history.stored[0])
	}
}

func TestReportCapsActionsByRole(t *testing.T) {
	engine := &engineStub{results: []models.AnalysisResult{degradingResult()}}
	svc := NewReportService(nil, engine, nil, nil)

	if _, err := svc.Evaluate(context.Background(), evalRequest("P-101")); err != nil {
		t.Fatalf("evaluate: %v", err)
	}

	report, ok := svc.Report("P-101", policy.ConfigFor(policy.RoleExecutive))
	if !ok {
		t.Fatalf("expected a report")
	}
	if len(report.Actions) != 1 {
		t.Fatalf("executive role should see one action, got %d", len(report.Actions))
	}
	if report.Actions[0].ActionTitle != "Replace bearing" {
		t.Fatalf("cap should keep the top-ranked action, got %s", report.Actions[0].ActionTitle)
	}

	// The cap must not mutate the stored report.
	full, _ := svc.Report("P-101", policy.ConfigFor(policy.RoleEngineer))
	if len(full.Actions) != 3 {
		t.Fatalf("stored report was truncated to %d actions", len(full.Actions))
	}
}

// slowFirstEngine blocks its first call until released so a later submission
// can overtake it.
type slowFirstEngine struct {
	result       models.AnalysisResult
	calls        int32
	firstEntered chan struct{}
	firstRelease chan struct{}
}

func (e *slowFirstEngine) Evaluate(ctx context.Context, req models.EvaluateRequest) (models.AnalysisResult, error) {
	if atomic.AddInt32(&e.calls, 1) == 1 {
		close(e.firstEntered)
		<-e.firstRelease
	}
	result := e.result
	result.AssetID = req.AssetID
	return result, nil
}

func (e *slowFirstEngine) Health(ctx context.Context) error { return nil }

func TestStaleEvaluationIsDiscarded(t *testing.T) {
	engine := &slowFirstEngine{
		result:       degradingResult(),
		firstEntered: make(chan struct{}),
		firstRelease: make(chan struct{}),
	}
	svc := NewReportService(nil, engine, nil, nil)
	ctx := context.Background()

	firstDone := make(chan error, 1)
	go func() {
		_, err := svc.Evaluate(ctx, evalRequest("P-101"))
		firstDone <- err
	}()
	<-engine.firstEntered

	// A newer submission completes while the first is still in flight.
	second, err := svc.Evaluate(ctx, evalRequest("P-101"))
	if err != nil {
		t.Fatalf("second evaluate: %v", err)
	}

	close(engine.firstRelease)
	if err := <-firstDone; !errors.Is(err, ErrStaleEvaluation) {
		t.Fatalf("expected stale evaluation error, got %v", err)
	}

	latest, ok := svc.LatestResult("P-101")
	if !ok {
		t.Fatalf("expected the newer evaluation to stay published")
	}
	if latest.TraceID != second.TraceID {
		t.Fatalf("stale response overwrote the newer result")
	}
}

func TestEvaluateRejectsMissingAsset(t *testing.T) {
	svc := NewReportService(nil, &engineStub{results: []models.AnalysisResult{{}}}, nil, nil)
	if _, err := svc.Evaluate(context.Background(), models.EvaluateRequest{}); err == nil {
		t.Fatalf("expected error for missing asset id")
	}
}

func TestEvaluateRejectsBadTimestamp(t *testing.T) {
	svc := NewReportService(nil, &engineStub{results: []models.AnalysisResult{{}}}, nil, nil)
	req := evalRequest("P-101")
	req.TimestampUTC = "yesterday"
	if _, err := svc.Evaluate(context.Background(), req); err == nil {
		t.Fatalf("expected error for invalid timestamp")
	}
}

func TestEvaluateSurfacesEngineFailure(t *testing.T) {
	engine := &engineStub{err: errors.New("engine down")}
	svc := NewReportService(nil, engine, nil, nil)
	if _, err := svc.Evaluate(context.Background(), evalRequest("P-101")); err == nil {
		t.Fatalf("expected engine failure to surface")
	}
	if _, ok := svc.LatestResult("P-101"); ok {
		t.Fatalf("failed evaluation must not publish")
	}
}

func TestLatestResultUnknownAsset(t *testing.T) {
	svc := NewReportService(nil, &engineStub{results: []models.AnalysisResult{{}}}, nil, nil)
	if _, ok := svc.LatestResult("ghost"); ok {
		t.Fatalf("unknown asset should have no result")
	}
	if _, ok := svc.Report("ghost", policy.ConfigFor(policy.RoleEngineer)); ok {
		t.Fatalf("unknown asset should have no report")
	}
}
