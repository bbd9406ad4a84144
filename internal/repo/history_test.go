package repo

import (
	"context"
	"database/sql"
	"testing"
	"time"

	_ "modernc.org/sqlite"

	"github.com/rapidstack/rapid-insight/internal/models"
)

func newTestHistory(t *testing.T) *HistoryRepo {
	t.Helper()
	db, err := sql.Open("sqlite", ":memory:")
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	t.Cleanup(func() { db.Close() })

	repo, err := NewHistoryRepo(db)
	if err != nil {
		t.Fatalf("new history repo: %v", err)
	}
	return repo
}

func TestStoreAndListEvaluations(t *testing.T) {
	repo := newTestHistory(t)
	ctx := context.Background()
	base := time.Date(2026, 8, 20, 10, 0, 0, 0, time.UTC)

	records := []models.EvaluationRecord{
		{TraceID: "t1", AssetID: "P-101", SeverityLevel: models.SeverityWatch, SeverityScore: 0.35, HealthStage: models.StageDegrading, RiskIndex: 21, Diagnosis: "Imbalance", Component: "afb", CreatedAt: base},
		{TraceID: "t2", AssetID: "P-101", SeverityLevel: models.SeverityAlarm, SeverityScore: 0.9, HealthStage: models.StageCritical, RiskIndex: 78, Diagnosis: "Outer race spall", Component: "afb", CreatedAt: base.Add(time.Hour)},
		{TraceID: "t3", AssetID: "F-202", SeverityLevel: models.SeverityNormal, SeverityScore: 0.1, HealthStage: models.StageHealthy, RiskIndex: 4, CreatedAt: base.Add(2 * time.Hour)},
	}
	for _, rec := range records {
		if err := repo.StoreEvaluation(ctx, rec); err != nil {
			t.Fatalf("store %s: %v", rec.TraceID, err)
		}
	}

	got, err := repo.ListEvaluations(ctx, "P-101", 10)
	if err != nil {
		t.Fatalf("list evaluations: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("expected 2 records for P-101, got %d", len(got))
	}
	if got[0].TraceID != "t2" {
		t.Fatalf("expected newest first, got %s", got[0].TraceID)
	}
	if got[0].SeverityLevel != models.SeverityAlarm || got[0].Diagnosis != "Outer race spall" {
		t.Fatalf("record fields lost: %+v", got[0])
	}
}

func TestStoreEvaluationUpsertsByTrace(t *testing.T) {
	repo := newTestHistory(t)
	ctx := context.Background()

	rec := models.EvaluationRecord{TraceID: "t1", AssetID: "P-101", SeverityLevel: models.SeverityWatch, HealthStage: models.StageDegrading}
	if err := repo.StoreEvaluation(ctx, rec); err != nil {
		t.Fatalf("store: %v", err)
	}
	rec.SeverityLevel = models.SeverityAlarm
	if err := repo.StoreEvaluation(ctx, rec); err != nil {
		t.Fatalf("upsert: %v", err)
	}

	got, err := repo.ListEvaluations(ctx, "P-101", 10)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(got) != 1 || got[0].SeverityLevel != models.SeverityAlarm {
		t.Fatalf("upsert did not replace severity: %+v", got)
	}
}

func TestStoreEvaluationRequiresTraceID(t *testing.T) {
	repo := newTestHistory(t)
	err := repo.StoreEvaluation(context.Background(), models.EvaluationRecord{AssetID: "P-101"})
	if err == nil {
		t.Fatalf("expected error for missing trace id")
	}
}
