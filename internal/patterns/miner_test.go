package patterns

import (
	"context"
	"testing"
	"time"

	"github.com/rapidstack/rapid-insight/internal/models"
)

type fakePatternStore struct {
	stored int
}

func (f *fakePatternStore) StorePatterns(ctx context.Context, assetID string, patterns []models.FaultPattern) error {
	f.stored += len(patterns)
	return nil
}

func TestMinerMinesRecurringDiagnoses(t *testing.T) {
	store := &fakePatternStore{}
	miner := NewMiner(nil, store)

	now := time.Now()
	records := []models.EvaluationRecord{
		{TraceID: "t1", AssetID: "P-101", Diagnosis: "Outer race spall", Component: "afb", SeverityLevel: models.SeverityWarning, CreatedAt: now},
		{TraceID: "t2", AssetID: "P-101", Diagnosis: "Outer race spall", Component: "afb", SeverityLevel: models.SeverityAlarm, CreatedAt: now.Add(time.Hour)},
		{TraceID: "t3", AssetID: "P-101", Diagnosis: "Imbalance", Component: "rotor", SeverityLevel: models.SeverityWatch, CreatedAt: now.Add(2 * time.Hour)},
		{TraceID: "t4", AssetID: "P-101", SeverityLevel: models.SeverityNormal, CreatedAt: now.Add(3 * time.Hour)},
	}

	patterns, err := miner.Mine(context.Background(), "P-101", records)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(patterns) != 2 {
		t.Fatalf("expected 2 patterns, got %d", len(patterns))
	}
	if store.stored != 2 {
		t.Fatalf("expected patterns to be stored, got %d", store.stored)
	}

	top := patterns[0]
	if top.Diagnosis != "Outer race spall" {
		t.Fatalf("expected most prevalent diagnosis first, got %s", top.Diagnosis)
	}
	if top.Occurrences != 2 {
		t.Fatalf("expected 2 occurrences, got %d", top.Occurrences)
	}
	if top.Prevalence != 0.5 {
		t.Fatalf("expected prevalence 0.5 over 4 records, got %f", top.Prevalence)
	}
	if top.WorstSeverity != models.SeverityAlarm {
		t.Fatalf("expected worst severity alarm, got %s", top.WorstSeverity)
	}
	if !top.LastSeen.Equal(now.Add(time.Hour)) {
		t.Fatalf("unexpected last seen: %v", top.LastSeen)
	}
	if top.ID != "pattern-P-101-outer-race-spall" {
		t.Fatalf("unexpected pattern id: %s", top.ID)
	}
}

func TestMinerSkipsEmptyHistory(t *testing.T) {
	miner := NewMiner(nil, nil)
	patterns, err := miner.Mine(context.Background(), "P-101", nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if patterns != nil {
		t.Fatalf("expected no patterns, got %v", patterns)
	}
}

func TestMinerBreaksPrevalenceTiesByName(t *testing.T) {
	miner := NewMiner(nil, nil)
	now := time.Now()
	records := []models.EvaluationRecord{
		{TraceID: "t1", Diagnosis: "Misalignment", SeverityLevel: models.SeverityWatch, CreatedAt: now},
		{TraceID: "t2", Diagnosis: "Imbalance", SeverityLevel: models.SeverityWatch, CreatedAt: now},
	}
	patterns, err := miner.Mine(context.Background(), "P-101", records)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(patterns) != 2 || patterns[0].Diagnosis != "Imbalance" {
		t.Fatalf("expected deterministic tie break, got %+v", patterns)
	}
}
