package repo

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/rapidstack/rapid-insight/internal/models"
)

const evaluationsSchema = `
CREATE TABLE IF NOT EXISTS evaluations (
    trace_id       TEXT PRIMARY KEY,
    asset_id       TEXT NOT NULL,
    severity_level TEXT NOT NULL,
    severity_score REAL NOT NULL,
    health_stage   TEXT NOT NULL,
    risk_index     REAL NOT NULL,
    diagnosis      TEXT NOT NULL DEFAULT '',
    component      TEXT NOT NULL DEFAULT '',
    created_at     TEXT NOT NULL
);
`

const evaluationsIndex = `
CREATE INDEX IF NOT EXISTS idx_evaluations_asset_time
ON evaluations(asset_id, created_at DESC);
`

// HistoryRepo persists evaluation summaries in SQLite for fleet history and
// pattern mining.
type HistoryRepo struct {
	db *sql.DB
}

// NewHistoryRepo initialises the evaluations table and returns a HistoryRepo.
func NewHistoryRepo(db *sql.DB) (*HistoryRepo, error) {
	if db == nil {
		return nil, errors.New("history repo requires a database handle")
	}
	if _, err := db.Exec(evaluationsSchema); err != nil {
		return nil, fmt.Errorf("init evaluations: %w", err)
	}
	if _, err := db.Exec(evaluationsIndex); err != nil {
		return nil, fmt.Errorf("init evaluations index: %w", err)
	}
	return &HistoryRepo{db: db}, nil
}

// StoreEvaluation upserts one evaluation summary keyed by trace ID.
func (r *HistoryRepo) StoreEvaluation(ctx context.Context, rec models.EvaluationRecord) error {
	if rec.TraceID == "" {
		return errors.New("trace_id is required")
	}
	if rec.CreatedAt.IsZero() {
		rec.CreatedAt = time.Now().UTC()
	}
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO evaluations
		(trace_id, asset_id, severity_level, severity_score, health_stage, risk_index, diagnosis, component, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(trace_id) DO UPDATE SET
			severity_level = excluded.severity_level,
			severity_score = excluded.severity_score,
			health_stage   = excluded.health_stage,
			risk_index     = excluded.risk_index,
			diagnosis      = excluded.diagnosis,
			component      = excluded.component`,
		rec.TraceID,
		rec.AssetID,
		string(rec.SeverityLevel),
		rec.SeverityScore,
		string(rec.HealthStage),
		rec.RiskIndex,
		rec.Diagnosis,
		rec.Component,
		rec.CreatedAt.Format(time.RFC3339),
	)
	if err != nil {
		return fmt.Errorf("store evaluation: %w", err)
	}
	return nil
}

// ListEvaluations returns the most recent evaluation summaries for an asset,
// newest first. limit <= 0 uses a sane default.
func (r *HistoryRepo) ListEvaluations(ctx context.Context, assetID string, limit int) ([]models.EvaluationRecord, error) {
	if limit <= 0 {
		limit = 100
	}
	rows, err := r.db.QueryContext(ctx, `
		SELECT trace_id, asset_id, severity_level, severity_score, health_stage, risk_index, diagnosis, component, created_at
		FROM evaluations
		WHERE asset_id = ?
		ORDER BY created_at DESC
		LIMIT ?`, assetID, limit)
	if err != nil {
		return nil, fmt.Errorf("list evaluations: %w", err)
	}
	defer rows.Close()

	var records []models.EvaluationRecord
	for rows.Next() {
		var rec models.EvaluationRecord
		var severity, stage, createdAt string
		if err := rows.Scan(&rec.TraceID, &rec.AssetID, &severity, &rec.SeverityScore, &stage, &rec.RiskIndex, &rec.Diagnosis, &rec.Component, &createdAt); err != nil {
			return nil, fmt.Errorf("scan evaluation: %w", err)
		}
		rec.SeverityLevel = models.SeverityLevel(severity)
		rec.HealthStage = models.HealthStage(stage)
		if ts, err := time.Parse(time.RFC3339, createdAt); err == nil {
			rec.CreatedAt = ts
		}
		records = append(records, rec)
	}
	return records, rows.Err()
}
