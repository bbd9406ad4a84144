package models

import "time"

// FaultPattern represents a recurring diagnosis mined from evaluation history.
type FaultPattern struct {
	ID            string        `json:"id"`
	AssetID       string        `json:"asset_id"`
	Diagnosis     string        `json:"diagnosis"`
	Component     string        `json:"component"`
	Occurrences   int           `json:"occurrences"`
	Prevalence    float64       `json:"prevalence"`
	WorstSeverity SeverityLevel `json:"worst_severity"`
	LastSeen      time.Time     `json:"last_seen"`
}

// EvaluationRecord is the persisted summary of one completed evaluation,
// kept for fleet history and pattern mining.
type EvaluationRecord struct {
	TraceID       string        `json:"trace_id"`
	AssetID       string        `json:"asset_id"`
	SeverityLevel SeverityLevel `json:"severity_level"`
	SeverityScore float64       `json:"severity_score"`
	HealthStage   HealthStage   `json:"health_stage"`
	RiskIndex     float64       `json:"risk_index"`
	Diagnosis     string        `json:"diagnosis"`
	Component     string        `json:"component"`
	CreatedAt     time.Time     `json:"created_at"`
}
