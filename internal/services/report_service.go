package services

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/rapidstack/rapid-insight/internal/metrics"
	"github.com/rapidstack/rapid-insight/internal/models"
	"github.com/rapidstack/rapid-insight/internal/narrative"
	"github.com/rapidstack/rapid-insight/internal/patterns"
	"github.com/rapidstack/rapid-insight/internal/policy"
	"github.com/rapidstack/rapid-insight/internal/utils"
)

// Engine abstracts the upstream analysis engine.
type Engine interface {
	Evaluate(ctx context.Context, req models.EvaluateRequest) (models.AnalysisResult, error)
	Health(ctx context.Context) error
}

// History abstracts persistence of evaluation summaries.
type History interface {
	StoreEvaluation(ctx context.Context, rec models.EvaluationRecord) error
	ListEvaluations(ctx context.Context, assetID string, limit int) ([]models.EvaluationRecord, error)
}

// assetState is the latest published evaluation for one asset. seq orders
// submissions so a slow engine response cannot overwrite a fresher one.
type assetState struct {
	issuedSeq    uint64
	publishedSeq uint64
	result       models.AnalysisResult
	report       models.NarrativeReport
	updatedAt    time.Time
}

// ReportService orchestrates evaluations against the engine and keeps the
// latest result and narrative report per asset.
type ReportService struct {
	logger    *slog.Logger
	engine    Engine
	history   History
	miner     *patterns.Miner
	latencies *utils.LatencyTracker

	mu     sync.Mutex
	assets map[string]*assetState
}

// NewReportService constructs the reporting facade. history and miner may be
// nil; evaluation then runs without persistence or pattern mining.
func NewReportService(logger *slog.Logger, engine Engine, history History, miner *patterns.Miner) *ReportService {
	if logger == nil {
		logger = slog.Default()
	}
	return &ReportService{
		logger:    logger,
		engine:    engine,
		history:   history,
		miner:     miner,
		latencies: utils.NewLatencyTracker(1024),
		assets:    make(map[string]*assetState),
	}
}

// ErrStaleEvaluation marks an evaluation that completed after a newer
// submission for the same asset had already been published.
var ErrStaleEvaluation = fmt.Errorf("evaluation superseded by a newer submission")

// Evaluate submits the request to the engine, publishes the result and its
// narrative report, and persists the evaluation summary. Responses arriving
// out of order are discarded rather than allowed to roll the asset back.
func (s *ReportService) Evaluate(ctx context.Context, req models.EvaluateRequest) (models.AnalysisResult, error) {
	if s.engine == nil {
		return models.AnalysisResult{}, utils.NewAppError("evaluate", "engine client not configured", nil)
	}
	if req.AssetID == "" {
		return models.AnalysisResult{}, utils.NewAppError("evaluate", "asset_id is required", nil)
	}
	if req.TimestampUTC != "" {
		if _, err := utils.ParseRFC3339(req.TimestampUTC); err != nil {
			return models.AnalysisResult{}, utils.NewAppError("evaluate", "timestamp_utc must be RFC3339", err)
		}
	}
	if req.TraceID == "" {
		req.TraceID = uuid.NewString()
	}

	seq := s.issueSeq(req.AssetID)

	start := time.Now()
	result, err := s.engine.Evaluate(ctx, req)
	duration := time.Since(start)
	if err != nil {
		metrics.ObserveEvaluation(duration, metrics.OutcomeError)
		s.logger.Error("engine evaluation failed",
			slog.String("asset_id", req.AssetID),
			slog.String("trace_id", req.TraceID),
			slog.Any("error", err))
		return models.AnalysisResult{}, utils.NewAppError("evaluate", "engine evaluation failed", err)
	}
	if result.TraceID == "" {
		result.TraceID = req.TraceID
	}

	composeStart := time.Now()
	report := narrative.Compose(result)
	metrics.ObserveComposition(time.Since(composeStart))

	if !s.publish(req.AssetID, seq, result, report) {
		metrics.ObserveEvaluation(duration, metrics.OutcomeStale)
		s.logger.Warn("discarding stale evaluation",
			slog.String("asset_id", req.AssetID),
			slog.String("trace_id", result.TraceID))
		return models.AnalysisResult{}, ErrStaleEvaluation
	}

	s.latencies.Observe(duration)
	metrics.ObserveEvaluation(duration, metrics.OutcomeSuccess)
	if count := s.latencies.Count(); count >= 20 && count%20 == 0 {
		p95 := s.latencies.Percentile(95)
		s.logger.Info("evaluation latency", slog.Duration("p95", p95), slog.Int("samples", count))
	}

	if s.history != nil {
		if err := s.history.StoreEvaluation(ctx, summarize(result)); err != nil {
			s.logger.Warn("evaluation history write failed", slog.Any("error", err))
		}
	}

	return result, nil
}

// LatestResult returns the most recent published result for the asset.
func (s *ReportService) LatestResult(assetID string) (models.AnalysisResult, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	state, ok := s.assets[assetID]
	if !ok || state.publishedSeq == 0 {
		return models.AnalysisResult{}, false
	}
	return state.result, true
}

// Report returns the asset's narrative report shaped for the given role. The
// action list is truncated to the role's limit; everything else is shared.
func (s *ReportService) Report(assetID string, cfg policy.RoleConfig) (models.NarrativeReport, bool) {
	s.mu.Lock()
	state, ok := s.assets[assetID]
	if !ok || state.publishedSeq == 0 {
		s.mu.Unlock()
		return models.NarrativeReport{}, false
	}
	report := state.report
	s.mu.Unlock()

	if cfg.MaxActionItems != nil && len(report.Actions) > *cfg.MaxActionItems {
		report.Actions = append([]models.PlanItem(nil), report.Actions[:*cfg.MaxActionItems]...)
	}
	return report, true
}

// Patterns mines recurring fault patterns from the asset's stored history.
func (s *ReportService) Patterns(ctx context.Context, assetID string, limit int) ([]models.FaultPattern, error) {
	if s.history == nil || s.miner == nil {
		return nil, utils.NewAppError("patterns", "history mining not configured", nil)
	}
	records, err := s.history.ListEvaluations(ctx, assetID, limit)
	if err != nil {
		return nil, utils.NewAppError("patterns", "history lookup failed", err)
	}
	return s.miner.Mine(ctx, assetID, records)
}

// Health reports whether the upstream engine is reachable.
func (s *ReportService) Health(ctx context.Context) error {
	if s.engine == nil {
		return utils.NewAppError("health", "engine client not configured", nil)
	}
	return s.engine.Health(ctx)
}

// LatencyP95 returns the current p95 evaluation latency.
func (s *ReportService) LatencyP95() time.Duration {
	return s.latencies.Percentile(95)
}

func (s *ReportService) issueSeq(assetID string) uint64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	state, ok := s.assets[assetID]
	if !ok {
		state = &assetState{}
		s.assets[assetID] = state
	}
	state.issuedSeq++
	return state.issuedSeq
}

// publish installs the result unless a later submission already published.
func (s *ReportService) publish(assetID string, seq uint64, result models.AnalysisResult, report models.NarrativeReport) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	state, ok := s.assets[assetID]
	if !ok {
		return false
	}
	if seq <= state.publishedSeq {
		return false
	}
	state.publishedSeq = seq
	state.result = result
	state.report = report
	state.updatedAt = time.Now()
	return true
}

// summarize reduces a full result to the persisted history row.
func summarize(result models.AnalysisResult) models.EvaluationRecord {
	rec := models.EvaluationRecord{
		TraceID:       result.TraceID,
		AssetID:       result.AssetID,
		SeverityLevel: result.FinalSeverityLevel,
		SeverityScore: result.FinalSeverityScore,
		HealthStage:   result.HealthStage,
		RiskIndex:     result.RiskIndex,
		CreatedAt:     time.Now().UTC(),
	}
	if initiators := result.ModuleTrace.Initiators; initiators != nil {
		rec.Component = initiators.Component
		best := -1.0
		for _, rule := range initiators.MatchedRules {
			if rule.Score > best {
				best = rule.Score
				rec.Diagnosis = rule.Diagnosis
			}
		}
	}
	return rec
}
