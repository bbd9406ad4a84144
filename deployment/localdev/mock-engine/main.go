package main

import (
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"time"
)

// Canned RAPID engine responses for local development of the reporting
// service. The result models a degrading pump bearing far enough along the
// P-F curve to light up every report chapter.

func floatPtr(v float64) *float64 { return &v }

func cannedResult(assetID, traceID string) map[string]any {
	reliability := map[string]any{
		"beta_base":                2.0,
		"beta_adj":                 2.6,
		"eta_base_hours":           40000.0,
		"eta_adj_hours":            31000.0,
		"hazard_rate":              0.00012,
		"bathtub_phase":            "wear_out",
		"pf_interval_position":     0.62,
		"weibull_failure_prob_30d": 0.18,
		"weibull_rul_days":         floatPtr(41),
		"nowlan_heap_pattern":      "B",
	}
	return map[string]any{
		"schema_version":       "1.0",
		"trace_id":             traceID,
		"asset_id":             assetID,
		"final_severity_level": "warning",
		"final_severity_score": 0.61,
		"confidence":           0.78,
		"health_stage":         "Degrading",
		"rul_days":             floatPtr(41),
		"risk_index":           47.0,
		"recommended_action":   "Schedule bearing replacement within the next maintenance window",
		"recommended_window":   "30d",
		"reliability_metrics":  reliability,
		"module_trace": map[string]any{
			"module0": map[string]any{
				"module":        "data_guard",
				"status":        "pass",
				"block":         false,
				"quality_score": 0.93,
				"flags":         map[string]any{},
				"reasons":       []string{},
				"metrics": map[string]any{
					"sample_count": 4096, "nan_fraction": 0.0, "std_dev": 1.4,
					"rms": 4.1, "peak": 11.9, "crest_factor": 2.9, "kurtosis": 4.6, "clip_fraction": 0.0,
				},
				"confidence_modifier": 1.0,
			},
			"moduleA": map[string]any{
				"module": "trend_engine", "overall_rms": 4.1, "peak": 11.9, "kurtosis": 4.6,
				"crest_factor": 2.9, "baseline": floatPtr(2.2), "ratio_to_baseline": floatPtr(1.86),
				"degradation": 0.46, "severity_score": 0.58, "severity_level": "warning",
				"trend_classification": "rising", "rule_ids_triggered": []string{"A-03"},
			},
			"moduleB": map[string]any{
				"module": "initiator_detection", "component": "afb", "num_matches": 1,
				"matched_rules": []map[string]any{
					{"rule_id": "B-07", "initiator": "BPFO", "diagnosis": "Outer race defect", "score": 0.82},
				},
				"confidence": 0.78,
			},
			"moduleBplus": map[string]any{
				"module": "slope_intelligence", "slope": 0.08, "slope_change": 0.02,
				"instability_index": 0.31, "trend_class": "Drift", "severity_score": 0.55,
			},
			"moduleBpp": map[string]any{
				"module": "entropy_stability", "SE": 1.9, "TE": 0.7, "DE": 1.1, "dSE_dt": 0.04,
				"SI": 0.42, "stability_state": "Drifting", "severity_level": "watch",
				"triggered_rules": []string{},
			},
			"moduleC": map[string]any{
				"module": "fusion", "system_type": "pump", "profile_id": "pump-default",
				"SSI": 0.58, "system_state": "degrading",
				"top_contributors":   []string{"trend_engine", "initiator_detection"},
				"recommended_action": "Increase monitoring frequency",
			},
			"moduleD": map[string]any{
				"module": "health_staging", "degradation_stage": "Degrading", "rul_band": "30-90d",
				"escalation_level": "Level_1", "recommended_action": "Plan corrective maintenance",
			},
			"moduleE": map[string]any{
				"module": "maintenance_planner",
				"plan_items": []map[string]any{
					{"rank": 1, "priority_score": 0.9, "window": "30d", "action_id": "ACT-12",
						"action_title": "Replace drive-end bearing", "justification": "BPFO signature with rising trend",
						"verification": "Post-repair spectrum survey"},
					{"rank": 2, "priority_score": 0.7, "window": "14d", "action_id": "ACT-04",
						"action_title": "Collect high-resolution spectrum", "justification": "Confirm defect frequency",
						"verification": "Analyst review"},
				},
				"total_actions": 2,
			},
			"moduleF": map[string]any{
				"module": "governance", "RUL_days": 41.0, "failure_probability_30d": 0.18,
				"confidence": 0.78, "risk_index": 47.0, "recommended_window": "30d",
				"reliability_metrics": reliability,
			},
		},
	}
}

func main() {
	mux := http.NewServeMux()
	mux.HandleFunc("/health", func(w http.ResponseWriter, _ *http.Request) {
		writeJSON(w, map[string]any{"status": "ok", "engine": "rapid-mock"})
	})

	mux.HandleFunc("/rapid-ai/evaluate", func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			w.WriteHeader(http.StatusMethodNotAllowed)
			return
		}
		var req struct {
			AssetID string `json:"asset_id"`
			TraceID string `json:"trace_id"`
		}
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			w.WriteHeader(http.StatusBadRequest)
			return
		}
		if req.AssetID == "" {
			req.AssetID = "ASSET-MOCK"
		}
		if req.TraceID == "" {
			req.TraceID = fmt.Sprintf("mock-%d", time.Now().UnixNano())
		}
		writeJSON(w, cannedResult(req.AssetID, req.TraceID))
	})

	logger := log.New(log.Writer(), "engine-mock ", log.LstdFlags|log.Lmicroseconds)
	srv := &http.Server{
		Addr:    ":9000",
		Handler: logRequests(logger, mux),
	}

	logger.Println("listening on :9000")
	if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		logger.Fatalf("server error: %v", err)
	}
}

func writeJSON(w http.ResponseWriter, payload any) {
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		log.Printf("encode error: %v", err)
	}
}

func logRequests(logger *log.Logger, next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		rw := &responseWriter{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(rw, r)
		logger.Printf("%s %s %d %s", r.Method, r.URL.Path, rw.status, time.Since(start))
	})
}

type responseWriter struct {
	http.ResponseWriter
	status int
}

func (rw *responseWriter) WriteHeader(code int) {
	rw.status = code
	rw.ResponseWriter.WriteHeader(code)
}
