package models

// SignalInput is one directional vibration signal.
type SignalInput struct {
	SignalType     string    `json:"signal_type"`
	Direction      string    `json:"direction"`
	Unit           string    `json:"unit"`
	SamplingRateHz int       `json:"sampling_rate_hz"`
	Values         []float64 `json:"values"`
}

// ContextInput carries optional operating context for an evaluation.
type ContextInput struct {
	RPM          *float64 `json:"rpm,omitempty"`
	TemperatureC *float64 `json:"temperature_c,omitempty"`
	SensorID     string   `json:"sensor_id,omitempty"`
	MountType    string   `json:"mount_type,omitempty"`
	Location     string   `json:"location,omitempty"`
}

// EvaluateRequest drives a full engine evaluation for one asset.
type EvaluateRequest struct {
	SchemaVersion        string        `json:"schema_version"`
	TraceID              string        `json:"trace_id,omitempty"`
	AssetID              string        `json:"asset_id"`
	TimestampUTC         string        `json:"timestamp_utc"`
	MachineType          string        `json:"machine_type,omitempty"`
	SystemType           string        `json:"system_type,omitempty"`
	Signal               SignalInput   `json:"signal"`
	ExtraSignals         []SignalInput `json:"extra_signals,omitempty"`
	Context              *ContextInput `json:"context,omitempty"`
	Component            string        `json:"component,omitempty"`
	HistoricalTimestamps []string      `json:"historical_timestamps,omitempty"`
	HistoricalValues     []float64     `json:"historical_values,omitempty"`
	Criticality          float64       `json:"criticality,omitempty"`
	FailureThreshold     float64       `json:"failure_threshold,omitempty"`
}
