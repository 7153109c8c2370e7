package models

import "time"

const (
	UnknownStatus   = "Unknown"
	NoActionDefined = "No action defined"
)

// DiagnosisResult is the (status, action) pair produced for a reading.
type DiagnosisResult struct {
	Status string `json:"status"`
	Action string `json:"action"`
}

// DefaultDiagnosis is returned when no rule matches.
func DefaultDiagnosis() DiagnosisResult {
	return DiagnosisResult{Status: UnknownStatus, Action: NoActionDefined}
}

// IsDefault reports whether r is the no-match fallback.
func (r DiagnosisResult) IsDefault() bool {
	return r == DefaultDiagnosis()
}

// HistoryRecord is a persisted reading together with its diagnosis.
type HistoryRecord struct {
	ID        int64           `json:"id"`
	Reading   SensorReading   `json:"reading"`
	Result    DiagnosisResult `json:"result"`
	CreatedAt time.Time       `json:"created_at"`
}
