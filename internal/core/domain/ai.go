package domain

// AnalysisOutcome is the opaque result of an external AI analysis call. The
// core persists Text verbatim and never interprets it.
type AnalysisOutcome struct {
	Success bool   `json:"success"`
	Text    string `json:"text"`
}
