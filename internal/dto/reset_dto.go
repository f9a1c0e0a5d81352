package dto

// ResetResult reports the outcome of a RAZ. Details is a human-readable step
// log so the operator can audit exactly which steps ran before any failure;
// Errors collects the soft failures of tolerated steps.
type ResetResult struct {
	Success bool     `json:"success"`
	Message string   `json:"message"`
	Details []string `json:"details"`
	Errors  []string `json:"errors,omitempty"`
}

// ResetPreview counts what a RAZ would delete and keep, for operator
// confirmation before the destructive call.
type ResetPreview struct {
	ToDelete map[string]int64 `json:"toDelete"`
	ToKeep   map[string]int64 `json:"toKeep"`
}
