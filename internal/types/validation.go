package types

// ValidationResult is the structured verdict produced for a citation,
// either by the remote model or by the local heuristic. Remote failures
// are expressed as a verdict with Status "error" rather than as an
// error return, so every caller persists through one path.
type ValidationResult struct {
	Status      string   `json:"status"`
	Confidence  float64  `json:"confidence"`
	Analysis    string   `json:"analysis"`
	Suggestions []string `json:"suggestions"`
	Mock        bool     `json:"mock,omitempty"`
}
