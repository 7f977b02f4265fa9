package domain

// Insight is one advisory observation over an owner's ledger. Insights are
// best-effort output of an external model and carry no correctness weight.
type Insight struct {
	Type       string  `json:"type"` // warning | info | success | tip
	Title      string  `json:"title"`
	Message    string  `json:"message"`
	Action     string  `json:"action,omitempty"`
	Confidence float64 `json:"confidence"`
}

// FallbackInsight is served when no insight generator is configured or the
// model is unavailable
var FallbackInsight = Insight{
	Type:       "info",
	Title:      "Analysis Unavailable",
	Message:    "Unable to generate personalized insights at this time. Please try again later.",
	Action:     "Refresh insights",
	Confidence: 0.5,
}
