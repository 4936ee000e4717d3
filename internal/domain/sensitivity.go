package domain

// SensitivityLevel grades how confidential matched clipboard content is.
type SensitivityLevel string

const (
	SensitivityNone   SensitivityLevel = "none"
	SensitivityLow    SensitivityLevel = "low"
	SensitivityMedium SensitivityLevel = "medium"
	SensitivityHigh   SensitivityLevel = "high"
)

// ContentMatch is the outcome of evaluating clipboard content against the
// sensitive-content rules. A matched value is never written to history.
type ContentMatch struct {
	Matched      bool
	Level        SensitivityLevel
	Reasons      []string
	MatchedRules []string
}
