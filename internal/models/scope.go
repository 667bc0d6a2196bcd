// internal/models/scope.go
package models

// ScopeDescriptor captures which parts of the standard apply to a client,
// derived deterministically from their intake-form answers. It is cached on
// the assessment and re-derived lazily, so identical intake answers must
// always produce an identical descriptor.
type ScopeDescriptor struct {
	RequirementCodes     []string `json:"requirementCodes"`
	Appendices           []string `json:"appendices"`
	CriticalRequirements []string `json:"criticalRequirements,omitempty"`
	ComplexityFactor     float64  `json:"complexityFactor"`
	EstimatedEffortDays  int      `json:"estimatedEffortDays"`
	ScopeStatement       string   `json:"scopeStatement"`
}

// HasAppendix reports whether the given appendix code is in scope.
func (s *ScopeDescriptor) HasAppendix(code string) bool {
	for _, a := range s.Appendices {
		if a == code {
			return true
		}
	}
	return false
}
