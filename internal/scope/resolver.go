// internal/scope/resolver.go
package scope

import (
	"sort"
	"strings"

	"compliance-workers/internal/common/errors"
	"compliance-workers/internal/models"
)

const complexityFloor = 0.8

// Resolver derives a ScopeDescriptor from intake answers by evaluating an
// ordered rule list. Resolution is pure: the same answers always produce
// the same descriptor, which keeps lazy re-derivation consistent with any
// previously cached value.
type Resolver struct {
	rules []Rule
}

// NewResolver builds a resolver over the given rules; pass DefaultRules()
// for production behavior.
func NewResolver(rules []Rule) *Resolver {
	return &Resolver{rules: rules}
}

// Resolve evaluates the rules against the intake answers. Missing intake
// data fails explicitly; callers are expected to treat that as recoverable
// and score against the full catalog instead.
func (r *Resolver) Resolve(answers IntakeAnswers) (*models.ScopeDescriptor, error) {
	if len(answers) == 0 {
		return nil, errors.NewScopeResolutionFailedError("intake form has no recorded answers")
	}

	codes := map[string]bool{}
	appendices := map[string]bool{}
	critical := map[string]bool{}
	var statements []string
	complexity := complexityFloor
	effortDays := 0

	for _, rule := range r.rules {
		if !rule.Matches(answers) {
			continue
		}
		for _, c := range rule.RequirementCodes {
			codes[c] = true
		}
		for _, a := range rule.Appendices {
			appendices[a] = true
		}
		for _, c := range rule.Critical {
			critical[c] = true
		}
		complexity += rule.ComplexityWeight
		effortDays += rule.EffortDays
		statements = append(statements, rule.Description)
	}

	return &models.ScopeDescriptor{
		RequirementCodes:     sortedKeys(codes),
		Appendices:           sortedKeys(appendices),
		CriticalRequirements: sortedKeys(critical),
		ComplexityFactor:     complexity,
		EstimatedEffortDays:  effortDays,
		ScopeStatement:       strings.Join(statements, "; "),
	}, nil
}

func sortedKeys(set map[string]bool) []string {
	keys := make([]string, 0, len(set))
	for k := range set {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
