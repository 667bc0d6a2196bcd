// internal/scoring/filter.go
package scoring

import (
	"strings"

	"compliance-workers/internal/models"
)

// FilterQuestions narrows the catalog to the questions applicable under the
// given scope. A nil scope means no intake was resolved and the entire
// catalog applies. With a scope, a question is kept when ANY of these hold:
// it is marked required, its appendix is in scope, or its category-code
// prefix matches the prefix of an in-scope requirement code. Required
// questions are therefore never excluded by scoping.
func FilterQuestions(catalog []models.Question, scope *models.ScopeDescriptor) []models.Question {
	if scope == nil {
		return catalog
	}

	appendices := make(map[string]bool, len(scope.Appendices))
	for _, a := range scope.Appendices {
		appendices[a] = true
	}
	prefixes := make(map[string]bool, len(scope.RequirementCodes))
	for _, code := range scope.RequirementCodes {
		prefixes[codePrefix(code)] = true
	}

	filtered := make([]models.Question, 0, len(catalog))
	for _, q := range catalog {
		switch {
		case q.Required:
			filtered = append(filtered, q)
		case q.AppendixCode != "" && appendices[q.AppendixCode]:
			filtered = append(filtered, q)
		case q.CategoryCode != "" && prefixes[codePrefix(q.CategoryCode)]:
			filtered = append(filtered, q)
		}
	}
	return filtered
}

// codePrefix returns the part of a PREFIX-NN requirement code before the
// last hyphen-delimited numeric segment. "CR-DATA-03" and "CR-DATA" share
// the prefix "CR-DATA"; a bare code is its own prefix.
func codePrefix(code string) string {
	idx := strings.LastIndex(code, "-")
	if idx <= 0 {
		return code
	}
	tail := code[idx+1:]
	for _, r := range tail {
		if r < '0' || r > '9' {
			return code
		}
	}
	return code[:idx]
}
