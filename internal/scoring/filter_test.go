// internal/scoring/filter_test.go
package scoring

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"compliance-workers/internal/models"
)

func filterCatalog() []models.Question {
	return []models.Question{
		{ID: "q-legal", CategoryCode: "CR-LEGAL-01", Required: true},
		{ID: "q-data", CategoryCode: "CR-DATA-02"},
		{ID: "q-appendix-b", AppendixCode: "B"},
		{ID: "q-appendix-g", AppendixCode: "G"},
		{ID: "q-track", CategoryCode: "CR-TRACK-01"},
	}
}

func TestFilterQuestions_NilScopeReturnsFullCatalog(t *testing.T) {
	catalog := filterCatalog()
	assert.Equal(t, catalog, FilterQuestions(catalog, nil))
}

func TestFilterQuestions_UnionOfCriteria(t *testing.T) {
	scope := &models.ScopeDescriptor{
		RequirementCodes: []string{"CR-DATA-01"},
		Appendices:       []string{"B"},
	}

	filtered := FilterQuestions(filterCatalog(), scope)

	ids := make([]string, 0, len(filtered))
	for _, q := range filtered {
		ids = append(ids, q.ID)
	}
	// Required questions stay, appendix B is in scope, CR-DATA-02 shares the
	// CR-DATA prefix with the in-scope code. G and CR-TRACK fall out.
	assert.Equal(t, []string{"q-legal", "q-data", "q-appendix-b"}, ids)
}

func TestFilterQuestions_RequiredNeverExcluded(t *testing.T) {
	scope := &models.ScopeDescriptor{} // nothing in scope

	filtered := FilterQuestions(filterCatalog(), scope)

	assert.Len(t, filtered, 1)
	assert.Equal(t, "q-legal", filtered[0].ID)
}

func TestFilterQuestions_EmptyCatalog(t *testing.T) {
	scope := &models.ScopeDescriptor{Appendices: []string{"B"}}
	assert.Empty(t, FilterQuestions(nil, scope))
}

func TestCodePrefix(t *testing.T) {
	tests := []struct {
		code     string
		expected string
	}{
		{"CR-DATA-03", "CR-DATA"},
		{"CR-DATA", "CR-DATA"},
		{"CR-LEGAL-01", "CR-LEGAL"},
		{"B", "B"},
		{"CR-DATA-1A", "CR-DATA-1A"},
		{"-01", "-01"},
	}

	for _, tt := range tests {
		t.Run(tt.code, func(t *testing.T) {
			assert.Equal(t, tt.expected, codePrefix(tt.code))
		})
	}
}
