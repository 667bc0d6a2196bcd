// internal/scoring/weights.go
package scoring

import "compliance-workers/internal/models"

// CategoryWeight describes how one category contributes to the overall
// score. Weights are relative, not normalized.
type CategoryWeight struct {
	Weight   int
	Required bool
	Name     string
}

// WeightTable maps a category key to its weight entry. The table is passed
// into the aggregator rather than read from package state so tests can run
// against alternate tables.
type WeightTable map[string]CategoryWeight

// defaultWeight applies to category keys missing from the table.
var defaultWeight = CategoryWeight{Weight: 5, Required: false}

// DefaultWeightTable returns the production weight configuration for the
// recycling-certification standard: core requirement groups plus the
// specialty process appendices.
func DefaultWeightTable() WeightTable {
	return WeightTable{
		"CR-LEGAL":   {Weight: 15, Required: true, Name: "Legal & Regulatory Compliance"},
		"CR-EHS":     {Weight: 12, Required: true, Name: "Environmental Health & Safety"},
		"CR-DATA":    {Weight: 15, Required: true, Name: "Data Security Management"},
		"CR-TRACK":   {Weight: 10, Required: false, Name: "Material Tracking & Throughput"},
		"CR-FOCUS":   {Weight: 10, Required: true, Name: "Focus Materials Management"},
		"CR-CLOSURE": {Weight: 5, Required: false, Name: "Facility Closure Planning"},
		"A":          {Weight: 12, Required: true, Name: "Downstream Recycling Chain"},
		"B":          {Weight: 15, Required: true, Name: "Data Sanitization"},
		"C":          {Weight: 8, Required: false, Name: "Test & Repair"},
		"D":          {Weight: 6, Required: false, Name: "Specialty Electronics Reuse"},
		"E":          {Weight: 8, Required: false, Name: "Materials Recovery"},
		"F":          {Weight: 6, Required: false, Name: "Brokering"},
		"G":          {Weight: 5, Required: false, Name: "Photovoltaic Modules"},
	}
}

// Lookup resolves a category key against the table. Unknown keys fall back
// to a low-weight optional entry named after the key itself, so a catalog
// with unexpected categories still scores instead of failing.
func (t WeightTable) Lookup(key string) CategoryWeight {
	if cw, ok := t[key]; ok {
		if cw.Name == "" {
			cw.Name = key
		}
		return cw
	}
	cw := defaultWeight
	cw.Name = key
	return cw
}

// CategoryKeyFor picks the grouping key for a question: appendix code wins,
// then category code, then the free-text category, then MISC.
func CategoryKeyFor(q models.Question) string {
	switch {
	case q.AppendixCode != "":
		return q.AppendixCode
	case q.CategoryCode != "":
		return q.CategoryCode
	case q.Category != "":
		return q.Category
	default:
		return "MISC"
	}
}
