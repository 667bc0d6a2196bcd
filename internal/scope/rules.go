// internal/scope/rules.go
package scope

import (
	"strconv"
	"strings"
)

// IntakeAnswers is the free-form key/value response set from a client's
// intake form.
type IntakeAnswers map[string]string

func (a IntakeAnswers) isYes(key string) bool {
	v := strings.ToLower(strings.TrimSpace(a[key]))
	return v == "yes" || v == "true" || v == "y" || v == "1"
}

func (a IntakeAnswers) intValue(key string) int {
	v, err := strconv.Atoi(strings.TrimSpace(a[key]))
	if err != nil {
		return 0
	}
	return v
}

// Rule is one declarative scoping decision: a predicate over the intake
// answers plus its effects on the descriptor. Rules are evaluated in order
// and each one is independently testable.
type Rule struct {
	Name             string
	Description      string
	Matches          func(IntakeAnswers) bool
	RequirementCodes []string
	Appendices       []string
	Critical         []string
	ComplexityWeight float64
	EffortDays       int
}

// DefaultRules is the production rule set for the recycling-certification
// standard. Order matters only for the scope statement; the derived code
// and appendix sets are order-independent.
func DefaultRules() []Rule {
	return []Rule{
		{
			Name:        "baseline-operations",
			Description: "Core legal, EHS and tracking requirements apply to all certified facilities",
			Matches:     func(IntakeAnswers) bool { return true },
			RequirementCodes: []string{
				"CR-LEGAL-01", "CR-LEGAL-02", "CR-EHS-01", "CR-TRACK-01",
			},
			EffortDays: 2,
		},
		{
			Name:        "data-bearing-devices",
			Description: "Facility handles data-bearing equipment; data security and sanitization requirements apply",
			Matches:     func(a IntakeAnswers) bool { return a.isYes("handles_data_bearing_devices") },
			RequirementCodes: []string{
				"CR-DATA-01", "CR-DATA-02", "CR-DATA-03",
			},
			Appendices:       []string{"B"},
			Critical:         []string{"Data sanitization verification"},
			ComplexityWeight: 0.4,
			EffortDays:       3,
		},
		{
			Name:        "focus-materials",
			Description: "Facility processes focus materials; downstream chain controls apply",
			Matches:     func(a IntakeAnswers) bool { return a.isYes("processes_focus_materials") },
			RequirementCodes: []string{
				"CR-FOCUS-01", "CR-FOCUS-02",
			},
			Appendices:       []string{"A"},
			Critical:         []string{"Focus materials downstream due diligence"},
			ComplexityWeight: 0.3,
			EffortDays:       2,
		},
		{
			Name:        "test-and-repair",
			Description: "Facility tests or repairs equipment for reuse",
			Matches:     func(a IntakeAnswers) bool { return a.isYes("performs_test_repair") },
			Appendices:  []string{"C"},
			EffortDays:  1,
		},
		{
			Name:        "specialty-reuse",
			Description: "Facility handles specialty electronics for direct reuse",
			Matches:     func(a IntakeAnswers) bool { return a.isYes("specialty_reuse") },
			Appendices:  []string{"D"},
			EffortDays:  1,
		},
		{
			Name:             "materials-recovery",
			Description:      "Facility performs mechanical materials recovery",
			Matches:          func(a IntakeAnswers) bool { return a.isYes("performs_materials_recovery") },
			Appendices:       []string{"E"},
			ComplexityWeight: 0.2,
			EffortDays:       2,
		},
		{
			Name:        "export-activity",
			Description: "Facility exports equipment or materials; cross-border movement controls apply",
			Matches:     func(a IntakeAnswers) bool { return a.isYes("exports_equipment") },
			RequirementCodes: []string{
				"CR-LEGAL-03",
			},
			Appendices:       []string{"E"},
			Critical:         []string{"Export documentation and legality checks"},
			ComplexityWeight: 0.3,
			EffortDays:       2,
		},
		{
			Name:        "brokering",
			Description: "Facility brokers equipment it does not physically handle",
			Matches:     func(a IntakeAnswers) bool { return a.isYes("brokers_equipment") },
			Appendices:  []string{"F"},
			EffortDays:  1,
		},
		{
			Name:             "pv-modules",
			Description:      "Facility processes photovoltaic modules",
			Matches:          func(a IntakeAnswers) bool { return a.isYes("processes_pv_modules") },
			Appendices:       []string{"G"},
			ComplexityWeight: 0.2,
			EffortDays:       1,
		},
		{
			Name:             "multi-facility",
			Description:      "Certification covers multiple facilities",
			Matches:          func(a IntakeAnswers) bool { return a.intValue("facility_count") > 1 },
			ComplexityWeight: 0.3,
			EffortDays:       2,
		},
	}
}
