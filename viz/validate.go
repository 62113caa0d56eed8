package viz

import "fmt"

// ValidationReport is the non-fatal diagnostic result of validating one
// canonical step. Findings never block rendering; they only annotate it.
type ValidationReport struct {
	IsValid  bool     `json:"isValid"`
	Errors   []string `json:"errors"`
	Warnings []string `json:"warnings"`
}

// Validate checks a canonical step for structural well-formedness.
//
// Validate is pure and never panics, so it can be called speculatively on
// every render. A nil step yields a single descriptive error. Unknown
// entity types are warnings, not errors: they are preserved for
// pass-through rendering.
func Validate(step *UIRStep) ValidationReport {
	report := ValidationReport{
		Errors:   []string{},
		Warnings: []string{},
	}
	if step == nil {
		report.Errors = append(report.Errors, "step is missing")
		return report
	}

	if step.Index < 0 {
		report.Errors = append(report.Errors, fmt.Sprintf("step index %d must not be negative", step.Index))
	}
	if len(step.Entities) == 0 {
		report.Warnings = append(report.Warnings, "step has no entities (informational step)")
	}

	seen := make(map[string]bool, len(step.Entities))
	for i, e := range step.Entities {
		switch {
		case e.ID == "":
			report.Errors = append(report.Errors, fmt.Sprintf("entity %d has no id", i))
		case seen[e.ID]:
			report.Errors = append(report.Errors, fmt.Sprintf("duplicate entity id %q", e.ID))
		default:
			seen[e.ID] = true
		}

		if e.Type == "" {
			report.Errors = append(report.Errors, fmt.Sprintf("entity %d has no type", i))
		} else if !KnownEntityType(e.Type) {
			report.Warnings = append(report.Warnings, fmt.Sprintf("entity %d has unknown type %q (pass-through)", i, e.Type))
		}

		if e.State == nil {
			report.Warnings = append(report.Warnings, fmt.Sprintf("entity %d has no state", i))
		}
	}

	report.IsValid = len(report.Errors) == 0
	return report
}
