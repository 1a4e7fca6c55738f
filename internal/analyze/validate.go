// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package analyze

import (
	"github.com/meshintel/paperlens/pkg/types"
)

// Validation check names, in report order.
const (
	CheckHasAbstract      = "has_abstract"
	CheckHasMethods       = "has_methods"
	CheckHasResults       = "has_results"
	CheckSufficientLength = "sufficient_length"
)

// CheckNames lists validation checks in the order they are reported.
var CheckNames = []string{
	CheckHasAbstract,
	CheckHasMethods,
	CheckHasResults,
	CheckSufficientLength,
}

// Validate runs the document quality gate against segmented sections.
// A document passes when the abstract, methods and results sections are
// all non-empty and the normalized text is at least minChars characters
// (default 3000). Failure is advisory; it never aborts processing.
func Validate(sections types.SectionMap, totalChars, minChars int) types.ValidationResult {
	if minChars <= 0 {
		minChars = defaultMinValidChars
	}
	checks := map[string]bool{
		CheckHasAbstract:      sections.Get(types.SectionAbstract) != "",
		CheckHasMethods:       sections.Get(types.SectionMethods) != "",
		CheckHasResults:       sections.Get(types.SectionResults) != "",
		CheckSufficientLength: totalChars >= minChars,
	}
	passed := true
	for _, ok := range checks {
		if !ok {
			passed = false
			break
		}
	}
	return types.ValidationResult{Passed: passed, Checks: checks}
}
