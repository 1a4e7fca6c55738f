// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package analyze

import (
	"reflect"
	"testing"

	"github.com/meshintel/paperlens/pkg/types"
)

func fullSections() types.SectionMap {
	var m types.SectionMap
	m.Set(types.SectionAbstract, "We study things.")
	m.Set(types.SectionMethods, "We measured things.")
	m.Set(types.SectionResults, "Things were found.")
	return m
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name       string
		mutate     func(*types.SectionMap)
		totalChars int
		wantPassed bool
		wantFailed []string
	}{
		{
			name:       "all checks pass",
			mutate:     func(*types.SectionMap) {},
			totalChars: 5000,
			wantPassed: true,
		},
		{
			name:       "boundary length passes",
			mutate:     func(*types.SectionMap) {},
			totalChars: 3000,
			wantPassed: true,
		},
		{
			name:       "one under boundary fails",
			mutate:     func(*types.SectionMap) {},
			totalChars: 2999,
			wantPassed: false,
			wantFailed: []string{"sufficient_length"},
		},
		{
			name:       "missing abstract",
			mutate:     func(m *types.SectionMap) { m.Abstract = "" },
			totalChars: 5000,
			wantPassed: false,
			wantFailed: []string{"has_abstract"},
		},
		{
			name: "multiple failures reported together",
			mutate: func(m *types.SectionMap) {
				m.Methods = ""
				m.Results = ""
			},
			totalChars: 100,
			wantPassed: false,
			wantFailed: []string{"has_methods", "has_results", "sufficient_length"},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sections := fullSections()
			tt.mutate(&sections)

			result := Validate(sections, tt.totalChars, 3000)
			if result.Passed != tt.wantPassed {
				t.Errorf("Passed = %v, want %v (checks: %v)", result.Passed, tt.wantPassed, result.Checks)
			}
			if got := result.FailedChecks(); !reflect.DeepEqual(got, tt.wantFailed) {
				t.Errorf("FailedChecks() = %v, want %v", got, tt.wantFailed)
			}
		})
	}
}

func TestValidateReportsAllChecks(t *testing.T) {
	result := Validate(fullSections(), 5000, 0)
	for _, name := range CheckNames {
		if _, ok := result.Checks[name]; !ok {
			t.Errorf("check %q missing from result", name)
		}
	}
	if len(result.Checks) != len(CheckNames) {
		t.Errorf("got %d checks, want %d", len(result.Checks), len(CheckNames))
	}
}
