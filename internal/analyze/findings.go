// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package analyze

import (
	"regexp"
	"strings"
)

// findingPatterns match sentences that report results, over lowercased
// text. Order matters: the patterns are scanned in sequence and earlier
// patterns fill the quota before later ones run. Matches are not
// deduplicated, so a sentence hit by two patterns may appear twice.
var findingPatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?s)we found .*?\.`),
	regexp.MustCompile(`(?s)results show .*?\.`),
	regexp.MustCompile(`(?s)our results .*?\.`),
	regexp.MustCompile(`(?s)significant .*?\.`),
}

// Findings scans text for sentences that state an experimental outcome and
// returns up to maxFindings of them (default 3). The text is lowercased
// before matching, so the returned sentences are lowercase.
func Findings(text string, maxFindings int) []string {
	if maxFindings <= 0 {
		maxFindings = defaultMaxFindings
	}
	text = strings.ToLower(text)
	var found []string
	for _, pat := range findingPatterns {
		for _, m := range pat.FindAllString(text, -1) {
			found = append(found, m)
			if len(found) >= maxFindings {
				return found
			}
		}
	}
	return found
}
