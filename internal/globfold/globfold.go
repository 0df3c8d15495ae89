// Package globfold implements the pattern fold rule shared by the ignore
// filter (C4) and the stage's glob partitioning (C7): starting from
// keep=true, each pattern in order that matches flips keep to false, unless
// the pattern is "^"-prefixed (a re-include override), which flips it back
// to true (§4.4, normative per S6).
package globfold

import "strings"

// Keep runs the fold over patterns against s, using match to test a single
// (possibly "^"-stripped) pattern.
func Keep(s string, patterns []string, match func(s, pattern string) bool) bool {
	keep := true
	for _, pattern := range patterns {
		negate := strings.HasPrefix(pattern, "^")
		glob := pattern
		if negate {
			glob = pattern[1:]
		}
		if match(s, glob) {
			keep = negate
		}
	}
	return keep
}
