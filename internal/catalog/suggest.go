package catalog

import (
	"strings"

	"github.com/agnivade/levenshtein"
)

// Closest returns the candidate nearest to name by edit distance when the
// distance is small relative to the name's length. Used for "did you mean"
// hints on rejected input; it is not a search path.
func Closest(candidates []string, name string) (string, bool) {
	name = strings.TrimSpace(name)
	if name == "" || len(candidates) == 0 {
		return "", false
	}
	target := strings.ToLower(name)
	best := ""
	bestDist := -1
	for _, cand := range candidates {
		dist := levenshtein.ComputeDistance(target, strings.ToLower(cand))
		if bestDist < 0 || dist < bestDist {
			best, bestDist = cand, dist
		}
	}
	limit := max(len(target)/3, 1)
	if bestDist > limit {
		return "", false
	}
	return best, true
}
