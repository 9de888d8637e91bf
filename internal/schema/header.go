package schema

import (
	"fmt"

	"github.com/agnivade/levenshtein"

	"github.com/reedan88/ooicgsn-data-tools/domain/qc"
)

// suggestionDistance caps how far an unexpected header may be from a
// canonical name before the "closest accepted header" hint is dropped.
const suggestionDistance = 5

// AlignHeader compares the sheet's actual column-name order against the
// canonical expected order and classifies every positional discrepancy.
// The scan is a single left-to-right pass: a swapped pair of adjacent
// columns is reported as two independent misplacements, not one swap.
func AlignHeader(actual, expected []string) []qc.Error {
	expectedAt := make(map[string]int, len(expected))
	for i, name := range expected {
		expectedAt[name] = i
	}
	actualSet := make(map[string]struct{}, len(actual))
	for _, name := range actual {
		actualSet[name] = struct{}{}
	}

	var out []qc.Error

	n := len(actual)
	if len(expected) < n {
		n = len(expected)
	}
	for k := 0; k < n; k++ {
		if actual[k] == expected[k] {
			continue
		}
		if want, known := expectedAt[actual[k]]; known {
			out = append(out, qc.NewStructuralError(qc.KindHeaderMisplaced, actual[k],
				fmt.Sprintf("should move from position %d to position %d", k, want)))
			continue
		}
		msg := fmt.Sprintf("not an accepted header; expected %q at this position", expected[k])
		if hint, ok := closestHeader(actual[k], expected); ok {
			msg += fmt.Sprintf(" (closest accepted header: %q)", hint)
		}
		out = append(out, qc.NewStructuralError(qc.KindHeaderUnexpected, actual[k], msg))
	}

	// Trailing actual columns past the canonical length are out of
	// schema entirely.
	for k := len(expected); k < len(actual); k++ {
		out = append(out, qc.NewStructuralError(qc.KindHeaderExtra, actual[k],
			fmt.Sprintf("out-of-schema column at position %d; should be deleted", k)))
	}

	// Canonical headers that appear nowhere in the sheet. Names merely
	// out of place were already reported as misplaced above.
	for k := len(actual); k < len(expected); k++ {
		if _, present := actualSet[expected[k]]; !present {
			out = append(out, qc.NewStructuralError(qc.KindHeaderMissing, expected[k],
				fmt.Sprintf("missing from sheet; expected at position %d", k)))
		}
	}

	return out
}

// closestHeader finds the canonical name nearest the unexpected one by
// edit distance, for the correction hint.
func closestHeader(name string, expected []string) (string, bool) {
	best, bestDist := "", suggestionDistance+1
	for _, candidate := range expected {
		if d := levenshtein.ComputeDistance(name, candidate); d < bestDist {
			best, bestDist = candidate, d
		}
	}
	return best, bestDist <= suggestionDistance
}
