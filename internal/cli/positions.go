package cli

import (
	"regexp"
	"sort"
	"strconv"
)

var digitsRE = regexp.MustCompile(`\d+`)

// ParsePositions extracts line positions from the free-form tail of a
// change command. Separators do not matter: "1,3,5" and "2 4 6" both work.
// Duplicates are dropped; the result is sorted. Range validation is left to
// the caller so it can report a friendly message.
func ParsePositions(input string) []int {
	matches := digitsRE.FindAllString(input, -1)
	if len(matches) == 0 {
		return nil
	}

	seen := make(map[int]bool, len(matches))
	var positions []int
	for _, match := range matches {
		n, err := strconv.Atoi(match)
		if err != nil {
			// Unreachable: the regexp only yields digit runs. Huge runs
			// overflow, which Atoi reports; skip them like any non-number.
			continue
		}
		if !seen[n] {
			seen[n] = true
			positions = append(positions, n)
		}
	}

	sort.Ints(positions)
	return positions
}
