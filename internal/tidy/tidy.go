// Package tidy reshapes grouped data into rows for table output.
package tidy

import (
	"slices"

	"golang.org/x/exp/maps"
)

// Group collects the members of each named set into a sorted list.
func Group[S ~map[K]V, K ~string, V any](sets map[string]S) map[string][]string {
	groups := make(map[string][]string, len(sets))
	for name, set := range sets {
		members := make([]string, 0, len(set))
		for member := range set {
			members = append(members, string(member))
		}
		slices.Sort(members)
		groups[name] = members
	}
	return groups
}

// Unnest expands every group into one row per value, with the group name in
// the first column. Rows are ordered by group name, then by value.
func Unnest(groups map[string][]string) [][]string {
	names := maps.Keys(groups)
	slices.Sort(names)
	var rows [][]string
	for _, name := range names {
		values := slices.Clone(groups[name])
		slices.Sort(values)
		for _, value := range values {
			rows = append(rows, []string{name, value})
		}
	}
	return rows
}

// SwapColumns swaps the two columns of every two-column row in place.
func SwapColumns(rows [][]string) [][]string {
	for _, row := range rows {
		if len(row) == 2 {
			row[0], row[1] = row[1], row[0]
		}
	}
	return rows
}
