package main

import (
	"strings"

	"go.flow.arcalot.io/subfactory/depgraph"
)

// seedSetsFlag collects one seed set per -seed flag.
type seedSetsFlag [][]depgraph.Item

func (s *seedSetsFlag) String() string {
	sets := make([]string, len(*s))
	for i, set := range *s {
		items := make([]string, len(set))
		for j, item := range set {
			items[j] = string(item)
		}
		sets[i] = strings.Join(items, ",")
	}
	return strings.Join(sets, " ")
}

func (s *seedSetsFlag) Set(value string) error {
	*s = append(*s, parseSeedSet(value))
	return nil
}

// sets drops seed sets that ended up empty, such as -seed ",".
func (s *seedSetsFlag) sets() [][]depgraph.Item {
	var result [][]depgraph.Item
	for _, set := range *s {
		if len(set) > 0 {
			result = append(result, set)
		}
	}
	return result
}

// parseSeedSet splits a comma-separated list of item names, ignoring surrounding whitespace and empty entries.
func parseSeedSet(value string) []depgraph.Item {
	var result []depgraph.Item
	for _, part := range strings.Split(value, ",") {
		if name := strings.TrimSpace(part); name != "" {
			result = append(result, depgraph.Item(name))
		}
	}
	return result
}
