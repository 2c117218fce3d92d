package profile

import "strings"

// DecomposeName splits a "Last, First M" display name into its parts:
// split on the first comma, then the remainder on whitespace. Names
// without a comma yield only a last name.
func DecomposeName(full string) (last, first, middle string) {
	before, after, found := strings.Cut(full, ",")
	last = strings.TrimSpace(before)
	if !found {
		return last, "", ""
	}

	parts := strings.Fields(after)
	if len(parts) > 0 {
		first = parts[0]
	}
	if len(parts) > 1 {
		middle = parts[1]
	}
	return last, first, middle
}

// JoinName reassembles a display name from its decomposed parts.
func JoinName(last, first, middle string) string {
	name := last
	if first != "" {
		name += ", " + first
	}
	if middle != "" {
		name += " " + middle
	}
	return name
}
