// Package id formats the generated settlement reference codes that tie a
// derived transaction back to its specification row.
package id

import (
	"fmt"
	"strconv"
	"strings"
)

// FormatReference returns a settlement reference like "WS-MM-2026000001":
// the prefix, the settlement year, and the row ordinal zero-padded to six
// digits.
func FormatReference(prefix string, year, ordinal int) string {
	return fmt.Sprintf("%s%04d%06d", prefix, year, ordinal)
}

// ParseReference splits a settlement reference back into year and ordinal.
func ParseReference(prefix, ref string) (year, ordinal int, err error) {
	rest, ok := strings.CutPrefix(ref, prefix)
	if !ok || len(rest) != 10 {
		return 0, 0, fmt.Errorf("invalid settlement reference: %q", ref)
	}

	year, err = strconv.Atoi(rest[:4])
	if err != nil {
		return 0, 0, fmt.Errorf("invalid year in reference %q: %w", ref, err)
	}

	ordinal, err = strconv.Atoi(rest[4:])
	if err != nil {
		return 0, 0, fmt.Errorf("invalid ordinal in reference %q: %w", ref, err)
	}

	return year, ordinal, nil
}
