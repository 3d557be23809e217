package analytics

import (
	"fmt"
	"slices"
	"strconv"
	"strings"
)

// PrefixText joins prefixes with newlines. The artifact file is built from it.
func PrefixText(prefixes []string) string {
	return strings.Join(prefixes, "\n")
}

// ASNList renders the ASNs sorted ascending and comma-joined. Duplicates are
// kept.
func ASNList(asns []int64) string {
	sorted := slices.Clone(asns)
	slices.Sort(sorted)

	parts := make([]string, len(sorted))
	for i, asn := range sorted {
		parts[i] = strconv.FormatInt(asn, 10)
	}
	return strings.Join(parts, ",")
}

// ParseASNList parses a string produced by ASNList. Whitespace around each
// number is ignored.
func ParseASNList(s string) ([]int64, error) {
	if strings.TrimSpace(s) == "" {
		return nil, nil
	}

	fields := strings.Split(s, ",")
	asns := make([]int64, 0, len(fields))
	for _, f := range fields {
		n, err := strconv.ParseInt(strings.TrimSpace(f), 10, 64)
		if err != nil {
			return nil, fmt.Errorf("invalid ASN %q: %w", f, err)
		}
		asns = append(asns, n)
	}
	return asns, nil
}
