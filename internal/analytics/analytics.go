// Package analytics deduplicates collected prefixes and summarizes the ASN
// records of a run.
package analytics

import (
	"sort"
	"strings"

	"asn2ip/internal/models"
)

// Result is the output of Aggregate.
type Result struct {
	Summary  models.AnalyticsSummary
	Prefixes []string // unique, sorted by byte order
	Table    []models.TableRow
}

// Aggregate deduplicates prefixes, builds the ASN table and counts distinct
// values per column.
func Aggregate(prefixes []string, records []models.ASNRecord) *Result {
	unique := UniquePrefixes(prefixes)
	table := BuildTable(records)
	return &Result{
		Summary:  Summarize(table, len(unique)),
		Prefixes: unique,
		Table:    table,
	}
}

// UniquePrefixes returns the distinct prefixes sorted lexicographically.
// Prefixes are compared as strings, so "10.0.0.0/8" sorts before "9.0.0.0/8".
func UniquePrefixes(prefixes []string) []string {
	seen := make(map[string]struct{}, len(prefixes))
	unique := make([]string, 0, len(prefixes))
	for _, p := range prefixes {
		if _, ok := seen[p]; ok {
			continue
		}
		seen[p] = struct{}{}
		unique = append(unique, p)
	}
	sort.Strings(unique)
	return unique
}

// BuildTable produces one row per record, in input order. Commas are removed
// from Description and Name.
func BuildTable(records []models.ASNRecord) []models.TableRow {
	rows := make([]models.TableRow, 0, len(records))
	for _, r := range records {
		rows = append(rows, models.TableRow{
			ASN:         r.ASN,
			CountryCode: r.CountryCode,
			Description: StripCommas(r.Description),
			Name:        StripCommas(r.Name),
		})
	}
	return rows
}

// StripCommas deletes every literal comma from s.
func StripCommas(s string) string {
	return strings.ReplaceAll(s, ",", "")
}

// Summarize counts distinct values in each table column. uniquePrefixes is
// carried through as-is.
func Summarize(table []models.TableRow, uniquePrefixes int) models.AnalyticsSummary {
	countries := make(map[string]struct{})
	asns := make(map[int64]struct{})
	names := make(map[string]struct{})
	descriptions := make(map[string]struct{})

	for _, row := range table {
		countries[row.CountryCode] = struct{}{}
		asns[row.ASN] = struct{}{}
		names[row.Name] = struct{}{}
		descriptions[row.Description] = struct{}{}
	}

	return models.AnalyticsSummary{
		UniqueCountryCodes: len(countries),
		UniqueASNs:         len(asns),
		UniqueNames:        len(names),
		UniqueDescriptions: len(descriptions),
		UniquePrefixes:     uniquePrefixes,
	}
}
