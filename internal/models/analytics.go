package models

// TableRow is one row of the ASN analytics table.
type TableRow struct {
	ASN         int64  `json:"asn"`
	CountryCode string `json:"country_code"`
	Description string `json:"description"`
	Name        string `json:"name"`
}

// TableColumns are the analytics table headings, in display order.
var TableColumns = []string{"ASN", "Country Code", "Description", "Name"}

// AnalyticsSummary holds the distinct-value counts for a run.
type AnalyticsSummary struct {
	UniqueCountryCodes int `json:"unique_country_codes"`
	UniqueASNs         int `json:"unique_asns"`
	UniqueNames        int `json:"unique_names"`
	UniqueDescriptions int `json:"unique_descriptions"`
	UniquePrefixes     int `json:"unique_prefixes"`
}
