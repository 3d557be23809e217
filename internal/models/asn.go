package models

// ASNRecord is the metadata the ASN search service returns for one
// autonomous system.
type ASNRecord struct {
	ASN         int64  `json:"asn"`
	CountryCode string `json:"country_code"`
	Description string `json:"description"`
	Name        string `json:"name"`
}
