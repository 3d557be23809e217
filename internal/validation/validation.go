package validation

import (
	"net/url"
	"strings"
	"unicode"
	"unicode/utf8"
)

// MaxOrganizationLength bounds the organization name forwarded to the search service.
const MaxOrganizationLength = 100

// ValidateOrganization checks an organization name before it is sent
// upstream. A blank name is valid; it simply finds no ASNs.
func ValidateOrganization(org string) (bool, string) {
	org = strings.TrimSpace(org)
	if utf8.RuneCountInString(org) > MaxOrganizationLength {
		return false, "Organization name must be at most 100 characters"
	}
	for _, r := range org {
		if unicode.IsControl(r) {
			return false, "Organization name contains invalid characters"
		}
	}
	return true, ""
}

// ValidateURL checks if a URL is valid and uses an allowed scheme (http/https only).
func ValidateURL(urlStr string) (bool, string) {
	if urlStr == "" {
		return false, "URL is required"
	}

	// Parse the URL
	u, err := url.Parse(urlStr)
	if err != nil {
		return false, "Invalid URL format"
	}

	// Check scheme - only allow http and https
	scheme := strings.ToLower(u.Scheme)
	if scheme != "http" && scheme != "https" {
		return false, "URL must use http:// or https:// scheme"
	}

	// Ensure host is present
	if u.Host == "" {
		return false, "URL must have a valid host"
	}

	return true, ""
}
