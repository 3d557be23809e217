package lookup

import (
	"context"
	"fmt"
	"log/slog"
	"net/url"
	"strings"

	"asn2ip/internal/models"
)

// searchResponse is the ASN search payload. Pointers distinguish absent
// fields from zero values.
type searchResponse struct {
	Status string `json:"status"`
	Data   *struct {
		ASNs *[]searchASN `json:"asns"`
	} `json:"data"`
}

type searchASN struct {
	ASN         *int64  `json:"asn"`
	CountryCode *string `json:"country_code"`
	Description *string `json:"description"`
	Name        *string `json:"name"`
}

// Resolution is the outcome of an organization search.
type Resolution struct {
	ASNs    []int64
	Records []models.ASNRecord
	Skipped int // records dropped for lacking an ASN
}

// Resolver maps an organization name to its ASNs using the BGPView search API.
type Resolver struct {
	client  *Client
	baseURL string
}

// NewResolver creates a resolver against the given search service base URL.
func NewResolver(client *Client, baseURL string) *Resolver {
	return &Resolver{client: client, baseURL: strings.TrimRight(baseURL, "/")}
}

// Resolve issues a single search query for org. A blank org yields an empty
// resolution without contacting the service.
func (r *Resolver) Resolve(ctx context.Context, org string) (*Resolution, error) {
	res := &Resolution{}
	org = strings.TrimSpace(org)
	if org == "" {
		return res, nil
	}

	var body searchResponse
	if err := r.client.GetJSON(ctx, r.baseURL+"/search", url.Values{"query_term": {org}}, &body); err != nil {
		return res, fmt.Errorf("search %q: %w", org, err)
	}
	if body.Data == nil || body.Data.ASNs == nil {
		return res, fmt.Errorf("search %q: %w: missing data.asns", org, ErrMalformedResponse)
	}

	for _, entry := range *body.Data.ASNs {
		if entry.ASN == nil || *entry.ASN <= 0 {
			res.Skipped++
			continue
		}
		res.ASNs = append(res.ASNs, *entry.ASN)
		res.Records = append(res.Records, models.ASNRecord{
			ASN:         *entry.ASN,
			CountryCode: deref(entry.CountryCode),
			Description: deref(entry.Description),
			Name:        deref(entry.Name),
		})
	}

	if res.Skipped > 0 {
		slog.Warn("skipped ASN records without an asn field", "organization", org, "skipped", res.Skipped)
	}
	return res, nil
}
