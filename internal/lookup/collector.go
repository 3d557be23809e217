package lookup

import (
	"context"
	"fmt"
	"net/url"
	"strconv"
	"strings"
)

type prefixResponse struct {
	Status string `json:"status"`
	Data   *struct {
		Prefixes *[]struct {
			Prefix *string `json:"prefix"`
		} `json:"prefixes"`
	} `json:"data"`
}

// Failure records a per-ASN lookup error.
type Failure struct {
	ASN int64
	Err error
}

// Collection is the flattened prefix list for a set of ASNs. Prefixes keep
// duplicates and ASN iteration order.
type Collection struct {
	Prefixes []string
	Failures []Failure
}

// Collector fetches announced prefixes from the RIPEstat data API.
type Collector struct {
	client  *Client
	baseURL string
}

// NewCollector creates a collector against the given RIPEstat base URL.
func NewCollector(client *Client, baseURL string) *Collector {
	return &Collector{client: client, baseURL: strings.TrimRight(baseURL, "/")}
}

// Collect queries each ASN in turn. A failure for one ASN is recorded and
// the remaining ASNs are still queried. Collection stops early only when
// ctx is done.
func (c *Collector) Collect(ctx context.Context, asns []int64) *Collection {
	col := &Collection{}
	for _, asn := range asns {
		if ctx.Err() != nil {
			break
		}

		prefixes, err := c.Prefixes(ctx, asn)
		if err != nil {
			col.Failures = append(col.Failures, Failure{ASN: asn, Err: err})
			continue
		}
		col.Prefixes = append(col.Prefixes, prefixes...)
	}
	return col
}

// Prefixes returns the prefixes announced by a single ASN.
func (c *Collector) Prefixes(ctx context.Context, asn int64) ([]string, error) {
	endpoint := c.baseURL + "/data/announced-prefixes/data.json"
	query := url.Values{"resource": {strconv.FormatInt(asn, 10)}}

	var body prefixResponse
	if err := c.client.GetJSON(ctx, endpoint, query, &body); err != nil {
		return nil, fmt.Errorf("prefixes for AS%d: %w", asn, err)
	}
	if body.Status != "ok" {
		return nil, fmt.Errorf("prefixes for AS%d: %w: status %q", asn, ErrLookupFailed, body.Status)
	}
	if body.Data == nil || body.Data.Prefixes == nil {
		return nil, fmt.Errorf("prefixes for AS%d: %w: missing data.prefixes", asn, ErrMalformedResponse)
	}

	prefixes := make([]string, 0, len(*body.Data.Prefixes))
	for i, p := range *body.Data.Prefixes {
		if p.Prefix == nil {
			return nil, fmt.Errorf("prefixes for AS%d: %w: entry %d has no prefix", asn, ErrMalformedResponse, i)
		}
		prefixes = append(prefixes, *p.Prefix)
	}
	return prefixes, nil
}
