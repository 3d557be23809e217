// Package testutil provides test utilities and helpers.
package testutil

import (
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strconv"
	"sync/atomic"
	"testing"
)

// ASN is a search hit served by the fake upstream.
type ASN struct {
	ASN         int64  `json:"asn"`
	Name        string `json:"name"`
	Description string `json:"description"`
	CountryCode string `json:"country_code"`
}

// Upstream fakes the ASN search and announced-prefixes services on a single
// httptest server. ASNs missing from Prefixes answer 502.
type Upstream struct {
	URL string

	Orgs     map[string][]ASN
	Prefixes map[int64][]string

	searchCalls atomic.Int64
	prefixCalls atomic.Int64
}

// NewUpstream starts a fake upstream and closes it when the test ends.
func NewUpstream(t *testing.T, orgs map[string][]ASN, prefixes map[int64][]string) *Upstream {
	t.Helper()
	u := &Upstream{Orgs: orgs, Prefixes: prefixes}

	mux := http.NewServeMux()
	mux.HandleFunc("/search", u.search)
	mux.HandleFunc("/data/announced-prefixes/data.json", u.announced)

	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)
	u.URL = srv.URL
	return u
}

// Microsoft returns an upstream with two healthy Microsoft ASNs sharing
// 13.64.0.0/11 and one ASN whose prefix lookup fails.
func Microsoft(t *testing.T) *Upstream {
	t.Helper()
	return NewUpstream(t,
		map[string][]ASN{
			"microsoft": {
				{ASN: 8075, Name: "MICROSOFT-CORP-MSN-AS-BLOCK", Description: "Microsoft Corporation", CountryCode: "US"},
				{ASN: 8068, Name: "MICROSOFT-CORP-MSN-AS-BLOCK", Description: "Microsoft Corporation", CountryCode: "US"},
				{ASN: 64500, Name: "BROKEN", Description: "Upstream error", CountryCode: "US"},
			},
		},
		map[int64][]string{
			8075: {"13.64.0.0/11", "20.33.0.0/16", "2603:1000::/25"},
			8068: {"13.64.0.0/11", "104.40.0.0/13"},
		},
	)
}

// SearchCalls returns how many search requests were served.
func (u *Upstream) SearchCalls() int64 { return u.searchCalls.Load() }

// PrefixCalls returns how many announced-prefixes requests were served.
func (u *Upstream) PrefixCalls() int64 { return u.prefixCalls.Load() }

func (u *Upstream) search(w http.ResponseWriter, r *http.Request) {
	u.searchCalls.Add(1)
	asns := u.Orgs[r.URL.Query().Get("query_term")]
	if asns == nil {
		asns = []ASN{}
	}
	writeJSON(w, map[string]any{
		"status": "ok",
		"data":   map[string]any{"asns": asns},
	})
}

func (u *Upstream) announced(w http.ResponseWriter, r *http.Request) {
	u.prefixCalls.Add(1)
	asn, err := strconv.ParseInt(r.URL.Query().Get("resource"), 10, 64)
	if err != nil {
		http.Error(w, "bad resource", http.StatusBadRequest)
		return
	}
	prefixes, ok := u.Prefixes[asn]
	if !ok {
		w.WriteHeader(http.StatusBadGateway)
		return
	}

	entries := make([]map[string]string, 0, len(prefixes))
	for _, p := range prefixes {
		entries = append(entries, map[string]string{"prefix": p})
	}
	writeJSON(w, map[string]any{
		"status": "ok",
		"data":   map[string]any{"prefixes": entries},
	})
}

func writeJSON(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(v)
}

// QuietLogger returns a logger that discards everything.
func QuietLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}
