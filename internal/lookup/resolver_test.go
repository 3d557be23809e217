package lookup

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
)

const microsoftSearch = `{
  "status": "ok",
  "data": {
    "asns": [
      {"asn": 8075, "name": "MICROSOFT-CORP-MSN-AS-BLOCK", "description": "Microsoft Corporation", "country_code": "US"},
      {"asn": 8068, "name": "MICROSOFT-CORP-MSN-AS-BLOCK", "description": "Microsoft Corporation", "country_code": "US"},
      {"asn": 3598, "name": "MICROSOFT-CORP-AS", "description": "Microsoft Corporation", "country_code": "US"}
    ]
  }
}`

func newTestResolver(t *testing.T, status int, body string) (*Resolver, *int) {
	t.Helper()
	calls := 0
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
		if r.URL.Path != "/search" {
			t.Errorf("unexpected path %q", r.URL.Path)
		}
		w.WriteHeader(status)
		w.Write([]byte(body))
	}))
	t.Cleanup(srv.Close)
	return NewResolver(NewClient(), srv.URL+"/"), &calls
}

func TestResolve_Success(t *testing.T) {
	var gotQuery string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotQuery = r.URL.Query().Get("query_term")
		w.Write([]byte(microsoftSearch))
	}))
	defer srv.Close()

	res, err := NewResolver(NewClient(), srv.URL).Resolve(context.Background(), "  microsoft ")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if gotQuery != "microsoft" {
		t.Errorf("query_term = %q, want %q", gotQuery, "microsoft")
	}
	want := []int64{8075, 8068, 3598}
	if len(res.ASNs) != len(want) {
		t.Fatalf("ASNs = %v, want %v", res.ASNs, want)
	}
	for i := range want {
		if res.ASNs[i] != want[i] {
			t.Errorf("ASNs[%d] = %d, want %d", i, res.ASNs[i], want[i])
		}
	}
	if len(res.Records) != 3 {
		t.Fatalf("expected 3 records, got %d", len(res.Records))
	}
	first := res.Records[0]
	if first.ASN != 8075 || first.CountryCode != "US" || first.Name != "MICROSOFT-CORP-MSN-AS-BLOCK" || first.Description != "Microsoft Corporation" {
		t.Errorf("unexpected first record: %+v", first)
	}
}

func TestResolve_BlankOrganization(t *testing.T) {
	r, calls := newTestResolver(t, 200, microsoftSearch)

	for _, org := range []string{"", "   "} {
		res, err := r.Resolve(context.Background(), org)
		if err != nil {
			t.Fatalf("Resolve(%q) error: %v", org, err)
		}
		if len(res.ASNs) != 0 || len(res.Records) != 0 {
			t.Errorf("Resolve(%q) = %+v, want empty", org, res)
		}
	}
	if *calls != 0 {
		t.Errorf("blank queries should not reach the service, got %d calls", *calls)
	}
}

func TestResolve_StatusError(t *testing.T) {
	r, _ := newTestResolver(t, 500, `{"status":"error"}`)

	res, err := r.Resolve(context.Background(), "microsoft")
	var statusErr *StatusError
	if !errors.As(err, &statusErr) {
		t.Fatalf("expected *StatusError, got %v", err)
	}
	if len(res.ASNs) != 0 || len(res.Records) != 0 {
		t.Errorf("expected empty lists on failure, got %+v", res)
	}
}

func TestResolve_Malformed(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{"missing data", `{"status":"ok"}`},
		{"null data", `{"status":"ok","data":null}`},
		{"missing asns", `{"status":"ok","data":{"ipv4_prefixes":[]}}`},
		{"not json", `oops`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r, _ := newTestResolver(t, 200, tt.body)
			_, err := r.Resolve(context.Background(), "microsoft")
			if !errors.Is(err, ErrMalformedResponse) {
				t.Fatalf("expected ErrMalformedResponse, got %v", err)
			}
		})
	}
}

func TestResolve_SkipsRecordsWithoutASN(t *testing.T) {
	body := `{"data":{"asns":[
		{"asn": 8075, "name": "MSFT", "description": null, "country_code": "US"},
		{"name": "NO-NUMBER", "description": "missing asn", "country_code": "US"},
		{"asn": 0, "name": "ZERO"}
	]}}`
	r, _ := newTestResolver(t, 200, body)

	res, err := r.Resolve(context.Background(), "microsoft")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(res.ASNs) != 1 || res.ASNs[0] != 8075 {
		t.Errorf("ASNs = %v, want [8075]", res.ASNs)
	}
	if res.Skipped != 2 {
		t.Errorf("Skipped = %d, want 2", res.Skipped)
	}
	if res.Records[0].Description != "" {
		t.Errorf("null description should decode as empty, got %q", res.Records[0].Description)
	}
}

func TestResolve_EmptyASNList(t *testing.T) {
	r, _ := newTestResolver(t, 200, `{"status":"ok","data":{"asns":[]}}`)

	res, err := r.Resolve(context.Background(), "no-such-org-xyz")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(res.ASNs) != 0 {
		t.Errorf("expected no ASNs, got %v", res.ASNs)
	}
}
