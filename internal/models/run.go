package models

import (
	"time"

	"github.com/google/uuid"
)

// Run statuses.
const (
	RunComplete   = "complete"
	RunNoASNs     = "no_asns"
	RunNoPrefixes = "no_prefixes"
	RunFailed     = "failed"
)

// Report is everything a single lookup run produced.
type Report struct {
	RunID        uuid.UUID        `json:"run_id"`
	Organization string           `json:"organization"`
	Status       string           `json:"status"`
	ASNs         []int64          `json:"asns"`
	Records      []ASNRecord      `json:"records"`
	Summary      AnalyticsSummary `json:"summary"`
	Prefixes     []string         `json:"prefixes"`
	Table        []TableRow       `json:"table"`
	ASNList      string           `json:"asn_list"`
	Notices      []Notice         `json:"notices"`
	StartedAt    time.Time        `json:"started_at"`
	Duration     time.Duration    `json:"duration"`
}

// IsComplete reports whether the run produced analytics and an artifact.
func (r *Report) IsComplete() bool {
	return r.Status == RunComplete
}

// HasErrors reports whether any upstream lookup failed during the run.
func (r *Report) HasErrors() bool {
	for _, n := range r.Notices {
		if n.IsError() {
			return true
		}
	}
	return false
}

// RunSummary is the persisted history entry for a run.
type RunSummary struct {
	ID           uuid.UUID `json:"id"`
	Organization string    `json:"organization"`
	Status       string    `json:"status"`
	ASNCount     int       `json:"asn_count"`
	PrefixCount  int       `json:"prefix_count"`
	CreatedAt    time.Time `json:"created_at"`
}

// Summarize builds the history entry for a report.
func (r *Report) Summarize() *RunSummary {
	return &RunSummary{
		ID:           r.RunID,
		Organization: r.Organization,
		Status:       r.Status,
		ASNCount:     len(r.ASNs),
		PrefixCount:  r.Summary.UniquePrefixes,
		CreatedAt:    r.StartedAt,
	}
}
