package models

import (
	"testing"
	"time"

	"github.com/google/uuid"
)

func TestReport_IsComplete(t *testing.T) {
	tests := []struct {
		name     string
		status   string
		expected bool
	}{
		{"complete", RunComplete, true},
		{"no asns", RunNoASNs, false},
		{"no prefixes", RunNoPrefixes, false},
		{"empty status", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := &Report{Status: tt.status}
			if got := r.IsComplete(); got != tt.expected {
				t.Errorf("IsComplete() = %v, want %v", got, tt.expected)
			}
		})
	}
}

func TestReport_HasErrors(t *testing.T) {
	tests := []struct {
		name     string
		notices  []Notice
		expected bool
	}{
		{"no notices", nil, false},
		{"warning only", []Notice{{Level: NoticeWarning, Message: "No ASNs found"}}, false},
		{"success only", []Notice{{Level: NoticeSuccess, Message: "done"}}, false},
		{"one error", []Notice{{Level: NoticeWarning}, {Level: NoticeError, Message: "lookup failed"}}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := &Report{Notices: tt.notices}
			if got := r.HasErrors(); got != tt.expected {
				t.Errorf("HasErrors() = %v, want %v", got, tt.expected)
			}
		})
	}
}

func TestReport_Summarize(t *testing.T) {
	id := uuid.New()
	started := time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)
	r := &Report{
		RunID:        id,
		Organization: "microsoft",
		Status:       RunComplete,
		ASNs:         []int64{8075, 8068, 3598},
		Summary:      AnalyticsSummary{UniquePrefixes: 42},
		StartedAt:    started,
	}

	s := r.Summarize()
	if s.ID != id {
		t.Errorf("ID = %v, want %v", s.ID, id)
	}
	if s.Organization != "microsoft" || s.Status != RunComplete {
		t.Errorf("unexpected summary: %+v", s)
	}
	if s.ASNCount != 3 {
		t.Errorf("ASNCount = %d, want 3", s.ASNCount)
	}
	if s.PrefixCount != 42 {
		t.Errorf("PrefixCount = %d, want 42", s.PrefixCount)
	}
	if !s.CreatedAt.Equal(started) {
		t.Errorf("CreatedAt = %v, want %v", s.CreatedAt, started)
	}
}

func TestRunConstants(t *testing.T) {
	if RunComplete != "complete" {
		t.Errorf("RunComplete = %q, want %q", RunComplete, "complete")
	}
	if RunNoASNs != "no_asns" {
		t.Errorf("RunNoASNs = %q, want %q", RunNoASNs, "no_asns")
	}
	if RunNoPrefixes != "no_prefixes" {
		t.Errorf("RunNoPrefixes = %q, want %q", RunNoPrefixes, "no_prefixes")
	}
}
