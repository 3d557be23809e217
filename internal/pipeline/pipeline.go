// Package pipeline runs a lookup end to end: organization search, prefix
// collection, aggregation and artifact write.
package pipeline

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"

	"asn2ip/internal/analytics"
	"asn2ip/internal/lookup"
	"asn2ip/internal/metrics"
	"asn2ip/internal/models"
)

// Resolver maps an organization name to ASNs.
type Resolver interface {
	Resolve(ctx context.Context, org string) (*lookup.Resolution, error)
}

// Collector gathers announced prefixes for a list of ASNs.
type Collector interface {
	Collect(ctx context.Context, asns []int64) *lookup.Collection
}

// ArtifactWriter overwrites the prefix artifact.
type ArtifactWriter interface {
	Write(runID uuid.UUID, prefixes []string) error
}

// HistoryRecorder persists run summaries.
type HistoryRecorder interface {
	InsertRun(ctx context.Context, run *models.RunSummary) error
}

// Pipeline wires the lookup stages together. It is safe for concurrent use
// as long as its collaborators are.
type Pipeline struct {
	resolver  Resolver
	collector Collector
	artifact  ArtifactWriter
	history   HistoryRecorder
	logger    *slog.Logger
}

// Option configures a Pipeline.
type Option func(*Pipeline)

// WithHistory records every finished run to h.
func WithHistory(h HistoryRecorder) Option {
	return func(p *Pipeline) {
		p.history = h
	}
}

// WithLogger replaces the default slog logger.
func WithLogger(l *slog.Logger) Option {
	return func(p *Pipeline) {
		p.logger = l
	}
}

// New creates a pipeline.
func New(resolver Resolver, collector Collector, artifact ArtifactWriter, opts ...Option) *Pipeline {
	p := &Pipeline{
		resolver:  resolver,
		collector: collector,
		artifact:  artifact,
		logger:    slog.Default(),
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Run performs one lookup for org. Upstream failures and empty results are
// reported as notices on the returned report; the error is non-nil only when
// the run could not finish (artifact write failure or cancelled context).
func (p *Pipeline) Run(ctx context.Context, org string) (*models.Report, error) {
	org = strings.TrimSpace(org)
	report := &models.Report{
		RunID:        uuid.New(),
		Organization: org,
		StartedAt:    time.Now().UTC(),
	}
	log := p.logger.With("run_id", report.RunID, "organization", org)

	log.Info("fetching ASN information", "stage", "resolve")
	res, err := p.resolver.Resolve(ctx, org)
	if ctxErr := ctx.Err(); ctxErr != nil {
		log.Warn("run cancelled", "stage", "resolve", "error", ctxErr)
		p.finish(context.WithoutCancel(ctx), report, models.RunFailed)
		return report, fmt.Errorf("run cancelled: %w", ctxErr)
	}
	if err != nil {
		log.Error("organization lookup failed", "stage", "resolve", "error", err)
		metrics.RecordUpstreamFailure(metrics.ServiceSearch)
		report.Notices = append(report.Notices, notice(models.NoticeError,
			"Failed to retrieve information for %s", org))
	}
	if res == nil {
		res = &lookup.Resolution{}
	}
	if res.Skipped > 0 {
		report.Notices = append(report.Notices, notice(models.NoticeWarning,
			"Skipped %d ASN records without an ASN number", res.Skipped))
	}

	if len(res.ASNs) == 0 {
		log.Warn("no ASNs found", "stage", "resolve")
		report.Notices = append(report.Notices, notice(models.NoticeWarning,
			"No ASNs found for the organization"))
		return p.finish(ctx, report, models.RunNoASNs), nil
	}

	report.ASNs = res.ASNs
	report.Records = res.Records
	report.ASNList = analytics.ASNList(res.ASNs)
	report.Notices = append(report.Notices, notice(models.NoticeSuccess,
		"Found %d ASNs for %s", len(res.ASNs), org))

	log.Info("fetching ASN prefixes", "stage", "collect", "asns", len(res.ASNs))
	col := p.collector.Collect(ctx, res.ASNs)
	for _, f := range col.Failures {
		log.Error("prefix lookup failed", "stage", "collect", "asn", f.ASN, "error", f.Err)
		metrics.RecordUpstreamFailure(metrics.ServicePrefixes)
		report.Notices = append(report.Notices, notice(models.NoticeError,
			"Error retrieving prefixes for ASN %d", f.ASN))
	}
	if err := ctx.Err(); err != nil {
		log.Warn("run cancelled", "stage", "collect", "error", err)
		p.finish(context.WithoutCancel(ctx), report, models.RunFailed)
		return report, fmt.Errorf("run cancelled: %w", err)
	}

	if len(col.Prefixes) == 0 {
		log.Warn("no prefixes found", "stage", "collect")
		report.Notices = append(report.Notices, notice(models.NoticeWarning,
			"No prefixes found for the ASNs"))
		return p.finish(ctx, report, models.RunNoPrefixes), nil
	}

	log.Info("processing analytics", "stage", "aggregate", "prefixes", len(col.Prefixes))
	result := analytics.Aggregate(col.Prefixes, res.Records)
	report.Summary = result.Summary
	report.Prefixes = result.Prefixes
	report.Table = result.Table

	log.Debug("writing artifact", "stage", "write", "unique_prefixes", len(result.Prefixes))
	if err := p.artifact.Write(report.RunID, result.Prefixes); err != nil {
		log.Error("artifact write failed", "stage", "write", "error", err)
		p.finish(ctx, report, models.RunFailed)
		return report, fmt.Errorf("write artifact: %w", err)
	}

	return p.finish(ctx, report, models.RunComplete), nil
}

// finish stamps the final status, records metrics and history.
func (p *Pipeline) finish(ctx context.Context, report *models.Report, status string) *models.Report {
	report.Status = status
	report.Duration = time.Since(report.StartedAt)
	metrics.RecordRun(status, report.Duration)

	if p.history != nil {
		if err := p.history.InsertRun(ctx, report.Summarize()); err != nil {
			p.logger.Error("failed to record run history", "run_id", report.RunID, "error", err)
		}
	}

	p.logger.Info("run finished", "run_id", report.RunID, "status", status,
		"asns", len(report.ASNs), "unique_prefixes", report.Summary.UniquePrefixes,
		"duration", report.Duration)
	return report
}

func notice(level, format string, args ...any) models.Notice {
	return models.Notice{Level: level, Message: fmt.Sprintf(format, args...)}
}
