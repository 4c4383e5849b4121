package pipeline

import (
	"context"
	"log/slog"
	"time"

	"github.com/couchcryptid/station-report-service/internal/domain"
	"github.com/couchcryptid/station-report-service/internal/observability"
)

// Analyzer runs the validate-classify-aggregate-report pipeline over one
// in-memory table per call. It holds no state across invocations beyond its
// configuration, so concurrent calls are safe and any call may be abandoned
// without cleanup.
type Analyzer struct {
	opts    domain.Options
	logger  *slog.Logger
	metrics *observability.Metrics
}

// New creates an Analyzer with the given run configuration and observability.
func New(opts domain.Options, logger *slog.Logger, metrics *observability.Metrics) *Analyzer {
	return &Analyzer{
		opts:    opts,
		logger:  logger,
		metrics: metrics,
	}
}

// CheckReadiness reports whether the analyzer can serve requests. The
// pipeline is stateless, so it is ready as soon as it is constructed.
func (a *Analyzer) CheckReadiness(_ context.Context) error {
	return nil
}

// Analyze transforms one input table into a report. The only hard failure
// is a schema error; row-level anomalies are absorbed into the report's
// counters. An empty (zero-row) table yields an all-zero report.
func (a *Analyzer) Analyze(ctx context.Context, table domain.Table) (domain.Report, error) {
	start := time.Now()

	if err := domain.ValidateSchema(table, a.opts.RequiredColumns); err != nil {
		a.metrics.SchemaErrors.Inc()
		a.logger.Warn("schema validation failed", "error", err, "columns", table.Columns)
		return domain.Report{}, err
	}
	if err := ctx.Err(); err != nil {
		return domain.Report{}, err
	}

	c := domain.Classify(table, a.opts)
	report := domain.BuildReport(c, domain.Aggregate(c.Accepted))

	a.metrics.ReportsGenerated.Inc()
	a.metrics.RowsProcessed.Add(float64(report.TotalRows))
	a.metrics.RowsAccepted.Add(float64(report.Accepted))
	a.metrics.RowsExcluded.WithLabelValues(observability.ReasonIdentifier).Add(float64(report.ExcludedByIdentifier))
	a.metrics.RowsExcluded.WithLabelValues(observability.ReasonMalformed).Add(float64(report.ExcludedByMalformed))
	a.metrics.GroupsPerReport.Observe(float64(len(report.Groups)))
	a.metrics.AnalyzeDuration.Observe(time.Since(start).Seconds())

	a.logger.Info("report generated",
		"total_rows", report.TotalRows,
		"accepted", report.Accepted,
		"excluded_by_identifier", report.ExcludedByIdentifier,
		"excluded_by_malformed_field", report.ExcludedByMalformed,
		"groups", len(report.Groups),
		"duration", time.Since(start),
	)

	return report, nil
}

// Export validates and classifies the table, then reshapes the measurements
// matching the requested station token into the date-by-position pivot used
// for spreadsheet downloads.
func (a *Analyzer) Export(ctx context.Context, table domain.Table, stationToken string) (domain.Pivot, error) {
	if err := domain.ValidateSchema(table, a.opts.RequiredColumns); err != nil {
		a.metrics.SchemaErrors.Inc()
		a.logger.Warn("schema validation failed", "error", err, "columns", table.Columns)
		return domain.Pivot{}, err
	}
	if err := ctx.Err(); err != nil {
		return domain.Pivot{}, err
	}

	c := domain.Classify(table, a.opts)
	pivot, err := domain.BuildPivot(stationToken, c.Accepted, a.opts)
	if err != nil {
		return domain.Pivot{}, err
	}

	if pivot.SkippedPositions > 0 {
		a.logger.Warn("pivot skipped measurements with non-numeric position suffix",
			"station", stationToken, "skipped", pivot.SkippedPositions)
	}

	a.logger.Info("pivot exported",
		"station", stationToken,
		"rows", len(pivot.Rows),
		"positions", len(pivot.Columns)-2,
	)
	return pivot, nil
}

// Stations lists the distinct station identifiers present in the table,
// regardless of whether they match an accepted token.
func (a *Analyzer) Stations(_ context.Context, table domain.Table) ([]string, error) {
	return domain.Stations(table)
}
