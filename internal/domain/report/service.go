package report

import "context"

// ReportService computes attendance statistics on top of the materialized daily view.
type ReportService interface {
	// Summarize aggregates one employee or one department over a window.
	Summarize(ctx context.Context, req SummaryRequest) (Summary, error)

	// DailyOverview is the team snapshot for one day.
	DailyOverview(ctx context.Context, req OverviewRequest) (Overview, error)
}
