package prometheus

// Application metric names.  Declared as constants so emit sites and the
// registration table cannot drift apart.
const (
	// Projection engine.
	MetricProjectionRuns     = "projection_runs_total"
	MetricProjectionDuration = "projection_duration_seconds"
	MetricSolverIterations   = "irr_solver_iterations"
	MetricSolverConvergence  = "irr_solver_convergence_total"

	// Sensitivity sweeps.
	MetricSweepRuns  = "sensitivity_sweeps_total"
	MetricSweepCells = "sensitivity_cells_total"

	// Exports.
	MetricExportRuns  = "export_runs_total"
	MetricExportBytes = "export_bytes_total"

	// HTTP surface.
	MetricHTTPRequests = "http_requests_total"
	MetricHTTPDuration = "http_request_duration_seconds"
	MetricHTTPInFlight = "http_requests_in_flight"
)

// Label names.
const (
	LabelStatus   = "status"
	LabelMethod   = "method"
	LabelPath     = "path"
	LabelCode     = "code"
	LabelSeries   = "series"
	LabelCategory = "category"
	LabelFormat   = "format"
)

// NewAppCollector builds the collector pre-registered with every application
// metric, under the given namespace.
func NewAppCollector(namespace string) MetricsCollector {
	counters := []metricDef{
		{
			Name:   MetricProjectionRuns,
			Help:   "Completed cash-flow projection runs, by outcome.",
			Labels: []string{LabelStatus},
		},
		{
			Name:   MetricSolverConvergence,
			Help:   "IRR solves by the method that produced the result and the flow series solved.",
			Labels: []string{LabelMethod, LabelSeries},
		},
		{
			Name:   MetricSweepRuns,
			Help:   "Completed sensitivity sweeps, by category and outcome.",
			Labels: []string{LabelCategory, LabelStatus},
		},
		{
			Name:   MetricSweepCells,
			Help:   "Individual (level, approval risk) cells evaluated across all sweeps.",
			Labels: []string{LabelCategory},
		},
		{
			Name:   MetricExportRuns,
			Help:   "Completed cash-flow exports, by format and outcome.",
			Labels: []string{LabelFormat, LabelStatus},
		},
		{
			Name:   MetricExportBytes,
			Help:   "Bytes written across all exports, by format.",
			Labels: []string{LabelFormat},
		},
		{
			Name:   MetricHTTPRequests,
			Help:   "HTTP requests served, by method, path template, and status code.",
			Labels: []string{LabelMethod, LabelPath, LabelCode},
		},
	}

	gauges := []metricDef{
		{
			Name: MetricHTTPInFlight,
			Help: "HTTP requests currently being served.",
		},
	}

	histograms := []metricDef{
		{
			Name:    MetricProjectionDuration,
			Help:    "Wall time of a full projection run, in seconds.",
			Buckets: []float64{0.0001, 0.0005, 0.001, 0.005, 0.01, 0.05, 0.1, 0.5, 1},
		},
		{
			Name:    MetricSolverIterations,
			Help:    "Root-finder iterations per IRR solve.",
			Labels:  []string{LabelSeries},
			Buckets: []float64{1, 2, 5, 10, 25, 50, 100, 250, 500, 650},
		},
		{
			Name:   MetricHTTPDuration,
			Help:   "HTTP request latency, in seconds.",
			Labels: []string{LabelMethod, LabelPath},
		},
	}

	return NewCollector(namespace, counters, gauges, histograms)
}
