// Package scenario orchestrates projection, sensitivity, and export runs:
// it layers request overrides onto the configured baseline scenario, drives
// the finance engine, and records logging and metrics around each run.
package scenario

import (
	"context"
	"sync"
	"time"

	"github.com/turtacn/Helios-Economics/internal/config"
	"github.com/turtacn/Helios-Economics/internal/domain/finance"
	"github.com/turtacn/Helios-Economics/internal/domain/risk"
	"github.com/turtacn/Helios-Economics/internal/infrastructure/monitoring/logging"
	"github.com/turtacn/Helios-Economics/internal/infrastructure/monitoring/prometheus"
	"github.com/turtacn/Helios-Economics/pkg/errors"
	"github.com/turtacn/Helios-Economics/pkg/types/common"
)

// ─────────────────────────────────────────────────────────────────────────────
// Requests and responses
// ─────────────────────────────────────────────────────────────────────────────

// ProjectionRequest describes one projection run.  Every field is optional;
// omitted fields fall back to the configured baseline scenario.
type ProjectionRequest struct {
	// Categories replaces the entire baseline category set when non-empty.
	Categories []risk.Category `json:"categories,omitempty"`

	// Overrides tweaks individual baseline categories by name.  Applied after
	// Categories, so the two compose: replace the set, then adjust members.
	Overrides []CategoryOverride `json:"overrides,omitempty"`

	// System and Financial replace the baseline parameter blocks when set.
	System    *finance.SystemParameters    `json:"system,omitempty"`
	Financial *finance.FinancialParameters `json:"financial,omitempty"`
}

// CategoryOverride adjusts one named category.  Nil fields are left at the
// category's current value.
type CategoryOverride struct {
	Name         string      `json:"name"`
	Level        *risk.Level `json:"risk_level,omitempty"`
	ApprovalRisk *int        `json:"approval_risk,omitempty"`
}

// ProjectionResponse is a completed projection run.
type ProjectionResponse struct {
	RunID      common.RunID   `json:"run_id"`
	Result     finance.Result `json:"result"`
	Elapsed    time.Duration  `json:"elapsed_ns"`
	FinishedAt time.Time      `json:"finished_at"`
}

// SweepRequest describes one sensitivity sweep over a single category.
type SweepRequest struct {
	// Category is the name of the milestone to sweep.
	Category string `json:"category"`

	// ApprovalRisks is the grid axis.  Must be non-empty.
	ApprovalRisks []int `json:"approval_risks"`

	// Baseline overrides, same semantics as ProjectionRequest.
	Categories []risk.Category              `json:"categories,omitempty"`
	System     *finance.SystemParameters    `json:"system,omitempty"`
	Financial  *finance.FinancialParameters `json:"financial,omitempty"`
}

// SweepResponse is a completed sensitivity sweep.
type SweepResponse struct {
	RunID       common.RunID        `json:"run_id"`
	Result      finance.SweepResult `json:"result"`
	BaselineIRR float64             `json:"baseline_irr"`
	FinishedAt  time.Time           `json:"finished_at"`
}

// ─────────────────────────────────────────────────────────────────────────────
// Service
// ─────────────────────────────────────────────────────────────────────────────

// Service runs scenarios against the configured baseline.  Safe for
// concurrent use: runs read an immutable snapshot of the baseline and each
// run constructs its own solver.
type Service struct {
	mu       sync.RWMutex
	baseline config.ScenarioConfig

	log     logging.Logger
	metrics prometheus.MetricsCollector
}

// NewService builds a scenario service over the given baseline.
func NewService(baseline config.ScenarioConfig, log logging.Logger, metrics prometheus.MetricsCollector) *Service {
	baseline.Categories = risk.Clone(baseline.Categories)
	return &Service{
		baseline: baseline,
		log:      log.Named("scenario"),
		metrics:  metrics,
	}
}

// Baseline returns a copy of the configured baseline scenario.
func (s *Service) Baseline() config.ScenarioConfig {
	s.mu.RLock()
	out := s.baseline
	s.mu.RUnlock()
	out.Categories = risk.Clone(out.Categories)
	return out
}

// SetBaseline replaces the baseline scenario, e.g. on a configuration
// hot reload.  In-flight runs keep the snapshot they already resolved; only
// runs started after the swap see the new baseline.
func (s *Service) SetBaseline(next config.ScenarioConfig) {
	next.Categories = risk.Clone(next.Categories)
	s.mu.Lock()
	s.baseline = next
	s.mu.Unlock()
	s.log.Info("baseline scenario replaced",
		logging.Int("categories", len(next.Categories)))
}

// snapshot returns the current baseline without copying its category slice;
// callers must treat the result as read-only.
func (s *Service) snapshot() config.ScenarioConfig {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.baseline
}

// resolve merges request overrides onto the baseline and validates the
// resulting category set.
func (s *Service) resolve(categories []risk.Category, overrides []CategoryOverride,
	sys *finance.SystemParameters, fin *finance.FinancialParameters,
) ([]risk.Category, finance.SystemParameters, finance.FinancialParameters, error) {

	baseline := s.snapshot()
	cats := risk.Clone(baseline.Categories)
	if len(categories) > 0 {
		cats = risk.Clone(categories)
	}
	for _, o := range overrides {
		idx := risk.Find(cats, o.Name)
		if idx < 0 {
			return nil, finance.SystemParameters{}, finance.FinancialParameters{},
				errors.New(errors.ErrCodeCategoryNotFound, "risk category not found").
					WithDetail("override target " + o.Name)
		}
		if o.Level != nil {
			cats[idx] = cats[idx].WithLevel(*o.Level)
		}
		if o.ApprovalRisk != nil {
			cats[idx] = cats[idx].WithApprovalRisk(*o.ApprovalRisk)
		}
	}
	if err := risk.ValidateSet(cats); err != nil {
		return nil, finance.SystemParameters{}, finance.FinancialParameters{}, err
	}

	system := baseline.System
	if sys != nil {
		system = *sys
	}
	financial := baseline.Financial
	if fin != nil {
		financial = *fin
	}
	return cats, system, financial, nil
}

// Projection runs one projection with the request's overrides applied to the
// baseline scenario.
func (s *Service) Projection(ctx context.Context, req ProjectionRequest) (*ProjectionResponse, error) {
	runID := common.NewRunID()
	log := s.log.With(logging.String("run_id", runID.String()))
	timer := prometheus.NewTimer(s.metrics, prometheus.MetricProjectionDuration, nil)

	cats, sys, fin, err := s.resolve(req.Categories, req.Overrides, req.System, req.Financial)
	if err != nil {
		s.metrics.IncCounter(prometheus.MetricProjectionRuns,
			map[string]string{prometheus.LabelStatus: "rejected"})
		log.Warn("projection request rejected", logging.Err(err))
		return nil, err
	}

	if err := ctx.Err(); err != nil {
		return nil, errors.Wrap(err, errors.ErrCodeProjectionFailed, "projection cancelled")
	}

	result := finance.ProjectWith(finance.NewSolver(), cats, sys, fin)
	elapsed := timer.Stop()
	s.recordSolve("successful", result.SuccessfulSolve)
	s.recordSolve("portfolio", result.PortfolioSolve)
	s.metrics.IncCounter(prometheus.MetricProjectionRuns,
		map[string]string{prometheus.LabelStatus: "ok"})

	log.Info("projection completed",
		logging.Int("categories", len(cats)),
		logging.Int("years", len(result.Flows)),
		logging.Float64("successful_irr", result.SuccessfulProjectIRR),
		logging.Float64("portfolio_irr", result.PortfolioIRR),
		logging.Float64("cumulative_probability", result.CumulativeProbability),
		logging.Duration("elapsed", elapsed))

	return &ProjectionResponse{
		RunID:      runID,
		Result:     result,
		Elapsed:    elapsed,
		FinishedAt: time.Now().UTC(),
	}, nil
}

// Sensitivity runs a full 2×N grid sweep for one category.
func (s *Service) Sensitivity(ctx context.Context, req SweepRequest) (*SweepResponse, error) {
	runID := common.NewRunID()
	log := s.log.With(
		logging.String("run_id", runID.String()),
		logging.String("category", req.Category))

	cats, sys, fin, err := s.resolve(req.Categories, nil, req.System, req.Financial)
	if err != nil {
		s.sweepOutcome(req.Category, "rejected")
		return nil, err
	}

	if err := ctx.Err(); err != nil {
		return nil, errors.Wrap(err, errors.ErrCodeProjectionFailed, "sweep cancelled")
	}

	solver := finance.NewSolver()
	result, err := finance.GridSweep(solver, req.Category, req.ApprovalRisks, cats, sys, fin)
	if err != nil {
		s.sweepOutcome(req.Category, "rejected")
		log.Warn("sensitivity sweep rejected", logging.Err(err))
		return nil, err
	}

	baseline := finance.ProjectWith(solver, cats, sys, fin).PortfolioIRR

	s.sweepOutcome(req.Category, "ok")
	s.metrics.AddCounter(prometheus.MetricSweepCells,
		float64(2*len(req.ApprovalRisks)),
		map[string]string{prometheus.LabelCategory: req.Category})

	log.Info("sensitivity sweep completed",
		logging.Int("grid_points", len(req.ApprovalRisks)),
		logging.Float64("baseline_irr", baseline))

	return &SweepResponse{
		RunID:       runID,
		Result:      *result,
		BaselineIRR: baseline,
		FinishedAt:  time.Now().UTC(),
	}, nil
}

func (s *Service) recordSolve(series string, stats finance.SolveStats) {
	s.metrics.IncCounter(prometheus.MetricSolverConvergence, map[string]string{
		prometheus.LabelMethod: stats.Method,
		prometheus.LabelSeries: series,
	})
	s.metrics.ObserveHistogram(prometheus.MetricSolverIterations,
		float64(stats.Iterations),
		map[string]string{prometheus.LabelSeries: series})
}

func (s *Service) sweepOutcome(category, status string) {
	s.metrics.IncCounter(prometheus.MetricSweepRuns, map[string]string{
		prometheus.LabelCategory: category,
		prometheus.LabelStatus:   status,
	})
}
