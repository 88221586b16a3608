package finance

import (
	"math"

	"github.com/turtacn/Helios-Economics/internal/domain/risk"
)

// hoursPerYear converts MW of average output into MWh of annual energy.
const hoursPerYear = 24 * 365

// wattsPerMW converts the per-watt NY-Sun incentive onto the MW size scale.
const wattsPerMW = 1_000_000

// ─────────────────────────────────────────────────────────────────────────────
// Result
// ─────────────────────────────────────────────────────────────────────────────

// Result is the outcome of a single projection run.
//
// Year indexing: index 0 is the development year, index 1 the construction
// year, and indices 2..ProjectLength+1 the operating years.  Both flow slices
// always have length ProjectLength+2.
type Result struct {
	// Flows is the success-case cash-flow series: every milestone passes.
	Flows []float64 `json:"flows"`

	// ExpectedFlows is the probability-weighted series: the construction and
	// operating flows scaled by the cumulative go/no-go probability.
	// Development expense at index 0 is spent regardless of outcome and is
	// not discounted.
	ExpectedFlows []float64 `json:"expected_flows"`

	// SuccessfulProjectIRR is the IRR of Flows: the return of a project that
	// reaches commercial operation.
	SuccessfulProjectIRR float64 `json:"successful_project_irr"`

	// PortfolioIRR is the IRR of ExpectedFlows: the return across a large
	// pipeline where only the surviving fraction is ever built.
	PortfolioIRR float64 `json:"portfolio_irr"`

	// CumulativeProbability is the product of every category's go/no-go
	// probability.
	CumulativeProbability float64 `json:"cumulative_probability"`

	// ProjectsReachingNTP is the fraction of the pipeline expected to survive
	// development to notice-to-proceed.  Equal to CumulativeProbability;
	// recorded under its reporting name because downstream consumers read it
	// as "percent of pipeline reaching NTP".
	ProjectsReachingNTP float64 `json:"projects_reaching_ntp"`

	// TotalDevEx and TotalCapEx are the summed development expense and the
	// construction cost including category adders (before the NY-Sun
	// incentive), for reporting.
	TotalDevEx float64 `json:"total_dev_ex"`
	TotalCapEx float64 `json:"total_cap_ex"`

	// Solver convergence statistics for the two IRR solves.  Consumed by the
	// application layer for instrumentation; not part of the wire format.
	SuccessfulSolve SolveStats `json:"-"`
	PortfolioSolve  SolveStats `json:"-"`
}

// PercentOfPipeline returns the per-year fraction of pipeline projects still
// alive: 1.0 in the development year (development spend is committed before
// any gate), the cumulative probability from the construction year onward.
// Exporters consume this alongside the flow series.
func (r Result) PercentOfPipeline() []float64 {
	out := make([]float64, len(r.Flows))
	for i := range out {
		if i == 0 {
			out[i] = 1.0
			continue
		}
		out[i] = r.CumulativeProbability
	}
	return out
}

// ─────────────────────────────────────────────────────────────────────────────
// Projection
// ─────────────────────────────────────────────────────────────────────────────

// Project builds the success-case and probability-weighted cash-flow series
// for the given risk categories and assumptions, and solves both series for
// their IRR.  The inputs are not mutated.
//
// Model shape, year by year:
//
//	year 0:  -Σ active development expense
//	year 1:  -(base CapEx/MW × DC size + Σ active CapEx adders)
//	         + DC size × 1e6 W/MW × NY-Sun $/W
//	year i≥2: energy revenue − operating cost, both escalated from year 2;
//	         the investment tax credit lands once, in year 2.
//
// Output degrades linearly: the degradation factor is 1.0 in the first
// operating year and loses DegradationRate in each year after it.
func Project(categories []risk.Category, sys SystemParameters, fin FinancialParameters) Result {
	return ProjectWith(NewSolver(), categories, sys, fin)
}

// ProjectWith is Project with an injected IRR solver, for callers that need
// deterministic solver behaviour or want to collect solver statistics through
// a shared instance.
func ProjectWith(solver *Solver, categories []risk.Category, sys SystemParameters, fin FinancialParameters) Result {
	years := sys.ProjectLength + 2
	if years < 2 {
		years = 2
	}
	flows := make([]float64, years)
	expected := make([]float64, years)

	// Year 0: development.  Spent before any go/no-go gate, so the expected
	// series carries it at full value.
	totalDevEx := 0.0
	for _, c := range categories {
		totalDevEx += c.ActiveDevEx()
	}
	flows[0] = -totalDevEx
	expected[0] = -totalDevEx

	cumProb := risk.CumulativeProbability(categories)

	// Year 1: construction, net of the upfront NY-Sun incentive.
	totalCapEx := fin.BaseCaseCapExPerMW * sys.SystemSize
	for _, c := range categories {
		totalCapEx += c.ActiveCapExIncrease()
	}
	nySun := sys.SystemSize * wattsPerMW * fin.NYSunIncentivePerWatt
	flows[1] = -totalCapEx + nySun
	expected[1] = flows[1] * cumProb

	// Years 2..ProjectLength+1: operations.
	degradation := 1.0
	for i := 2; i < years; i++ {
		if i > 2 {
			degradation -= sys.DegradationRate
		}

		escalation := math.Pow(1+fin.PriceEscalation, float64(i-2))
		generation := sys.ACSystemSize * (sys.CapacityFactor / 100) * hoursPerYear * degradation
		revenue := generation * fin.ElectricityRate * escalation
		opEx := fin.BaseOpExPerMW * sys.SystemSize * escalation

		flow := revenue - opEx
		if i == 2 {
			// The ITC basis is construction cost; the NY-Sun incentive does
			// not reduce it.
			flow += totalCapEx * fin.ITCRate
		}
		flows[i] = flow
		expected[i] = flow * cumProb
	}

	successIRR, successStats := solver.SolveDetailed(flows)
	portfolioIRR, portfolioStats := solver.SolveDetailed(expected)

	return Result{
		Flows:                 flows,
		ExpectedFlows:         expected,
		SuccessfulProjectIRR:  successIRR,
		PortfolioIRR:          portfolioIRR,
		CumulativeProbability: cumProb,
		ProjectsReachingNTP:   cumProb,
		TotalDevEx:            totalDevEx,
		TotalCapEx:            totalCapEx,
		SuccessfulSolve:       successStats,
		PortfolioSolve:        portfolioStats,
	}
}
