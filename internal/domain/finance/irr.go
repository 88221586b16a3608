package finance

import (
	"math"
	"math/rand"
	"time"
)

// ─────────────────────────────────────────────────────────────────────────────
// Solver tuning constants
// ─────────────────────────────────────────────────────────────────────────────

const (
	// irrInitialGuess is the Newton starting point.  10% is close to typical
	// solar-development returns, so convergence is usually a handful of steps.
	irrInitialGuess = 0.10

	// irrTolerance is the NPV magnitude below which a rate is accepted as a
	// root, and also the step size below which Newton is considered stalled.
	irrTolerance = 1e-5

	// irrMaxIterations caps the Newton loop.
	irrMaxIterations = 500

	// flatDerivativeEpsilon is the |f'(r)| threshold below which a Newton step
	// would explode; the solver perturbs the rate instead of dividing.
	flatDerivativeEpsilon = 1e-10

	// Bisection bracket.  IRRs of development-stage solar projects live well
	// inside [-50%, +50%]; the bracket also keeps the rate away from the
	// r = -1 singularity of the NPV function.
	bisectionLow           = -0.5
	bisectionHigh          = 0.5
	bisectionMaxIterations = 50

	// scanPoints is the resolution of the last-resort bracket scan.
	scanPoints = 100
)

// Convergence methods reported by SolveDetailed.
const (
	MethodNone      = "none"      // short-circuit, no root finding ran
	MethodNewton    = "newton"    // Newton-Raphson from the initial guess
	MethodBisection = "bisection" // bisection after Newton stalled
	MethodScan      = "scan"      // coarse bracket scan after a non-finite result
)

// SolveStats describes how a single IRR solve converged.  It exists so the
// application layer can record solver behaviour in metrics without this
// package importing any instrumentation.
type SolveStats struct {
	// Method is the technique that produced the returned rate.
	Method string

	// Iterations is the total number of NPV evaluations' worth of loop steps
	// across all techniques tried.
	Iterations int
}

// ─────────────────────────────────────────────────────────────────────────────
// NPV
// ─────────────────────────────────────────────────────────────────────────────

// npv returns the net present value of the flow series at discount rate r,
// with flows[i] occurring at the end of year i.
func npv(flows []float64, r float64) float64 {
	v := 0.0
	for i, f := range flows {
		v += f / math.Pow(1+r, float64(i))
	}
	return v
}

// npvDerivative returns d(NPV)/dr of the flow series at rate r.
func npvDerivative(flows []float64, r float64) float64 {
	d := 0.0
	for i, f := range flows {
		if i == 0 {
			continue
		}
		d -= float64(i) * f / math.Pow(1+r, float64(i+1))
	}
	return d
}

// ─────────────────────────────────────────────────────────────────────────────
// Solver
// ─────────────────────────────────────────────────────────────────────────────

// Solver finds internal rates of return.  The zero value is not usable;
// construct with NewSolver or NewSolverWithRand.
//
// A Solver is safe for concurrent use only when its random source is; the
// default source from NewSolver is not, so share one Solver per goroutine or
// construct per call (construction is cheap).
type Solver struct {
	// rand returns a uniform value in [0, 1).  Injected so tests can make the
	// flat-derivative escape deterministic.
	rand func() float64
}

// NewSolver returns a Solver with a time-seeded random source.
func NewSolver() *Solver {
	r := rand.New(rand.NewSource(time.Now().UnixNano()))
	return &Solver{rand: r.Float64}
}

// NewSolverWithRand returns a Solver using the supplied uniform [0, 1) source.
func NewSolverWithRand(src func() float64) *Solver {
	return &Solver{rand: src}
}

// IRR returns the internal rate of return of the flow series, with flows[i]
// occurring at the end of year i.  It never fails: series with no sign change
// (all zero, all non-negative, or all non-positive) have no IRR and yield 0,
// and every numerical escape path degrades to a best-effort rate rather than
// an error.  Directional comparability across scenarios matters more here
// than refusing to answer.
func (s *Solver) IRR(flows []float64) float64 {
	r, _ := s.SolveDetailed(flows)
	return r
}

// SolveDetailed is IRR plus convergence statistics.
func (s *Solver) SolveDetailed(flows []float64) (float64, SolveStats) {
	if !hasSignChange(flows) {
		return 0, SolveStats{Method: MethodNone}
	}

	rate, stats := s.newton(flows)
	if math.IsNaN(rate) || math.IsInf(rate, 0) {
		rate = s.scan(flows, &stats)
		stats.Method = MethodScan
	}
	return rate, stats
}

// hasSignChange reports whether the series contains at least one strictly
// positive and one strictly negative flow.  Without both, NPV is monotone in
// sign and no root exists.
func hasSignChange(flows []float64) bool {
	var pos, neg bool
	for _, f := range flows {
		if f > 0 {
			pos = true
		}
		if f < 0 {
			neg = true
		}
	}
	return pos && neg
}

// newton runs Newton-Raphson from the standard initial guess, escaping flat
// derivatives by random perturbation and stalls by falling back to bisection.
func (s *Solver) newton(flows []float64) (float64, SolveStats) {
	stats := SolveStats{Method: MethodNewton}
	r := irrInitialGuess

	for i := 0; i < irrMaxIterations; i++ {
		stats.Iterations++

		f := npv(flows, r)
		if math.Abs(f) < irrTolerance {
			return r, stats
		}

		d := npvDerivative(flows, r)
		if math.Abs(d) < flatDerivativeEpsilon {
			// A Newton step here would divide by ~zero.  Nudge the rate to a
			// nearby point where the curve has slope and retry.
			r += s.rand()*0.1 - 0.05
			continue
		}

		next := r - f/d
		if math.Abs(next-r) < irrTolerance || math.Abs(npv(flows, next)) >= math.Abs(f) {
			// Stalled or not improving: hand over to bisection.
			stats.Method = MethodBisection
			return s.bisect(flows, &stats), stats
		}
		r = next
	}
	return r, stats
}

// bisect searches the fixed bracket for a root.  If the bracket does not
// straddle a sign change the loop still converges toward the endpoint with
// the smaller |NPV|, which is the best directional answer available.
func (s *Solver) bisect(flows []float64, stats *SolveStats) float64 {
	lo, hi := bisectionLow, bisectionHigh
	mid := (lo + hi) / 2

	for i := 0; i < bisectionMaxIterations; i++ {
		stats.Iterations++

		mid = (lo + hi) / 2
		f := npv(flows, mid)
		if math.Abs(f) < irrTolerance {
			return mid
		}
		if npv(flows, lo)*f < 0 {
			hi = mid
		} else {
			lo = mid
		}
	}
	return mid
}

// scan evaluates NPV at evenly spaced rates across the bracket and returns
// the rate with the smallest |NPV|.  Last-resort fallback for series whose
// NPV curve defeats both Newton and bisection.
func (s *Solver) scan(flows []float64, stats *SolveStats) float64 {
	best := bisectionLow
	bestAbs := math.Inf(1)

	step := (bisectionHigh - bisectionLow) / float64(scanPoints)
	for i := 0; i <= scanPoints; i++ {
		stats.Iterations++

		r := bisectionLow + float64(i)*step
		if a := math.Abs(npv(flows, r)); a < bestAbs {
			bestAbs = a
			best = r
		}
	}
	return best
}
