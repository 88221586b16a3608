package finance

import (
	"fmt"

	"github.com/turtacn/Helios-Economics/internal/domain/risk"
	"github.com/turtacn/Helios-Economics/pkg/errors"
)

// ─────────────────────────────────────────────────────────────────────────────
// Single-cell sensitivity
// ─────────────────────────────────────────────────────────────────────────────

// CategoryIRR returns the portfolio IRR of the baseline scenario with exactly
// one category overridden to the given risk level and approval-risk rating.
// The baseline category set is not mutated.
//
// An unmatched category name is an error, never a silent fall-through to the
// baseline: a misspelled name in a sweep request must surface immediately
// rather than produce a flat row of identical results.
func CategoryIRR(solver *Solver, name string, level risk.Level, approvalRisk int,
	categories []risk.Category, sys SystemParameters, fin FinancialParameters) (float64, error) {

	idx := risk.Find(categories, name)
	if idx < 0 {
		return 0, errors.New(errors.ErrCodeCategoryNotFound,
			fmt.Sprintf("sensitivity: no category named %q", name))
	}

	modified := risk.Clone(categories)
	modified[idx] = modified[idx].WithLevel(level).WithApprovalRisk(approvalRisk)

	return ProjectWith(solver, modified, sys, fin).PortfolioIRR, nil
}

// ─────────────────────────────────────────────────────────────────────────────
// Grid sweep
// ─────────────────────────────────────────────────────────────────────────────

// SweepRow is one scenario level's slice of a sensitivity grid, aligned with
// the sweep's ApprovalRisks axis.
type SweepRow struct {
	Level risk.Level `json:"level"`
	IRRs  []float64  `json:"irrs"`
}

// SweepResult is a 2×N sensitivity matrix for a single category: portfolio
// IRR at every (level, approval risk) combination.
type SweepResult struct {
	Category      string   `json:"category"`
	ApprovalRisks []int    `json:"approval_risks"`
	Low           SweepRow `json:"low"`
	High          SweepRow `json:"high"`
}

// GridSweep evaluates the portfolio IRR across both risk levels and every
// supplied approval-risk value for one category, holding all other categories
// at their baseline.  The grid axis must be non-empty; approval-risk values
// are taken as given and not range-checked, since out-of-scale what-if points
// are a legitimate analyst tool.
func GridSweep(solver *Solver, name string, approvalRisks []int,
	categories []risk.Category, sys SystemParameters, fin FinancialParameters) (*SweepResult, error) {

	if len(approvalRisks) == 0 {
		return nil, errors.New(errors.ErrCodeSweepGridEmpty,
			fmt.Sprintf("sensitivity: sweep for category %q has an empty approval-risk axis", name))
	}
	if idx := risk.Find(categories, name); idx < 0 {
		return nil, errors.New(errors.ErrCodeCategoryNotFound,
			fmt.Sprintf("sensitivity: no category named %q", name))
	}

	out := &SweepResult{
		Category:      name,
		ApprovalRisks: append([]int(nil), approvalRisks...),
		Low:           SweepRow{Level: risk.LevelLow, IRRs: make([]float64, len(approvalRisks))},
		High:          SweepRow{Level: risk.LevelHigh, IRRs: make([]float64, len(approvalRisks))},
	}

	for i, ar := range approvalRisks {
		low, err := CategoryIRR(solver, name, risk.LevelLow, ar, categories, sys, fin)
		if err != nil {
			return nil, err
		}
		high, err := CategoryIRR(solver, name, risk.LevelHigh, ar, categories, sys, fin)
		if err != nil {
			return nil, err
		}
		out.Low.IRRs[i] = low
		out.High.IRRs[i] = high
	}
	return out, nil
}
