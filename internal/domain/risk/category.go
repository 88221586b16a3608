// Package risk models the development milestones of a community-solar project
// and the probability that each milestone is passed.  A Category is an
// immutable snapshot: the active cost figures and the go/no-go probability are
// derived on read from the risk level and approval-risk rating, so there is no
// cached state that can drift out of sync with the inputs that produced it.
package risk

import (
	"fmt"

	"github.com/turtacn/Helios-Economics/pkg/errors"
)

// ─────────────────────────────────────────────────────────────────────────────
// Level — which of the two cost scenarios is active
// ─────────────────────────────────────────────────────────────────────────────

// Level selects between a category's Low and High cost scenario.
type Level string

const (
	LevelLow  Level = "low"
	LevelHigh Level = "high"
)

// Valid reports whether l is one of the two defined levels.
func (l Level) Valid() bool {
	return l == LevelLow || l == LevelHigh
}

// Bounds of the approval-risk rating scale.  1 means advancement is certain;
// 15 means advancement is at the category's worst-case floor.
const (
	MinApprovalRisk = 1
	MaxApprovalRisk = 15
)

// ─────────────────────────────────────────────────────────────────────────────
// Category — one development milestone
// ─────────────────────────────────────────────────────────────────────────────

// Category describes a single development milestone (site control, permitting,
// interconnection, ...) with cost estimates for both risk scenarios and a
// rating of how likely the milestone is to be passed.
//
// Category values are treated as immutable snapshots by the projection engine;
// use the With* transforms to derive modified copies.
type Category struct {
	// Name identifies the milestone.  Unique within a category set; the slice
	// order of a set is its canonical iteration order.
	Name string `json:"name" mapstructure:"name"`

	// Level selects which cost pair is active.
	Level Level `json:"risk_level" mapstructure:"risk_level"`

	// Development-expense estimates (USD) for the two scenarios.
	DevExLow  float64 `json:"dev_ex_low" mapstructure:"dev_ex_low"`
	DevExHigh float64 `json:"dev_ex_high" mapstructure:"dev_ex_high"`

	// Capital-expense adders (USD) for the two scenarios, applied on top of
	// the base-case CapEx in the construction year.
	CapExIncreaseLow  float64 `json:"cap_ex_increase_low" mapstructure:"cap_ex_increase_low"`
	CapExIncreaseHigh float64 `json:"cap_ex_increase_high" mapstructure:"cap_ex_increase_high"`

	// ApprovalRisk rates how contested the milestone is, on the
	// [MinApprovalRisk, MaxApprovalRisk] scale.
	ApprovalRisk int `json:"approval_risk" mapstructure:"approval_risk"`

	// WorstCaseScenario is the floor probability of advancing when
	// ApprovalRisk is at its maximum.  Fraction in [0, 1].
	WorstCaseScenario float64 `json:"worst_case_scenario" mapstructure:"worst_case_scenario"`
}

// ActiveDevEx returns the development expense of the currently selected
// scenario.
func (c Category) ActiveDevEx() float64 {
	if c.Level == LevelHigh {
		return c.DevExHigh
	}
	return c.DevExLow
}

// ActiveCapExIncrease returns the capital-expense adder of the currently
// selected scenario.
func (c Category) ActiveCapExIncrease() float64 {
	if c.Level == LevelHigh {
		return c.CapExIncreaseHigh
	}
	return c.CapExIncreaseLow
}

// GoNoGoProbability returns the probability that this milestone is passed,
// derived from the approval-risk rating and the worst-case floor.
func (c Category) GoNoGoProbability() float64 {
	return GoNoGo(c.ApprovalRisk, c.WorstCaseScenario)
}

// WithLevel returns a copy of c with the given scenario level selected.
func (c Category) WithLevel(l Level) Category {
	c.Level = l
	return c
}

// WithApprovalRisk returns a copy of c with the given approval-risk rating.
func (c Category) WithApprovalRisk(r int) Category {
	c.ApprovalRisk = r
	return c
}

// Validate checks the category's fields at the form/API boundary.  The
// projection engine itself performs no validation (directional results are
// preferred over strictness there), so callers that accept external input
// must validate before projecting.
func (c Category) Validate() error {
	if c.Name == "" {
		return errors.New(errors.ErrCodeValidation, "category name must not be empty")
	}
	if !c.Level.Valid() {
		return errors.New(errors.ErrCodeRiskLevelInvalid,
			fmt.Sprintf("category %q: risk level %q is not low|high", c.Name, c.Level))
	}
	if c.ApprovalRisk < MinApprovalRisk || c.ApprovalRisk > MaxApprovalRisk {
		return errors.New(errors.ErrCodeApprovalRiskInvalid,
			fmt.Sprintf("category %q: approval risk %d is out of range [%d, %d]",
				c.Name, c.ApprovalRisk, MinApprovalRisk, MaxApprovalRisk))
	}
	if c.WorstCaseScenario < 0 || c.WorstCaseScenario > 1 {
		return errors.New(errors.ErrCodeWorstCaseOutOfRange,
			fmt.Sprintf("category %q: worst-case probability %.4f is out of [0, 1]",
				c.Name, c.WorstCaseScenario))
	}
	if c.DevExLow < 0 || c.DevExHigh < 0 || c.CapExIncreaseLow < 0 || c.CapExIncreaseHigh < 0 {
		return errors.New(errors.ErrCodeValidation,
			fmt.Sprintf("category %q: cost estimates must be non-negative", c.Name))
	}
	return nil
}

// ─────────────────────────────────────────────────────────────────────────────
// Category sets
// ─────────────────────────────────────────────────────────────────────────────

// ValidateSet validates every category in the set and rejects duplicate names.
func ValidateSet(categories []Category) error {
	seen := make(map[string]bool, len(categories))
	for _, c := range categories {
		if err := c.Validate(); err != nil {
			return err
		}
		if seen[c.Name] {
			return errors.New(errors.ErrCodeDuplicateCategory,
				fmt.Sprintf("category %q appears more than once", c.Name))
		}
		seen[c.Name] = true
	}
	return nil
}

// Find returns the index of the category with the given name, or -1 when no
// category matches.
func Find(categories []Category, name string) int {
	for i, c := range categories {
		if c.Name == name {
			return i
		}
	}
	return -1
}

// Clone returns a deep copy of the category set.  Category contains no
// reference types, so a slice copy is sufficient; Clone exists so call sites
// read as intent rather than mechanics.
func Clone(categories []Category) []Category {
	out := make([]Category, len(categories))
	copy(out, categories)
	return out
}

// DefaultCategories returns the canonical five-milestone set used as the
// baseline scenario.  Deployments can override any of these figures through
// configuration.
func DefaultCategories() []Category {
	return []Category{
		{
			Name:              "Site Control",
			Level:             LevelLow,
			DevExLow:          5000,
			DevExHigh:         15000,
			CapExIncreaseLow:  0,
			CapExIncreaseHigh: 50000,
			ApprovalRisk:      3,
			WorstCaseScenario: 0.50,
		},
		{
			Name:              "Permitting",
			Level:             LevelLow,
			DevExLow:          25000,
			DevExHigh:         75000,
			CapExIncreaseLow:  0,
			CapExIncreaseHigh: 100000,
			ApprovalRisk:      7,
			WorstCaseScenario: 0.40,
		},
		{
			Name:              "Interconnection",
			Level:             LevelLow,
			DevExLow:          10000,
			DevExHigh:         50000,
			CapExIncreaseLow:  100000,
			CapExIncreaseHigh: 500000,
			ApprovalRisk:      8,
			WorstCaseScenario: 0.35,
		},
		{
			Name:              "Design",
			Level:             LevelLow,
			DevExLow:          15000,
			DevExHigh:         40000,
			CapExIncreaseLow:  0,
			CapExIncreaseHigh: 250000,
			ApprovalRisk:      4,
			WorstCaseScenario: 0.60,
		},
		{
			Name:              "Environmental",
			Level:             LevelLow,
			DevExLow:          7500,
			DevExHigh:         30000,
			CapExIncreaseLow:  0,
			CapExIncreaseHigh: 150000,
			ApprovalRisk:      5,
			WorstCaseScenario: 0.50,
		},
	}
}
