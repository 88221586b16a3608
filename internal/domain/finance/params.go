// Package finance implements the risk-weighted cash-flow projection and IRR
// engine for community-solar development projects.  All computation here is
// pure and synchronous: inputs are immutable snapshots, outputs are fresh
// values, and nothing in this package performs I/O or holds shared state.
package finance

// SystemParameters holds the physical and operational assumptions of a
// projection run.  Values are treated as immutable for the duration of a
// single Project call.
type SystemParameters struct {
	// CapacityFactor is the AC capacity factor in percent (e.g. 14 for 14%).
	CapacityFactor float64 `json:"capacity_factor" mapstructure:"capacity_factor"`

	// SystemSize is the DC nameplate size in MW; capital and operating costs
	// scale with it.
	SystemSize float64 `json:"system_size" mapstructure:"system_size"`

	// ACSystemSize is the AC nameplate size in MW; energy production scales
	// with it.
	ACSystemSize float64 `json:"ac_system_size" mapstructure:"ac_system_size"`

	// ProjectLength is the number of operating years after the commissioning
	// year.
	ProjectLength int `json:"project_length" mapstructure:"project_length"`

	// DegradationRate is the fractional annual decline in output applied to
	// every operating year after the first.
	DegradationRate float64 `json:"degradation_rate" mapstructure:"degradation_rate"`

	// PipelineSize is the number of projects the portfolio view represents.
	// It scales exported portfolio totals only; IRR is scale-invariant and
	// unaffected.
	PipelineSize int `json:"pipeline_size" mapstructure:"pipeline_size"`
}

// FinancialParameters holds the cost, revenue, and incentive assumptions of a
// projection run.  Values are treated as immutable for the duration of a
// single Project call.
type FinancialParameters struct {
	// BaseCaseCapExPerMW is the construction cost per MW-DC before any
	// category-specific adders (USD/MW).
	BaseCaseCapExPerMW float64 `json:"base_case_cap_ex_per_mw" mapstructure:"base_case_cap_ex_per_mw"`

	// BaseOpExPerMW is the first-year operating cost per MW-DC (USD/MW),
	// escalated annually.
	BaseOpExPerMW float64 `json:"base_op_ex_per_mw" mapstructure:"base_op_ex_per_mw"`

	// ElectricityRate is the first-year energy price in USD/MWh.
	ElectricityRate float64 `json:"electricity_rate" mapstructure:"electricity_rate"`

	// PriceEscalation is the fractional annual escalator applied to both the
	// energy price and operating costs.
	PriceEscalation float64 `json:"price_escalation" mapstructure:"price_escalation"`

	// ITCRate is the investment-tax-credit fraction of total CapEx, returned
	// once in the first operating year.
	ITCRate float64 `json:"itc_rate" mapstructure:"itc_rate"`

	// NYSunIncentivePerWatt is the NY-Sun upfront incentive in USD per watt
	// DC, received at the start of construction.
	NYSunIncentivePerWatt float64 `json:"ny_sun_incentive_per_watt" mapstructure:"ny_sun_incentive_per_watt"`
}

// DefaultSystemParameters returns the baseline system assumptions.
// Deployments can override any of these through configuration.
func DefaultSystemParameters() SystemParameters {
	return SystemParameters{
		CapacityFactor:  14,
		SystemSize:      3,
		ACSystemSize:    2.4,
		ProjectLength:   25,
		DegradationRate: 0.005,
		PipelineSize:    10,
	}
}

// DefaultFinancialParameters returns the baseline financial assumptions.
func DefaultFinancialParameters() FinancialParameters {
	return FinancialParameters{
		BaseCaseCapExPerMW:    1700000,
		BaseOpExPerMW:         12500,
		ElectricityRate:       140,
		PriceEscalation:       0.02,
		ITCRate:               0.30,
		NYSunIncentivePerWatt: 0.17,
	}
}
