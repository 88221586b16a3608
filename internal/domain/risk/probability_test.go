package risk

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestGoNoGo_Endpoints(t *testing.T) {
	for _, wc := range []float64{0, 0.25, 0.5, 0.9, 1} {
		assert.InDelta(t, 1.0, GoNoGo(MinApprovalRisk, wc), 1e-12,
			"minimum risk must be certain advancement (worst case %v)", wc)
		assert.InDelta(t, wc, GoNoGo(MaxApprovalRisk, wc), 1e-12,
			"maximum risk must hit the worst-case floor (worst case %v)", wc)
	}
}

func TestGoNoGo_MonotoneInRisk(t *testing.T) {
	const wc = 0.4
	prev := GoNoGo(MinApprovalRisk, wc)
	for ar := MinApprovalRisk + 1; ar <= MaxApprovalRisk; ar++ {
		cur := GoNoGo(ar, wc)
		assert.Less(t, cur, prev, "approval risk %d", ar)
		prev = cur
	}
}

func TestGoNoGo_MidpointInterpolation(t *testing.T) {
	// Risk 8 sits exactly halfway on the 1..15 scale.
	assert.InDelta(t, 0.7, GoNoGo(8, 0.4), 1e-12)
}

func TestCumulativeProbability(t *testing.T) {
	tests := []struct {
		name       string
		categories []Category
		want       float64
	}{
		{
			name:       "empty set passes everything",
			categories: nil,
			want:       1.0,
		},
		{
			name: "single certain category",
			categories: []Category{
				{Name: "Site Control", ApprovalRisk: 1, WorstCaseScenario: 0.5},
			},
			want: 1.0,
		},
		{
			name: "product of two floors",
			categories: []Category{
				{Name: "Permitting", ApprovalRisk: 15, WorstCaseScenario: 0.4},
				{Name: "Interconnection", ApprovalRisk: 15, WorstCaseScenario: 0.5},
			},
			want: 0.2,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.InDelta(t, tt.want, CumulativeProbability(tt.categories), 1e-12)
		})
	}
}

func TestCumulativeProbability_DefaultSetInUnitInterval(t *testing.T) {
	p := CumulativeProbability(DefaultCategories())
	assert.Greater(t, p, 0.0)
	assert.LessOrEqual(t, p, 1.0)
}
