package risk

// GoNoGo converts an approval-risk rating into a milestone-advancement
// probability by linear interpolation between certainty and the worst-case
// floor:
//
//	probability = 1 - ((1 - worstCase) / 14) * (approvalRisk - 1)
//
// approvalRisk = 1  → 1.0 (certain advancement)
// approvalRisk = 15 → worstCase
//
// No clamping is performed: callers guarantee approvalRisk ∈ [1, 15], and
// values outside that range produce out-of-[worstCase, 1] results.  That is a
// caller error, not a solver error.
func GoNoGo(approvalRisk int, worstCase float64) float64 {
	return 1 - ((1-worstCase)/float64(MaxApprovalRisk-1))*float64(approvalRisk-1)
}

// CumulativeProbability returns the product of all categories' go/no-go
// probabilities: the fraction of a pipeline of identical projects expected to
// survive every development milestone.  An empty set yields 1.0.
//
// The projection model applies this single composite probability uniformly
// from the construction year onward; it deliberately does not stage each
// category's failure at a distinct point in time.  The original financial
// model documents this as a known simplification and downstream consumers
// depend on it, so it is preserved here.
func CumulativeProbability(categories []Category) float64 {
	p := 1.0
	for _, c := range categories {
		p *= c.GoNoGoProbability()
	}
	return p
}
