package production

import "math"

// ComputeProgress returns the completion percentage of the article.
//
// The active floor is the last floor of the flow with completed units (the
// first floor if none). Every floor up to and including it contributes its
// M1 quantity at grading floors and its completed count elsewhere.
func (a *Article) ComputeProgress() int {
	if a.PlannedQuantity <= 0 || len(a.Flow.Floors) == 0 {
		return 0
	}
	active := 0
	for i := len(a.Flow.Floors) - 1; i >= 0; i-- {
		if a.Ledger.Counters(a.Flow.Floors[i]).Completed > 0 {
			active = i
			break
		}
	}

	sum := 0
	for _, f := range a.Flow.Floors[:active+1] {
		e, ok := a.Ledger[f]
		if !ok {
			continue
		}
		if g, ok := e.(*GradingEntry); ok {
			sum += g.M1Quantity
			continue
		}
		sum += e.Base().Completed
	}

	pct := int(math.Round(float64(sum) / float64(a.PlannedQuantity) * 100))
	return min(100, max(0, pct))
}
