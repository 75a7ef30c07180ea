package production

import "math"

// FloorStatus is a read-only snapshot of one floor's ledger entry.
type FloorStatus struct {
	Floor          Floor
	Grading        bool
	Received       int
	Completed      int
	Transferred    int
	Remaining      int
	RepairReceived int
	CompletionRate float64

	M1Quantity    int
	M2Quantity    int
	M3Quantity    int
	M4Quantity    int
	M1Transferred int
	M1Remaining   int
	M2Transferred int
	M2Remaining   int
	RepairStatus  RepairStatus
	RepairRemarks string
}

// FloorStatuses returns one snapshot per floor in flow order.
func (a *Article) FloorStatuses() []FloorStatus {
	out := make([]FloorStatus, 0, len(a.Flow.Floors))
	for _, f := range a.Flow.Floors {
		st := FloorStatus{Floor: f, Grading: f.IsGrading()}
		e, ok := a.Ledger[f]
		if !ok {
			out = append(out, st)
			continue
		}
		c := e.Base()
		st.Received = c.Received
		st.Completed = c.Completed
		st.Transferred = c.Transferred
		st.Remaining = c.Remaining
		st.RepairReceived = c.RepairReceived
		st.CompletionRate = completionRate(c.Completed, c.Received)
		if g, ok := e.(*GradingEntry); ok {
			st.M1Quantity = g.M1Quantity
			st.M2Quantity = g.M2Quantity
			st.M3Quantity = g.M3Quantity
			st.M4Quantity = g.M4Quantity
			st.M1Transferred = g.M1Transferred
			st.M1Remaining = g.M1Remaining
			st.M2Transferred = g.M2Transferred
			st.M2Remaining = g.M2Remaining
			st.RepairStatus = g.RepairStatus
			st.RepairRemarks = g.RepairRemarks
		}
		out = append(out, st)
	}
	return out
}

func completionRate(completed, received int) float64 {
	if received <= 0 {
		return 0
	}
	return math.Round(float64(completed)/float64(received)*10000) / 100
}
