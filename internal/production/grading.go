package production

import "fmt"

// GradingInput carries a full M1-M4 split for one grading floor.
type GradingInput struct {
	M1, M2, M3, M4 int
	RepairStatus   *RepairStatus
	RepairRemarks  *string
}

func (in GradingInput) total() int {
	return in.M1 + in.M2 + in.M3 + in.M4
}

// RecordGrading writes the quality split of floor f.
func (a *Article) RecordGrading(f Floor, in GradingInput) (Mutation, error) {
	const op = "record grading"
	g, err := a.grading(op, f)
	if err != nil {
		return Mutation{}, err
	}
	if err := validateGrading(op, f, g, in); err != nil {
		return Mutation{}, err
	}
	if total := in.total(); total > g.Received {
		return Mutation{}, validationErr(op, f, "graded total %d exceeds received %d", total, g.Received)
	}
	m := a.applyGrading(f, g, in)
	a.refresh()
	return m, nil
}

// RecordInspection is the strict variant of RecordGrading: the split must
// account for exactly the inspected quantity, which becomes the floor's
// completed count (plus units already sent to repair).
func (a *Article) RecordInspection(f Floor, inspected int, in GradingInput) (Mutation, error) {
	const op = "record inspection"
	g, err := a.grading(op, f)
	if err != nil {
		return Mutation{}, err
	}
	if inspected < 0 {
		return Mutation{}, validationErr(op, f, "inspected quantity must not be negative, got %d", inspected)
	}
	if err := validateGrading(op, f, g, in); err != nil {
		return Mutation{}, err
	}
	if total := in.total(); total != inspected {
		return Mutation{}, validationErr(op, f, "graded total %d must equal inspected quantity %d", total, inspected)
	}
	completed := inspected + g.M2Transferred
	if completed > g.Received {
		return Mutation{}, validationErr(op, f, "inspected quantity %d exceeds received %d", completed, g.Received)
	}

	var m Mutation
	if prev := g.Completed; prev != completed {
		g.Completed = completed
		m.event(AuditEvent{
			Action:        ActionProductionUpdate,
			Floor:         f,
			Quantity:      completed - prev,
			PreviousValue: prev,
			NewValue:      completed,
		})
	}
	gm := a.applyGrading(f, g, in)
	m.Events = append(m.Events, gm.Events...)
	m.Warnings = append(m.Warnings, gm.Warnings...)
	a.refresh()
	return m, nil
}

func validateGrading(op string, f Floor, g *GradingEntry, in GradingInput) error {
	if in.M1 < 0 || in.M2 < 0 || in.M3 < 0 || in.M4 < 0 {
		return validationErr(op, f, "quality quantities must not be negative")
	}
	if in.M1 < g.M1Transferred {
		return validationErr(op, f, "m1 %d is below already transferred m1 %d", in.M1, g.M1Transferred)
	}
	return nil
}

func (a *Article) applyGrading(f Floor, g *GradingEntry, in GradingInput) Mutation {
	var m Mutation
	set := func(field *int, v int, grade Grade) {
		prev := *field
		if prev == v {
			return
		}
		*field = v
		m.event(AuditEvent{
			Action:        ActionQualityUpdate,
			Floor:         f,
			Quantity:      v - prev,
			PreviousValue: prev,
			NewValue:      v,
			QualityStatus: grade.Label(),
		})
	}
	set(&g.M1Quantity, in.M1, GradeM1)
	set(&g.M2Quantity, in.M2, GradeM2)
	set(&g.M3Quantity, in.M3, GradeM3)
	set(&g.M4Quantity, in.M4, GradeM4)

	statusChanged := in.RepairStatus != nil && *in.RepairStatus != g.RepairStatus
	remarksChanged := in.RepairRemarks != nil && *in.RepairRemarks != g.RepairRemarks
	if statusChanged {
		g.RepairStatus = *in.RepairStatus
	}
	if remarksChanged {
		g.RepairRemarks = *in.RepairRemarks
	}
	if statusChanged || remarksChanged {
		m.event(AuditEvent{
			Action:        ActionRepairStatus,
			Floor:         f,
			QualityStatus: string(g.RepairStatus),
			Remarks:       g.RepairRemarks,
		})
	}

	g.refreshQualityRemaining()
	if g.Completed > 0 && !g.GradingComplete() {
		m.warn(fmt.Sprintf("%s: graded %d of %d completed units", f, g.Categorized(), g.Completed))
	}
	return m
}

// M2Shift re-categorizes repairable units after rework on the same floor.
type M2Shift struct {
	FromM2 int
	ToM1   int
	ToM3   int
	ToM4   int
}

// ShiftM2 moves units out of M2 into M1, M3 or M4.
func (a *Article) ShiftM2(f Floor, s M2Shift) (Mutation, error) {
	const op = "shift m2"
	var m Mutation
	g, err := a.grading(op, f)
	if err != nil {
		return m, err
	}
	if s.FromM2 <= 0 || s.ToM1 < 0 || s.ToM3 < 0 || s.ToM4 < 0 {
		return m, validationErr(op, f, "shift quantities must be positive")
	}
	if sum := s.ToM1 + s.ToM3 + s.ToM4; sum != s.FromM2 {
		return m, validationErr(op, f, "destinations total %d must equal shifted m2 %d", sum, s.FromM2)
	}
	if s.FromM2 > g.M2Quantity {
		return m, validationErr(op, f, "cannot shift %d units, m2 holds %d", s.FromM2, g.M2Quantity)
	}

	g.M2Quantity -= s.FromM2
	move := func(field *int, n int, grade Grade) {
		if n == 0 {
			return
		}
		prev := *field
		*field += n
		m.event(AuditEvent{
			Action:        ActionM2Recategorize,
			Floor:         f,
			Quantity:      n,
			PreviousValue: prev,
			NewValue:      *field,
			QualityStatus: grade.Label(),
			Remarks:       fmt.Sprintf("%d units moved from %s", n, GradeM2.Label()),
		})
	}
	move(&g.M1Quantity, s.ToM1, GradeM1)
	move(&g.M3Quantity, s.ToM3, GradeM3)
	move(&g.M4Quantity, s.ToM4, GradeM4)

	g.refreshQualityRemaining()
	a.refresh()
	return m, nil
}

// ConfirmFinalQuality approves or rejects the article for the warehouse. It
// is checked against the last grading floor of the flow.
func (a *Article) ConfirmFinalQuality(confirmed bool, remarks string) (Mutation, error) {
	const op = "confirm final quality"
	var m Mutation
	f, ok := a.Flow.LastGrading()
	if !ok {
		return m, stateErr(op, FloorUnknown, "flow %v has no grading floor", a.Flow.Names())
	}
	g, err := a.grading(op, f)
	if err != nil {
		return m, err
	}
	if confirmed {
		if g.Completed == 0 {
			return m, stateErr(op, f, "no completed units to confirm")
		}
		if !g.GradingComplete() {
			return m, stateErr(op, f, "graded %d of %d completed units, categorize all units first", g.Categorized(), g.Completed)
		}
	}

	prev := boolInt(a.FinalQualityConfirmed)
	a.FinalQualityConfirmed = confirmed
	a.FinalQualityRemarks = remarks
	status := QualityRejected
	if confirmed {
		status = QualityApproved
	}
	m.event(AuditEvent{
		Action:        ActionFinalQuality,
		Floor:         f,
		Quantity:      g.M1Quantity,
		PreviousValue: prev,
		NewValue:      boolInt(confirmed),
		QualityStatus: status,
		Quality:       &QualityBreakdown{M1: g.M1Quantity, M2: g.M2Quantity, M3: g.M3Quantity, M4: g.M4Quantity},
		Remarks:       remarks,
	})
	a.refresh()
	return m, nil
}

func boolInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
