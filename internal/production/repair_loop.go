package production

import "fmt"

// RepairTransfer sends repairable (M2) units from grading floor from back to
// an earlier floor for rework. target defaults to the floor just before from;
// qty defaults to the full M2 quantity.
func (a *Article) RepairTransfer(from Floor, qty *int, target *Floor) (Mutation, error) {
	const op = "repair transfer"
	var m Mutation

	g, err := a.grading(op, from)
	if err != nil {
		return m, err
	}
	srcIdx := a.Flow.Index(from)
	if srcIdx <= 0 {
		return m, stateErr(op, from, "grading floor has no earlier floor to repair on")
	}

	to, _ := a.Flow.Previous(from)
	if target != nil {
		idx := a.Flow.Index(*target)
		if idx < 0 {
			return m, validationErr(op, from, "target %s is not part of the article flow", *target)
		}
		if idx >= srcIdx {
			return m, validationErr(op, from, "target %s must be earlier than %s", *target, from)
		}
		to = *target
	}

	n := g.M2Quantity
	if qty != nil {
		n = *qty
	}
	if n <= 0 {
		return m, validationErr(op, from, "repair quantity must be positive, got %d", n)
	}
	if n > g.M2Quantity {
		return m, validationErr(op, from, "repair quantity %d exceeds m2 %d", n, g.M2Quantity)
	}

	dst, err := a.entry(op, to)
	if err != nil {
		return m, err
	}

	prevM2 := g.M2Quantity
	g.M2Quantity -= n
	// Audit trail only: the units already left m2 above.
	g.M2Transferred += n
	if g.M2Quantity > 0 {
		g.RepairStatus = RepairInReview
	} else {
		g.RepairStatus = RepairNotRequired
	}
	g.refreshQualityRemaining()

	d := dst.Base()
	d.Received += n
	d.RepairReceived += n
	a.refreshRemaining(to, dst)
	a.refresh()

	m.event(AuditEvent{
		Action:        ActionRepairStart,
		Floor:         from,
		FromFloor:     from,
		ToFloor:       to,
		Quantity:      n,
		PreviousValue: prevM2,
		NewValue:      g.M2Quantity,
		QualityStatus: GradeM2.Label(),
		Remarks:       fmt.Sprintf("%d repairable units sent from %s to %s", n, from, to),
	})
	return m, nil
}
