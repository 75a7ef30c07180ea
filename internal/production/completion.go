package production

import "fmt"

// allowsOverproduction isolates the first-floor exception: the opening floor
// of a flow (Knitting) may complete and ship more than it received, every
// other floor is capped by its received quantity.
//
// TODO: confirm with production planning whether first-floor overproduction
// should be capped (e.g. at a percentage of planned quantity).
func (a *Article) allowsOverproduction(f Floor) bool {
	return a.isFirst(f)
}

// UpdateCompleted sets the completed counter of floor f.
func (a *Article) UpdateCompleted(f Floor, qty int) (Mutation, error) {
	const op = "update completed"
	var m Mutation

	e, err := a.entry(op, f)
	if err != nil {
		return m, err
	}
	if qty < 0 {
		return m, validationErr(op, f, "completed quantity must not be negative, got %d", qty)
	}
	c := e.Base()
	if !a.allowsOverproduction(f) && qty > c.Received {
		return m, validationErr(op, f, "completed quantity %d exceeds received %d", qty, c.Received)
	}
	if g, ok := e.(*GradingEntry); ok {
		// Grading may be recorded before completion, so a mismatch is tolerated.
		if total := g.Categorized(); total > 0 && total != qty {
			m.warn(fmt.Sprintf("%s: completed %d does not match graded total %d", f, qty, total))
		}
	}

	prev := c.Completed
	c.Completed = qty
	a.refreshRemaining(f, e)
	a.refresh()

	m.event(AuditEvent{
		Action:        ActionProductionUpdate,
		Floor:         f,
		Quantity:      qty - prev,
		PreviousValue: prev,
		NewValue:      qty,
	})
	return m, nil
}
