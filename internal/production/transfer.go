package production

// Transfer moves quantity from floor from to the next floor of the flow. A nil
// qty transfers everything currently transferable.
func (a *Article) Transfer(from Floor, qty *int) (Mutation, error) {
	const op = "transfer"
	var m Mutation

	src, err := a.entry(op, from)
	if err != nil {
		return m, err
	}
	to, ok := a.Flow.Next(from)
	if !ok {
		return m, stateErr(op, from, "terminal floor has no next floor")
	}
	dst, err := a.entry(op, to)
	if err != nil {
		return m, err
	}
	if qty != nil && *qty <= 0 {
		return m, validationErr(op, from, "transfer quantity must be positive, got %d", *qty)
	}

	var (
		moved   int
		quality *QualityBreakdown
		status  string
	)
	prevReceived := dst.Base().Received

	switch s := src.(type) {
	case *GradingEntry:
		if !s.GradingComplete() {
			return m, stateErr(op, from, "grading incomplete: %d of %d completed units graded, record grading first", s.Categorized(), s.Completed)
		}
		ceiling := max(0, s.M1Quantity-s.M1Transferred)
		if moved, err = pick(op, from, qty, ceiling, "m1 remaining"); err != nil {
			return m, err
		}
		s.M1Transferred += moved
		s.Transferred += moved
		dst.Base().Received += moved
		if s.Completed < s.Transferred {
			s.Completed = s.Transferred
		}
		quality = &QualityBreakdown{M1: s.M1Quantity, M2: s.M2Quantity, M3: s.M3Quantity, M4: s.M4Quantity}
		status = GradeM1.Label()

	default:
		c := s.Base()
		if a.allowsOverproduction(from) {
			ceiling := max(0, c.Completed-c.Transferred)
			if moved, err = pick(op, from, qty, ceiling, "completed"); err != nil {
				return m, err
			}
			c.Transferred += moved
			// The next floor mirrors everything shipped from the first floor,
			// so overproduction propagates. Repair-loop receipts are kept.
			d := dst.Base()
			d.Received = c.Transferred + d.RepairReceived
		} else {
			ceiling := min(max(0, c.Completed-c.Transferred), a.remainingFor(from, src))
			if moved, err = pick(op, from, qty, ceiling, "completed and remaining"); err != nil {
				return m, err
			}
			c.Transferred += moved
			dst.Base().Received += moved
		}
	}

	a.refreshRemaining(from, src)
	a.refreshRemaining(to, dst)
	a.refresh()

	m.event(AuditEvent{
		Action:        ActionTransfer,
		Floor:         from,
		FromFloor:     from,
		ToFloor:       to,
		Quantity:      moved,
		PreviousValue: prevReceived,
		NewValue:      dst.Base().Received,
		QualityStatus: status,
		Quality:       quality,
	})
	return m, nil
}

// pick resolves the requested quantity against a ceiling.
func pick(op string, f Floor, qty *int, ceiling int, what string) (int, error) {
	if qty == nil {
		if ceiling <= 0 {
			return 0, validationErr(op, f, "nothing to transfer (%s is 0)", what)
		}
		return ceiling, nil
	}
	if *qty > ceiling {
		return 0, validationErr(op, f, "quantity %d exceeds transferable %d (%s)", *qty, ceiling, what)
	}
	return *qty, nil
}
