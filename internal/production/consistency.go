package production

import (
	"fmt"
	"math"
)

// Correction records one value changed by Repair.
type Correction struct {
	Floor Floor
	Field string
	From  int
	To    int
}

func (c Correction) String() string {
	return fmt.Sprintf("%s.%s: %d -> %d", c.Floor, c.Field, c.From, c.To)
}

// Repair clamps invariant violations in the ledger and returns what it
// changed. It is deterministic and idempotent: a second run returns nothing.
func (a *Article) Repair() []Correction {
	var out []Correction
	fix := func(f Floor, field string, p *int, v int) {
		if *p == v {
			return
		}
		out = append(out, Correction{Floor: f, Field: field, From: *p, To: v})
		*p = v
	}

	for _, f := range a.Flow.Floors {
		e, ok := a.Ledger[f]
		if !ok {
			continue
		}
		c := e.Base()
		if !a.allowsOverproduction(f) {
			if c.Transferred > c.Received {
				fix(f, "transferred", &c.Transferred, c.Received)
			}
			if c.Completed > c.Received {
				fix(f, "completed", &c.Completed, c.Received)
			}
		}

		g, grading := e.(*GradingEntry)
		if grading {
			fix(f, "m1Transferred", &g.M1Transferred, min(g.M1Transferred, c.Transferred))
			q := fitQuality([4]int{g.M1Quantity, g.M2Quantity, g.M3Quantity, g.M4Quantity}, g.M1Transferred, g.Received)
			fix(f, "m1Quantity", &g.M1Quantity, q[0])
			fix(f, "m2Quantity", &g.M2Quantity, q[1])
			fix(f, "m3Quantity", &g.M3Quantity, q[2])
			fix(f, "m4Quantity", &g.M4Quantity, q[3])
			fix(f, "m1Remaining", &g.M1Remaining, max(0, g.M1Quantity-g.M1Transferred))
			fix(f, "m2Remaining", &g.M2Remaining, max(0, g.M2Quantity-g.M2Transferred))
		}
		fix(f, "remaining", &c.Remaining, a.remainingFor(f, e))
	}

	if len(out) > 0 {
		a.refresh()
	}
	return out
}

// fitQuality makes an M1-M4 split fit into limit units while keeping at least
// m1Shipped units in M1, since those already left the floor.
func fitQuality(q [4]int, m1Shipped, limit int) [4]int {
	if q[0] < m1Shipped {
		q[0] = m1Shipped
	}
	if q[0]+q[1]+q[2]+q[3] <= limit {
		return q
	}
	if scaled := rescale(q, limit); scaled[0] >= m1Shipped {
		return scaled
	}
	out := rescale([4]int{0, q[1], q[2], q[3]}, limit-m1Shipped)
	out[0] = m1Shipped
	return out
}

// rescale shrinks q proportionally so its sum does not exceed limit. Rounding
// overshoot is taken from the largest bucket so the result always fits.
func rescale(q [4]int, limit int) [4]int {
	total := 0
	for _, v := range q {
		total += v
	}
	if total <= limit || total == 0 {
		return q
	}
	var out [4]int
	if limit <= 0 {
		return out
	}
	sum := 0
	for i, v := range q {
		out[i] = int(math.Round(float64(v) * float64(limit) / float64(total)))
		sum += out[i]
	}
	for sum > limit {
		big := 0
		for i := range out {
			if out[i] > out[big] {
				big = i
			}
		}
		out[big]--
		sum--
	}
	return out
}
