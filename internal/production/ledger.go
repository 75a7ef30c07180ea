package production

import (
	"encoding/json"
	"fmt"
)

// Counters are carried by every ledger entry.
type Counters struct {
	Received    int `json:"received"`
	Completed   int `json:"completed"`
	Transferred int `json:"transferred"`
	Remaining   int `json:"remaining"`
	// RepairReceived counts units that arrived through the repair loop rather
	// than through forward transfer. They are also included in Received.
	RepairReceived int `json:"repairReceived"`
}

// Entry is the per-floor ledger record. It is either a *StandardEntry or a
// *GradingEntry; which one is decided by Floor.IsGrading.
type Entry interface {
	Base() *Counters
	clone() Entry
}

type StandardEntry struct {
	Counters
}

func (e *StandardEntry) Base() *Counters { return &e.Counters }

func (e *StandardEntry) clone() Entry {
	c := *e
	return &c
}

type RepairStatus string

const (
	RepairNotRequired RepairStatus = "Not Required"
	RepairInReview    RepairStatus = "In Review"
	RepairInRepair    RepairStatus = "In Repair"
	RepairCompleted   RepairStatus = "Completed"
)

func ParseRepairStatus(s string) (RepairStatus, bool) {
	switch normalizeName(s) {
	case "not required", "none":
		return RepairNotRequired, true
	case "in review", "review":
		return RepairInReview, true
	case "in repair", "repair":
		return RepairInRepair, true
	case "completed", "done":
		return RepairCompleted, true
	}
	return "", false
}

// GradingEntry is the ledger record of a grading floor.
type GradingEntry struct {
	Counters
	M1Quantity    int          `json:"m1Quantity"`
	M2Quantity    int          `json:"m2Quantity"`
	M3Quantity    int          `json:"m3Quantity"`
	M4Quantity    int          `json:"m4Quantity"`
	M1Transferred int          `json:"m1Transferred"`
	M1Remaining   int          `json:"m1Remaining"`
	M2Transferred int          `json:"m2Transferred"`
	M2Remaining   int          `json:"m2Remaining"`
	RepairStatus  RepairStatus `json:"repairStatus"`
	RepairRemarks string       `json:"repairRemarks,omitempty"`
}

func (e *GradingEntry) Base() *Counters { return &e.Counters }

func (e *GradingEntry) clone() Entry {
	c := *e
	return &c
}

// QualityTotal is m1+m2+m3+m4.
func (e *GradingEntry) QualityTotal() int {
	return e.M1Quantity + e.M2Quantity + e.M3Quantity + e.M4Quantity
}

// Categorized counts every unit that has been graded on this floor, including
// M2 units that already left through the repair loop.
func (e *GradingEntry) Categorized() int {
	return e.QualityTotal() + e.M2Transferred
}

// GradingComplete reports whether all completed units carry a grade.
func (e *GradingEntry) GradingComplete() bool {
	return e.Categorized() == e.Completed
}

func (e *GradingEntry) refreshQualityRemaining() {
	e.M1Remaining = max(0, e.M1Quantity-e.M1Transferred)
	e.M2Remaining = max(0, e.M2Quantity-e.M2Transferred)
	e.Remaining = e.M1Remaining
}

// NewEntry returns an empty entry of the right variant for f.
func NewEntry(f Floor) Entry {
	if f.IsGrading() {
		return &GradingEntry{RepairStatus: RepairNotRequired}
	}
	return &StandardEntry{}
}

// Ledger holds one entry per floor of an article's flow.
type Ledger map[Floor]Entry

func (l Ledger) Entry(f Floor) (Entry, bool) {
	e, ok := l[f]
	return e, ok
}

func (l Ledger) Standard(f Floor) (*StandardEntry, bool) {
	e, ok := l[f].(*StandardEntry)
	return e, ok
}

func (l Ledger) Grading(f Floor) (*GradingEntry, bool) {
	e, ok := l[f].(*GradingEntry)
	return e, ok
}

// Counters returns a copy of the shared counters for f, zero if absent.
func (l Ledger) Counters(f Floor) Counters {
	if e, ok := l[f]; ok {
		return *e.Base()
	}
	return Counters{}
}

func (l Ledger) Clone() Ledger {
	out := make(Ledger, len(l))
	for f, e := range l {
		out[f] = e.clone()
	}
	return out
}

func (l Ledger) MarshalJSON() ([]byte, error) {
	out := make(map[string]Entry, len(l))
	for f, e := range l {
		out[f.String()] = e
	}
	return json.Marshal(out)
}

func (l *Ledger) UnmarshalJSON(data []byte) error {
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	out := make(Ledger, len(raw))
	for name, msg := range raw {
		f, ok := ParseFloor(name)
		if !ok {
			return fmt.Errorf("ledger: unknown floor %q", name)
		}
		e := NewEntry(f)
		if err := json.Unmarshal(msg, e); err != nil {
			return fmt.Errorf("ledger: decode %s: %w", f, err)
		}
		out[f] = e
	}
	*l = out
	return nil
}
