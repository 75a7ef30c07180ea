package production

import (
	"strings"
	"time"
)

type Status string

const (
	StatusPending    Status = "Pending"
	StatusInProgress Status = "In Progress"
	StatusCompleted  Status = "Completed"
)

type Priority string

const (
	PriorityLow    Priority = "Low"
	PriorityNormal Priority = "Normal"
	PriorityHigh   Priority = "High"
	PriorityUrgent Priority = "Urgent"
)

func ParsePriority(s string) Priority {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "low":
		return PriorityLow
	case "high":
		return PriorityHigh
	case "urgent":
		return PriorityUrgent
	default:
		return PriorityNormal
	}
}

// Article is one production lot moving through its floor flow.
type Article struct {
	ID                    string
	MerchantID            string
	ArticleNumber         string
	OrderID               string
	PlannedQuantity       int
	LinkingType           LinkingType
	Priority              Priority
	Status                Status
	Progress              int
	Flow                  Flow
	Ledger                Ledger
	FinalQualityConfirmed bool
	FinalQualityRemarks   string
	// Version is the optimistic concurrency token checked by storage.
	Version   int
	CreatedAt time.Time
	UpdatedAt time.Time
}

type NewArticleParams struct {
	ID              string
	MerchantID      string
	ArticleNumber   string
	OrderID         string
	PlannedQuantity int
	LinkingType     LinkingType
	Priority        Priority
}

// NewArticle builds an article with an entry per floor of flow. The first
// floor receives the planned quantity.
func NewArticle(p NewArticleParams, flow Flow) (*Article, Mutation, error) {
	const op = "create article"
	var m Mutation
	if p.PlannedQuantity <= 0 {
		return nil, m, validationErr(op, FloorUnknown, "planned quantity must be positive, got %d", p.PlannedQuantity)
	}
	if len(flow.Floors) == 0 {
		return nil, m, stateErr(op, FloorUnknown, "article %q has an empty floor flow", p.ArticleNumber)
	}
	if p.Priority == "" {
		p.Priority = PriorityNormal
	}
	if p.LinkingType == "" {
		p.LinkingType = LinkingManual
	}

	ledger := make(Ledger, len(flow.Floors))
	for _, f := range flow.Floors {
		ledger[f] = NewEntry(f)
	}
	first := ledger[flow.First()].Base()
	first.Received = p.PlannedQuantity
	first.Remaining = p.PlannedQuantity

	a := &Article{
		ID:              p.ID,
		MerchantID:      p.MerchantID,
		ArticleNumber:   p.ArticleNumber,
		OrderID:         p.OrderID,
		PlannedQuantity: p.PlannedQuantity,
		LinkingType:     p.LinkingType,
		Priority:        p.Priority,
		Status:          StatusPending,
		Flow:            Flow{Floors: append([]Floor(nil), flow.Floors...), Source: flow.Source},
		Ledger:          ledger,
	}
	if g, ok := ledger.Grading(flow.First()); ok {
		g.refreshQualityRemaining()
	}
	m.event(AuditEvent{
		Action:   ActionArticleCreated,
		Floor:    flow.First(),
		Quantity: p.PlannedQuantity,
		NewValue: p.PlannedQuantity,
	})
	return a, m, nil
}

// Clone returns a deep copy. Operations run on a clone so a rejected
// operation leaves the original untouched.
func (a *Article) Clone() *Article {
	c := *a
	c.Flow = Flow{Floors: append([]Floor(nil), a.Flow.Floors...), Source: a.Flow.Source}
	c.Ledger = a.Ledger.Clone()
	return &c
}

func (a *Article) isFirst(f Floor) bool {
	return f == a.Flow.First()
}

// entry returns the ledger entry of f, creating it if the flow lists f but the
// stored ledger predates it.
func (a *Article) entry(op string, f Floor) (Entry, error) {
	if !a.Flow.Contains(f) {
		return nil, stateErr(op, f, "floor is not part of the article flow %v", a.Flow.Names())
	}
	if a.Ledger == nil {
		a.Ledger = make(Ledger)
	}
	e, ok := a.Ledger[f]
	if !ok {
		e = NewEntry(f)
		a.Ledger[f] = e
	}
	return e, nil
}

func (a *Article) grading(op string, f Floor) (*GradingEntry, error) {
	e, err := a.entry(op, f)
	if err != nil {
		return nil, err
	}
	g, ok := e.(*GradingEntry)
	if !ok {
		return nil, stateErr(op, f, "not a grading floor")
	}
	return g, nil
}

// remainingFor is the single definition of an entry's remaining counter.
func (a *Article) remainingFor(f Floor, e Entry) int {
	if g, ok := e.(*GradingEntry); ok {
		return max(0, g.M1Quantity-g.M1Transferred)
	}
	c := e.Base()
	if a.isFirst(f) {
		return max(0, c.Received-c.Completed)
	}
	return max(0, c.Received-c.Transferred)
}

func (a *Article) refreshRemaining(f Floor, e Entry) {
	if g, ok := e.(*GradingEntry); ok {
		g.refreshQualityRemaining()
		return
	}
	e.Base().Remaining = a.remainingFor(f, e)
}

// refresh recomputes derived fields after a mutation.
func (a *Article) refresh() {
	a.Progress = a.ComputeProgress()
	a.Status = a.deriveStatus()
}

func (a *Article) deriveStatus() Status {
	last := a.Ledger.Counters(a.Flow.Last())
	if last.Received > 0 && last.Completed >= last.Received {
		return StatusCompleted
	}
	for _, f := range a.Flow.Floors {
		c := a.Ledger.Counters(f)
		if c.Completed > 0 || c.Transferred > 0 {
			return StatusInProgress
		}
	}
	return StatusPending
}
