package production

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTransfer_GradedM1AfterAutoLinking(t *testing.T) {
	a := newTestArticle(t, 1000, LinkingAuto)
	require.False(t, a.Flow.Contains(FloorLinking))

	mustDo(t)(a.UpdateCompleted(FloorKnitting, 750))
	mustDo(t)(a.Transfer(FloorKnitting, ptr(750)))
	assert.Equal(t, 750, a.Ledger.Counters(FloorChecking).Received)

	mustDo(t)(a.UpdateCompleted(FloorChecking, 100))
	mustDo(t)(a.RecordGrading(FloorChecking, GradingInput{M1: 80, M2: 15, M3: 3, M4: 2}))

	m := mustDo(t)(a.Transfer(FloorChecking, nil))
	g, _ := a.Ledger.Grading(FloorChecking)
	assert.Equal(t, 80, g.M1Transferred)
	assert.Equal(t, 0, g.M1Remaining)
	assert.Equal(t, 0, g.Remaining)
	assert.Equal(t, 80, g.Transferred)
	assert.Equal(t, 80, a.Ledger.Counters(FloorWashing).Received)

	require.Len(t, m.Events, 1)
	ev := m.Events[0]
	assert.Equal(t, ActionTransfer, ev.Action)
	assert.Equal(t, 80, ev.Quantity)
	assert.Equal(t, FloorChecking, ev.FromFloor)
	assert.Equal(t, FloorWashing, ev.ToFloor)
	assert.Equal(t, &QualityBreakdown{M1: 80, M2: 15, M3: 3, M4: 2}, ev.Quality)
	checkInvariants(t, a)
}

func TestTransfer_FirstFloorOverproductionPropagates(t *testing.T) {
	a := newTestArticle(t, 1000, LinkingManual)
	mustDo(t)(a.UpdateCompleted(FloorKnitting, 1050))
	assert.Equal(t, 0, a.Ledger.Counters(FloorKnitting).Remaining)

	mustDo(t)(a.Transfer(FloorKnitting, ptr(1050)))
	assert.Equal(t, 1050, a.Ledger.Counters(FloorLinking).Received)
	assert.Equal(t, 1050, a.Ledger.Counters(FloorKnitting).Transferred)
	assert.Equal(t, 0, a.Ledger.Counters(FloorKnitting).Remaining)
	checkInvariants(t, a)
}

func TestTransfer_RejectsMoreThanM1Remaining(t *testing.T) {
	a := newTestArticle(t, 1000, LinkingAuto)
	mustDo(t)(a.UpdateCompleted(FloorKnitting, 100))
	mustDo(t)(a.Transfer(FloorKnitting, nil))
	mustDo(t)(a.UpdateCompleted(FloorChecking, 100))
	mustDo(t)(a.RecordGrading(FloorChecking, GradingInput{M1: 80, M2: 10, M3: 5, M4: 5}))

	before := a.Clone()
	_, err := a.Transfer(FloorChecking, ptr(90))
	assert.ErrorIs(t, err, ErrValidation)
	assert.Equal(t, before, a)
}

func TestTransfer_FirstFloorPartialTransfers(t *testing.T) {
	a := newTestArticle(t, 100, LinkingManual)
	mustDo(t)(a.UpdateCompleted(FloorKnitting, 70))
	mustDo(t)(a.Transfer(FloorKnitting, ptr(40)))
	mustDo(t)(a.Transfer(FloorKnitting, ptr(30)))

	assert.Equal(t, 70, a.Ledger.Counters(FloorLinking).Received)
	_, err := a.Transfer(FloorKnitting, ptr(1))
	assert.ErrorIs(t, err, ErrValidation)
	_, err = a.Transfer(FloorKnitting, nil)
	assert.ErrorIs(t, err, ErrValidation)
}

func TestTransfer_StandardFloorCeiling(t *testing.T) {
	a := newTestArticle(t, 100, LinkingManual)
	mustDo(t)(a.UpdateCompleted(FloorKnitting, 100))
	mustDo(t)(a.Transfer(FloorKnitting, nil))
	mustDo(t)(a.UpdateCompleted(FloorLinking, 60))

	_, err := a.Transfer(FloorLinking, ptr(61))
	assert.ErrorIs(t, err, ErrValidation)

	mustDo(t)(a.Transfer(FloorLinking, ptr(25)))
	mustDo(t)(a.Transfer(FloorLinking, nil))
	c := a.Ledger.Counters(FloorLinking)
	assert.Equal(t, 60, c.Transferred)
	assert.Equal(t, 40, c.Remaining)
	assert.Equal(t, 60, a.Ledger.Counters(FloorChecking).Received)

	_, err = a.Transfer(FloorLinking, nil)
	assert.ErrorIs(t, err, ErrValidation)
	checkInvariants(t, a)
}

func TestTransfer_RequiresCompleteGrading(t *testing.T) {
	a := newTestArticle(t, 100, LinkingAuto)
	mustDo(t)(a.UpdateCompleted(FloorKnitting, 100))
	mustDo(t)(a.Transfer(FloorKnitting, nil))
	mustDo(t)(a.UpdateCompleted(FloorChecking, 100))
	mustDo(t)(a.RecordGrading(FloorChecking, GradingInput{M1: 70, M2: 10}))

	_, err := a.Transfer(FloorChecking, ptr(10))
	assert.ErrorIs(t, err, ErrState)

	mustDo(t)(a.RecordGrading(FloorChecking, GradingInput{M1: 70, M2: 10, M3: 15, M4: 5}))
	mustDo(t)(a.Transfer(FloorChecking, ptr(10)))
	mustDo(t)(a.Transfer(FloorChecking, ptr(60)))

	g, _ := a.Ledger.Grading(FloorChecking)
	assert.Equal(t, 70, g.M1Transferred)
	_, err = a.Transfer(FloorChecking, nil)
	assert.ErrorIs(t, err, ErrValidation)
}

func TestTransfer_Rejects(t *testing.T) {
	a := newTestArticle(t, 100, LinkingAuto)
	mustDo(t)(a.UpdateCompleted(FloorKnitting, 100))

	_, err := a.Transfer(FloorDispatch, nil)
	assert.ErrorIs(t, err, ErrState)
	_, err = a.Transfer(FloorLinking, nil)
	assert.ErrorIs(t, err, ErrState)
	_, err = a.Transfer(FloorKnitting, ptr(0))
	assert.ErrorIs(t, err, ErrValidation)
	_, err = a.Transfer(FloorKnitting, ptr(-5))
	assert.ErrorIs(t, err, ErrValidation)
}
