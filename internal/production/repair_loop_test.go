package production

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// checkingWithM2 returns a manual-linking article graded 80/10/5/5 at Checking.
func checkingWithM2(t *testing.T) *Article {
	t.Helper()
	a := newTestArticle(t, 100, LinkingManual)
	mustDo(t)(a.UpdateCompleted(FloorKnitting, 100))
	mustDo(t)(a.Transfer(FloorKnitting, nil))
	mustDo(t)(a.UpdateCompleted(FloorLinking, 100))
	mustDo(t)(a.Transfer(FloorLinking, nil))
	mustDo(t)(a.UpdateCompleted(FloorChecking, 100))
	mustDo(t)(a.RecordGrading(FloorChecking, GradingInput{M1: 80, M2: 10, M3: 5, M4: 5}))
	return a
}

func TestRepairTransfer_SkipsToEarlierTargetFloor(t *testing.T) {
	a := checkingWithM2(t)
	knitBefore := a.Ledger.Counters(FloorKnitting)

	m := mustDo(t)(a.RepairTransfer(FloorChecking, ptr(5), ptr(FloorKnitting)))

	g, _ := a.Ledger.Grading(FloorChecking)
	assert.Equal(t, 5, g.M2Quantity)
	assert.Equal(t, 5, g.M2Transferred)
	assert.Equal(t, 0, g.M2Remaining)
	assert.Equal(t, RepairInReview, g.RepairStatus)

	knit := a.Ledger.Counters(FloorKnitting)
	assert.Equal(t, knitBefore.Received+5, knit.Received)
	assert.Equal(t, knitBefore.RepairReceived+5, knit.RepairReceived)
	assert.Equal(t, 0, a.Ledger.Counters(FloorLinking).RepairReceived)

	require.Len(t, m.Events, 1)
	assert.Equal(t, ActionRepairStart, m.Events[0].Action)
	assert.Equal(t, FloorKnitting, m.Events[0].ToFloor)

	for _, target := range []Floor{FloorChecking, FloorWashing, FloorDispatch} {
		before := a.Clone()
		_, err := a.RepairTransfer(FloorChecking, ptr(1), ptr(target))
		assert.ErrorIs(t, err, ErrValidation, target.String())
		assert.Equal(t, before, a)
	}
	checkInvariants(t, a)
}

func TestRepairTransfer_Defaults(t *testing.T) {
	a := checkingWithM2(t)

	mustDo(t)(a.RepairTransfer(FloorChecking, nil, nil))
	g, _ := a.Ledger.Grading(FloorChecking)
	assert.Equal(t, 0, g.M2Quantity)
	assert.Equal(t, 10, g.M2Transferred)
	assert.Equal(t, RepairNotRequired, g.RepairStatus)

	linking := a.Ledger.Counters(FloorLinking)
	assert.Equal(t, 110, linking.Received)
	assert.Equal(t, 10, linking.RepairReceived)
	assert.Equal(t, 10, linking.Remaining)

	// units sent to repair still count as graded
	assert.True(t, g.GradingComplete())
	mustDo(t)(a.Transfer(FloorChecking, nil))

	_, err := a.RepairTransfer(FloorChecking, nil, nil)
	assert.ErrorIs(t, err, ErrValidation, "no m2 left")
	checkInvariants(t, a)
}

func TestRepairTransfer_RepairedUnitsFlowForwardAgain(t *testing.T) {
	a := checkingWithM2(t)
	mustDo(t)(a.RepairTransfer(FloorChecking, nil, nil))

	mustDo(t)(a.UpdateCompleted(FloorLinking, 110))
	mustDo(t)(a.Transfer(FloorLinking, nil))
	assert.Equal(t, 110, a.Ledger.Counters(FloorChecking).Received)

	mustDo(t)(a.UpdateCompleted(FloorChecking, 110))
	mustDo(t)(a.RecordGrading(FloorChecking, GradingInput{M1: 88, M2: 2, M3: 5, M4: 5}))
	g, _ := a.Ledger.Grading(FloorChecking)
	assert.True(t, g.GradingComplete())
	checkInvariants(t, a)
}

func TestRepairTransfer_Rejects(t *testing.T) {
	a := checkingWithM2(t)
	tests := []struct {
		name   string
		from   Floor
		qty    *int
		target *Floor
		kind   error
	}{
		{"more than m2", FloorChecking, ptr(11), nil, ErrValidation},
		{"zero", FloorChecking, ptr(0), nil, ErrValidation},
		{"target outside flow", FloorChecking, ptr(1), ptr(FloorSecondaryChecking), ErrValidation},
		{"non grading source", FloorLinking, ptr(1), nil, ErrState},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			before := a.Clone()
			_, err := a.RepairTransfer(tt.from, tt.qty, tt.target)
			assert.ErrorIs(t, err, tt.kind)
			assert.Equal(t, before, a)
		})
	}

	first, _, err := NewArticle(NewArticleParams{PlannedQuantity: 10}, Flow{Floors: []Floor{FloorChecking, FloorDispatch}})
	require.NoError(t, err)
	_, err = first.RepairTransfer(FloorChecking, nil, nil)
	assert.ErrorIs(t, err, ErrState)
}
