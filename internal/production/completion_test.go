package production

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUpdateCompleted_FirstFloorOverproduction(t *testing.T) {
	a := newTestArticle(t, 1000, LinkingManual)

	m := mustDo(t)(a.UpdateCompleted(FloorKnitting, 1050))
	c := a.Ledger.Counters(FloorKnitting)
	assert.Equal(t, 1050, c.Completed)
	assert.Equal(t, 0, c.Remaining)
	require.Len(t, m.Events, 1)
	assert.Equal(t, ActionProductionUpdate, m.Events[0].Action)
	assert.Equal(t, 1050, m.Events[0].Quantity)

	m = mustDo(t)(a.UpdateCompleted(FloorKnitting, 1000))
	assert.Equal(t, -50, m.Events[0].Quantity)
	assert.Equal(t, 1050, m.Events[0].PreviousValue)
}

func TestUpdateCompleted_Bounds(t *testing.T) {
	a := newTestArticle(t, 100, LinkingManual)
	mustDo(t)(a.UpdateCompleted(FloorKnitting, 100))
	mustDo(t)(a.Transfer(FloorKnitting, ptr(60)))

	tests := []struct {
		name  string
		floor Floor
		qty   int
		kind  error
	}{
		{"negative", FloorKnitting, -1, ErrValidation},
		{"above received", FloorLinking, 61, ErrValidation},
		{"grading above received", FloorChecking, 1, ErrValidation},
		{"not in flow", FloorSecondaryChecking, 1, ErrState},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			before := a.Clone()
			_, err := a.UpdateCompleted(tt.floor, tt.qty)
			assert.ErrorIs(t, err, tt.kind)
			assert.Equal(t, before, a)
		})
	}

	mustDo(t)(a.UpdateCompleted(FloorLinking, 60))
	assert.Equal(t, 60, a.Ledger.Counters(FloorLinking).Completed)
}

func TestUpdateCompleted_GradingMismatchWarns(t *testing.T) {
	a := newTestArticle(t, 100, LinkingAuto)
	mustDo(t)(a.UpdateCompleted(FloorKnitting, 100))
	mustDo(t)(a.Transfer(FloorKnitting, nil))
	mustDo(t)(a.RecordGrading(FloorChecking, GradingInput{M1: 40, M2: 5}))

	m := mustDo(t)(a.UpdateCompleted(FloorChecking, 50))
	assert.Len(t, m.Warnings, 1)
	assert.Equal(t, 50, a.Ledger.Counters(FloorChecking).Completed)

	m = mustDo(t)(a.UpdateCompleted(FloorChecking, 45))
	assert.Empty(t, m.Warnings)
}
