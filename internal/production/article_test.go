package production

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewArticle(t *testing.T) {
	a, m, err := NewArticle(NewArticleParams{ArticleNumber: "SW-1", PlannedQuantity: 500}, FallbackFlow(LinkingManual))
	require.NoError(t, err)

	assert.Equal(t, 500, a.Ledger.Counters(FloorKnitting).Received)
	assert.Equal(t, 500, a.Ledger.Counters(FloorKnitting).Remaining)
	assert.Len(t, a.Ledger, len(a.Flow.Floors))
	assert.Equal(t, PriorityNormal, a.Priority)
	assert.Equal(t, StatusPending, a.Status)

	_, ok := a.Ledger.Grading(FloorChecking)
	assert.True(t, ok)
	_, ok = a.Ledger.Standard(FloorChecking)
	assert.False(t, ok)
	_, ok = a.Ledger.Standard(FloorLinking)
	assert.True(t, ok)

	require.Len(t, m.Events, 1)
	assert.Equal(t, ActionArticleCreated, m.Events[0].Action)
	checkInvariants(t, a)
}

func TestNewArticle_Rejects(t *testing.T) {
	_, _, err := NewArticle(NewArticleParams{PlannedQuantity: 0}, FallbackFlow(LinkingManual))
	assert.ErrorIs(t, err, ErrValidation)

	_, _, err = NewArticle(NewArticleParams{PlannedQuantity: 10}, Flow{})
	assert.ErrorIs(t, err, ErrState)
}

func TestClone_IsDeep(t *testing.T) {
	a := newTestArticle(t, 100, LinkingManual)
	c := a.Clone()
	mustDo(t)(c.UpdateCompleted(FloorKnitting, 50))
	c.Flow.Floors[0] = FloorDispatch

	assert.Equal(t, 0, a.Ledger.Counters(FloorKnitting).Completed)
	assert.Equal(t, FloorKnitting, a.Flow.First())
}

func TestLedgerJSON_KeepsVariants(t *testing.T) {
	a := newTestArticle(t, 100, LinkingAuto)
	mustDo(t)(a.UpdateCompleted(FloorKnitting, 100))
	mustDo(t)(a.Transfer(FloorKnitting, nil))
	mustDo(t)(a.UpdateCompleted(FloorChecking, 100))
	mustDo(t)(a.RecordGrading(FloorChecking, GradingInput{M1: 90, M2: 6, M3: 3, M4: 1}))

	data, err := json.Marshal(a.Ledger)
	require.NoError(t, err)
	assert.Contains(t, string(data), `"Checking"`)

	var back Ledger
	require.NoError(t, json.Unmarshal(data, &back))
	assert.Equal(t, a.Ledger, back)

	flowData, err := json.Marshal(a.Flow)
	require.NoError(t, err)
	var flow Flow
	require.NoError(t, json.Unmarshal(flowData, &flow))
	assert.Equal(t, a.Flow, flow)

	assert.Error(t, json.Unmarshal([]byte(`{"Embroidery":{}}`), &back))
}

func TestFloorStatuses(t *testing.T) {
	a := newTestArticle(t, 200, LinkingAuto)
	mustDo(t)(a.UpdateCompleted(FloorKnitting, 150))

	st := a.FloorStatuses()
	require.Len(t, st, len(a.Flow.Floors))
	assert.Equal(t, FloorKnitting, st[0].Floor)
	assert.Equal(t, 75.0, st[0].CompletionRate)
	assert.True(t, st[1].Grading)
	assert.Equal(t, RepairNotRequired, st[1].RepairStatus)
	assert.Equal(t, 0.0, st[1].CompletionRate)
}

func TestDeriveStatus(t *testing.T) {
	a := newTestArticle(t, 10, LinkingAuto)
	assert.Equal(t, StatusPending, a.Status)
	mustDo(t)(a.UpdateCompleted(FloorKnitting, 10))
	assert.Equal(t, StatusInProgress, a.Status)

	for _, f := range a.Flow.Floors[:len(a.Flow.Floors)-1] {
		if a.Ledger.Counters(f).Completed == 0 {
			mustDo(t)(a.UpdateCompleted(f, a.Ledger.Counters(f).Received))
		}
		if f.IsGrading() {
			mustDo(t)(a.RecordGrading(f, GradingInput{M1: a.Ledger.Counters(f).Completed}))
		}
		mustDo(t)(a.Transfer(f, nil))
	}
	mustDo(t)(a.UpdateCompleted(FloorDispatch, 10))
	assert.Equal(t, StatusCompleted, a.Status)
	assert.Equal(t, 100, a.Progress)
	checkInvariants(t, a)
}
