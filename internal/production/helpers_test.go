package production

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func ptr[T any](v T) *T { return &v }

func newTestArticle(t *testing.T, planned int, linking LinkingType) *Article {
	t.Helper()
	a, _, err := NewArticle(NewArticleParams{
		ID:              "art-1",
		ArticleNumber:   "SW-100",
		OrderID:         "ord-1",
		PlannedQuantity: planned,
		LinkingType:     linking,
	}, FallbackFlow(linking))
	require.NoError(t, err)
	return a
}

// mustDo fails the test when an operation errors: mustDo(t)(a.Transfer(...)).
func mustDo(t *testing.T) func(Mutation, error) Mutation {
	t.Helper()
	return func(m Mutation, err error) Mutation {
		t.Helper()
		require.NoError(t, err)
		return m
	}
}

func checkInvariants(t *testing.T, a *Article) {
	t.Helper()
	for _, f := range a.Flow.Floors {
		e, ok := a.Ledger[f]
		require.True(t, ok, "missing entry for %s", f)
		c := e.Base()
		require.GreaterOrEqual(t, c.Received, 0, f.String())
		require.GreaterOrEqual(t, c.Completed, 0, f.String())
		require.GreaterOrEqual(t, c.Transferred, 0, f.String())
		require.GreaterOrEqual(t, c.Remaining, 0, f.String())
		if !a.isFirst(f) {
			require.LessOrEqual(t, c.Completed, c.Received, "%s completed", f)
			require.LessOrEqual(t, c.Transferred, c.Received, "%s transferred", f)
		}
		if g, ok := e.(*GradingEntry); ok {
			require.LessOrEqual(t, g.QualityTotal(), g.Received, "%s quality total", f)
			require.LessOrEqual(t, g.M1Transferred, g.M1Quantity, "%s m1Transferred", f)
			if !a.isFirst(f) {
				require.LessOrEqual(t, g.M1Transferred, g.Transferred, "%s m1Transferred vs transferred", f)
			}
			require.Equal(t, max(0, g.M1Quantity-g.M1Transferred), g.M1Remaining, "%s m1Remaining", f)
			require.Equal(t, g.M1Remaining, g.Remaining, "%s remaining", f)
		} else {
			require.Equal(t, a.remainingFor(f, e), c.Remaining, "%s remaining", f)
		}
	}
}
