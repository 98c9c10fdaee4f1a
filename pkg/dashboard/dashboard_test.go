package dashboard

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/Gobusters/ectologger"
	"github.com/Gobusters/ectologger/zapadapter"

	"github.com/Ramsey-B/arbor/pkg/repositories"
)

func getTestLogger() ectologger.Logger {
	zapLogger, _ := zap.NewDevelopment()
	return zapadapter.NewZapEctoLogger(zapLogger, nil)
}

type stubCounter struct {
	counts repositories.Counts
	err    error
}

func (s stubCounter) Counts(ctx context.Context) (repositories.Counts, error) {
	return s.counts, s.err
}

func active(n int) *int { return &n }

func TestSummarizeCollectsAllFamilies(t *testing.T) {
	agg := NewAggregator(getTestLogger())
	agg.Register("kitchen", stubCounter{counts: repositories.Counts{Total: 5, Active: active(3)}})
	agg.Register("payment", stubCounter{counts: repositories.Counts{Total: 9}})

	summary := agg.Summarize(context.Background())

	require.Len(t, summary, 2)
	assert.Equal(t, 5, summary["kitchen"].Total)
	require.NotNil(t, summary["kitchen"].Active)
	assert.Equal(t, 3, *summary["kitchen"].Active)
	assert.False(t, summary["kitchen"].Error)

	// families without a visibility flag have no active count
	assert.Equal(t, 9, summary["payment"].Total)
	assert.Nil(t, summary["payment"].Active)
}

func TestSummarizeIsolatesFailures(t *testing.T) {
	agg := NewAggregator(getTestLogger())
	agg.Register("kitchen", stubCounter{counts: repositories.Counts{Total: 5, Active: active(5)}})
	agg.Register("lease", stubCounter{err: errors.New("connection refused")})
	agg.Register("booking", stubCounter{counts: repositories.Counts{Total: 2}})

	summary := agg.Summarize(context.Background())

	require.Len(t, summary, 3)
	assert.True(t, summary["lease"].Error)
	assert.Zero(t, summary["lease"].Total)

	// a failed family renders zeros, not an absent active count
	require.NotNil(t, summary["lease"].Active)
	assert.Zero(t, *summary["lease"].Active)

	// the failing family does not poison the others
	assert.False(t, summary["kitchen"].Error)
	assert.Equal(t, 5, summary["kitchen"].Total)
	assert.False(t, summary["booking"].Error)
	assert.Equal(t, 2, summary["booking"].Total)
}

func TestSummarizeEmpty(t *testing.T) {
	agg := NewAggregator(getTestLogger())
	summary := agg.Summarize(context.Background())
	assert.Empty(t, summary)
}
