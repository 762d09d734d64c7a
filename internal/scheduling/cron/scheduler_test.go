package cronjob

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

type fakePurger struct {
	calls int
	err   error
}

func (f *fakePurger) PurgeStaleDrafts(ctx context.Context) (int64, error) {
	f.calls++
	if _, ok := ctx.Deadline(); !ok {
		return 0, errors.New("purge must run with a deadline")
	}
	return 4, f.err
}

func TestScheduler_Start(t *testing.T) {
	s := NewScheduler(&fakePurger{}, "", zap.NewNop())
	require.NoError(t, s.Start())
	defer s.Stop()

	assert.Equal(t, DefaultSchedule, s.spec)
	assert.Len(t, s.cron.Entries(), 1)
}

func TestScheduler_InvalidSpec(t *testing.T) {
	s := NewScheduler(&fakePurger{}, "every night", zap.NewNop())
	assert.Error(t, s.Start())
}

func TestScheduler_RunNightlyJobs(t *testing.T) {
	core, logs := observer.New(zap.InfoLevel)
	purger := &fakePurger{}
	s := NewScheduler(purger, DefaultSchedule, zap.New(core))

	s.runNightlyJobs()
	assert.Equal(t, 1, purger.calls)
	require.Equal(t, 1, logs.FilterMessage("draft purge completed").Len())
	assert.Equal(t, int64(4), logs.FilterMessage("draft purge completed").All()[0].ContextMap()["deleted"])

	purger.err = errors.New("db down")
	s.runNightlyJobs()
	assert.Equal(t, 1, logs.FilterMessage("draft purge failed").Len())
}
