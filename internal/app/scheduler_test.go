package app

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
)

type countingPurger struct {
	calls atomic.Int32
	err   error
}

func (p *countingPurger) PurgePastSlots(context.Context) (int64, error) {
	p.calls.Add(1)
	return 1, p.err
}

func TestSchedulerPurgesOnStartAndTick(t *testing.T) {
	purger := &countingPurger{}
	s := NewScheduler(purger, 10*time.Millisecond, zap.NewNop())

	s.Start(context.Background())
	assert.Eventually(t, func() bool { return purger.calls.Load() >= 3 }, time.Second, 5*time.Millisecond)

	s.Stop()
	calls := purger.calls.Load()
	time.Sleep(30 * time.Millisecond)
	assert.Equal(t, calls, purger.calls.Load())

	// повторный Stop безопасен
	s.Stop()
}

func TestSchedulerDisabled(t *testing.T) {
	purger := &countingPurger{}
	s := NewScheduler(purger, 0, zap.NewNop())

	s.Start(context.Background())
	s.Stop()
	assert.Zero(t, purger.calls.Load())
}

func TestSchedulerRepeatedStart(t *testing.T) {
	purger := &countingPurger{}
	s := NewScheduler(purger, time.Hour, zap.NewNop())

	assert.NotPanics(t, func() {
		s.Start(context.Background())
		s.Start(context.Background())
	})
	assert.Eventually(t, func() bool { return purger.calls.Load() == 1 }, time.Second, 5*time.Millisecond)

	s.Stop()
	assert.EqualValues(t, 1, purger.calls.Load())

	disabled := NewScheduler(purger, 0, zap.NewNop())
	assert.NotPanics(t, func() {
		disabled.Start(context.Background())
		disabled.Start(context.Background())
	})
	disabled.Stop()
}

func TestSchedulerStopWithoutStart(t *testing.T) {
	purger := &countingPurger{}
	s := NewScheduler(purger, time.Millisecond, zap.NewNop())

	done := make(chan struct{})
	go func() {
		s.Stop()
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("Stop blocked without Start")
	}

	// после Stop запуск уже не происходит
	s.Start(context.Background())
	time.Sleep(10 * time.Millisecond)
	assert.Zero(t, purger.calls.Load())
}

func TestSchedulerSurvivesErrorsAndContextCancel(t *testing.T) {
	purger := &countingPurger{err: errors.New("db is down")}
	s := NewScheduler(purger, 5*time.Millisecond, zap.NewNop())

	ctx, cancel := context.WithCancel(context.Background())
	s.Start(ctx)
	assert.Eventually(t, func() bool { return purger.calls.Load() >= 2 }, time.Second, 5*time.Millisecond)

	cancel()
	s.Stop()
}

func TestNewLoggerRejectsUnknownLevel(t *testing.T) {
	_, err := NewLogger("development", "loud")
	assert.Error(t, err)

	logger, err := NewLogger("production", "warn")
	assert.NoError(t, err)
	assert.False(t, logger.Core().Enabled(zap.InfoLevel))
}
