package quiz

import (
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTimerCountsDownAndExpiresOnce(t *testing.T) {
	sched := NewManualScheduler()
	timer := NewTimer(sched, 3, false)
	expired := 0
	timer.Start(func() { expired++ })
	require.Equal(t, 1, sched.Pending())

	sched.Advance(2)
	assert.Equal(t, 1, timer.SecondsLeft())
	assert.Equal(t, 0, expired)

	sched.Advance(1)
	assert.Equal(t, 0, timer.SecondsLeft())
	assert.Equal(t, 1, expired)
	assert.Equal(t, 0, sched.Pending(), "no tick may stay scheduled after expiry")

	sched.Advance(5)
	assert.Equal(t, 1, expired)
	assert.Equal(t, 0, timer.SecondsLeft())
}

func TestTimerBonusOnlyWhenLimited(t *testing.T) {
	sched := NewManualScheduler()
	timer := NewTimer(sched, 60, false)
	timer.Start(nil)
	assert.True(t, timer.AddBonus(15))
	assert.Equal(t, 75, timer.SecondsLeft())

	timer.SetUnlimited(true)
	assert.False(t, timer.AddBonus(15))
	assert.Equal(t, 75, timer.SecondsLeft())
	assert.False(t, timer.AddBonus(0))
}

func TestTimerUnlimitedSuspendsCountdown(t *testing.T) {
	sched := NewManualScheduler()
	timer := NewTimer(sched, 10, false)
	timer.Start(func() { t.Fatal("must not expire") })
	sched.Advance(4)
	assert.Equal(t, 6, timer.SecondsLeft())

	timer.SetUnlimited(true)
	assert.False(t, timer.Ticking())
	sched.Advance(100)
	assert.Equal(t, 6, timer.SecondsLeft())

	timer.SetUnlimited(false)
	assert.True(t, timer.Ticking())
	sched.Advance(2)
	assert.Equal(t, 4, timer.SecondsLeft())
	timer.Cancel()
}

func TestTimerStartUnlimitedNeverTicks(t *testing.T) {
	sched := NewManualScheduler()
	timer := NewTimer(sched, 5, true)
	timer.Start(func() { t.Fatal("must not expire") })
	assert.Equal(t, 0, sched.Pending())
	assert.True(t, timer.Unlimited())
}

func TestTimerCancelIsIdempotent(t *testing.T) {
	sched := NewManualScheduler()
	timer := NewTimer(sched, 5, false)
	timer.Start(nil)
	timer.Cancel()
	timer.Cancel()
	assert.Equal(t, 0, sched.Pending())
	timer.SetUnlimited(true)
	timer.SetUnlimited(false)
	assert.Equal(t, 0, sched.Pending(), "cancelled timer must not reschedule")
}

func TestTickerSchedulerPostsAndStops(t *testing.T) {
	posted := make(chan func(), 16)
	sched := TickerScheduler{Post: func(fn func()) { posted <- fn }}
	var calls atomic.Int32
	stop := sched.Every(5*time.Millisecond, func() { calls.Add(1) })

	select {
	case fn := <-posted:
		fn()
	case <-time.After(2 * time.Second):
		t.Fatal("ticker never fired")
	}
	require.Equal(t, int32(1), calls.Load())

	stop()
	stop()
	// Anything queued before stop must be a no-op now.
	for {
		select {
		case fn := <-posted:
			fn()
			continue
		default:
		}
		break
	}
	assert.Equal(t, int32(1), calls.Load())
}
