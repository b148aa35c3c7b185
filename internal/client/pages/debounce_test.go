package pages

import (
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestDebouncer_RunsLastOfBurst(t *testing.T) {
	d := NewDebouncer(30 * time.Millisecond)

	var calls atomic.Int32
	var last atomic.Value
	for _, k := range []string{"g", "go", "gol", "gola", "golang"} {
		k := k
		d.Trigger(k, func() {
			calls.Add(1)
			last.Store(k)
		})
	}

	assert.Eventually(t, func() bool { return calls.Load() == 1 }, time.Second, 5*time.Millisecond)
	time.Sleep(60 * time.Millisecond)
	assert.Equal(t, int32(1), calls.Load())
	assert.Equal(t, "golang", last.Load())
}

func TestDebouncer_IgnoresSameKey(t *testing.T) {
	d := NewDebouncer(10 * time.Millisecond)

	var calls atomic.Int32
	assert.True(t, d.Trigger("go", func() { calls.Add(1) }))
	assert.Eventually(t, func() bool { return calls.Load() == 1 }, time.Second, 5*time.Millisecond)

	assert.False(t, d.Trigger("go", func() { calls.Add(1) }))
	time.Sleep(40 * time.Millisecond)
	assert.Equal(t, int32(1), calls.Load())
}

func TestDebouncer_Cancel(t *testing.T) {
	d := NewDebouncer(20 * time.Millisecond)

	var calls atomic.Int32
	d.Trigger("go", func() { calls.Add(1) })
	d.Cancel("")
	time.Sleep(60 * time.Millisecond)
	assert.Equal(t, int32(0), calls.Load())

	// the same key may run again once cancelled
	assert.True(t, d.Trigger("go", func() { calls.Add(1) }))
	assert.Eventually(t, func() bool { return calls.Load() == 1 }, time.Second, 5*time.Millisecond)
}
