package validation

import (
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

func TestDebouncerLastWriteWins(t *testing.T) {
	d := NewDebouncer(20 * time.Millisecond)

	var calls atomic.Int32
	got := make(chan int, 3)
	for i := 1; i <= 3; i++ {
		i := i
		d.Trigger(func() {
			calls.Add(1)
			got <- i
		})
	}

	select {
	case v := <-got:
		assert.Equal(t, 3, v)
	case <-time.After(time.Second):
		t.Fatal("debounced function never ran")
	}

	time.Sleep(60 * time.Millisecond)
	assert.Equal(t, int32(1), calls.Load())
}

func TestDebouncerFlush(t *testing.T) {
	d := NewDebouncer(time.Hour)

	ran := false
	d.Trigger(func() { ran = true })
	require.True(t, d.Flush())
	assert.True(t, ran)

	assert.False(t, d.Flush(), "nothing left to flush")
}

func TestDebouncerStop(t *testing.T) {
	d := NewDebouncer(10 * time.Millisecond)

	var calls atomic.Int32
	d.Trigger(func() { calls.Add(1) })
	d.Stop()

	time.Sleep(40 * time.Millisecond)
	assert.Equal(t, int32(0), calls.Load())
	assert.False(t, d.Flush())
}

func TestNewDebouncerDefaultsDelay(t *testing.T) {
	assert.Equal(t, DefaultDebounce, NewDebouncer(0).delay)
}
