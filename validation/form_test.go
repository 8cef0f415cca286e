package validation

import (
	"context"
	"sync"
	"testing"
	"time"

	"truthonly/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFormValidatesAfterQuietPeriod(t *testing.T) {
	statuses := make(chan Status, 4)
	f := NewForm(20*time.Millisecond, func(s Status) { statuses <- s })
	defer f.Close()

	f.Update(models.InputText, "short")
	f.Update(models.InputText, "long enough to be checked")

	select {
	case s := <-statuses:
		assert.Equal(t, StatusValid, s)
	case <-time.After(time.Second):
		t.Fatal("no status reported")
	}
	assert.Equal(t, StatusValid, f.Status())
	assert.Empty(t, statuses, "only the last update should have been validated")
}

func TestFormSubmitRequiresValidInput(t *testing.T) {
	f := NewForm(time.Hour, nil)
	defer f.Close()

	called := false
	submit := func(context.Context, models.InputType, string) error {
		called = true
		return nil
	}

	f.Update(models.InputURL, "not a url")
	assert.ErrorIs(t, f.Submit(context.Background(), submit), ErrNotReady)
	assert.False(t, called)
	assert.Equal(t, StatusInvalid, f.Status())

	f.Update(models.InputURL, "https://example.com/article")
	require.NoError(t, f.Submit(context.Background(), submit))
	assert.True(t, called)
}

func TestFormRejectsConcurrentSubmit(t *testing.T) {
	f := NewForm(time.Hour, nil)
	defer f.Close()
	f.Update(models.InputText, "The earth is flat")

	started := make(chan struct{})
	release := make(chan struct{})
	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		err := f.Submit(context.Background(), func(_ context.Context, typ models.InputType, raw string) error {
			assert.Equal(t, models.InputText, typ)
			assert.Equal(t, "The earth is flat", raw)
			close(started)
			<-release
			return nil
		})
		assert.NoError(t, err)
	}()

	<-started
	assert.True(t, f.Pending())
	err := f.Submit(context.Background(), func(context.Context, models.InputType, string) error { return nil })
	assert.ErrorIs(t, err, ErrSubmissionPending)

	close(release)
	wg.Wait()
	assert.False(t, f.Pending())
}

func TestFormSubmitRevalidatesLateUpdate(t *testing.T) {
	var f *Form
	once := sync.Once{}
	// The status callback fires during Submit's flush; an Update from there lands
	// after the flushed validation but before the input is handed over.
	f = NewForm(time.Hour, func(Status) {
		once.Do(func() { f.Update(models.InputText, "short") })
	})
	defer f.Close()
	f.Update(models.InputText, "long enough to be checked")

	called := false
	err := f.Submit(context.Background(), func(context.Context, models.InputType, string) error {
		called = true
		return nil
	})
	assert.ErrorIs(t, err, ErrNotReady)
	assert.False(t, called)
	assert.Equal(t, StatusTooShort, f.Status())
}
