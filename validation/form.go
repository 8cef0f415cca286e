package validation

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"time"

	"truthonly/models"
)

var (
	// ErrNotReady is returned by Submit when the current input is not valid.
	ErrNotReady = errors.New("input is not ready to submit")
	// ErrSubmissionPending is returned by Submit while a previous submission is in flight.
	ErrSubmissionPending = errors.New("a submission is already in progress")
)

// SubmitFunc performs the actual submission of a validated input.
type SubmitFunc func(ctx context.Context, t models.InputType, raw string) error

// Form tracks one input field and its validation status.
type Form struct {
	debouncer *Debouncer
	onStatus  func(Status)

	mu        sync.Mutex
	inputType models.InputType
	raw       string
	status    Status

	inFlight atomic.Bool
}

// NewForm creates a form that re-validates after delay of quiet input.
// onStatus, if non-nil, is called with every freshly computed status.
func NewForm(delay time.Duration, onStatus func(Status)) *Form {
	return &Form{
		debouncer: NewDebouncer(delay),
		onStatus:  onStatus,
		inputType: models.InputURL,
	}
}

// Update replaces the input and schedules re-validation.
func (f *Form) Update(t models.InputType, raw string) {
	f.mu.Lock()
	f.inputType = t
	f.raw = raw
	f.mu.Unlock()

	f.debouncer.Trigger(f.revalidate)
}

func (f *Form) revalidate() {
	f.mu.Lock()
	status := Validate(f.inputType, f.raw)
	f.status = status
	f.mu.Unlock()

	if f.onStatus != nil {
		f.onStatus(status)
	}
}

// Settle runs any pending validation immediately and returns the resulting status.
func (f *Form) Settle() Status {
	f.debouncer.Flush()
	return f.Status()
}

// Status is the most recently computed validation status.
func (f *Form) Status() Status {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.status
}

// Pending reports whether a submission is in flight.
func (f *Form) Pending() bool {
	return f.inFlight.Load()
}

// Submit hands the current input to fn when it is valid and nothing else is in flight.
func (f *Form) Submit(ctx context.Context, fn SubmitFunc) error {
	f.debouncer.Flush()

	// Validate and capture together so a racing Update cannot slip in unchecked input.
	f.mu.Lock()
	t, raw := f.inputType, f.raw
	status := Validate(t, raw)
	f.status = status
	f.mu.Unlock()

	if status != StatusValid {
		return ErrNotReady
	}
	if !f.inFlight.CompareAndSwap(false, true) {
		return ErrSubmissionPending
	}
	defer f.inFlight.Store(false)

	return fn(ctx, t, raw)
}

// Close cancels pending validation.
func (f *Form) Close() {
	f.debouncer.Stop()
}
