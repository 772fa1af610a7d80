package checkout

import (
	"errors"
	"fmt"
	"sync"
)

// Phase — фаза оформления заказа.
type Phase string

const (
	PhaseIdle       Phase = "IDLE"
	PhaseFormOpen   Phase = "FORM_OPEN"
	PhaseValidating Phase = "VALIDATING"
	PhaseSubmitting Phase = "SUBMITTING"
	PhaseCompleted  Phase = "COMPLETED"
	PhaseFailed     Phase = "FAILED"
)

func (p Phase) String() string {
	return string(p)
}

var allowedTransitions = map[Phase]map[Phase]bool{
	PhaseIdle: {
		PhaseFormOpen: true,
	},
	PhaseFormOpen: {
		PhaseValidating: true,
		PhaseIdle:       true, // abandon
	},
	PhaseValidating: {
		PhaseSubmitting: true,
		PhaseFormOpen:   true, // validation failure, user corrects input
		PhaseIdle:       true, // abandon
	},
	PhaseSubmitting: {
		PhaseCompleted: true,
		PhaseFailed:    true,
	},
	PhaseCompleted: {
		PhaseIdle: true,
	},
	PhaseFailed: {
		PhaseValidating: true, // resubmit
		PhaseIdle:       true,
	},
}

var ErrInvalidTransition = errors.New("checkout: invalid flow transition")

// Flow is the explicit checkout state machine: one instance per
// checkout attempt, transitioned by discrete events. It replaces the
// ad-hoc pile of UI flags the source kept around the form.
type Flow struct {
	mu      sync.Mutex
	phase   Phase
	failure string
}

func NewFlow() *Flow {
	return &Flow{phase: PhaseIdle}
}

// Phase returns the current phase.
func (f *Flow) Phase() Phase {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.phase
}

// Failure returns the message attached by the last Reject or Fail.
func (f *Flow) Failure() string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.failure
}

// Open enters FormOpen. The form never opens over an empty cart.
func (f *Flow) Open(itemCount int) error {
	if itemCount <= 0 {
		return ErrEmptyCart
	}
	return f.transition(PhaseFormOpen)
}

// Submit enters Validating from FormOpen or, on a retry, from Failed.
func (f *Flow) Submit() error {
	return f.transition(PhaseValidating)
}

// Reject returns to FormOpen with the validation message attached.
func (f *Flow) Reject(msg string) error {
	if err := f.transition(PhaseFormOpen); err != nil {
		return err
	}
	f.mu.Lock()
	f.failure = msg
	f.mu.Unlock()
	return nil
}

// Accept moves from Validating to Submitting.
func (f *Flow) Accept() error {
	return f.transition(PhaseSubmitting)
}

// Complete finishes the attempt successfully.
func (f *Flow) Complete() error {
	return f.transition(PhaseCompleted)
}

// Fail records a submission failure. The attempt is recoverable: the
// user may resubmit, re-entering Validating.
func (f *Flow) Fail(msg string) error {
	if err := f.transition(PhaseFailed); err != nil {
		return err
	}
	f.mu.Lock()
	f.failure = msg
	f.mu.Unlock()
	return nil
}

// Abandon discards the in-progress attempt with no side effects. Only
// allowed before Submitting begins.
func (f *Flow) Abandon() error {
	f.mu.Lock()
	phase := f.phase
	f.mu.Unlock()
	if phase == PhaseSubmitting {
		return fmt.Errorf("%w: cannot abandon while submitting", ErrInvalidTransition)
	}
	return f.transition(PhaseIdle)
}

func (f *Flow) transition(to Phase) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	if !allowedTransitions[f.phase][to] {
		return fmt.Errorf("%w: from %s to %s", ErrInvalidTransition, f.phase, to)
	}

	f.phase = to
	if to == PhaseValidating || to == PhaseSubmitting {
		f.failure = ""
	}
	return nil
}
