package kvclient

import (
	"errors"
	"sync"
	"time"
)

// FlowState is the state of the bank transfer confirmation view.
type FlowState int

const (
	// StateAwaitingTransfer: instructions are shown, the confirm action is
	// still locked behind the wait timer.
	StateAwaitingTransfer FlowState = iota + 1
	// StateReadyToConfirm: the timer elapsed, the user may self-report.
	StateReadyToConfirm
	// StateConfirmed: the user asserted "I have transferred". Self-reported
	// only; it does not mean the donation settled.
	StateConfirmed
	// StateClosed: the user dismissed the view.
	StateClosed
)

func (s FlowState) String() string {
	switch s {
	case StateAwaitingTransfer:
		return "awaiting_transfer"
	case StateReadyToConfirm:
		return "ready_to_confirm"
	case StateConfirmed:
		return "confirmed"
	case StateClosed:
		return "closed"
	}
	return "unknown"
}

var (
	// ErrNotReady: Confirm was called before the wait timer elapsed.
	ErrNotReady = errors.New("kvclient: confirmation not ready yet")
	// ErrFlowClosed: Confirm was called on a dismissed view.
	ErrFlowClosed = errors.New("kvclient: confirmation view closed")
)

// ConfirmDelay is how long the confirm action stays locked after the
// instructions appear. A client-side speed bump against reflexive clicking,
// not a correctness mechanism.
const ConfirmDelay = 5 * time.Second

// FlowHooks are the side effects of a successful confirmation. Both run
// exactly once, on the Confirm call. Nil hooks are skipped.
type FlowHooks struct {
	// RefreshCampaign re-fetches the campaign so displayed totals reflect
	// any backend reconciliation that may already have happened.
	RefreshCampaign func()
	// ShowCertificate displays the thank-you acknowledgment.
	ShowCertificate func()
}

// ConfirmationFlow is the state machine behind the bank transfer instruction
// view: AwaitingTransfer -> ReadyToConfirm -> Confirmed, with Closed
// reachable from the first two states. The flow never performs network
// calls itself and never blocks on the QR image: rendering is the caller's
// concern, so a QR load failure cannot stall confirmation.
type ConfirmationFlow struct {
	mu        sync.Mutex
	state     FlowState
	hooks     FlowHooks
	delay     time.Duration
	after     func(time.Duration, func()) (stop func() bool)
	stopTimer func() bool
}

// NewConfirmationFlow creates a flow with the standard delay and timer.
func NewConfirmationFlow(hooks FlowHooks) *ConfirmationFlow {
	return newConfirmationFlow(hooks, ConfirmDelay, func(d time.Duration, fn func()) func() bool {
		t := time.AfterFunc(d, fn)
		return t.Stop
	})
}

func newConfirmationFlow(hooks FlowHooks, delay time.Duration, after func(time.Duration, func()) func() bool) *ConfirmationFlow {
	return &ConfirmationFlow{hooks: hooks, delay: delay, after: after}
}

// Start enters AwaitingTransfer and arms the wait timer. It is called once,
// when payment instructions arrive.
func (f *ConfirmationFlow) Start() {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.state != 0 {
		return
	}
	f.state = StateAwaitingTransfer
	f.stopTimer = f.after(f.delay, f.ready)
}

func (f *ConfirmationFlow) ready() {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.state == StateAwaitingTransfer {
		f.state = StateReadyToConfirm
	}
}

// Confirm records the user's self-reported transfer and fires the hooks.
// Only the ReadyToConfirm state accepts it; a second Confirm is a no-op so
// the campaign re-fetch cannot run twice.
func (f *ConfirmationFlow) Confirm() error {
	f.mu.Lock()
	switch f.state {
	case StateConfirmed:
		f.mu.Unlock()
		return nil
	case StateClosed:
		f.mu.Unlock()
		return ErrFlowClosed
	case StateReadyToConfirm:
	default:
		f.mu.Unlock()
		return ErrNotReady
	}
	f.state = StateConfirmed
	hooks := f.hooks
	f.mu.Unlock()

	if hooks.RefreshCampaign != nil {
		hooks.RefreshCampaign()
	}
	if hooks.ShowCertificate != nil {
		hooks.ShowCertificate()
	}
	return nil
}

// Close dismisses the view. Idempotent from every state: closing twice, or
// after Confirmed, does nothing and triggers no side effects. An in-flight
// network request elsewhere is not cancelled; its result is simply no longer
// displayed.
func (f *ConfirmationFlow) Close() {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.state == StateConfirmed || f.state == StateClosed {
		return
	}
	if f.stopTimer != nil {
		f.stopTimer()
	}
	f.state = StateClosed
}

// State returns the current flow state.
func (f *ConfirmationFlow) State() FlowState {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.state
}
