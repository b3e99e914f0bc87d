package flow

import "context"

// Step is one tagged unit of a multi-step mutation. Steps run strictly in the
// order given; each is a separate store round trip with no shared transaction.
//
// Compensate, when set, is invoked in reverse order for the steps that had
// completed before a later step failed. The current flows leave it nil, which
// matches the best-effort sequential behavior of the operations: a failure
// partway through leaves the paired invariant violated until corrected by the
// user, and the runner logs which steps had already committed.
type Step struct {
	Name       string
	Run        func(ctx context.Context) error
	Compensate func(ctx context.Context) error
}

// Flow is a named sequence of steps submitted to the Runner as one unit.
type Flow struct {
	Name  string
	Steps []Step
}
