// Copyright 2021 The apiclient Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package retry

import (
	"time"

	"github.com/gogama/apiclient/request"
)

// A Policy controls if and how retries are done during an execution.
// After every attempt, a Policy decides whether a retry should be done
// and, if so, how long the wait period should be before retrying.
//
// Implementations of Policy must be safe for concurrent use by multiple
// goroutines.
//
// A Policy is composed of the Decider and Waiter interfaces. While you
// can implement Policy yourself, it is usually simpler to use one of the
// built-in policies, DefaultPolicy, Never and Backoff, or to construct a
// policy using NewPolicy from existing Decider and Waiter
// implementations.
type Policy interface {
	Decider
	Waiter
}

// An Exhauster is a Policy which can tell apart a negative retry
// decision caused by running out of retry budget from one caused by a
// non-retryable outcome. The execution pipeline reports budget
// exhaustion as a distinct error kind when the policy is an Exhauster.
type Exhauster interface {
	Exhausted(e *request.Execution) bool
}

// DefaultPolicy is a general-purpose retry policy suitable for common
// use cases. It is a composition of DefaultDecider for retry decisions
// and DefaultWaiter for wait time calculations.
var DefaultPolicy Policy = NewPolicy(DefaultDecider, DefaultWaiter)

// Never is a policy that never retries. It is the policy used by a
// request descriptor with no retry strategy configured.
var Never Policy = NewPolicy(Times(0), NewFixedWaiter(0))

type policy struct {
	decider Decider
	waiter  Waiter
}

// NewPolicy composes a Decider and a Waiter into a retry Policy.
func NewPolicy(d Decider, w Waiter) Policy {
	if d == nil {
		panic("apiclient/retry: nil decider")
	}
	if w == nil {
		panic("apiclient/retry: nil waiter")
	}
	return policy{decider: d, waiter: w}
}

func (p policy) Decide(e *request.Execution) bool {
	return p.decider.Decide(e)
}

func (p policy) Wait(e *request.Execution) time.Duration {
	return p.waiter.Wait(e)
}
