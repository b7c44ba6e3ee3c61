// Copyright 2021 The apiclient Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package apiclient

// An Event identifies the event type when installing or running a
// Handler. Install event handlers on a request descriptor, using
// Request.Observe, to extend the execution pipeline with custom
// functionality such as logging and metrics.
type Event int

const (
	// BeforeExecutionStart identifies the event that occurs before the
	// execution starts.
	//
	// When BeforeExecutionStart fires, the execution's Name, Method and
	// URL are set, but its start time is not yet set. URL is empty if
	// the descriptor could not be resolved.
	BeforeExecutionStart Event = iota
	// BeforeAttempt identifies the event that occurs before each
	// attempt, after the authentication strategy and the before-request
	// handlers have been applied.
	//
	// When BeforeAttempt fires, the execution's Name is the name the
	// before-request handlers returned for the attempt.
	BeforeAttempt
	// AfterAttemptTimeout identifies the event that occurs after an
	// attempt failed because of a timeout.
	//
	// When AfterAttemptTimeout fires, the execution's Err is set to the
	// timeout error, and its attempt timeout counter has been
	// incremented.
	AfterAttemptTimeout
	// AfterAttempt identifies the event that occurs after an attempt is
	// concluded, regardless of whether it concluded successfully.
	//
	// When AfterAttempt fires, either the execution's StatusCode is
	// non-zero or its Err is non-nil, but never both.
	//
	// AfterAttempt fires on every attempt, before the retry policy is
	// consulted.
	AfterAttempt
	// BeforeRetryWait identifies the event that occurs after the retry
	// policy decided to retry, before waiting.
	//
	// When BeforeRetryWait fires, the execution's Wait field holds the
	// delay about to be waited.
	BeforeRetryWait
	// AfterExecutionTimeout identifies the event that occurs after the
	// descriptor's overall timeout expires. It can be detected either
	// at the same time as an attempt timeout, or during the retry
	// wait.
	//
	// AfterExecutionTimeout always occurs after AfterAttempt, even if
	// the execution timeout was detected at the same time as an attempt
	// timeout.
	AfterExecutionTimeout
	// AfterExecutionEnd identifies the event that occurs after the
	// execution ends.
	//
	// When AfterExecutionEnd fires, the execution is in the same state
	// it was in after the final attempt EXCEPT that the end time is set
	// and Err holds the error about to be returned, if any.
	AfterExecutionEnd
	// eventSentinel provides the total number of events typed as an
	// Event.
	eventSentinel

	// numEvents provides the total number of events types as an int.
	numEvents = int(eventSentinel)
)

var eventNames = []string{
	"BeforeExecutionStart",
	"BeforeAttempt",
	"AfterAttemptTimeout",
	"AfterAttempt",
	"BeforeRetryWait",
	"AfterExecutionTimeout",
	"AfterExecutionEnd",
}

// Events returns a slice containing all events which can occur in an
// execution, in the order in which they would occur.
func Events() []Event {
	return []Event{
		BeforeExecutionStart,
		BeforeAttempt,
		AfterAttemptTimeout,
		AfterAttempt,
		BeforeRetryWait,
		AfterExecutionTimeout,
		AfterExecutionEnd,
	}
}

// Name returns the name of the event.
func (evt Event) Name() string {
	if evt < 0 || int(evt) >= numEvents {
		return "Unknown"
	}
	return eventNames[int(evt)]
}

// String returns the name of the event.
func (evt Event) String() string {
	return evt.Name()
}
