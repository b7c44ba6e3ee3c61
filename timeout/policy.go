// Copyright 2021 The apiclient Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package timeout

import (
	"time"

	"github.com/gogama/apiclient/request"
)

// A Policy directs how long each attempt of a request descriptor
// execution may take, including the initial attempt and any retries.
//
// The descriptor's own timeout bounds the whole execution. A Policy
// bounds a single attempt within it, so a slow attempt can be
// abandoned and retried while time remains.
//
// Implementations of Policy must be safe for concurrent use by multiple
// goroutines.
type Policy interface {
	// Timeout returns the timeout to set on the next attempt.
	//
	// Parameter e contains the current state of the execution. A return
	// value of zero or less means the attempt has no timeout of its
	// own, and is bounded only by the execution context.
	Timeout(e *request.Execution) time.Duration
}

// Infinite is a built-in timeout policy which never times out an
// attempt. It is the policy used when a descriptor has no attempt
// timeout configured.
var Infinite Policy = policy{0}

// DefaultPolicy is the default timeout policy, Infinite.
var DefaultPolicy = Infinite

// Fixed constructs a timeout policy that uses the same value to set
// every attempt timeout.
func Fixed(d time.Duration) Policy {
	if d <= 0 {
		panic("apiclient/timeout: timeout must be positive")
	}
	return policy{d}
}

// Adaptive constructs a timeout policy that varies the next timeout
// value if the previous attempt timed out.
//
// Use Adaptive if the remote service often exhibits one-off slow
// response times that can be cured by quickly timing out and retrying,
// but you also need to protect your application from retry storms if
// the service goes through a burst of slowness.
//
// Parameter usual is the timeout for the initial attempt and for any
// retry where the immediately preceding attempt did not time out.
//
// Parameter after contains timeout values to use if the previous
// attempt timed out. If this was the first timeout of the execution,
// after[0] is returned; if the second, after[1], and so on. If more
// attempts have timed out than after has elements, the last element of
// after is returned.
//
// Consider the following timeout policy:
//
//	p := Adaptive(200*time.Millisecond, time.Second, 10*time.Second)
//
// The policy p uses 200 milliseconds as the usual timeout, 1 second
// after the first timeout, and 10 seconds after any later timeout.
func Adaptive(usual time.Duration, after ...time.Duration) Policy {
	p := make(policy, 1, 1+len(after))
	p[0] = usual
	return append(p, after...)
}

type policy []time.Duration

func (p policy) Timeout(e *request.Execution) time.Duration {
	if !(e.Timeout() || e.PreviousTimeout) || e.AttemptTimeouts < 1 {
		return p[0]
	}

	i := e.AttemptTimeouts
	if i > len(p)-1 {
		i = len(p) - 1
	}

	return p[i]
}
