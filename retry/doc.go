// Copyright 2021 The apiclient Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

// Package retry provides policies deciding whether a failed attempt of
// a request descriptor execution should be retried, and how long to
// wait before retrying.
//
// The interface Policy defines a retry Policy. The ready-made
// exponential backoff policy is Backoff:
//
//	policy := retry.NewBackoff(3, false).WithStatusCodes(503)
//
// A custom Policy can be constructed using NewPolicy by providing a
// decision-maker, Decider, and a wait time calculator, Waiter:
//
//	decider := retry.Times(3).
//		And(retry.Before(5 * time.Second)).
//		And(retry.StatusCode(500).Or(retry.TransientErr))
//	waiter := retry.NewExpWaiter(100*time.Millisecond, 2*time.Second, rand.NewSource(1))
//	policy := retry.NewPolicy(decider, waiter)
//
// If the built-in functionality is insufficient, fully custom retry
// policies can be created via custom implementations of Decider,
// Waiter, or Policy.
package retry
