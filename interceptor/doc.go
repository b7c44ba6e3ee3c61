// Copyright 2021 The apiclient Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

/*
Package interceptor provides ready-made before-request and after-response
handlers for request descriptors.

Install them on a template descriptor so every request branched from it
inherits them:

	api := apiclient.New().
		WithBaseURL("https://api.example.com").
		BeforeRequest(interceptor.UserAgent("inventory/1.4")).
		BeforeRequest(interceptor.CorrelationID("")).
		BeforeRequest(interceptor.TraceContext(nil)).
		BeforeRequest(interceptor.RateLimit(rate.NewLimiter(10, 1))).
		AfterResponse(interceptor.RequireSuccess())

Before-request handlers run once per attempt, so a rate limiter throttles
retries as well as initial attempts.
*/
package interceptor
