// Copyright 2021 The apiclient Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

/*
Package apiclient describes HTTP requests as immutable values and
executes them through a pluggable strategy pipeline.

A Request is a request descriptor. Every method that configures it
returns a new Request, so a base descriptor can be built once and
branched per endpoint without any risk of one branch affecting another:

	api := apiclient.New().
		WithBaseURL("https://api.example.com").
		JSONSerialization().
		BasicAuthentication("user", "secret").
		Retry(3, false)

	resp, err := api.Get(ctx, "/items")
	...
	item, err := apiclient.Into[Item](api.
		WithRouteValue("id", "42").
		Get(ctx, "/items/{id}"))
	...
	resp, err := api.Body(Item{Name: "new"}).Post(ctx, "/items")

Object bodies attached with Body are serialized at send time, with the
serializer configured on the descriptor actually sent, and again on
every retry.

For control over how requests are sent, use a custom RequestClient, or
an HTTPClient wrapping a custom HTTPDoer:

	doer := &http.Client{
		..., // See package "net/http" for detailed documentation
	}
	api = api.WithClient(&apiclient.HTTPClient{Doer: doer})

For control over retry decisions and timing, use a policy from package
retry, and for per-attempt timeouts a policy from package timeout:

	api = api.
		RetryPolicy(retry.NewBackoff(5, true).WithStatusCodes(503)).
		AttemptTimeout(timeout.Fixed(2 * time.Second)).
		WithTimeout(30 * time.Second)

To decorate requests or post-process responses, append interceptors.
They run in registration order:

	api = api.
		BeforeRequest(func(ctx context.Context, r apiclient.Request, name string) (apiclient.Request, string, error) {
			return r.WithHeader("X-Tenant", tenant), name, nil
		}).
		AfterResponse(interceptor.RequireSuccess)

To hook into the fine-grained details of execution, observe events:

	api = api.Observe(apiclient.AfterAttempt, apiclient.HandlerFunc(
		func(_ apiclient.Event, e *request.Execution) {
			log.Printf("Attempt %d to %s: %d", e.Attempt, e.URL, e.StatusCode)
		}))

Packages interceptor, observe and config provide ready-made
interceptors, logging and metrics observers, and file- and
environment-driven descriptor templates.
*/
package apiclient
