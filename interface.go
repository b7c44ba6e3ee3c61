// Copyright 2021 The apiclient Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package apiclient

import (
	"context"
	"net/http"
)

// RequestClient is the transport capability a descriptor is sent
// through.
//
// Execute sends one attempt of r and returns the response, or an error
// if no response was received. The execution pipeline calls Execute
// once per attempt with the descriptor as it stands after
// authentication and the before-request handlers, so r is final:
// Execute must not apply retries, authentication or interceptors of
// its own.
//
// Execute is responsible for realizing the body, using r.Payload, and
// for honouring ctx, which carries both the attempt timeout and the
// execution deadline. Implementations must be safe for concurrent use
// by multiple goroutines.
//
// HTTPClient is the default implementation.
type RequestClient interface {
	Execute(ctx context.Context, r Request) (*Response, error)
}

// The RequestClientFunc type is an adapter to allow the use of ordinary
// functions as a RequestClient.
type RequestClientFunc func(ctx context.Context, r Request) (*Response, error)

// Execute calls f(ctx, r).
func (f RequestClientFunc) Execute(ctx context.Context, r Request) (*Response, error) {
	return f(ctx, r)
}

// An HTTPDoer implements a Do method in the same manner as the GoLang
// standard library http.Client from the net/http package.
type HTTPDoer interface {
	// Do sends an HTTP request and returns an HTTP response following
	// policy (such as redirects, cookies, auth) configured on the
	// HTTPDoer.
	//
	// The Do method must follow the contract documented on the GoLang
	// standard library http.Client from the net/http package.
	Do(r *http.Request) (*http.Response, error)
}

// IdleCloser is the interface that wraps the basic CloseIdleConnections
// method.
//
// If the underlying implementation supports it, CloseIdleConnections
// closes any connections which were previously connected from previous
// requests but are now sitting idle in a "keep-alive" state. It does
// not interrupt any connections currently in use.
type IdleCloser interface {
	CloseIdleConnections()
}
