// Copyright 2021 The apiclient Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package apiclient

import (
	"context"
)

// A BeforeRequestHandler rewrites the descriptor about to be sent.
//
// Before-request handlers run in registration order on every attempt,
// after the authentication strategy, each receiving the descriptor and
// name returned by the previous handler. A handler may return a wholly
// different descriptor. A non-nil error ends the execution.
type BeforeRequestHandler func(ctx context.Context, r Request, name string) (Request, string, error)

// An AfterResponseHandler post-processes the final response.
//
// After-response handlers run in registration order once per
// execution, on the response of the final attempt, each receiving the
// response returned by the previous handler. Parameter r is the
// descriptor as it was sent on the final attempt. A non-nil error ends
// the execution.
type AfterResponseHandler func(ctx context.Context, r Request, name string, resp *Response) (*Response, error)

func runBefore(ctx context.Context, chain []BeforeRequestHandler, r Request, name string) (Request, string, error) {
	var err error
	for _, h := range chain {
		if r, name, err = h(ctx, r, name); err != nil {
			return r, name, err
		}
	}
	return r, name, nil
}

func runAfter(ctx context.Context, chain []AfterResponseHandler, r Request, name string, resp *Response) (*Response, error) {
	var err error
	for _, h := range chain {
		if resp, err = h(ctx, r, name, resp); err != nil {
			return resp, err
		}
	}
	return resp, nil
}
