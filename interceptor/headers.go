// Copyright 2021 The apiclient Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package interceptor

import (
	"context"

	"github.com/gogama/apiclient"
)

// HeaderUserAgent is the User-Agent header name.
const HeaderUserAgent = "User-Agent"

// UserAgent returns a before-request handler which sets the User-Agent
// header to ua unless the descriptor already sets one.
func UserAgent(ua string) apiclient.BeforeRequestHandler {
	return func(_ context.Context, r apiclient.Request, name string) (apiclient.Request, string, error) {
		if r.Headers().Has(HeaderUserAgent) {
			return r, name, nil
		}
		return r.WithHeader(HeaderUserAgent, ua), name, nil
	}
}

// Named returns a before-request handler which prefixes the logical
// request name with prefix. It lets a shared template tag all requests
// branched from it, for example with the name of the remote service.
func Named(prefix string) apiclient.BeforeRequestHandler {
	return func(_ context.Context, r apiclient.Request, name string) (apiclient.Request, string, error) {
		return r, prefix + name, nil
	}
}
