// Copyright 2021 The apiclient Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package interceptor

import (
	"context"

	"github.com/gogama/apiclient"
)

// RequireSuccess returns an after-response handler which translates any
// non-2XX response into an *apiclient.Error of kind KindStatus wrapping
// an *apiclient.StatusError.
func RequireSuccess() apiclient.AfterResponseHandler {
	return RequireStatus(func(code int) bool {
		return code >= 200 && code < 300
	})
}

// RequireStatus returns an after-response handler which translates any
// response whose status code does not satisfy ok into an
// *apiclient.Error of kind KindStatus.
func RequireStatus(ok func(code int) bool) apiclient.AfterResponseHandler {
	if ok == nil {
		panic("apiclient/interceptor: nil status predicate")
	}
	return func(_ context.Context, r apiclient.Request, _ string, resp *apiclient.Response) (*apiclient.Response, error) {
		if ok(resp.StatusCode()) {
			return resp, nil
		}
		u, _ := r.URL()
		return nil, apiclient.NewError(apiclient.KindStatus, r.Method(), u, resp.Attempts(), &apiclient.StatusError{
			StatusCode: resp.StatusCode(),
			Header:     resp.Header(),
			Body:       resp.Body(),
		})
	}
}
