// Copyright 2021 The apiclient Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package interceptor

import (
	"context"

	"github.com/gogama/apiclient"
	"golang.org/x/time/rate"
)

// RateLimit returns a before-request handler which waits for a token
// from l before every attempt. The wait is abandoned, and the attempt
// fails with an interceptor error, if the context is done first or the
// wait could never complete in time.
//
// Share one limiter between all descriptors that call the same service.
func RateLimit(l *rate.Limiter) apiclient.BeforeRequestHandler {
	if l == nil {
		panic("apiclient/interceptor: nil limiter")
	}
	return func(ctx context.Context, r apiclient.Request, name string) (apiclient.Request, string, error) {
		if err := l.Wait(ctx); err != nil {
			return r, name, err
		}
		return r, name, nil
	}
}
