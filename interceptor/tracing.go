// Copyright 2021 The apiclient Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package interceptor

import (
	"context"
	"net/http"

	"github.com/gogama/apiclient"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/propagation"
)

// TraceContext returns a before-request handler which injects the
// trace context carried by the attempt context into the request
// headers, so the server can continue the caller's trace.
//
// If p is nil, the global propagator returned by
// otel.GetTextMapPropagator is used at injection time. Injected headers
// replace any existing headers of the same name.
func TraceContext(p propagation.TextMapPropagator) apiclient.BeforeRequestHandler {
	return func(ctx context.Context, r apiclient.Request, name string) (apiclient.Request, string, error) {
		prop := p
		if prop == nil {
			prop = otel.GetTextMapPropagator()
		}
		carrier := propagation.HeaderCarrier(make(http.Header))
		prop.Inject(ctx, carrier)
		for _, key := range carrier.Keys() {
			r = r.WithoutHeader(key).WithHeader(key, carrier.Get(key))
		}
		return r, name, nil
	}
}
