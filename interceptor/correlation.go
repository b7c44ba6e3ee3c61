// Copyright 2021 The apiclient Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package interceptor

import (
	"context"

	"github.com/gogama/apiclient"
	"github.com/google/uuid"
)

// HeaderRequestID is the default correlation header.
const HeaderRequestID = "X-Request-ID"

type correlationKey struct{}

// WithCorrelationID returns a copy of ctx carrying id. Requests executed
// with the returned context send id as their correlation identifier.
func WithCorrelationID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, correlationKey{}, id)
}

// CorrelationIDFromContext returns the correlation identifier carried
// by ctx, if any.
func CorrelationIDFromContext(ctx context.Context) (string, bool) {
	id, ok := ctx.Value(correlationKey{}).(string)
	return id, ok && id != ""
}

// CorrelationID returns a before-request handler which sets a
// correlation header on every attempt. An empty header means
// HeaderRequestID.
//
// The identifier comes from the context if WithCorrelationID put one
// there. Otherwise a random UUID is generated per attempt. A descriptor
// which already carries the header is left alone.
func CorrelationID(header string) apiclient.BeforeRequestHandler {
	if header == "" {
		header = HeaderRequestID
	}
	return func(ctx context.Context, r apiclient.Request, name string) (apiclient.Request, string, error) {
		if r.Headers().Has(header) {
			return r, name, nil
		}
		id, ok := CorrelationIDFromContext(ctx)
		if !ok {
			id = uuid.New().String()
		}
		return r.WithHeader(header, id), name, nil
	}
}
