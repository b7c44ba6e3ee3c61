// Copyright 2021 The apiclient Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package apiclient

import (
	"github.com/gogama/apiclient/retry"
	"github.com/gogama/apiclient/serial"
	"github.com/gogama/apiclient/timeout"
)

// Services is the strategy bundle of a request descriptor: transport,
// authentication, retry, serialization, interceptor chains, attempt
// timeout policy, and event handlers.
//
// Services is an immutable value. The With methods return a modified
// copy which shares every other strategy with the receiver. The zero
// value is the default bundle: the default HTTP client, no
// authentication, no retries, the raw serializer and deserializer, no
// interceptors, no attempt timeout, and no event handlers.
type Services struct {
	client         RequestClient
	auth           Authenticator
	retry          retry.Policy
	serializer     serial.Serializer
	deserializer   serial.Deserializer
	before         []BeforeRequestHandler
	after          []AfterResponseHandler
	attemptTimeout timeout.Policy
	events         *HandlerGroup
}

// Client returns the transport. It is DefaultClient unless another was
// configured.
func (s Services) Client() RequestClient {
	if s.client == nil {
		return DefaultClient
	}
	return s.client
}

// Authenticator returns the authentication strategy, or nil if none is
// configured.
func (s Services) Authenticator() Authenticator {
	return s.auth
}

// RetryPolicy returns the retry policy. It is retry.Never unless
// another was configured.
func (s Services) RetryPolicy() retry.Policy {
	if s.retry == nil {
		return retry.Never
	}
	return s.retry
}

// Serializer returns the request serializer. It is serial.Raw unless
// another was configured.
func (s Services) Serializer() serial.Serializer {
	if s.serializer == nil {
		return serial.Raw
	}
	return s.serializer
}

// Deserializer returns the response deserializer. It is serial.Raw
// unless another was configured.
func (s Services) Deserializer() serial.Deserializer {
	if s.deserializer == nil {
		return serial.Raw
	}
	return s.deserializer
}

// BeforeRequestHandlers returns a copy of the before-request chain.
func (s Services) BeforeRequestHandlers() []BeforeRequestHandler {
	return append([]BeforeRequestHandler(nil), s.before...)
}

// AfterResponseHandlers returns a copy of the after-response chain.
func (s Services) AfterResponseHandlers() []AfterResponseHandler {
	return append([]AfterResponseHandler(nil), s.after...)
}

// AttemptTimeout returns the attempt timeout policy. It is
// timeout.Infinite unless another was configured.
func (s Services) AttemptTimeout() timeout.Policy {
	if s.attemptTimeout == nil {
		return timeout.Infinite
	}
	return s.attemptTimeout
}

// Events returns the event handler group, which may be nil.
func (s Services) Events() *HandlerGroup {
	return s.events
}

// WithClient returns a copy of s using transport c. A nil c restores
// the default.
func (s Services) WithClient(c RequestClient) Services {
	s.client = c
	return s
}

// WithAuthenticator returns a copy of s using authentication strategy
// a. A nil a removes authentication.
func (s Services) WithAuthenticator(a Authenticator) Services {
	s.auth = a
	return s
}

// WithRetryPolicy returns a copy of s using retry policy p. A nil p
// disables retries.
func (s Services) WithRetryPolicy(p retry.Policy) Services {
	s.retry = p
	return s
}

// WithSerializer returns a copy of s using request serializer z. A nil
// z restores the raw serializer.
func (s Services) WithSerializer(z serial.Serializer) Services {
	s.serializer = z
	return s
}

// WithDeserializer returns a copy of s using response deserializer d.
// A nil d restores the raw deserializer.
func (s Services) WithDeserializer(d serial.Deserializer) Services {
	s.deserializer = d
	return s
}

// WithBeforeRequest returns a copy of s whose before-request chain has
// h appended. The receiver's chain is unaffected.
func (s Services) WithBeforeRequest(h BeforeRequestHandler) Services {
	if h == nil {
		panic("apiclient: nil handler")
	}
	s.before = append(s.before[:len(s.before):len(s.before)], h)
	return s
}

// WithAfterResponse returns a copy of s whose after-response chain has
// h appended. The receiver's chain is unaffected.
func (s Services) WithAfterResponse(h AfterResponseHandler) Services {
	if h == nil {
		panic("apiclient: nil handler")
	}
	s.after = append(s.after[:len(s.after):len(s.after)], h)
	return s
}

// WithAttemptTimeout returns a copy of s using attempt timeout policy
// p. A nil p removes the attempt timeout.
func (s Services) WithAttemptTimeout(p timeout.Policy) Services {
	s.attemptTimeout = p
	return s
}

// WithEvents returns a copy of s using event handler group g.
func (s Services) WithEvents(g *HandlerGroup) Services {
	s.events = g
	return s
}
