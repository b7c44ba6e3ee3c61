// Copyright 2021 The apiclient Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package apiclient

import (
	"github.com/gogama/apiclient/retry"
	"github.com/gogama/apiclient/serial"
	"github.com/gogama/apiclient/timeout"
	"github.com/gogama/apiclient/token"
)

// DefaultRetryCount is the retry count used by RetryDefault.
const DefaultRetryCount = 5

// WithClient returns a copy of r sending through transport c.
func (r Request) WithClient(c RequestClient) Request {
	r.services = r.services.WithClient(c)
	return r
}

// Authentication returns a copy of r using authentication strategy a.
// A nil a removes authentication.
func (r Request) Authentication(a Authenticator) Request {
	r.services = r.services.WithAuthenticator(a)
	return r
}

// BasicAuthentication returns a copy of r which sends HTTP Basic
// credentials on every attempt.
func (r Request) BasicAuthentication(username, password string) Request {
	return r.Authentication(BasicAuth{Username: username, Password: password})
}

// BearerTokenAuthentication returns a copy of r which obtains a token
// from p on every attempt and sends it as a bearer token. Wrap p with
// token.Cached to avoid fetching a fresh token each time.
func (r Request) BearerTokenAuthentication(p token.Provider) Request {
	return r.Authentication(BearerTokenAuth{Provider: p})
}

// CookieAuthentication returns a copy of r which obtains a token from p
// on every attempt and sends it as the Cookie header.
func (r Request) CookieAuthentication(p token.Provider) Request {
	return r.Authentication(CookieAuth{Provider: p})
}

// Authorization returns a copy of r with the Authorization header set
// to value, replacing any existing value.
func (r Request) Authorization(value string) Request {
	return r.setHeader(HeaderAuthorization, value)
}

// Cookie returns a copy of r with the Cookie header set to value,
// replacing any existing value.
func (r Request) Cookie(value string) Request {
	return r.setHeader(HeaderCookie, value)
}

// Retry returns a copy of r which retries transient failures with
// exponential backoff, at most retryCount times. Timeouts are retried
// only if retryOnTimeout is true.
func (r Request) Retry(retryCount int, retryOnTimeout bool) Request {
	return r.RetryPolicy(retry.NewBackoff(retryCount, retryOnTimeout))
}

// RetryDefault returns a copy of r which retries connection failures
// with exponential backoff, at most DefaultRetryCount times.
func (r Request) RetryDefault() Request {
	return r.Retry(DefaultRetryCount, false)
}

// RetryPolicy returns a copy of r using retry policy p. A nil p
// disables retries.
func (r Request) RetryPolicy(p retry.Policy) Request {
	r.services = r.services.WithRetryPolicy(p)
	return r
}

// AttemptTimeout returns a copy of r bounding each attempt using
// policy p.
func (r Request) AttemptTimeout(p timeout.Policy) Request {
	r.services = r.services.WithAttemptTimeout(p)
	return r
}

// RequestSerializer returns a copy of r serializing object bodies
// with s.
func (r Request) RequestSerializer(s serial.Serializer) Request {
	r.services = r.services.WithSerializer(s)
	return r
}

// ResponseDeserializer returns a copy of r decoding responses with d.
func (r Request) ResponseDeserializer(d serial.Deserializer) Request {
	r.services = r.services.WithDeserializer(d)
	return r
}

// JSONRequestSerialization returns a copy of r serializing object
// bodies as JSON.
func (r Request) JSONRequestSerialization() Request {
	return r.RequestSerializer(serial.JSON)
}

// JSONResponseSerialization returns a copy of r decoding responses
// as JSON.
func (r Request) JSONResponseSerialization() Request {
	return r.ResponseDeserializer(serial.JSON)
}

// JSONSerialization returns a copy of r using JSON both ways.
func (r Request) JSONSerialization() Request {
	return r.JSONRequestSerialization().JSONResponseSerialization()
}

// XMLRequestSerialization returns a copy of r serializing object
// bodies as XML.
func (r Request) XMLRequestSerialization() Request {
	return r.RequestSerializer(serial.XML)
}

// XMLResponseSerialization returns a copy of r decoding responses
// as XML.
func (r Request) XMLResponseSerialization() Request {
	return r.ResponseDeserializer(serial.XML)
}

// YAMLRequestSerialization returns a copy of r serializing object
// bodies as YAML.
func (r Request) YAMLRequestSerialization() Request {
	return r.RequestSerializer(serial.YAML)
}

// YAMLResponseSerialization returns a copy of r decoding responses
// as YAML.
func (r Request) YAMLResponseSerialization() Request {
	return r.ResponseDeserializer(serial.YAML)
}

// BeforeRequest returns a copy of r whose before-request chain has h
// appended. Descriptors derived earlier from r do not see h.
func (r Request) BeforeRequest(h BeforeRequestHandler) Request {
	r.services = r.services.WithBeforeRequest(h)
	return r
}

// AfterResponse returns a copy of r whose after-response chain has h
// appended. Descriptors derived earlier from r do not see h.
func (r Request) AfterResponse(h AfterResponseHandler) Request {
	r.services = r.services.WithAfterResponse(h)
	return r
}

// Observe returns a copy of r which runs event handler h whenever evt
// occurs during an execution.
func (r Request) Observe(evt Event, h Handler) Request {
	r.services = r.services.WithEvents(r.services.Events().With(evt, h))
	return r
}
