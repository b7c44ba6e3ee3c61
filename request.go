// Copyright 2021 The apiclient Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package apiclient

import (
	"net/http"
	"time"

	"github.com/gogama/apiclient/pairs"
)

// Header names set by the package.
const (
	HeaderAuthorization   = "Authorization"
	HeaderCookie          = "Cookie"
	HeaderContentType     = "Content-Type"
	HeaderContentEncoding = "Content-Encoding"
)

// A Request is an immutable request descriptor: a complete description
// of an HTTP request and of the strategies used to execute it.
//
// Every method that "modifies" a Request returns a new Request and
// leaves the receiver unchanged. Unchanged parts (header collections,
// handler chains, strategies) are shared between the two by reference,
// which is safe because none of them is ever mutated. A Request may
// therefore be used as a template, shared by many goroutines, and
// branched freely:
//
//	api := apiclient.New().
//		WithBaseURL("https://api.example.com").
//		JSONSerialization().
//		BearerTokenAuthentication(token.Cached(fetch, time.Minute))
//	item, err := api.WithRouteValue("id", id).Get(ctx, "/items/{id}")
//
// The zero value, also returned by New, is the default descriptor: a
// GET with no URL, no body, no authentication, no retries, the raw
// serializer and deserializer, and no interceptors.
type Request struct {
	services        Services
	name            string
	baseURL         string
	method          string
	resource        string
	headers         pairs.Collection
	routeValues     pairs.Collection
	queryValues     pairs.Collection
	content         Content
	contentType     string
	contentEncoding string
	timeout         time.Duration
}

// New returns the default request descriptor.
func New() Request {
	return Request{}
}

// Services returns the strategy bundle.
func (r Request) Services() Services {
	return r.services
}

// Name returns the logical name of the request, used by interceptors
// and observers to identify it. The default is empty.
func (r Request) Name() string {
	return r.name
}

// BaseURL returns the base URL the resource is resolved against.
func (r Request) BaseURL() string {
	return r.baseURL
}

// Method returns the HTTP method. The default is GET.
func (r Request) Method() string {
	if r.method == "" {
		return http.MethodGet
	}
	return r.method
}

// Resource returns the resource path or template, possibly containing
// {name} route value placeholders.
func (r Request) Resource() string {
	return r.resource
}

// Headers returns the header collection.
func (r Request) Headers() pairs.Collection {
	return r.headers
}

// RouteValues returns the route value collection.
func (r Request) RouteValues() pairs.Collection {
	return replacing(r.routeValues)
}

// QueryValues returns the query value collection.
func (r Request) QueryValues() pairs.Collection {
	return replacing(r.queryValues)
}

// Content returns the request body, or nil if there is none.
func (r Request) Content() Content {
	return r.content
}

// ContentType returns the explicit content type, or an empty string if
// the content type is inferred from the body at send time.
func (r Request) ContentType() string {
	return r.contentType
}

// ContentEncoding returns the content encoding, or an empty string.
func (r Request) ContentEncoding() string {
	return r.contentEncoding
}

// Timeout returns the timeout bounding the whole execution, including
// retries. Zero means no timeout.
func (r Request) Timeout() time.Duration {
	return r.timeout
}

// WithServices returns a copy of r using strategy bundle s.
func (r Request) WithServices(s Services) Request {
	r.services = s
	return r
}

// WithName returns a copy of r with the given logical name.
func (r Request) WithName(name string) Request {
	r.name = name
	return r
}

// WithBaseURL returns a copy of r with the given base URL.
func (r Request) WithBaseURL(u string) Request {
	r.baseURL = u
	return r
}

// WithMethod returns a copy of r with the given HTTP method. The method
// is validated when the descriptor is executed.
func (r Request) WithMethod(method string) Request {
	r.method = method
	return r
}

// WithResource returns a copy of r with the given resource path or
// template. If resource is an absolute URL the base URL is ignored.
func (r Request) WithResource(resource string) Request {
	r.resource = resource
	return r
}

// WithHeader returns a copy of r with header key set to value in
// addition to any existing values of key. Headers with the same key are
// sent as multiple header instances, in the order added.
func (r Request) WithHeader(key, value string) Request {
	r.headers = r.headers.With(key, value)
	return r
}

// WithHeaders returns a copy of r with every entry of m added as a
// header, in sorted key order.
func (r Request) WithHeaders(m map[string]string) Request {
	r.headers = r.headers.WithMap(m)
	return r
}

// WithHeadersFrom returns a copy of r with the pairs produced by p
// added as headers.
func (r Request) WithHeadersFrom(p pairs.Pairer) Request {
	r.headers = r.headers.WithPairer(p)
	return r
}

// WithoutHeader returns a copy of r with every value of header key
// removed.
func (r Request) WithoutHeader(key string) Request {
	r.headers = r.headers.Without(key)
	return r
}

// WithRouteValue returns a copy of r with route value key set to
// value, replacing any existing value of key.
func (r Request) WithRouteValue(key, value string) Request {
	r.routeValues = replacing(r.routeValues).With(key, value)
	return r
}

// WithRouteValues returns a copy of r with every entry of m set as a
// route value.
func (r Request) WithRouteValues(m map[string]string) Request {
	r.routeValues = replacing(r.routeValues).WithMap(m)
	return r
}

// WithRouteValuesFrom returns a copy of r with the pairs produced by p
// set as route values.
func (r Request) WithRouteValuesFrom(p pairs.Pairer) Request {
	r.routeValues = replacing(r.routeValues).WithPairer(p)
	return r
}

// WithQueryValue returns a copy of r with query value key set to
// value, replacing any existing value of key.
func (r Request) WithQueryValue(key, value string) Request {
	r.queryValues = replacing(r.queryValues).With(key, value)
	return r
}

// WithQueryValues returns a copy of r with every entry of m set as a
// query value.
func (r Request) WithQueryValues(m map[string]string) Request {
	r.queryValues = replacing(r.queryValues).WithMap(m)
	return r
}

// WithQueryValuesFrom returns a copy of r with the pairs produced by p
// set as query values.
func (r Request) WithQueryValuesFrom(p pairs.Pairer) Request {
	r.queryValues = replacing(r.queryValues).WithPairer(p)
	return r
}

// WithContentType returns a copy of r with an explicit content type,
// overriding the type inferred from the body.
func (r Request) WithContentType(contentType string) Request {
	r.contentType = contentType
	return r
}

// WithContentEncoding returns a copy of r with the given content
// encoding. The body must already be encoded accordingly.
func (r Request) WithContentEncoding(encoding string) Request {
	r.contentEncoding = encoding
	return r
}

// WithTimeout returns a copy of r whose execution, including all
// retries, is bounded by d. Zero removes the timeout.
func (r Request) WithTimeout(d time.Duration) Request {
	if d < 0 {
		panic("apiclient: negative timeout")
	}
	r.timeout = d
	return r
}

func (r Request) setHeader(key, value string) Request {
	r.headers = r.headers.Set(key, value)
	return r
}

// replacing returns c if it already uses the Replace policy. Otherwise
// c is the zero Collection, and an empty Replace collection is returned.
func replacing(c pairs.Collection) pairs.Collection {
	if c.Policy() == pairs.Replace {
		return c
	}
	return pairs.New(pairs.Replace)
}
