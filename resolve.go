// Copyright 2021 The apiclient Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package apiclient

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/url"
	"strings"

	"github.com/gogama/apiclient/pairs"
	"golang.org/x/net/http/httpguts"
)

var errNotAbsolute = errors.New("URL is not absolute")

// URL resolves the descriptor's URL: route values are substituted into
// the {name} placeholders of the resource template, the result is
// joined to the base URL, and query values are appended in insertion
// order.
//
// Route values are path-escaped. A placeholder with no route value, an
// unterminated or empty placeholder, and a result which is not an
// absolute URL are all errors of kind KindConfiguration.
func (r Request) URL() (string, error) {
	resource, err := expand(r.resource, r.RouteValues())
	if err != nil {
		return "", r.configError(r.resource, err)
	}

	raw := join(r.baseURL, resource)
	u, err := url.Parse(raw)
	if err != nil {
		return "", r.configError(raw, err)
	}
	if !u.IsAbs() || u.Host == "" {
		return "", r.configError(raw, errNotAbsolute)
	}

	q := r.QueryValues()
	if q.Len() > 0 {
		var b strings.Builder
		b.WriteString(u.RawQuery)
		q.Each(func(k, v string) {
			if b.Len() > 0 {
				b.WriteByte('&')
			}
			b.WriteString(url.QueryEscape(k))
			b.WriteByte('=')
			b.WriteString(url.QueryEscape(v))
		})
		u.RawQuery = b.String()
	}

	return u.String(), nil
}

// Payload realizes the body for one attempt. It returns a nil reader if
// the descriptor has no body. The content type is the explicit content
// type, if any, else the body's hint for the configured serializer.
//
// A failure to realize the body is an error of kind KindSerialization.
func (r Request) Payload(ctx context.Context) (io.Reader, string, error) {
	if r.content == nil {
		return nil, r.contentType, nil
	}

	s := r.services.Serializer()
	body, err := r.content.Open(ctx, s)
	if err != nil {
		u, uerr := r.URL()
		if uerr != nil {
			u = r.resource
		}
		return nil, "", newError(KindSerialization, r.Method(), u, 0, err)
	}

	contentType := r.contentType
	if contentType == "" {
		contentType = r.content.ContentTypeHint(s)
	}
	return body, contentType, nil
}

// resolve resolves the URL and validates the method and headers.
func (r Request) resolve() (string, error) {
	u, err := r.URL()
	if err != nil {
		return "", err
	}

	if !httpguts.ValidHeaderFieldName(r.Method()) {
		return u, r.configError(u, fmt.Errorf("invalid method %q", r.Method()))
	}

	for _, p := range r.headers.All() {
		if !httpguts.ValidHeaderFieldName(p.Key) {
			return u, r.configError(u, fmt.Errorf("invalid header name %q", p.Key))
		}
		if !httpguts.ValidHeaderFieldValue(p.Value) {
			return u, r.configError(u, fmt.Errorf("invalid value for header %q", p.Key))
		}
	}

	return u, nil
}

func (r Request) configError(u string, err error) *Error {
	return newError(KindConfiguration, r.Method(), u, 0, err)
}

func expand(template string, values pairs.Collection) (string, error) {
	if !strings.ContainsAny(template, "{}") {
		return template, nil
	}

	var b strings.Builder
	rest := template
	for {
		open := strings.IndexAny(rest, "{}")
		if open < 0 {
			b.WriteString(rest)
			return b.String(), nil
		}
		if rest[open] == '}' {
			return "", fmt.Errorf("unexpected '}' in resource template %q", template)
		}
		b.WriteString(rest[:open])
		rest = rest[open+1:]

		end := strings.IndexAny(rest, "{}")
		if end < 0 || rest[end] != '}' {
			return "", fmt.Errorf("unterminated placeholder in resource template %q", template)
		}
		name := rest[:end]
		if name == "" {
			return "", fmt.Errorf("empty placeholder in resource template %q", template)
		}
		v, ok := values.Get(name)
		if !ok {
			return "", fmt.Errorf("unresolved route value %q", name)
		}
		b.WriteString(url.PathEscape(v))
		rest = rest[end+1:]
	}
}

func join(base, resource string) string {
	if base == "" {
		return resource
	}
	if resource == "" {
		return base
	}
	if u, err := url.Parse(resource); err == nil && u.IsAbs() {
		return resource
	}
	if strings.HasPrefix(resource, "?") {
		return base + resource
	}
	return strings.TrimRight(base, "/") + "/" + strings.TrimLeft(resource, "/")
}
