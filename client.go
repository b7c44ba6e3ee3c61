// Copyright 2021 The apiclient Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package apiclient

import (
	"context"
	"io"
	"net/http"
	"time"
)

// DefaultClient is the RequestClient used by descriptors with no
// transport configured. It sends through http.DefaultClient.
var DefaultClient RequestClient = &HTTPClient{}

// HTTPClient is a RequestClient which sends requests through an
// HTTPDoer, typically an *http.Client from net/http. Its zero value
// uses http.DefaultClient.
//
// HTTPClient reads and buffers the entire response body. The HTTPDoer
// is responsible for all details of sending the request and receiving
// the response, such as connection pooling, redirects and cookies, so
// consult its documentation for those behaviours. HTTPClient is safe
// for concurrent use if the HTTPDoer is.
type HTTPClient struct {
	// Doer specifies the mechanics of sending HTTP requests and
	// receiving responses.
	//
	// If Doer is nil, http.DefaultClient from the standard net/http
	// package is used.
	Doer HTTPDoer
}

// Execute converts r into an *http.Request, sends it, and buffers the
// response.
//
// Failures to resolve or serialize r are returned as an *Error. Any
// other error, including failures to read the response body, is
// returned as an *url.Error.
func (c *HTTPClient) Execute(ctx context.Context, r Request) (*Response, error) {
	u, err := r.URL()
	if err != nil {
		return nil, err
	}

	body, contentType, err := r.Payload(ctx)
	if err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, r.Method(), u, body)
	if err != nil {
		return nil, urlErrorWrap(r.Method(), u, err)
	}
	r.Headers().Each(req.Header.Add)
	if contentType != "" && req.Header.Get(HeaderContentType) == "" {
		req.Header.Set(HeaderContentType, contentType)
	}
	if r.ContentEncoding() != "" {
		req.Header.Set(HeaderContentEncoding, r.ContentEncoding())
	}

	start := time.Now()
	resp, err := c.doer().Do(req)
	if err != nil {
		return nil, urlErrorWrap(r.Method(), u, err)
	}
	defer func() {
		_ = resp.Body.Close()
	}()

	b, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, urlErrorWrap(r.Method(), u, err)
	}

	out := NewResponse(resp.StatusCode, resp.Header, b)
	out.elapsed = time.Since(start)
	return out, nil
}

// CloseIdleConnections invokes the same method on the client's
// underlying HTTPDoer.
//
// If the HTTPDoer has no CloseIdleConnections method, this method does
// nothing.
func (c *HTTPClient) CloseIdleConnections() {
	if ic, ok := c.doer().(IdleCloser); ok {
		ic.CloseIdleConnections()
	}
}

func (c *HTTPClient) doer() HTTPDoer {
	if c.Doer == nil {
		return http.DefaultClient
	}

	return c.Doer
}
