// Copyright 2021 The apiclient Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package config

import (
	"fmt"
	"math/rand"
	"net"
	"net/http"
	"time"

	"github.com/gogama/apiclient"
	"github.com/gogama/apiclient/interceptor"
	"github.com/gogama/apiclient/retry"
	"github.com/gogama/apiclient/timeout"
	"golang.org/x/net/http2"
	"golang.org/x/time/rate"
)

// Template builds the template request descriptor described by s,
// sending through a client built by HTTPClient.
func (s *Settings) Template() (apiclient.Request, error) {
	client, err := s.HTTPClient()
	if err != nil {
		return apiclient.Request{}, err
	}

	r := apiclient.New().
		WithName(s.Name).
		WithBaseURL(s.BaseURL).
		WithTimeout(s.Timeout).
		WithHeaders(s.Headers).
		WithClient(&apiclient.HTTPClient{Doer: client}).
		RetryPolicy(s.retryPolicy())

	if s.AttemptTimeout > 0 {
		r = r.AttemptTimeout(timeout.Fixed(s.AttemptTimeout))
	}

	switch s.Serialization {
	case SerializationJSON:
		r = r.JSONSerialization()
	case SerializationXML:
		r = r.XMLRequestSerialization().XMLResponseSerialization()
	case SerializationYAML:
		r = r.YAMLRequestSerialization().YAMLResponseSerialization()
	}

	if s.UserAgent != "" {
		r = r.BeforeRequest(interceptor.UserAgent(s.UserAgent))
	}
	if s.CorrelationHeader != "" {
		r = r.BeforeRequest(interceptor.CorrelationID(s.CorrelationHeader))
	}
	if s.TracePropagation {
		r = r.BeforeRequest(interceptor.TraceContext(nil))
	}
	if s.RateLimit.PerSecond > 0 {
		burst := s.RateLimit.Burst
		if burst < 1 {
			burst = 1
		}
		r = r.BeforeRequest(interceptor.RateLimit(rate.NewLimiter(rate.Limit(s.RateLimit.PerSecond), burst)))
	}

	return r, nil
}

func (s *Settings) retryPolicy() retry.Policy {
	if s.Retry.Count == 0 {
		return retry.Never
	}
	b := retry.NewBackoff(s.Retry.Count, s.Retry.OnTimeout)
	if len(s.Retry.StatusCodes) > 0 {
		b = b.WithStatusCodes(s.Retry.StatusCodes...)
	}
	return b.WithWaiter(retry.NewExpWaiter(s.Retry.BaseWait, s.Retry.MaxWait, rand.NewSource(time.Now().UnixNano())))
}

// HTTPClient builds an *http.Client from the transport settings. When
// HTTP2 is enabled the transport negotiates HTTP/2 over TLS and, if
// ReadIdleTimeout is set, health-checks idle HTTP/2 connections with
// pings.
func (s *Settings) HTTPClient() (*http.Client, error) {
	ts := s.Transport
	t := &http.Transport{
		Proxy: http.ProxyFromEnvironment,
		DialContext: (&net.Dialer{
			Timeout:   30 * time.Second,
			KeepAlive: 30 * time.Second,
		}).DialContext,
		MaxIdleConns:          ts.MaxIdleConns,
		MaxIdleConnsPerHost:   ts.MaxIdleConnsPerHost,
		IdleConnTimeout:       ts.IdleConnTimeout,
		TLSHandshakeTimeout:   ts.TLSHandshakeTimeout,
		ExpectContinueTimeout: time.Second,
	}

	if ts.HTTP2 {
		h2, err := http2.ConfigureTransports(t)
		if err != nil {
			return nil, fmt.Errorf("apiclient/config: configure http2: %w", err)
		}
		h2.ReadIdleTimeout = ts.ReadIdleTimeout
		h2.PingTimeout = ts.PingTimeout
	}

	return &http.Client{Transport: t}, nil
}
