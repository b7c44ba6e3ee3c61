// Copyright 2021 The apiclient Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package config

import (
	"time"
)

// Serialization formats accepted by Settings.Serialization.
const (
	SerializationRaw  = "raw"
	SerializationJSON = "json"
	SerializationXML  = "xml"
	SerializationYAML = "yaml"
)

// Settings describes a template request descriptor and its transport.
type Settings struct {
	// Name is the logical name given to requests.
	Name string `koanf:"name"`
	// BaseURL is the absolute URL every resource is resolved against.
	BaseURL string `koanf:"base_url" validate:"required,url"`
	// Timeout bounds each execution, including retries. Zero means no
	// bound.
	Timeout time.Duration `koanf:"timeout" validate:"gte=0"`
	// AttemptTimeout bounds each attempt. Zero means no bound.
	AttemptTimeout time.Duration `koanf:"attempt_timeout" validate:"gte=0"`
	// UserAgent, if set, is sent unless a request sets its own.
	UserAgent string `koanf:"user_agent"`
	// Headers are added to every request.
	Headers map[string]string `koanf:"headers"`
	// Serialization is the body format used both ways.
	Serialization string `koanf:"serialization" validate:"oneof=raw json xml yaml"`
	// CorrelationHeader, if set, carries a per-attempt correlation id.
	CorrelationHeader string `koanf:"correlation_header"`
	// TracePropagation injects the caller's trace context into
	// outgoing requests.
	TracePropagation bool `koanf:"trace_propagation"`

	Retry     RetrySettings     `koanf:"retry"`
	RateLimit RateLimitSettings `koanf:"rate_limit"`
	Transport TransportSettings `koanf:"transport"`
}

// RetrySettings configures exponential backoff.
type RetrySettings struct {
	Count       int           `koanf:"count" validate:"gte=0,lte=100"`
	OnTimeout   bool          `koanf:"on_timeout"`
	StatusCodes []int         `koanf:"status_codes" validate:"dive,gte=100,lte=599"`
	BaseWait    time.Duration `koanf:"base_wait" validate:"gt=0"`
	MaxWait     time.Duration `koanf:"max_wait" validate:"gtefield=BaseWait"`
}

// RateLimitSettings configures client-side throttling. A zero
// PerSecond disables it.
type RateLimitSettings struct {
	PerSecond float64 `koanf:"per_second" validate:"gte=0"`
	Burst     int     `koanf:"burst" validate:"gte=0"`
}

// TransportSettings configures the *http.Client built by HTTPClient.
type TransportSettings struct {
	MaxIdleConns        int           `koanf:"max_idle_conns" validate:"gte=0"`
	MaxIdleConnsPerHost int           `koanf:"max_idle_conns_per_host" validate:"gte=0"`
	IdleConnTimeout     time.Duration `koanf:"idle_conn_timeout" validate:"gte=0"`
	TLSHandshakeTimeout time.Duration `koanf:"tls_handshake_timeout" validate:"gte=0"`
	// HTTP2 enables HTTP/2 over TLS.
	HTTP2 bool `koanf:"http2"`
	// ReadIdleTimeout is the HTTP/2 health check interval. Zero
	// disables health checks.
	ReadIdleTimeout time.Duration `koanf:"read_idle_timeout" validate:"gte=0"`
	// PingTimeout is how long an HTTP/2 health check may take.
	PingTimeout time.Duration `koanf:"ping_timeout" validate:"gte=0"`
}

func defaults() map[string]any {
	return map[string]any{
		"serialization": SerializationJSON,

		"retry.count":      0,
		"retry.on_timeout": false,
		"retry.base_wait":  "100ms",
		"retry.max_wait":   "10s",

		"rate_limit.per_second": 0,
		"rate_limit.burst":      1,

		"transport.max_idle_conns":          100,
		"transport.max_idle_conns_per_host": 10,
		"transport.idle_conn_timeout":       "90s",
		"transport.tls_handshake_timeout":   "10s",
		"transport.http2":                   true,
		"transport.read_idle_timeout":       "30s",
		"transport.ping_timeout":            "15s",
	}
}
