// Copyright 2021 The apiclient Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package observe

import (
	"net/http"
	"net/textproto"
	"net/url"

	"github.com/gogama/apiclient"
	"github.com/gogama/apiclient/request"
	"github.com/rs/zerolog"
)

// MaskValue replaces the values of redacted headers.
const MaskValue = "***"

// SensitiveHeaders are the headers whose values Redact masks.
var SensitiveHeaders = []string{
	"Authorization",
	"Proxy-Authorization",
	"Cookie",
	"Set-Cookie",
	"X-Api-Key",
}

// Logger is an event handler which writes one structured log entry per
// attempt and one per execution to Log.
//
// Attempts are logged at debug level, or warn level if the attempt
// failed. Retry waits are logged at info level. The end of an execution
// is logged at info level, or error level if it failed.
type Logger struct {
	// Log receives the entries.
	Log zerolog.Logger
	// Headers adds the response headers, redacted, to attempt entries.
	Headers bool
}

// Handle logs evt.
func (l Logger) Handle(evt apiclient.Event, e *request.Execution) {
	var entry *zerolog.Event
	switch evt {
	case apiclient.AfterAttempt:
		if e.Err != nil {
			entry = l.Log.Warn().Err(e.Err).Stringer("transience", e.Transience())
		} else {
			entry = l.Log.Debug().Int("status", e.StatusCode)
			if l.Headers {
				entry = entry.Interface("headers", Redact(e.Header))
			}
		}
		entry = entry.Int("attempt", e.Attempt)
	case apiclient.BeforeRetryWait:
		entry = l.Log.Info().Int("attempt", e.Attempt).Dur("wait", e.Wait)
	case apiclient.AfterExecutionTimeout:
		entry = l.Log.Warn().Dur("elapsed", e.Duration())
	case apiclient.AfterExecutionEnd:
		if e.Err != nil {
			entry = l.Log.Error().Err(e.Err)
		} else {
			entry = l.Log.Info().Int("status", e.StatusCode)
		}
		entry = entry.Int("attempts", e.Attempt+1).Dur("elapsed", e.Duration())
	default:
		return
	}

	entry.
		Str("event", evt.Name()).
		Str("name", e.Name).
		Str("method", e.Method).
		Str("url", redactURL(e.URL)).
		Msg("apiclient")
}

// Redact returns a copy of h with the values of SensitiveHeaders
// replaced by MaskValue.
func Redact(h http.Header) http.Header {
	if h == nil {
		return nil
	}
	out := h.Clone()
	for _, name := range SensitiveHeaders {
		key := textproto.CanonicalMIMEHeaderKey(name)
		if vs, ok := out[key]; ok {
			masked := make([]string, len(vs))
			for i := range masked {
				masked[i] = MaskValue
			}
			out[key] = masked
		}
	}
	return out
}

func redactURL(s string) string {
	u, err := url.Parse(s)
	if err != nil {
		return s
	}
	return u.Redacted()
}
