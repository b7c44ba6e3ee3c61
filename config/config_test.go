// Copyright 2021 The apiclient Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package config

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/gogama/apiclient"
	"github.com/gogama/apiclient/retry"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sampleYAML = `
name: inventory
base_url: https://api.example.com/v1
timeout: 30s
attempt_timeout: 2s
user_agent: inventory/1.0
serialization: yaml
headers:
  X-Tenant: acme
retry:
  count: 3
  on_timeout: true
  status_codes: [502, 503]
  base_wait: 50ms
  max_wait: 1s
rate_limit:
  per_second: 5
  burst: 2
transport:
  http2: false
`

func TestLoad_Defaults(t *testing.T) {
	s, err := Load(Map(map[string]any{"base_url": "https://api.example.com"}))
	require.NoError(t, err)
	assert.Equal(t, "https://api.example.com", s.BaseURL)
	assert.Equal(t, SerializationJSON, s.Serialization)
	assert.Equal(t, 0, s.Retry.Count)
	assert.Equal(t, 100*time.Millisecond, s.Retry.BaseWait)
	assert.Equal(t, 10*time.Second, s.Retry.MaxWait)
	assert.True(t, s.Transport.HTTP2)
	assert.Equal(t, 90*time.Second, s.Transport.IdleConnTimeout)
	assert.Equal(t, 30*time.Second, s.Transport.ReadIdleTimeout)
	assert.Equal(t, 1, s.RateLimit.Burst)
}

func TestLoad_YAML(t *testing.T) {
	s, err := Load(YAML([]byte(sampleYAML)))
	require.NoError(t, err)
	assert.Equal(t, "inventory", s.Name)
	assert.Equal(t, 30*time.Second, s.Timeout)
	assert.Equal(t, 2*time.Second, s.AttemptTimeout)
	assert.Equal(t, SerializationYAML, s.Serialization)
	assert.Equal(t, map[string]string{"X-Tenant": "acme"}, s.Headers)
	assert.Equal(t, RetrySettings{
		Count:       3,
		OnTimeout:   true,
		StatusCodes: []int{502, 503},
		BaseWait:    50 * time.Millisecond,
		MaxWait:     time.Second,
	}, s.Retry)
	assert.Equal(t, 5.0, s.RateLimit.PerSecond)
	assert.False(t, s.Transport.HTTP2)
}

func TestLoad_File(t *testing.T) {
	path := filepath.Join(t.TempDir(), "client.yaml")
	require.NoError(t, os.WriteFile(path, []byte(sampleYAML), 0o600))

	s, err := Load(File(path))
	require.NoError(t, err)
	assert.Equal(t, "inventory", s.Name)

	_, err = Load(File(filepath.Join(t.TempDir(), "missing.yaml")))
	assert.ErrorContains(t, err, "missing.yaml")
}

func TestLoad_Layering(t *testing.T) {
	t.Setenv("APICLIENT_RETRY__COUNT", "7")
	t.Setenv("APICLIENT_USER_AGENT", "from-env")
	t.Setenv("OTHER_RETRY__COUNT", "9")

	s, err := Load(YAML([]byte(sampleYAML)), Map(map[string]any{"name": "override", "retry.count": 4}))
	require.NoError(t, err)
	assert.Equal(t, "override", s.Name)
	assert.Equal(t, 7, s.Retry.Count)
	assert.Equal(t, "from-env", s.UserAgent)
	assert.Equal(t, "https://api.example.com/v1", s.BaseURL)
}

func TestLoad_Env(t *testing.T) {
	t.Setenv("CLIENT_BASE_URL", "https://env.example.com")
	t.Setenv("CLIENT_TRANSPORT__HTTP2", "false")

	s, err := Load(Env("CLIENT_"))
	require.NoError(t, err)
	assert.Equal(t, "https://env.example.com", s.BaseURL)
	assert.False(t, s.Transport.HTTP2)
}

func TestLoad_Invalid(t *testing.T) {
	testCases := []struct {
		name   string
		values map[string]any
		field  string
	}{
		{"missing base URL", map[string]any{}, "Settings.BaseURL"},
		{"relative base URL", map[string]any{"base_url": "/v1"}, "Settings.BaseURL"},
		{"unknown serialization", map[string]any{"base_url": "https://x.test", "serialization": "toml"}, "Settings.Serialization"},
		{"negative retry count", map[string]any{"base_url": "https://x.test", "retry.count": -1}, "Settings.Retry.Count"},
		{"max wait below base", map[string]any{"base_url": "https://x.test", "retry.base_wait": "1s", "retry.max_wait": "10ms"}, "Settings.Retry.MaxWait"},
		{"bad status code", map[string]any{"base_url": "https://x.test", "retry.status_codes": []int{42}}, "Settings.Retry.StatusCodes[0]"},
		{"negative timeout", map[string]any{"base_url": "https://x.test", "timeout": "-1s"}, "Settings.Timeout"},
	}
	for _, testCase := range testCases {
		t.Run(testCase.name, func(t *testing.T) {
			_, err := Load(Map(testCase.values))
			var verr *ValidationError
			require.ErrorAs(t, err, &verr)
			var fields []string
			for _, f := range verr.Fields {
				fields = append(fields, f.Field)
			}
			assert.Contains(t, fields, testCase.field)
			assert.Contains(t, err.Error(), "apiclient/config: invalid settings")
		})
	}
}

func TestSettings_HTTPClient(t *testing.T) {
	s := &Settings{Transport: TransportSettings{
		MaxIdleConns:    5,
		IdleConnTimeout: time.Minute,
		HTTP2:           true,
		ReadIdleTimeout: time.Second,
	}}
	c, err := s.HTTPClient()
	require.NoError(t, err)
	tr, ok := c.Transport.(*http.Transport)
	require.True(t, ok)
	assert.Equal(t, 5, tr.MaxIdleConns)
	assert.Equal(t, time.Minute, tr.IdleConnTimeout)
	assert.Contains(t, tr.TLSNextProto, "h2")

	s.Transport.HTTP2 = false
	c, err = s.HTTPClient()
	require.NoError(t, err)
	assert.NotContains(t, c.Transport.(*http.Transport).TLSNextProto, "h2")
}

func TestSettings_Template(t *testing.T) {
	var received http.Header
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
		received = req.Header.Clone()
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(map[string]string{"path": req.URL.Path})
	}))
	defer server.Close()

	s, err := Load(Map(map[string]any{
		"name":                  "svc",
		"base_url":              server.URL + "/v1",
		"user_agent":            "svc/2",
		"correlation_header":    "X-Request-ID",
		"trace_propagation":     true,
		"headers":               map[string]any{"X-Tenant": "acme"},
		"rate_limit.per_second": 1000,
		"attempt_timeout":       "5s",
		"retry.count":           2,
	}))
	require.NoError(t, err)

	api, err := s.Template()
	require.NoError(t, err)
	assert.Equal(t, "svc", api.Name())
	b, ok := api.Services().RetryPolicy().(retry.Backoff)
	require.True(t, ok)
	assert.Equal(t, 2, b.RetryCount())
	assert.Len(t, api.Services().BeforeRequestHandlers(), 4)

	body, err := apiclient.Into[map[string]string](api.Get(context.Background(), "/items"))
	require.NoError(t, err)
	assert.Equal(t, "/v1/items", body["path"])
	assert.Equal(t, "svc/2", received.Get("User-Agent"))
	assert.Equal(t, "acme", received.Get("X-Tenant"))
	assert.NotEmpty(t, received.Get("X-Request-ID"))
}

func TestSettings_TemplateNoRetry(t *testing.T) {
	s, err := Load(Map(map[string]any{"base_url": "https://x.test", "serialization": "raw"}))
	require.NoError(t, err)
	api, err := s.Template()
	require.NoError(t, err)
	_, isBackoff := api.Services().RetryPolicy().(retry.Backoff)
	assert.False(t, isBackoff)
	assert.Empty(t, api.Services().BeforeRequestHandlers())
}
