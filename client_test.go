// Copyright 2021 The apiclient Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package apiclient

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/url"
	"strings"
	"syscall"
	"testing"

	"github.com/gogama/apiclient/serial"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestHTTPClient(t *testing.T) {
	t.Run("request conversion", testHTTPClientRequestConversion)
	t.Run("do error", testHTTPClientDoError)
	t.Run("read body error", testHTTPClientBodyError)
	t.Run("configuration error", testHTTPClientConfigurationError)
	t.Run("serialization error", testHTTPClientSerializationError)
	t.Run("close idle connections", testHTTPClientCloseIdleConnections)
	t.Run("servers", testHTTPClientServers)
}

func TestURLErrorOp(t *testing.T) {
	assert.Equal(t, "Get", urlErrorOp(""))
	assert.Equal(t, "Get", urlErrorOp("GET"))
	assert.Equal(t, "G", urlErrorOp("G"))
	assert.Equal(t, "Xyz", urlErrorOp("XYZ"))
	assert.Equal(t, "Put", urlErrorOp("PUT"))
}

func testHTTPClientRequestConversion(t *testing.T) {
	mockDoer := newMockHTTPDoer(t)
	c := &HTTPClient{Doer: mockDoer}
	r := New().
		WithBaseURL("https://api.example.com").
		WithResource("/items/{id}").
		WithRouteValue("id", "a b").
		WithQueryValue("q", "1").
		WithHeader("X-Multi", "a").
		WithHeader("X-Multi", "b").
		WithContentEncoding("gzip").
		WithMethod(http.MethodPost).
		TextBody("hello", "")

	var sent *http.Request
	var sentBody []byte
	mockDoer.On("Do", mock.Anything).Run(func(args mock.Arguments) {
		sent = args.Get(0).(*http.Request)
		sentBody, _ = io.ReadAll(sent.Body)
	}).Return(&http.Response{
		StatusCode: 201,
		Header:     http.Header{"X-Reply": {"yes"}},
		Body:       io.NopCloser(strings.NewReader("done")),
	}, nil).Once()

	resp, err := c.Execute(context.Background(), r)

	require.NoError(t, err)
	mockDoer.AssertExpectations(t)
	assert.Equal(t, http.MethodPost, sent.Method)
	assert.Equal(t, "https://api.example.com/items/a%20b?q=1", sent.URL.String())
	assert.Equal(t, []string{"a", "b"}, sent.Header.Values("X-Multi"))
	assert.Equal(t, "text/plain; charset=utf-8", sent.Header.Get("Content-Type"))
	assert.Equal(t, "gzip", sent.Header.Get("Content-Encoding"))
	assert.Equal(t, int64(5), sent.ContentLength)
	assert.Equal(t, []byte("hello"), sentBody)
	assert.Equal(t, 201, resp.StatusCode())
	assert.Equal(t, "yes", resp.HeaderValue("X-Reply"))
	assert.Equal(t, []byte("done"), resp.Body())
}

func testHTTPClientDoError(t *testing.T) {
	mockDoer := newMockHTTPDoer(t)
	c := &HTTPClient{Doer: mockDoer}
	mockDoer.On("Do", mock.Anything).Return(nil, syscall.ECONNREFUSED).Once()

	resp, err := c.Execute(context.Background(), New().WithBaseURL("http://x.test"))

	assert.Nil(t, resp)
	var urlErr *url.Error
	require.ErrorAs(t, err, &urlErr)
	assert.Equal(t, "Get", urlErr.Op)
	assert.Equal(t, "http://x.test", urlErr.URL)
	assert.Equal(t, syscall.ECONNREFUSED, urlErr.Err)
}

func testHTTPClientBodyError(t *testing.T) {
	mockDoer := newMockHTTPDoer(t)
	mockBody := newMockReadCloser(t)
	c := &HTTPClient{Doer: mockDoer}
	mockDoer.On("Do", mock.Anything).Return(&http.Response{StatusCode: 200, Body: mockBody}, nil).Once()
	mockBody.On("Read", mock.Anything).Return(0, syscall.ECONNRESET).Once()
	mockBody.On("Close").Return(nil).Once()

	resp, err := c.Execute(context.Background(), New().WithBaseURL("http://x.test"))

	assert.Nil(t, resp)
	assert.ErrorIs(t, err, syscall.ECONNRESET)
	mockBody.AssertExpectations(t)
}

func testHTTPClientConfigurationError(t *testing.T) {
	c := &HTTPClient{Doer: newMockHTTPDoer(t)}
	_, err := c.Execute(context.Background(), New().WithResource("relative/path"))
	assert.ErrorIs(t, err, ErrConfiguration)
}

func testHTTPClientSerializationError(t *testing.T) {
	c := &HTTPClient{Doer: newMockHTTPDoer(t)}
	r := New().WithBaseURL("http://x.test").JSONRequestSerialization().Body(make(chan int))
	_, err := c.Execute(context.Background(), r)
	assert.ErrorIs(t, err, ErrSerialization)
}

func testHTTPClientCloseIdleConnections(t *testing.T) {
	t.Run("doer without method", func(t *testing.T) {
		c := &HTTPClient{Doer: newMockHTTPDoer(t)}
		assert.NotPanics(t, c.CloseIdleConnections)
	})
	t.Run("doer with method", func(t *testing.T) {
		mockDoer := newMockHTTPDoerWithCloseIdleConnections(t)
		mockDoer.On("CloseIdleConnections").Return().Once()
		c := &HTTPClient{Doer: mockDoer}
		c.CloseIdleConnections()
		mockDoer.AssertExpectations(t)
	})
	t.Run("zero value", func(t *testing.T) {
		assert.NotPanics(t, (&HTTPClient{}).CloseIdleConnections)
	})
}

func testHTTPClientServers(t *testing.T) {
	for _, server := range servers {
		t.Run(serverName(server), func(t *testing.T) {
			r := serverRequest(server).
				JSONSerialization().
				WithRouteValue("id", "42").
				WithQueryValue("verbose", "true").
				WithHeader("X-Trace", "1").
				Body(map[string]string{"name": "widget"})

			resp, err := r.Put(context.Background(), "/items/{id}")

			require.NoError(t, err)
			assert.Equal(t, 200, resp.StatusCode())
			var got echo
			require.NoError(t, json.Unmarshal(resp.Body(), &got))
			assert.Equal(t, http.MethodPut, got.Method)
			assert.Equal(t, "/items/42", got.Path)
			assert.Equal(t, "verbose=true", got.RawQuery)
			assert.Equal(t, "1", got.Header.Get("X-Trace"))
			assert.Equal(t, serial.MediaTypeJSON, got.Header.Get("Content-Type"))
			assert.JSONEq(t, `{"name":"widget"}`, got.Body)
			if server == http2Server {
				assert.Equal(t, "HTTP/2.0", got.Proto)
			}
		})
	}
}

type mockHTTPDoer struct {
	mock.Mock
}

func newMockHTTPDoer(t *testing.T) *mockHTTPDoer {
	m := &mockHTTPDoer{}
	m.Test(t)
	return m
}

func (m *mockHTTPDoer) Do(req *http.Request) (*http.Response, error) {
	args := m.Called(req)
	err := args.Error(1)
	if resp, ok := args.Get(0).(*http.Response); ok {
		return resp, err
	}
	return nil, err
}

type mockHTTPDoerWithCloseIdleConnections struct {
	mockHTTPDoer
}

func newMockHTTPDoerWithCloseIdleConnections(t *testing.T) *mockHTTPDoerWithCloseIdleConnections {
	m := &mockHTTPDoerWithCloseIdleConnections{}
	m.Test(t)
	return m
}

func (m *mockHTTPDoerWithCloseIdleConnections) CloseIdleConnections() {
	m.Called()
}

type mockReadCloser struct {
	mock.Mock
}

func newMockReadCloser(t *testing.T) *mockReadCloser {
	m := &mockReadCloser{}
	m.Test(t)
	return m
}

func (m *mockReadCloser) Read(p []byte) (n int, err error) {
	args := m.Called(p)
	n = args.Int(0)
	err = args.Error(1)
	return
}

func (m *mockReadCloser) Close() error {
	args := m.Called()
	return args.Error(0)
}
