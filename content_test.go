// Copyright 2021 The apiclient Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package apiclient

import (
	"context"
	"errors"
	"io"
	"net/url"
	"strings"
	"testing"

	"github.com/gogama/apiclient/pairs"
	"github.com/gogama/apiclient/serial"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuffered(t *testing.T) {
	src := []byte("hello")
	c := NewBuffered(src, "")
	src[0] = 'j'
	assert.Equal(t, []byte("hello"), c.Bytes())
	assert.Equal(t, MediaTypeOctetStream, c.ContentTypeHint(serial.JSON))
	assert.Equal(t, "text/csv", NewBuffered(nil, "text/csv").ContentTypeHint(serial.JSON))

	for i := 0; i < 2; i++ {
		rd, err := c.Open(context.Background(), serial.JSON)
		require.NoError(t, err)
		b, err := io.ReadAll(rd)
		require.NoError(t, err)
		assert.Equal(t, "hello", string(b))
	}
}

func TestStreamed(t *testing.T) {
	t.Run("replays", func(t *testing.T) {
		rc := &countingReadCloser{Reader: strings.NewReader("stream")}
		c := NewStreamed(rc, "")
		for i := 0; i < 3; i++ {
			rd, err := c.Open(context.Background(), serial.Raw)
			require.NoError(t, err)
			b, err := io.ReadAll(rd)
			require.NoError(t, err)
			assert.Equal(t, "stream", string(b))
		}
		assert.Equal(t, 1, rc.closes)
	})
	t.Run("read failure remembered", func(t *testing.T) {
		errRead := errors.New("read failed")
		c := NewStreamed(io.MultiReader(strings.NewReader("x"), errReader{errRead}), "")
		_, err := c.Open(context.Background(), serial.Raw)
		assert.ErrorIs(t, err, errRead)
		_, err = c.Open(context.Background(), serial.Raw)
		assert.ErrorIs(t, err, errRead)
	})
	t.Run("cancelled context", func(t *testing.T) {
		ctx, cancel := context.WithCancel(context.Background())
		cancel()
		_, err := NewStreamed(strings.NewReader("x"), "").Open(ctx, serial.Raw)
		assert.ErrorIs(t, err, context.Canceled)
	})
	t.Run("content type hint", func(t *testing.T) {
		assert.Equal(t, "text/csv", NewStreamed(nil, "text/csv").ContentTypeHint(serial.JSON))
		assert.Equal(t, serial.MediaTypeJSON, NewStreamed(nil, "").ContentTypeHint(serial.JSON))
		assert.Equal(t, MediaTypeOctetStream, NewStreamed(nil, "").ContentTypeHint(serial.Raw))
	})
}

func TestObject(t *testing.T) {
	type widget struct {
		Name string `json:"name" yaml:"name"`
	}
	c := NewObject(widget{Name: "w"})
	assert.Equal(t, widget{Name: "w"}, c.Value())

	read := func(s serial.Serializer) string {
		rd, err := c.Open(context.Background(), s)
		require.NoError(t, err)
		b, err := io.ReadAll(rd)
		require.NoError(t, err)
		return string(b)
	}
	assert.Equal(t, `{"name":"w"}`, read(serial.JSON))
	assert.Equal(t, "name: w\n", read(serial.YAML))
	assert.Equal(t, serial.MediaTypeJSON, c.ContentTypeHint(serial.JSON))
	assert.Empty(t, c.ContentTypeHint(serial.Raw))

	_, err := c.Open(context.Background(), serial.Raw)
	assert.ErrorIs(t, err, serial.ErrUnsupportedType)
}

func TestRequest_Payload(t *testing.T) {
	payload := func(t *testing.T, r Request) (string, string) {
		rd, contentType, err := r.Payload(context.Background())
		require.NoError(t, err)
		if rd == nil {
			return "<nil>", contentType
		}
		b, err := io.ReadAll(rd)
		require.NoError(t, err)
		return string(b), contentType
	}

	t.Run("no body", func(t *testing.T) {
		b, ct := payload(t, New())
		assert.Equal(t, "<nil>", b)
		assert.Empty(t, ct)
	})
	t.Run("object follows serializer at send time", func(t *testing.T) {
		r := New().Body(map[string]int{"n": 1}).JSONRequestSerialization()
		b, ct := payload(t, r)
		assert.Equal(t, `{"n":1}`, b)
		assert.Equal(t, serial.MediaTypeJSON, ct)

		b, ct = payload(t, r.YAMLRequestSerialization())
		assert.Equal(t, "n: 1\n", b)
		assert.Equal(t, serial.MediaTypeYAML, ct)
	})
	t.Run("explicit content type wins", func(t *testing.T) {
		_, ct := payload(t, New().JSONRequestSerialization().Body(1).WithContentType("application/vnd.x+json"))
		assert.Equal(t, "application/vnd.x+json", ct)
	})
	t.Run("body wither clears explicit content type", func(t *testing.T) {
		_, ct := payload(t, New().WithContentType("text/csv").BytesBody([]byte("x"), ""))
		assert.Equal(t, MediaTypeOctetStream, ct)
	})
	t.Run("bytes", func(t *testing.T) {
		b, ct := payload(t, New().BytesBody([]byte{1, 2}, "image/png"))
		assert.Equal(t, "\x01\x02", b)
		assert.Equal(t, "image/png", ct)
	})
	t.Run("text", func(t *testing.T) {
		b, ct := payload(t, New().TextBody("héllo", ""))
		assert.Equal(t, "héllo", b)
		assert.Equal(t, "text/plain; charset=utf-8", ct)
		_, ct = payload(t, New().TextBody("<p/>", "text/html"))
		assert.Equal(t, "text/html; charset=utf-8", ct)
	})
	t.Run("form values", func(t *testing.T) {
		b, ct := payload(t, New().FormBody(url.Values{"b": {"2"}, "a": {"1 2"}}))
		assert.Equal(t, "a=1+2&b=2", b)
		assert.Equal(t, "application/x-www-form-urlencoded; charset=utf-8", ct)
	})
	t.Run("form pairs keep order", func(t *testing.T) {
		b, _ := payload(t, New().FormPairs(pairs.Pair{Key: "z", Value: "&"}, pairs.Pair{Key: "a", Value: "1"}))
		assert.Equal(t, "z=%26&a=1", b)
	})
	t.Run("stream", func(t *testing.T) {
		r := New().JSONRequestSerialization().StreamBody(strings.NewReader(`{"raw":true}`), "")
		for i := 0; i < 2; i++ {
			b, ct := payload(t, r)
			assert.Equal(t, `{"raw":true}`, b)
			assert.Equal(t, serial.MediaTypeJSON, ct)
		}
	})
	t.Run("nil content removes body", func(t *testing.T) {
		b, _ := payload(t, New().TextBody("x", "").WithContent(nil))
		assert.Equal(t, "<nil>", b)
	})
	t.Run("serialization failure", func(t *testing.T) {
		_, _, err := New().JSONRequestSerialization().Body(make(chan int)).Payload(context.Background())
		assert.ErrorIs(t, err, ErrSerialization)
	})
}

type countingReadCloser struct {
	io.Reader
	closes int
}

func (c *countingReadCloser) Close() error {
	c.closes++
	return nil
}

type errReader struct {
	err error
}

func (r errReader) Read([]byte) (int, error) {
	return 0, r.err
}
