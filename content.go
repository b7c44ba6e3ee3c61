// Copyright 2021 The apiclient Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package apiclient

import (
	"bytes"
	"context"
	"io"
	"sync"

	"github.com/gogama/apiclient/serial"
)

// MediaTypeOctetStream is the content type hint of raw byte content
// with no declared type.
const MediaTypeOctetStream = "application/octet-stream"

// Content is a request body.
//
// The built-in implementations are Buffered, Streamed, and Object.
// Open is called once per attempt with the serializer configured on the
// descriptor being sent, so implementations must be safe for
// concurrent use and able to produce their bytes more than once.
type Content interface {
	// Open returns a reader over the body bytes for one attempt.
	Open(ctx context.Context, s serial.Serializer) (io.Reader, error)
	// ContentTypeHint returns the content type to send when the
	// descriptor has no explicit content type.
	ContentTypeHint(s serial.Serializer) string
}

// Buffered is content held in memory as raw bytes.
type Buffered struct {
	data        []byte
	contentType string
}

// NewBuffered returns Buffered content holding a copy of b. An empty
// contentType means application/octet-stream.
func NewBuffered(b []byte, contentType string) *Buffered {
	data := make([]byte, len(b))
	copy(data, b)
	return &Buffered{data: data, contentType: contentType}
}

// Bytes returns a copy of the content bytes.
func (c *Buffered) Bytes() []byte {
	b := make([]byte, len(c.data))
	copy(b, c.data)
	return b
}

// Open returns a new reader over the bytes. The serializer is ignored.
func (c *Buffered) Open(_ context.Context, _ serial.Serializer) (io.Reader, error) {
	return bytes.NewReader(c.data), nil
}

// ContentTypeHint returns the content type given to NewBuffered, or
// application/octet-stream.
func (c *Buffered) ContentTypeHint(_ serial.Serializer) string {
	if c.contentType != "" {
		return c.contentType
	}
	return MediaTypeOctetStream
}

// Streamed is content read from an io.Reader.
//
// The reader is consumed at most once: the first Open drains it into
// memory (closing it if it is an io.Closer) and every Open, including
// the first, replays the drained bytes. A read failure is remembered
// and returned by every later Open.
type Streamed struct {
	once        sync.Once
	src         io.Reader
	data        []byte
	err         error
	contentType string
}

// NewStreamed returns Streamed content reading from r.
//
// An empty contentType means the serializer's content type at send
// time, or application/octet-stream if the serializer declares none.
func NewStreamed(r io.Reader, contentType string) *Streamed {
	return &Streamed{src: r, contentType: contentType}
}

// Open drains the source on first use and returns a reader over the
// drained bytes.
func (c *Streamed) Open(ctx context.Context, _ serial.Serializer) (io.Reader, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	c.once.Do(func() {
		c.data, c.err = serial.Bytes(c.src)
		c.src = nil
	})
	if c.err != nil {
		return nil, c.err
	}
	return bytes.NewReader(c.data), nil
}

// ContentTypeHint returns the content type given to NewStreamed, else
// the serializer's content type, else application/octet-stream.
func (c *Streamed) ContentTypeHint(s serial.Serializer) string {
	if c.contentType != "" {
		return c.contentType
	}
	if s != nil && s.ContentType() != "" {
		return s.ContentType()
	}
	return MediaTypeOctetStream
}

// Object is a typed payload serialized at send time.
//
// Serialization happens on every Open, using the serializer of the
// descriptor actually being sent, so changing the serializer after
// attaching the body changes the bytes sent, and each attempt gets
// freshly serialized bytes.
type Object struct {
	value interface{}
}

// NewObject returns Object content for v.
func NewObject(v interface{}) Object {
	return Object{value: v}
}

// Value returns the payload.
func (c Object) Value() interface{} {
	return c.value
}

// Open serializes the payload with s.
func (c Object) Open(_ context.Context, s serial.Serializer) (io.Reader, error) {
	if s == nil {
		s = serial.Raw
	}
	b, err := s.Serialize(c.value)
	if err != nil {
		return nil, err
	}
	return bytes.NewReader(b), nil
}

// ContentTypeHint returns the serializer's content type.
func (c Object) ContentTypeHint(s serial.Serializer) string {
	if s == nil {
		return ""
	}
	return s.ContentType()
}
