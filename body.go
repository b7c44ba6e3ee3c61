// Copyright 2021 The apiclient Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package apiclient

import (
	"io"
	"net/url"
	"strings"

	"github.com/gogama/apiclient/pairs"
	"github.com/gogama/apiclient/serial"
)

const (
	charsetUTF8       = "; charset=utf-8"
	mediaTypeText     = "text/plain"
	mediaTypeFormUTF8 = serial.MediaTypeForm + charsetUTF8
)

// Body returns a copy of r whose body is the object v, serialized when
// the request is sent using the serializer configured at that time.
// The explicit content type is cleared, so the serializer's content
// type is sent.
func (r Request) Body(v interface{}) Request {
	return r.withContent(NewObject(v))
}

// BytesBody returns a copy of r whose body is a copy of b. An empty
// contentType means application/octet-stream.
func (r Request) BytesBody(b []byte, contentType string) Request {
	return r.withContent(NewBuffered(b, contentType))
}

// StreamBody returns a copy of r whose body is read from rd. The
// reader is drained on the first attempt and the same bytes are
// replayed on retries. An empty contentType means the serializer's
// content type, or application/octet-stream if it declares none.
func (r Request) StreamBody(rd io.Reader, contentType string) Request {
	return r.withContent(NewStreamed(rd, contentType))
}

// TextBody returns a copy of r whose body is the UTF-8 encoding of s,
// sent with content type mediaType plus a UTF-8 charset parameter. An
// empty mediaType means text/plain.
func (r Request) TextBody(s, mediaType string) Request {
	if mediaType == "" {
		mediaType = mediaTypeText
	}
	return r.withContent(NewBuffered([]byte(s), mediaType+charsetUTF8))
}

// FormBody returns a copy of r whose body is the URL-encoded form
// values, in sorted key order.
func (r Request) FormBody(values url.Values) Request {
	return r.withContent(NewBuffered([]byte(values.Encode()), mediaTypeFormUTF8))
}

// FormPairs returns a copy of r whose body is the URL-encoded form of
// the given pairs, in the order given.
func (r Request) FormPairs(ps ...pairs.Pair) Request {
	var b strings.Builder
	for i, p := range ps {
		if i > 0 {
			b.WriteByte('&')
		}
		b.WriteString(url.QueryEscape(p.Key))
		b.WriteByte('=')
		b.WriteString(url.QueryEscape(p.Value))
	}
	return r.withContent(NewBuffered([]byte(b.String()), mediaTypeFormUTF8))
}

// WithContent returns a copy of r with body c. A nil c removes the body.
func (r Request) WithContent(c Content) Request {
	return r.withContent(c)
}

func (r Request) withContent(c Content) Request {
	r.content = c
	r.contentType = ""
	return r
}
