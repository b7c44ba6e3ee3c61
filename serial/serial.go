// Copyright 2021 The apiclient Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package serial

import (
	"errors"
	"fmt"
	"io"
)

// A Serializer converts a request body value into bytes.
//
// Implementations of Serializer must be safe for concurrent use by
// multiple goroutines.
type Serializer interface {
	// ContentType returns the media type of the bytes produced by
	// Serialize. An empty string means the serializer does not declare
	// a content type.
	ContentType() string
	// Serialize encodes v.
	Serialize(v interface{}) ([]byte, error)
}

// A Deserializer converts response body bytes into a value.
//
// Implementations of Deserializer must be safe for concurrent use by
// multiple goroutines.
type Deserializer interface {
	// Deserialize decodes b into the value pointed to by v.
	Deserialize(b []byte, v interface{}) error
}

// A Codec is both a Serializer and a Deserializer.
type Codec interface {
	Serializer
	Deserializer
}

// Raw is the pass-through codec. It serializes nil, string, []byte,
// io.Reader and io.ReadCloser values into their bytes, and deserializes
// into *[]byte, *string and io.Writer targets. It declares no content
// type.
var Raw Codec = raw{}

// ErrUnsupportedType is wrapped by the errors Raw returns when given a
// value of a type it cannot handle.
var ErrUnsupportedType = errors.New("apiclient/serial: unsupported type")

type raw struct{}

func (raw) ContentType() string {
	return ""
}

func (raw) Serialize(v interface{}) ([]byte, error) {
	return Bytes(v)
}

func (raw) Deserialize(b []byte, v interface{}) error {
	switch x := v.(type) {
	case *[]byte:
		*x = b
	case *string:
		*x = string(b)
	case io.Writer:
		_, err := x.Write(b)
		return err
	default:
		return fmt.Errorf("%w: cannot deserialize into %T", ErrUnsupportedType, v)
	}
	return nil
}

// Bytes converts a generic body value to a byte slice.
//
// The body parameter may be nil, or it may be a string, []byte,
// io.Reader, or io.ReadCloser. The conversion logic is:
//
// • If body is nil, a nil byte slice and no error is returned.
//
// • If body is a []byte, body itself and no error is returned.
//
// • If body is a string, the built-in conversion from string to byte
// slice, and no error, is returned.
//
// • If body is an io.Reader or io.ReadCloser, the result of reading
// the whole contents of the reader (and closing it if it implements
// Closer) is returned.
//
// • If body is any other type, a nil byte slice and an error wrapping
// ErrUnsupportedType is returned.
func Bytes(body interface{}) ([]byte, error) {
	switch x := body.(type) {
	case nil:
		return nil, nil
	case string:
		return []byte(x), nil
	case []byte:
		return x, nil
	case io.ReadCloser:
		b, err := io.ReadAll(x)
		if err != nil {
			_ = x.Close()
			return nil, err
		}
		if err = x.Close(); err != nil {
			return nil, err
		}
		return b, nil
	case io.Reader:
		return io.ReadAll(x)
	default:
		return nil, fmt.Errorf("%w: cannot serialize %T "+
			"(use nil, string, []byte, io.Reader or io.ReadCloser)", ErrUnsupportedType, body)
	}
}
