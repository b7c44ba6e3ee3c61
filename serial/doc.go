// Copyright 2021 The apiclient Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

// Package serial provides the serialization strategies used to turn
// request body values into bytes, and response bytes back into values.
//
// Serializer and Deserializer are the two capabilities a request
// descriptor consumes. The built-in codecs are Raw (pass-through, the
// default), JSON, XML, YAML and Form. Any type implementing the
// interfaces may be plugged into a descriptor instead.
package serial
