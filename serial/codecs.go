// Copyright 2021 The apiclient Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package serial

import (
	"bytes"
	"encoding/json"
	"encoding/xml"
	"fmt"
	"net/url"

	"github.com/gogama/apiclient/pairs"
	"gopkg.in/yaml.v3"
)

// Media types declared by the built-in codecs.
const (
	MediaTypeJSON = "application/json"
	MediaTypeXML  = "application/xml"
	MediaTypeYAML = "application/yaml"
	MediaTypeForm = "application/x-www-form-urlencoded"
)

// JSON is the JSON codec, backed by encoding/json.
//
// Deserializing an empty body is not an error; the target is left
// unchanged.
var JSON Codec = jsonCodec{}

// XML is the XML codec, backed by encoding/xml.
var XML Codec = xmlCodec{}

// YAML is the YAML codec, backed by gopkg.in/yaml.v3.
var YAML Codec = yamlCodec{}

// Form is the URL-encoded form codec. It serializes url.Values,
// map[string]string, map[string][]string, []pairs.Pair and
// pairs.Collection values, and deserializes into *url.Values.
var Form Codec = formCodec{}

type jsonCodec struct{}

func (jsonCodec) ContentType() string {
	return MediaTypeJSON
}

func (jsonCodec) Serialize(v interface{}) ([]byte, error) {
	return json.Marshal(v)
}

func (jsonCodec) Deserialize(b []byte, v interface{}) error {
	if len(bytes.TrimSpace(b)) == 0 {
		return nil
	}
	return json.Unmarshal(b, v)
}

type xmlCodec struct{}

func (xmlCodec) ContentType() string {
	return MediaTypeXML
}

func (xmlCodec) Serialize(v interface{}) ([]byte, error) {
	return xml.Marshal(v)
}

func (xmlCodec) Deserialize(b []byte, v interface{}) error {
	if len(bytes.TrimSpace(b)) == 0 {
		return nil
	}
	return xml.Unmarshal(b, v)
}

type yamlCodec struct{}

func (yamlCodec) ContentType() string {
	return MediaTypeYAML
}

func (yamlCodec) Serialize(v interface{}) ([]byte, error) {
	return yaml.Marshal(v)
}

func (yamlCodec) Deserialize(b []byte, v interface{}) error {
	return yaml.Unmarshal(b, v)
}

type formCodec struct{}

func (formCodec) ContentType() string {
	return MediaTypeForm
}

func (formCodec) Serialize(v interface{}) ([]byte, error) {
	values, err := FormValues(v)
	if err != nil {
		return nil, err
	}
	return []byte(values.Encode()), nil
}

func (formCodec) Deserialize(b []byte, v interface{}) error {
	target, ok := v.(*url.Values)
	if !ok {
		return fmt.Errorf("%w: cannot deserialize form into %T", ErrUnsupportedType, v)
	}
	values, err := url.ParseQuery(string(b))
	if err != nil {
		return err
	}
	*target = values
	return nil
}

// FormValues converts the value types accepted by Form into url.Values.
func FormValues(v interface{}) (url.Values, error) {
	switch x := v.(type) {
	case nil:
		return url.Values{}, nil
	case url.Values:
		return x, nil
	case map[string][]string:
		return url.Values(x), nil
	case map[string]string:
		values := make(url.Values, len(x))
		for k, s := range x {
			values.Set(k, s)
		}
		return values, nil
	case []pairs.Pair:
		values := make(url.Values, len(x))
		for _, p := range x {
			values.Add(p.Key, p.Value)
		}
		return values, nil
	case pairs.Collection:
		return FormValues(x.All())
	default:
		return nil, fmt.Errorf("%w: cannot form-encode %T", ErrUnsupportedType, v)
	}
}
