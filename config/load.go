// Copyright 2021 The apiclient Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/confmap"
	"github.com/knadh/koanf/providers/env/v2"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/providers/rawbytes"
	"github.com/knadh/koanf/v2"
)

// EnvPrefix is the default environment variable prefix.
const EnvPrefix = "APICLIENT_"

// A Source is a layer of settings.
type Source func(k *koanf.Koanf) error

// File returns a Source reading the YAML file at path. A missing file
// is an error.
func File(path string) Source {
	return func(k *koanf.Koanf) error {
		if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
			return fmt.Errorf("load %s: %w", path, err)
		}
		return nil
	}
}

// YAML returns a Source parsing b as YAML.
func YAML(b []byte) Source {
	return func(k *koanf.Koanf) error {
		if err := k.Load(rawbytes.Provider(b), yaml.Parser()); err != nil {
			return fmt.Errorf("load yaml: %w", err)
		}
		return nil
	}
}

// Map returns a Source holding the given values, keyed by dotted path
// ("retry.count").
func Map(values map[string]any) Source {
	return func(k *koanf.Koanf) error {
		return k.Load(confmap.Provider(values, "."), nil)
	}
}

// Env returns a Source reading environment variables which start with
// prefix. Load applies Env(EnvPrefix) last unless another Env source is
// given.
func Env(prefix string) Source {
	return func(k *koanf.Koanf) error {
		p := env.Provider(".", env.Opt{
			Prefix: prefix,
			TransformFunc: func(key, value string) (string, any) {
				key = strings.ToLower(strings.TrimPrefix(key, prefix))
				return strings.ReplaceAll(key, "__", "."), value
			},
		})
		if err := k.Load(p, nil); err != nil {
			return fmt.Errorf("load environment: %w", err)
		}
		return nil
	}
}

// Load builds Settings from the defaults, then sources in order, then
// the environment, and validates the result.
func Load(sources ...Source) (*Settings, error) {
	k := koanf.New(".")
	if err := Map(defaults())(k); err != nil {
		return nil, fmt.Errorf("apiclient/config: load defaults: %w", err)
	}
	for _, source := range sources {
		if err := source(k); err != nil {
			return nil, fmt.Errorf("apiclient/config: %w", err)
		}
	}
	if err := Env(EnvPrefix)(k); err != nil {
		return nil, fmt.Errorf("apiclient/config: %w", err)
	}

	var s Settings
	if err := k.Unmarshal("", &s); err != nil {
		return nil, fmt.Errorf("apiclient/config: unmarshal: %w", err)
	}
	if err := s.Validate(); err != nil {
		return nil, err
	}
	return &s, nil
}

var validate = validator.New(validator.WithRequiredStructEnabled())

// Validate checks s, returning a *ValidationError listing every
// invalid field.
func (s *Settings) Validate() error {
	err := validate.Struct(s)
	if err == nil {
		return nil
	}
	var errs validator.ValidationErrors
	if errors.As(err, &errs) {
		return newValidationError(errs)
	}
	return fmt.Errorf("apiclient/config: %w", err)
}

// ValidationError lists the fields of Settings that failed validation.
type ValidationError struct {
	Fields []FieldError
}

// FieldError describes one invalid field.
type FieldError struct {
	// Field is the dotted path of the field, for example
	// "Settings.Retry.Count".
	Field string
	// Rule is the validation rule that failed.
	Rule string
	// Value is the offending value.
	Value string
}

func newValidationError(errs validator.ValidationErrors) *ValidationError {
	fields := make([]FieldError, 0, len(errs))
	for _, fe := range errs {
		fields = append(fields, FieldError{
			Field: fe.Namespace(),
			Rule:  fe.Tag(),
			Value: fmt.Sprintf("%v", fe.Value()),
		})
	}
	return &ValidationError{Fields: fields}
}

func (e *ValidationError) Error() string {
	parts := make([]string, len(e.Fields))
	for i, f := range e.Fields {
		parts[i] = fmt.Sprintf("%s failed %q (value %q)", f.Field, f.Rule, f.Value)
	}
	return "apiclient/config: invalid settings: " + strings.Join(parts, "; ")
}
