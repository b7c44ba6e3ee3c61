// Copyright 2021 The apiclient Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package apiclient

import (
	"context"
	"encoding/base64"
	"errors"

	"github.com/gogama/apiclient/token"
)

// An Authenticator is an authentication strategy. It decorates the
// descriptor used for one attempt with credentials.
//
// Authenticate is called once per attempt, before the before-request
// handlers, and may block to acquire a token. Implementations must be
// safe for concurrent use by multiple goroutines and must honour ctx.
type Authenticator interface {
	Authenticate(ctx context.Context, r Request) (Request, error)
}

// The AuthenticatorFunc type is an adapter to allow the use of ordinary
// functions as authentication strategies.
type AuthenticatorFunc func(ctx context.Context, r Request) (Request, error)

// Authenticate calls f(ctx, r).
func (f AuthenticatorFunc) Authenticate(ctx context.Context, r Request) (Request, error) {
	return f(ctx, r)
}

var errNilProvider = errors.New("apiclient: nil token provider")

// BasicAuth sets an Authorization header carrying the base64 encoding
// of "Username:Password".
type BasicAuth struct {
	Username string
	Password string
}

// Authenticate sets the Authorization header, replacing any existing
// value.
func (a BasicAuth) Authenticate(_ context.Context, r Request) (Request, error) {
	return r.setHeader(HeaderAuthorization, "Basic "+basicAuth(a.Username, a.Password)), nil
}

// BearerTokenAuth sets an Authorization header carrying a bearer token
// obtained from Provider.
type BearerTokenAuth struct {
	Provider token.Provider
}

// Authenticate obtains a token and sets the Authorization header,
// replacing any existing value.
func (a BearerTokenAuth) Authenticate(ctx context.Context, r Request) (Request, error) {
	v, err := tokenValue(ctx, a.Provider)
	if err != nil {
		return r, err
	}
	return r.setHeader(HeaderAuthorization, "Bearer "+v), nil
}

// CookieAuth sets a Cookie header whose value is a token obtained from
// Provider.
type CookieAuth struct {
	Provider token.Provider
}

// Authenticate obtains a token and sets the Cookie header, replacing
// any existing value.
func (a CookieAuth) Authenticate(ctx context.Context, r Request) (Request, error) {
	v, err := tokenValue(ctx, a.Provider)
	if err != nil {
		return r, err
	}
	return r.setHeader(HeaderCookie, v), nil
}

func tokenValue(ctx context.Context, p token.Provider) (string, error) {
	if p == nil {
		return "", errNilProvider
	}
	t, err := p(ctx)
	if err != nil {
		return "", err
	}
	if t.Value == "" {
		return "", token.ErrEmpty
	}
	return t.Value, nil
}

func basicAuth(username, password string) string {
	auth := username + ":" + password
	return base64.StdEncoding.EncodeToString([]byte(auth))
}
