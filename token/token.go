// Copyright 2021 The apiclient Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package token

import (
	"context"
	"errors"
	"sync"
	"time"

	"golang.org/x/sync/singleflight"
)

// A Token is an opaque credential value, such as an OAuth bearer token
// or a session cookie, together with an optional expiry time.
type Token struct {
	// Value is the credential attached to outgoing requests.
	Value string
	// Expiry is the time after which Value is no longer valid. The
	// zero time means the token never expires.
	Expiry time.Time
}

// Valid reports whether t has a non-empty value and has not expired
// as of now.
func (t Token) Valid(now time.Time) bool {
	if t.Value == "" {
		return false
	}
	return t.Expiry.IsZero() || now.Before(t.Expiry)
}

// A Provider returns the token to attach to the next request attempt.
//
// A Provider may need a network round trip to obtain a token, so it
// takes a context and must honour its cancellation. Providers shared
// between descriptors must be safe for concurrent use by multiple
// goroutines.
type Provider func(ctx context.Context) (Token, error)

// ErrEmpty is returned by a Cached provider when the underlying
// provider returns a token with an empty value.
var ErrEmpty = errors.New("apiclient/token: empty token")

// Static returns a Provider which always returns a non-expiring token
// with the given value.
func Static(value string) Provider {
	t := Token{Value: value}
	return func(_ context.Context) (Token, error) {
		return t, nil
	}
}

// Cached wraps p in a Provider which caches the most recent token until
// leeway before its expiry. When the cached token is missing or stale,
// concurrent callers share a single call to p.
//
// Errors from p are not cached; the next call retries p.
func Cached(p Provider, leeway time.Duration) Provider {
	if p == nil {
		panic("apiclient/token: nil provider")
	}
	c := &cache{provider: p, leeway: leeway, now: time.Now}
	return c.get
}

type cache struct {
	provider Provider
	leeway   time.Duration
	now      func() time.Time

	lock  sync.RWMutex
	token Token
	group singleflight.Group
}

func (c *cache) get(ctx context.Context) (Token, error) {
	if t, ok := c.fresh(); ok {
		return t, nil
	}

	ch := c.group.DoChan("token", func() (interface{}, error) {
		if t, ok := c.fresh(); ok {
			return t, nil
		}
		// The fetch is shared, so one caller giving up must not fail
		// the others.
		t, err := c.provider(context.WithoutCancel(ctx))
		if err != nil {
			return Token{}, err
		}
		if t.Value == "" {
			return Token{}, ErrEmpty
		}
		c.lock.Lock()
		c.token = t
		c.lock.Unlock()
		return t, nil
	})

	select {
	case r := <-ch:
		if r.Err != nil {
			return Token{}, r.Err
		}
		return r.Val.(Token), nil
	case <-ctx.Done():
		return Token{}, ctx.Err()
	}
}

func (c *cache) fresh() (Token, bool) {
	c.lock.RLock()
	t := c.token
	c.lock.RUnlock()
	return t, t.Valid(c.now().Add(c.leeway))
}
