// Copyright 2021 The apiclient Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

/*
Package token provides the Token type and Provider function type used
by the bearer token and cookie authentication strategies.

A Provider fetches whatever credential a request needs. The
authentication strategies only attach the value they are given; caching
and refresh belong to the Provider. Use Cached to add expiry-aware
caching to a Provider which makes a network round trip:

	fetch := func(ctx context.Context) (token.Token, error) {
		... // call the identity provider
		return token.Token{Value: v, Expiry: exp}, nil
	}
	r := apiclient.New().
		BearerTokenAuthentication(token.Cached(fetch, 30*time.Second))
*/
package token
