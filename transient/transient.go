// Copyright 2021 The apiclient Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package transient

import (
	"errors"
	"io"
	"net"
	"syscall"
)

// A Category is the transience category of a particular error, as
// reported by function Categorize().
//
// The category Not means the error is not transient from the perspective
// of completing an HTTP request attempt successfully, or in other words
// that a retry after encountering this error is very unlikely to succeed.
//
// All other categories indicate the error is transient from the
// perspective of completing an HTTP request attempt successfully, or in
// other words that a retry after encountering this error has some
// prospect of success.
type Category int

const (
	// Not indicates any non-transient error.
	Not Category = iota
	// Timeout indicates a client-side timeout. The server may be going
	// through a temporary period of slowness, or the client may succeed
	// on a future attempt waiting longer (increasing its timeout).
	//
	// Function Categorize() will return Timeout if the error or any of
	// its wrapped causes has a Timeout() function that reports true.
	Timeout
	// ConnRefused indicates the remote host refused the connection, and
	// corresponds to the POSIX error code ECONNREFUSED.
	//
	// Although connection refusal may be a permanent condition, it is
	// classified as transient because it can happen if the service
	// running on the remote host is in the process of starting or
	// restarting.
	ConnRefused
	// ConnReset indicates the remote host returned an RST packet on a
	// previously active TCP connection, and corresponds to the POSIX
	// error code ECONNRESET.
	ConnReset
	// Dropped indicates the connection was closed part way through the
	// exchange: an unexpected EOF, a broken pipe (EPIPE), or an aborted
	// connection (ECONNABORTED). Pooled keep-alive connections closed
	// by the server while idle are the usual cause.
	Dropped
	// DNS indicates host name resolution failed without timing out.
	DNS
	// Dial indicates any other failure to establish the connection,
	// for example an unreachable network.
	Dial
)

var categoryNames = []string{
	"Not",
	"Timeout",
	"ConnRefused",
	"ConnReset",
	"Dropped",
	"DNS",
	"Dial",
}

// String returns the name of the category.
func (cat Category) String() string {
	if cat < 0 || int(cat) >= len(categoryNames) {
		return "Unknown"
	}
	return categoryNames[cat]
}

// Conn reports whether cat is one of the connection failure categories,
// that is any transient category other than Timeout.
func (cat Category) Conn() bool {
	return cat != Not && cat != Timeout
}

// Categorize returns the transience category of the given error. All
// non-nil transient errors result in a transience category other than
// Not. A nil error, and an error that is not transient from the
// perspective of completing an HTTP request attempt, both produce the
// return value Not.
//
// In assessing transience, Categorize looks at wrapped cause errors
// contained within err, not just err itself. However, Categorize never
// checks if an error has a Temporary() function that returns true, as
// the semantics of Temporary() aren't entirely clear.
//
// Cancellation (context.Canceled) is never transient.
func Categorize(err error) Category {
	if err == nil {
		return Not
	}

	var hasTimeout hasTimeout
	if errors.As(err, &hasTimeout) && hasTimeout.Timeout() {
		return Timeout
	}

	var errno syscall.Errno
	if errors.As(err, &errno) {
		switch errno {
		case syscall.ECONNRESET:
			return ConnReset
		case syscall.ECONNREFUSED:
			return ConnRefused
		case syscall.EPIPE, syscall.ECONNABORTED:
			return Dropped
		}
	}

	if errors.Is(err, io.ErrUnexpectedEOF) || errors.Is(err, io.EOF) {
		return Dropped
	}

	var dnsErr *net.DNSError
	if errors.As(err, &dnsErr) {
		return DNS
	}

	var opErr *net.OpError
	if errors.As(err, &opErr) && opErr.Op == "dial" {
		return Dial
	}

	return Not
}

type hasTimeout interface {
	Timeout() bool
}
