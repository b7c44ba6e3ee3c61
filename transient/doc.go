// Copyright 2021 The apiclient Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

// Package transient sorts attempt failures into categories: timeouts,
// refused or reset connections, dropped connections, DNS and dial
// failures. The retry package treats every category other than Not as
// worth retrying, and the observe package uses the category names to
// label failures.
//
// The package imports nothing outside the standard library.
package transient
