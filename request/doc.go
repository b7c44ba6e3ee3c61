// Copyright 2021 The apiclient Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

/*
Package request contains Execution, the observable state of one request
descriptor execution.

Execution is the input type for the callbacks invoked while a descriptor
is being executed: retry policies, timeout policies, and event handlers.
You will typically not allocate Execution instances yourself, but will
instead work with the ones handed out by the execution pipeline.

An Execution records which attempt is underway, how many attempts have
timed out, and the outcome of the most recent attempt: either an HTTP
status code, headers and body, or an error. Retry policies base their
decision on these fields:

	func decide(e *request.Execution) bool {
		return e.Attempt < 3 && (e.StatusCode == 503 || e.Transience().Conn())
	}
*/
package request
