// Copyright 2021 The apiclient Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

/*
Package observe provides event handlers which make request descriptor
executions visible: structured logging with zerolog and Prometheus
metrics.

Both handlers are installed on every event with Install:

	m := observe.NewMetrics(prometheus.DefaultRegisterer, "inventory")
	api := apiclient.New().WithBaseURL("https://api.example.com")
	api = observe.Install(api, m)
	api = observe.Install(api, observe.Logger{Log: log.Logger})
*/
package observe

import (
	"github.com/gogama/apiclient"
)

// Install returns a copy of r with h observing every event.
func Install(r apiclient.Request, h apiclient.Handler) apiclient.Request {
	for _, evt := range apiclient.Events() {
		r = r.Observe(evt, h)
	}
	return r
}
