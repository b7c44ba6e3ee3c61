// Copyright 2021 The apiclient Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package apiclient

import (
	"github.com/gogama/apiclient/request"
)

// A HandlerGroup is a group of event handler chains which can be
// installed on a request descriptor.
//
// A HandlerGroup is immutable: With returns a new group and leaves the
// receiver unchanged, so a group may be shared by many descriptors. The
// nil *HandlerGroup is a valid, empty group.
type HandlerGroup struct {
	handlers [][]Handler
}

// With returns a new HandlerGroup which has h appended to the back of
// the handler chain for evt.
func (g *HandlerGroup) With(evt Event, h Handler) *HandlerGroup {
	if h == nil {
		panic("apiclient: nil handler")
	}
	if evt < 0 || int(evt) >= numEvents {
		panic("apiclient: invalid event")
	}

	g2 := &HandlerGroup{handlers: make([][]Handler, numEvents)}
	if g != nil {
		copy(g2.handlers, g.handlers)
	}

	chain := g2.handlers[evt]
	g2.handlers[evt] = append(chain[:len(chain):len(chain)], h)
	return g2
}

// Len returns the number of handlers in the chain for evt.
func (g *HandlerGroup) Len(evt Event) int {
	if g == nil || int(evt) >= len(g.handlers) || evt < 0 {
		return 0
	}
	return len(g.handlers[evt])
}

func (g *HandlerGroup) run(evt Event, e *request.Execution) {
	if g == nil {
		return
	}
	i := int(evt)
	if i < len(g.handlers) {
		run(g.handlers[i], evt, e)
	}
}

func run(chain []Handler, evt Event, e *request.Execution) {
	for _, h := range chain {
		h.Handle(evt, e)
	}
}

// A Handler handles the occurrence of an event during an execution.
type Handler interface {
	Handle(Event, *request.Execution)
}

// The HandlerFunc type is an adapter to allow the use of ordinary
// functions as event handlers.
type HandlerFunc func(Event, *request.Execution)

// Handle calls f(evt, e).
func (f HandlerFunc) Handle(evt Event, e *request.Execution) {
	f(evt, e)
}
