// Copyright 2021 The apiclient Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package apiclient

import (
	"fmt"
	"testing"

	"github.com/gogama/apiclient/request"
	"github.com/stretchr/testify/assert"
)

func TestHandlerGroup(t *testing.T) {
	var evts []string
	var execs []*request.Execution
	h1 := &testHandler{seq: 1, evts: &evts, execs: &execs}
	h2 := &testHandler{seq: 2, evts: &evts, execs: &execs}
	var g *HandlerGroup
	t.Run("With", func(t *testing.T) {
		assert.PanicsWithValue(t, "apiclient: nil handler", func() { g.With(BeforeExecutionStart, nil) })
		assert.PanicsWithValue(t, "apiclient: invalid event", func() { g.With(Event(123), h1) })
		g = g.With(BeforeExecutionStart, h1)
		g = g.With(BeforeExecutionStart, h2)
		g = g.With(AfterAttempt, h1)
		assert.Equal(t, 2, g.Len(BeforeExecutionStart))
		assert.Equal(t, 1, g.Len(AfterAttempt))
		assert.Equal(t, 0, g.Len(AfterExecutionEnd))
	})
	t.Run("immutable", func(t *testing.T) {
		base := (*HandlerGroup)(nil).With(AfterAttempt, h1)
		a := base.With(AfterAttempt, h2)
		b := base.With(AfterAttempt, h1)
		assert.Equal(t, 1, base.Len(AfterAttempt))
		assert.Equal(t, 2, a.Len(AfterAttempt))
		assert.Equal(t, 2, b.Len(AfterAttempt))
		assert.Same(t, h2, a.handlers[AfterAttempt][1])
		assert.Same(t, h1, b.handlers[AfterAttempt][1])
	})
	t.Run("run", func(t *testing.T) {
		e1 := &request.Execution{Attempt: 1}
		e2 := &request.Execution{Attempt: 2}
		assert.Empty(t, evts)
		assert.Empty(t, execs)
		g.run(AfterExecutionTimeout, e1)
		assert.Empty(t, evts)
		assert.Empty(t, execs)
		g.run(BeforeExecutionStart, e1)
		assert.Equal(t, []string{"1.BeforeExecutionStart", "2.BeforeExecutionStart"}, evts)
		assert.Equal(t, []*request.Execution{e1, e1}, execs)
		evts = evts[:0]
		execs = execs[:0]
		g.run(AfterAttempt, e2)
		assert.Equal(t, []string{"1.AfterAttempt"}, evts)
		assert.Equal(t, []*request.Execution{e2}, execs)
	})
	t.Run("nil group", func(t *testing.T) {
		var empty *HandlerGroup
		assert.NotPanics(t, func() { empty.run(AfterAttempt, &request.Execution{}) })
		assert.Equal(t, 0, empty.Len(AfterAttempt))
	})
}

type testHandler struct {
	seq   int
	evts  *[]string
	execs *[]*request.Execution
}

func (h *testHandler) Handle(evt Event, e *request.Execution) {
	*h.evts = append(*h.evts, fmt.Sprintf("%d.%s", h.seq, evt))
	*h.execs = append(*h.execs, e)
}

func TestHandlerFunc(t *testing.T) {
	var _evt Event
	var _e *request.Execution
	var f = func(evt Event, e *request.Execution) {
		_evt = evt
		_e = e
	}
	h := HandlerFunc(f)
	e := &request.Execution{}
	h.Handle(BeforeRetryWait, e)

	assert.Equal(t, BeforeRetryWait, _evt)
	assert.Same(t, e, _e)
}
