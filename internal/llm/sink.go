package llm

import (
	"fmt"
	"io"
	"sync"
)

// TokenSink observes incremental chunks while a model generates.
type TokenSink interface {
	OnToken(chunk string)
}

// TokenSinkFunc adapts a function to TokenSink.
type TokenSinkFunc func(chunk string)

// OnToken calls f.
func (f TokenSinkFunc) OnToken(chunk string) {
	f(chunk)
}

type multiSink []TokenSink

func (m multiSink) OnToken(chunk string) {
	for _, s := range m {
		s.OnToken(chunk)
	}
}

// MultiSink fans chunks out to every non-nil sink.
func MultiSink(sinks ...TokenSink) TokenSink {
	out := make(multiSink, 0, len(sinks))
	for _, s := range sinks {
		if s != nil {
			out = append(out, s)
		}
	}
	return out
}

// ConsoleSink echoes chunks to an operator console.
type ConsoleSink struct {
	mu sync.Mutex
	w  io.Writer
}

// NewConsoleSink writes chunks to w as they arrive.
func NewConsoleSink(w io.Writer) *ConsoleSink {
	return &ConsoleSink{w: w}
}

// OnToken writes the chunk unbuffered; write errors are dropped.
func (s *ConsoleSink) OnToken(chunk string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	_, _ = fmt.Fprint(s.w, chunk)
}
