package web

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"sync"

	"github.com/matzehuels/knowdeps/pkg/presenter"
)

// eventStream is a presenter.Sink writing Server-Sent Events. Sections send
// from their own goroutines, so writes are serialized.
type eventStream struct {
	ctx context.Context

	mu      sync.Mutex
	w       http.ResponseWriter
	flusher http.Flusher
}

func newEventStream(ctx context.Context, w http.ResponseWriter) (*eventStream, error) {
	flusher, ok := w.(http.Flusher)
	if !ok {
		return nil, errors.New("streaming not supported")
	}

	h := w.Header()
	h.Set("Content-Type", "text/event-stream")
	h.Set("Cache-Control", "no-cache")
	h.Set("Connection", "keep-alive")
	w.WriteHeader(http.StatusOK)
	flusher.Flush()

	return &eventStream{ctx: ctx, w: w, flusher: flusher}, nil
}

func (s *eventStream) Send(ev presenter.Event) error {
	data, err := json.Marshal(ev.Wire())
	if err != nil {
		return err
	}
	return s.write(ev.Kind.String(), data)
}

func (s *eventStream) complete() error {
	return s.write("complete", []byte("{}"))
}

func (s *eventStream) write(event string, data []byte) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.ctx.Err() != nil {
		return presenter.ErrClosed
	}
	if _, err := fmt.Fprintf(s.w, "event: %s\ndata: %s\n\n", event, data); err != nil {
		return presenter.ErrClosed
	}
	s.flusher.Flush()
	return nil
}
