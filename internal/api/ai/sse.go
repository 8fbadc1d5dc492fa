package ai

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"github.com/futig/architech-backend/internal/entity"
)

const (
	uiMessageStreamHeader  = "X-Vercel-AI-UI-Message-Stream"
	uiMessageStreamVersion = "v1"
	streamDone             = "[DONE]"
)

var errStreamingUnsupported = errors.New("streaming not supported")

// eventWriter writes UI message stream events as unnamed SSE frames.
type eventWriter struct {
	w       http.ResponseWriter
	flusher http.Flusher
}

func newEventWriter(w http.ResponseWriter) (*eventWriter, error) {
	flusher, ok := w.(http.Flusher)
	if !ok {
		return nil, errStreamingUnsupported
	}

	h := w.Header()
	h.Set("Content-Type", "text/event-stream")
	h.Set("Cache-Control", "no-cache")
	h.Set("Connection", "keep-alive")
	h.Set(uiMessageStreamHeader, uiMessageStreamVersion)
	if h.Get("Access-Control-Expose-Headers") == "" {
		h.Set("Access-Control-Expose-Headers", uiMessageStreamHeader)
	}
	w.WriteHeader(http.StatusOK)

	return &eventWriter{w: w, flusher: flusher}, nil
}

// WriteEvent sends one event. It satisfies editor.EventSink.
func (s *eventWriter) WriteEvent(event entity.EditorEvent) error {
	data, err := json.Marshal(event)
	if err != nil {
		return err
	}
	return s.writeData(data)
}

// WriteDone terminates the stream.
func (s *eventWriter) WriteDone() error {
	return s.writeData([]byte(streamDone))
}

func (s *eventWriter) writeData(data []byte) error {
	if _, err := fmt.Fprintf(s.w, "data: %s\n\n", data); err != nil {
		return err
	}
	s.flusher.Flush()
	return nil
}
