package http

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func newTestConnector(url string, opts ...HttpOpts) *Connector {
	return NewConnector(&ConnectorConfig{BaseURL: url, Logger: zap.NewNop()}, opts...)
}

func TestDoRequest(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/echo", r.URL.Path)
		assert.Equal(t, "Bearer secret", r.Header.Get("Authorization"))
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))
		assert.Equal(t, "yes", r.Header.Get("X-Test"))
		w.Header().Set("Content-Type", "application/json")
		fmt.Fprint(w, `{"answer":42}`)
	}))
	defer server.Close()

	c := newTestConnector(server.URL, WithAuthToken("secret"), WithRequestLogging())

	var out struct {
		Answer int `json:"answer"`
	}
	err := c.DoRequest(context.Background(), http.MethodPost, "/echo", map[string]string{"q": "x"}, &out, WithHeader("X-Test", "yes"))
	require.NoError(t, err)
	assert.Equal(t, 42, out.Answer)
}

func TestDoRequest_HTTPError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "rate limited", http.StatusTooManyRequests)
	}))
	defer server.Close()

	err := newTestConnector(server.URL).DoRequest(context.Background(), http.MethodGet, "/", nil, nil)

	var httpErr *HTTPError
	require.True(t, errors.As(err, &httpErr))
	assert.Equal(t, http.StatusTooManyRequests, httpErr.StatusCode)
	assert.Contains(t, httpErr.Message, "rate limited")
}

func TestDoRequest_NetworkError(t *testing.T) {
	server := httptest.NewServer(http.NotFoundHandler())
	url := server.URL
	server.Close()

	err := newTestConnector(url).DoRequest(context.Background(), http.MethodGet, "/", nil, nil)

	var netErr *NetworkError
	assert.True(t, errors.As(err, &netErr))
}

func TestDoStream(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "text/event-stream", r.Header.Get("Accept"))
		w.Header().Set("Content-Type", "text/event-stream")
		fmt.Fprint(w, ": keep-alive\n\n")
		fmt.Fprint(w, "data: {\"n\":1}\n\n")
		fmt.Fprint(w, "data: {\"n\":2}\n\n")
		fmt.Fprint(w, "data: [DONE]\n\n")
		fmt.Fprint(w, "data: {\"n\":3}\n\n")
	}))
	defer server.Close()

	var got []string
	err := newTestConnector(server.URL).DoStream(context.Background(), http.MethodPost, "/stream", map[string]bool{"stream": true}, func(data []byte) error {
		got = append(got, string(data))
		return nil
	})
	require.NoError(t, err)
	assert.Equal(t, []string{`{"n":1}`, `{"n":2}`}, got)
}

func TestDoStream_StopAndCallbackError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, "data: a\n\ndata: b\n\n")
	}))
	defer server.Close()

	c := newTestConnector(server.URL)

	calls := 0
	err := c.DoStream(context.Background(), http.MethodGet, "/", nil, func([]byte) error {
		calls++
		return ErrStopStream
	})
	require.NoError(t, err)
	assert.Equal(t, 1, calls)

	boom := errors.New("boom")
	err = c.DoStream(context.Background(), http.MethodGet, "/", nil, func([]byte) error { return boom })
	assert.ErrorIs(t, err, boom)
}

func TestDoStream_HTTPError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "bad model", http.StatusBadRequest)
	}))
	defer server.Close()

	err := newTestConnector(server.URL).DoStream(context.Background(), http.MethodPost, "/", nil, func([]byte) error { return nil })

	var httpErr *HTTPError
	require.True(t, errors.As(err, &httpErr))
	assert.Equal(t, http.StatusBadRequest, httpErr.StatusCode)
}

func TestRedactHeaders(t *testing.T) {
	h := http.Header{}
	h.Set("Authorization", "Bearer secret")

	redacted := redactHeaders(h)
	assert.Equal(t, "[redacted]", redacted.Get("Authorization"))
	assert.Equal(t, "Bearer secret", h.Get("Authorization"))
}
