package http

import "net/http"

// headerTransport sets fixed headers on every outbound request. Empty
// values are skipped.
type headerTransport struct {
	headers   map[string]string
	transport http.RoundTripper
}

func (t *headerTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	reqCopy := req.Clone(req.Context())

	for key, value := range t.headers {
		if value != "" {
			reqCopy.Header.Set(key, value)
		}
	}

	return t.transport.RoundTrip(reqCopy)
}

func withHeaders(headers map[string]string) HttpOpts {
	return WithTransport(func(rt http.RoundTripper) http.RoundTripper {
		return &headerTransport{
			headers:   headers,
			transport: rt,
		}
	})
}

// WithAuthToken sends the provider API key as a bearer token.
func WithAuthToken(token string) HttpOpts {
	if token == "" {
		return withHeaders(nil)
	}
	return withHeaders(map[string]string{"Authorization": "Bearer " + token})
}

// WithUserAgent identifies the service to the provider.
func WithUserAgent(userAgent string) HttpOpts {
	return withHeaders(map[string]string{"User-Agent": userAgent})
}
