package handlers

import (
	"net/http"
)

// forwardingTransport copies the inbound request's cookies onto
// outbound requests, so data fetched during resolution acts on behalf
// of the caller.
type forwardingTransport struct {
	cookie string
	next   http.RoundTripper
}

func (t *forwardingTransport) RoundTrip(r *http.Request) (*http.Response, error) {
	if t.cookie != "" && r.Header.Get("Cookie") == "" {
		r = r.Clone(r.Context())
		r.Header.Set("Cookie", t.cookie)
	}
	return t.next.RoundTrip(r)
}

// NewForwardingClient builds the HTTP client route actions use for data
// fetching during one request.
func NewForwardingClient(inbound *http.Request) *http.Client {
	return &http.Client{
		Timeout: DefaultResolveTimeout,
		Transport: &forwardingTransport{
			cookie: inbound.Header.Get("Cookie"),
			next:   http.DefaultTransport,
		},
	}
}
