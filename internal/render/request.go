package render

import (
	"net/http"
	"net/url"
)

// Request is the per-request environment handed to route resolution and
// rendering: the requested location plus the injected capabilities views
// are allowed to use. It is created fresh per request, owned by that
// request, and discarded with the response.
type Request struct {
	// Path is the request URL path being resolved.
	Path string

	// Query holds the request query parameters.
	Query url.Values

	// UserAgent is the raw User-Agent header value.
	UserAgent string

	// IsMobile is the device classification, computed once from UserAgent.
	IsMobile bool

	// Identity is the authenticated caller's claim payload, nil when the
	// request is unauthenticated.
	Identity any

	// Client is the HTTP client route actions use for data fetching.
	// It carries the inbound request's cookies so API calls act on
	// behalf of the caller.
	Client *http.Client

	// Styles collects CSS fragments emitted while rendering this request.
	Styles *StyleSet
}

// NewRequest builds the render request for an inbound HTTP request.
func NewRequest(r *http.Request, client *http.Client, identity any) *Request {
	ua := r.UserAgent()
	return &Request{
		Path:      r.URL.Path,
		Query:     r.URL.Query(),
		UserAgent: ua,
		IsMobile:  DetectMobile(ua),
		Identity:  identity,
		Client:    client,
		Styles:    NewStyleSet(),
	}
}
