package client

import (
	"net/http"

	"github.com/getsavvyinc/pdfqa-cli/idgen"
)

// RequestIDHeader carries a per request id the backend can log alongside ours.
const RequestIDHeader = "X-Request-Id"

type TaggedRoundTripper struct {
	userAgent string
	next      http.RoundTripper
}

func NewRoundTripper(userAgent string) *TaggedRoundTripper {
	return &TaggedRoundTripper{userAgent: userAgent, next: http.DefaultTransport}
}

func (t *TaggedRoundTripper) RoundTrip(req *http.Request) (*http.Response, error) {
	// Clone the request to ensure thread safety
	clonedReq := req.Clone(req.Context())
	clonedReq.Header.Set("User-Agent", t.userAgent)
	if clonedReq.Header.Get(RequestIDHeader) == "" {
		clonedReq.Header.Set(RequestIDHeader, idgen.New(idgen.RequestPrefix))
	}

	return t.next.RoundTrip(clonedReq)
}
