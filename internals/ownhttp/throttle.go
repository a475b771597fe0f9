package ownhttp

import (
	"net/http"

	"golang.org/x/time/rate"
)

// ThrottleTransport rate limits requests. The CurseForge api gets grumpy
// when batch queries arrive too fast
type ThrottleTransport struct {
	T       http.RoundTripper
	limiter *rate.Limiter
}

func (tt *ThrottleTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	err := tt.limiter.Wait(req.Context())
	if err != nil {
		return nil, err
	}

	return tt.T.RoundTrip(req)
}

func NewThrottleTransport(T http.RoundTripper, limiter *rate.Limiter) *ThrottleTransport {
	if T == nil {
		T = http.DefaultTransport
	}
	return &ThrottleTransport{T, limiter}
}

// NewThrottled returns a client limited to rps requests per second, with
// the same User-Agent and timeout setup as New
func NewThrottled(rps float64) *http.Client {
	limiter := rate.NewLimiter(rate.Limit(rps), 1)
	return &http.Client{
		Transport: NewAddHeaderTransport(NewThrottleTransport(baseTransport(), limiter)),
	}
}
