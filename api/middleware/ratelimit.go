package middleware

import (
	"context"
	"errors"
	"net"
	"net/http"

	"github.com/capacitanet/portal/api/web"
	"github.com/capacitanet/portal/api/weberr"
	"github.com/capacitanet/portal/rate"
)

// RateLimit throttles per client address. It guards the credential endpoints
// only; authenticated routes are already bound to a session.
func RateLimit(lim *rate.Limiter) web.Middleware {
	m := func(handler web.Handler) web.Handler {
		h := func(ctx context.Context, w http.ResponseWriter, r *http.Request) error {
			host, _, err := net.SplitHostPort(r.RemoteAddr)
			if err != nil {
				host = r.RemoteAddr
			}

			if !lim.Check(host) {
				return weberr.TooManyRequests(errors.New("rate limit exceeded for " + host))
			}

			return handler(ctx, w, r)
		}
		return h
	}
	return m
}
