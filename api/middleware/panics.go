package middleware

import (
	"context"
	"fmt"
	"net/http"
	"runtime/debug"

	"github.com/capacitanet/portal/api/web"
)

// Panics converts a panicking handler into a returned error so the chain
// above can log and render it instead of killing the goroutine silently.
func Panics() web.Middleware {
	m := func(handler web.Handler) web.Handler {
		h := func(ctx context.Context, w http.ResponseWriter, r *http.Request) (err error) {
			defer func() {
				if rec := recover(); rec != nil {
					trace := debug.Stack()
					err = fmt.Errorf("panic: %v, trace: %s", rec, string(trace))
				}
			}()

			return handler(ctx, w, r)
		}
		return h
	}
	return m
}
