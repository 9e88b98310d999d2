package auth

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/alexedwards/scs/v2"
	"github.com/capacitanet/portal/api/web"
	"github.com/capacitanet/portal/api/weberr"
	"github.com/capacitanet/portal/core/claims"
)

// Session keys for the authenticated identity.
const (
	sessionUserID = "user_id"
	sessionEmail  = "email"
)

// LoadBearer resolves the Authorization header token into session data for
// the rest of the chain. An absent or unknown token yields a fresh, empty
// session; rejecting it is Authenticate's job.
func LoadBearer(sm *scs.SessionManager) web.Middleware {
	m := func(handler web.Handler) web.Handler {
		h := func(ctx context.Context, w http.ResponseWriter, r *http.Request) error {
			token := bearerToken(r)

			ctx, err := sm.Load(ctx, token)
			if err != nil {
				return weberr.InternalError(err)
			}

			return handler(ctx, w, r)
		}
		return h
	}
	return m
}

// Authenticate guards a route: the session must carry a user identity, which
// it exposes to handlers as claims.
func Authenticate(sm *scs.SessionManager) web.Middleware {
	m := func(handler web.Handler) web.Handler {
		h := func(ctx context.Context, w http.ResponseWriter, r *http.Request) error {
			userID := sm.GetString(ctx, sessionUserID)
			if userID == "" {
				return weberr.NotAuthorized(errors.New("no authenticated user in session"))
			}

			ctx = claims.Set(ctx, claims.Claims{
				UserID: userID,
				Email:  sm.GetString(ctx, sessionEmail),
			})

			return handler(ctx, w, r)
		}
		return h
	}
	return m
}

func bearerToken(r *http.Request) string {
	h := r.Header.Get("Authorization")
	if !strings.HasPrefix(h, "Bearer ") {
		return ""
	}
	return strings.TrimPrefix(h, "Bearer ")
}
