package user

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/capacitanet/portal/api/web"
	"github.com/capacitanet/portal/api/weberr"
	"github.com/capacitanet/portal/core/claims"
	"github.com/jmoiron/sqlx"
)

func HandleProfile(db *sqlx.DB) web.Handler {
	return func(ctx context.Context, w http.ResponseWriter, r *http.Request) error {
		clm, err := claims.Get(ctx)
		if err != nil {
			return weberr.NotAuthorized(errors.New("user not authenticated"))
		}

		p, err := FetchProfile(ctx, db, clm.UserID)
		if err != nil {
			return fmt.Errorf("fetching profile of user[%s]: %w", clm.UserID, err)
		}

		return web.Respond(ctx, w, p, http.StatusOK)
	}
}
