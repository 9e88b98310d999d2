package subscription

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/capacitanet/portal/api/web"
	"github.com/capacitanet/portal/api/weberr"
	"github.com/capacitanet/portal/core/claims"
	"github.com/capacitanet/portal/core/course"
	"github.com/capacitanet/portal/validate"
	"github.com/jmoiron/sqlx"
)

func HandleCreate(db *sqlx.DB) web.Handler {
	return func(ctx context.Context, w http.ResponseWriter, r *http.Request) error {
		clm, err := claims.Get(ctx)
		if err != nil {
			return weberr.NotAuthorized(errors.New("user not authenticated"))
		}

		var sn SubscriptionNew
		if err := web.Decode(w, r, &sn); err != nil {
			return weberr.BadRequest(fmt.Errorf("unable to decode payload: %w", err))
		}

		if err := validate.Check(sn); err != nil {
			return weberr.Unprocessable(err, err.Error())
		}

		if _, err := course.Fetch(ctx, db, sn.ID); err != nil {
			if errors.Is(err, sql.ErrNoRows) {
				return weberr.NotFound(err)
			}
			return fmt.Errorf("fetching course[%s]: %w", sn.ID, err)
		}

		s := Subscription{
			UserID:    clm.UserID,
			CourseID:  sn.ID,
			CreatedAt: time.Now().UTC(),
		}

		if err := Create(ctx, db, s); err != nil {
			return fmt.Errorf("subscribing user[%s] to course[%s]: %w", clm.UserID, sn.ID, err)
		}

		return web.Respond(ctx, w, nil, http.StatusNoContent)
	}
}
