package course

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
	"github.com/capacitanet/portal/core/resource"
	"github.com/capacitanet/portal/database"
	"github.com/capacitanet/portal/validate"
	"github.com/jmoiron/sqlx"
)

// HandleList returns the learner-facing catalog: active courses only, each
// with its resources in display order.
func HandleList(db *sqlx.DB) web.Handler {
	return func(ctx context.Context, w http.ResponseWriter, r *http.Request) error {
		courses, err := FetchByStatus(ctx, db, Active)
		if err != nil {
			return fmt.Errorf("fetching active courses: %w", err)
		}

		if err := attachResources(ctx, db, courses); err != nil {
			return err
		}

		return web.Respond(ctx, w, courses, http.StatusOK)
	}
}

// HandleListPending returns the activation queue. It is a plain status query,
// independent of any catalog filtering.
func HandleListPending(db *sqlx.DB) web.Handler {
	return func(ctx context.Context, w http.ResponseWriter, r *http.Request) error {
		courses, err := FetchByStatus(ctx, db, Pending)
		if err != nil {
			return fmt.Errorf("fetching pending courses: %w", err)
		}

		if err := attachResources(ctx, db, courses); err != nil {
			return err
		}

		return web.Respond(ctx, w, courses, http.StatusOK)
	}
}

func HandleCreate(db *sqlx.DB) web.Handler {
	return func(ctx context.Context, w http.ResponseWriter, r *http.Request) error {
		clm, err := claims.Get(ctx)
		if err != nil {
			return weberr.NotAuthorized(errors.New("user not authenticated"))
		}

		var cn CourseNew
		if err := web.Decode(w, r, &cn); err != nil {
			return weberr.BadRequest(fmt.Errorf("unable to decode payload: %w", err))
		}

		if err := validate.Check(cn); err != nil {
			return weberr.Unprocessable(err, err.Error())
		}

		now := time.Now().UTC()
		c := Course{
			ID:          cn.ID,
			Title:       cn.Title,
			Description: cn.Description,
			Tags:        cn.Tags,
			CreatorID:   clm.UserID,
			Status:      Pending,
			CreatedAt:   now,
			UpdatedAt:   now,
		}

		if err := Create(ctx, db, c); err != nil {
			if database.IsUniqueViolation(err) {
				return weberr.Conflict(err, "a course with this id already exists")
			}
			return fmt.Errorf("creating course[%s]: %w", c.ID, err)
		}

		c.Resources = []resource.Resource{}
		return web.Respond(ctx, w, c, http.StatusCreated)
	}
}

func HandleActivate(db *sqlx.DB) web.Handler {
	return func(ctx context.Context, w http.ResponseWriter, r *http.Request) error {
		var ca CourseActivate
		if err := web.Decode(w, r, &ca); err != nil {
			return weberr.BadRequest(fmt.Errorf("unable to decode payload: %w", err))
		}

		if err := validate.Check(ca); err != nil {
			return weberr.Unprocessable(err, err.Error())
		}

		if _, err := Fetch(ctx, db, ca.ID); err != nil {
			if errors.Is(err, sql.ErrNoRows) {
				return weberr.NotFound(err)
			}
			return fmt.Errorf("fetching course[%s]: %w", ca.ID, err)
		}

		if err := Activate(ctx, db, ca.ID); err != nil {
			return fmt.Errorf("activating course[%s]: %w", ca.ID, err)
		}

		return web.Respond(ctx, w, nil, http.StatusNoContent)
	}
}

func attachResources(ctx context.Context, db *sqlx.DB, courses []Course) error {
	ids := make([]string, 0, len(courses))
	for _, c := range courses {
		ids = append(ids, c.ID)
	}

	byCourse, err := resource.FetchByCourses(ctx, db, ids)
	if err != nil {
		return fmt.Errorf("fetching resources: %w", err)
	}

	for i := range courses {
		rs, ok := byCourse[courses[i].ID]
		if !ok {
			rs = []resource.Resource{}
		}
		courses[i].Resources = rs
	}

	return nil
}
