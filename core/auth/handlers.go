package auth

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/alexedwards/scs/v2"
	"github.com/capacitanet/portal/api/web"
	"github.com/capacitanet/portal/api/weberr"
	"github.com/capacitanet/portal/core/user"
	"github.com/capacitanet/portal/database"
	"github.com/capacitanet/portal/validate"
	"github.com/jmoiron/sqlx"
	"golang.org/x/crypto/bcrypt"
)

// Token is what a successful login returns: the opaque bearer token and its
// expiry. The client sends it back on every request.
type Token struct {
	Token  string    `json:"token"`
	Expiry time.Time `json:"expiry"`
}

func HandleRegister(db *sqlx.DB) web.Handler {
	return func(ctx context.Context, w http.ResponseWriter, r *http.Request) error {
		var un user.UserNew
		if err := web.Decode(w, r, &un); err != nil {
			return weberr.BadRequest(fmt.Errorf("unable to decode payload: %w", err))
		}

		if err := validate.Check(un); err != nil {
			return weberr.Unprocessable(err, err.Error())
		}

		hash, err := bcrypt.GenerateFromPassword([]byte(un.Password), bcrypt.DefaultCost)
		if err != nil {
			return fmt.Errorf("hashing password: %w", err)
		}

		now := time.Now().UTC()
		u := user.User{
			ID:           validate.GenerateID(),
			Email:        un.Email,
			FirstName:    un.FirstName,
			LastName:     un.LastName,
			PasswordHash: hash,
			CreatedAt:    now,
			UpdatedAt:    now,
		}

		if err := user.Create(ctx, db, u); err != nil {
			if database.IsUniqueViolation(err) {
				return weberr.Conflict(err, "this email is already registered")
			}
			return fmt.Errorf("creating user: %w", err)
		}

		return web.Respond(ctx, w, u, http.StatusCreated)
	}
}

func HandleLogin(db *sqlx.DB, sm *scs.SessionManager) web.Handler {
	return func(ctx context.Context, w http.ResponseWriter, r *http.Request) error {
		var ul user.UserLogin
		if err := web.Decode(w, r, &ul); err != nil {
			return weberr.BadRequest(fmt.Errorf("unable to decode payload: %w", err))
		}

		if err := validate.Check(ul); err != nil {
			return weberr.Unprocessable(err, err.Error())
		}

		u, err := user.FetchByEmail(ctx, db, ul.Email)
		if err != nil {
			if errors.Is(err, sql.ErrNoRows) {
				return invalidCredentials(err)
			}
			return fmt.Errorf("fetching user by email: %w", err)
		}

		if err := bcrypt.CompareHashAndPassword(u.PasswordHash, []byte(ul.Password)); err != nil {
			return invalidCredentials(err)
		}

		// Fresh token on every login so a leaked pre-login token is useless.
		if err := sm.RenewToken(ctx); err != nil {
			return fmt.Errorf("renewing session token: %w", err)
		}

		sm.Put(ctx, sessionUserID, u.ID)
		sm.Put(ctx, sessionEmail, u.Email)

		token, expiry, err := sm.Commit(ctx)
		if err != nil {
			return fmt.Errorf("committing session: %w", err)
		}

		return web.Respond(ctx, w, Token{Token: token, Expiry: expiry}, http.StatusOK)
	}
}

func HandleLogout(sm *scs.SessionManager) web.Handler {
	return func(ctx context.Context, w http.ResponseWriter, r *http.Request) error {
		if err := sm.Destroy(ctx); err != nil {
			return fmt.Errorf("destroying session: %w", err)
		}

		return web.Respond(ctx, w, nil, http.StatusNoContent)
	}
}

func invalidCredentials(err error) error {
	return weberr.NewError(err, "invalid email or password", http.StatusUnauthorized)
}
