package api

import (
	"context"
	"net/http"

	"github.com/alexedwards/scs/v2"
	"github.com/capacitanet/portal/api/middleware"
	"github.com/capacitanet/portal/api/web"
	"github.com/capacitanet/portal/core/auth"
	"github.com/capacitanet/portal/core/course"
	"github.com/capacitanet/portal/core/resource"
	"github.com/capacitanet/portal/core/subscription"
	"github.com/capacitanet/portal/core/user"
	"github.com/capacitanet/portal/rate"
	"github.com/capacitanet/portal/storage"
	"github.com/gorilla/mux"
	"github.com/jmoiron/sqlx"
	"github.com/sirupsen/logrus"
)

type APIConfig struct {
	CorsOrigin  string
	Log         logrus.FieldLogger
	DB          *sqlx.DB
	Session     *scs.SessionManager
	Uploads     storage.Uploader
	AuthLimiter *rate.Limiter
}

type api struct {
	*mux.Router
	mw  []web.Middleware
	log logrus.FieldLogger
}

func APIMux(cfg APIConfig) http.Handler {
	a := &api{
		Router: mux.NewRouter(),
		log:    cfg.Log,
	}

	a.mw = append(a.mw, auth.LoadBearer(cfg.Session))
	a.mw = append(a.mw, middleware.RequestID())
	a.mw = append(a.mw, middleware.Logger(cfg.Log))
	a.mw = append(a.mw, middleware.Errors(cfg.Log))
	a.mw = append(a.mw, middleware.Panics())

	if cfg.CorsOrigin != "" {
		a.mw = append(a.mw, middleware.Cors(cfg.CorsOrigin))

		h := func(ctx context.Context, w http.ResponseWriter, r *http.Request) error {
			w.WriteHeader(http.StatusNoContent)
			return nil
		}

		a.Handle(http.MethodOptions, "/{path:.*}", h)
	}

	authen := auth.Authenticate(cfg.Session)
	limited := middleware.RateLimit(cfg.AuthLimiter)

	a.Handle(http.MethodPost, "/auth/register", auth.HandleRegister(cfg.DB), limited)
	a.Handle(http.MethodPost, "/auth/login", auth.HandleLogin(cfg.DB, cfg.Session), limited)
	a.Handle(http.MethodPost, "/auth/logout", auth.HandleLogout(cfg.Session), authen)

	a.Handle(http.MethodGet, "/courses/pending", course.HandleListPending(cfg.DB), authen)
	a.Handle(http.MethodGet, "/courses", course.HandleList(cfg.DB), authen)
	a.Handle(http.MethodPost, "/courses", course.HandleCreate(cfg.DB), authen)
	a.Handle(http.MethodPost, "/courses/activate", course.HandleActivate(cfg.DB), authen)
	a.Handle(http.MethodPost, "/courses/subscribe", subscription.HandleCreate(cfg.DB), authen)
	a.Handle(http.MethodPost, "/courses/{id}/resources", resource.HandleCreate(cfg.DB, cfg.Uploads), authen)

	a.Handle(http.MethodGet, "/profile", user.HandleProfile(cfg.DB), authen)

	return a.Router
}

func (a *api) Handle(method string, path string, handler web.Handler, mw ...web.Middleware) {

	handler = web.WrapMiddleware(mw, handler)

	handler = web.WrapMiddleware(a.mw, handler)

	h := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {

		ctx := r.Context()

		if err := handler(ctx, w, r); err != nil {

			a.log.WithFields(logrus.Fields{
				"req_id":  middleware.ContextRequestID(ctx),
				"message": err,
			}).Error("ERROR")
		}
	})

	a.Router.Handle(path, h).Methods(method)
}
