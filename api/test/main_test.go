package test

import (
	"context"
	"fmt"
	"io"
	"log"
	"net/http/httptest"
	"os"
	"testing"
	"time"

	"github.com/alexedwards/scs/v2"
	"github.com/capacitanet/portal/api"
	"github.com/capacitanet/portal/config"
	"github.com/capacitanet/portal/database"
	"github.com/capacitanet/portal/portal"
	"github.com/capacitanet/portal/rate"
	"github.com/capacitanet/portal/storage"
	"github.com/jmoiron/sqlx"
	"github.com/ory/dockertest/v3"
	"github.com/sirupsen/logrus"
)

var dbHost string

// TestMain boots one throwaway postgres container for the whole suite. Each
// TestEnv then creates its own database inside it, so suites stay isolated.
func TestMain(m *testing.M) {
	pool, err := dockertest.NewPool("")
	if err != nil {
		log.Fatalf("constructing docker pool: %v", err)
	}

	res, err := pool.Run("postgres", "15-alpine", []string{
		"POSTGRES_USER=postgres",
		"POSTGRES_PASSWORD=postgres",
		"POSTGRES_DB=postgres",
	})
	if err != nil {
		log.Fatalf("starting postgres container: %v", err)
	}

	dbHost = res.GetHostPort("5432/tcp")

	err = pool.Retry(func() error {
		db, err := database.Open(adminConfig())
		if err != nil {
			return err
		}
		defer db.Close()
		return db.Ping()
	})
	if err != nil {
		log.Fatalf("waiting for postgres: %v", err)
	}

	code := m.Run()

	if err := pool.Purge(res); err != nil {
		log.Printf("purging postgres container: %v", err)
	}

	os.Exit(code)
}

func adminConfig() config.DB {
	return config.DB{
		User:       "postgres",
		Password:   "postgres",
		Host:       dbHost,
		Name:       "postgres",
		DisableTLS: true,
	}
}

type TestEnv struct {
	Server *httptest.Server
	URL    string
	DB     *sqlx.DB

	Portal  *portal.Portal
	Session *portal.Session

	UserEmail string
	UserPass  string
}

// NewTestEnv creates a migrated database named after the suite, serves the
// real API mux on an httptest server, and signs up a default user.
func NewTestEnv(t *testing.T, name string) (*TestEnv, error) {
	t.Helper()

	admin, err := database.Open(adminConfig())
	if err != nil {
		return nil, fmt.Errorf("opening admin connection: %w", err)
	}
	defer admin.Close()

	if _, err := admin.Exec("CREATE DATABASE " + name); err != nil {
		return nil, fmt.Errorf("creating database %s: %w", name, err)
	}

	cfg := adminConfig()
	cfg.Name = name

	db, err := database.Open(cfg)
	if err != nil {
		return nil, fmt.Errorf("opening %s: %w", name, err)
	}
	t.Cleanup(func() { db.Close() })

	if err := database.Migrate(db); err != nil {
		return nil, fmt.Errorf("migrating %s: %w", name, err)
	}

	logger := logrus.New()
	logger.SetOutput(io.Discard)

	session := scs.New()
	session.Lifetime = 24 * time.Hour

	mux := api.APIMux(api.APIConfig{
		Log:         logger,
		DB:          db,
		Session:     session,
		Uploads:     &storage.Disk{Root: t.TempDir(), PublicURL: "http://localhost/files"},
		AuthLimiter: rate.NewLimiter(1000, time.Hour, 1000),
	})

	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)

	env := &TestEnv{
		Server:    srv,
		URL:       srv.URL,
		DB:        db,
		Portal:    portal.New(portal.NewClient(srv.URL, logger)),
		UserEmail: "tester@capacitanet.dev",
		UserPass:  "testing-pass",
	}

	env.Session = env.signup(t, env.UserEmail, env.UserPass)

	return env, nil
}

// signup registers and logs in a user, returning its session.
func (env *TestEnv) signup(t *testing.T, email, pass string) *portal.Session {
	t.Helper()
	ctx := context.Background()

	err := env.Portal.Client.Register(ctx, portal.RegisterInput{
		Email:     email,
		FirstName: "Test",
		LastName:  "User",
		Password:  pass,
	})
	if err != nil {
		t.Fatalf("registering %s: %v", email, err)
	}

	s, err := env.Portal.Client.Login(ctx, email, pass)
	if err != nil {
		t.Fatalf("logging in %s: %v", email, err)
	}

	return s
}
