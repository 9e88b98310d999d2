package test

import (
	"context"
	"errors"
	"net/http"
	"testing"

	"github.com/capacitanet/portal/portal"
)

func TestSubscription(t *testing.T) {
	env, err := NewTestEnv(t, "subscription_test")
	if err != nil {
		t.Fatalf("initializing test env: %v", err)
	}

	ct := &courseTest{env}
	ctx := context.Background()

	ct.createCourseOK(t, "etl301", "Pipelines", []string{"Data Engineer"})
	env.addResourceOK(t, "etl301", "intro.mp4", 1, "")
	env.addResourceOK(t, "etl301", "notes.pdf", 2, "")
	if err := env.Portal.ActivateCourse(ctx, env.Session, "etl301"); err != nil {
		t.Fatalf("activating: %v", err)
	}

	learner := env.signup(t, "learner@capacitanet.dev", "learner-pass")

	if err := env.Portal.Subscribe(ctx, learner, "etl301"); err != nil {
		t.Fatalf("subscribing: %v", err)
	}

	// Re-subscribing must not corrupt anything.
	if err := env.Portal.Subscribe(ctx, learner, "etl301"); err != nil {
		t.Fatalf("repeated subscribe should be idempotent, got %v", err)
	}

	p, err := env.Portal.Client.Profile(ctx, learner)
	if err != nil {
		t.Fatalf("fetching profile: %v", err)
	}

	if p.Email != "learner@capacitanet.dev" {
		t.Fatalf("profile identity mismatch: %+v", p)
	}
	if len(p.Courses) != 1 {
		t.Fatalf("expected one subscribed course, got %d", len(p.Courses))
	}

	sub := p.Courses[0]
	if sub.ID != "etl301" {
		t.Fatalf("unexpected subscribed course %+v", sub)
	}
	if len(sub.Resources) != 2 {
		t.Fatalf("expected 2 resources in profile, got %d", len(sub.Resources))
	}
	for _, r := range sub.Resources {
		if r.Viewed {
			t.Fatalf("freshly subscribed resources must read as not viewed: %+v", r)
		}
	}
	if sub.Resources[0].Order != 1 || sub.Resources[1].Order != 2 {
		t.Fatalf("profile resources out of display order: %+v", sub.Resources)
	}

	// Subscribing to an unknown course surfaces the remote 404.
	err = env.Portal.Subscribe(ctx, learner, "missing")
	var ce *portal.ConflictError
	if !errors.As(err, &ce) || ce.Status != http.StatusNotFound {
		t.Fatalf("expected 404 for unknown course, got %v", err)
	}
}
