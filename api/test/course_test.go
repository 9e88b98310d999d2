package test

import (
	"context"
	"errors"
	"net/http"
	"testing"

	"github.com/capacitanet/portal/core/course"
	"github.com/capacitanet/portal/portal"
)

type courseTest struct {
	*TestEnv
}

func TestCourse(t *testing.T) {
	env, err := NewTestEnv(t, "course_test")
	if err != nil {
		t.Fatalf("initializing test env: %v", err)
	}

	ct := &courseTest{env}
	ctx := context.Background()

	// Empty tag set fails locally, before any remote call.
	_, err = ct.Portal.CreateCourse(ctx, ct.Session, course.CourseNew{
		ID: "go101", Title: "Go from scratch", Description: "Build services",
	})
	var ve *portal.ValidationError
	if !errors.As(err, &ve) {
		t.Fatalf("expected ValidationError for empty tags, got %v", err)
	}

	created := ct.createCourseOK(t, "go101", "Go from scratch", []string{"Fullstack", "Cloud"})
	if created.Status != course.Pending {
		t.Fatalf("fresh course should be pending, got %s", created.Status)
	}
	if created.CreatorID == "" {
		t.Fatal("creator should be stamped from the session")
	}

	// The id is the unique join key; reusing it is a conflict.
	_, err = ct.Portal.CreateCourse(ctx, ct.Session, course.CourseNew{
		ID: "go101", Title: "Another", Description: "Another", Tags: []string{"Cloud"},
	})
	var ce *portal.ConflictError
	if !errors.As(err, &ce) {
		t.Fatalf("expected ConflictError on duplicate id, got %v", err)
	}
	if ce.Msg != "a course with this id already exists" {
		t.Fatalf("unexpected conflict message %q", ce.Msg)
	}

	// Pending courses show up in the activation queue, not the catalog.
	ct.assertPending(t, "go101", true)
	ct.assertActive(t, "go101", false)

	if err := ct.Portal.ActivateCourse(ctx, ct.Session, "go101"); err != nil {
		t.Fatalf("activating: %v", err)
	}

	ct.assertPending(t, "go101", false)
	ct.assertActive(t, "go101", true)

	// Re-activation is idempotent.
	if err := ct.Portal.ActivateCourse(ctx, ct.Session, "go101"); err != nil {
		t.Fatalf("second activation should succeed, got %v", err)
	}

	// Unknown ids are reported by the remote side.
	err = ct.Portal.ActivateCourse(ctx, ct.Session, "missing")
	if !errors.As(err, &ce) || ce.Status != http.StatusNotFound {
		t.Fatalf("expected a 404 conflict for unknown id, got %v", err)
	}

	// Rejected tags never reach the catalog.
	_, err = ct.Portal.CreateCourse(ctx, ct.Session, course.CourseNew{
		ID: "bad1", Title: "T", Description: "D", Tags: []string{"Blockchain"},
	})
	if !errors.As(err, &ce) || ce.Status != http.StatusUnprocessableEntity {
		t.Fatalf("expected 422 for a tag outside the vocabulary, got %v", err)
	}
}

func TestCourseRequiresSession(t *testing.T) {
	env, err := NewTestEnv(t, "course_auth_test")
	if err != nil {
		t.Fatalf("initializing test env: %v", err)
	}

	_, err = env.Portal.Client.ActiveCourses(context.Background(), nil)

	var ce *portal.ConflictError
	if !errors.As(err, &ce) || ce.Status != http.StatusUnauthorized {
		t.Fatalf("expected 401 without a session, got %v", err)
	}
}

func (ct *courseTest) createCourseOK(t *testing.T, id, title string, tags []string) course.Course {
	t.Helper()

	created, err := ct.Portal.CreateCourse(context.Background(), ct.Session, course.CourseNew{
		ID:          id,
		Title:       title,
		Description: "about " + title,
		Tags:        tags,
	})
	if err != nil {
		t.Fatalf("creating course %s: %v", id, err)
	}
	if created.ID != id {
		t.Fatalf("created course has id %s, want %s", created.ID, id)
	}

	return created
}

func (ct *courseTest) assertActive(t *testing.T, id string, want bool) {
	t.Helper()

	courses, err := ct.Portal.Client.ActiveCourses(context.Background(), ct.Session)
	if err != nil {
		t.Fatalf("listing active courses: %v", err)
	}

	if got := containsCourse(courses, id); got != want {
		t.Fatalf("active listing contains %s = %v, want %v", id, got, want)
	}
}

func (ct *courseTest) assertPending(t *testing.T, id string, want bool) {
	t.Helper()

	courses, err := ct.Portal.Client.PendingCourses(context.Background(), ct.Session)
	if err != nil {
		t.Fatalf("listing pending courses: %v", err)
	}

	if got := containsCourse(courses, id); got != want {
		t.Fatalf("pending listing contains %s = %v, want %v", id, got, want)
	}
}

func containsCourse(courses []course.Course, id string) bool {
	for _, c := range courses {
		if c.ID == id {
			return true
		}
	}
	return false
}
