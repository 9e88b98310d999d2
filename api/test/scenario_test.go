package test

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/capacitanet/portal/core/course"
	"github.com/capacitanet/portal/core/resource"
	"github.com/capacitanet/portal/portal"
)

// TestAuthoringFlow drives a course from creation through activation and
// checks it becomes discoverable through the catalog search.
func TestAuthoringFlow(t *testing.T) {
	env, err := NewTestEnv(t, "scenario_test")
	if err != nil {
		t.Fatalf("initializing test env: %v", err)
	}

	ctx := context.Background()

	// Tags are mandatory, and the portal rejects the draft before any
	// request leaves the process.
	_, err = env.Portal.CreateCourse(ctx, env.Session, course.CourseNew{
		ID:    "c1",
		Title: "Cloud Foundations",
	})
	var ve *portal.ValidationError
	if !errors.As(err, &ve) {
		t.Fatalf("expected validation error for missing tags, got %v", err)
	}

	created, err := env.Portal.CreateCourse(ctx, env.Session, course.CourseNew{
		ID:          "c1",
		Title:       "Cloud Foundations",
		Description: "From zero to deployed",
		Tags:        []string{"Cloud"},
	})
	if err != nil {
		t.Fatalf("creating course: %v", err)
	}
	if created.Status != course.Pending {
		t.Fatalf("new course should start pending, got %q", created.Status)
	}

	// Out-of-order uploads still come back in display order.
	env.addResourceOK(t, "c1", "deploy.mp4", 2, "")
	env.addResourceOK(t, "c1", "welcome.mp4", 1, "")

	if err := env.Portal.ActivateCourse(ctx, env.Session, "c1"); err != nil {
		t.Fatalf("activating: %v", err)
	}

	courses, cause := env.Portal.Visible("", "cloud")
	if cause != portal.CauseNone {
		t.Fatalf("expected visible results, got cause %v", cause)
	}
	if len(courses) != 1 || courses[0].ID != "c1" {
		t.Fatalf("search %q should surface c1, got %+v", "cloud", courses)
	}

	got := courses[0].Resources
	if len(got) != 2 || got[0].Order != 1 || got[1].Order != 2 {
		t.Fatalf("resources out of display order: %+v", got)
	}
	if !strings.HasSuffix(got[0].Name, "welcome.mp4") {
		t.Fatalf("unexpected first resource: %+v", got[0])
	}
	if got[0].Type != resource.TypeVideo {
		t.Fatalf("mp4 upload should infer the video type, got %q", got[0].Type)
	}
	if resource.PresentationFor(got[0].Type) != resource.InlinePlayer {
		t.Fatalf("video resources should present inline")
	}
}
