package portal

import (
	"testing"

	"github.com/capacitanet/portal/core/course"
)

func TestCatalogInstallsLatest(t *testing.T) {
	var cat Catalog

	gen := cat.Begin()
	if !cat.Complete(gen, []course.Course{{ID: "a"}}) {
		t.Fatal("first completion should install")
	}

	if got := cat.Courses(); len(got) != 1 || got[0].ID != "a" {
		t.Fatalf("unexpected catalog %v", got)
	}
}

// A fetch that was superseded before completing must not overwrite the
// result of the newer fetch, regardless of arrival order.
func TestCatalogDiscardsStaleFetch(t *testing.T) {
	var cat Catalog

	stale := cat.Begin()
	fresh := cat.Begin()

	if !cat.Complete(fresh, []course.Course{{ID: "fresh"}}) {
		t.Fatal("fresh completion should install")
	}
	if cat.Complete(stale, []course.Course{{ID: "stale"}}) {
		t.Fatal("stale completion should be discarded")
	}

	if got := cat.Courses(); len(got) != 1 || got[0].ID != "fresh" {
		t.Fatalf("stale fetch overwrote fresh data: %v", got)
	}
}

func TestCatalogCoursesReturnsCopy(t *testing.T) {
	var cat Catalog
	cat.Complete(cat.Begin(), []course.Course{{ID: "a"}, {ID: "b"}})

	got := cat.Courses()
	got[0].ID = "mutated"

	if cat.Courses()[0].ID != "a" {
		t.Fatal("reader mutated the stored catalog")
	}
}
