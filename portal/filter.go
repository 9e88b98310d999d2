package portal

import (
	"strings"

	"github.com/capacitanet/portal/core/course"
)

// EmptyCause tells the caller which filter produced an empty result, so the
// user messaging can distinguish "no such course id" from "nothing matched
// your search".
type EmptyCause int

const (
	CauseNone EmptyCause = iota
	CauseIDFilter
	CauseSearch
)

// Visible derives the subset of the catalog to render. The id filter is
// applied first, then the search term narrows the already-reduced set; the
// two compose conjunctively, so a search under an active id filter can
// legitimately empty a single-course view. A term that trims to "" counts as
// absent. Input order is preserved and the input is never mutated.
func Visible(in []course.Course, idFilter, term string) ([]course.Course, EmptyCause) {
	byID := in
	if idFilter != "" {
		byID = nil
		for _, c := range in {
			if c.ID == idFilter {
				byID = append(byID, c)
			}
		}
		if len(byID) == 0 {
			return []course.Course{}, CauseIDFilter
		}
	}

	term = strings.TrimSpace(term)
	if term == "" {
		out := make([]course.Course, len(byID))
		copy(out, byID)
		return out, CauseNone
	}

	out := []course.Course{}
	for _, c := range byID {
		if matches(c, term) {
			out = append(out, c)
		}
	}

	if len(out) == 0 {
		return out, CauseSearch
	}
	return out, CauseNone
}

// matches checks the term case-insensitively against title, description and
// every tag.
func matches(c course.Course, term string) bool {
	term = strings.ToLower(term)

	if strings.Contains(strings.ToLower(c.Title), term) {
		return true
	}
	if strings.Contains(strings.ToLower(c.Description), term) {
		return true
	}
	for _, tag := range c.Tags {
		if strings.Contains(strings.ToLower(tag), term) {
			return true
		}
	}
	return false
}
