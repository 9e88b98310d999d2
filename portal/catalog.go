package portal

import (
	"sync"

	"github.com/capacitanet/portal/core/course"
)

// Catalog holds the last-fetched course set. It is single-writer (fetch
// completions) and multi-reader (rendering, filtering). Each fetch carries a
// generation tag so a slow response that lost the race to a newer fetch is
// discarded instead of overwriting fresher data.
type Catalog struct {
	mu        sync.RWMutex
	started   uint64
	installed uint64
	courses   []course.Course
}

// Begin registers the start of a fetch and returns its generation tag.
func (c *Catalog) Begin() uint64 {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.started++
	return c.started
}

// Complete installs the result of the fetch tagged gen. It reports false and
// keeps the current data when a later fetch already completed.
func (c *Catalog) Complete(gen uint64, courses []course.Course) bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	if gen <= c.installed {
		return false
	}

	c.installed = gen
	c.courses = courses
	return true
}

// Courses returns a copy of the stored set in fetch order.
func (c *Catalog) Courses() []course.Course {
	c.mu.RLock()
	defer c.mu.RUnlock()

	out := make([]course.Course, len(c.courses))
	copy(out, c.courses)
	return out
}
