package resource

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
)

func Create(ctx context.Context, db sqlx.ExtContext, r Resource) error {
	const q = `
	INSERT INTO resources (resource_id, course_id, name, type, ord, locator, created_at)
	VALUES (:resource_id, :course_id, :name, :type, :ord, :locator, :created_at)`

	if _, err := sqlx.NamedExecContext(ctx, db, q, r); err != nil {
		return fmt.Errorf("inserting resource: %w", err)
	}

	return nil
}

func Fetch(ctx context.Context, db sqlx.ExtContext, id string) (Resource, error) {
	const q = `SELECT * FROM resources WHERE resource_id = $1`

	var r Resource
	if err := sqlx.GetContext(ctx, db, &r, q, id); err != nil {
		return Resource{}, fmt.Errorf("fetching resource[%s]: %w", id, err)
	}

	return r, nil
}

// FetchByCourse returns a course's resources in display order: ascending by
// the instructor-supplied order, insertion sequence breaking ties.
func FetchByCourse(ctx context.Context, db sqlx.ExtContext, courseID string) ([]Resource, error) {
	const q = `SELECT * FROM resources WHERE course_id = $1 ORDER BY ord, seq`

	rs := []Resource{}
	if err := sqlx.SelectContext(ctx, db, &rs, q, courseID); err != nil {
		return nil, fmt.Errorf("fetching resources of course[%s]: %w", courseID, err)
	}

	return rs, nil
}

// FetchByCourses loads the resources of several courses in one query, keyed
// by course id, preserving display order within each course.
func FetchByCourses(ctx context.Context, db sqlx.ExtContext, courseIDs []string) (map[string][]Resource, error) {
	const q = `SELECT * FROM resources WHERE course_id = ANY($1) ORDER BY ord, seq`

	rs := []Resource{}
	if err := sqlx.SelectContext(ctx, db, &rs, q, pq.Array(courseIDs)); err != nil {
		return nil, fmt.Errorf("fetching resources of %d courses: %w", len(courseIDs), err)
	}

	byCourse := make(map[string][]Resource)
	for _, r := range rs {
		byCourse[r.CourseID] = append(byCourse[r.CourseID], r)
	}

	return byCourse, nil
}

// courseExists checks the join key without importing the course package.
func courseExists(ctx context.Context, db sqlx.ExtContext, courseID string) (bool, error) {
	const q = `SELECT COUNT(*) FROM courses WHERE course_id = $1`

	var n int
	if err := sqlx.GetContext(ctx, db, &n, q, courseID); err != nil {
		return false, fmt.Errorf("checking course[%s]: %w", courseID, err)
	}

	return n > 0, nil
}
