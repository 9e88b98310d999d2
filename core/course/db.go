package course

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"
)

func Create(ctx context.Context, db sqlx.ExtContext, c Course) error {
	const q = `
	INSERT INTO courses (course_id, title, description, tags, creator_id, status, created_at, updated_at)
	VALUES (:course_id, :title, :description, :tags, :creator_id, :status, :created_at, :updated_at)`

	if _, err := sqlx.NamedExecContext(ctx, db, q, c); err != nil {
		return fmt.Errorf("inserting course: %w", err)
	}

	return nil
}

func Fetch(ctx context.Context, db sqlx.ExtContext, id string) (Course, error) {
	const q = `SELECT * FROM courses WHERE course_id = $1`

	var c Course
	if err := sqlx.GetContext(ctx, db, &c, q, id); err != nil {
		return Course{}, fmt.Errorf("fetching course[%s]: %w", id, err)
	}

	return c, nil
}

func FetchByStatus(ctx context.Context, db sqlx.ExtContext, status Status) ([]Course, error) {
	const q = `SELECT * FROM courses WHERE status = $1 ORDER BY created_at`

	cs := []Course{}
	if err := sqlx.SelectContext(ctx, db, &cs, q, status); err != nil {
		return nil, fmt.Errorf("fetching courses with status[%s]: %w", status, err)
	}

	return cs, nil
}

// Activate flips a course to active. Activating an already active course is
// a no-op, so the action stays idempotent for re-submitted requests.
func Activate(ctx context.Context, db sqlx.ExtContext, id string) error {
	const q = `
	UPDATE courses
	SET status = $2, updated_at = NOW()
	WHERE course_id = $1`

	if _, err := db.ExecContext(ctx, q, id, Active); err != nil {
		return fmt.Errorf("activating course[%s]: %w", id, err)
	}

	return nil
}
