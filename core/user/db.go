package user

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
)

func Create(ctx context.Context, db sqlx.ExtContext, u User) error {
	const q = `
	INSERT INTO users (user_id, email, first_name, last_name, password_hash, created_at, updated_at)
	VALUES (:user_id, :email, :first_name, :last_name, :password_hash, :created_at, :updated_at)`

	if _, err := sqlx.NamedExecContext(ctx, db, q, u); err != nil {
		return fmt.Errorf("inserting user: %w", err)
	}

	return nil
}

func Fetch(ctx context.Context, db sqlx.ExtContext, id string) (User, error) {
	const q = `SELECT * FROM users WHERE user_id = $1`

	var u User
	if err := sqlx.GetContext(ctx, db, &u, q, id); err != nil {
		return User{}, fmt.Errorf("fetching user[%s]: %w", id, err)
	}

	return u, nil
}

func FetchByEmail(ctx context.Context, db sqlx.ExtContext, email string) (User, error) {
	const q = `SELECT * FROM users WHERE email = $1`

	var u User
	if err := sqlx.GetContext(ctx, db, &u, q, email); err != nil {
		return User{}, fmt.Errorf("fetching user by email: %w", err)
	}

	return u, nil
}

// FetchProfile assembles the profile in three queries: the identity, the
// subscribed courses, then all their resources with this user's viewed flag
// joined in (absent rows read as not viewed).
func FetchProfile(ctx context.Context, db sqlx.ExtContext, userID string) (Profile, error) {
	u, err := Fetch(ctx, db, userID)
	if err != nil {
		return Profile{}, err
	}

	const qc = `
	SELECT c.course_id, c.title, c.description, c.status
	FROM courses c
	JOIN subscriptions s ON s.course_id = c.course_id
	WHERE s.user_id = $1
	ORDER BY s.created_at`

	courses := []SubscribedCourse{}
	if err := sqlx.SelectContext(ctx, db, &courses, qc, userID); err != nil {
		return Profile{}, fmt.Errorf("fetching subscriptions of user[%s]: %w", userID, err)
	}

	ids := make([]string, 0, len(courses))
	for _, c := range courses {
		ids = append(ids, c.ID)
	}

	const qr = `
	SELECT r.*, COALESCE(v.viewed, FALSE) AS viewed
	FROM resources r
	LEFT JOIN resource_views v ON v.resource_id = r.resource_id AND v.user_id = $1
	WHERE r.course_id = ANY($2)
	ORDER BY r.ord, r.seq`

	rs := []ViewedResource{}
	if err := sqlx.SelectContext(ctx, db, &rs, qr, userID, pq.Array(ids)); err != nil {
		return Profile{}, fmt.Errorf("fetching viewed resources of user[%s]: %w", userID, err)
	}

	byCourse := make(map[string][]ViewedResource)
	for _, r := range rs {
		byCourse[r.CourseID] = append(byCourse[r.CourseID], r)
	}

	for i := range courses {
		vrs, ok := byCourse[courses[i].ID]
		if !ok {
			vrs = []ViewedResource{}
		}
		courses[i].Resources = vrs
	}

	return Profile{
		ID:        u.ID,
		Email:     u.Email,
		FirstName: u.FirstName,
		LastName:  u.LastName,
		Courses:   courses,
	}, nil
}
