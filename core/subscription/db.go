package subscription

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"
)

// Create records a subscription. Repeated subscribes are absorbed here so
// the action is idempotent from the caller's perspective.
func Create(ctx context.Context, db sqlx.ExtContext, s Subscription) error {
	const q = `
	INSERT INTO subscriptions (user_id, course_id, created_at)
	VALUES (:user_id, :course_id, :created_at)
	ON CONFLICT (user_id, course_id) DO NOTHING`

	if _, err := sqlx.NamedExecContext(ctx, db, q, s); err != nil {
		return fmt.Errorf("inserting subscription: %w", err)
	}

	return nil
}

func FetchByUser(ctx context.Context, db sqlx.ExtContext, userID string) ([]Subscription, error) {
	const q = `SELECT * FROM subscriptions WHERE user_id = $1 ORDER BY created_at`

	subs := []Subscription{}
	if err := sqlx.SelectContext(ctx, db, &subs, q, userID); err != nil {
		return nil, fmt.Errorf("fetching subscriptions of user[%s]: %w", userID, err)
	}

	return subs, nil
}
