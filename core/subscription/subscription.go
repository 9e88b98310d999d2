package subscription

import "time"

// Subscription relates a learner to a course. There is no unsubscribe flow;
// rows only accumulate.
type Subscription struct {
	UserID    string    `json:"userId" db:"user_id"`
	CourseID  string    `json:"courseId" db:"course_id"`
	CreatedAt time.Time `json:"createdAt" db:"created_at"`
}

type SubscriptionNew struct {
	ID string `json:"id" validate:"required"`
}
