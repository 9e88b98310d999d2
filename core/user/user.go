package user

import (
	"time"

	"github.com/capacitanet/portal/core/course"
	"github.com/capacitanet/portal/core/resource"
)

type User struct {
	ID           string    `json:"id" db:"user_id"`
	Email        string    `json:"email" db:"email"`
	FirstName    string    `json:"firstName" db:"first_name"`
	LastName     string    `json:"lastName" db:"last_name"`
	PasswordHash []byte    `json:"-" db:"password_hash"`
	CreatedAt    time.Time `json:"createdAt" db:"created_at"`
	UpdatedAt    time.Time `json:"updatedAt" db:"updated_at"`
}

type UserNew struct {
	Email     string `json:"email" validate:"required,email"`
	FirstName string `json:"firstName" validate:"required"`
	LastName  string `json:"lastName" validate:"required"`
	Password  string `json:"password" validate:"required,min=6"`
}

type UserLogin struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// Profile is the identity plus the subscribed courses, each resource carrying
// the viewed flag of this user.
type Profile struct {
	ID        string             `json:"id"`
	Email     string             `json:"email"`
	FirstName string             `json:"firstName"`
	LastName  string             `json:"lastName"`
	Courses   []SubscribedCourse `json:"courses"`
}

type SubscribedCourse struct {
	ID          string           `json:"id" db:"course_id"`
	Title       string           `json:"title" db:"title"`
	Description string           `json:"description" db:"description"`
	Status      course.Status    `json:"status" db:"status"`
	Resources   []ViewedResource `json:"resources" db:"-"`
}

type ViewedResource struct {
	resource.Resource
	Viewed bool `json:"viewed" db:"viewed"`
}
