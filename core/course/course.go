package course

import (
	"time"

	"github.com/capacitanet/portal/core/resource"
	"github.com/lib/pq"
)

type Status string

const (
	Pending Status = "pending"
	Active  Status = "active"
)

// Tags is the fixed vocabulary courses are labelled with. The authoring
// endpoint rejects anything outside it.
var Tags = []string{"Fullstack", "APIs & Integrations", "Cloud", "Data Engineer"}

type Course struct {
	ID          string              `json:"id" db:"course_id"`
	Title       string              `json:"title" db:"title"`
	Description string              `json:"description" db:"description"`
	Tags        pq.StringArray      `json:"tags" db:"tags"`
	CreatorID   string              `json:"creatorId" db:"creator_id"`
	Status      Status              `json:"status" db:"status"`
	CreatedAt   time.Time           `json:"createdAt" db:"created_at"`
	UpdatedAt   time.Time           `json:"updatedAt" db:"updated_at"`
	Resources   []resource.Resource `json:"resources" db:"-"`
}

// CourseNew is the creation payload. The id is instructor-assigned and
// immutable afterwards; it is the join key for every other operation.
type CourseNew struct {
	ID          string   `json:"id" validate:"required"`
	Title       string   `json:"title" validate:"required"`
	Description string   `json:"description" validate:"required"`
	Tags        []string `json:"tags" validate:"required,min=1,dive,oneof=Fullstack Cloud 'APIs & Integrations' 'Data Engineer'"`
}

// CourseActivate is the body of the activation action.
type CourseActivate struct {
	ID string `json:"id" validate:"required"`
}
