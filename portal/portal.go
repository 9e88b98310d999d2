package portal

import (
	"context"

	"github.com/capacitanet/portal/core/course"
	"github.com/capacitanet/portal/core/resource"
)

// Portal ties the client and the catalog store together. Every mutating
// action re-fetches the catalog on success, keeping the store the single
// source of truth; there is no page-reload style refresh anywhere.
type Portal struct {
	Client  *Client
	Catalog Catalog
}

func New(client *Client) *Portal {
	return &Portal{Client: client}
}

// Refresh fetches the active catalog into the store. A fetch superseded by a
// newer one before completing is dropped by the store.
func (p *Portal) Refresh(ctx context.Context, s *Session) error {
	gen := p.Catalog.Begin()

	courses, err := p.Client.ActiveCourses(ctx, s)
	if err != nil {
		return err
	}

	p.Catalog.Complete(gen, courses)
	return nil
}

// Visible computes the renderable subset of the stored catalog.
func (p *Portal) Visible(idFilter, term string) ([]course.Course, EmptyCause) {
	return Visible(p.Catalog.Courses(), idFilter, term)
}

func (p *Portal) CreateCourse(ctx context.Context, s *Session, cn course.CourseNew) (course.Course, error) {
	created, err := p.Client.CreateCourse(ctx, s, cn)
	if err != nil {
		return course.Course{}, err
	}

	// A new course is pending and thus invisible in the catalog, but the
	// refresh keeps the store in line with whatever else changed remotely.
	if err := p.Refresh(ctx, s); err != nil {
		return created, err
	}
	return created, nil
}

func (p *Portal) ActivateCourse(ctx context.Context, s *Session, id string) error {
	if err := p.Client.ActivateCourse(ctx, s, id); err != nil {
		return err
	}
	return p.Refresh(ctx, s)
}

func (p *Portal) AddResource(ctx context.Context, s *Session, courseID string, up ResourceUpload) (resource.Resource, error) {
	created, err := p.Client.AddResource(ctx, s, courseID, up)
	if err != nil {
		return resource.Resource{}, err
	}

	if err := p.Refresh(ctx, s); err != nil {
		return created, err
	}
	return created, nil
}

func (p *Portal) Subscribe(ctx context.Context, s *Session, courseID string) error {
	if err := p.Client.Subscribe(ctx, s, courseID); err != nil {
		return err
	}
	return p.Refresh(ctx, s)
}
