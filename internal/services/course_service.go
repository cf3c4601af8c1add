// Package services – CourseCatalog
//
// The course catalogue is a fixed, read-only list held in memory. It has no
// persistence and no write operations.
package services

import (
	"context"

	"github.com/tbourn/go-movies-api/internal/domain"
)

// defaultCourses seeds the catalogue.
var defaultCourses = []domain.Course{
	{ID: "abc-123", Title: "TypeScript"},
	{ID: "cde-345", Title: "React"},
	{ID: "efg-567", Title: "Angular"},
	{ID: "ghi-789", Title: "Node.js"},
}

// CourseCatalog serves the read-only course list. It is safe for concurrent
// use since it is never mutated after construction.
type CourseCatalog struct {
	courses []domain.Course
}

// NewCourseCatalog returns a catalogue holding courses, or the default seed
// when none are given.
func NewCourseCatalog(courses ...domain.Course) *CourseCatalog {
	if len(courses) == 0 {
		courses = defaultCourses
	}
	cp := make([]domain.Course, len(courses))
	copy(cp, courses)
	return &CourseCatalog{courses: cp}
}

// List returns a copy of every course in catalogue order.
func (c *CourseCatalog) List(ctx context.Context) ([]domain.Course, error) {
	out := make([]domain.Course, len(c.courses))
	copy(out, c.courses)
	return out, nil
}

// Get returns the course with id, or ErrCourseNotFound.
func (c *CourseCatalog) Get(ctx context.Context, id string) (*domain.Course, error) {
	for i := range c.courses {
		if c.courses[i].ID == id {
			cp := c.courses[i]
			return &cp, nil
		}
	}
	return nil, ErrCourseNotFound
}
