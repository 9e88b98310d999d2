package resource

import (
	"sort"
	"time"
)

// Type is the declared kind of a content item. The set is closed on the
// client side but the server may grow it first, so consumers must not crash
// on values outside it (see PresentationFor).
type Type string

const (
	TypeVideo        Type = "video"
	TypePDF          Type = "pdf"
	TypeWordDocument Type = "word-document"
	TypeSlideDeck    Type = "slide-deck"
	TypeText         Type = "text"
)

func (t Type) Valid() bool {
	switch t {
	case TypeVideo, TypePDF, TypeWordDocument, TypeSlideDeck, TypeText:
		return true
	}
	return false
}

type Resource struct {
	ID        string    `json:"id" db:"resource_id"`
	CourseID  string    `json:"courseId" db:"course_id"`
	Name      string    `json:"name" db:"name"`
	Type      Type      `json:"type" db:"type"`
	Order     int       `json:"order" db:"ord"`
	Locator   string    `json:"locator" db:"locator"`
	Seq       int64     `json:"-" db:"seq"`
	CreatedAt time.Time `json:"createdAt" db:"created_at"`
}

// ResourceNew carries the multipart form fields of an upload.
type ResourceNew struct {
	Name  string `validate:"required"`
	Type  Type   `validate:"required"`
	Order int    `validate:"required,gt=0"`
}

// Ordered returns the resources sorted ascending by Order. The sort is
// stable: equal orders keep their relative input position, which is how ties
// between instructor-supplied order values are resolved. The input slice is
// left untouched so callers can re-render from the same data.
func Ordered(in []Resource) []Resource {
	out := make([]Resource, len(in))
	copy(out, in)
	sort.SliceStable(out, func(i, j int) bool { return out[i].Order < out[j].Order })
	return out
}
