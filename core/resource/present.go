package resource

import (
	"path/filepath"
	"strings"
)

// Presentation is how the UI should offer a resource to the user.
type Presentation int

const (
	// DownloadOnly is the zero value on purpose: a type this client does
	// not recognize fails closed to a download affordance.
	DownloadOnly Presentation = iota
	InlinePlayer
	InlineFrame
)

func (p Presentation) String() string {
	switch p {
	case InlinePlayer:
		return "inline-player"
	case InlineFrame:
		return "inline-frame"
	}
	return "download-only"
}

// PresentationFor maps a declared type to its presentation mode.
func PresentationFor(t Type) Presentation {
	switch t {
	case TypeVideo:
		return InlinePlayer
	case TypePDF:
		return InlineFrame
	}
	return DownloadOnly
}

var extTypes = map[string]Type{
	"mp4":  TypeVideo,
	"pdf":  TypePDF,
	"docx": TypeWordDocument,
	"doc":  TypeWordDocument,
	"pptx": TypeSlideDeck,
	"ppt":  TypeSlideDeck,
	"txt":  TypeText,
}

// TypeFromFilename infers the resource type from the file extension. It is
// an upload-time default only; the submitted form value always wins.
func TypeFromFilename(name string) (Type, bool) {
	ext := strings.ToLower(strings.TrimPrefix(filepath.Ext(name), "."))
	t, ok := extTypes[ext]
	return t, ok
}
