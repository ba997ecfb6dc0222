package export

import (
	"io"

	"transport-backend/internal/render"
)

// Document is one multi-page artifact being assembled.
type Document interface {
	// AddPage appends a new blank page and makes it current.
	AddPage()
	// PlaceImage draws the full captured image on the current page at the
	// given position and size. The same image may be placed on every page
	// at different offsets.
	PlaceImage(img *render.Image, x, y, w, h float64) error
	// Output writes the finished file. Nothing is written on error.
	Output(w io.Writer) error
}

// Encoder creates documents with a fixed physical page size.
type Encoder interface {
	NewDocument() Document
	// PageSize returns the usable page width and height in millimeters.
	PageSize() (w, h float64)
}
