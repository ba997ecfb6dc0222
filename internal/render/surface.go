package render

import "context"

// Options control how the invoice document is rasterized.
type Options struct {
	// Width is the forced viewport width in CSS pixels. Exports always use
	// a desktop reference width so the output does not depend on whatever
	// device the user happens to be on.
	Width int
	// Scale is the device scale factor applied during capture.
	Scale float64
	// Background is the page background color, e.g. "#ffffff".
	Background string
}

// Image is a rasterized document at its full rendered height.
type Image struct {
	PNG    []byte
	Width  int
	Height int
}

// Surface captures a full-height raster of an HTML document.
type Surface interface {
	Capture(ctx context.Context, html string, opts Options) (*Image, error)
}
