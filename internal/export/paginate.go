package export

// Band is one page-height slice of the full document image. OffsetY is the
// vertical offset at which the full image must be placed on that page so
// the band's slice lands at the top.
type Band struct {
	Page    int
	OffsetY float64
}

// Paginate slices a document of imageHeight into successive pageHeight
// bands. Offsets accumulate by plain arithmetic, so the stacked bands
// reconstruct the full image exactly; slicing is not aware of content, and
// a table row can land across a page boundary.
func Paginate(imageHeight, pageHeight float64) []Band {
	if imageHeight <= 0 || pageHeight <= 0 {
		return nil
	}

	var bands []Band
	offset := 0.0
	page := 1
	for remaining := imageHeight; remaining > 0; remaining -= pageHeight {
		bands = append(bands, Band{Page: page, OffsetY: offset})
		offset -= pageHeight
		page++
	}
	return bands
}
