package export

import (
	"bytes"
	"fmt"
	"io"

	"github.com/jung-kurt/gofpdf/v2"

	"transport-backend/internal/config"
	"transport-backend/internal/render"
)

// PDFEncoder produces PDF documents at the configured page size.
type PDFEncoder struct {
	pageSize    string
	orientation string
}

func NewPDFEncoder(cfg config.ExportConfig) *PDFEncoder {
	e := &PDFEncoder{pageSize: cfg.PageSize, orientation: cfg.Orientation}
	if e.pageSize == "" {
		e.pageSize = "A4"
	}
	if e.orientation == "" {
		e.orientation = "P"
	}
	return e
}

func (e *PDFEncoder) newFpdf() *gofpdf.Fpdf {
	pdf := gofpdf.New(e.orientation, "mm", e.pageSize, "")
	pdf.SetMargins(0, 0, 0)
	// Images are placed at negative offsets past the page bottom; automatic
	// page breaks would fight that.
	pdf.SetAutoPageBreak(false, 0)
	return pdf
}

func (e *PDFEncoder) PageSize() (float64, float64) {
	w, h := e.newFpdf().GetPageSize()
	return w, h
}

func (e *PDFEncoder) NewDocument() Document {
	return &pdfDocument{pdf: e.newFpdf()}
}

type pdfDocument struct {
	pdf        *gofpdf.Fpdf
	registered bool
}

func (d *pdfDocument) AddPage() {
	d.pdf.AddPage()
}

func (d *pdfDocument) PlaceImage(img *render.Image, x, y, w, h float64) error {
	opts := gofpdf.ImageOptions{ImageType: "PNG"}
	if !d.registered {
		d.pdf.RegisterImageOptionsReader("document", opts, bytes.NewReader(img.PNG))
		d.registered = true
	}
	d.pdf.ImageOptions("document", x, y, w, h, false, opts, 0, "")
	if err := d.pdf.Error(); err != nil {
		return fmt.Errorf("placing image: %w", err)
	}
	return nil
}

func (d *pdfDocument) Output(w io.Writer) error {
	return d.pdf.Output(w)
}

var _ Encoder = (*PDFEncoder)(nil)
