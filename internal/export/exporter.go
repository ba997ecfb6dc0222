package export

import (
	"bytes"
	"context"
	"fmt"
	"log"
	"time"

	"transport-backend/internal/metrics"
	"transport-backend/internal/models"
	"transport-backend/internal/render"
)

// Result is a finished export held in memory; nothing touches disk.
type Result struct {
	Filename string
	PDF      []byte
	Pages    int
}

// Exporter turns an invoice into a paginated PDF: render the document to
// HTML, capture a full-height raster at the forced desktop width, slice it
// into page bands, and place each band in the output file. Any failure
// aborts the export with no partial artifact.
type Exporter struct {
	Surface  render.Surface
	Encoder  Encoder
	Archiver *Archiver
}

func NewExporter(surface render.Surface, encoder Encoder, archiver *Archiver) *Exporter {
	return &Exporter{Surface: surface, Encoder: encoder, Archiver: archiver}
}

// Filename derives the export filename from the invoice number, falling
// back to the literal "Draft" when the invoice is unnumbered.
func Filename(invoiceNo string) string {
	if invoiceNo == "" {
		invoiceNo = "Draft"
	}
	return fmt.Sprintf("Invoice_%s.pdf", invoiceNo)
}

func (e *Exporter) Export(ctx context.Context, inv *models.Invoice) (*Result, error) {
	start := time.Now()
	res, err := e.export(ctx, inv)
	if err != nil {
		metrics.InvoiceExportsTotal.WithLabelValues("failure").Inc()
		return nil, err
	}
	metrics.InvoiceExportsTotal.WithLabelValues("success").Inc()
	metrics.InvoiceExportDuration.Observe(time.Since(start).Seconds())
	metrics.InvoiceExportPages.Observe(float64(res.Pages))

	if e.Archiver != nil {
		if err := e.Archiver.Store(ctx, res.Filename, res.PDF); err != nil {
			// Best effort: the user already has the file.
			log.Printf("[Export] archive upload failed: %v", err)
		}
	}
	return res, nil
}

func (e *Exporter) export(ctx context.Context, inv *models.Invoice) (*Result, error) {
	html, err := render.InvoiceHTML(inv)
	if err != nil {
		return nil, fmt.Errorf("rendering invoice document: %w", err)
	}

	img, err := e.Surface.Capture(ctx, html, render.Options{Background: "#ffffff"})
	if err != nil {
		return nil, fmt.Errorf("capturing invoice document: %w", err)
	}
	if img.Width <= 0 || img.Height <= 0 {
		return nil, fmt.Errorf("captured image has invalid dimensions %dx%d", img.Width, img.Height)
	}

	pageW, pageH := e.Encoder.PageSize()

	// Scale the capture to the full page width; its height in page units
	// follows from the aspect ratio.
	imgW := pageW
	imgH := float64(img.Height) * pageW / float64(img.Width)

	doc := e.Encoder.NewDocument()
	bands := Paginate(imgH, pageH)
	for _, band := range bands {
		doc.AddPage()
		if err := doc.PlaceImage(img, 0, band.OffsetY, imgW, imgH); err != nil {
			return nil, fmt.Errorf("encoding page %d: %w", band.Page, err)
		}
	}

	var buf bytes.Buffer
	if err := doc.Output(&buf); err != nil {
		return nil, fmt.Errorf("writing document: %w", err)
	}

	return &Result{
		Filename: Filename(inv.InvoiceNo),
		PDF:      buf.Bytes(),
		Pages:    len(bands),
	}, nil
}
