package report

import (
	"bytes"
	"fmt"
	"time"

	"github.com/go-pdf/fpdf"
	"github.com/pfrederiksen/city-events/internal/event"
)

const (
	creator    = "city-events"
	dateLayout = "January 2, 2006"
	family     = "body"

	lineHeight = 6.0
	blockGap   = 4.0
)

// RenderError reports that a document could not be generated
type RenderError struct {
	City string
	Err  error
}

func (e *RenderError) Error() string {
	return fmt.Sprintf("render document for %s: %v", e.City, e.Err)
}

func (e *RenderError) Unwrap() error {
	return e.Err
}

// Document is a rendered PDF
type Document struct {
	Bytes []byte
	Pages int
}

// Builder renders event listings as Letter-sized PDF documents.
//
// Output depends only on the inputs and Now: the embedded creation and
// modification dates are taken from Now and the catalog is written in sorted
// order, so two renders at the same instant are byte-identical.
//
// Text is set in Font, or the Go font family when Font is nil.
type Builder struct {
	Now      func() time.Time
	Compress bool
	Font     *Font
}

func (b Builder) now() time.Time {
	if b.Now == nil {
		return time.Now()
	}
	return b.Now()
}

// Render returns the PDF bytes for city's listing
func (b Builder) Render(city string, events []event.Event, digest string) ([]byte, error) {
	doc, err := b.RenderDocument(city, events, digest)
	if err != nil {
		return nil, err
	}
	return doc.Bytes, nil
}

// RenderDocument lays out the title, the digest and one block per event.
// Any failure inside the PDF writer is returned as a *RenderError.
func (b Builder) RenderDocument(city string, events []event.Event, digest string) (*Document, error) {
	now := b.now()

	pdf := fpdf.New("P", "mm", "Letter", "")
	pdf.SetCreationDate(now)
	pdf.SetModificationDate(now)
	pdf.SetCatalogSort(true)
	pdf.SetCompression(b.Compress)
	pdf.SetTitle(pdfText("Local Events in "+city), true)
	pdf.SetCreator(creator, false)
	pdf.SetMargins(20, 20, 20)
	pdf.SetAutoPageBreak(true, 20)
	pdf.AliasNbPages("")

	font := GoFont()
	if b.Font != nil {
		font = *b.Font
	}
	pdf.AddUTF8FontFromBytes(family, "", font.Regular)
	pdf.AddUTF8FontFromBytes(family, "B", font.Bold)
	pdf.AddUTF8FontFromBytes(family, "I", font.Italic)
	if err := pdf.Error(); err != nil {
		return nil, &RenderError{City: city, Err: err}
	}

	pdf.SetFooterFunc(func() {
		pdf.SetY(-15)
		pdf.SetFont(family, "I", 8)
		pdf.SetTextColor(128, 128, 128)
		pdf.CellFormat(0, 10, fmt.Sprintf("Page %d/{nb}", pdf.PageNo()), "", 0, "C", false, 0, "")
	})

	pdf.AddPage()

	pdf.SetFont(family, "B", 22)
	pdf.SetTextColor(0, 0, 0)
	pdf.MultiCell(0, 10, pdfText("Local Events in "+city), "", "C", false)
	pdf.SetFont(family, "", 10)
	pdf.SetTextColor(90, 90, 90)
	pdf.CellFormat(0, lineHeight, "Generated "+now.Format(dateLayout), "", 1, "C", false, 0, "")
	pdf.Ln(blockGap * 2)

	heading(pdf, "Weekend Plan Digest")
	pdf.SetFont(family, "", 11)
	pdf.MultiCell(0, lineHeight, pdfText(digest), "", "L", false)
	pdf.Ln(blockGap * 2)

	heading(pdf, fmt.Sprintf("All Events (%d)", len(events)))
	for i, evt := range events {
		pdf.SetFont(family, "B", 12)
		pdf.SetTextColor(0, 0, 0)
		pdf.MultiCell(0, lineHeight+1, pdfText(fmt.Sprintf("%d. %s", i+1, evt.Title)), "", "L", false)

		pdf.SetFont(family, "", 10)
		pdf.SetTextColor(60, 60, 60)
		field(pdf, "When", evt.When)
		field(pdf, "Location", evt.Location)
		field(pdf, "Description", evt.Description)
		if evt.URL != "" {
			pdf.SetTextColor(30, 80, 160)
			pdf.CellFormat(0, lineHeight, pdfText(evt.URL), "", 1, "L", false, 0, evt.URL)
		}
		pdf.Ln(blockGap)
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, &RenderError{City: city, Err: err}
	}

	return &Document{Bytes: buf.Bytes(), Pages: pdf.PageCount()}, nil
}

func heading(pdf *fpdf.Fpdf, title string) {
	pdf.SetFont(family, "B", 15)
	pdf.SetTextColor(20, 20, 20)
	pdf.CellFormat(0, 9, title, "B", 1, "L", false, 0, "")
	pdf.Ln(blockGap)
}

// field writes "Label: value"; an empty value leaves the label with nothing after it
func field(pdf *fpdf.Fpdf, label, value string) {
	pdf.MultiCell(0, lineHeight, pdfText(label+": "+value), "", "L", false)
}
