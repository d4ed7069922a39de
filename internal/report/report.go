package report

import (
	"bytes"
	"fmt"

	"github.com/go-pdf/fpdf"

	"github.com/levelup-labs/jobscout/internal/jobs"
)

// Decorator draws the per-page header band and footer. It is injected into
// the Renderer so branding can change without touching the rendering logic.
type Decorator interface {
	Header(doc *fpdf.Fpdf)
	Footer(doc *fpdf.Fpdf)
}

// BrandDecorator is the default look: a steel blue title band and an author
// credit in the footer.
type BrandDecorator struct {
	Title  string
	Credit string
}

func NewBrandDecorator() BrandDecorator {
	return BrandDecorator{
		Title:  "Job Details",
		Credit: "Made with love by LevelUp",
	}
}

func (d BrandDecorator) Header(doc *fpdf.Fpdf) {
	doc.SetFillColor(70, 130, 180)
	doc.SetTextColor(255, 255, 255)
	doc.SetFont("Arial", "B", 16)
	doc.CellFormat(0, 10, d.Title, "", 1, "C", true, 0, "")
	doc.Ln(5)
	doc.SetTextColor(0, 0, 0)
}

func (d BrandDecorator) Footer(doc *fpdf.Fpdf) {
	doc.SetY(-15)
	doc.SetFont("Arial", "I", 10)
	doc.CellFormat(0, 10, d.Credit, "", 0, "C", false, 0, "")
}

// Renderer serializes an ordered listing set into a paginated PDF.
type Renderer struct {
	Decorator Decorator
}

func NewRenderer(decorator Decorator) *Renderer {
	if decorator == nil {
		decorator = NewBrandDecorator()
	}
	return &Renderer{Decorator: decorator}
}

// Render produces the PDF for the listings in input order. Text passes
// through the cp1252 translator so runes the core fonts cannot encode are
// substituted instead of aborting the render. An empty listing set still
// yields a valid document with header and footer only.
func (r *Renderer) Render(listings []jobs.Listing) ([]byte, error) {
	doc := fpdf.New("P", "mm", "A4", "")
	tr := doc.UnicodeTranslatorFromDescriptor("")

	doc.SetTitle("Job Details", false)
	doc.SetHeaderFunc(func() { r.Decorator.Header(doc) })
	doc.SetFooterFunc(func() { r.Decorator.Footer(doc) })
	doc.AddPage()
	doc.SetFont("Arial", "", 12)

	for _, listing := range listings {
		doc.SetFont("Arial", "B", 14)
		doc.CellFormat(0, 10, tr(listing.Title), "", 1, "L", false, 0, "")
		doc.Ln(1)

		doc.SetFont("Arial", "", 12)
		doc.CellFormat(30, 10, "Details:", "", 0, "L", false, 0, "")
		doc.SetTextColor(0, 0, 255)
		doc.CellFormat(0, 10, "Click Here", "", 1, "L", false, 0, listing.URL)
		doc.SetTextColor(0, 0, 0)

		doc.MultiCell(0, 8, tr(fmt.Sprintf("Summary: %s", listing.Summary)), "", "L", false)
		doc.Ln(5)
	}

	var buf bytes.Buffer
	if err := doc.Output(&buf); err != nil {
		return nil, fmt.Errorf("render pdf: %w", err)
	}

	return buf.Bytes(), nil
}
