package report

import (
	"fmt"
	"io"
	"path/filepath"
	"strings"
	"time"

	"github.com/go-pdf/fpdf"

	"github.com/BerylCAtieno/speedminds/internal/models"
)

const (
	Title            = "SpeedMinds"
	SummaryHeading   = "1. Summary"
	TopicsHeading    = "2. Identified Key Topics"
	QAHeading        = "3. Interactive Q&A History"
	NoQuestionsLabel = "No questions were asked during the session."

	margin = 57.0
	indent = 10.0
	// Q&A entries after the first start on a fresh page once the cursor
	// passes this height (points from the top of a Letter page).
	qaPageBreakY = 650.0
	lineFactor   = 1.25
)

// creationDate is fixed so equal input renders equal bytes.
var creationDate = time.Date(2024, time.January, 1, 0, 0, 0, 0, time.UTC)

// Filename derives the download name: final extension stripped, suffixed
// with -analysis-report.pdf.
func Filename(documentName string) string {
	base := strings.TrimSuffix(documentName, filepath.Ext(documentName))
	return base + "-analysis-report.pdf"
}

// Render writes the report for req to w as a PDF.
func Render(w io.Writer, req models.ReportRequest) error {
	r := newRenderer()

	r.title(req.DocumentName)
	r.summary(req.Summary)
	r.topics(req.Topics)
	r.qaHistory(req.QAHistory)

	if err := r.pdf.Output(w); err != nil {
		return fmt.Errorf("failed to write report: %w", err)
	}
	return nil
}

type renderer struct {
	pdf *fpdf.Fpdf
	tr  func(string) string
}

func newRenderer() *renderer {
	pdf := fpdf.New("P", "pt", "Letter", "")
	pdf.SetMargins(margin, margin, margin)
	pdf.SetAutoPageBreak(true, margin)
	pdf.SetCreationDate(creationDate)
	pdf.SetModificationDate(creationDate)
	pdf.SetCatalogSort(true)
	pdf.SetTitle(Title, true)
	pdf.SetCreator(Title, true)
	pdf.AddPage()

	return &renderer{
		pdf: pdf,
		tr:  pdf.UnicodeTranslatorFromDescriptor(""),
	}
}

func (r *renderer) title(documentName string) {
	r.text(Title, 20, "B", 0, "C")
	r.moveDown(20, 1)
	r.text("Document Name: "+documentName, 14, "", 0, "C")
	r.moveDown(14, 2)
}

func (r *renderer) summary(summary string) {
	r.heading(SummaryHeading)
	r.text(summary, 11, "", indent, "J")
	r.moveDown(11, 2)
}

func (r *renderer) topics(topics []models.Topic) {
	r.heading(TopicsHeading)
	for i, t := range topics {
		r.text(fmt.Sprintf("%d. %s", i+1, t.Topic), 12, "B", 0, "L")
		r.moveDown(12, 0.3)
		r.text(t.Explanation, 11, "", indent, "J")
		r.moveDown(11, 1)
	}
	r.moveDown(11, 2)
}

func (r *renderer) qaHistory(history []models.QAEntry) {
	r.heading(QAHeading)
	r.moveDown(16, 0.5)

	if len(history) == 0 {
		r.text(NoQuestionsLabel, 11, "", indent, "L")
		return
	}

	for i, qa := range history {
		if i > 0 && r.pdf.GetY() > qaPageBreakY {
			r.pdf.AddPage()
		}
		r.text(fmt.Sprintf("Q%d: %s", i+1, qa.Question), 12, "B", indent, "L")
		r.moveDown(12, 0.2)
		r.text(fmt.Sprintf("A%d: %s", i+1, qa.Answer), 11, "", indent, "J")
		r.moveDown(11, 1)
	}
}

func (r *renderer) heading(text string) {
	r.text(text, 16, "BU", 0, "L")
	r.moveDown(16, 0.5)
}

// text writes a flowed paragraph. Lines wrap at the right margin and break
// pages automatically.
func (r *renderer) text(s string, size float64, style string, leftIndent float64, align string) {
	r.pdf.SetFont("Helvetica", style, size)
	left, _, right, _ := r.pdf.GetMargins()
	pageWidth, _ := r.pdf.GetPageSize()

	r.pdf.SetX(left + leftIndent)
	r.pdf.MultiCell(pageWidth-left-right-leftIndent, size*lineFactor, r.tr(s), "", align, false)
}

func (r *renderer) moveDown(size, lines float64) {
	if lines <= 0 {
		return
	}
	r.pdf.Ln(size * lineFactor * lines)
}
