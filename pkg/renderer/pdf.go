// Package renderer turns laid out documents into PDF bytes and writes
// generated documents to disk.
package renderer

import (
	"bytes"
	"strings"
	"time"

	"github.com/go-pdf/fpdf"
	"github.com/nikogura/resume-studio/pkg/flow"
	"github.com/pkg/errors"
	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/unicode/norm"
)

// fontFamily is the core PDF family every run is set in.
const fontFamily = "Times"

// Options controls a PDF export.
type Options struct {
	Geometry flow.Geometry
	Rules    []flow.StyleRule
	Title    string
	Created  time.Time
}

// DefaultOptions returns US Letter geometry with the default style rules.
func DefaultOptions() (opts Options) {
	opts = Options{
		Geometry: flow.DefaultGeometry(),
		Rules:    flow.DefaultRules(),
	}
	return opts
}

// FontMetrics measures text with the core Times / Times-Bold width tables.
// It is not safe for concurrent use; create one per export.
type FontMetrics struct {
	pdf *fpdf.Fpdf
}

// NewFontMetrics creates a measuring context.
func NewFontMetrics() (m *FontMetrics) {
	m = &FontMetrics{
		pdf: fpdf.NewCustom(&fpdf.InitType{UnitStr: "pt"}),
	}
	return m
}

// TextWidth implements flow.Metrics.
func (m *FontMetrics) TextWidth(text string, weight flow.Weight, size float64) (width float64) {
	m.pdf.SetFont(fontFamily, fontStyle(weight), size)
	width = m.pdf.GetStringWidth(encode(text))
	return width
}

// Export lays out content and renders it. Text is NFC normalised first so
// composed characters map onto single WinAnsi code points. Zero geometry and
// nil rules fall back to the defaults.
func Export(content string, opts Options) (data []byte, err error) {
	if opts.Rules == nil {
		opts.Rules = flow.DefaultRules()
	}

	if opts.Geometry == (flow.Geometry{}) {
		opts.Geometry = flow.DefaultGeometry()
	}

	err = opts.Geometry.Validate()
	if err != nil {
		err = errors.Wrap(err, "invalid page geometry")
		return data, err
	}

	content = norm.NFC.String(content)

	doc := flow.Layout(content, opts.Geometry, opts.Rules, NewFontMetrics())

	data, err = RenderPDF(doc, opts)
	if err != nil {
		err = errors.Wrap(err, "failed to render PDF")
		return data, err
	}

	return data, err
}

// RenderPDF draws every run of doc in black, one PDF page per document page.
func RenderPDF(doc flow.Document, opts Options) (data []byte, err error) {
	geometry := doc.Geometry

	pdf := fpdf.NewCustom(&fpdf.InitType{
		OrientationStr: "P",
		UnitStr:        "pt",
		Size:           fpdf.SizeType{Wd: geometry.Width, Ht: geometry.Height},
	})
	pdf.SetMargins(0, 0, 0)
	pdf.SetAutoPageBreak(false, 0)
	pdf.SetTextColor(0, 0, 0)
	if opts.Title != "" {
		pdf.SetTitle(opts.Title, true)
	}
	if !opts.Created.IsZero() {
		pdf.SetCreationDate(opts.Created)
	}

	for _, page := range doc.Pages {
		pdf.AddPage()
		for _, run := range page {
			pdf.SetFont(fontFamily, fontStyle(run.Weight), run.Size)
			// fpdf measures y down from the top edge.
			pdf.Text(run.X, geometry.Height-run.Y, encode(run.Text))
		}
	}

	var buf bytes.Buffer
	err = pdf.Output(&buf)
	if err != nil {
		err = errors.Wrap(err, "fpdf output failed")
		return data, err
	}

	data = buf.Bytes()
	return data, err
}

func fontStyle(weight flow.Weight) (style string) {
	if weight == flow.Bold {
		style = "B"
	}
	return style
}

// encode maps text onto the WinAnsi (cp1252) encoding of the core fonts.
// Runes outside it become '?'.
func encode(text string) (encoded string) {
	var b strings.Builder
	b.Grow(len(text))
	for _, r := range text {
		c, ok := charmap.Windows1252.EncodeRune(r)
		if !ok {
			c = '?'
		}
		b.WriteByte(c)
	}
	encoded = b.String()
	return encoded
}
