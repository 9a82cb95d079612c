package flow

import (
	"github.com/pkg/errors"
)

// Weight is one of the two font weights of the fixed document family.
type Weight int

const (
	// Regular is the body weight.
	Regular Weight = iota
	// Bold is used for headings and emphasised lines.
	Bold
)

// String returns the weight name.
func (w Weight) String() (name string) {
	name = "regular"
	if w == Bold {
		name = "bold"
	}
	return name
}

// Kind is the style variant a logical line resolves to.
type Kind int

const (
	// KindPlain is an unmarked line.
	KindPlain Kind = iota
	// KindHeading1 is a line starting with "# ".
	KindHeading1
	// KindHeading2 is a line starting with "## ".
	KindHeading2
	// KindHeading3 is a line starting with "### ".
	KindHeading3
	// KindStrong is a line wrapped in "**".
	KindStrong
	// KindBullet is a line starting with "- " or "• ".
	KindBullet
)

// String returns the kind name.
func (k Kind) String() (name string) {
	switch k {
	case KindHeading1:
		name = "heading1"
	case KindHeading2:
		name = "heading2"
	case KindHeading3:
		name = "heading3"
	case KindStrong:
		name = "strong"
	case KindBullet:
		name = "bullet"
	default:
		name = "plain"
	}
	return name
}

// BulletPrefix replaces the source marker of a bullet line.
const BulletPrefix = "  • "

// StyleRule binds a line variant to the font it is drawn with.
type StyleRule struct {
	Kind   Kind
	Size   float64
	Weight Weight
}

// DefaultRules returns the rule set in match priority order.
func DefaultRules() (rules []StyleRule) {
	rules = []StyleRule{
		{Kind: KindHeading1, Size: 18, Weight: Bold},
		{Kind: KindHeading2, Size: 14, Weight: Bold},
		{Kind: KindHeading3, Size: 12, Weight: Bold},
		{Kind: KindStrong, Size: 11, Weight: Bold},
		{Kind: KindBullet, Size: 11, Weight: Regular},
		{Kind: KindPlain, Size: 11, Weight: Regular},
	}
	return rules
}

// Geometry is the fixed page size, uniform margin and line pitch, in points.
type Geometry struct {
	Width      float64 `json:"width" yaml:"width"`
	Height     float64 `json:"height" yaml:"height"`
	Margin     float64 `json:"margin" yaml:"margin"`
	LineHeight float64 `json:"line_height" yaml:"line_height"`
}

// DefaultGeometry is US Letter with a 50pt margin and 14pt lines.
func DefaultGeometry() (g Geometry) {
	g = Geometry{
		Width:      612,
		Height:     792,
		Margin:     50,
		LineHeight: 14,
	}
	return g
}

// Top is the starting cursor position of every page.
func (g Geometry) Top() (y float64) {
	y = g.Height - g.Margin
	return y
}

// MaxWidth is the width available to a physical line.
func (g Geometry) MaxWidth() (w float64) {
	w = g.Width - 2*g.Margin
	return w
}

// Validate reports geometry that Layout cannot paginate sensibly.
// Layout itself does not call it.
func (g Geometry) Validate() (err error) {
	if g.Width <= 0 || g.Height <= 0 {
		err = errors.Errorf("page size must be positive, got %gx%g", g.Width, g.Height)
		return err
	}

	if g.LineHeight <= 0 {
		err = errors.Errorf("line height must be positive, got %g", g.LineHeight)
		return err
	}

	if g.Margin < 0 || g.Margin >= g.Height/2 {
		err = errors.Errorf("margin %g must be non-negative and less than half the page height %g", g.Margin, g.Height)
		return err
	}

	if g.MaxWidth() <= 0 {
		err = errors.Errorf("margin %g leaves no room on a page %g wide", g.Margin, g.Width)
		return err
	}

	return err
}

// Run is one positioned, styled piece of text. Y is measured up from the
// bottom edge of the page, as in PDF user space.
type Run struct {
	Page   int     `json:"page"`
	X      float64 `json:"x"`
	Y      float64 `json:"y"`
	Text   string  `json:"text"`
	Weight Weight  `json:"weight"`
	Size   float64 `json:"size"`
}

// Document is the sealed output of a layout pass.
type Document struct {
	Geometry Geometry `json:"geometry"`
	Pages    [][]Run  `json:"pages"`
}

// PageCount returns the number of pages, which is never zero for a laid out document.
func (d Document) PageCount() (count int) {
	count = len(d.Pages)
	return count
}

// Runs returns every run in drawing order.
func (d Document) Runs() (runs []Run) {
	runs = make([]Run, 0)
	for _, page := range d.Pages {
		runs = append(runs, page...)
	}
	return runs
}

// Metrics measures text set in the document family.
type Metrics interface {
	TextWidth(text string, weight Weight, size float64) (width float64)
}

// MetricsFunc adapts a function to Metrics.
type MetricsFunc func(text string, weight Weight, size float64) (width float64)

// TextWidth calls f.
func (f MetricsFunc) TextWidth(text string, weight Weight, size float64) (width float64) {
	width = f(text, weight, size)
	return width
}
