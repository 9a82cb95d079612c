// Package flow lays out lightly marked-up text into fixed-size pages of
// positioned, styled text runs.
//
// Layout is a pure function of its inputs. Each call owns its cursor and the
// document it builds, so concurrent calls need no coordination.
package flow

import (
	"strings"
)

// cursor is the vertical write position of a single layout pass.
type cursor struct {
	page int
	y    float64
}

// pass carries the state of one Layout call.
type pass struct {
	geometry Geometry
	metrics  Metrics
	cursor   cursor
	pages    [][]Run
}

// Layout flows content onto pages of the given geometry. Empty content
// produces a single empty page.
//
// The page-break check runs at the start of every logical line, blank ones
// included, so trailing blank lines after a full page leave an empty last page.
func Layout(content string, geometry Geometry, rules []StyleRule, metrics Metrics) (doc Document) {
	p := &pass{
		geometry: geometry,
		metrics:  metrics,
		cursor:   cursor{page: 0, y: geometry.Top()},
		pages:    [][]Run{{}},
	}

	for _, line := range strings.Split(content, "\n") {
		p.breakIfExhausted()

		trimmed := strings.TrimSpace(line)
		if trimmed == "" {
			p.cursor.y -= geometry.LineHeight / 2
			continue
		}

		rule, text := Classify(trimmed, rules)
		p.wrap(text, rule)
		p.cursor.y -= geometry.LineHeight / 4
	}

	doc = Document{
		Geometry: geometry,
		Pages:    p.pages,
	}
	return doc
}

// wrap greedily fills physical lines from the words of text. A word wider than
// the line on its own is drawn whole.
func (p *pass) wrap(text string, rule StyleRule) {
	maxWidth := p.geometry.MaxWidth()

	current := ""
	started := false
	for _, word := range strings.Split(text, " ") {
		candidate := word
		if started {
			candidate = current + " " + word
		}

		width := p.metrics.TextWidth(candidate, rule.Weight, rule.Size)
		if width > maxWidth && current != "" {
			p.flush(current, rule)
			current = word
			started = word != ""
			continue
		}

		current = candidate
		started = true
	}

	if current != "" {
		p.flush(current, rule)
	}
}

// flush draws one physical line at the cursor, breaking the page first when
// the cursor has run into the bottom margin.
func (p *pass) flush(text string, rule StyleRule) {
	p.breakIfExhausted()

	run := Run{
		Page:   p.cursor.page,
		X:      p.geometry.Margin,
		Y:      p.cursor.y,
		Text:   text,
		Weight: rule.Weight,
		Size:   rule.Size,
	}
	p.pages[p.cursor.page] = append(p.pages[p.cursor.page], run)

	p.cursor.y -= p.geometry.LineHeight
}

// breakIfExhausted starts a new page when y is below the bottom margin.
func (p *pass) breakIfExhausted() {
	if p.cursor.y >= p.geometry.Margin {
		return
	}

	p.pages = append(p.pages, []Run{})
	p.cursor = cursor{page: p.cursor.page + 1, y: p.geometry.Top()}
}
