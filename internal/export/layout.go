package export

import (
	"strings"

	"github.com/muesli/reflow/wordwrap"

	"github.com/comigor/casehelper-go/internal/config"
)

// Line is one positioned line of a page. Y is the vertical offset from the
// top of the page, in the layout's unit.
type Line struct {
	Text string
	Y    float64
}

// Page is a sequence of positioned lines.
type Page struct {
	Lines []Line
}

// Layout holds the fixed page geometry. Width counts characters; the other
// fields share one length unit (millimetres for the PDF writer).
type Layout struct {
	Width      int
	LineHeight float64
	TopMargin  float64
	PageHeight float64 // a new page starts once the cursor passes this
	LeftMargin float64
	FontSize   float64
}

// DefaultLayout fits A4 portrait at 10pt.
func DefaultLayout() Layout {
	return Layout{
		Width:      90,
		LineHeight: 7,
		TopMargin:  20,
		PageHeight: 280,
		LeftMargin: 10,
		FontSize:   10,
	}
}

// LayoutFromConfig fills unset fields from DefaultLayout.
func LayoutFromConfig(cfg config.ExportConfig) Layout {
	l := DefaultLayout()
	if cfg.LineWidth > 0 {
		l.Width = cfg.LineWidth
	}
	if cfg.LineHeight > 0 {
		l.LineHeight = cfg.LineHeight
	}
	if cfg.TopMargin > 0 {
		l.TopMargin = cfg.TopMargin
	}
	if cfg.PageHeight > 0 {
		l.PageHeight = cfg.PageHeight
	}
	if cfg.LeftMargin > 0 {
		l.LeftMargin = cfg.LeftMargin
	}
	if cfg.FontSize > 0 {
		l.FontSize = cfg.FontSize
	}
	return l
}

// Wrap word-wraps text to width columns. Hard line breaks are kept, a word
// longer than width is left on its own line unbroken, and the result always
// holds at least one (possibly empty) line.
func Wrap(text string, width int) []string {
	if width > 0 {
		text = wordwrap.String(text, width)
	}
	lines := strings.Split(text, "\n")
	for i, ln := range lines {
		lines[i] = strings.TrimRight(ln, " \t\r")
	}
	return lines
}

// Paginate positions lines top to bottom. Before each line, if the cursor has
// passed PageHeight a new page is started and the cursor returns to TopMargin.
// A page always receives at least one line, even when TopMargin itself lies
// past PageHeight.
func (l Layout) Paginate(lines []string) []Page {
	pages := []Page{{}}
	y := l.TopMargin
	for _, text := range lines {
		if y > l.PageHeight && len(pages[len(pages)-1].Lines) > 0 {
			pages = append(pages, Page{})
			y = l.TopMargin
		}
		cur := &pages[len(pages)-1]
		cur.Lines = append(cur.Lines, Line{Text: text, Y: y})
		y += l.LineHeight
	}
	return pages
}
