// Package overlay maps text selections on a rendered page to stored
// highlight rectangles and back. Capture runs exactly once per confirmed
// quote, at selection time, against the live page geometry; the stored
// rectangle is replayed as-is on later renders and never renormalized.
package overlay

import (
	"strings"

	"github.com/Risriddle/Librarize/internal/model"
)

const (
	// DefaultColor is used when a quote was saved without one.
	DefaultColor = "#FFEB3B"
	// Opacity of a rendered highlight element.
	Opacity = 0.35
	// ScrollPadding keeps a jumped-to highlight off the very top edge.
	ScrollPadding = 100
	// FlashMillis is how long a jumped-to highlight stays flashed.
	FlashMillis = 1500
)

// Box is an axis-aligned bounding box in viewport pixel coordinates, as
// reported by the rendering surface.
type Box struct {
	Left   float64 `json:"left"`
	Top    float64 `json:"top"`
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
}

// Capture converts a live selection bounding box into a page-local
// rectangle relative to the page container. A selection spanning multiple
// lines arrives as one box and stays one box.
func Capture(selection, container Box) model.Rectangle {
	return model.Rectangle{
		X:      selection.Left - container.Left,
		Y:      selection.Top - container.Top,
		Width:  selection.Width,
		Height: selection.Height,
	}
}

// CaptureSelection maps a confirmed text selection. Empty or
// whitespace-only selections produce no rectangle.
func CaptureSelection(text string, selection, container Box) (model.Rectangle, bool) {
	if strings.TrimSpace(text) == "" {
		return model.Rectangle{}, false
	}
	return Capture(selection, container), true
}

// Element is one absolutely positioned, non-interactive highlight in a
// page's overlay layer.
type Element struct {
	QuoteID string          `json:"quote_id"`
	Rect    model.Rectangle `json:"rect"`
	Color   string          `json:"color"`
	Opacity float64         `json:"opacity"`
}

// BuildLayer produces the full highlight layer for one page. The caller
// replaces the previous layer wholesale; layers are never patched
// incrementally, so stale elements cannot leak across page or quote-list
// changes.
func BuildLayer(quotes []*model.Quote, pageIndex int) []Element {
	layer := make([]Element, 0)
	for _, quote := range quotes {
		if quote.PageIndex != pageIndex {
			continue
		}
		if quote.Position.Width == 0 && quote.Position.Height == 0 {
			// Legacy quotes saved before positions were captured.
			continue
		}
		color := quote.Color
		if color == "" {
			color = DefaultColor
		}
		layer = append(layer, Element{
			QuoteID: quote.ID,
			Rect:    quote.Position,
			Color:   color,
			Opacity: Opacity,
		})
	}
	return layer
}

// ScrollTarget computes the viewer scroll offset that puts a quote's
// highlight near the top of the viewport: the mounted page's top relative
// to the viewer, plus the stored y, minus the padding.
func ScrollTarget(pageTop, viewerTop, quoteY float64) float64 {
	return pageTop - viewerTop + quoteY - ScrollPadding
}
