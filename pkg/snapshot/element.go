// Package snapshot parses UI hierarchy dumps into structured element lists
// and resolves element queries against them.
package snapshot

import "strings"

// Rect holds the corner coordinates of an element as reported in a
// bounds="[x1,y1][x2,y2]" attribute.
type Rect struct {
	X1 int `json:"x1"`
	Y1 int `json:"y1"`
	X2 int `json:"x2"`
	Y2 int `json:"y2"`
}

// Width returns the horizontal extent.
func (r Rect) Width() int {
	return r.X2 - r.X1
}

// Height returns the vertical extent.
func (r Rect) Height() int {
	return r.Y2 - r.Y1
}

// Center returns the midpoint of the rect, rounding half up.
func (r Rect) Center() (int, int) {
	return (r.X1 + r.X2 + 1) / 2, (r.Y1 + r.Y2 + 1) / 2
}

// Element is one recognized UI node from a hierarchy dump. Nesting in the
// source markup is not retained; consumers treat elements as a flat list.
type Element struct {
	Text       string
	ResourceID string
	ClassName  string
	Bounds     Rect
	Clickable  bool
	Enabled    bool
	Focused    bool
}

// ShortClass returns the final segment of the dotted class name,
// e.g. "Button" for "android.widget.Button".
func (e Element) ShortClass() string {
	if i := strings.LastIndex(e.ClassName, "."); i >= 0 {
		return e.ClassName[i+1:]
	}
	return e.ClassName
}

// Snapshot is the ordered element list from one dump, in document order.
type Snapshot []Element
