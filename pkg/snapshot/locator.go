package snapshot

import (
	"fmt"
	"sort"
	"strings"
)

// Query selects elements by text or resource id. Exactly one of Text or
// ResourceID should be set by the caller; when both are set, ResourceID
// takes precedence and Text is ignored.
type Query struct {
	Text       string
	ResourceID string
	Exact      bool // full-text equality instead of substring containment
	Index      int  // selects among duplicate matches, in document order
}

// Result is the structured outcome of evaluating a Query. Query problems
// (nothing to match on, index out of range) are reported here, never as a
// Go error: not finding an element is a normal outcome.
type Result struct {
	Found      bool   `json:"found"`
	MatchCount int    `json:"match_count"`
	Index      int    `json:"index"`
	Bounds     Rect   `json:"bounds"`
	CenterX    int    `json:"center_x"`
	CenterY    int    `json:"center_y"`
	Reason     string `json:"reason,omitempty"` // diagnostic when not found
}

// Locate evaluates q against snap. Matches are enumerated in document order
// and q.Index disambiguates duplicates. The snapshot is never modified.
func Locate(snap Snapshot, q Query) Result {
	if q.Text == "" && q.ResourceID == "" {
		return Result{Reason: "query requires text or resource_id"}
	}

	matches := LocateAll(snap, q)
	if len(matches) == 0 {
		return Result{Reason: "no matching element"}
	}
	if q.Index < 0 || q.Index >= len(matches) {
		return Result{
			MatchCount: len(matches),
			Index:      q.Index,
			Reason:     fmt.Sprintf("index %d out of range: %d element(s) matched", q.Index, len(matches)),
		}
	}

	e := matches[q.Index]
	cx, cy := e.Bounds.Center()
	return Result{
		Found:      true,
		MatchCount: len(matches),
		Index:      q.Index,
		Bounds:     e.Bounds,
		CenterX:    cx,
		CenterY:    cy,
	}
}

// LocateAll returns every element matching q, in document order.
func LocateAll(snap Snapshot, q Query) []Element {
	var out []Element
	for _, e := range snap {
		if matches(e, q) {
			out = append(out, e)
		}
	}
	return out
}

func matches(e Element, q Query) bool {
	if q.ResourceID != "" {
		// Resource ids are never matched partially.
		return e.ResourceID == q.ResourceID
	}
	if q.Exact {
		return strings.EqualFold(e.Text, q.Text)
	}
	return containsFold(e.Text, q.Text)
}

// containsFold reports whether s contains substr, case-insensitively.
// Plain string comparison keeps regex metacharacters literal.
func containsFold(s, substr string) bool {
	return strings.Contains(strings.ToLower(s), strings.ToLower(substr))
}

// SortVisual returns the elements ordered top to bottom, then left to right,
// by center point. Document order is kept for ties.
func SortVisual(elems []Element) []Element {
	out := make([]Element, len(elems))
	copy(out, elems)
	sort.SliceStable(out, func(i, j int) bool {
		xi, yi := out[i].Bounds.Center()
		xj, yj := out[j].Bounds.Center()
		if yi != yj {
			return yi < yj
		}
		return xi < xj
	})
	return out
}

// Clickable returns only the clickable elements.
func Clickable(elems []Element) []Element {
	var out []Element
	for _, e := range elems {
		if e.Clickable {
			out = append(out, e)
		}
	}
	return out
}

// WithText returns only the elements with non-empty text.
func WithText(elems []Element) []Element {
	var out []Element
	for _, e := range elems {
		if e.Text != "" {
			out = append(out, e)
		}
	}
	return out
}

// EnabledOnly drops disabled elements.
func EnabledOnly(elems []Element) []Element {
	var out []Element
	for _, e := range elems {
		if e.Enabled {
			out = append(out, e)
		}
	}
	return out
}
