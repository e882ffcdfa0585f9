package snapshot

import (
	"fmt"
	"sort"
	"strings"
)

// Fingerprint reduces snap to a canonical, order-independent signature of its
// visually meaningful content. Elements with neither text nor class are
// dropped; the remaining records are sorted so document-order jitter between
// polls of a static screen does not register as a change. Two snapshots show
// the same visible UI state iff their fingerprints are byte-identical.
func Fingerprint(snap Snapshot) string {
	recs := make([]string, 0, len(snap))
	for _, e := range snap {
		if e.Text == "" && e.ClassName == "" {
			continue
		}
		b := e.Bounds
		recs = append(recs, fmt.Sprintf("%s|%s|%d,%d,%d,%d", e.Text, e.ClassName, b.X1, b.Y1, b.X2, b.Y2))
	}
	sort.Strings(recs)
	return strings.Join(recs, "\n")
}
