package snapshot

import "testing"

func loginSnap(t *testing.T) Snapshot {
	t.Helper()
	snap := Parse(sampleDump)
	if len(snap) != 5 {
		t.Fatalf("fixture parsed to %d elements", len(snap))
	}
	return snap
}

func TestLocateSubstringCaseInsensitive(t *testing.T) {
	snap := loginSnap(t)

	res := Locate(snap, Query{Text: "ogin"})
	if !res.Found {
		t.Fatalf("expected match: %s", res.Reason)
	}
	if res.MatchCount != 1 {
		t.Errorf("match count = %d", res.MatchCount)
	}
	if res.CenterX != 200 || res.CenterY != 240 {
		t.Errorf("center = (%d,%d)", res.CenterX, res.CenterY)
	}

	if res := Locate(snap, Query{Text: "LOGIN"}); !res.Found {
		t.Errorf("expected case-insensitive match: %s", res.Reason)
	}
}

func TestLocateExact(t *testing.T) {
	snap := loginSnap(t)

	if res := Locate(snap, Query{Text: "Log", Exact: true}); res.Found {
		t.Error("exact match must not accept a prefix")
	}
	if res := Locate(snap, Query{Text: "login", Exact: true}); !res.Found {
		t.Errorf("exact match is still case-insensitive: %s", res.Reason)
	}
}

func TestLocateByResourceID(t *testing.T) {
	snap := loginSnap(t)

	res := Locate(snap, Query{ResourceID: "com.app:id/input"})
	if !res.Found {
		t.Fatalf("expected match: %s", res.Reason)
	}

	// Identifier matching is never partial.
	if res := Locate(snap, Query{ResourceID: "input"}); res.Found {
		t.Error("partial resource id must not match")
	}

	// ResourceID wins over Text when both are given.
	res = Locate(snap, Query{Text: "Login", ResourceID: "com.app:id/signup_btn"})
	if !res.Found {
		t.Fatalf("expected match: %s", res.Reason)
	}
	if res.Bounds.Y1 != 300 {
		t.Errorf("matched wrong element: %+v", res.Bounds)
	}
}

func TestLocateMetacharactersAreLiteral(t *testing.T) {
	snap := Snapshot{
		{Text: "Price (USD)", Bounds: Rect{0, 0, 10, 10}},
		{Text: "PriceXUSDY", Bounds: Rect{0, 20, 10, 30}},
	}

	res := Locate(snap, Query{Text: "Price (USD)"})
	if !res.Found {
		t.Fatalf("expected literal match: %s", res.Reason)
	}
	if res.MatchCount != 1 {
		t.Errorf("metacharacters treated as a pattern: %d matches", res.MatchCount)
	}

	if res := Locate(snap, Query{Text: ".*"}); res.Found {
		t.Error(".* must not match anything literally absent")
	}
}

func TestLocateIndexDisambiguation(t *testing.T) {
	snap := Snapshot{
		{Text: "OK", Bounds: Rect{0, 0, 100, 50}},
		{Text: "OK", Bounds: Rect{0, 100, 100, 150}},
	}

	res := Locate(snap, Query{Text: "OK", Index: 1})
	if !res.Found {
		t.Fatalf("expected match: %s", res.Reason)
	}
	if res.Bounds.Y1 != 100 {
		t.Errorf("index 1 should be second in document order, got %+v", res.Bounds)
	}

	res = Locate(snap, Query{Text: "OK", Index: 2})
	if res.Found {
		t.Fatal("index 2 of 2 matches must be out of range")
	}
	if res.MatchCount != 2 {
		t.Errorf("out-of-range result must carry match count, got %d", res.MatchCount)
	}
}

func TestLocateNotFoundAndInvalid(t *testing.T) {
	snap := loginSnap(t)

	if res := Locate(snap, Query{Text: "Logout"}); res.Found || res.Reason == "" {
		t.Errorf("not-found must carry a reason: %+v", res)
	}
	if res := Locate(snap, Query{}); res.Found || res.Reason == "" {
		t.Errorf("empty query must be rejected with a reason: %+v", res)
	}
}

func TestLocateDoesNotMutateSnapshot(t *testing.T) {
	snap := loginSnap(t)
	before := make(Snapshot, len(snap))
	copy(before, snap)

	Locate(snap, Query{Text: "Login"})
	LocateAll(snap, Query{Text: "o"})
	SortVisual(snap)

	for i := range snap {
		if snap[i] != before[i] {
			t.Fatalf("element %d changed: %+v", i, snap[i])
		}
	}
}

func TestSortVisual(t *testing.T) {
	snap := Snapshot{
		{Text: "C", Bounds: Rect{500, 100, 600, 150}},
		{Text: "A", Bounds: Rect{0, 0, 100, 50}},
		{Text: "B", Bounds: Rect{0, 100, 100, 150}},
	}

	sorted := SortVisual(snap)
	got := sorted[0].Text + sorted[1].Text + sorted[2].Text
	if got != "ABC" {
		t.Errorf("visual order = %q, want ABC", got)
	}
}

func TestEnumerationFilters(t *testing.T) {
	snap := loginSnap(t)

	if n := len(Clickable(snap)); n != 3 {
		t.Errorf("clickable count = %d, want 3", n)
	}
	if n := len(WithText(snap)); n != 3 {
		t.Errorf("text element count = %d, want 3", n)
	}
	if n := len(EnabledOnly(snap)); n != 4 {
		t.Errorf("enabled count = %d, want 4", n)
	}
}
