package snapshot

import "testing"

const sampleDump = `<?xml version="1.0" encoding="UTF-8"?>
<hierarchy rotation="0">
  <node index="0" text="" resource-id="" class="android.widget.FrameLayout" bounds="[0,0][1080,1920]" clickable="false" enabled="true" focused="false"/>
  <node index="1" text="Login" resource-id="com.app:id/login_btn" class="android.widget.Button" bounds="[100,200][300,280]" clickable="true" enabled="true" focused="false"/>
  <node index="2" text="Sign Up" resource-id="com.app:id/signup_btn" class="android.widget.Button" bounds="[100,300][300,380]" clickable="true" enabled="false" focused="false"/>
  <node index="3" text="Username" resource-id="com.app:id/label" class="android.widget.TextView" bounds="[50,420][200,460]" clickable="false" enabled="true" focused="false"/>
  <node index="4" text="" resource-id="com.app:id/input" class="android.widget.EditText" bounds="[50,470][500,530]" clickable="true" enabled="true" focused="true"/>
</hierarchy>`

func TestParseElementCount(t *testing.T) {
	snap := Parse(sampleDump)
	if len(snap) != 5 {
		t.Fatalf("expected 5 elements, got %d", len(snap))
	}

	// Document order is preserved.
	if snap[1].Text != "Login" || snap[2].Text != "Sign Up" {
		t.Errorf("unexpected document order: %q, %q", snap[1].Text, snap[2].Text)
	}
	want := Rect{X1: 100, Y1: 200, X2: 300, Y2: 280}
	if snap[1].Bounds != want {
		t.Errorf("Login bounds = %+v, want %+v", snap[1].Bounds, want)
	}
}

func TestParseAttributes(t *testing.T) {
	snap := Parse(sampleDump)

	login := snap[1]
	if login.ResourceID != "com.app:id/login_btn" {
		t.Errorf("resource id = %q", login.ResourceID)
	}
	if login.ClassName != "android.widget.Button" {
		t.Errorf("class = %q", login.ClassName)
	}
	if !login.Clickable || !login.Enabled || login.Focused {
		t.Errorf("flags = clickable=%v enabled=%v focused=%v", login.Clickable, login.Enabled, login.Focused)
	}

	signup := snap[2]
	if signup.Enabled {
		t.Error("Sign Up should be disabled")
	}
	input := snap[4]
	if !input.Focused {
		t.Error("input should be focused")
	}
}

func TestParseAttributeOrderIndependent(t *testing.T) {
	dump := `<node bounds="[10,20][30,40]" clickable="true" text="OK" class="android.widget.Button"/>`
	snap := Parse(dump)
	if len(snap) != 1 {
		t.Fatalf("expected 1 element, got %d", len(snap))
	}
	if snap[0].Text != "OK" || !snap[0].Clickable {
		t.Errorf("got %+v", snap[0])
	}
	if snap[0].Bounds != (Rect{10, 20, 30, 40}) {
		t.Errorf("bounds = %+v", snap[0].Bounds)
	}
}

func TestParseNoNodeDelimiters(t *testing.T) {
	// Dumps without tag delimiters still yield one element per bounds.
	dump := `text="Submit" bounds="[100,200][300,250]" text="Cancel" bounds="[100,300][300,350]"`
	snap := Parse(dump)
	if len(snap) != 2 {
		t.Fatalf("expected 2 elements, got %d", len(snap))
	}
	if snap[0].Text != "Submit" || snap[1].Text != "Cancel" {
		t.Errorf("texts = %q, %q", snap[0].Text, snap[1].Text)
	}
}

func TestParseNoLeakAcrossNodes(t *testing.T) {
	// The first node has no text attribute; it must not pick up the
	// neighbor's text or flags.
	dump := `<node class="android.view.View" bounds="[0,0][100,100]" clickable="false"/><node text="Next" bounds="[0,100][100,200]" clickable="true"/>`
	snap := Parse(dump)
	if len(snap) != 2 {
		t.Fatalf("expected 2 elements, got %d", len(snap))
	}
	if snap[0].Text != "" {
		t.Errorf("first element leaked text %q", snap[0].Text)
	}
	if snap[0].Clickable {
		t.Error("first element leaked clickable flag")
	}
	if snap[1].Text != "Next" || !snap[1].Clickable {
		t.Errorf("second element = %+v", snap[1])
	}
}

func TestParseLongClickableNotConfused(t *testing.T) {
	dump := `<node text="Item" bounds="[0,0][10,10]" clickable="false" long-clickable="true"/>`
	snap := Parse(dump)
	if len(snap) != 1 {
		t.Fatalf("expected 1 element, got %d", len(snap))
	}
	if snap[0].Clickable {
		t.Error("clickable must not match long-clickable")
	}
}

func TestParseIsTotal(t *testing.T) {
	inputs := []string{
		"",
		"garbage with no markup at all",
		`<node text="truncated" bounds="[1,2][3`,
		`<hierarchy></hierarchy>`,
		`bounds="[a,b][c,d]"`,
	}
	for _, in := range inputs {
		if snap := Parse(in); len(snap) != 0 {
			t.Errorf("Parse(%q) = %d elements, want 0", in, len(snap))
		}
	}
}

func TestParseUnescapesEntities(t *testing.T) {
	dump := `<node text="Tom &amp; Jerry &quot;live&quot;" bounds="[0,0][10,10]"/>`
	snap := Parse(dump)
	if len(snap) != 1 {
		t.Fatalf("expected 1 element, got %d", len(snap))
	}
	if got := snap[0].Text; got != `Tom & Jerry "live"` {
		t.Errorf("text = %q", got)
	}
}

func TestParseLooseMatchesParseOnWellFormed(t *testing.T) {
	strict := Parse(sampleDump)
	loose := ParseLoose(sampleDump)
	if len(strict) != len(loose) {
		t.Fatalf("strict=%d loose=%d elements", len(strict), len(loose))
	}
	for i := range strict {
		if strict[i].Text != loose[i].Text {
			t.Errorf("element %d: text %q vs %q", i, strict[i].Text, loose[i].Text)
		}
		if strict[i].Bounds != loose[i].Bounds {
			t.Errorf("element %d: bounds %+v vs %+v", i, strict[i].Bounds, loose[i].Bounds)
		}
	}
}

func TestRectCenter(t *testing.T) {
	tests := []struct {
		r      Rect
		cx, cy int
	}{
		{Rect{100, 200, 300, 250}, 200, 225},
		{Rect{0, 0, 1080, 1920}, 540, 960},
		{Rect{0, 0, 5, 5}, 3, 3}, // .5 rounds up
	}
	for _, tt := range tests {
		cx, cy := tt.r.Center()
		if cx != tt.cx || cy != tt.cy {
			t.Errorf("%+v center = (%d,%d), want (%d,%d)", tt.r, cx, cy, tt.cx, tt.cy)
		}
	}
}

func TestShortClass(t *testing.T) {
	e := Element{ClassName: "android.widget.Button"}
	if got := e.ShortClass(); got != "Button" {
		t.Errorf("ShortClass = %q", got)
	}
	e = Element{ClassName: "View"}
	if got := e.ShortClass(); got != "View" {
		t.Errorf("ShortClass = %q", got)
	}
}

func TestContainsText(t *testing.T) {
	if !ContainsText(sampleDump, "sign up") {
		t.Error("expected case-insensitive hit for 'sign up'")
	}
	if ContainsText(sampleDump, "Logout") {
		t.Error("unexpected hit for 'Logout'")
	}
}
