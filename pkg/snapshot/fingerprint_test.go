package snapshot

import "testing"

func TestFingerprintOrderIndependent(t *testing.T) {
	a := Snapshot{
		{Text: "Login", ClassName: "android.widget.Button", Bounds: Rect{100, 200, 300, 280}},
		{Text: "Username", ClassName: "android.widget.TextView", Bounds: Rect{50, 420, 200, 460}},
	}
	b := Snapshot{a[1], a[0]}

	if Fingerprint(a) != Fingerprint(b) {
		t.Error("fingerprint must not depend on document order")
	}
}

func TestFingerprintSensitiveToBounds(t *testing.T) {
	a := Snapshot{{Text: "Login", ClassName: "android.widget.Button", Bounds: Rect{100, 200, 300, 280}}}
	b := Snapshot{{Text: "Login", ClassName: "android.widget.Button", Bounds: Rect{100, 200, 300, 281}}}

	if Fingerprint(a) == Fingerprint(b) {
		t.Error("one-unit bounds change must change the fingerprint")
	}
}

func TestFingerprintIgnoresBareElements(t *testing.T) {
	a := Snapshot{{Text: "Login", ClassName: "android.widget.Button", Bounds: Rect{0, 0, 10, 10}}}
	b := append(Snapshot{{Bounds: Rect{0, 0, 1080, 1920}, Clickable: true}}, a...)

	if Fingerprint(a) != Fingerprint(b) {
		t.Error("elements with neither text nor class must not contribute")
	}
}

func TestFingerprintIgnoresVolatileFlags(t *testing.T) {
	a := Snapshot{{Text: "Input", ClassName: "android.widget.EditText", Bounds: Rect{0, 0, 10, 10}, Focused: false}}
	b := Snapshot{{Text: "Input", ClassName: "android.widget.EditText", Bounds: Rect{0, 0, 10, 10}, Focused: true}}

	if Fingerprint(a) != Fingerprint(b) {
		t.Error("state flags are not part of the fingerprint")
	}
}

func TestFingerprintEmptySnapshot(t *testing.T) {
	if Fingerprint(nil) != "" {
		t.Error("empty snapshot must fingerprint to the empty string")
	}
}
