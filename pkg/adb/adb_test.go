package adb

import (
	"errors"
	"fmt"
	"strings"
	"testing"
)

// newTestDevice builds a Device whose adb invocations are served by fn.
func newTestDevice(fn func(args ...string) (string, error)) *Device {
	d := &Device{serial: "emulator-5554", adbPath: "adb", dumpPath: DefaultDumpPath}
	d.run = fn
	d.runRaw = func(args ...string) ([]byte, error) {
		out, err := fn(args...)
		return []byte(out), err
	}
	return d
}

func TestDumpRefreshesBeforeReading(t *testing.T) {
	var cmds []string
	d := newTestDevice(func(args ...string) (string, error) {
		cmds = append(cmds, strings.Join(args, " "))
		if strings.HasPrefix(args[1], "cat ") {
			return "<hierarchy/>", nil
		}
		return "", nil
	})

	out, err := d.Dump()
	if err != nil {
		t.Fatalf("Dump failed: %v", err)
	}
	if out != "<hierarchy/>" {
		t.Errorf("dump output = %q", out)
	}

	want := []string{
		"shell uiautomator dump /sdcard/window_dump.xml",
		"shell cat /sdcard/window_dump.xml",
	}
	if len(cmds) != 2 || cmds[0] != want[0] || cmds[1] != want[1] {
		t.Errorf("commands = %v, want %v", cmds, want)
	}
}

func TestDumpAbortsOnRefreshFailure(t *testing.T) {
	calls := 0
	d := newTestDevice(func(args ...string) (string, error) {
		calls++
		return "", &CommandError{Args: args, Err: errors.New("device offline")}
	})

	if _, err := d.Dump(); err == nil {
		t.Fatal("expected error")
	}
	if calls != 1 {
		t.Errorf("read must not run after a failed refresh, got %d calls", calls)
	}
}

func TestGestureCommands(t *testing.T) {
	var last string
	d := newTestDevice(func(args ...string) (string, error) {
		last = strings.Join(args, " ")
		return "", nil
	})

	tests := []struct {
		call func() error
		want string
	}{
		{func() error { return d.Tap(540, 960) }, "shell input tap 540 960"},
		{func() error { return d.Swipe(540, 1344, 540, 576, 300) }, "shell input swipe 540 1344 540 576 300"},
		{func() error { return d.LongPress(100, 200, 0) }, "shell input swipe 100 200 100 200 1000"},
		{func() error { return d.KeyEvent(KeyCodeBack) }, "shell input keyevent 4"},
		{func() error { return d.ForceStop("com.app") }, "shell am force-stop com.app"},
		{func() error { return d.ClearAppData("com.app") }, "shell pm clear com.app"},
		{func() error { return d.LaunchApp("com.app") }, "shell monkey -p com.app -c android.intent.category.LAUNCHER 1"},
	}
	for _, tt := range tests {
		if err := tt.call(); err != nil {
			t.Fatalf("%s: %v", tt.want, err)
		}
		if last != tt.want {
			t.Errorf("command = %q, want %q", last, tt.want)
		}
	}
}

func TestEscapeInputText(t *testing.T) {
	tests := []struct {
		in, want string
	}{
		{"hello", "hello"},
		{"hello world", "hello%sworld"},
		{"", "''"},
		{"a&b", "'a&b'"},
		{"it's", `'it'\''s'`},
	}
	for _, tt := range tests {
		if got := escapeInputText(tt.in); got != tt.want {
			t.Errorf("escapeInputText(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestScreenSize(t *testing.T) {
	tests := []struct {
		out  string
		w, h int
		ok   bool
	}{
		{"Physical size: 1080x2400\n", 1080, 2400, true},
		{"Physical size: 1080x2400\nOverride size: 720x1600\n", 720, 1600, true},
		{"garbage", 0, 0, false},
	}
	for _, tt := range tests {
		d := newTestDevice(func(args ...string) (string, error) {
			return tt.out, nil
		})
		w, h, err := d.ScreenSize()
		if tt.ok && err != nil {
			t.Errorf("ScreenSize(%q) failed: %v", tt.out, err)
			continue
		}
		if !tt.ok {
			if err == nil {
				t.Errorf("ScreenSize(%q) should fail", tt.out)
			}
			continue
		}
		if w != tt.w || h != tt.h {
			t.Errorf("ScreenSize(%q) = %dx%d, want %dx%d", tt.out, w, h, tt.w, tt.h)
		}
	}
}

func TestListPackages(t *testing.T) {
	d := newTestDevice(func(args ...string) (string, error) {
		return "package:com.android.settings\npackage:com.app\n\n", nil
	})

	pkgs, err := d.ListPackages("")
	if err != nil {
		t.Fatalf("ListPackages failed: %v", err)
	}
	if len(pkgs) != 2 || pkgs[0] != "com.android.settings" || pkgs[1] != "com.app" {
		t.Errorf("packages = %v", pkgs)
	}
}

func TestSetOrientation(t *testing.T) {
	var cmds []string
	d := newTestDevice(func(args ...string) (string, error) {
		cmds = append(cmds, strings.Join(args, " "))
		return "", nil
	})

	if err := d.SetOrientation("landscape"); err != nil {
		t.Fatalf("SetOrientation failed: %v", err)
	}
	if len(cmds) != 2 {
		t.Fatalf("expected 2 commands, got %v", cmds)
	}
	if !strings.Contains(cmds[0], "accelerometer_rotation 0") {
		t.Errorf("accelerometer rotation not disabled first: %q", cmds[0])
	}
	if !strings.Contains(cmds[1], "user_rotation 1") {
		t.Errorf("rotation command = %q", cmds[1])
	}

	if err := d.SetOrientation("diagonal"); err == nil {
		t.Error("invalid orientation must be rejected")
	}
}

func TestKeyCode(t *testing.T) {
	tests := []struct {
		key  string
		code int
	}{
		{"enter", 66},
		{"BACK", 4},
		{"backspace", 67},
		{"unknown", 0},
	}
	for _, tt := range tests {
		if got := KeyCode(tt.key); got != tt.code {
			t.Errorf("KeyCode(%q) = %d, want %d", tt.key, got, tt.code)
		}
	}
}

func TestCommandError(t *testing.T) {
	cause := errors.New("exit status 1")
	err := &CommandError{Args: []string{"shell", "wm size"}, Stderr: "error: closed", Err: cause}

	if !errors.Is(err, cause) {
		t.Error("CommandError must unwrap to its cause")
	}
	msg := err.Error()
	if !strings.Contains(msg, "wm size") || !strings.Contains(msg, "error: closed") {
		t.Errorf("message = %q", msg)
	}
}

func TestScratchStore(t *testing.T) {
	s := NewScratchStore()

	if _, ok := s.Get("clipboard"); ok {
		t.Error("empty store must miss")
	}
	s.Set("clipboard", "hello")
	if v, ok := s.Get("clipboard"); !ok || v != "hello" {
		t.Errorf("got %q, %v", v, ok)
	}
	s.Clear("clipboard")
	if _, ok := s.Get("clipboard"); ok {
		t.Error("cleared key must miss")
	}
}

func TestIsInstalled(t *testing.T) {
	d := newTestDevice(func(args ...string) (string, error) {
		if strings.Contains(args[1], "com.app") {
			return "package:com.app\n", nil
		}
		return "", fmt.Errorf("unexpected: %v", args)
	})

	if !d.IsInstalled("com.app") {
		t.Error("expected com.app installed")
	}
}
