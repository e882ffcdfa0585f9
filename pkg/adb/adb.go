// Package adb drives an Android device or emulator through the adb binary.
package adb

import (
	"bytes"
	"fmt"
	"os/exec"
	"strconv"
	"strings"
	"time"
)

// DefaultDumpPath is where uiautomator writes the hierarchy dump on device.
const DefaultDumpPath = "/sdcard/window_dump.xml"

// CommandError reports a failed adb invocation: non-zero exit or an
// unreachable transport. It carries the argv and captured stderr.
type CommandError struct {
	Args   []string
	Stderr string
	Err    error
}

func (e *CommandError) Error() string {
	msg := fmt.Sprintf("adb %s: %v", strings.Join(e.Args, " "), e.Err)
	if e.Stderr != "" {
		msg += ": " + e.Stderr
	}
	return msg
}

func (e *CommandError) Unwrap() error {
	return e.Err
}

// Device is a connection to one Android device via ADB.
type Device struct {
	serial   string
	adbPath  string
	dumpPath string

	// Command execution hooks, replaceable in tests.
	run    func(args ...string) (string, error)
	runRaw func(args ...string) ([]byte, error)
}

// DeviceInfo contains basic device information.
type DeviceInfo struct {
	Serial       string `json:"serial"`
	Model        string `json:"model"`
	SDK          string `json:"sdk"`
	Brand        string `json:"brand"`
	IsEmulator   bool   `json:"is_emulator"`
	ScreenWidth  int    `json:"screen_width,omitempty"`
	ScreenHeight int    `json:"screen_height,omitempty"`
}

// New creates a Device for the given serial. If adbPath is empty the binary
// is looked up on PATH; if serial is empty the first connected device is
// auto-detected. The device is verified reachable before returning.
func New(serial, adbPath string) (*Device, error) {
	var err error
	if adbPath == "" {
		adbPath, err = findADB()
		if err != nil {
			return nil, err
		}
	}

	if serial == "" {
		serial, err = detectDeviceSerial(adbPath)
		if err != nil {
			return nil, fmt.Errorf("no device specified and auto-detect failed: %w", err)
		}
	}

	d := &Device{
		serial:   serial,
		adbPath:  adbPath,
		dumpPath: DefaultDumpPath,
	}
	d.run = d.execRun
	d.runRaw = d.execRunRaw

	if err := d.waitForDevice(5 * time.Second); err != nil {
		return nil, fmt.Errorf("device not found: %w", err)
	}

	return d, nil
}

// detectDeviceSerial finds the first connected device serial.
func detectDeviceSerial(adbPath string) (string, error) {
	out, err := exec.Command(adbPath, "devices").Output()
	if err != nil {
		return "", err
	}

	for _, line := range strings.Split(string(out), "\n") {
		line = strings.TrimSpace(line)
		if line == "" || strings.HasPrefix(line, "List of") {
			continue
		}
		parts := strings.Fields(line)
		if len(parts) >= 2 && parts[1] == "device" {
			return parts[0], nil
		}
	}
	return "", fmt.Errorf("no connected devices found")
}

// ListDevices returns the serials of all connected devices.
func ListDevices(adbPath string) ([]string, error) {
	if adbPath == "" {
		var err error
		adbPath, err = findADB()
		if err != nil {
			return nil, err
		}
	}

	out, err := exec.Command(adbPath, "devices").Output()
	if err != nil {
		return nil, err
	}

	var serials []string
	for _, line := range strings.Split(string(out), "\n") {
		line = strings.TrimSpace(line)
		if line == "" || strings.HasPrefix(line, "List of") {
			continue
		}
		parts := strings.Fields(line)
		if len(parts) >= 2 && parts[1] == "device" {
			serials = append(serials, parts[0])
		}
	}
	return serials, nil
}

// Serial returns the device serial number.
func (d *Device) Serial() string {
	return d.serial
}

// SetDumpPath overrides the on-device hierarchy dump path.
func (d *Device) SetDumpPath(path string) {
	if path != "" {
		d.dumpPath = path
	}
}

// Shell executes a shell command on the device and returns its output.
func (d *Device) Shell(cmd string) (string, error) {
	return d.run("shell", cmd)
}

// Dump refreshes the on-device UI hierarchy dump, then reads it back.
// The two round-trips always happen in that order.
func (d *Device) Dump() (string, error) {
	if _, err := d.Shell("uiautomator dump " + d.dumpPath); err != nil {
		return "", err
	}
	return d.Shell("cat " + d.dumpPath)
}

// ============================================================================
// Gestures and input
// ============================================================================

// Tap taps at the given screen coordinates.
func (d *Device) Tap(x, y int) error {
	_, err := d.Shell(fmt.Sprintf("input tap %d %d", x, y))
	return err
}

// LongPress holds a point for durationMs using a zero-length swipe.
func (d *Device) LongPress(x, y, durationMs int) error {
	if durationMs <= 0 {
		durationMs = 1000
	}
	_, err := d.Shell(fmt.Sprintf("input swipe %d %d %d %d %d", x, y, x, y, durationMs))
	return err
}

// Swipe drags from (x1,y1) to (x2,y2) over durationMs.
func (d *Device) Swipe(x1, y1, x2, y2, durationMs int) error {
	if durationMs <= 0 {
		durationMs = 300
	}
	_, err := d.Shell(fmt.Sprintf("input swipe %d %d %d %d %d", x1, y1, x2, y2, durationMs))
	return err
}

// InputText types text into the focused field. The text is escaped for the
// device shell; `input text` requires spaces encoded as %s.
func (d *Device) InputText(text string) error {
	_, err := d.Shell("input text " + escapeInputText(text))
	return err
}

// KeyEvent sends an Android key code.
func (d *Device) KeyEvent(code int) error {
	_, err := d.Shell(fmt.Sprintf("input keyevent %d", code))
	return err
}

// escapeInputText quotes text for `input text`, encoding spaces as %s.
func escapeInputText(s string) string {
	s = strings.ReplaceAll(s, " ", "%s")
	if s == "" {
		return "''"
	}
	if !strings.ContainsAny(s, "'\"\\$`(){}[]*?!;|&<>~#") {
		return s
	}
	return "'" + strings.ReplaceAll(s, "'", `'\''`) + "'"
}

// ScreenSize returns the device screen dimensions in pixels.
func (d *Device) ScreenSize() (int, int, error) {
	out, err := d.Shell("wm size")
	if err != nil {
		return 0, 0, err
	}

	// Parse "Physical size: 1080x2400" (last line wins when an override
	// size is also reported).
	out = strings.TrimSpace(out)
	if idx := strings.LastIndex(out, ":"); idx != -1 {
		out = strings.TrimSpace(out[idx+1:])
	}
	parts := strings.Split(out, "x")
	if len(parts) != 2 {
		return 0, 0, fmt.Errorf("unexpected wm size output: %s", out)
	}

	width, err1 := strconv.Atoi(strings.TrimSpace(parts[0]))
	height, err2 := strconv.Atoi(strings.TrimSpace(parts[1]))
	if err1 != nil || err2 != nil {
		return 0, 0, fmt.Errorf("failed to parse screen size: %s", out)
	}
	return width, height, nil
}

// Screenshot captures the screen as PNG bytes.
func (d *Device) Screenshot() ([]byte, error) {
	return d.runRaw("exec-out", "screencap", "-p")
}

// ============================================================================
// App lifecycle
// ============================================================================

// Install installs an APK on the device.
func (d *Device) Install(apkPath string) error {
	_, err := d.run("install", "-r", "-g", apkPath)
	return err
}

// IsInstalled checks if a package is installed.
func (d *Device) IsInstalled(pkg string) bool {
	out, err := d.Shell("pm list packages " + pkg)
	if err != nil {
		return false
	}
	return strings.Contains(out, "package:"+pkg)
}

// LaunchApp starts a package via its launcher intent. monkey works without
// knowing the activity name.
func (d *Device) LaunchApp(pkg string) error {
	cmd := fmt.Sprintf("monkey -p %s -c android.intent.category.LAUNCHER 1", pkg)
	_, err := d.Shell(cmd)
	return err
}

// ForceStop force-stops a package.
func (d *Device) ForceStop(pkg string) error {
	_, err := d.Shell("am force-stop " + pkg)
	return err
}

// ClearAppData clears a package's data and state.
func (d *Device) ClearAppData(pkg string) error {
	_, err := d.Shell("pm clear " + pkg)
	return err
}

// ListPackages returns installed package names, optionally filtered.
func (d *Device) ListPackages(filter string) ([]string, error) {
	cmd := "pm list packages"
	if filter != "" {
		cmd += " " + filter
	}
	out, err := d.Shell(cmd)
	if err != nil {
		return nil, err
	}

	var pkgs []string
	for _, line := range strings.Split(out, "\n") {
		line = strings.TrimSpace(line)
		if name, ok := strings.CutPrefix(line, "package:"); ok {
			pkgs = append(pkgs, name)
		}
	}
	return pkgs, nil
}

// SetOrientation rotates the screen. Accepted values: portrait, landscape,
// landscape_right, upside_down. Accelerometer rotation is disabled first so
// the setting sticks.
func (d *Device) SetOrientation(orientation string) error {
	var rotation string
	switch strings.ToLower(strings.ReplaceAll(orientation, "_", "")) {
	case "portrait":
		rotation = "0"
	case "landscape", "landscapeleft":
		rotation = "1"
	case "upsidedown":
		rotation = "2"
	case "landscaperight":
		rotation = "3"
	default:
		return fmt.Errorf("invalid orientation: %s", orientation)
	}

	if _, err := d.Shell("settings put system accelerometer_rotation 0"); err != nil {
		return err
	}
	_, err := d.Shell("settings put system user_rotation " + rotation)
	return err
}

// Info returns device information.
func (d *Device) Info() DeviceInfo {
	info := DeviceInfo{Serial: d.serial}

	if model, err := d.Shell("getprop ro.product.model"); err == nil {
		info.Model = strings.TrimSpace(model)
	}
	if sdk, err := d.Shell("getprop ro.build.version.sdk"); err == nil {
		info.SDK = strings.TrimSpace(sdk)
	}
	if brand, err := d.Shell("getprop ro.product.brand"); err == nil {
		info.Brand = strings.TrimSpace(brand)
	}
	chars, _ := d.Shell("getprop ro.kernel.qemu")
	info.IsEmulator = strings.TrimSpace(chars) == "1"

	if w, h, err := d.ScreenSize(); err == nil {
		info.ScreenWidth = w
		info.ScreenHeight = h
	}

	return info
}

// ============================================================================
// Process plumbing
// ============================================================================

// execRun executes an ADB command and returns its stdout as text.
func (d *Device) execRun(args ...string) (string, error) {
	out, err := d.execRunRaw(args...)
	return string(out), err
}

// execRunRaw executes an ADB command and returns its raw stdout.
func (d *Device) execRunRaw(args ...string) ([]byte, error) {
	cmdArgs := make([]string, 0, len(args)+2)
	if d.serial != "" {
		cmdArgs = append(cmdArgs, "-s", d.serial)
	}
	cmdArgs = append(cmdArgs, args...)

	cmd := exec.Command(d.adbPath, cmdArgs...)
	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		return nil, &CommandError{
			Args:   args,
			Stderr: strings.TrimSpace(stderr.String()),
			Err:    err,
		}
	}
	return stdout.Bytes(), nil
}

// waitForDevice waits for the device to be available.
func (d *Device) waitForDevice(timeout time.Duration) error {
	deadline := time.Now().Add(timeout)
	for time.Now().Before(deadline) {
		if d.isConnected() {
			return nil
		}
		time.Sleep(500 * time.Millisecond)
	}
	return fmt.Errorf("timeout waiting for device %s", d.serial)
}

// isConnected checks if the device is connected.
func (d *Device) isConnected() bool {
	out, err := d.run("get-state")
	if err != nil {
		return false
	}
	return strings.TrimSpace(out) == "device"
}

// findADB locates the ADB binary on PATH.
func findADB() (string, error) {
	if path, err := exec.LookPath("adb"); err == nil {
		return path, nil
	}
	return "", fmt.Errorf("adb not found in PATH; ensure Android SDK platform-tools are installed")
}
