// Package emulator boots and shuts down Android Virtual Devices.
package emulator

import (
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"time"

	"github.com/Anjos2/mcp-android-emulator/pkg/logger"
)

// BasePort is the console port of the first emulator. Ports ascend by
// two; the adb port is always console + 1.
const BasePort = 5554

// BootStatus captures the staged readiness checks of a booting emulator.
type BootStatus struct {
	StateReady    bool // adb get-state == "device"
	BootCompleted bool // sys.boot_completed == "1"
	ServicesReady bool // package manager answers queries
}

// Ready reports whether the emulator is usable for automation.
func (s BootStatus) Ready() bool {
	return s.StateReady && s.BootCompleted && s.ServicesReady
}

// Serial returns the adb serial for a console port.
func Serial(consolePort int) string {
	return fmt.Sprintf("emulator-%d", consolePort)
}

// PortFromSerial extracts the console port from an emulator serial.
func PortFromSerial(serial string) (int, error) {
	var port int
	if _, err := fmt.Sscanf(serial, "emulator-%d", &port); err != nil {
		return 0, fmt.Errorf("not an emulator serial: %s", serial)
	}
	return port, nil
}

// IsEmulatorSerial reports whether a serial belongs to an emulator.
func IsEmulatorSerial(serial string) bool {
	return strings.HasPrefix(serial, "emulator-")
}

// NextPort returns the console port after the given one.
func NextPort(port int) int {
	return port + 2
}

// FindBinary locates the Android emulator binary via ANDROID_HOME (new
// and old SDK layouts) and then PATH.
func FindBinary() (string, error) {
	if home := androidHome(); home != "" {
		for _, rel := range []string{
			filepath.Join("emulator", "emulator"),
			filepath.Join("tools", "emulator"),
		} {
			path := filepath.Join(home, rel)
			if _, err := os.Stat(path); err == nil {
				return path, nil
			}
		}
	}
	if path, err := exec.LookPath("emulator"); err == nil {
		return path, nil
	}
	return "", fmt.Errorf("emulator binary not found; set ANDROID_HOME or add emulator to PATH")
}

func androidHome() string {
	for _, key := range []string{"ANDROID_HOME", "ANDROID_SDK_ROOT", "ANDROID_SDK_HOME"} {
		if home := os.Getenv(key); home != "" {
			return home
		}
	}
	return ""
}

// BootArgs builds the emulator command line for an AVD on a console port.
func BootArgs(avdName string, consolePort int) []string {
	return []string{
		"-avd", avdName,
		"-port", fmt.Sprintf("%d", consolePort),
		"-netdelay", "none",
		"-netspeed", "full",
		"-no-boot-anim",
		"-no-snapshot-load",
	}
}

// ParseAVDList parses `emulator -list-avds` output into AVD names.
func ParseAVDList(out string) []string {
	var avds []string
	for _, line := range strings.Split(out, "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		avds = append(avds, line)
	}
	return avds
}

// ListAVDs returns the names of all available Android Virtual Devices.
func ListAVDs() ([]string, error) {
	emulatorPath, err := FindBinary()
	if err != nil {
		return nil, err
	}
	out, err := exec.Command(emulatorPath, "-list-avds").Output()
	if err != nil {
		return nil, fmt.Errorf("list AVDs: %w", err)
	}
	return ParseAVDList(string(out)), nil
}

// Manager boots emulators and waits for them to become usable.
type Manager struct {
	emulatorPath string
	adbPath      string

	// test hooks
	run   func(name string, args ...string) (string, error)
	sleep func(time.Duration)
	now   func() time.Time
}

// NewManager creates a Manager. Empty paths fall back to discovery
// (ANDROID_HOME / PATH) at boot time.
func NewManager(emulatorPath, adbPath string) *Manager {
	if adbPath == "" {
		adbPath = "adb"
	}
	return &Manager{
		emulatorPath: emulatorPath,
		adbPath:      adbPath,
		run: func(name string, args ...string) (string, error) {
			out, err := exec.Command(name, args...).Output()
			return string(out), err
		},
		sleep: time.Sleep,
		now:   time.Now,
	}
}

// Start boots the named AVD on the given console port and blocks until
// the emulator passes all readiness checks or the timeout elapses. It
// returns the adb serial of the booted emulator.
func (m *Manager) Start(avdName string, consolePort int, timeout time.Duration) (string, error) {
	emulatorPath := m.emulatorPath
	if emulatorPath == "" {
		var err error
		if emulatorPath, err = FindBinary(); err != nil {
			return "", err
		}
	}
	if consolePort <= 0 {
		consolePort = BasePort
	}
	serial := Serial(consolePort)

	logger.Info("booting AVD %s on port %d", avdName, consolePort)
	cmd := exec.Command(emulatorPath, BootArgs(avdName, consolePort)...)
	if err := cmd.Start(); err != nil {
		return "", fmt.Errorf("start emulator process: %w", err)
	}

	if err := m.waitForBoot(serial, timeout); err != nil {
		cmd.Process.Kill()
		return "", err
	}
	logger.Info("emulator %s booted", serial)
	return serial, nil
}

// CheckBoot runs the staged readiness checks against a serial.
func (m *Manager) CheckBoot(serial string) BootStatus {
	var status BootStatus

	out, err := m.run(m.adbPath, "-s", serial, "get-state")
	status.StateReady = err == nil && strings.TrimSpace(out) == "device"
	if !status.StateReady {
		return status
	}

	out, err = m.run(m.adbPath, "-s", serial, "shell", "getprop", "sys.boot_completed")
	status.BootCompleted = err == nil && strings.TrimSpace(out) == "1"

	_, err = m.run(m.adbPath, "-s", serial, "shell", "pm", "get-max-users")
	status.ServicesReady = err == nil

	return status
}

func (m *Manager) waitForBoot(serial string, timeout time.Duration) error {
	deadline := m.now().Add(timeout)
	var last BootStatus
	for m.now().Before(deadline) {
		last = m.CheckBoot(serial)
		if last.Ready() {
			return nil
		}
		logger.Debug("boot status %s: state=%v boot=%v services=%v",
			serial, last.StateReady, last.BootCompleted, last.ServicesReady)
		m.sleep(time.Second)
	}
	return fmt.Errorf("emulator %s not ready after %v (state:%v boot:%v services:%v)",
		serial, timeout, last.StateReady, last.BootCompleted, last.ServicesReady)
}

// Shutdown stops an emulator: adb emu kill first, then a hard kill of
// the emulator process if it does not go away in time.
func (m *Manager) Shutdown(serial string, timeout time.Duration) error {
	if !IsEmulatorSerial(serial) {
		return fmt.Errorf("not an emulator serial: %s", serial)
	}

	logger.Info("shutting down emulator %s", serial)
	if _, err := m.run(m.adbPath, "-s", serial, "emu", "kill"); err != nil {
		logger.Warn("adb emu kill failed for %s: %v", serial, err)
	}

	deadline := m.now().Add(timeout)
	for m.now().Before(deadline) {
		if _, err := m.run(m.adbPath, "-s", serial, "get-state"); err != nil {
			return nil
		}
		m.sleep(time.Second)
	}
	return m.forceKill(serial)
}

func (m *Manager) forceKill(serial string) error {
	port, err := PortFromSerial(serial)
	if err != nil {
		return err
	}

	out, err := m.run("pgrep", "-f", fmt.Sprintf("emulator.*-port %d", port))
	if err != nil {
		return fmt.Errorf("no emulator process found for %s", serial)
	}
	pids := strings.Fields(strings.TrimSpace(out))
	if len(pids) == 0 {
		return fmt.Errorf("no emulator process found for %s", serial)
	}

	for _, pid := range pids {
		if _, err := m.run("kill", "-TERM", pid); err != nil {
			logger.Warn("SIGTERM failed for PID %s, using SIGKILL", pid)
			m.run("kill", "-KILL", pid)
		}
	}
	return nil
}
