// Package server exposes Android device automation as MCP tools over stdio.
package server

import (
	"context"
	"fmt"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/Anjos2/mcp-android-emulator/pkg/adb"
	"github.com/Anjos2/mcp-android-emulator/pkg/config"
	"github.com/Anjos2/mcp-android-emulator/pkg/wait"
)

const (
	ServerName    = "mcp-android-emulator"
	ServerVersion = "0.1.0"
)

// clipboardKey names the scratch-store slot backing the clipboard tools.
const clipboardKey = "clipboard"

// DeviceLink is the device surface the tools operate on. *adb.Device
// implements it; tests substitute a fake.
type DeviceLink interface {
	Serial() string
	Dump() (string, error)
	Tap(x, y int) error
	LongPress(x, y, durationMs int) error
	Swipe(x1, y1, x2, y2, durationMs int) error
	InputText(text string) error
	KeyEvent(code int) error
	ScreenSize() (int, int, error)
	Screenshot() ([]byte, error)
	Install(apkPath string) error
	LaunchApp(pkg string) error
	ForceStop(pkg string) error
	ClearAppData(pkg string) error
	ListPackages(filter string) ([]string, error)
	SetOrientation(orientation string) error
	Info() adb.DeviceInfo
}

// Server is the MCP server for Android emulator automation.
type Server struct {
	mcpServer *mcp.Server
	device    DeviceLink
	waiter    *wait.Waiter
	scratch   *adb.ScratchStore
}

// New creates a Server for the given device. cfg tunes the polling loops;
// zero fields keep the built-in defaults.
func New(device DeviceLink, cfg *config.Config) *Server {
	if cfg == nil {
		cfg = &config.Config{}
	}

	s := &Server{
		device: device,
		waiter: wait.New(device, device, wait.Config{
			PollInterval: cfg.PollInterval(),
			SettleDelay:  cfg.SettleDelay(),
			StableTicks:  cfg.StableTicks,
		}),
		scratch: adb.NewScratchStore(),
	}

	s.mcpServer = mcp.NewServer(
		&mcp.Implementation{
			Name:    ServerName,
			Version: ServerVersion,
		},
		nil,
	)
	s.registerTools()
	return s
}

// Run starts the MCP server on stdio transport, blocking until done.
func (s *Server) Run(ctx context.Context) error {
	return s.mcpServer.Run(ctx, &mcp.StdioTransport{})
}

// errorResult reports a failed tool call without failing the protocol.
func errorResult(format string, args ...interface{}) *mcp.CallToolResult {
	return &mcp.CallToolResult{
		IsError: true,
		Content: []mcp.Content{&mcp.TextContent{Text: fmt.Sprintf(format, args...)}},
	}
}

func (s *Server) registerTools() {
	// Query and enumeration
	mcp.AddTool(s.mcpServer, &mcp.Tool{
		Name:        "ui_dump",
		Description: "Dump the current screen as a structured element list, sorted top-to-bottom then left-to-right. Optionally restrict to clickable elements; disabled elements are skipped unless include_disabled is set.",
	}, s.handleUIDump)

	mcp.AddTool(s.mcpServer, &mcp.Tool{
		Name:        "find_element",
		Description: "Find an element by text (case-insensitive substring by default, exact for full equality) or by resource_id (always exact). index selects among duplicate matches in document order. Returns bounds, center and match count.",
	}, s.handleFindElement)

	mcp.AddTool(s.mcpServer, &mcp.Tool{
		Name:        "tap_element",
		Description: "Find an element like find_element, then tap its center.",
	}, s.handleTapElement)

	// Direct interaction
	mcp.AddTool(s.mcpServer, &mcp.Tool{
		Name:        "tap",
		Description: "Tap at absolute screen coordinates.",
	}, s.handleTap)

	mcp.AddTool(s.mcpServer, &mcp.Tool{
		Name:        "long_press",
		Description: "Long-press at absolute screen coordinates (default 1000 ms).",
	}, s.handleLongPress)

	mcp.AddTool(s.mcpServer, &mcp.Tool{
		Name:        "swipe",
		Description: "Drag from (x1,y1) to (x2,y2) over duration_ms (default 300 ms).",
	}, s.handleSwipe)

	mcp.AddTool(s.mcpServer, &mcp.Tool{
		Name:        "input_text",
		Description: "Type text into the focused field.",
	}, s.handleInputText)

	mcp.AddTool(s.mcpServer, &mcp.Tool{
		Name:        "key_event",
		Description: "Press a named key: enter, back, home, menu, delete, tab, space, volume_up, volume_down, power, search, app_switch, dpad_*.",
	}, s.handleKeyEvent)

	mcp.AddTool(s.mcpServer, &mcp.Tool{
		Name:        "screenshot",
		Description: "Capture the screen as PNG and write it to a local file path.",
	}, s.handleScreenshot)

	// Synchronization
	mcp.AddTool(s.mcpServer, &mcp.Tool{
		Name:        "wait_for_element",
		Description: "Poll the screen until the given text appears anywhere in the UI (case-insensitive), or the timeout elapses. A timeout is reported in the result, not as an error.",
	}, s.handleWaitForElement)

	mcp.AddTool(s.mcpServer, &mcp.Tool{
		Name:        "wait_for_element_gone",
		Description: "Poll the screen until the given text is no longer present, or the timeout elapses.",
	}, s.handleWaitForElementGone)

	mcp.AddTool(s.mcpServer, &mcp.Tool{
		Name:        "wait_for_idle",
		Description: "Poll until the screen stops changing: the UI fingerprint must be identical on consecutive checks before the screen counts as idle.",
	}, s.handleWaitForIdle)

	mcp.AddTool(s.mcpServer, &mcp.Tool{
		Name:        "scroll_until_visible",
		Description: "Scroll the screen (direction: down or up) until the given text becomes visible or max_attempts scrolls are exhausted. The text is checked before each scroll, so no gesture is issued when it is already on screen.",
	}, s.handleScrollUntilVisible)

	// App and device lifecycle
	mcp.AddTool(s.mcpServer, &mcp.Tool{
		Name:        "launch_app",
		Description: "Launch an app by package name via its launcher intent.",
	}, s.handleLaunchApp)

	mcp.AddTool(s.mcpServer, &mcp.Tool{
		Name:        "force_stop",
		Description: "Force-stop an app by package name.",
	}, s.handleForceStop)

	mcp.AddTool(s.mcpServer, &mcp.Tool{
		Name:        "clear_app_data",
		Description: "Clear an app's data and state by package name.",
	}, s.handleClearAppData)

	mcp.AddTool(s.mcpServer, &mcp.Tool{
		Name:        "install_apk",
		Description: "Install an APK from a local path (replaces an existing install and grants runtime permissions).",
	}, s.handleInstallAPK)

	mcp.AddTool(s.mcpServer, &mcp.Tool{
		Name:        "list_packages",
		Description: "List installed package names, optionally filtered by substring.",
	}, s.handleListPackages)

	mcp.AddTool(s.mcpServer, &mcp.Tool{
		Name:        "set_orientation",
		Description: "Rotate the screen: portrait, landscape, landscape_right, or upside_down.",
	}, s.handleSetOrientation)

	mcp.AddTool(s.mcpServer, &mcp.Tool{
		Name:        "device_info",
		Description: "Report device model, brand, SDK level, emulator flag and screen size.",
	}, s.handleDeviceInfo)

	// Clipboard
	mcp.AddTool(s.mcpServer, &mcp.Tool{
		Name:        "set_clipboard",
		Description: "Store text in the server-side clipboard for a later paste_clipboard.",
	}, s.handleSetClipboard)

	mcp.AddTool(s.mcpServer, &mcp.Tool{
		Name:        "paste_clipboard",
		Description: "Type the stored clipboard text into the focused field.",
	}, s.handlePasteClipboard)
}
