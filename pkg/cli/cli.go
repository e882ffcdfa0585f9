// Package cli provides the command-line interface for mcp-android-emulator.
package cli

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/urfave/cli/v2"

	"github.com/Anjos2/mcp-android-emulator/pkg/adb"
	"github.com/Anjos2/mcp-android-emulator/pkg/config"
	"github.com/Anjos2/mcp-android-emulator/pkg/logger"
)

// Version is set at build time.
var Version = "dev"

// GlobalFlags are available to all commands.
var GlobalFlags = []cli.Flag{
	&cli.StringFlag{
		Name:    "serial",
		Aliases: []string{"s"},
		Usage:   "Device serial to target (defaults to the only connected device)",
		EnvVars: []string{"ANDROID_SERIAL"},
	},
	&cli.StringFlag{
		Name:    "adb-path",
		Usage:   "Path to the adb binary (defaults to adb in PATH)",
		EnvVars: []string{"ADB_PATH"},
	},
	&cli.StringFlag{
		Name:    "config",
		Aliases: []string{"c"},
		Usage:   "Path to a YAML config file",
		EnvVars: []string{"MCP_ANDROID_CONFIG"},
	},
	&cli.StringFlag{
		Name:    "log-file",
		Usage:   "Write logs to this file instead of stderr",
		EnvVars: []string{"MCP_ANDROID_LOG_FILE"},
	},
}

// Execute runs the CLI.
func Execute() {
	// Optional; a missing .env is not an error.
	_ = godotenv.Load()

	app := &cli.App{
		Name:    "mcp-android-emulator",
		Usage:   "MCP server for Android emulator automation over adb",
		Version: Version,
		Description: `Exposes a connected Android device or emulator to MCP clients:
screen dumps, element lookup by text or resource id, taps, gestures,
text input, app lifecycle and wait primitives.

Examples:
  mcp-android-emulator serve
  mcp-android-emulator -s emulator-5554 serve
  mcp-android-emulator devices
  mcp-android-emulator dump`,
		Flags: GlobalFlags,
		Commands: []*cli.Command{
			serveCommand,
			devicesCommand,
			dumpCommand,
			screenshotCommand,
			startDeviceCommand,
			stopDeviceCommand,
		},
		// serve is the default so MCP clients can point at the bare binary.
		Action: runServe,
	}

	if err := app.Run(os.Args); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// loadConfig merges the config file (if any) with command-line flags.
// Flags win over file values.
func loadConfig(c *cli.Context) (*config.Config, error) {
	var cfg *config.Config
	if path := c.String("config"); path != "" {
		loaded, err := config.Load(path)
		if err != nil {
			return nil, fmt.Errorf("load config: %w", err)
		}
		cfg = loaded
	} else {
		loaded, err := config.LoadFromDir(config.GetHome())
		if err != nil {
			return nil, fmt.Errorf("load config: %w", err)
		}
		cfg = loaded
	}
	if s := c.String("serial"); s != "" {
		cfg.Serial = s
	}
	if p := c.String("adb-path"); p != "" {
		cfg.ADBPath = p
	}
	if f := c.String("log-file"); f != "" {
		cfg.LogFile = f
	}
	return cfg, nil
}

// connect opens the target device and applies config to it.
func connect(cfg *config.Config) (*adb.Device, error) {
	if cfg.LogFile != "" {
		if err := logger.Init(cfg.LogFile); err != nil {
			return nil, fmt.Errorf("init log file: %w", err)
		}
	}

	dev, err := adb.New(cfg.Serial, cfg.ADBPath)
	if err != nil {
		return nil, err
	}
	dev.SetDumpPath(cfg.DumpPath)
	return dev, nil
}
