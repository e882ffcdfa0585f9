package cli

import (
	"fmt"
	"time"

	"github.com/urfave/cli/v2"

	"github.com/Anjos2/mcp-android-emulator/pkg/emulator"
)

var startDeviceCommand = &cli.Command{
	Name:  "start-device",
	Usage: "Boot an Android emulator and wait until it is usable",
	Description: `Boot an Android Virtual Device and block until adb, the boot flag and
the package manager all report ready.

Examples:
  mcp-android-emulator start-device --avd Pixel_7_API_33
  mcp-android-emulator start-device --list
  mcp-android-emulator start-device --avd Pixel_7_API_33 --port 5556`,
	Flags: []cli.Flag{
		&cli.StringFlag{
			Name:  "avd",
			Usage: "AVD name to boot",
		},
		&cli.IntFlag{
			Name:  "port",
			Usage: "Console port (even, adb port is console+1)",
			Value: emulator.BasePort,
		},
		&cli.DurationFlag{
			Name:  "boot-timeout",
			Usage: "How long to wait for a full boot",
			Value: 2 * time.Minute,
		},
		&cli.BoolFlag{
			Name:  "list",
			Usage: "List available AVDs and exit",
		},
	},
	Action: runStartDevice,
}

var stopDeviceCommand = &cli.Command{
	Name:      "stop-device",
	Usage:     "Shut down a running emulator",
	ArgsUsage: "<serial>",
	Action:    runStopDevice,
}

func runStartDevice(c *cli.Context) error {
	if c.Bool("list") {
		avds, err := emulator.ListAVDs()
		if err != nil {
			return err
		}
		if len(avds) == 0 {
			fmt.Println("No AVDs found. Create one with avdmanager or Android Studio.")
			return nil
		}
		for _, name := range avds {
			fmt.Println(name)
		}
		return nil
	}

	avd := c.String("avd")
	if avd == "" {
		return fmt.Errorf("--avd is required (or --list to see available AVDs)")
	}

	mgr := emulator.NewManager("", c.String("adb-path"))
	serial, err := mgr.Start(avd, c.Int("port"), c.Duration("boot-timeout"))
	if err != nil {
		return err
	}
	fmt.Println(serial)
	return nil
}

func runStopDevice(c *cli.Context) error {
	serial := c.Args().First()
	if serial == "" {
		return fmt.Errorf("emulator serial is required (see: mcp-android-emulator devices)")
	}

	mgr := emulator.NewManager("", c.String("adb-path"))
	return mgr.Shutdown(serial, 30*time.Second)
}
