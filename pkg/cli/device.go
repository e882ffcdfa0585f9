package cli

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/urfave/cli/v2"

	"github.com/Anjos2/mcp-android-emulator/pkg/adb"
	"github.com/Anjos2/mcp-android-emulator/pkg/snapshot"
)

var devicesCommand = &cli.Command{
	Name:  "devices",
	Usage: "List connected devices and emulators",
	Description: `List the serials of all devices adb currently sees.

Examples:
  mcp-android-emulator devices`,
	Action: runDevices,
}

var dumpCommand = &cli.Command{
	Name:  "dump",
	Usage: "Print the current screen as a JSON element list",
	Description: `Dump the UI hierarchy of the connected device and print the parsed
elements in JSON, sorted top-to-bottom then left-to-right.

Examples:
  mcp-android-emulator dump
  mcp-android-emulator dump --clickable
  mcp-android-emulator -s emulator-5554 dump --raw`,
	Flags: []cli.Flag{
		&cli.BoolFlag{
			Name:  "raw",
			Usage: "Print the raw uiautomator XML instead of parsed JSON",
		},
		&cli.BoolFlag{
			Name:  "clickable",
			Usage: "Only include clickable elements",
		},
	},
	Action: runDump,
}

var screenshotCommand = &cli.Command{
	Name:      "screenshot",
	Usage:     "Capture the screen to a PNG file",
	ArgsUsage: "<output-path>",
	Action:    runScreenshot,
}

func runDevices(c *cli.Context) error {
	serials, err := adb.ListDevices(c.String("adb-path"))
	if err != nil {
		return err
	}
	if len(serials) == 0 {
		fmt.Println("No devices connected.")
		return nil
	}
	for _, s := range serials {
		fmt.Println(s)
	}
	return nil
}

func runDump(c *cli.Context) error {
	cfg, err := loadConfig(c)
	if err != nil {
		return err
	}
	dev, err := connect(cfg)
	if err != nil {
		return err
	}

	raw, err := dev.Dump()
	if err != nil {
		return fmt.Errorf("dump: %w", err)
	}
	if c.Bool("raw") {
		fmt.Println(raw)
		return nil
	}

	elems := []snapshot.Element(snapshot.Parse(raw))
	if c.Bool("clickable") {
		elems = snapshot.Clickable(elems)
	}
	elems = snapshot.SortVisual(elems)

	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(elems)
}

func runScreenshot(c *cli.Context) error {
	path := c.Args().First()
	if path == "" {
		return fmt.Errorf("output path is required")
	}

	cfg, err := loadConfig(c)
	if err != nil {
		return err
	}
	dev, err := connect(cfg)
	if err != nil {
		return err
	}

	png, err := dev.Screenshot()
	if err != nil {
		return fmt.Errorf("screenshot: %w", err)
	}
	if err := os.WriteFile(path, png, 0o644); err != nil {
		return err
	}
	fmt.Printf("Saved %d bytes to %s\n", len(png), path)
	return nil
}
