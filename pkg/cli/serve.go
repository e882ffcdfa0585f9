package cli

import (
	"context"
	"os/signal"
	"syscall"

	"github.com/urfave/cli/v2"

	"github.com/Anjos2/mcp-android-emulator/pkg/logger"
	"github.com/Anjos2/mcp-android-emulator/pkg/server"
)

var serveCommand = &cli.Command{
	Name:  "serve",
	Usage: "Serve MCP tools on stdio (default command)",
	Description: `Connect to the target device and speak the Model Context Protocol on
stdin/stdout. Logs go to stderr (or --log-file) so they never corrupt
the protocol stream.

Examples:
  mcp-android-emulator serve
  mcp-android-emulator -s emulator-5554 --log-file /tmp/mcp.log serve`,
	Action: runServe,
}

func runServe(c *cli.Context) error {
	cfg, err := loadConfig(c)
	if err != nil {
		return err
	}
	dev, err := connect(cfg)
	if err != nil {
		return err
	}
	defer logger.Close()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	logger.Info("serving MCP on stdio for device %s", dev.Serial())
	if err := server.New(dev, cfg).Run(ctx); err != nil && ctx.Err() == nil {
		return err
	}
	return nil
}
