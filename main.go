package main

import "github.com/Anjos2/mcp-android-emulator/pkg/cli"

func main() {
	cli.Execute()
}
