package main

import (
	"fmt"
	"os"
	"strings"
)

// version is set at build time with -ldflags "-X main.version=...".
var version = "devel"

func main() {
	cli, ctx := parseArgs(os.Args[1:])

	switch {
	case ctx.Command() == "version":
		fmt.Println("nescore", version)
	case strings.HasPrefix(ctx.Command(), "rom-infos"):
		romInfosMain(cli.RomInfos)
	default:
		runMain(cli.Run)
	}
}
