package main

import (
	"bytes"
	"fmt"
	"os"

	"golang.org/x/sync/errgroup"

	"nescore/ines"
)

// romInfosMain prints a header summary for each given rom. Parsing runs
// in parallel; output keeps the argument order.
func romInfosMain(args RomInfos) {
	outputs := make([]bytes.Buffer, len(args.RomPaths))

	var g errgroup.Group
	for i, path := range args.RomPaths {
		g.Go(func() error {
			rom, err := ines.ReadRom(path)
			if err != nil {
				return err
			}
			fmt.Fprintf(&outputs[i], "%s:\n", path)
			rom.PrintInfos(&outputs[i])
			return nil
		})
	}
	checkf(g.Wait(), "failed to read rom")

	for i := range outputs {
		if i > 0 {
			fmt.Println()
		}
		os.Stdout.Write(outputs[i].Bytes())
	}
}
