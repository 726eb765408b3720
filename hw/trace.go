package hw

import (
	"fmt"
	"io"
)

// tracer logs one line per executed instruction, in the register column
// format of the nestest reference log.
type tracer struct {
	w   io.Writer
	cpu *CPU
}

func (t *tracer) write() {
	c := t.cpu
	fmt.Fprintf(t.w, "%04X  A:%02X X:%02X Y:%02X P:%02X SP:%02X CYC:%d\n",
		c.PC, c.A, c.X, c.Y, uint8(c.P), c.SP, c.TotalCycles)
}
