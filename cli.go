package main

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/alecthomas/kong"

	"nescore/emu/log"
)

type CLI struct {
	Run      Run      `cmd:"" help:"Run a ROM in the emulator."`
	RomInfos RomInfos `cmd:"" help:"Show ROM infos." name:"rom-infos"`
	Version  Version  `cmd:"" help:"Show nescore version."`

	Log logModMask `help:"${log_help}" placeholder:"mod0,mod1,..."`
}

type Run struct {
	RomPath string `arg:"" name:"/path/to/rom" help:"ROM to run." required:"" type:"existingfile"`

	Config   string   `name:"config" help:"Path to a TOML config file." type:"path"`
	Frames   int      `name:"frames" help:"Exit after N frames. (0 = run until closed)" default:"0"`
	Headless bool     `name:"headless" help:"Run without video or audio output."`
	Trace    *outfile `name:"trace" help:"Write CPU trace log." placeholder:"FILE|stdout|stderr"`
}

type RomInfos struct {
	RomPaths []string `arg:"" name:"/path/to/rom" required:"" type:"existingfile"`
}

type Version struct{}

var vars = kong.Vars{
	"log_help": "Enable debug logging for specified modules.",
}

func parseArgs(args []string) (CLI, *kong.Context) {
	var cli CLI
	parser, err := kong.New(&cli,
		kong.Name("nescore"),
		kong.Description("Cycle-accurate NES emulator core."),
		kong.UsageOnError(),
		kong.Help(printHelp),
		vars)
	if err != nil {
		panic(err)
	}

	ctx, err := parser.Parse(args)
	checkf(err, "failed to parse command line")
	return cli, ctx
}

func printHelp(options kong.HelpOptions, ctx *kong.Context) error {
	if err := kong.DefaultHelpPrinter(options, ctx); err != nil {
		return err
	}
	if strings.HasPrefix(ctx.Command(), "run") {
		fmt.Fprintf(os.Stderr, `
Log modules:
  The --log flag accepts a comma-separated list of modules.

  Valid log modules are:
%s

  As a special case, the following values are accepted:
    - no                     Disable all logging.
    - all                    Enable all logs.
`, "    - "+strings.Join(log.ModuleNames(), "\n    - "))
	}
	return nil
}

type logModMask log.ModuleMask

// Decode decodes a comma-separated list of module names into a module
// mask. Implements the kong.MapperValue interface.
func (lm logModMask) Decode(ctx *kong.DecodeContext) error {
	nolog := false
	allLogs := false

	tok := ctx.Scan.Pop()
	for _, v := range strings.Split(tok.Value.(string), ",") {
		switch v {
		case "all":
			allLogs = true
		case "no":
			nolog = true
		default:
			mod, ok := log.ModuleByName(v)
			if !ok {
				return fmt.Errorf("unknown log module %s", v)
			}
			lm |= logModMask(mod.Mask())
		}
	}

	if nolog {
		if allLogs {
			return fmt.Errorf("cannot use 'all' and 'no' together")
		}
		if lm != 0 {
			return fmt.Errorf("cannot combine 'no' with other log modules")
		}
		log.Disable()
		return nil
	}

	if allLogs {
		lm = logModMask(log.ModuleMaskAll)
	}

	log.EnableDebugModules(log.ModuleMask(lm))
	return nil
}

// outfile decodes FILE|stdout|stderr into an io.WriteCloser. Implements
// the kong.MapperValue interface.
type outfile struct {
	w     io.Writer
	name  string
	close func() error
}

func (f *outfile) Decode(ctx *kong.DecodeContext) error {
	tok := ctx.Scan.Pop()
	f.name = tok.Value.(string)
	f.close = func() error { return nil }

	switch f.name {
	case "stdout":
		f.w = os.Stdout
	case "stderr":
		f.w = os.Stderr
	default:
		fd, err := os.Create(f.name)
		if err != nil {
			return err
		}
		f.w = fd
		f.close = fd.Close
	}
	return nil
}

func (f *outfile) String() string              { return f.name }
func (f *outfile) Write(p []byte) (int, error) { return f.w.Write(p) }
func (f *outfile) Close() error                { return f.close() }

func checkf(err error, format string, args ...any) {
	if err == nil {
		return
	}
	fatalf(format+".\n"+err.Error(), args...)
}

func fatalf(format string, args ...any) {
	fmt.Fprintf(os.Stderr, "fatal error:")
	fmt.Fprintf(os.Stderr, "\n\t%s\n", fmt.Sprintf(format, args...))
	os.Exit(1)
}
