// Package log provides module-scoped logging on top of logrus. Each
// hardware component logs through its own module so that debug output can
// be enabled selectively from the command line.
package log

type ModuleMask uint64
type Module uint

const ModuleMaskAll ModuleMask = 0xFFFFFFFFFFFFFFFF

const (
	ModEmu Module = iota + 1
	ModCPU
	ModPPU
	ModSound
	ModMem
	ModInes

	endStandardMods
)

var modCount = endStandardMods

var modNames = []string{
	"<error>", "emu", "cpu", "ppu", "sound", "mem", "ines",
}

// NewModule registers an extra module (e.g. the mapper subsystem declares
// its own).
func NewModule(name string) Module {
	mod := modCount
	modCount++
	modNames = append(modNames, name)
	return mod
}

func ModuleByName(name string) (Module, bool) {
	for idx, s := range modNames {
		if s == name {
			return Module(idx), true
		}
	}
	return Module(0xFFFFFFFF), false
}

func ModuleNames() []string {
	return modNames[1:]
}

var modDebugMask ModuleMask

func EnableDebugModules(mask ModuleMask) { modDebugMask |= mask }

func DisableDebugModules(mask ModuleMask) { modDebugMask &^= mask }

func (mod Module) Mask() ModuleMask { return 1 << ModuleMask(mod) }

func (mod Module) Enabled(level Level) bool {
	if disabled {
		return false
	}
	return level <= WarnLevel || modDebugMask&mod.Mask() != 0
}

var disabled bool

// Disable turns off all logging, including warnings and errors.
func Disable() { disabled = true }

func (mod Module) logz(lvl Level, msg string) *EntryZ {
	if mod.Enabled(lvl) {
		return newEntryZ(mod, lvl, msg)
	}
	return nil
}

func (mod Module) DebugZ(msg string) *EntryZ { return mod.logz(DebugLevel, msg) }
func (mod Module) InfoZ(msg string) *EntryZ  { return mod.logz(InfoLevel, msg) }
func (mod Module) WarnZ(msg string) *EntryZ  { return mod.logz(WarnLevel, msg) }
func (mod Module) ErrorZ(msg string) *EntryZ { return mod.logz(ErrorLevel, msg) }
func (mod Module) FatalZ(msg string) *EntryZ { return mod.logz(FatalLevel, msg) }

// printf-like family, for the rare places where building an EntryZ is
// overkill.

func (mod Module) Debugf(format string, args ...any) { mod.logf(DebugLevel, format, args...) }
func (mod Module) Infof(format string, args ...any)  { mod.logf(InfoLevel, format, args...) }
func (mod Module) Warnf(format string, args ...any)  { mod.logf(WarnLevel, format, args...) }
func (mod Module) Errorf(format string, args ...any) { mod.logf(ErrorLevel, format, args...) }
func (mod Module) Fatalf(format string, args ...any) { mod.logf(FatalLevel, format, args...) }
