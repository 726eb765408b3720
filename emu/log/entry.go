package log

import (
	"fmt"

	"gopkg.in/Sirupsen/logrus.v0"
)

type Level uint8

const (
	PanicLevel Level = iota
	FatalLevel
	ErrorLevel
	WarnLevel
	InfoLevel
	DebugLevel
)

// EntryZ is a log entry under construction. A nil *EntryZ (module disabled)
// swallows every call, so call sites never check the level themselves.
type EntryZ struct {
	mod    Module
	lvl    Level
	msg    string
	fields logrus.Fields
}

func newEntryZ(mod Module, lvl Level, msg string) *EntryZ {
	return &EntryZ{
		mod:    mod,
		lvl:    lvl,
		msg:    msg,
		fields: make(logrus.Fields, 8),
	}
}

func (e *EntryZ) String(key, val string) *EntryZ { return e.field(key, val) }
func (e *EntryZ) Int(key string, val int) *EntryZ { return e.field(key, val) }
func (e *EntryZ) Int64(key string, val int64) *EntryZ { return e.field(key, val) }
func (e *EntryZ) Uint8(key string, val uint8) *EntryZ { return e.field(key, val) }
func (e *EntryZ) Uint16(key string, val uint16) *EntryZ { return e.field(key, val) }
func (e *EntryZ) Uint32(key string, val uint32) *EntryZ { return e.field(key, val) }
func (e *EntryZ) Uint64(key string, val uint64) *EntryZ { return e.field(key, val) }
func (e *EntryZ) Bool(key string, val bool) *EntryZ { return e.field(key, val) }

func (e *EntryZ) Hex8(key string, val uint8) *EntryZ {
	if e == nil {
		return nil
	}
	return e.field(key, fmt.Sprintf("$%02X", val))
}

func (e *EntryZ) Hex16(key string, val uint16) *EntryZ {
	if e == nil {
		return nil
	}
	return e.field(key, fmt.Sprintf("$%04X", val))
}

func (e *EntryZ) Error(key string, err error) *EntryZ { return e.field(key, err) }

func (e *EntryZ) field(key string, val any) *EntryZ {
	if e == nil {
		return nil
	}
	e.fields[key] = val
	return e
}

// End emits the entry.
func (e *EntryZ) End() {
	if e == nil {
		return
	}
	entry := logrus.StandardLogger().
		WithField("_mod", modNames[e.mod]).
		WithFields(e.fields)

	switch e.lvl {
	case PanicLevel:
		entry.Panic(e.msg)
	case FatalLevel:
		entry.Fatal(e.msg)
	case ErrorLevel:
		entry.Error(e.msg)
	case WarnLevel:
		entry.Warn(e.msg)
	case InfoLevel:
		entry.Info(e.msg)
	default:
		entry.Debug(e.msg)
	}
}

func (mod Module) logf(lvl Level, format string, args ...any) {
	if !mod.Enabled(lvl) {
		return
	}
	entry := logrus.StandardLogger().WithField("_mod", modNames[mod])
	switch lvl {
	case PanicLevel:
		entry.Panicf(format, args...)
	case FatalLevel:
		entry.Fatalf(format, args...)
	case ErrorLevel:
		entry.Errorf(format, args...)
	case WarnLevel:
		entry.Warnf(format, args...)
	case InfoLevel:
		entry.Infof(format, args...)
	default:
		entry.Debugf(format, args...)
	}
}

func init() {
	logrus.SetLevel(logrus.DebugLevel)
}
