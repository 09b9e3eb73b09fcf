package logging

import (
	"context"
	"sync/atomic"
)

// Mirror receives every record emitted through a Logger. Used by the
// observability layer to ship logs over OTLP without coupling this package
// to an exporter.
type Mirror interface {
	Emit(ctx context.Context, level Level, msg string, args []any)
}

// MirrorFunc adapts a plain function to the Mirror interface.
type MirrorFunc func(ctx context.Context, level Level, msg string, args []any)

func (f MirrorFunc) Emit(ctx context.Context, level Level, msg string, args []any) {
	f(ctx, level, msg, args)
}

var activeMirror atomic.Pointer[Mirror]

func SetMirror(m Mirror) {
	if m == nil {
		activeMirror.Store(nil)
		return
	}
	activeMirror.Store(&m)
}

func mirrorRecord(ctx context.Context, level Level, msg string, args []any) {
	ptr := activeMirror.Load()
	if ptr == nil {
		return
	}
	if ctx == nil {
		ctx = context.Background()
	}
	(*ptr).Emit(ctx, level, msg, args)
}
