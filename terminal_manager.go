package main

import (
	"context"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"sync"
	"sync/atomic"
	"syscall"

	"github.com/muesli/termenv"
)

var cursorOutput io.Writer = os.Stdout

// restoreCursor makes the terminal cursor visible again. Pickers hide it
// while running and may not get the chance to show it when cut short.
func restoreCursor() {
	termenv.NewOutput(cursorOutput).ShowCursor()
}

// interruptGuard owns the process signal handler for one session.
type interruptGuard struct {
	signals     chan os.Signal
	cancel      context.CancelFunc
	restore     func()
	interrupted atomic.Bool
	stopOnce    sync.Once
	done        chan struct{}
}

var notifySignals = func(c chan<- os.Signal) {
	signal.Notify(c, os.Interrupt, syscall.SIGTERM)
}

var stopSignals = func(c chan<- os.Signal) {
	signal.Stop(c)
}

// installInterruptGuard returns a context that is cancelled on SIGINT or
// SIGTERM. restore runs once, before the cancellation.
func installInterruptGuard(parent context.Context, restore func()) (context.Context, *interruptGuard) {
	ctx, cancel := context.WithCancel(parent)
	g := &interruptGuard{
		signals: make(chan os.Signal, 1),
		cancel:  cancel,
		restore: restore,
		done:    make(chan struct{}),
	}
	notifySignals(g.signals)
	go g.watch(ctx)
	return ctx, g
}

func (g *interruptGuard) watch(ctx context.Context) {
	select {
	case sig := <-g.signals:
		slog.Debug("received signal", slog.String("signal", sig.String()))
		g.trip()
	case <-ctx.Done():
	case <-g.done:
	}
}

func (g *interruptGuard) trip() {
	if !g.interrupted.CompareAndSwap(false, true) {
		return
	}
	if g.restore != nil {
		g.restore()
	}
	g.cancel()
}

// Interrupted reports whether a signal cancelled the session.
func (g *interruptGuard) Interrupted() bool {
	return g.interrupted.Load()
}

func (g *interruptGuard) Stop() {
	g.stopOnce.Do(func() {
		stopSignals(g.signals)
		close(g.done)
		g.cancel()
	})
}
