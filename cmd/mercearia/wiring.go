package main

import (
	"context"
	"errors"
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"golang.org/x/sync/errgroup"

	"github.com/LISSConsulting/LISSTech.Mercearia/internal/tui"
)

// watchFunc watches the catalog until ctx is done, calling onReload after
// each reload attempt.
type watchFunc func(ctx context.Context, onReload func(n int, err error)) error

// messenger is the part of *tea.Program the catalog watcher talks to.
type messenger interface {
	Send(msg tea.Msg)
}

// runProgram runs the screen and, when watch is non-nil, the catalog
// watcher next to it. Quitting the screen stops the watcher; a watcher
// failure is logged by the screen as a reload error and does not stop it.
func runProgram(ctx context.Context, program *tea.Program, watch watchFunc) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		defer cancel()
		return finishTUI(program)
	})
	if watch != nil {
		g.Go(func() error {
			return runWatch(gctx, watch, program)
		})
	}
	return g.Wait()
}

// runWatch runs watch, forwarding reloads to the screen. A watcher that
// cannot start is reported on screen and the register keeps running.
func runWatch(ctx context.Context, watch watchFunc, to messenger) error {
	err := watch(ctx, func(n int, err error) {
		to.Send(tui.CatalogReloadedMsg{Products: n, Err: err})
	})
	if err != nil && !errors.Is(err, context.Canceled) {
		to.Send(tui.CatalogReloadedMsg{Err: err})
	}
	return nil
}

// finishTUI runs the bubbletea program and releases the screen's shortcut
// listener. Being killed by context cancellation is a normal shutdown.
func finishTUI(program *tea.Program) error {
	finalModel, err := program.Run()
	if m, ok := finalModel.(tui.Model); ok {
		m.Close()
	}
	if err != nil {
		if errors.Is(err, tea.ErrProgramKilled) || errors.Is(err, context.Canceled) {
			return nil
		}
		return fmt.Errorf("tui: %w", err)
	}
	return nil
}
