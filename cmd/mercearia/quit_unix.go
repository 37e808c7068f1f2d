//go:build !windows

package main

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"
)

// registerQuitHandler registers a SIGQUIT handler that exits immediately
// without restoring the terminal. closeJournal runs first so the session
// file is closed; every event is already synced.
func registerQuitHandler(closeJournal func()) {
	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, syscall.SIGQUIT)
	go func() {
		<-sigs
		closeJournal()
		fmt.Fprintln(os.Stderr, "SIGQUIT: stopping immediately")
		os.Exit(1)
	}()
}
