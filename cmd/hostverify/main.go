// (c) Siemens AG 2023
//
// SPDX-License-Identifier: MIT

package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
)

func main() {
	// Interrupting aborts the verification, skipping the export.
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	err := newRootCmd().ExecuteContext(ctx)
	cancel()
	// cobra already reports the error returned from RunE, so don't print it a
	// second time, see also: https://github.com/spf13/cobra/issues/304
	if err != nil {
		osExit(1)
	}
}

// For CLI unit tests...
var osExit = os.Exit
