// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Command playbook browses a catalogue of operational tasks. With no
// arguments it opens the interactive browser.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/bureau-foundation/playbook/cmd/playbook/commands"
)

func main() {
	if err := run(); err != nil {
		// Commands that print their own output (validate, find) return
		// an ExitError with the desired exit code. Don't print a
		// redundant "error:" line for those.
		if coder, ok := err.(interface{ ExitCode() int }); ok {
			os.Exit(coder.ExitCode())
		}
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	args := os.Args[1:]
	if len(args) == 0 {
		args = []string{"browse"}
	}
	return commands.Root().Execute(ctx, args)
}
