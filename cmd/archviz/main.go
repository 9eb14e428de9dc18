package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/saasfactory/archviz/internal/cli"
	apperrors "github.com/saasfactory/archviz/pkg/errors"
)

const (
	exitOK          = 0
	exitFailure     = 1
	exitInterrupted = 130 // Standard shell convention for SIGINT
)

func main() {
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	code := run(ctx, os.Args[1:], os.Stdout, os.Stderr)
	cancel()
	os.Exit(code)
}

// run executes the archviz command line and returns the process exit code.
func run(ctx context.Context, args []string, stdout, stderr io.Writer) int {
	root := cli.New(stderr, cli.LogInfo).RootCommand()
	root.SetArgs(args)
	root.SetOut(stdout)
	root.SetErr(stderr)
	root.SilenceErrors = true

	err := root.ExecuteContext(ctx)
	switch {
	case err == nil:
		return exitOK
	case errors.Is(err, context.Canceled):
		return exitInterrupted
	}

	if code := apperrors.GetCode(err); code != "" {
		fmt.Fprintf(stderr, "Error [%s]: %s\n", code, errorText(err, code))
	} else {
		fmt.Fprintf(stderr, "Error: %s\n", err)
	}
	return exitFailure
}

// errorText drops the code prefix from a coded error, keeping any context
// that wraps it.
func errorText(err error, code apperrors.Code) string {
	return strings.Replace(err.Error(), string(code)+": ", "", 1)
}
