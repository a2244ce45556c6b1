// Command rangeprint spawns a number of workers that each print their own
// range of ten integers while holding a shared console lock.
package main

import (
	"context"
	"io"
	"os"

	"github.com/agbru/rangeprint/internal/app"
	apperrors "github.com/agbru/rangeprint/internal/errors"
)

func main() {
	os.Exit(run(context.Background(), os.Args, os.Stdout, os.Stderr))
}

// run executes one invocation and returns its exit status. Worker lines and
// the version banner go to stdout; usage, diagnostics and logs to stderr.
func run(ctx context.Context, args []string, stdout, stderr io.Writer) int {
	application, err := app.New(args, stderr)
	switch {
	case err == nil:
		return application.Run(ctx, stdout)
	case app.IsVersionError(err):
		app.PrintVersion(stdout)
		return apperrors.ExitSuccess
	case app.IsHelpError(err):
		return apperrors.ExitSuccess
	default:
		return apperrors.ExitCode(err)
	}
}
