package domain

import (
	"context"
	"io"
)

// DumpStatus is what the external dump utility reported on exit.
type DumpStatus struct {
	ExitCode int
	Stderr   string
}

type Database interface {
	// Dump streams the dump to out. The returned error is only set when the
	// tool could not be run at all; a tool that ran and failed is reported
	// through DumpStatus.ExitCode.
	Dump(ctx context.Context, out io.Writer) (DumpStatus, error)
	GetName() string
	GetType() string
	Ping(ctx context.Context) error
}
