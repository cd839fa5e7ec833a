package database

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"os/exec"
	"path/filepath"
	"strings"

	"github.com/wvsbeta/dumpkeeper/internal/domain"
)

// maxStderr bounds how much of the tool's stderr is kept for reporting.
const maxStderr = 16 << 10

// runDump runs a dump tool with stdout wired to out. A tool that starts and
// exits non-zero is not an error here, only a status.
func runDump(ctx context.Context, out io.Writer, env []string, bin string, args ...string) (domain.DumpStatus, error) {
	var stderr bytes.Buffer

	cmd := exec.CommandContext(ctx, bin, args...)
	cmd.Stdout = out
	cmd.Stderr = &stderr
	if env != nil {
		cmd.Env = env
	}

	err := cmd.Run()
	status := domain.DumpStatus{Stderr: tail(stderr.String(), maxStderr)}

	if ctxErr := ctx.Err(); ctxErr != nil {
		return status, fmt.Errorf("%s interrupted: %w", bin, ctxErr)
	}

	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) {
		status.ExitCode = exitErr.ExitCode()
		return status, nil
	}
	if err != nil {
		return status, fmt.Errorf("%s failed to start: %w", bin, err)
	}

	return status, nil
}

func tail(s string, n int) string {
	s = strings.TrimSpace(s)
	if len(s) <= n {
		return s
	}
	return s[len(s)-n:]
}

func binaryOr(configured, def string) string {
	if configured != "" {
		return configured
	}
	return def
}

// clientPath finds the client used by Ping next to a relocated dump tool. With
// no directory in binary the client is looked up on PATH.
func clientPath(binary, client string) string {
	dir := filepath.Dir(binary)
	if binary == "" || dir == "." {
		return client
	}
	return filepath.Join(dir, client)
}

func portOr(configured, def int) int {
	if configured != 0 {
		return configured
	}
	return def
}
