package domain

import (
	"context"
	"time"
)

// BackupFile is one dump artifact in the backup directory.
type BackupFile struct {
	Name      string
	Path      string
	Size      int64
	ModTime   time.Time
	Timestamp time.Time // parsed from Name, zero when unknown
}

// DumpResult describes a finished dump. A non-zero ExitCode is reported, not
// turned into an error; the caller decides what a failed dump means.
type DumpResult struct {
	File     BackupFile
	ExitCode int
	Stderr   string
	Duration time.Duration
}

func (r DumpResult) Failed() bool {
	return r.ExitCode != 0
}

// RunReport summarises one Dump -> Rotate -> Upload pass.
type RunReport struct {
	RunID      string
	Started    time.Time
	Dump       DumpResult
	Deleted    []string
	UploadDue  bool
	Uploaded   bool
	RemoteName string
	Err        error
	Duration   time.Duration
}

type BackupRunner interface {
	Run(ctx context.Context) (RunReport, error)
}
