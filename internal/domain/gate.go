package domain

import (
	"context"
	"time"
)

// UploadGate decides whether the current run uploads its dump.
type UploadGate interface {
	Due(ctx context.Context, now time.Time) (bool, error)
	// Record is called after a successful upload only.
	Record(ctx context.Context, at time.Time, remoteName string) error
}

// UploadState is the persisted record of the last successful upload.
type UploadState struct {
	LastUpload time.Time `json:"last_upload"`
	LastFile   string    `json:"last_file,omitempty"`
}

type StateStore interface {
	// Load reports ok=false when nothing has been recorded yet.
	Load(ctx context.Context) (state UploadState, ok bool, err error)
	Save(ctx context.Context, state UploadState) error
}
