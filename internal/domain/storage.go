package domain

import "context"

// Storage is a remote destination for finished dumps. Upload always creates
// a new object; it never checks for or replaces an existing one.
type Storage interface {
	Upload(ctx context.Context, localPath string, remoteName string) error
	Name() string
}
