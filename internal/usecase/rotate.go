package usecase

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/wvsbeta/dumpkeeper/internal/domain"
)

type RotateResult struct {
	Deleted []string
	Kept    int
	// Skipped holds matching names whose age could not be determined.
	Skipped []string
}

// Rotate deletes every backup in the directory that is strictly older than
// the retention period. Files that do not match the naming pattern and
// anything that is not a regular file are never touched. The first delete
// error aborts the pass.
func (uc *Manager) Rotate(ctx context.Context) (RotateResult, error) {
	var result RotateResult

	files, err := uc.local.List(ctx)
	if err != nil {
		return result, fmt.Errorf("failed to list backups: %w", err)
	}

	cutoff := uc.now().Add(-uc.opts.Retention)
	for _, file := range files {
		if !uc.naming.Match(file.Name) {
			continue
		}

		ref, err := uc.ReferenceTime(file)
		if err != nil {
			uc.logger.Warnf("Skipping %s: %v", file.Name, err)
			result.Skipped = append(result.Skipped, file.Name)
			continue
		}

		if !ref.Before(cutoff) {
			result.Kept++
			continue
		}

		uc.logger.Infof("Deleting old backup %s...", file.Name)
		if err := uc.local.Delete(ctx, file.Name); err != nil {
			return result, fmt.Errorf("rotate %s: %w", file.Name, err)
		}
		result.Deleted = append(result.Deleted, file.Name)
	}

	uc.logger.Infof("Rotation done: %d deleted, %d kept", len(result.Deleted), result.Kept)
	return result, nil
}

// ReferenceTime is the instant a backup's age is measured from.
func (uc *Manager) ReferenceTime(file domain.BackupFile) (time.Time, error) {
	if uc.opts.AgeSource == AgeFromName {
		return uc.naming.Timestamp(file.Name)
	}
	return file.ModTime, nil
}

// ExpiresAt reports when Rotate will start deleting the file.
func (uc *Manager) ExpiresAt(file domain.BackupFile) (time.Time, bool) {
	ref, err := uc.ReferenceTime(file)
	if err != nil {
		return time.Time{}, false
	}
	return ref.Add(uc.opts.Retention), true
}

// List returns the backups in the directory, newest first.
func (uc *Manager) List(ctx context.Context) ([]domain.BackupFile, error) {
	files, err := uc.local.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list backups: %w", err)
	}

	var backups []domain.BackupFile
	for _, file := range files {
		ts, err := uc.naming.Timestamp(file.Name)
		if err != nil {
			continue
		}
		file.Timestamp = ts
		backups = append(backups, file)
	}

	sort.Slice(backups, func(i, j int) bool {
		return backups[i].Timestamp.After(backups[j].Timestamp)
	})
	return backups, nil
}

// Now is the manager's clock.
func (uc *Manager) Now() time.Time {
	return uc.now()
}
