package usecase

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	"github.com/wvsbeta/dumpkeeper/internal/domain"
)

type LocalStorage interface {
	Create(name string) (io.WriteCloser, error)
	List(ctx context.Context) ([]domain.BackupFile, error)
	Stat(ctx context.Context, name string) (domain.BackupFile, error)
	Delete(ctx context.Context, name string) error
	GetPath(filename string) string
}

type Logger interface {
	Infof(template string, args ...interface{})
	Errorf(template string, args ...interface{})
	Warnf(template string, args ...interface{})
}

// AgeSource selects the timestamp rotation measures a file's age from.
type AgeSource string

const (
	AgeFromModTime AgeSource = "mtime"
	AgeFromName    AgeSource = "name"
)

type Options struct {
	Retention       time.Duration
	AgeSource       AgeSource
	FailOnDumpError bool
}

// Manager runs the Dump -> Rotate -> gated Upload cycle over one backup
// directory. It takes no locks: two overlapping runs against the same
// directory are the caller's problem.
type Manager struct {
	db         domain.Database
	local      LocalStorage
	remote     domain.Storage
	gate       domain.UploadGate
	compressor domain.Compressor
	notifier   domain.Notifier
	naming     *Naming
	logger     Logger
	opts       Options
	now        func() time.Time
}

// NewManager wires a Manager. remote may be nil, in which case a due upload
// fails with domain.ErrNoRemote. gate may be nil to disable uploads.
// compressor may be nil to upload dumps as they are.
func NewManager(
	db domain.Database,
	local LocalStorage,
	remote domain.Storage,
	gate domain.UploadGate,
	compressor domain.Compressor,
	naming *Naming,
	logger Logger,
	opts Options,
) *Manager {
	if opts.AgeSource == "" {
		opts.AgeSource = AgeFromModTime
	}

	return &Manager{
		db:         db,
		local:      local,
		remote:     remote,
		gate:       gate,
		compressor: compressor,
		naming:     naming,
		logger:     logger,
		opts:       opts,
		now:        time.Now,
	}
}

func (uc *Manager) WithNotifier(n domain.Notifier) *Manager {
	uc.notifier = n
	return uc
}

// Dump writes a new backup named after the current UTC minute.
func (uc *Manager) Dump(ctx context.Context) (domain.DumpResult, error) {
	return uc.dumpAt(ctx, uc.now())
}

func (uc *Manager) dumpAt(ctx context.Context, at time.Time) (domain.DumpResult, error) {
	name := uc.naming.Filename(at)
	uc.logger.Infof("Backing up %s to %s...", uc.db.GetName(), name)

	out, err := uc.local.Create(name)
	if err != nil {
		return domain.DumpResult{}, fmt.Errorf("create backup file: %w", err)
	}

	status, dumpErr := uc.db.Dump(ctx, out)
	closeErr := out.Close()

	result := domain.DumpResult{
		ExitCode: status.ExitCode,
		Stderr:   status.Stderr,
		Duration: uc.now().Sub(at),
	}

	if dumpErr != nil {
		if err := uc.local.Delete(ctx, name); err != nil {
			uc.logger.Warnf("Failed to remove %s: %v", name, err)
		}
		return result, fmt.Errorf("dump %s: %w", uc.db.GetName(), dumpErr)
	}
	if closeErr != nil {
		return result, fmt.Errorf("close backup file: %w", closeErr)
	}

	file, err := uc.local.Stat(ctx, name)
	if err != nil {
		return result, err
	}
	file.Timestamp = at.UTC().Truncate(time.Minute)
	result.File = file

	if result.Failed() {
		uc.logger.Warnf("%s exited with status %d: %s", uc.db.GetType(), result.ExitCode, result.Stderr)
	} else {
		uc.logger.Infof("Backup created, size: %.2f MB", float64(file.Size)/(1024*1024))
	}

	return result, nil
}

// Upload sends one backup file to the remote storage as a new object named
// after its basename (plus the compressor's extension). It does not check
// whether the object already exists, so repeating it creates duplicates.
func (uc *Manager) Upload(ctx context.Context, path string) (string, error) {
	if uc.remote == nil {
		return "", domain.ErrNoRemote
	}

	name := filepath.Base(path)
	if !uc.naming.Match(name) {
		return "", fmt.Errorf("upload %s: %w", path, domain.ErrInvalidName)
	}

	uploadPath, remoteName := path, name
	if uc.compressor != nil {
		tempDir, err := os.MkdirTemp("", "dumpkeeper-")
		if err != nil {
			return "", fmt.Errorf("create temp dir: %w", err)
		}
		defer os.RemoveAll(tempDir)

		remoteName = name + uc.compressor.Extension()
		uploadPath = filepath.Join(tempDir, remoteName)

		uc.logger.Infof("Compressing %s...", name)
		if err := uc.compressor.Compress(path, uploadPath); err != nil {
			return "", fmt.Errorf("compress %s: %w", name, err)
		}
	}

	uc.logger.Infof("Uploading %s to %s...", remoteName, uc.remote.Name())
	if err := uc.remote.Upload(ctx, uploadPath, remoteName); err != nil {
		return "", fmt.Errorf("%w: %s to %s: %w", domain.ErrUploadFailed, remoteName, uc.remote.Name(), err)
	}
	uc.logger.Infof("Uploaded %s to %s", remoteName, uc.remote.Name())

	return remoteName, nil
}

// Run performs one Dump -> Rotate -> Upload pass. The gate is asked once, at
// the start of the run, and Upload runs at most once. Nothing is rolled back
// when a later step fails.
func (uc *Manager) Run(ctx context.Context) (report domain.RunReport, err error) {
	start := uc.now()
	report = domain.RunReport{
		RunID:   uuid.New().String()[:8],
		Started: start,
	}
	uc.logger.Infof("[%s] Starting backup run", report.RunID)

	defer func() {
		report.Err = err
		report.Duration = uc.now().Sub(start)
		if err != nil {
			uc.logger.Errorf("[%s] Backup run failed: %v", report.RunID, err)
		} else {
			uc.logger.Infof("[%s] Backup run completed in %s", report.RunID, report.Duration.Round(time.Second))
		}
		uc.notify(ctx, report)
	}()

	report.UploadDue = uc.uploadDue(ctx, report.RunID, start)

	dump, err := uc.dumpAt(ctx, start)
	report.Dump = dump
	if err != nil {
		return report, err
	}

	if dump.Failed() {
		if uc.opts.FailOnDumpError {
			if rmErr := uc.local.Delete(ctx, dump.File.Name); rmErr != nil {
				uc.logger.Warnf("[%s] Failed to remove partial dump %s: %v", report.RunID, dump.File.Name, rmErr)
			}
			return report, fmt.Errorf("%w: %s exited with status %d: %s",
				domain.ErrDumpFailed, uc.db.GetType(), dump.ExitCode, dump.Stderr)
		}
		uc.logger.Warnf("[%s] Keeping %s despite exit status %d", report.RunID, dump.File.Name, dump.ExitCode)
	}

	rotated, err := uc.Rotate(ctx)
	report.Deleted = rotated.Deleted
	if err != nil {
		return report, err
	}

	if !report.UploadDue {
		uc.logger.Infof("[%s] Time is %s, skipping upload", report.RunID, start.UTC().Format("15:04"))
		return report, nil
	}

	remoteName, err := uc.Upload(ctx, dump.File.Path)
	if err != nil {
		return report, err
	}
	report.Uploaded = true
	report.RemoteName = remoteName

	if err := uc.gate.Record(ctx, start, remoteName); err != nil {
		return report, fmt.Errorf("record upload: %w", err)
	}

	return report, nil
}

// uploadDue asks the gate. A gate that cannot answer (unreadable state)
// counts as due: an extra upload is cheaper than a missed one.
func (uc *Manager) uploadDue(ctx context.Context, runID string, now time.Time) bool {
	if uc.gate == nil {
		return false
	}

	due, err := uc.gate.Due(ctx, now)
	if err != nil {
		uc.logger.Warnf("[%s] Upload gate failed, assuming upload is due: %v", runID, err)
		return true
	}
	return due
}

func (uc *Manager) notify(ctx context.Context, report domain.RunReport) {
	if uc.notifier == nil {
		return
	}
	if err := uc.notifier.Notify(ctx, report); err != nil {
		uc.logger.Warnf("[%s] Failed to send notification: %v", report.RunID, err)
	}
}
