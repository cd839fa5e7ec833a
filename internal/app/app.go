package app

import (
	"context"
	"fmt"
	"io"

	"github.com/wvsbeta/dumpkeeper/internal/adapter/compressor"
	"github.com/wvsbeta/dumpkeeper/internal/adapter/database"
	"github.com/wvsbeta/dumpkeeper/internal/adapter/notifier"
	"github.com/wvsbeta/dumpkeeper/internal/adapter/state"
	"github.com/wvsbeta/dumpkeeper/internal/adapter/storage"
	"github.com/wvsbeta/dumpkeeper/internal/config"
	"github.com/wvsbeta/dumpkeeper/internal/domain"
	"github.com/wvsbeta/dumpkeeper/internal/infrastructure/logger"
	"github.com/wvsbeta/dumpkeeper/internal/infrastructure/scheduler"
	"github.com/wvsbeta/dumpkeeper/internal/usecase"
)

type App struct {
	config    *config.Config
	logger    *logger.Logger
	db        domain.Database
	manager   *usecase.Manager
	runner    domain.BackupRunner
	scheduler *scheduler.Scheduler
}

func New(ctx context.Context, cfg *config.Config) (*App, error) {
	// Initialize logger
	log, err := logger.New(cfg.App)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize logger: %w", err)
	}

	log.Infof("Starting %s", cfg.App.Name)

	// Initialize local storage
	localStorage, err := storage.NewLocal(cfg.Backup.Dir)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize local storage: %w", err)
	}

	naming, err := usecase.NewNaming(cfg.Backup.Prefix, cfg.Backup.Extension)
	if err != nil {
		return nil, err
	}

	db, err := newDatabase(&cfg.Database)
	if err != nil {
		return nil, err
	}

	var (
		remote domain.Storage
		gate   domain.UploadGate
		comp   domain.Compressor
	)
	if cfg.Upload.Enabled {
		remote = newRemote(ctx, &cfg.Upload, log)
		gate = newGate(&cfg.Upload.Gate)
		if cfg.Upload.Compress {
			comp = compressor.NewGzip()
		}
	} else {
		log.Infof("Upload disabled, backups stay in %s", cfg.Backup.Dir)
	}

	manager := usecase.NewManager(db, localStorage, remote, gate, comp, naming, log, usecase.Options{
		Retention:       cfg.Backup.Retention,
		AgeSource:       usecase.AgeSource(cfg.Backup.AgeSource),
		FailOnDumpError: cfg.Database.FailOnError,
	})

	if cfg.Notify.Telegram.Enabled {
		tg, err := notifier.NewTelegram(&cfg.Notify.Telegram, cfg.App.Name)
		if err != nil {
			log.Errorf("Failed to initialize Telegram: %v", err)
		} else {
			manager.WithNotifier(tg)
			log.Infof("✓ Telegram notifications enabled")
		}
	}

	return &App{
		config:    cfg,
		logger:    log,
		db:        db,
		manager:   manager,
		runner:    manager,
		scheduler: scheduler.New(log.SugaredLogger),
	}, nil
}

func newDatabase(cfg *config.DatabaseConfig) (domain.Database, error) {
	switch cfg.Type {
	case "mysql":
		return database.NewMySQL(cfg), nil
	case "postgresql":
		return database.NewPostgreSQL(cfg), nil
	case "mongodb":
		return database.NewMongoDB(cfg), nil
	default:
		return nil, fmt.Errorf("unsupported database type: %s", cfg.Type)
	}
}

// newRemote returns nil when the remote cannot be set up; the failure is
// logged and shows up again as domain.ErrNoRemote on the first due upload.
func newRemote(ctx context.Context, cfg *config.UploadConfig, log *logger.Logger) domain.Storage {
	switch cfg.Type {
	case "gdrive":
		gd, err := storage.NewGDrive(ctx, cfg)
		if err != nil {
			log.Errorf("Failed to initialize Google Drive: %v", err)
			return nil
		}
		log.Infof("✓ Google Drive upload enabled (folder: %s)", cfg.FolderID)
		return gd

	case "s3":
		s3, err := storage.NewS3(ctx, cfg)
		if err != nil {
			log.Errorf("Failed to initialize S3: %v", err)
			return nil
		}
		log.Infof("✓ AWS S3 upload enabled (bucket: %s)", cfg.Bucket)
		return s3

	default:
		log.Warnf("Unknown upload type: %s", cfg.Type)
		return nil
	}
}

func newGate(cfg *config.GateConfig) domain.UploadGate {
	if cfg.Mode == "clock" {
		return usecase.NewClockGate(cfg.Hour, cfg.Minute)
	}
	return usecase.NewIntervalGate(state.NewFile(cfg.StateFile), cfg.Interval)
}

// RunOnce performs a single Dump -> Rotate -> Upload pass.
func (a *App) RunOnce(ctx context.Context) (domain.RunReport, error) {
	return a.runner.Run(ctx)
}

// Serve runs the backup on the configured schedule until ctx is cancelled.
func (a *App) Serve(ctx context.Context) error {
	if err := a.db.Ping(ctx); err != nil {
		a.logger.Warnf("Failed to connect to %s: %v", a.db.GetName(), err)
	} else {
		a.logger.Infof("✓ Connected to %s (%s)", a.db.GetName(), a.db.GetType())
	}

	if err := a.scheduler.AddJob(a.config.Schedule, "backup", func(ctx context.Context) error {
		a.logger.Infof("=== Triggered scheduled backup for %s ===", a.db.GetName())
		_, err := a.runner.Run(ctx)
		return err
	}); err != nil {
		return fmt.Errorf("failed to schedule backup: %w", err)
	}

	a.scheduler.Start(ctx)
	a.logger.Infof("Scheduler started: %s", a.config.Schedule)

	<-ctx.Done()
	return nil
}

func (a *App) Rotate(ctx context.Context) (usecase.RotateResult, error) {
	return a.manager.Rotate(ctx)
}

// Upload sends one existing backup file, bypassing the gate.
func (a *App) Upload(ctx context.Context, path string) (string, error) {
	return a.manager.Upload(ctx, path)
}

// List writes the backups in the directory to w, as a table or as JSON.
func (a *App) List(ctx context.Context, w io.Writer, asJSON bool) error {
	files, err := a.manager.List(ctx)
	if err != nil {
		return err
	}

	listing := newListing(files, a.manager.Now(), a.manager.ExpiresAt)
	if asJSON {
		return listing.WriteJSON(w)
	}
	listing.WriteTable(w)
	return nil
}

func (a *App) Shutdown() {
	a.logger.Infof("Shutting down application...")
	a.scheduler.Stop()
	a.logger.Close()
}
