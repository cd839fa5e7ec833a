package storage

import (
	"context"
	"fmt"
	"os"

	"github.com/wvsbeta/dumpkeeper/internal/config"
	"google.golang.org/api/drive/v3"
	"google.golang.org/api/option"
)

type GDriveStorage struct {
	service  *drive.Service
	folderID string
}

func NewGDrive(ctx context.Context, cfg *config.UploadConfig) (*GDriveStorage, error) {
	creds, err := LoadServiceAccount(ctx, cfg.CredentialsFile)
	if err != nil {
		return nil, err
	}

	service, err := drive.NewService(ctx, option.WithCredentials(creds))
	if err != nil {
		return nil, fmt.Errorf("failed to create drive service: %w", err)
	}

	return newGDrive(service, cfg.FolderID), nil
}

func newGDrive(service *drive.Service, folderID string) *GDriveStorage {
	return &GDriveStorage{
		service:  service,
		folderID: folderID,
	}
}

func (g *GDriveStorage) Name() string {
	return "gdrive"
}

// Upload creates a new Drive file under the folder. Drive allows duplicate
// names, so uploading the same file twice yields two files.
func (g *GDriveStorage) Upload(ctx context.Context, localPath string, remoteName string) error {
	file, err := os.Open(localPath)
	if err != nil {
		return fmt.Errorf("failed to open file: %w", err)
	}
	defer file.Close()

	fileMetadata := &drive.File{
		Name:    remoteName,
		Parents: []string{g.folderID},
	}

	_, err = g.service.Files.Create(fileMetadata).
		Media(file).
		SupportsAllDrives(true).
		Fields("id, name").
		Context(ctx).
		Do()
	if err != nil {
		return fmt.Errorf("failed to upload to gdrive: %w", err)
	}

	return nil
}
