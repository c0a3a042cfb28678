// Package storage defines the outbound object-storage port and its
// interchangeable adapters (Google Drive, S3, in-memory).
package storage

import (
	"context"
	"fmt"

	"github.com/gestobra/gestobra-api/internal/config"
)

// UploadInput carries a validated binary and its destination hints. Folder is
// the venture's provisioned folder reference (Drive folder id, or key prefix
// on S3); Category is an optional sub-folder hint.
type UploadInput struct {
	Data     []byte
	Filename string
	MimeType string
	Folder   string
	Category string
}

// UploadResult is the stable reference returned by a successful upload.
type UploadResult struct {
	FileID string
	URL    string
}

// Uploader uploads a binary blob and returns a retrievable reference.
type Uploader interface {
	Upload(ctx context.Context, in UploadInput) (UploadResult, error)
	Name() string
}

// FolderProvisioner creates the folder structure for a venture. Only
// backends with real folder semantics implement it; upload never provisions
// folders as a side effect.
type FolderProvisioner interface {
	ProvisionFolder(ctx context.Context, ventureName string) (folderID string, err error)
}

// New builds the configured storage adapter.
func New(ctx context.Context, cfg *config.Config) (Uploader, error) {
	switch cfg.StorageBackend {
	case config.StorageDrive:
		creds, err := cfg.GoogleCredentials()
		if err != nil {
			return nil, err
		}
		return NewDrive(ctx, creds, cfg.DriveRootFolderID)
	case config.StorageS3:
		return NewS3(ctx, cfg)
	case config.StorageMemory:
		return NewMemory(), nil
	default:
		return nil, fmt.Errorf("unsupported storage backend: %s", cfg.StorageBackend)
	}
}
