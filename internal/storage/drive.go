package storage

import (
	"bytes"
	"context"
	"fmt"

	"github.com/gestobra/gestobra-api/internal/models"
	"google.golang.org/api/drive/v3"
	"google.golang.org/api/option"
)

const folderMimeType = "application/vnd.google-apps.folder"

// DriveStore uploads files into venture folders on Google Drive.
type DriveStore struct {
	svc          *drive.Service
	rootFolderID string
}

var (
	_ Uploader          = (*DriveStore)(nil)
	_ FolderProvisioner = (*DriveStore)(nil)
)

// NewDrive creates a Drive adapter from service account credentials JSON.
func NewDrive(ctx context.Context, credentialsJSON []byte, rootFolderID string) (*DriveStore, error) {
	svc, err := drive.NewService(ctx,
		option.WithCredentialsJSON(credentialsJSON),
		option.WithScopes(drive.DriveScope),
	)
	if err != nil {
		return nil, fmt.Errorf("drive service: %w", err)
	}
	return &DriveStore{svc: svc, rootFolderID: rootFolderID}, nil
}

func (d *DriveStore) Name() string { return "drive" }

// Upload creates the file under the venture folder. When a category hint is
// given the matching sub-folder is resolved by name; a missing sub-folder
// falls back to the venture folder rather than failing the upload.
func (d *DriveStore) Upload(ctx context.Context, in UploadInput) (UploadResult, error) {
	if in.Folder == "" {
		return UploadResult{}, fmt.Errorf("destination folder is required")
	}

	parent := in.Folder
	if in.Category != "" {
		if sub, err := d.findSubFolder(ctx, in.Folder, in.Category); err == nil && sub != "" {
			parent = sub
		}
	}

	meta := &drive.File{
		Name:     in.Filename,
		MimeType: in.MimeType,
		Parents:  []string{parent},
	}
	f, err := d.svc.Files.Create(meta).
		Media(bytes.NewReader(in.Data)).
		Fields("id, webViewLink").
		Context(ctx).
		Do()
	if err != nil {
		return UploadResult{}, fmt.Errorf("drive upload: %w", err)
	}
	return UploadResult{FileID: f.Id, URL: f.WebViewLink}, nil
}

// ProvisionFolder creates the venture folder under the configured root plus
// one sub-folder per canonical category, returning the venture folder id.
func (d *DriveStore) ProvisionFolder(ctx context.Context, ventureName string) (string, error) {
	folder, err := d.svc.Files.Create(&drive.File{
		Name:     ventureName,
		MimeType: folderMimeType,
		Parents:  []string{d.rootFolderID},
	}).Fields("id").Context(ctx).Do()
	if err != nil {
		return "", fmt.Errorf("create venture folder: %w", err)
	}

	for _, category := range models.Categories {
		_, err := d.svc.Files.Create(&drive.File{
			Name:     category,
			MimeType: folderMimeType,
			Parents:  []string{folder.Id},
		}).Fields("id").Context(ctx).Do()
		if err != nil {
			return "", fmt.Errorf("create category folder %q: %w", category, err)
		}
	}

	return folder.Id, nil
}

func (d *DriveStore) findSubFolder(ctx context.Context, parentID, name string) (string, error) {
	query := fmt.Sprintf("'%s' in parents and name = '%s' and mimeType = '%s' and trashed = false",
		parentID, name, folderMimeType)
	list, err := d.svc.Files.List().Q(query).Fields("files(id)").PageSize(1).Context(ctx).Do()
	if err != nil {
		return "", err
	}
	if len(list.Files) == 0 {
		return "", nil
	}
	return list.Files[0].Id, nil
}
