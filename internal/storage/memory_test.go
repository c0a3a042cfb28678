package storage

import (
	"context"
	"testing"
)

func TestMemoryUploadRequiresFolder(t *testing.T) {
	store := NewMemory()

	_, err := store.Upload(context.Background(), UploadInput{
		Data:     []byte("x"),
		Filename: "a.pdf",
		MimeType: "application/pdf",
	})
	if err == nil {
		t.Fatal("expected error without a destination folder")
	}
	if store.ObjectCount() != 0 {
		t.Errorf("expected no stored objects, got %d", store.ObjectCount())
	}
}

func TestMemoryUploadAndProvision(t *testing.T) {
	store := NewMemory()

	folderID, err := store.ProvisionFolder(context.Background(), "Residencial Aurora")
	if err != nil {
		t.Fatalf("ProvisionFolder error: %v", err)
	}
	if folderID == "" {
		t.Fatal("expected a folder id")
	}

	result, err := store.Upload(context.Background(), UploadInput{
		Data:     []byte("payload"),
		Filename: "nota.pdf",
		MimeType: "application/pdf",
		Folder:   folderID,
	})
	if err != nil {
		t.Fatalf("Upload error: %v", err)
	}
	if result.FileID == "" || result.URL == "" {
		t.Errorf("expected file id and url, got %+v", result)
	}

	data, ok := store.Object(result.FileID)
	if !ok {
		t.Fatal("stored object not found")
	}
	if string(data) != "payload" {
		t.Errorf("stored bytes mismatch: %q", data)
	}

	// Distinct ids per upload.
	second, err := store.Upload(context.Background(), UploadInput{
		Data: []byte("other"), Filename: "b.pdf", MimeType: "application/pdf", Folder: folderID,
	})
	if err != nil {
		t.Fatalf("Upload error: %v", err)
	}
	if second.FileID == result.FileID {
		t.Error("expected unique file ids")
	}
}
