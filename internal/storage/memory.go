package storage

import (
	"context"
	"fmt"
	"sync"
)

// MemoryStore is an in-memory adapter for tests and local development. It
// implements the same contract as the real backends, including the
// provisioned-folder requirement.
type MemoryStore struct {
	mu      sync.Mutex
	seq     int
	objects map[string][]byte
	folders map[string]string // folder id -> venture name
}

var (
	_ Uploader          = (*MemoryStore)(nil)
	_ FolderProvisioner = (*MemoryStore)(nil)
)

func NewMemory() *MemoryStore {
	return &MemoryStore{
		objects: make(map[string][]byte),
		folders: make(map[string]string),
	}
}

func (m *MemoryStore) Name() string { return "memory" }

func (m *MemoryStore) Upload(_ context.Context, in UploadInput) (UploadResult, error) {
	if in.Folder == "" {
		return UploadResult{}, fmt.Errorf("destination folder is required")
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	m.seq++
	id := fmt.Sprintf("mem-%d", m.seq)
	data := make([]byte, len(in.Data))
	copy(data, in.Data)
	m.objects[id] = data
	return UploadResult{
		FileID: id,
		URL:    fmt.Sprintf("memory://%s/%s/%s", in.Folder, id, in.Filename),
	}, nil
}

func (m *MemoryStore) ProvisionFolder(_ context.Context, ventureName string) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.seq++
	id := fmt.Sprintf("folder-%d", m.seq)
	m.folders[id] = ventureName
	return id, nil
}

// ObjectCount reports stored objects; used by tests to assert whether an
// upload reached the adapter.
func (m *MemoryStore) ObjectCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.objects)
}

// Object returns the stored bytes for a file id.
func (m *MemoryStore) Object(id string) ([]byte, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	data, ok := m.objects[id]
	return data, ok
}
